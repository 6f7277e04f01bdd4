// Package docs registers the swagger spec served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/forecast": {
            "get": {
                "description": "Folds the upstream 3-hour forecast into one summary per day, in upstream order",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Forecast"
                ],
                "summary": "Get a city's daily forecast summary",
                "parameters": [
                    {
                        "type": "string",
                        "example": "Paris",
                        "description": "City name",
                        "name": "city",
                        "in": "query",
                        "required": true
                    },
                    {
                        "minimum": 1,
                        "type": "integer",
                        "description": "Number of days to return (default and maximum: the configured page size)",
                        "name": "days",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Successful response",
                        "schema": {
                            "$ref": "#/definitions/http.ForecastResponse"
                        }
                    },
                    "400": {
                        "description": "Bad request - blank city",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "The forecast could not be obtained",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/validate": {
            "post": {
                "description": "Live validation of the city field; blank or whitespace-only names are invalid.\nRecords the typed value and the validation indicator on the caller's page.",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Forecast"
                ],
                "summary": "Validate a city name",
                "parameters": [
                    {
                        "type": "string",
                        "description": "City name as typed",
                        "name": "city",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ValidateResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "http.CityResponse": {
            "type": "object",
            "properties": {
                "country": {
                    "type": "string",
                    "example": "FR"
                },
                "name": {
                    "type": "string",
                    "example": "Paris"
                },
                "population": {
                    "type": "integer",
                    "example": 2148000
                }
            }
        },
        "http.DayResponse": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string",
                    "example": "Clouds"
                },
                "clouds": {
                    "type": "integer",
                    "example": 20
                },
                "date": {
                    "type": "string",
                    "example": "2025-07-25"
                },
                "high": {
                    "type": "number",
                    "example": 78.4
                },
                "humidity": {
                    "type": "integer",
                    "example": 64
                },
                "icon": {
                    "type": "string",
                    "example": "https://s3-us-west-2.amazonaws.com/static-resources.zybooks.com/clouds.png"
                },
                "low": {
                    "type": "number",
                    "example": 61.2
                },
                "name": {
                    "type": "string",
                    "example": "Fri"
                }
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "Unable to load city \"Atlantis\"."
                }
            }
        },
        "http.ForecastResponse": {
            "type": "object",
            "properties": {
                "city": {
                    "$ref": "#/definitions/http.CityResponse"
                },
                "days": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/http.DayResponse"
                    }
                },
                "query": {
                    "type": "string",
                    "example": "Paris"
                }
            }
        },
        "http.ValidateResponse": {
            "type": "object",
            "properties": {
                "valid": {
                    "type": "boolean",
                    "example": true
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "City Forecast",
	Description:      "Five-day forecast summaries for a single city, folded from OpenWeatherMap 3-hour intervals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
