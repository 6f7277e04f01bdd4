package http

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"city-forecast/internal/models"
	"city-forecast/internal/view"
	"city-forecast/pkg/apperrors"
)

// ForecastResponse represents the forecast summary of one city
type ForecastResponse struct {
	Query string        `json:"query" example:"Paris"`
	City  CityResponse  `json:"city"`
	Days  []DayResponse `json:"days"`
}

// CityResponse represents the city metadata returned by the upstream
type CityResponse struct {
	Name       string `json:"name" example:"Paris"`
	Country    string `json:"country" example:"FR"`
	Population int64  `json:"population" example:"2148000"`
}

// DayResponse represents a single day's summary
type DayResponse struct {
	Date     string  `json:"date" example:"2025-07-25"`
	Name     string  `json:"name" example:"Fri"`
	High     float64 `json:"high" example:"78.4"`
	Low      float64 `json:"low" example:"61.2"`
	Humidity int     `json:"humidity" example:"64"`
	Clouds   int     `json:"clouds" example:"20"`
	Category string  `json:"category" example:"Clouds"`
	Icon     string  `json:"icon,omitempty" example:"https://s3-us-west-2.amazonaws.com/static-resources.zybooks.com/clouds.png"`
}

// ValidateResponse tells whether the typed city can be submitted
type ValidateResponse struct {
	Valid bool `json:"valid" example:"true"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Unable to load city \"Atlantis\"."`
}

// session returns the caller's session and refreshes its cookie.
func (r *routes) session(c *fiber.Ctx) *view.Session {
	s, created := r.sessions.Acquire(c.Cookies(r.cookieName))
	if created {
		r.l.Debug("new page session", map[string]any{"ip": c.IP()})
	}

	c.Cookie(&fiber.Cookie{
		Name:     r.cookieName,
		Value:    s.ID,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return s
}

func (r *routes) render(c *fiber.Ctx, s *view.Session) error {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, s.Page.Snapshot()); err != nil {
		r.l.Error(err, map[string]any{"session": s.ID})
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render page")
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (r *routes) handlePage(c *fiber.Ctx) error {
	return r.render(c, r.session(c))
}

// handleSubmit runs a query for the caller's page. Failures are part of the page, so
// the response is 200 whatever happened upstream.
func (r *routes) handleSubmit(c *fiber.Ctx) error {
	s := r.session(c)
	// Query values point into the request buffer; the page keeps them past this handler.
	city := utils.CopyString(c.Query("city"))

	_, err := s.Controller.Submit(c.Context(), city)
	switch {
	case err == nil:
	case errors.Is(err, view.ErrSuperseded):
		r.l.Info("submission superseded", map[string]any{"session": s.ID, "city": city})
	case apperrors.IsCode(err, apperrors.CodeValidation):
		r.l.Debug("blank city submitted", map[string]any{"session": s.ID})
	default:
		r.l.Warning("forecast request failed", map[string]any{
			"session": s.ID,
			"city":    city,
			"err":     err.Error(),
		})
	}

	return r.render(c, s)
}

// handleValidate godoc
// @Summary Validate a city name
// @Description Live validation of the city field; blank or whitespace-only names are invalid.
// @Description Records the typed value and the validation indicator on the caller's page.
// @Tags Forecast
// @Accept x-www-form-urlencoded
// @Produce json
// @Param city formData string false "City name as typed"
// @Success 200 {object} ValidateResponse
// @Router /validate [post]
func (r *routes) handleValidate(c *fiber.Ctx) error {
	s := r.session(c)
	return c.JSON(ValidateResponse{Valid: s.Controller.Input(utils.CopyString(c.FormValue("city")))})
}

// handleForecastCall godoc
// @Summary Get a city's daily forecast summary
// @Description Folds the upstream 3-hour forecast into one summary per day, in upstream order
// @Tags Forecast
// @Produce json
// @Param city query string true "City name" example(Paris)
// @Param days query integer false "Number of days to return (default and maximum: the configured page size)" minimum(1)
// @Success 200 {object} ForecastResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - blank city"
// @Failure 502 {object} ErrorResponse "The forecast could not be obtained"
// @Router /api/v1/forecast [get]
func (r *routes) handleForecastCall(c *fiber.Ctx) error {
	query, err := models.NewCityQuery(utils.CopyString(c.Query("city")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: city",
		})
	}

	days := r.maxDays
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= r.maxDays {
			days = n
		} else {
			// Log warning but continue with default value
			r.l.Warning("invalid days parameter, using default", map[string]any{
				"provided": raw,
				"default":  days,
			})
		}
	}

	result, err := r.service.FetchForecast(c.Context(), query)
	if err != nil {
		r.l.Error(err, map[string]any{"city": query.String()})

		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: query.LoadFailedMessage(),
		})
	}

	return c.JSON(r.toResponse(result, days))
}

func (r *routes) toResponse(result models.ForecastResult, days int) ForecastResponse {
	response := ForecastResponse{
		Query: result.Query.String(),
		City: CityResponse{
			Name:       result.City.Name,
			Country:    result.City.Country,
			Population: result.City.Population,
		},
		Days: []DayResponse{},
	}

	for _, d := range result.FirstDays(days) {
		response.Days = append(response.Days, DayResponse{
			Date:     string(d.Day),
			Name:     view.DayName(d.Day),
			High:     d.High,
			Low:      d.Low,
			Humidity: d.Humidity,
			Clouds:   d.Clouds,
			Category: d.Category,
			Icon:     r.icons.Image(d.Category).Src,
		})
	}

	return response
}
