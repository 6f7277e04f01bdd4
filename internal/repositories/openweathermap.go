package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"city-forecast/internal/models"
	"city-forecast/pkg/logger"
)

const (
	OpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

	errorBodyLimit = 4 << 10
)

var (
	ErrEmptyAPIKey      = errors.New("API key cannot be empty")
	ErrMalformedPayload = errors.New("malformed forecast payload")
)

// StatusError reports a non-200 answer from the forecast endpoint.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error (status %d): %s", e.StatusCode, e.Status)
}

type OpenWeatherMapRepository struct {
	BaseURL    string
	APIKey     string
	Units      string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenWeatherMapRepository(baseURL, apiKey, units string, l *logger.Logger, httpClient HTTPClient) (*OpenWeatherMapRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrEmptyAPIKey
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = OpenWeatherMapBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OpenWeatherMapRepository{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Units:      units,
		httpClient: httpClient,
		l:          l,
	}, nil
}

func (o *OpenWeatherMapRepository) Name() string {
	return "openweathermap"
}

// OpenWeatherMapResponse is the subset of the /forecast payload we read.
// Pointers mark the fields whose absence makes a reading unusable.
type OpenWeatherMapResponse struct {
	City *struct {
		Name       string `json:"name"`
		Country    string `json:"country"`
		Population int64  `json:"population"`
	} `json:"city"`
	List []struct {
		Dt    int64  `json:"dt"`
		DtTxt string `json:"dt_txt"`
		Main  *struct {
			Temp     *float64 `json:"temp"`
			Humidity *int     `json:"humidity"`
		} `json:"main"`
		Clouds *struct {
			All *int `json:"all"`
		} `json:"clouds"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	} `json:"list"`
}

func (o *OpenWeatherMapRepository) requestURL(city models.CityQuery) string {
	q := url.Values{}
	q.Set("q", city.String())
	if o.Units != "" {
		q.Set("units", o.Units)
	}
	q.Set("appid", o.APIKey)

	return o.BaseURL + "?" + q.Encode()
}

func (o *OpenWeatherMapRepository) FetchForecast(ctx context.Context, city models.CityQuery) (models.Forecast, error) {
	o.l.Info("making openweathermap API request", map[string]any{
		"repository": o.Name(),
		"city":       city.String(),
		"units":      o.Units,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.requestURL(city), nil)
	if err != nil {
		return models.Forecast{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return models.Forecast{}, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	o.l.Info("received openweathermap API response", map[string]any{
		"repository": o.Name(),
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return models.Forecast{}, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(payload),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Forecast{}, fmt.Errorf("failed to read response body: %w", err)
	}

	var response OpenWeatherMapResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.Forecast{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	forecast, err := toForecast(response)
	if err != nil {
		return models.Forecast{}, err
	}

	o.l.Info("parsed API response", map[string]any{
		"repository": o.Name(),
		"items":      len(forecast.Readings),
	})

	return forecast, nil
}

func toForecast(response OpenWeatherMapResponse) (models.Forecast, error) {
	if response.City == nil {
		return models.Forecast{}, fmt.Errorf("%w: missing city", ErrMalformedPayload)
	}

	forecast := models.Forecast{
		City: models.City{
			Name:       response.City.Name,
			Country:    response.City.Country,
			Population: response.City.Population,
		},
		Readings: make([]models.Reading, 0, len(response.List)),
	}

	for i, item := range response.List {
		if item.Main == nil || item.Main.Temp == nil {
			return models.Forecast{}, fmt.Errorf("%w: list[%d] has no temperature", ErrMalformedPayload, i)
		}
		if item.Main.Humidity == nil {
			return models.Forecast{}, fmt.Errorf("%w: list[%d] has no humidity", ErrMalformedPayload, i)
		}
		if item.Clouds == nil || item.Clouds.All == nil {
			return models.Forecast{}, fmt.Errorf("%w: list[%d] has no cloud cover", ErrMalformedPayload, i)
		}
		if len(item.Weather) == 0 {
			return models.Forecast{}, fmt.Errorf("%w: list[%d] has no weather category", ErrMalformedPayload, i)
		}

		forecast.Readings = append(forecast.Readings, models.Reading{
			Unix:        item.Dt,
			Timestamp:   item.DtTxt,
			Temperature: *item.Main.Temp,
			Humidity:    *item.Main.Humidity,
			Clouds:      *item.Clouds.All,
			Category:    item.Weather[0].Main,
		})
	}

	return forecast, nil
}
