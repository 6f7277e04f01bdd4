package repositories

import (
	"context"
	"net/http"
	"time"

	"city-forecast/config"
	"city-forecast/internal/models"
	"city-forecast/pkg/logger"
)

// HTTPClient is the part of *http.Client the repositories need.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type ForecastRepository interface {
	Name() string
	FetchForecast(ctx context.Context, city models.CityQuery) (models.Forecast, error)
}

func InitForecastRepository(cfg *config.Config, l *logger.Logger) (ForecastRepository, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Weather.Timeout) * time.Second,
	}

	repo, err := NewOpenWeatherMapRepository(
		cfg.Weather.Endpoint,
		cfg.Weather.APIKey,
		cfg.Weather.Units,
		l,
		httpClient,
	)
	if err != nil {
		return nil, err
	}

	return repo, nil
}
