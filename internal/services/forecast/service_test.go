package forecast_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"city-forecast/internal/models"
	"city-forecast/internal/services/forecast"
	"city-forecast/pkg/apperrors"
	"city-forecast/pkg/logger"
)

// MockRepository implements ForecastRepository for testing
type MockRepository struct {
	forecast  models.Forecast
	err       error
	callCount int
	lastCity  models.CityQuery
}

func (m *MockRepository) Name() string {
	return "mock"
}

func (m *MockRepository) FetchForecast(ctx context.Context, city models.CityQuery) (models.Forecast, error) {
	m.callCount++
	m.lastCity = city

	if m.err != nil {
		return models.Forecast{}, m.err
	}
	return m.forecast, nil
}

func newService(repo *MockRepository) *forecast.Service {
	return forecast.NewForecastService(repo, logger.NewZapLogger("test-app", io.Discard))
}

func TestService_FetchForecast_Success(t *testing.T) {
	repo := &MockRepository{forecast: models.Forecast{
		City: models.City{Name: "Paris", Country: "FR", Population: 2148000},
		Readings: []models.Reading{
			reading("2025-07-25 15:00:00", 71.6, 64, 20, "Clouds"),
			reading("2025-07-25 18:00:00", 75.0, 50, 90, "Rain"),
			reading("2025-07-26 00:00:00", 60.1, 88, 5, "Clear"),
		},
	}}

	result, err := newService(repo).FetchForecast(context.Background(), "Paris")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.callCount)
	assert.Equal(t, models.CityQuery("Paris"), repo.lastCity)
	assert.Equal(t, models.CityQuery("Paris"), result.Query)
	assert.Equal(t, "FR", result.City.Country)
	require.Len(t, result.Days, 2)
	assert.Equal(t, models.Day("2025-07-25"), result.Days[0].Day)
	assert.Equal(t, 75.0, result.Days[0].High)
	assert.Equal(t, 71.6, result.Days[0].Low)
	assert.Equal(t, "Clouds", result.Days[0].Category)
}

func TestService_FetchForecast_RepositoryError(t *testing.T) {
	cause := errors.New("HTTP error (status 404): 404 Not Found")
	repo := &MockRepository{err: cause}

	_, err := newService(repo).FetchForecast(context.Background(), "Atlantis")
	require.Error(t, err)

	assert.True(t, apperrors.IsCode(err, apperrors.CodeRequest))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, `Unable to load city "Atlantis".`, apperrors.Message(err))
}

func TestService_FetchForecast_MalformedReading(t *testing.T) {
	repo := &MockRepository{forecast: models.Forecast{
		City:     models.City{Name: "Paris"},
		Readings: []models.Reading{reading("garbage", 1, 1, 1, "Clear")},
	}}

	_, err := newService(repo).FetchForecast(context.Background(), "Paris")
	require.Error(t, err)

	assert.True(t, apperrors.IsCode(err, apperrors.CodeRequest))
	assert.ErrorIs(t, err, forecast.ErrMalformedReading)
}

func TestService_FetchForecast_EmptyList(t *testing.T) {
	repo := &MockRepository{forecast: models.Forecast{City: models.City{Name: "Nowhere"}}}

	result, err := newService(repo).FetchForecast(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, result.Days)
}
