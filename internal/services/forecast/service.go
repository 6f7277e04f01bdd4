package forecast

import (
	"context"

	"github.com/pkg/errors"

	"city-forecast/internal/models"
	"city-forecast/internal/repositories"
	"city-forecast/pkg/apperrors"
	"city-forecast/pkg/logger"
)

// Service fetches one city's forecast and folds it into per-day summaries.
type Service struct {
	repo repositories.ForecastRepository
	l    *logger.Logger
}

func NewForecastService(repo repositories.ForecastRepository, l *logger.Logger) *Service {
	return &Service{
		repo: repo,
		l:    l,
	}
}

// FetchForecast returns the summarized forecast for city. Every failure, whether the
// upstream refused, was unreachable or answered with an unusable body, is an
// apperrors.CodeRequest error.
func (s *Service) FetchForecast(ctx context.Context, city models.CityQuery) (models.ForecastResult, error) {
	s.l.Info("starting forecast fetch", map[string]any{
		"repo": s.repo.Name(),
		"city": city.String(),
	})

	forecast, err := s.repo.FetchForecast(ctx, city)
	if err != nil {
		s.l.Warning("failed to fetch forecast", map[string]any{
			"repo": s.repo.Name(),
			"city": city.String(),
			"err":  err.Error(),
		})
		return models.ForecastResult{}, apperrors.Wrap(apperrors.CodeRequest, city.LoadFailedMessage(), errors.Wrap(err, s.repo.Name()))
	}

	summaries, err := Summarize(forecast.Readings)
	if err != nil {
		s.l.Error(err, map[string]any{
			"repo":     s.repo.Name(),
			"city":     city.String(),
			"readings": len(forecast.Readings),
		})
		return models.ForecastResult{}, apperrors.Wrap(apperrors.CodeRequest, city.LoadFailedMessage(), err)
	}

	s.l.Info("completed forecast fetch", map[string]any{
		"repo":     s.repo.Name(),
		"city":     city.String(),
		"readings": len(forecast.Readings),
		"days":     summaries.Len(),
	})

	return models.ForecastResult{
		Query: city,
		City:  forecast.City,
		Days:  summaries.Days(),
	}, nil
}
