package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"city-forecast/internal/models"
	"city-forecast/pkg/apperrors"
	"city-forecast/pkg/logger"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const validationMessage = "Please enter a city name."

// ErrSuperseded is returned to a submission whose answer arrived after a newer submission started.
var ErrSuperseded = errors.New("superseded by a newer submission")

// Fetcher produces the summarized forecast for one city.
type Fetcher interface {
	FetchForecast(ctx context.Context, city models.CityQuery) (models.ForecastResult, error)
}

type Options struct {
	Target string
	Slots  int
	Icons  IconSet
}

// Controller drives one query target through Idle, Loading, Success and Error.
// Each submission takes a generation number; only the latest one may touch the display.
type Controller struct {
	fetcher Fetcher
	r       Renderer
	opts    Options
	l       *logger.Logger

	mu         sync.Mutex
	state      State
	generation uint64
	query      models.CityQuery
}

func NewController(fetcher Fetcher, r Renderer, opts Options, l *logger.Logger) *Controller {
	return &Controller{
		fetcher: fetcher,
		r:       r,
		opts:    opts,
		l:       l,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Query is the city of the latest accepted submission.
func (c *Controller) Query() models.CityQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Input reflects a live edit of the city field and reports whether it is submittable.
func (c *Controller) Input(raw string) bool {
	_, err := models.NewCityQuery(raw)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.r.SetInput(raw)
	c.r.SetValidationVisible(err != nil)

	return err == nil
}

// Submit runs one query. Blank input only raises the validation indicator and returns
// an apperrors.CodeValidation error. Upstream failures are rendered and returned as
// apperrors.CodeRequest errors. A submission overtaken by a newer one returns ErrSuperseded
// and leaves the display to the newer one.
func (c *Controller) Submit(ctx context.Context, raw string) (models.ForecastResult, error) {
	query, err := models.NewCityQuery(raw)
	if err != nil {
		c.mu.Lock()
		c.r.SetInput(raw)
		c.r.SetValidationVisible(true)
		c.mu.Unlock()

		c.l.Debug("rejected blank city", map[string]any{"target": c.opts.Target})
		return models.ForecastResult{}, apperrors.Wrap(apperrors.CodeValidation, validationMessage, err)
	}

	generation := c.begin(raw, query)

	result, err := c.fetcher.FetchForecast(ctx, query)

	return c.complete(generation, query, result, err)
}

func (c *Controller) begin(raw string, query models.CityQuery) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.state = StateLoading
	c.query = query

	c.r.SetInput(raw)
	c.r.SetValidationVisible(false)
	c.r.ShowForecast()
	c.r.HideRequestError()
	c.r.ShowLoading(fmt.Sprintf("Loading %s...", query))
	c.r.HideResults()

	c.l.Debug("forecast loading", map[string]any{
		"target":     c.opts.Target,
		"city":       query.String(),
		"generation": c.generation,
	})

	return c.generation
}

func (c *Controller) complete(generation uint64, query models.CityQuery, result models.ForecastResult, fetchErr error) (models.ForecastResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.l.Info("dropping stale forecast", map[string]any{
			"target":     c.opts.Target,
			"city":       query.String(),
			"generation": generation,
			"current":    c.generation,
		})
		return models.ForecastResult{}, ErrSuperseded
	}

	c.r.HideLoading()

	if fetchErr != nil {
		c.state = StateError

		if !apperrors.IsCode(fetchErr, apperrors.CodeRequest) {
			fetchErr = apperrors.Wrap(apperrors.CodeRequest, query.LoadFailedMessage(), fetchErr)
		}
		c.r.ShowRequestError(apperrors.Message(fetchErr))

		return models.ForecastResult{}, fetchErr
	}

	c.state = StateSuccess
	c.r.ShowResults()
	c.r.SetCity(NewCityView(result.City))

	days := result.FirstDays(c.opts.Slots)
	for i, day := range days {
		c.r.SetDay(i+1, NewDayView(day, c.opts.Icons))
	}
	for slot := len(days) + 1; slot <= c.opts.Slots; slot++ {
		c.r.ClearDay(slot)
	}

	c.l.Info("forecast rendered", map[string]any{
		"target":   c.opts.Target,
		"city":     query.String(),
		"days":     len(result.Days),
		"rendered": len(days),
	})

	return result, nil
}
