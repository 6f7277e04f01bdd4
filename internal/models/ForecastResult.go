package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyCity = errors.New("city name is empty")

// CityQuery is a trimmed, non-empty city name.
type CityQuery string

// NewCityQuery trims raw user input and rejects blank names.
func NewCityQuery(raw string) (CityQuery, error) {
	city := strings.TrimSpace(raw)
	if city == "" {
		return "", ErrEmptyCity
	}
	return CityQuery(city), nil
}

func (q CityQuery) String() string {
	return string(q)
}

// LoadFailedMessage is the one message shown for every failed lookup of q.
func (q CityQuery) LoadFailedMessage() string {
	return fmt.Sprintf("Unable to load city \"%s\".", string(q))
}

type City struct {
	Name       string `json:"name" example:"Paris"`
	Country    string `json:"country" example:"FR"`
	Population int64  `json:"population" example:"2148000"`
}

// Forecast is the upstream answer before aggregation.
type Forecast struct {
	City     City      `json:"city"`
	Readings []Reading `json:"readings"`
}

// ForecastResult holds the per-day summaries in the order their days first appeared.
type ForecastResult struct {
	Query CityQuery    `json:"query" example:"Paris"`
	City  City         `json:"city"`
	Days  []DaySummary `json:"days"`
}

// FirstDays returns at most n leading summaries.
func (r ForecastResult) FirstDays(n int) []DaySummary {
	if n < 0 {
		n = 0
	}
	if len(r.Days) <= n {
		return r.Days
	}
	return r.Days[:n]
}
