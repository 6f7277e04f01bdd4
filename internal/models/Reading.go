package models

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar date in "2006-01-02" form, as found at the start of a reading timestamp.
type Day string

// DayOf truncates a "2006-01-02 15:04:05" timestamp to its calendar day.
func DayOf(timestamp string) (Day, error) {
	if len(timestamp) < len(dayLayout) {
		return "", fmt.Errorf("invalid timestamp: %q", timestamp)
	}

	day := Day(timestamp[:len(dayLayout)])
	if _, err := day.Time(); err != nil {
		return "", err
	}

	return day, nil
}

// Time returns midnight UTC of the day.
func (d Day) Time() (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, string(d), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %s: %w", string(d), err)
	}
	return t, nil
}

// Reading is one 3-hour forecast interval.
type Reading struct {
	Unix        int64   `json:"dt" example:"1753455600"`
	Timestamp   string  `json:"dt_txt" example:"2025-07-25 15:00:00"`
	Temperature float64 `json:"temp" example:"71.6"`
	Humidity    int     `json:"humidity" example:"64"`
	Clouds      int     `json:"clouds" example:"20"`
	Category    string  `json:"category" example:"Clouds"`
}
