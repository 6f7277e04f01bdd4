package models

// DaySummary folds the readings of one day. High and Low are the extremes seen so far;
// Humidity, Clouds and Category are taken from the first reading of the day and never revised.
type DaySummary struct {
	Day      Day     `json:"day" example:"2025-07-25"`
	High     float64 `json:"high" example:"78.4"`
	Low      float64 `json:"low" example:"61.2"`
	Humidity int     `json:"humidity" example:"64"`
	Clouds   int     `json:"clouds" example:"20"`
	Category string  `json:"category" example:"Clouds"`
}

func NewDaySummary(day Day, r Reading) DaySummary {
	return DaySummary{
		Day:      day,
		High:     r.Temperature,
		Low:      r.Temperature,
		Humidity: r.Humidity,
		Clouds:   r.Clouds,
		Category: r.Category,
	}
}

// Fold widens the high/low range with another reading of the same day.
func (s *DaySummary) Fold(r Reading) {
	if r.Temperature < s.Low {
		s.Low = r.Temperature
	}
	if r.Temperature > s.High {
		s.High = r.Temperature
	}
}
