package forecast

import (
	"github.com/pkg/errors"

	"city-forecast/internal/models"
)

var ErrMalformedReading = errors.New("malformed reading")

// DailySummaries maps days to their summaries and remembers the order days first appeared in.
type DailySummaries struct {
	order []models.Day
	byDay map[models.Day]*models.DaySummary
}

// Summarize folds chronologically ordered readings into one summary per calendar day.
// Readings are not re-sorted. Empty input gives an empty result.
func Summarize(readings []models.Reading) (*DailySummaries, error) {
	summaries := &DailySummaries{
		byDay: make(map[models.Day]*models.DaySummary),
	}

	for i, r := range readings {
		day, err := models.DayOf(r.Timestamp)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedReading, "reading %d: %v", i, err)
		}

		if s, ok := summaries.byDay[day]; ok {
			s.Fold(r)
			continue
		}

		s := models.NewDaySummary(day, r)
		summaries.byDay[day] = &s
		summaries.order = append(summaries.order, day)
	}

	return summaries, nil
}

func (d *DailySummaries) Len() int {
	return len(d.order)
}

func (d *DailySummaries) Get(day models.Day) (models.DaySummary, bool) {
	s, ok := d.byDay[day]
	if !ok {
		return models.DaySummary{}, false
	}
	return *s, true
}

// Days returns copies of the summaries in first-seen order.
func (d *DailySummaries) Days() []models.DaySummary {
	days := make([]models.DaySummary, 0, len(d.order))
	for _, day := range d.order {
		days = append(days, *d.byDay[day])
	}
	return days
}
