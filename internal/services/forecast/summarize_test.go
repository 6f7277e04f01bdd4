package forecast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"city-forecast/internal/models"
	"city-forecast/internal/services/forecast"
)

func reading(ts string, temp float64, humidity, clouds int, category string) models.Reading {
	return models.Reading{
		Timestamp:   ts,
		Temperature: temp,
		Humidity:    humidity,
		Clouds:      clouds,
		Category:    category,
	}
}

func TestSummarize_Empty(t *testing.T) {
	summaries, err := forecast.Summarize(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summaries.Len())
	assert.Empty(t, summaries.Days())
}

func TestSummarize_FoldsSameDay(t *testing.T) {
	summaries, err := forecast.Summarize([]models.Reading{
		reading("2025-07-25 15:00:00", 71.6, 64, 20, "Clouds"),
		reading("2025-07-25 18:00:00", 75.2, 50, 90, "Rain"),
		reading("2025-07-25 21:00:00", 66.0, 80, 0, "Clear"),
		reading("2025-07-26 00:00:00", 60.1, 88, 5, "Mist"),
	})
	require.NoError(t, err)
	require.Equal(t, 2, summaries.Len())

	day, ok := summaries.Get("2025-07-25")
	require.True(t, ok)
	assert.Equal(t, models.DaySummary{
		Day:      "2025-07-25",
		High:     75.2,
		Low:      66.0,
		Humidity: 64,
		Clouds:   20,
		Category: "Clouds",
	}, day)

	day, ok = summaries.Get("2025-07-26")
	require.True(t, ok)
	assert.Equal(t, 60.1, day.High)
	assert.Equal(t, 60.1, day.Low)
	assert.Equal(t, "Mist", day.Category)

	_, ok = summaries.Get("2025-07-27")
	assert.False(t, ok)
}

func TestSummarize_KeepsFirstSeenOrder(t *testing.T) {
	// Input order wins even when it is not lexicographic.
	summaries, err := forecast.Summarize([]models.Reading{
		reading("2025-12-31 21:00:00", 30, 1, 1, "Snow"),
		reading("2026-01-01 00:00:00", 28, 1, 1, "Snow"),
		reading("2025-12-30 21:00:00", 35, 1, 1, "Clear"),
	})
	require.NoError(t, err)

	var days []models.Day
	for _, d := range summaries.Days() {
		days = append(days, d.Day)
	}
	assert.Equal(t, []models.Day{"2025-12-31", "2026-01-01", "2025-12-30"}, days)
}

func TestSummarize_HighLowIgnoreOrderFirstSeenDoesNot(t *testing.T) {
	a := reading("2025-07-25 09:00:00", 60, 40, 10, "Clear")
	b := reading("2025-07-25 12:00:00", 80, 55, 60, "Clouds")
	c := reading("2025-07-25 15:00:00", 70, 70, 100, "Rain")

	permutations := [][]models.Reading{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}

	for _, perm := range permutations {
		summaries, err := forecast.Summarize(perm)
		require.NoError(t, err)

		day, ok := summaries.Get("2025-07-25")
		require.True(t, ok)
		assert.Equal(t, 80.0, day.High)
		assert.Equal(t, 60.0, day.Low)

		// Secondary fields come from whichever reading came first.
		assert.Equal(t, perm[0].Humidity, day.Humidity)
		assert.Equal(t, perm[0].Clouds, day.Clouds)
		assert.Equal(t, perm[0].Category, day.Category)
	}
}

func TestSummarize_Invariants(t *testing.T) {
	readings := []models.Reading{
		reading("2025-07-25 00:00:00", -3.5, 1, 1, "Snow"),
		reading("2025-07-25 03:00:00", 4.25, 1, 1, "Snow"),
		reading("2025-07-26 00:00:00", 10, 1, 1, "Rain"),
		reading("2025-07-26 03:00:00", -10, 1, 1, "Rain"),
		reading("2025-07-27 00:00:00", 0, 1, 1, "Drizzle"),
	}

	for n := 1; n <= len(readings); n++ {
		summaries, err := forecast.Summarize(readings[:n])
		require.NoError(t, err)

		assert.LessOrEqual(t, summaries.Len(), n)
		for _, d := range summaries.Days() {
			assert.GreaterOrEqual(t, d.High, d.Low, "day %s", d.Day)
		}
	}
}

func TestSummarize_MalformedTimestamp(t *testing.T) {
	for _, ts := range []string{"", "2025-07", "not-a-date-at-all"} {
		_, err := forecast.Summarize([]models.Reading{
			reading("2025-07-25 00:00:00", 1, 1, 1, "Clear"),
			reading(ts, 1, 1, 1, "Clear"),
		})
		assert.ErrorIs(t, err, forecast.ErrMalformedReading, "timestamp %q", ts)
	}
}

func TestSummarize_DaysAreCopies(t *testing.T) {
	summaries, err := forecast.Summarize([]models.Reading{reading("2025-07-25 00:00:00", 1, 1, 1, "Clear")})
	require.NoError(t, err)

	days := summaries.Days()
	days[0].High = 1000

	day, _ := summaries.Get("2025-07-25")
	assert.Equal(t, 1.0, day.High)
}
