package view

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"city-forecast/internal/models"
)

var weatherImages = map[string]string{
	"Clear":   "clear.png",
	"Clouds":  "clouds.png",
	"Drizzle": "drizzle.png",
	"Mist":    "mist.png",
	"Rain":    "rain.png",
	"Snow":    "snow.png",
}

type Image struct {
	Src string
	Alt string
}

// IconSet resolves weather categories to images under BaseURL.
type IconSet struct {
	BaseURL string
}

// Image returns an empty Src for categories without a picture; Alt always names the category.
func (i IconSet) Image(category string) Image {
	file, ok := weatherImages[category]
	if !ok {
		return Image{Alt: category}
	}

	base := i.BaseURL
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return Image{Src: base + file, Alt: category}
}

type CityView struct {
	Name       string
	Country    string
	Population string
}

func NewCityView(city models.City) CityView {
	return CityView{
		Name:       city.Name,
		Country:    city.Country,
		Population: strconv.FormatInt(city.Population, 10),
	}
}

type DayView struct {
	Name     string
	High     string
	Low      string
	Humidity string
	Clouds   string
	Image    Image
}

func NewDayView(s models.DaySummary, icons IconSet) DayView {
	return DayView{
		Name:     DayName(s.Day),
		High:     FormatTemperature(s.High),
		Low:      FormatTemperature(s.Low),
		Humidity: FormatPercent(s.Humidity),
		Clouds:   FormatPercent(s.Clouds),
		Image:    icons.Image(s.Category),
	}
}

// DayName gives the short English weekday of day in UTC, or the raw day if it does not parse.
func DayName(day models.Day) string {
	t, err := day.Time()
	if err != nil {
		return string(day)
	}
	return t.Format("Mon")
}

// RoundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
// v+0.5 is inexact just below .5, so the fraction is compared instead.
func RoundHalfUp(v float64) int {
	floor := math.Floor(v)
	if v-floor >= 0.5 {
		return int(floor) + 1
	}
	return int(floor)
}

func FormatTemperature(v float64) string {
	return fmt.Sprintf("%d°", RoundHalfUp(v))
}

func FormatPercent(v int) string {
	return fmt.Sprintf("%d %%", v)
}
