package view

import (
	"fmt"
	"sync"
)

type Indicator struct {
	Visible bool
	Text    string
}

// DaySlot is one positional day cell; ID is "day1", "day2", ...
type DaySlot struct {
	ID string
	DayView
}

// PageView is a point-in-time copy of a Page, ready for a template.
type PageView struct {
	Target            string
	Input             string
	ForecastVisible   bool
	ValidationVisible bool
	Loading           Indicator
	RequestError      Indicator
	ResultsVisible    bool
	City              CityView
	Days              []DaySlot
}

// Page is an in-memory Renderer. It starts with everything but the input hidden.
type Page struct {
	mu   sync.RWMutex
	view PageView
}

var _ Renderer = (*Page)(nil)

func NewPage(target string, slots int) *Page {
	days := make([]DaySlot, slots)
	for i := range days {
		days[i].ID = fmt.Sprintf("day%d", i+1)
	}

	return &Page{
		view: PageView{
			Target: target,
			Days:   days,
		},
	}
}

func (p *Page) Snapshot() PageView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v := p.view
	v.Days = append([]DaySlot(nil), p.view.Days...)
	return v
}

func (p *Page) update(fn func(v *PageView)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.view)
}

func (p *Page) SetInput(value string) {
	p.update(func(v *PageView) { v.Input = value })
}

func (p *Page) SetValidationVisible(visible bool) {
	p.update(func(v *PageView) { v.ValidationVisible = visible })
}

func (p *Page) ShowForecast() {
	p.update(func(v *PageView) { v.ForecastVisible = true })
}

func (p *Page) ShowLoading(text string) {
	p.update(func(v *PageView) { v.Loading = Indicator{Visible: true, Text: text} })
}

func (p *Page) HideLoading() {
	p.update(func(v *PageView) { v.Loading.Visible = false })
}

func (p *Page) ShowRequestError(text string) {
	p.update(func(v *PageView) { v.RequestError = Indicator{Visible: true, Text: text} })
}

func (p *Page) HideRequestError() {
	p.update(func(v *PageView) { v.RequestError.Visible = false })
}

func (p *Page) ShowResults() {
	p.update(func(v *PageView) { v.ResultsVisible = true })
}

func (p *Page) HideResults() {
	p.update(func(v *PageView) { v.ResultsVisible = false })
}

func (p *Page) SetCity(city CityView) {
	p.update(func(v *PageView) { v.City = city })
}

// SetDay ignores slots the page does not have.
func (p *Page) SetDay(slot int, day DayView) {
	p.update(func(v *PageView) {
		if slot < 1 || slot > len(v.Days) {
			return
		}
		v.Days[slot-1].DayView = day
	})
}

func (p *Page) ClearDay(slot int) {
	p.SetDay(slot, DayView{})
}
