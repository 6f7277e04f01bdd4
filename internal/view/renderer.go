package view

// Renderer is the display surface a Controller writes to. Day slots are numbered from 1.
type Renderer interface {
	SetInput(value string)
	SetValidationVisible(visible bool)
	ShowForecast()
	ShowLoading(text string)
	HideLoading()
	ShowRequestError(text string)
	HideRequestError()
	ShowResults()
	HideResults()
	SetCity(city CityView)
	SetDay(slot int, day DayView)
	ClearDay(slot int)
}
