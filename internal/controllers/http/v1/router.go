package http

import (
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "city-forecast/docs"
	"city-forecast/internal/services/forecast"
	"city-forecast/internal/view"
	"city-forecast/pkg/logger"
)

//go:embed templates/index.html
var templatesFS embed.FS

type routes struct {
	service    *forecast.Service
	sessions   *view.SessionStore
	page       *template.Template
	cookieName string
	maxDays    int
	icons      view.IconSet
	l          *logger.Logger
}

type RouterConfig struct {
	CookieName string
	MaxDays    int
	Icons      view.IconSet
}

func NewRouter(
	app *fiber.App,
	forecastService *forecast.Service,
	sessions *view.SessionStore,
	cfg RouterConfig,
	l *logger.Logger,
) {
	r := &routes{
		service:    forecastService,
		sessions:   sessions,
		page:       template.Must(template.ParseFS(templatesFS, "templates/index.html")),
		cookieName: cfg.CookieName,
		maxDays:    cfg.MaxDays,
		icons:      cfg.Icons,
		l:          l,
	}

	// Swagger documentation, served from the OpenAPI document registered by the docs package
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// Page routes
	app.Get("/", r.handlePage)
	app.Get("/forecast", r.handleSubmit)
	app.Post("/validate", r.handleValidate)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/forecast", r.handleForecastCall)
}
