package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"city-forecast/config"
	v1 "city-forecast/internal/controllers/http/v1"
	"city-forecast/internal/repositories"
	"city-forecast/internal/services/forecast"
	"city-forecast/internal/view"
	"city-forecast/pkg/httpserver"
	"city-forecast/pkg/logger"
	"city-forecast/pkg/observe"
)

// @title City Forecast
// @version 1.0.0
// @description Five-day forecast page for a single city, backed by the OpenWeatherMap 5 day / 3 hour forecast.
// @description The JSON API returns the same per-day summaries the page renders.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Forecast
// @tag.description Daily forecast summaries
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	writers := []io.Writer{os.Stdout}

	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		hook, err = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.DSN, cnf.Sentry.Debug)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot init sentry:", err)
			os.Exit(1)
		}
		writers = append(writers, hook)
	}

	l := logger.New(cnf.App.Name, logger.Options{
		Env:     cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
		Writers: writers,
	})

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  cnf.Server.ReadTimeout,
		WriteTimeout: cnf.Server.WriteTimeout,
		IdleTimeout:  cnf.Server.IdleTimeout,
	}, l)

	repo, err := repositories.InitForecastRepository(cnf, l)
	if err != nil {
		l.Fatal("cannot init forecast repository", map[string]any{"err": err.Error()})
	}

	service := forecast.NewForecastService(repo, l)

	icons := view.IconSet{BaseURL: cnf.Display.ImageBaseURL}
	sessions := view.NewSessionStore(service, view.Options{
		Target: cnf.Display.Target,
		Slots:  cnf.Display.Days,
		Icons:  icons,
	}, time.Duration(cnf.Session.IdleTTL)*time.Minute, l)

	v1.NewRouter(
		app,
		service,
		sessions,
		v1.RouterConfig{
			CookieName: cnf.Session.CookieName,
			MaxDays:    cnf.Display.Days,
			Icons:      icons,
		},
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":    cnf.Server.Port,
		"env":     cnf.App.Env,
		"version": cnf.App.Version,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
