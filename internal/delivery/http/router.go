package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, searchSvc *service.SearchService, store domain.CityStore, iconTemplate string) {
	handler := NewHandler(searchSvc, store, iconTemplate)

	// Widget page
	app.Get("/", handler.Index)

	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/weather", handler.GetWeather)
		api.Post("/search", handler.Search)
	}
}
