package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/weatherwidget/backend/internal/config"
	"github.com/weatherwidget/backend/internal/delivery/http"
	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/repository"
	"github.com/weatherwidget/backend/internal/repository/memory"
	"github.com/weatherwidget/backend/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.HasCredential() {
		log.Println("Warning: OPENWEATHER_API_KEY is not set, searches will fail until it is configured")
	}

	// Storage
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store domain.CityStore
	store, err = repository.Open(ctx, cfg.Storage)
	if err != nil {
		log.Printf("Warning: Could not open %s store: %v", cfg.Storage.Driver, err)
		log.Println("Last city will be kept in memory only")
		store = memory.NewRepository()
	} else {
		log.Printf("Using %s store", cfg.Storage.Driver)
	}
	defer store.Close()

	// Dependency Injection: Services
	timeout, _ := cfg.HTTPTimeout()
	loc, _ := cfg.Location()
	weatherSvc := service.NewWeatherService(cfg.OpenWeather.APIKey, cfg.OpenWeather.CurrentURL, cfg.OpenWeather.ForecastURL, timeout)
	searchSvc := service.NewSearchService(weatherSvc, store, loc)

	// Cold start: search the last city once
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 2*timeout+5*time.Second)
	if city, err := searchSvc.Restore(restoreCtx); err != nil && city == "" {
		log.Printf("Warning: Could not read last city: %v", err)
	} else if err != nil {
		log.Printf("Restore search for %q failed: %v", city, err)
	} else if city != "" {
		log.Printf("Restored last city %q", city)
	}
	cancelRestore()

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:               "Weather Widget v1.0",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2*timeout + 5*time.Second,
		ErrorHandler:          http.ErrorHandler,
		DisableStartupMessage: cfg.IsProduction(),
	})

	// Middleware
	logFormat := "[${time}] ${status} - ${method} ${path} (${latency})\n"
	if cfg.IsProduction() {
		logFormat = "[${time}] ${ip} ${status} - ${method} ${path} (${latency}) ${error}\n"
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: logFormat,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, searchSvc, store, cfg.OpenWeather.IconURL)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}
