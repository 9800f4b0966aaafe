package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/weatherwidget/backend/internal/config"
	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/repository"
	"github.com/weatherwidget/backend/internal/service"
	"github.com/weatherwidget/backend/internal/view"
	"github.com/weatherwidget/backend/pkg/utils"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("weather-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: weather-cli [-config file] [city...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	store, err := repository.Open(ctx, cfg.Storage)
	if err != nil {
		log.Printf("Warning: Could not open %s store, last city will not be saved: %v", cfg.Storage.Driver, err)
	} else {
		defer store.Close()
	}

	timeout, _ := cfg.HTTPTimeout()
	loc, _ := cfg.Location()
	weatherSvc := service.NewWeatherService(cfg.OpenWeather.APIKey, cfg.OpenWeather.CurrentURL, cfg.OpenWeather.ForecastURL, timeout)
	searchSvc := service.NewSearchService(weatherSvc, store, loc)

	ctx, cancel := context.WithTimeout(ctx, 2*timeout+5*time.Second)
	defer cancel()

	city := utils.NormalizeCity(strings.Join(fs.Args(), " "))
	if city != "" {
		_ = searchSvc.Search(ctx, city)
	} else {
		restored, err := searchSvc.Restore(ctx)
		if err != nil && restored == "" {
			fmt.Fprintln(stderr, err)
			return exitError
		}
		if restored == "" {
			fs.Usage()
			fmt.Fprintln(stderr, "no city given and no previous search stored")
			return exitUsage
		}
	}

	state := searchSvc.State()
	fmt.Fprintln(stdout, view.RenderTerminal(state, cfg.OpenWeather.IconURL))
	if state.Status == domain.StatusError {
		return exitError
	}
	return exitOK
}
