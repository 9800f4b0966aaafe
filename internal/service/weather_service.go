package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/weatherwidget/backend/internal/metrics"
)

const (
	DefaultCurrentURL  = "https://api.openweathermap.org/data/2.5/weather"
	DefaultForecastURL = "https://api.openweathermap.org/data/2.5/forecast"

	// PlaceholderAPIKey ships in sample configs and counts as unset.
	PlaceholderAPIKey = "your_api_key_here"
)

// WeatherProvider fetches raw provider payloads for a city.
type WeatherProvider interface {
	// HasCredential reports whether a usable API key is configured
	HasCredential() bool

	GetCurrent(ctx context.Context, city string) (*CurrentResponse, error)
	GetForecast(ctx context.Context, city string) (*ForecastResponse, error)
}

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather: %s returned status %d", e.Endpoint, e.StatusCode)
}

// WeatherService handles OpenWeatherMap requests
type WeatherService struct {
	apiKey      string
	currentURL  string
	forecastURL string
	httpClient  *http.Client
}

// NewWeatherService creates a new OpenWeatherMap client. Empty URLs fall back
// to the public endpoints; a zero timeout falls back to 10s.
func NewWeatherService(apiKey, currentURL, forecastURL string, timeout time.Duration) *WeatherService {
	if currentURL == "" {
		currentURL = DefaultCurrentURL
	}
	if forecastURL == "" {
		forecastURL = DefaultForecastURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WeatherService{
		apiKey:      apiKey,
		currentURL:  currentURL,
		forecastURL: forecastURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsUsableAPIKey reports whether key is neither blank nor the placeholder.
func IsUsableAPIKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != PlaceholderAPIKey
}

// HasCredential implements WeatherProvider
func (s *WeatherService) HasCredential() bool {
	return IsUsableAPIKey(s.apiKey)
}

// GetCurrent fetches current conditions for city
func (s *WeatherService) GetCurrent(ctx context.Context, city string) (*CurrentResponse, error) {
	var resp CurrentResponse
	if err := s.get(ctx, "current", s.currentURL, city, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetForecast fetches the 5 day / 3 hour forecast feed for city
func (s *WeatherService) GetForecast(ctx context.Context, city string) (*ForecastResponse, error) {
	var resp ForecastResponse
	if err := s.get(ctx, "forecast", s.forecastURL, city, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *WeatherService) get(ctx context.Context, endpoint, baseURL, city string, out any) error {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", s.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("weather: failed to create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstream(endpoint, 0, time.Since(start))
		// url.Error embeds the full request URL, appid included
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("weather: %s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.RecordUpstream(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("weather: failed to decode %s response: %w", endpoint, err)
	}
	return nil
}
