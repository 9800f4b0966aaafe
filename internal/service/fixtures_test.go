package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func currentFixture(city string, temp float64) *CurrentResponse {
	return &CurrentResponse{
		Name:    city,
		Sys:     &SysBlock{Country: "JP"},
		Main:    &MainBlock{Temp: ptr(temp), Humidity: 64},
		Weather: []ConditionBlock{{Main: "Clouds", Icon: "04d"}},
		Wind:    &WindBlock{Speed: 3.6},
	}
}

// feed builds n samples spaced by step starting at start. Temperatures are
// the sample index so a chosen sample can be identified in assertions.
func feed(start time.Time, n int, step time.Duration) []ForecastSample {
	out := make([]ForecastSample, 0, n)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * step)
		out = append(out, ForecastSample{
			Dt:      ts.Unix(),
			Main:    &MainBlock{Temp: ptr(float64(i))},
			Weather: []ConditionBlock{{Main: "Clear", Icon: ts.UTC().Format("15") + "d"}},
		})
	}
	return out
}

// upstream is an httptest stand-in for the OpenWeatherMap API.
type upstream struct {
	*httptest.Server

	mu             sync.Mutex
	currentStatus  int
	forecastStatus int
	currentBody    any
	forecastBody   any
	rawForecast    string

	currentCalls  atomic.Int32
	forecastCalls atomic.Int32
	lastQuery     atomic.Value
}

func newUpstream(t *testing.T, forecastStart time.Time) *upstream {
	t.Helper()
	u := &upstream{
		currentStatus:  http.StatusOK,
		forecastStatus: http.StatusOK,
		forecastBody:   &ForecastResponse{List: feed(forecastStart, 40, 3*time.Hour)},
	}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

func (u *upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.lastQuery.Store(r.URL.Query())
	u.mu.Lock()
	defer u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/weather"):
		u.currentCalls.Add(1)
		w.WriteHeader(u.currentStatus)
		if u.currentStatus != http.StatusOK {
			_, _ = w.Write([]byte(`{"cod":"` + http.StatusText(u.currentStatus) + `","message":"stub"}`))
			return
		}
		body := u.currentBody
		if body == nil {
			body = currentFixture(r.URL.Query().Get("q"), 21.6)
		}
		_ = json.NewEncoder(w).Encode(body)
	case strings.HasSuffix(r.URL.Path, "/forecast"):
		u.forecastCalls.Add(1)
		w.WriteHeader(u.forecastStatus)
		if u.forecastStatus != http.StatusOK {
			return
		}
		if u.rawForecast != "" {
			_, _ = w.Write([]byte(u.rawForecast))
			return
		}
		_ = json.NewEncoder(w).Encode(u.forecastBody)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (u *upstream) set(fn func(u *upstream)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fn(u)
}

func (u *upstream) client(apiKey string) *WeatherService {
	return NewWeatherService(apiKey, u.URL+"/data/2.5/weather", u.URL+"/data/2.5/forecast", 2*time.Second)
}
