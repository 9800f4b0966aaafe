package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherService_GetCurrent(t *testing.T) {
	up := newUpstream(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))
	client := up.client("secret-key")

	resp, err := client.GetCurrent(context.Background(), "New York")
	require.NoError(t, err)
	require.NotNil(t, resp.Main)
	assert.Equal(t, "New York", resp.Name)
	assert.InDelta(t, 21.6, *resp.Main.Temp, 0.001)

	q := up.lastQuery.Load().(url.Values)
	assert.Equal(t, "New York", q.Get("q"))
	assert.Equal(t, "secret-key", q.Get("appid"))
	assert.Equal(t, "metric", q.Get("units"))
}

func TestWeatherService_GetForecast(t *testing.T) {
	up := newUpstream(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))

	resp, err := up.client("secret-key").GetForecast(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Len(t, resp.List, 40)
	assert.Equal(t, int32(1), up.forecastCalls.Load())
}

func TestWeatherService_StatusError(t *testing.T) {
	up := newUpstream(t, time.Now())
	up.set(func(u *upstream) { u.currentStatus = http.StatusNotFound })

	_, err := up.client("secret-key").GetCurrent(context.Background(), "xyz123")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "current", se.Endpoint)
}

func TestWeatherService_TransportErrorHidesKey(t *testing.T) {
	up := newUpstream(t, time.Now())
	client := up.client("super-secret-appid")
	up.Close()

	_, err := client.GetCurrent(context.Background(), "Tokyo")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret-appid")

	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestWeatherService_DecodeError(t *testing.T) {
	up := newUpstream(t, time.Now())
	up.set(func(u *upstream) { u.rawForecast = "{not json" })

	_, err := up.client("secret-key").GetForecast(context.Background(), "Tokyo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestWeatherService_HasCredential(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{PlaceholderAPIKey, false},
		{"0123456789abcdef", true},
	}

	for _, tt := range tests {
		client := NewWeatherService(tt.key, "", "", 0)
		assert.Equal(t, tt.want, client.HasCredential(), "key %q", tt.key)
	}
}

func TestNewWeatherService_Defaults(t *testing.T) {
	client := NewWeatherService("k", "", "", 0)
	assert.Equal(t, DefaultCurrentURL, client.currentURL)
	assert.Equal(t, DefaultForecastURL, client.forecastURL)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
}
