package service

import (
	"fmt"
	"time"

	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/pkg/utils"
)

// CurrentResponse is the OpenWeatherMap current weather payload. Nested
// blocks are pointers so a missing block can be told apart from zero values.
type CurrentResponse struct {
	Name    string           `json:"name"`
	Sys     *SysBlock        `json:"sys"`
	Main    *MainBlock       `json:"main"`
	Weather []ConditionBlock `json:"weather"`
	Wind    *WindBlock       `json:"wind"`
}

// ForecastResponse is the OpenWeatherMap 5 day / 3 hour forecast payload.
type ForecastResponse struct {
	List []ForecastSample `json:"list"`
}

// ForecastSample is one 3-hour entry of the forecast feed.
type ForecastSample struct {
	Dt      int64            `json:"dt"`
	Main    *MainBlock       `json:"main"`
	Weather []ConditionBlock `json:"weather"`
}

type SysBlock struct {
	Country string `json:"country"`
}

type MainBlock struct {
	Temp     *float64 `json:"temp"`
	Humidity int      `json:"humidity"`
}

type ConditionBlock struct {
	Main string `json:"main"`
	Icon string `json:"icon"`
}

type WindBlock struct {
	Speed float64 `json:"speed"`
}

// MapCurrent converts a current weather payload into CurrentConditions.
// The temperature is rounded; humidity and wind speed pass through unchanged.
func MapCurrent(raw *CurrentResponse) (domain.CurrentConditions, error) {
	switch {
	case raw == nil:
		return domain.CurrentConditions{}, fmt.Errorf("mapper: empty current response: %w", domain.ErrMalformedPayload)
	case raw.Name == "":
		return domain.CurrentConditions{}, fmt.Errorf("mapper: current response has no name: %w", domain.ErrMalformedPayload)
	case raw.Main == nil || raw.Main.Temp == nil:
		return domain.CurrentConditions{}, fmt.Errorf("mapper: current response has no main.temp: %w", domain.ErrMalformedPayload)
	case len(raw.Weather) == 0:
		return domain.CurrentConditions{}, fmt.Errorf("mapper: current response has no weather entry: %w", domain.ErrMalformedPayload)
	case raw.Sys == nil:
		return domain.CurrentConditions{}, fmt.Errorf("mapper: current response has no sys block: %w", domain.ErrMalformedPayload)
	case raw.Wind == nil:
		return domain.CurrentConditions{}, fmt.Errorf("mapper: current response has no wind block: %w", domain.ErrMalformedPayload)
	}

	return domain.CurrentConditions{
		City:        raw.Name,
		Country:     raw.Sys.Country,
		Temperature: utils.RoundToInt(*raw.Main.Temp),
		Condition:   raw.Weather[0].Main,
		Humidity:    raw.Main.Humidity,
		Icon:        raw.Weather[0].Icon,
		WindSpeed:   raw.Wind.Speed,
	}, nil
}

// MapForecast validates a forecast payload and reduces it to at most
// MaxForecastDays entries relative to now in loc.
func MapForecast(raw *ForecastResponse, now time.Time, loc *time.Location) ([]domain.ForecastDay, error) {
	if raw == nil || raw.List == nil {
		return nil, fmt.Errorf("mapper: forecast response has no list: %w", domain.ErrMalformedPayload)
	}
	for i, s := range raw.List {
		if s.Main == nil || s.Main.Temp == nil {
			return nil, fmt.Errorf("mapper: forecast entry %d has no main.temp: %w", i, domain.ErrMalformedPayload)
		}
		if len(s.Weather) == 0 {
			return nil, fmt.Errorf("mapper: forecast entry %d has no weather entry: %w", i, domain.ErrMalformedPayload)
		}
	}
	return ReduceForecast(raw.List, now, loc), nil
}
