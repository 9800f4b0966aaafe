package domain

import (
	"fmt"
	"time"
)

// DefaultIconURLTemplate is the OpenWeatherMap icon endpoint; %s is the icon token.
const DefaultIconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

// CurrentConditions is an immutable snapshot of the weather at one location.
// It is replaced wholesale on every successful search.
type CurrentConditions struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temperature int     `json:"temperature"`
	Condition   string  `json:"condition"`
	Humidity    int     `json:"humidity"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
}

// ForecastDay is the representative reading chosen for one future calendar day.
type ForecastDay struct {
	Timestamp   int64  `json:"dt"`
	Weekday     string `json:"weekday"`
	Temperature int    `json:"temperature"`
	Icon        string `json:"icon"`
}

// Time returns the representative sample time.
func (f ForecastDay) Time() time.Time {
	return time.Unix(f.Timestamp, 0).UTC()
}

// IconURL builds the image URL for an icon token.
func IconURL(template, icon string) string {
	if template == "" {
		template = DefaultIconURLTemplate
	}
	return fmt.Sprintf(template, icon)
}
