package service

import (
	"time"

	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/pkg/utils"
)

const (
	// MaxForecastDays caps the reduced forecast.
	MaxForecastDays = 5

	middayFirstHour = 11
	middayLastHour  = 13

	dayKeyLayout = "2006-01-02"
)

type dayBucket struct {
	key    string
	sample ForecastSample
}

// ReduceForecast picks one representative sample per calendar day.
//
// Samples are bucketed by the UTC date of their timestamp. The first sample
// seen for a day is kept unless a later sample for that day falls between
// 11:00 and 13:59 in loc, which then replaces it. The bucket whose key equals
// today's date in loc is dropped and at most MaxForecastDays buckets are
// returned in feed order. Samples must already be validated by MapForecast.
func ReduceForecast(samples []ForecastSample, now time.Time, loc *time.Location) []domain.ForecastDay {
	if loc == nil {
		loc = time.Local
	}

	index := make(map[string]int, MaxForecastDays+1)
	buckets := make([]dayBucket, 0, MaxForecastDays+1)

	for _, s := range samples {
		key := dayKey(s.Dt)
		i, seen := index[key]
		if !seen {
			index[key] = len(buckets)
			buckets = append(buckets, dayBucket{key: key, sample: s})
			continue
		}
		if isMidday(s.Dt, loc) {
			buckets[i].sample = s
		}
	}

	today := now.In(loc).Format(dayKeyLayout)
	days := make([]domain.ForecastDay, 0, MaxForecastDays)
	for _, b := range buckets {
		if b.key == today {
			continue
		}
		if len(days) == MaxForecastDays {
			break
		}
		days = append(days, toForecastDay(b.sample, loc))
	}
	return days
}

// dayKey uses the UTC calendar date, not the local one.
func dayKey(dt int64) string {
	return time.Unix(dt, 0).UTC().Format(dayKeyLayout)
}

func isMidday(dt int64, loc *time.Location) bool {
	h := time.Unix(dt, 0).In(loc).Hour()
	return h >= middayFirstHour && h <= middayLastHour
}

func toForecastDay(s ForecastSample, loc *time.Location) domain.ForecastDay {
	return domain.ForecastDay{
		Timestamp:   s.Dt,
		Weekday:     time.Unix(s.Dt, 0).In(loc).Format("Mon"),
		Temperature: utils.RoundToInt(*s.Main.Temp),
		Icon:        s.Weather[0].Icon,
	}
}
