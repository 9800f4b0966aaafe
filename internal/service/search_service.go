package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/metrics"
)

// SearchService runs city searches: current conditions first, then a
// best-effort forecast, committing the outcome to the shared Session.
type SearchService struct {
	provider WeatherProvider
	store    CityStore
	session  *Session
	loc      *time.Location
	now      func() time.Time

	restoreOnce sync.Once
}

// NewSearchService creates a new search service. store may be nil, in
// which case nothing is persisted. loc is the zone used for "today" and
// weekday labels; nil means time.Local.
func NewSearchService(provider WeatherProvider, store CityStore, loc *time.Location) *SearchService {
	if loc == nil {
		loc = time.Local
	}
	return &SearchService{
		provider: provider,
		store:    store,
		session:  NewSession(),
		loc:      loc,
		now:      time.Now,
	}
}

// State returns a snapshot of the session state
func (s *SearchService) State() domain.SessionState {
	return s.session.Snapshot()
}

// Search looks up city and commits the result. The returned error is the
// outcome of this call even when a newer search has already taken over the
// session and this result was discarded. A forecast failure is not an error.
func (s *SearchService) Search(ctx context.Context, city string) error {
	id := uuid.NewString()[:8]
	token := s.session.begin(s.now())
	log.Printf("search[%s]: looking up %q", id, city)

	current, err := s.fetchCurrent(ctx, city)
	if err != nil {
		var se *domain.SearchError
		if !errors.As(err, &se) {
			se = domain.NewUpstreamError(err)
		}
		metrics.RecordSearch(string(se.Kind))
		if se.Err != nil {
			log.Printf("search[%s]: %s error: %v", id, se.Kind, se.Err)
		} else {
			log.Printf("search[%s]: %s error: %s", id, se.Kind, se.Message)
		}
		if !s.session.commitError(token, se.Message, s.now()) {
			s.discarded(id)
		}
		return se
	}

	forecast := s.fetchForecast(ctx, id, city)

	if !s.session.commitSuccess(token, current, forecast, city, s.now()) {
		s.discarded(id)
		return nil
	}
	metrics.RecordSearch("success")
	log.Printf("search[%s]: %s, %s %d°C, %d forecast days", id, current.City, current.Condition, current.Temperature, len(forecast))

	if s.store != nil {
		saved, err := s.session.persist(token, func() error {
			return s.store.SaveLastCity(ctx, city)
		})
		switch {
		case err != nil:
			log.Printf("search[%s]: failed to persist last city: %v", id, err)
		case !saved:
			s.discarded(id)
		}
	}
	return nil
}

// Restore runs once per service: if the store holds a last city, it is
// seeded into the session and searched. Later calls do nothing.
func (s *SearchService) Restore(ctx context.Context) (city string, err error) {
	s.restoreOnce.Do(func() {
		if s.store == nil {
			return
		}
		var ok bool
		city, ok, err = s.store.LastCity(ctx)
		if err != nil {
			err = fmt.Errorf("search: failed to read last city: %w", err)
			return
		}
		if !ok || city == "" {
			city = ""
			return
		}
		log.Printf("search: restoring last city %q", city)
		s.session.seedLastCity(city)
		err = s.Search(ctx, city)
	})
	return city, err
}

func (s *SearchService) fetchCurrent(ctx context.Context, city string) (domain.CurrentConditions, error) {
	if !s.provider.HasCredential() {
		return domain.CurrentConditions{}, domain.NewConfigurationError()
	}

	raw, err := s.provider.GetCurrent(ctx, city)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			switch se.StatusCode {
			case http.StatusUnauthorized:
				return domain.CurrentConditions{}, domain.NewAuthError(err)
			case http.StatusNotFound:
				return domain.CurrentConditions{}, domain.NewNotFoundError(city, err)
			default:
				return domain.CurrentConditions{}, domain.NewStatusError(se.StatusCode, err)
			}
		}
		return domain.CurrentConditions{}, domain.NewUpstreamError(err)
	}

	current, err := MapCurrent(raw)
	if err != nil {
		return domain.CurrentConditions{}, domain.NewUpstreamError(err)
	}
	return current, nil
}

// fetchForecast never fails; on any problem the forecast is empty.
func (s *SearchService) fetchForecast(ctx context.Context, id, city string) []domain.ForecastDay {
	raw, err := s.provider.GetForecast(ctx, city)
	if err == nil {
		var days []domain.ForecastDay
		days, err = MapForecast(raw, s.now(), s.loc)
		if err == nil {
			return days
		}
	}
	metrics.ForecastDegradedTotal.Inc()
	log.Printf("search[%s]: warning: forecast unavailable for %q: %v", id, city, err)
	return []domain.ForecastDay{}
}

func (s *SearchService) discarded(id string) {
	metrics.StaleResultsDiscarded.Inc()
	log.Printf("search[%s]: superseded by a newer search, result dropped", id)
}
