package service

import (
	"sync"
	"time"

	"github.com/weatherwidget/backend/internal/domain"
)

// Session is the shared widget state. Every search takes a token from
// begin; commits carrying an older token are dropped so the most recently
// started search always owns the final state.
type Session struct {
	mu     sync.RWMutex
	state  domain.SessionState
	latest uint64

	// serializes durable writes so an older save cannot land after a newer one
	persistMu sync.Mutex
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{
		state: domain.SessionState{
			Status:   domain.StatusIdle,
			Forecast: []domain.ForecastDay{},
		},
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.state
	if s.state.Current != nil {
		cur := *s.state.Current
		out.Current = &cur
	}
	out.Forecast = make([]domain.ForecastDay, len(s.state.Forecast))
	copy(out.Forecast, s.state.Forecast)
	return out
}

// begin moves to loading, clears error and forecast and returns the new token.
func (s *Session) begin(now time.Time) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	s.state.Status = domain.StatusLoading
	s.state.Loading = true
	s.state.Error = ""
	s.state.Forecast = []domain.ForecastDay{}
	s.state.UpdatedAt = now
	return s.latest
}

func (s *Session) commitSuccess(token uint64, current domain.CurrentConditions, forecast []domain.ForecastDay, city string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.latest {
		return false
	}
	if forecast == nil {
		forecast = []domain.ForecastDay{}
	}
	s.state.Status = domain.StatusSuccess
	s.state.Loading = false
	s.state.Current = &current
	s.state.Forecast = forecast
	s.state.Error = ""
	s.state.LastCity = city
	s.state.UpdatedAt = now
	return true
}

func (s *Session) commitError(token uint64, message string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.latest {
		return false
	}
	s.state.Status = domain.StatusError
	s.state.Loading = false
	s.state.Current = nil
	s.state.Forecast = []domain.ForecastDay{}
	s.state.Error = message
	s.state.UpdatedAt = now
	return true
}

// persist runs save only while token is still the latest. Saves are
// serialized; it reports false when the token was superseded.
func (s *Session) persist(token uint64, save func() error) (bool, error) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	current := token == s.latest
	s.mu.RUnlock()
	if !current {
		return false, nil
	}
	return true, save()
}

// seedLastCity sets the durable city read at startup.
func (s *Session) seedLastCity(city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastCity = city
}
