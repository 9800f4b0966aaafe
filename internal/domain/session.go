package domain

import "time"

// Status is the state of the most recent search.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// SessionState is a point-in-time copy of the widget state.
//
// Loading implies Error is empty. Current may still hold the previous
// result while loading; Forecast is cleared as soon as a search starts.
type SessionState struct {
	Status    Status             `json:"status"`
	Current   *CurrentConditions `json:"current"`
	Forecast  []ForecastDay      `json:"forecast"`
	Loading   bool               `json:"loading"`
	Error     string             `json:"error,omitempty"`
	LastCity  string             `json:"last_city,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// HasResult reports whether a current-conditions record is available.
func (s SessionState) HasResult() bool {
	return s.Current != nil
}
