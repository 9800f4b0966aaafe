package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload is returned when a provider response lacks required fields.
var ErrMalformedPayload = errors.New("malformed payload")

// ErrorKind classifies a failed search.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindNotFound      ErrorKind = "not_found"
	KindAuth          ErrorKind = "auth"
	KindUpstream      ErrorKind = "upstream"
)

// SearchError is the user-facing failure of a search. Message is what the
// widget displays; Err keeps the underlying cause for logs.
type SearchError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// NewConfigurationError reports a missing or placeholder API key.
func NewConfigurationError() *SearchError {
	return &SearchError{
		Kind:    KindConfiguration,
		Message: "OpenWeatherMap API key is not configured. Set OPENWEATHER_API_KEY to a valid key.",
	}
}

// NewAuthError reports an upstream 401.
func NewAuthError(err error) *SearchError {
	return &SearchError{
		Kind:    KindAuth,
		Message: "Invalid API key. Please check your OpenWeatherMap API key. New keys can take up to 2 hours to activate.",
		Err:     err,
	}
}

// NewNotFoundError reports an upstream 404 for city.
func NewNotFoundError(city string, err error) *SearchError {
	return &SearchError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("City %q not found. Please check the spelling and try again.", city),
		Err:     err,
	}
}

// NewStatusError reports any other non-2xx upstream status.
func NewStatusError(status int, err error) *SearchError {
	return &SearchError{
		Kind:    KindUpstream,
		Message: fmt.Sprintf("Failed to fetch weather data (status %d).", status),
		Err:     err,
	}
}

// NewUpstreamError reports a transport failure or an unusable response.
func NewUpstreamError(err error) *SearchError {
	return &SearchError{
		Kind:    KindUpstream,
		Message: fmt.Sprintf("Failed to fetch weather data: %v", err),
		Err:     err,
	}
}

// IsKind reports whether err is a SearchError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *SearchError
	return errors.As(err, &se) && se.Kind == kind
}
