package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyURL is returned for empty or whitespace-only input
	ErrEmptyURL = errors.New("URL is required")

	// ErrBusy is returned while an analysis for the same client is outstanding
	ErrBusy = errors.New("an analysis is already in progress")
)

// DefaultAppMessage is shown when the service reports failure without a message
const DefaultAppMessage = "An error occurred during analysis"

// AppError is a failure reported by the analysis service (success=false)
type AppError struct {
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return DefaultAppMessage
	}
	return e.Message
}

// TransportError is a failure to reach the service or to read its response
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage returns the banner text for an error returned by Client.Analyze
func UserMessage(err error) string {
	var appErr *AppError
	var transportErr *TransportError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyURL):
		return "Please enter a URL to analyze"
	case errors.Is(err, ErrBusy):
		return "An analysis is already in progress"
	case errors.As(err, &appErr):
		return appErr.Error()
	case errors.As(err, &transportErr):
		return "Failed to analyze the URL: " + transportErr.Err.Error()
	default:
		return "Failed to analyze the URL: " + err.Error()
	}
}
