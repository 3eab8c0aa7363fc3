package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type ErrorKind string

const (
	KindConfig  ErrorKind = "config"
	KindTimeout ErrorKind = "timeout"
	KindAPI     ErrorKind = "api"
	KindHTTP    ErrorKind = "http"
	KindEmpty   ErrorKind = "empty"
)

// GenerationError classifies failures of a generation call. Only
// timeout-kind failures are retried.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Code    string
	Status  int
	Err     error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindAPI:
		if e.Code != "" {
			return fmt.Sprintf("AI API error (%s): %s", e.Code, e.Message)
		}
		return "AI API error: " + e.Message
	case KindHTTP:
		if e.Message == "" {
			return fmt.Sprintf("AI API error: HTTP %d.", e.Status)
		}
		return fmt.Sprintf("AI API error: HTTP %d. %s", e.Status, e.Message)
	case KindTimeout:
		return "The AI request timed out."
	case KindEmpty:
		return "The AI response was empty."
	default:
		return e.Message
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a request timeout, as opposed to a
// cancellation or any other transport failure.
func IsTimeout(err error) bool {
	var genErr *GenerationError
	if errors.As(err, &genErr) && genErr.Kind == KindTimeout {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
