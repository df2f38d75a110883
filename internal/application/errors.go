package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrTimeout           = errors.New("operation timed out")
	ErrServiceFailure    = errors.New("content service failure")
	ErrNotRecognized     = errors.New("title not recognized")
	ErrUnsupportedSource = errors.New("unsupported source")
	ErrInvalidOperation  = errors.New("invalid operation")

	// ErrMalformedResponse is a ServiceFailure: errors.Is(ErrMalformedResponse, ErrServiceFailure) holds
	ErrMalformedResponse = fmt.Errorf("%w: malformed response", ErrServiceFailure)
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ServiceError wraps a failure reported by the content service
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: content service failure", e.Op)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return target == ErrServiceFailure
}

// TimeoutError records which operation ran out of time
type TimeoutError struct {
	Op    string
	After string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Op, e.After)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// ErrorKind is the user-facing class of a failure
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindTimeout
	KindNotRecognized
	KindMalformed
	KindService
	KindSource
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNotRecognized:
		return "not_recognized"
	case KindMalformed:
		return "malformed_response"
	case KindService:
		return "service_failure"
	case KindSource:
		return "unsupported_source"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Classify maps an error to its kind. More specific kinds win.
func Classify(err error) ErrorKind {
	var verr *ValidationError
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrNotRecognized):
		return KindNotRecognized
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed
	case errors.Is(err, ErrServiceFailure):
		return KindService
	case errors.Is(err, ErrUnsupportedSource):
		return KindSource
	case errors.As(err, &verr):
		return KindValidation
	default:
		return KindUnknown
	}
}
