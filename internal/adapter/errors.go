package adapter

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors for provider failures. Callers match with errors.Is to
// decide whether to retry, back off, or surface the failure.
var (
	ErrRateLimited        = errors.New("adapter: rate limited")
	ErrTimeout            = errors.New("adapter: request timed out")
	ErrInvalidRequest     = errors.New("adapter: invalid request")
	ErrServiceUnavailable = errors.New("adapter: service unavailable")
)

// classified pairs a sentinel with the underlying provider error so both
// errors.Is matching and the original message survive.
type classified struct {
	sentinel error
	cause    error
}

func (c *classified) Error() string { return c.cause.Error() }

func (c *classified) Is(target error) bool { return target == c.sentinel }

func (c *classified) Unwrap() error { return c.cause }

// Classify wraps a provider error with the matching sentinel, keyed off the
// status codes and phrases the provider SDKs put in their messages. Errors
// that fit no category pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &classified{sentinel: ErrTimeout, cause: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return &classified{sentinel: ErrRateLimited, cause: err}
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return &classified{sentinel: ErrTimeout, cause: err}
	case strings.Contains(msg, "400") || strings.Contains(msg, "invalid request"):
		return &classified{sentinel: ErrInvalidRequest, cause: err}
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "api key"):
		return &classified{sentinel: ErrInvalidRequest, cause: err}
	case strings.Contains(msg, "503") || strings.Contains(msg, "502") ||
		strings.Contains(msg, "overloaded") || strings.Contains(msg, "connection refused"):
		return &classified{sentinel: ErrServiceUnavailable, cause: err}
	}
	return err
}
