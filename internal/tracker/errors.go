package tracker

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNotFound marks lookups for items, boards, or milestones that do not exist.
var ErrNotFound = errors.New("not found")

// UnavailableError reports that the tracker stayed unreachable for the whole
// retry budget. It wraps the last attempt's error.
type UnavailableError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *UnavailableError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("tracker unavailable: %s failed after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StatusError carries an HTTP-level failure from a tracker backend.
type StatusError struct {
	Status  int
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	if e == nil {
		return ""
	}
	if e.Code != "" && e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("tracker error: status %d", e.Status)
}

// IsRetryable reports whether an error is worth another attempt: network
// failures, timeouts, and 5xx responses are; 4xx responses are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status >= 500 || statusErr.Status == 429
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
