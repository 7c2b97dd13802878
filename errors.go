package brokerclient

import (
	"errors"
	"fmt"
)

// ErrConfig marks invalid construction arguments: empty base URL or access
// token, or a missing trusted-range list while the broker IP check is
// enabled. Configuration errors are raised before any network I/O.
var ErrConfig = errors.New("broker: invalid configuration")

// ServiceError is returned when an operation receives a status code outside
// its expected set. Op is a stable identifier of the call site, so operators
// can tell which operation failed even when many share a status code.
type ServiceError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("broker: %s: unexpected response %d: %s", e.Op, e.StatusCode, e.Body)
}

// RateLimitError is returned when MFA verification hits the broker's rate
// limit (HTTP 429). Callers can back off and retry, unlike with a
// ServiceError.
type RateLimitError struct {
	Op string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("broker: %s: MFA verification rate limited by the broker", e.Op)
}
