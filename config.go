package brokerclient

import "time"

// DefaultTimeout bounds each broker call unless Config.Timeout overrides it.
const DefaultTimeout = 30 * time.Second

// Config carries the client's construction arguments. It is copied at
// construction and never mutated afterwards.
type Config struct {
	// BaseURL is the broker's base URL, e.g. "https://broker.example.com".
	BaseURL string

	// AccessToken is sent as a bearer token on every request.
	AccessToken string

	// TrustedIPRanges lists CIDR blocks (or bare addresses) the broker's
	// resolved address must fall within. Required unless
	// InsecureSkipIPCheck is set.
	TrustedIPRanges []string

	// InsecureSkipIPCheck disables the construction-time broker IP
	// verification. The check is enabled by default.
	InsecureSkipIPCheck bool

	// Timeout bounds each HTTP call. Zero means DefaultTimeout.
	Timeout time.Duration
}
