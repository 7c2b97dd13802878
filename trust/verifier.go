// Package trust verifies that a broker URL resolves to a trusted address
// before a client is allowed to use it.
package trust

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/identops/brokerclient/iprange"
)

// Resolver resolves host names to addresses. *net.Resolver satisfies it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

var _ Resolver = (*net.Resolver)(nil)

// UnresolvableHostError reports that no usable address could be obtained
// for the configured broker URL, either because the URL carries no host or
// because name resolution failed.
type UnresolvableHostError struct {
	Host string
	Err  error
}

func (e *UnresolvableHostError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("trust: could not resolve broker host %q", e.Host)
	}

	return fmt.Sprintf("trust: could not resolve broker host %q: %v", e.Host, e.Err)
}

func (e *UnresolvableHostError) Unwrap() error { return e.Err }

// UntrustedBrokerError reports that the broker resolved to an address
// outside the trusted ranges. Addr is the offending address.
type UntrustedBrokerError struct {
	Host string
	Addr netip.Addr
}

func (e *UntrustedBrokerError) Error() string {
	return fmt.Sprintf("trust: broker host %q resolves to %s, outside the trusted IP ranges", e.Host, e.Addr)
}

var errNoHost = errors.New("URL has no host component")

// Verifier checks that a broker URL resolves to an address inside a trusted
// range set.
//
// The check runs once, at client construction time. DNS answers can change
// afterwards; per-request re-verification is intentionally not performed.
// This one-time trust establishment is a known limitation, not something
// callers should work around by re-creating clients per request.
type Verifier struct {
	resolver Resolver
	log      zerolog.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithResolver replaces the default net.DefaultResolver.
func WithResolver(r Resolver) Option {
	return func(v *Verifier) {
		if r != nil {
			v.resolver = r
		}
	}
}

// WithLogger sets the verifier's logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Verifier) {
		v.log = l
	}
}

// New creates a Verifier.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		resolver: net.DefaultResolver,
		log:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Verify extracts the host from baseURL, resolves it and asserts that the
// resolved address falls within ranges. Hosts that are already IP literals
// skip resolution. Only the first resolver answer is consulted, matching
// single-address resolution semantics.
func (v *Verifier) Verify(ctx context.Context, baseURL string, ranges *iprange.Set) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return &UnresolvableHostError{Host: baseURL, Err: err}
	}

	host := u.Hostname()
	if host == "" {
		return &UnresolvableHostError{Host: baseURL, Err: errNoHost}
	}

	resolved, err := v.resolveAddr(ctx, host)
	if err != nil {
		return err
	}

	if !ranges.Contains(resolved) {
		v.log.Error().Str("host", host).Str("addr", resolved.String()).
			Msg("broker resolves outside the trusted IP ranges")
		return &UntrustedBrokerError{Host: host, Addr: resolved}
	}

	v.log.Debug().Str("host", host).Str("addr", resolved.String()).Msg("broker address verified")

	return nil
}

func (v *Verifier) resolveAddr(ctx context.Context, host string) (netip.Addr, error) {
	if a, err := netip.ParseAddr(host); err == nil {
		return a, nil
	}

	addrs, err := v.resolver.LookupHost(ctx, host)
	if err != nil {
		return netip.Addr{}, &UnresolvableHostError{Host: host, Err: err}
	}
	if len(addrs) == 0 {
		return netip.Addr{}, &UnresolvableHostError{Host: host}
	}

	a, err := netip.ParseAddr(addrs[0])
	if err != nil {
		// A resolver echoing the input back unchanged lands here.
		return netip.Addr{}, &UnresolvableHostError{Host: host, Err: err}
	}

	return a, nil
}
