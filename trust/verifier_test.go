package trust

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/identops/brokerclient/iprange"
)

type resolverFunc func(ctx context.Context, host string) ([]string, error)

func (f resolverFunc) LookupHost(ctx context.Context, host string) ([]string, error) {
	return f(ctx, host)
}

func staticResolver(addrs ...string) Resolver {
	return resolverFunc(func(context.Context, string) ([]string, error) {
		return addrs, nil
	})
}

func failingResolver(err error) Resolver {
	return resolverFunc(func(context.Context, string) ([]string, error) {
		return nil, err
	})
}

func TestVerifier_Verify(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		ranges   []string
		resolver Resolver
		wantErr  assert.ErrorAssertionFunc
	}{
		{
			name:     "Verify, resolved address in range",
			baseURL:  "https://broker.example.com",
			ranges:   []string{"10.0.0.0/8"},
			resolver: staticResolver("10.1.2.3"),
			wantErr:  assert.NoError,
		},
		{
			name:     "Verify, resolved address out of range",
			baseURL:  "https://broker.example.com",
			ranges:   []string{"10.0.0.0/8"},
			resolver: staticResolver("203.0.113.9"),
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				var ute *UntrustedBrokerError
				if !assert.ErrorAs(t, err, &ute, i...) {
					return false
				}
				return assert.Equal(t, "203.0.113.9", ute.Addr.String(), i...)
			},
		},
		{
			name:     "Verify, resolution failure",
			baseURL:  "https://broker.example.com",
			ranges:   []string{"10.0.0.0/8"},
			resolver: failingResolver(errors.New("no such host")),
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				var ure *UnresolvableHostError
				return assert.ErrorAs(t, err, &ure, i...)
			},
		},
		{
			name:     "Verify, resolver echoes host back",
			baseURL:  "https://broker.example.com",
			ranges:   []string{"10.0.0.0/8"},
			resolver: staticResolver("broker.example.com"),
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				var ure *UnresolvableHostError
				return assert.ErrorAs(t, err, &ure, i...)
			},
		},
		{
			name:     "Verify, resolver returns no addresses",
			baseURL:  "https://broker.example.com",
			ranges:   []string{"10.0.0.0/8"},
			resolver: staticResolver(),
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				var ure *UnresolvableHostError
				return assert.ErrorAs(t, err, &ure, i...)
			},
		},
		{
			name:    "Verify, URL without host",
			baseURL: "not a url",
			ranges:  []string{"10.0.0.0/8"},
			// An in-range answer would turn a wrongly attempted
			// resolution into a pass, so the failure proves the
			// resolver never ran.
			resolver: staticResolver("10.1.2.3"),
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				var ure *UnresolvableHostError
				return assert.ErrorAs(t, err, &ure, i...)
			},
		},
		{
			name:    "Verify, IP literal host skips resolution",
			baseURL: "https://10.4.5.6:8443",
			ranges:  []string{"10.0.0.0/8"},
			// An out-of-range answer would fail the check if the
			// literal were resolved instead of parsed.
			resolver: staticResolver("203.0.113.9"),
			wantErr:  assert.NoError,
		},
		{
			name:     "Verify, IPv6 literal host in range",
			baseURL:  "https://[fd00::1]:8443",
			ranges:   []string{"fd00::/8"},
			resolver: staticResolver(),
			wantErr:  assert.NoError,
		},
		{
			name:     "Verify, only first resolver answer counts",
			baseURL:  "https://broker.example.com",
			ranges:   []string{"10.0.0.0/8"},
			resolver: staticResolver("203.0.113.9", "10.1.2.3"),
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				var ute *UntrustedBrokerError
				return assert.ErrorAs(t, err, &ute, i...)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges, err := iprange.Parse(tt.ranges)
			require.NoError(t, err, "iprange.Parse")

			v := New(WithResolver(tt.resolver))

			err = v.Verify(context.Background(), tt.baseURL, ranges)
			tt.wantErr(t, err, fmt.Sprintf("Verify(%v)", tt.baseURL))
		})
	}
}

func TestNew_defaultResolver(t *testing.T) {
	v := New()
	require.NotNil(t, v.resolver)

	// A nil resolver option keeps the default.
	v = New(WithResolver(nil))
	assert.NotNil(t, v.resolver)
}
