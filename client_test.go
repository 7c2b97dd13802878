package brokerclient_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/identops/brokerclient"
	"github.com/identops/brokerclient/brokertest"
	"github.com/identops/brokerclient/trust"
)

type resolverFunc func(ctx context.Context, host string) ([]string, error)

func (f resolverFunc) LookupHost(ctx context.Context, host string) ([]string, error) {
	return f(ctx, host)
}

// newTestClient builds a client against the stub broker. The stub listens
// on a loopback IP literal, so 127.0.0.0/8 covers it without resolution.
func newTestClient(t *testing.T, srv *brokertest.Server) *brokerclient.Client {
	t.Helper()

	c, err := brokerclient.New(context.Background(), brokerclient.Config{
		BaseURL:         srv.URL,
		AccessToken:     brokertest.Token,
		TrustedIPRanges: []string{"127.0.0.0/8", "::1/128"},
	})
	require.NoError(t, err, "New")

	return c
}

func TestNew_configValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  brokerclient.Config
	}{
		{
			name: "New, empty base URL",
			cfg: brokerclient.Config{
				AccessToken:     "token",
				TrustedIPRanges: []string{"10.0.0.0/8"},
			},
		},
		{
			name: "New, empty access token",
			cfg: brokerclient.Config{
				BaseURL:         "https://broker.example.com",
				TrustedIPRanges: []string{"10.0.0.0/8"},
			},
		},
		{
			name: "New, IP check enabled without ranges",
			cfg: brokerclient.Config{
				BaseURL:     "https://broker.example.com",
				AccessToken: "token",
			},
		},
		{
			name: "New, malformed range",
			cfg: brokerclient.Config{
				BaseURL:         "https://broker.example.com",
				AccessToken:     "token",
				TrustedIPRanges: []string{"10.0.0.0/33"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A resolver that fails loudly proves config errors surface
			// before any resolution attempt.
			_, err := brokerclient.New(context.Background(), tt.cfg,
				brokerclient.WithResolver(resolverFunc(func(context.Context, string) ([]string, error) {
					t.Fatal("resolver must not be called for configuration errors")
					return nil, nil
				})))
			assert.ErrorIs(t, err, brokerclient.ErrConfig)
		})
	}
}

func TestNew_trustCheck(t *testing.T) {
	tests := []struct {
		name     string
		resolver trust.Resolver
		wantErr  assert.ErrorAssertionFunc
	}{
		{
			name: "New, broker inside trusted ranges",
			resolver: resolverFunc(func(context.Context, string) ([]string, error) {
				return []string{"10.1.2.3"}, nil
			}),
			wantErr: assert.NoError,
		},
		{
			name: "New, broker outside trusted ranges",
			resolver: resolverFunc(func(context.Context, string) ([]string, error) {
				return []string{"203.0.113.5"}, nil
			}),
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				var ute *trust.UntrustedBrokerError
				if !assert.ErrorAs(t, err, &ute, i...) {
					return false
				}
				return assert.Equal(t, "203.0.113.5", ute.Addr.String(), i...)
			},
		},
		{
			name: "New, unresolvable broker host",
			resolver: resolverFunc(func(context.Context, string) ([]string, error) {
				return nil, errors.New("no such host")
			}),
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				var ure *trust.UnresolvableHostError
				return assert.ErrorAs(t, err, &ure, i...)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := brokerclient.New(context.Background(), brokerclient.Config{
				BaseURL:         "https://broker.example.com",
				AccessToken:     "token",
				TrustedIPRanges: []string{"10.0.0.0/8"},
			}, brokerclient.WithResolver(tt.resolver))

			if !tt.wantErr(t, err, "New") {
				return
			}
			if err != nil {
				assert.Nil(t, c, "no client on trust failure")
			}
		})
	}
}

func TestNew_skipIPCheck(t *testing.T) {
	c, err := brokerclient.New(context.Background(), brokerclient.Config{
		BaseURL:             "https://broker.example.com",
		AccessToken:         "token",
		InsecureSkipIPCheck: true,
	}, brokerclient.WithResolver(resolverFunc(func(context.Context, string) ([]string, error) {
		t.Fatal("resolver must not be called when the check is disabled")
		return nil, nil
	})))
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestClient_unauthorizedToken(t *testing.T) {
	srv := brokertest.New()
	defer srv.Close()

	c, err := brokerclient.New(context.Background(), brokerclient.Config{
		BaseURL:         srv.URL,
		AccessToken:     "wrong-token",
		TrustedIPRanges: []string{"127.0.0.0/8", "::1/128"},
	})
	require.NoError(t, err)

	_, err = c.ListUsers(context.Background())
	var se *brokerclient.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 401, se.StatusCode)
	assert.Equal(t, "broker.list_users", se.Op)
}
