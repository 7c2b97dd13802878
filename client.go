// Package brokerclient is a typed client for the identity broker's HTTP
// API: user CRUD, authentication, MFA management and account-recovery
// methods.
//
// A Client verifies at construction time that the broker's hostname
// resolves to an address inside the configured trusted IP ranges and
// refuses to construct otherwise. The check runs exactly once; see
// package trust for the tradeoff.
//
// A Client is immutable after construction and safe for concurrent use.
// That safety is inherited from the underlying resty client, not added by
// this package.
package brokerclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/identops/brokerclient/iprange"
	"github.com/identops/brokerclient/trust"
)

// Client talks to the identity broker. Create one with New.
type Client struct {
	http     *resty.Client
	resolver trust.Resolver
	log      zerolog.Logger
	cfg      Config
}

// Option configures a Client before the trust check runs.
type Option func(*Client)

// WithLogger sets the client's logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithResolver replaces the resolver used for the construction-time broker
// IP check. Defaults to net.DefaultResolver.
func WithResolver(r trust.Resolver) Option {
	return func(c *Client) {
		c.resolver = r
	}
}

// WithHTTPClient supplies a preconfigured resty client, e.g. with proxy or
// TLS settings. Base URL, auth token and timeout are still applied from the
// Config.
func WithHTTPClient(hc *resty.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New validates cfg, runs the broker IP check unless disabled, and returns
// a ready client. Validation order matters: configuration-shape errors
// (ErrConfig) surface before any name resolution is attempted, so callers
// can tell a bad config from a bad network location.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL must not be empty", ErrConfig)
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: access token must not be empty", ErrConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		log: zerolog.Nop(),
		cfg: cfg,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !cfg.InsecureSkipIPCheck {
		if len(cfg.TrustedIPRanges) == 0 {
			return nil, fmt.Errorf("%w: trusted IP ranges are required unless the broker IP check is disabled", ErrConfig)
		}

		ranges, err := iprange.Parse(cfg.TrustedIPRanges)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}

		verifierOpts := []trust.Option{trust.WithLogger(c.log)}
		if c.resolver != nil {
			verifierOpts = append(verifierOpts, trust.WithResolver(c.resolver))
		}

		if err := trust.New(verifierOpts...).Verify(ctx, cfg.BaseURL, ranges); err != nil {
			return nil, err
		}
	}

	if c.http == nil {
		c.http = resty.New()
	}

	c.http.
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Accept", "application/json")

	c.http.OnBeforeRequest(func(cl *resty.Client, r *resty.Request) error {
		c.log.Debug().Str("method", r.Method).Str("url", r.URL).Msg("sending request")
		return nil
	})

	c.http.OnAfterResponse(func(cl *resty.Client, r *resty.Response) error {
		c.log.Debug().Str("status", r.Status()).Msg("received response")
		return nil
	})

	return c, nil
}

// send executes one operation from the call table. Status interpretation is
// left to the caller; only transport-level failures are errors here.
func (c *Client) send(ctx context.Context, op operation, pathParams map[string]string, body any) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(op.method, op.path)
	if err != nil {
		return nil, fmt.Errorf("broker: %s: %w", op.id, err)
	}

	return resp, nil
}

// unexpected wraps a response with a status code outside the operation's
// expected set.
func (c *Client) unexpected(op operation, resp *resty.Response) error {
	err := &ServiceError{
		Op:         op.id,
		StatusCode: resp.StatusCode(),
		Body:       string(resp.Body()),
	}
	c.log.Error().Str("op", op.id).Int("status", err.StatusCode).Msg("unexpected broker response")

	return err
}

// object decodes a JSON object body and strips the transport-level status
// field so callers only ever see domain fields.
func (c *Client) object(op operation, resp *resty.Response) (map[string]any, error) {
	body := map[string]any{}
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return nil, fmt.Errorf("broker: %s: decoding response body: %w", op.id, err)
		}
	}

	delete(body, "status")

	return body, nil
}

// objectList decodes a JSON array of objects, stripping the status field
// from each element.
func (c *Client) objectList(op operation, resp *resty.Response) ([]map[string]any, error) {
	var list []map[string]any
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &list); err != nil {
			return nil, fmt.Errorf("broker: %s: decoding response body: %w", op.id, err)
		}
	}

	for _, m := range list {
		delete(m, "status")
	}

	return list, nil
}
