package brokerclient

import (
	"context"
	"net/http"
)

// MFACreate provisions a new MFA configuration of the given type for the
// user and returns it, including the broker-assigned configuration id.
func (c *Client) MFACreate(ctx context.Context, employeeID, mfaType string) (map[string]any, error) {
	resp, err := c.send(ctx, opMFACreate, map[string]string{"employee_id": employeeID}, map[string]string{
		"type": mfaType,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, c.unexpected(opMFACreate, resp)
	}

	return c.object(opMFACreate, resp)
}

// MFAList returns the user's MFA configurations.
func (c *Client) MFAList(ctx context.Context, employeeID string) (map[string]any, error) {
	resp, err := c.send(ctx, opMFAList, map[string]string{"employee_id": employeeID}, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, c.unexpected(opMFAList, resp)
	}

	return c.object(opMFAList, resp)
}

// MFAUpdate changes fields of an existing MFA configuration and returns the
// updated configuration.
func (c *Client) MFAUpdate(ctx context.Context, mfaID, employeeID string, params map[string]any) (map[string]any, error) {
	resp, err := c.send(ctx, opMFAUpdate, map[string]string{
		"employee_id": employeeID,
		"mfa_id":      mfaID,
	}, params)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, c.unexpected(opMFAUpdate, resp)
	}

	return c.object(opMFAUpdate, resp)
}

// MFADelete removes an MFA configuration. Success is HTTP 204.
func (c *Client) MFADelete(ctx context.Context, mfaID, employeeID string) error {
	resp, err := c.send(ctx, opMFADelete, map[string]string{
		"employee_id": employeeID,
		"mfa_id":      mfaID,
	}, nil)
	if err != nil {
		return err
	}

	if resp.StatusCode() != http.StatusNoContent {
		return c.unexpected(opMFADelete, resp)
	}

	return nil
}

// MFAVerify checks a one-time value against an MFA configuration. It
// returns true on HTTP 204 and false on HTTP 400 (a wrong value is an
// expected outcome). HTTP 429 yields a RateLimitError so callers can back
// off instead of treating it as a hard failure.
func (c *Client) MFAVerify(ctx context.Context, mfaID, employeeID, value string) (bool, error) {
	resp, err := c.send(ctx, opMFAVerify, map[string]string{
		"employee_id": employeeID,
		"mfa_id":      mfaID,
	}, map[string]string{
		"value": value,
	})
	if err != nil {
		return false, err
	}

	switch resp.StatusCode() {
	case http.StatusNoContent:
		return true, nil
	case http.StatusBadRequest:
		return false, nil
	case http.StatusTooManyRequests:
		return false, &RateLimitError{Op: opMFAVerify.id}
	default:
		return false, c.unexpected(opMFAVerify, resp)
	}
}
