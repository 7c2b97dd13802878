package brokerclient

import (
	"context"
	"net/http"
)

// CreateRecoveryMethod attaches a recovery contact mechanism (e.g. a backup
// email address) to the user and returns it.
func (c *Client) CreateRecoveryMethod(ctx context.Context, employeeID, methodType, value string) (map[string]any, error) {
	resp, err := c.send(ctx, opCreateMethod, map[string]string{"employee_id": employeeID}, map[string]string{
		"type":  methodType,
		"value": value,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, c.unexpected(opCreateMethod, resp)
	}

	return c.object(opCreateMethod, resp)
}

// GetRecoveryMethod fetches a single recovery method.
func (c *Client) GetRecoveryMethod(ctx context.Context, methodID, employeeID string) (map[string]any, error) {
	resp, err := c.send(ctx, opGetMethod, map[string]string{
		"employee_id": employeeID,
		"method_id":   methodID,
	}, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, c.unexpected(opGetMethod, resp)
	}

	return c.object(opGetMethod, resp)
}

// ListRecoveryMethods returns the user's recovery methods.
func (c *Client) ListRecoveryMethods(ctx context.Context, employeeID string) (map[string]any, error) {
	resp, err := c.send(ctx, opListMethods, map[string]string{"employee_id": employeeID}, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, c.unexpected(opListMethods, resp)
	}

	return c.object(opListMethods, resp)
}

// VerifyRecoveryMethod confirms ownership of a recovery method with a
// verification value and returns the method's updated state.
func (c *Client) VerifyRecoveryMethod(ctx context.Context, methodID, employeeID, value string) (map[string]any, error) {
	resp, err := c.send(ctx, opVerifyMethod, map[string]string{
		"employee_id": employeeID,
		"method_id":   methodID,
	}, map[string]string{
		"value": value,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, c.unexpected(opVerifyMethod, resp)
	}

	return c.object(opVerifyMethod, resp)
}

// DeleteRecoveryMethod removes a recovery method. The broker answers 200 or
// 204 depending on version; both count as success.
func (c *Client) DeleteRecoveryMethod(ctx context.Context, methodID, employeeID string) error {
	resp, err := c.send(ctx, opDeleteMethod, map[string]string{
		"employee_id": employeeID,
		"method_id":   methodID,
	}, nil)
	if err != nil {
		return err
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusNoContent:
		return nil
	default:
		return c.unexpected(opDeleteMethod, resp)
	}
}

// ResendRecoveryMethod asks the broker to resend the method's verification
// challenge. It returns true when the broker accepted the request.
func (c *Client) ResendRecoveryMethod(ctx context.Context, methodID, employeeID string) (bool, error) {
	resp, err := c.send(ctx, opResendMethod, map[string]string{
		"employee_id": employeeID,
		"method_id":   methodID,
	}, nil)
	if err != nil {
		return false, err
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusNoContent:
		return true, nil
	default:
		return false, c.unexpected(opResendMethod, resp)
	}
}
