package brokerclient

import (
	"context"
	"net/http"
)

// UserParams is the field set accepted by CreateUser and UpdateUser. The
// JSON names follow the broker's API.
type UserParams struct {
	EmployeeID   string   `json:"employee_id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	DisplayName  string   `json:"display_name"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Active       bool     `json:"active"`
	Locked       bool     `json:"locked"`
	ManagerEmail string   `json:"manager_email,omitempty"`
	RequireMFA   bool     `json:"require_mfa"`
	SpouseEmail  string   `json:"spouse_email,omitempty"`
	Hide         bool     `json:"hide"`
	Groups       []string `json:"groups,omitempty"`
}

// Authenticate checks a username/password pair. It returns the user's
// fields on success and nil when the broker rejects the credentials
// (HTTP 400). Bad credentials are an expected outcome, not an error.
func (c *Client) Authenticate(ctx context.Context, username, password string) (map[string]any, error) {
	resp, err := c.send(ctx, opAuthenticate, nil, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return c.object(opAuthenticate, resp)
	case http.StatusBadRequest:
		return nil, nil
	default:
		return nil, c.unexpected(opAuthenticate, resp)
	}
}

// AuthenticateNewUser redeems an invite for a first-time user. It returns
// the user's fields on success and nil when the invite is invalid
// (HTTP 400).
func (c *Client) AuthenticateNewUser(ctx context.Context, username, password, inviteCode string) (map[string]any, error) {
	resp, err := c.send(ctx, opAuthenticateNewUser, nil, map[string]string{
		"username":    username,
		"password":    password,
		"invite_code": inviteCode,
	})
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return c.object(opAuthenticateNewUser, resp)
	case http.StatusBadRequest:
		return nil, nil
	default:
		return nil, c.unexpected(opAuthenticateNewUser, resp)
	}
}

// CreateUser registers a new user record and returns it.
func (c *Client) CreateUser(ctx context.Context, params UserParams) (map[string]any, error) {
	resp, err := c.send(ctx, opCreateUser, nil, params)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, c.unexpected(opCreateUser, resp)
	}

	return c.object(opCreateUser, resp)
}

// UpdateUser replaces the record identified by employeeID and returns the
// updated fields.
func (c *Client) UpdateUser(ctx context.Context, employeeID string, params UserParams) (map[string]any, error) {
	resp, err := c.send(ctx, opUpdateUser, map[string]string{"employee_id": employeeID}, params)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, c.unexpected(opUpdateUser, resp)
	}

	return c.object(opUpdateUser, resp)
}

// DeactivateUser disables the user identified by employeeID. The broker
// answers 200 with an empty body here rather than 204; only 200 counts as
// success.
func (c *Client) DeactivateUser(ctx context.Context, employeeID string) error {
	resp, err := c.send(ctx, opDeactivateUser, map[string]string{"employee_id": employeeID}, nil)
	if err != nil {
		return err
	}

	if resp.StatusCode() != http.StatusOK {
		return c.unexpected(opDeactivateUser, resp)
	}

	return nil
}

// GetUser fetches the record identified by employeeID. It returns nil
// without an error when the broker reports no such user (HTTP 204).
func (c *Client) GetUser(ctx context.Context, employeeID string) (map[string]any, error) {
	resp, err := c.send(ctx, opGetUser, map[string]string{"employee_id": employeeID}, nil)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return c.object(opGetUser, resp)
	case http.StatusNoContent:
		return nil, nil
	default:
		return nil, c.unexpected(opGetUser, resp)
	}
}

// ListUsers returns all user records known to the broker.
func (c *Client) ListUsers(ctx context.Context) ([]map[string]any, error) {
	resp, err := c.send(ctx, opListUsers, nil, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, c.unexpected(opListUsers, resp)
	}

	return c.objectList(opListUsers, resp)
}

// SetPassword sets the user's password and returns the broker's password
// metadata (expiry and the like).
func (c *Client) SetPassword(ctx context.Context, employeeID, password string) (map[string]any, error) {
	resp, err := c.send(ctx, opSetPassword, map[string]string{"employee_id": employeeID}, map[string]string{
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, c.unexpected(opSetPassword, resp)
	}

	return c.object(opSetPassword, resp)
}
