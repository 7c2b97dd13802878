package brokerclient

import "context"

// SiteStatus probes the broker's health endpoint. Any 2xx answer means the
// site is up and yields "OK"; everything else is a ServiceError.
func (c *Client) SiteStatus(ctx context.Context) (string, error) {
	resp, err := c.send(ctx, opSiteStatus, nil, nil)
	if err != nil {
		return "", err
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return "", c.unexpected(opSiteStatus, resp)
	}

	return "OK", nil
}
