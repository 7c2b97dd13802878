package brokerclient_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/identops/brokerclient"
	"github.com/identops/brokerclient/brokertest"
)

func TestClient_SiteStatus(t *testing.T) {
	srv := brokertest.New()
	defer srv.Close()

	c := newTestClient(t, srv)

	t.Run("200 means OK", func(t *testing.T) {
		got, err := c.SiteStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "OK", got)
	})

	t.Run("any 2xx means OK", func(t *testing.T) {
		srv.Stub(http.MethodGet, "/api/v2/site/status", http.StatusAccepted, "")

		got, err := c.SiteStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "OK", got)
	})

	t.Run("unexpected status", func(t *testing.T) {
		srv.Stub(http.MethodGet, "/api/v2/site/status", http.StatusInternalServerError, "down")

		_, err := c.SiteStatus(context.Background())
		var se *brokerclient.ServiceError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
		assert.Equal(t, "broker.site_status", se.Op)
	})
}
