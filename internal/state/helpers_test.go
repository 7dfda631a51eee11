package state

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/service"
)

const testBaseURL = "http://lims.test/api/v1"

// newTestServices builds the service set over an httpmock-intercepted
// transport.
func newTestServices(t *testing.T) *service.Services {
	t.Helper()

	transport := &http.Client{}
	httpmock.ActivateNonDefault(transport)
	t.Cleanup(httpmock.DeactivateAndReset)

	client, err := api.New(api.Config{
		BaseURL:    testBaseURL,
		HTTPClient: transport,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return service.New(client)
}

func envelopeResponder(t *testing.T, status int, data any) httpmock.Responder {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	body := map[string]any{
		"data":    json.RawMessage(raw),
		"status":  status,
		"success": status < 400,
	}
	responder, err := httpmock.NewJsonResponder(status, body)
	require.NoError(t, err)
	return responder
}

func errorResponder(t *testing.T, status int, message string) httpmock.Responder {
	t.Helper()

	body := map[string]any{
		"data":    nil,
		"status":  status,
		"success": false,
		"message": message,
	}
	responder, err := httpmock.NewJsonResponder(status, body)
	require.NoError(t, err)
	return responder
}
