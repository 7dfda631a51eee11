package products

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/conf"
	"github.com/THANGADHIWAN/focal/internal/mockapi"
	"github.com/THANGADHIWAN/focal/internal/model"
	"github.com/THANGADHIWAN/focal/internal/service"
)

func newBackendSettings(t *testing.T) (*conf.Settings, *service.Services) {
	t.Helper()

	srv, err := mockapi.New(mockapi.Options{Seed: true})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	settings := &conf.Settings{}
	settings.API.URL = ts.URL + "/api/v1"
	settings.API.Timeout = 5 * time.Second
	settings.Metadata.CacheTTL = time.Minute

	client, err := api.New(api.Config{BaseURL: settings.API.URL, Timeout: settings.API.Timeout})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return settings, service.New(client)
}

func TestUpdateCommand_ChangesStatus(t *testing.T) {
	settings, svcs := newBackendSettings(t)

	cmd := Command(settings)
	cmd.SetArgs([]string{"update", "1", "--status", "COMPLETED"})
	require.NoError(t, cmd.Execute())

	product, err := svcs.Products.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, model.ProductCompleted, product.Status)
}

func TestUpdateCommand_RequiresAFieldFlag(t *testing.T) {
	settings, _ := newBackendSettings(t)

	cmd := Command(settings)
	cmd.SetArgs([]string{"update", "1"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}
