package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/api"
	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/service"
	"equipment-tracker-backend/internal/store"
)

// newTestClient runs the real router on a file store behind httptest.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "equipment.json"))
	require.NoError(t, err)

	cfg := config.Default().Server
	cfg.RateLimitPerSec = 0
	server := httptest.NewServer(api.NewRouter(service.NewService(s, nil, nil), cfg, nil))
	t.Cleanup(server.Close)

	return New(server.URL+"/", 5*time.Second)
}

func TestClient_Lifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	records, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	created, err := c.Create(ctx, model.EquipmentInput{Name: "Pump 1", Type: "Machine", Status: "Active", LastCleanedDate: "2024-01-15"})
	require.NoError(t, err)
	assert.Equal(t, model.Equipment{ID: 1, Name: "Pump 1", Type: "Machine", Status: "Active", LastCleanedDate: "2024-01-15"}, created)

	updated, err := c.Update(ctx, created.ID, model.EquipmentInput{Name: "Pump 1", Type: "Machine", Status: "Inactive", LastCleanedDate: "2024-01-20"})
	require.NoError(t, err)
	assert.Equal(t, model.EquipmentStatusInactive, updated.Status)
	assert.Equal(t, created.ID, updated.ID)

	records, err = c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Equipment{updated}, records)

	removed, err := c.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, removed)

	records, err = c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_ValidationError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Create(context.Background(), model.EquipmentInput{Type: "Machine", Status: "Active", LastCleanedDate: "2024-01-15"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, []string{"Name is required"}, apiErr.Errors)
	assert.Equal(t, "400: Name is required", apiErr.Error())
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Delete(context.Background(), 999)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.NotFound())
	assert.Equal(t, "Equipment not found", apiErr.Message)
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(url, time.Second).List(context.Background())

	var apiErr *APIError
	assert.Error(t, err)
	assert.False(t, errors.As(err, &apiErr))
}
