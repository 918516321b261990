package internal

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/api"
	"equipment-tracker-backend/internal/client"
	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/notification"
	"equipment-tracker-backend/internal/service"
	"equipment-tracker-backend/internal/store"
)

// channelPublisher hands every published payload to a channel.
type channelPublisher struct {
	mu       sync.Mutex
	subjects []string
	events   chan model.EquipmentEvent
}

func (p *channelPublisher) Publish(subject string, payload []byte) error {
	var ev model.EquipmentEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return err
	}
	p.mu.Lock()
	p.subjects = append(p.subjects, subject)
	p.mu.Unlock()
	p.events <- ev
	return nil
}

func (p *channelPublisher) next(t *testing.T) model.EquipmentEvent {
	t.Helper()
	select {
	case ev := <-p.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an equipment event")
		return model.EquipmentEvent{}
	}
}

// TestEquipmentLifecycle drives a record through create, update and delete over
// HTTP against a sqlite-backed service, checking the stored state and the
// published events at each step.
func TestEquipmentLifecycle(t *testing.T) {
	// --- Test Setup ---
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Storage.Backend = store.BackendSQLite
	cfg.Database.DSN = filepath.Join(t.TempDir(), "equipment.db")
	cfg.Server.RateLimitPerSec = 0
	cfg.Server.CacheTTLSeconds = 30
	require.NoError(t, cfg.Validate())

	s, err := store.Open(&cfg)
	require.NoError(t, err)
	defer s.Close()

	publisher := &channelPublisher{events: make(chan model.EquipmentEvent, 8)}
	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, publisher, cfg.Events.Subject, nil)
	ctx, cancel := context.WithCancel(context.Background())
	workerPool.Start(ctx)
	defer func() {
		cancel()
		workerPool.Wait()
	}()

	svc := service.NewService(s, workerPool, nil)
	server := httptest.NewServer(api.NewRouter(svc, cfg.Server, nil))
	defer server.Close()
	c := client.New(server.URL, 5*time.Second)

	// Prime the response cache so the mutations below must flush it.
	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	t.Run("Create", func(t *testing.T) {
		item, err := c.Create(ctx, model.EquipmentInput{
			Name: "  Mixer A  ", Type: "Mixer", Status: "Active", LastCleanedDate: "2024-03-05T10:00:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, model.Equipment{
			ID: 1, Name: "Mixer A", Type: model.EquipmentTypeMixer, Status: model.EquipmentStatusActive, LastCleanedDate: "2024-03-05",
		}, item)

		stored, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Equipment{item}, stored)

		ev := publisher.next(t)
		assert.Equal(t, model.EventCreated, ev.Action)
		assert.Equal(t, item, ev.Equipment)

		list, err := c.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Equipment{item}, list, "list must not be served from a stale cache")
	})

	t.Run("Update", func(t *testing.T) {
		item, err := c.Update(ctx, 1, model.EquipmentInput{
			Name: "Mixer A", Type: "Mixer", Status: "Under Maintenance", LastCleanedDate: "2024-03-06",
		})
		require.NoError(t, err)
		assert.Equal(t, model.EquipmentStatusUnderMaintenance, item.Status)
		assert.Equal(t, "2024-03-06", item.LastCleanedDate)

		ev := publisher.next(t)
		assert.Equal(t, model.EventUpdated, ev.Action)
		assert.Equal(t, int64(1), ev.Equipment.ID)
	})

	t.Run("Rejected update leaves the record untouched", func(t *testing.T) {
		_, err := c.Update(ctx, 1, model.EquipmentInput{Name: "Mixer A"})
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)

		stored, err := s.Load(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, model.EquipmentStatusUnderMaintenance, stored[0].Status)
	})

	t.Run("Delete", func(t *testing.T) {
		item, err := c.Delete(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), item.ID)

		ev := publisher.next(t)
		assert.Equal(t, model.EventDeleted, ev.Action)

		stored, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, stored)

		_, err = c.Delete(ctx, 1)
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.NotFound())
	})

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	for _, subject := range publisher.subjects {
		assert.Equal(t, "equipment.events", subject)
	}
}
