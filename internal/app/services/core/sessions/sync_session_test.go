package sessions

import (
	"context"
	"sync"
	"testing"
	"time"

	"medisync-service/internal/app/config"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/shared/broadcast"
	"medisync-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// dashboardView simulates one open dashboard: its refetch pulls the current
// status from the shared store.
type dashboardView struct {
	mu        sync.Mutex
	status    models.AppointmentStatus
	refetches int
}

func (v *dashboardView) refetchFrom(store *appointmentStore) RefetchFunc {
	return func(_ context.Context, _ *models.AppointmentEvent) error {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.refetches++
		v.status = store.current()
		return nil
	}
}

func (v *dashboardView) currentStatus() models.AppointmentStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *dashboardView) refetchCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.refetches
}

type appointmentStore struct {
	mu     sync.Mutex
	status models.AppointmentStatus
}

func (s *appointmentStore) current() models.AppointmentStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *appointmentStore) set(status models.AppointmentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func eventually(t *testing.T, timeout time.Duration, check func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if check() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return check()
}

func TestTwoSessionsConvergeOnBroadcast(t *testing.T) {
	ctx := context.Background()
	broadcaster := broadcast.NewMemoryBroadcaster()
	store := &appointmentStore{status: models.StatusPending}

	pollInterval := 500 * time.Millisecond
	tabA := &dashboardView{status: models.StatusPending}
	tabB := &dashboardView{status: models.StatusPending}

	sessionA, err := NewSyncSession(ctx, broadcaster, pollInterval, 2, tabA.refetchFrom(store), zap.NewNop())
	require.NoError(t, err)
	defer sessionA.Close()

	sessionB, err := NewSyncSession(ctx, broadcaster, pollInterval, 2, tabB.refetchFrom(store), zap.NewNop())
	require.NoError(t, err)
	defer sessionB.Close()

	// A transition performed "in tab A": the store mutates, then the change
	// is broadcast.
	store.set(models.StatusConfirmed)
	err = broadcaster.Publish(ctx, models.AppointmentEvent{
		Type:          constvars.AppointmentEventType,
		Action:        "confirm",
		AppointmentID: 1,
		Status:        string(models.StatusConfirmed),
		OccurredAt:    time.Now().UnixMilli(),
	})
	require.NoError(t, err)

	// Tab B reflects the change well inside one poll interval.
	converged := eventually(t, pollInterval/2, func() bool {
		return tabB.currentStatus() == models.StatusConfirmed
	})
	assert.True(t, converged, "tab B should converge via broadcast before its next poll")
	assert.Equal(t, models.StatusConfirmed, tabA.currentStatus())
}

func TestSessionConvergesThroughPollWithoutBroadcast(t *testing.T) {
	ctx := context.Background()
	broadcaster := broadcast.NewMemoryBroadcaster()
	store := &appointmentStore{status: models.StatusPending}

	pollInterval := 50 * time.Millisecond
	tab := &dashboardView{status: models.StatusPending}

	session, err := NewSyncSession(ctx, broadcaster, pollInterval, 2, tab.refetchFrom(store), zap.NewNop())
	require.NoError(t, err)
	defer session.Close()

	// The change is never broadcast; only the poll can pick it up.
	store.set(models.StatusCheckedIn)

	converged := eventually(t, 5*pollInterval, func() bool {
		return tab.currentStatus() == models.StatusCheckedIn
	})
	assert.True(t, converged, "poll should pick up unbroadcast changes")
}

func TestNewDerivesKnobsFromConfig(t *testing.T) {
	t.Run("poll interval resolves from config with a default", func(t *testing.T) {
		assert.Equal(t, 2*time.Second, PollInterval(&config.InternalConfig{
			Sync: config.Sync{PollIntervalInSeconds: 2},
		}))
		assert.Equal(t, 3*time.Second, PollInterval(&config.InternalConfig{}))
	})

	t.Run("configured session polls", func(t *testing.T) {
		ctx := context.Background()
		broadcaster := broadcast.NewMemoryBroadcaster()
		store := &appointmentStore{status: models.StatusPending}
		tab := &dashboardView{status: models.StatusPending}

		cfg := &config.InternalConfig{
			Sync: config.Sync{PollIntervalInSeconds: 1, RefetchBurst: 2},
		}
		session, err := New(ctx, cfg, broadcaster, tab.refetchFrom(store), zap.NewNop())
		require.NoError(t, err)
		defer session.Close()

		store.set(models.StatusConfirmed)

		converged := eventually(t, 2*time.Second, func() bool {
			return tab.currentStatus() == models.StatusConfirmed
		})
		assert.True(t, converged, "session built from config should converge through its poll")
	})
}

func TestSessionDropsReplayedEvents(t *testing.T) {
	ctx := context.Background()
	broadcaster := broadcast.NewMemoryBroadcaster()
	store := &appointmentStore{status: models.StatusPending}

	// Long poll interval so only broadcasts drive refetches here.
	tab := &dashboardView{status: models.StatusPending}
	session, err := NewSyncSession(ctx, broadcaster, time.Hour, 5, tab.refetchFrom(store), zap.NewNop())
	require.NoError(t, err)
	defer session.Close()

	occurredAt := time.Now().UnixMilli()
	event := models.AppointmentEvent{
		Type:       constvars.AppointmentEventType,
		Action:     "confirm",
		Status:     string(models.StatusConfirmed),
		OccurredAt: occurredAt,
	}

	store.set(models.StatusConfirmed)
	require.NoError(t, broadcaster.Publish(ctx, event))
	require.True(t, eventually(t, time.Second, func() bool { return tab.refetchCount() == 1 }))

	// The same event delivered again must not trigger another refetch.
	require.NoError(t, broadcaster.Publish(ctx, event))
	stale := models.AppointmentEvent{Type: event.Type, Action: "confirm", OccurredAt: occurredAt - 10}
	require.NoError(t, broadcaster.Publish(ctx, stale))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, tab.refetchCount())
	assert.Equal(t, occurredAt, session.LastSeen())
}

func TestCloseStopsSession(t *testing.T) {
	ctx := context.Background()
	broadcaster := broadcast.NewMemoryBroadcaster()
	store := &appointmentStore{status: models.StatusPending}
	tab := &dashboardView{}

	session, err := NewSyncSession(ctx, broadcaster, 10*time.Millisecond, 2, tab.refetchFrom(store), zap.NewNop())
	require.NoError(t, err)

	session.Close()
	countAfterClose := tab.refetchCount()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, countAfterClose, tab.refetchCount(), "no refetches after Close")

	// Close is idempotent.
	session.Close()
}
