package sessions

import (
	"context"
	"sync"
	"time"

	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RefetchFunc reloads the dashboard's view of its appointment list. It must
// be idempotent; the session may invoke it redundantly.
type RefetchFunc func(ctx context.Context, event *models.AppointmentEvent) error

// SyncSession keeps one dashboard convergent with the appointment store. It
// combines a fixed-interval poll with the change broadcast: a transition is
// reflected within one broadcast delivery or one poll interval, whichever
// comes first. Broadcast-driven refetches are rate limited; the poll is the
// correctness backstop, the push channel only shortens latency.
type SyncSession struct {
	broadcaster contracts.Broadcaster
	refetch     RefetchFunc
	interval    time.Duration
	limiter     *rate.Limiter
	log         *zap.Logger

	mu       sync.Mutex
	lastSeen int64

	cancelSub func()
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// PollInterval resolves the configured poll cadence, falling back to three
// seconds when the knob is unset.
func PollInterval(internalConfig *config.InternalConfig) time.Duration {
	interval := time.Duration(internalConfig.Sync.PollIntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return interval
}

// New builds a session with the convergence knobs taken from configuration.
// This is the constructor the delivery layer uses; NewSyncSession remains
// for callers that need explicit values.
func New(
	ctx context.Context,
	internalConfig *config.InternalConfig,
	broadcaster contracts.Broadcaster,
	refetch RefetchFunc,
	logger *zap.Logger,
) (*SyncSession, error) {
	return NewSyncSession(ctx, broadcaster, PollInterval(internalConfig), internalConfig.Sync.RefetchBurst, refetch, logger)
}

func NewSyncSession(
	ctx context.Context,
	broadcaster contracts.Broadcaster,
	pollInterval time.Duration,
	refetchBurst int,
	refetch RefetchFunc,
	logger *zap.Logger,
) (*SyncSession, error) {
	events, cancelSub, err := broadcaster.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	if refetchBurst < 1 {
		refetchBurst = 1
	}
	s := &SyncSession{
		broadcaster: broadcaster,
		refetch:     refetch,
		interval:    pollInterval,
		limiter:     rate.NewLimiter(rate.Every(time.Second), refetchBurst),
		log:         logger,
		cancelSub:   cancelSub,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	go s.run(ctx, events)
	return s, nil
}

func (s *SyncSession) run(ctx context.Context, events <-chan models.AppointmentEvent) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.doRefetch(ctx, nil)
		case event, ok := <-events:
			if !ok {
				// Subscription gone; the poll ticker keeps the session
				// converging.
				events = nil
				continue
			}
			if !s.markSeen(event.OccurredAt) {
				continue
			}
			if !s.limiter.Allow() {
				// Damped; the next tick picks the change up.
				continue
			}
			s.doRefetch(ctx, &event)
		}
	}
}

// markSeen records the event timestamp and reports whether it advances the
// last processed one. Replayed or out-of-order deliveries are dropped.
func (s *SyncSession) markSeen(occurredAt int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if occurredAt <= s.lastSeen {
		return false
	}
	s.lastSeen = occurredAt
	return true
}

// LastSeen returns the timestamp of the most recent processed event.
func (s *SyncSession) LastSeen() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *SyncSession) doRefetch(ctx context.Context, event *models.AppointmentEvent) {
	if err := s.refetch(ctx, event); err != nil {
		s.log.Warn("syncSession refetch failed",
			zap.Error(err),
		)
	}
}

// Close cancels the broadcast subscription and stops the poll loop. It is
// safe to call more than once and blocks until the loop has exited.
func (s *SyncSession) Close() {
	s.closeOnce.Do(func() {
		s.cancelSub()
		close(s.stop)
	})
	<-s.done
}
