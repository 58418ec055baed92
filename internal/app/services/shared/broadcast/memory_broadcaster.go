package broadcast

import (
	"context"
	"sync"

	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
)

// memoryBroadcaster keeps the fan-out in process. It backs single-node
// deployments and the session tests, where a redis round trip adds nothing.
type memoryBroadcaster struct {
	mu          sync.Mutex
	subscribers map[int64]chan models.AppointmentEvent
	nextID      int64
}

func NewMemoryBroadcaster() contracts.Broadcaster {
	return &memoryBroadcaster{
		subscribers: make(map[int64]chan models.AppointmentEvent),
	}
}

func (b *memoryBroadcaster) Publish(_ context.Context, event models.AppointmentEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subscribers {
		select {
		case sub <- event:
		default:
			// Slow subscribers fall back to their polling interval.
		}
	}
	return nil
}

func (b *memoryBroadcaster) Subscribe(_ context.Context) (<-chan models.AppointmentEvent, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	events := make(chan models.AppointmentEvent, 16)
	b.subscribers[id] = events

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, id)
			close(events)
		})
	}
	return events, cancel, nil
}
