package broadcast

import (
	"context"
	"sync"

	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisBroadcaster fans appointment events out across service instances
// through a shared redis pub/sub channel, so a dashboard connected to one
// instance sees changes made through another.
type redisBroadcaster struct {
	client *redis.Client
	Log    *zap.Logger
}

func NewRedisBroadcaster(client *redis.Client, logger *zap.Logger) contracts.Broadcaster {
	return &redisBroadcaster{
		client: client,
		Log:    logger,
	}
}

func (b *redisBroadcaster) Publish(ctx context.Context, event models.AppointmentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = b.client.Publish(ctx, constvars.BroadcastChannel, payload).Err()
	if err != nil {
		b.Log.Error("redisBroadcaster.Publish error publishing event",
			zap.Int64(constvars.LoggingAppointmentIDKey, event.AppointmentID),
			zap.Error(err),
		)
		return exceptions.ErrRedisPublish(err)
	}
	return nil
}

func (b *redisBroadcaster) Subscribe(ctx context.Context) (<-chan models.AppointmentEvent, func(), error) {
	pubsub := b.client.Subscribe(ctx, constvars.BroadcastChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, exceptions.ErrRedisGet(err)
	}

	events := make(chan models.AppointmentEvent)
	done := make(chan struct{})

	go func() {
		defer close(events)
		messages := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event models.AppointmentEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					b.Log.Warn("redisBroadcaster.Subscribe dropping malformed event payload",
						zap.Error(err),
					)
					continue
				}
				select {
				case events <- event:
				case <-done:
					return
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}
	return events, cancel, nil
}
