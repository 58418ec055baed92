package contracts

import (
	"context"

	"medisync-service/internal/app/models"
)

// Broadcaster fans appointment change events out to every listening
// dashboard session. Subscribe returns a receive channel and a cancel
// function; the channel is closed after cancel.
//
// Delivery is best-effort: a subscriber that misses an event still converges
// through its polling interval (see services/core/sessions).
type Broadcaster interface {
	Publish(ctx context.Context, event models.AppointmentEvent) error
	Subscribe(ctx context.Context) (<-chan models.AppointmentEvent, func(), error)
}
