package contracts

import (
	"context"

	"medisync-service/internal/app/models"
)

type NotificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	FindByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
}

type NotificationUsecase interface {
	Notify(ctx context.Context, userID int64, notificationType, title, message string) error
	FindMine(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
}

// NotificationPublisher mirrors created notifications onto a delivery queue
// consumed by external channels (mail, SMS). Delivery is best-effort; the
// stored notification remains the record.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification *models.Notification) error
}
