package notifications

import (
	"context"
	"sync"
	"time"

	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	Publisher              contracts.NotificationPublisher
	Log                    *zap.Logger
}

var (
	notificationUsecaseInstance contracts.NotificationUsecase
	onceNotificationUsecase     sync.Once
)

func NewNotificationUsecase(
	notificationRepository contracts.NotificationRepository,
	publisher contracts.NotificationPublisher,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	onceNotificationUsecase.Do(func() {
		instance := &notificationUsecase{
			NotificationRepository: notificationRepository,
			Publisher:              publisher,
			Log:                    logger,
		}
		notificationUsecaseInstance = instance
	})
	return notificationUsecaseInstance
}

func (uc *notificationUsecase) Notify(ctx context.Context, userID int64, notificationType, title, message string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	notification := &models.Notification{
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}

	created, err := uc.NotificationRepository.Insert(ctx, notification)
	if err != nil {
		uc.Log.Error("notificationUsecase.Notify error inserting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		return err
	}

	if uc.Publisher != nil {
		if err := uc.Publisher.Publish(ctx, created); err != nil {
			uc.Log.Warn("notificationUsecase.Notify error publishing to delivery queue",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int64(constvars.LoggingUserIDKey, userID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (uc *notificationUsecase) FindMine(ctx context.Context, userID int64) ([]models.Notification, error) {
	return uc.NotificationRepository.FindByUser(ctx, userID)
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, id, userID int64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.MarkRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserIDKey, userID),
	)
	return uc.NotificationRepository.MarkRead(ctx, id, userID)
}
