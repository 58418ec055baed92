package controllers

import (
	"context"
	"net/http"
	"time"

	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/delivery/http/middlewares"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type NotificationController struct {
	Log                 *zap.Logger
	NotificationUsecase contracts.NotificationUsecase
	InternalConfig      *config.InternalConfig
}

func NewNotificationController(logger *zap.Logger, notificationUsecase contracts.NotificationUsecase, internalConfig *config.InternalConfig) *NotificationController {
	return &NotificationController{
		Log:                 logger,
		NotificationUsecase: notificationUsecase,
		InternalConfig:      internalConfig,
	}
}

func (ctrl *NotificationController) FindMine(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	actor, ok := middlewares.ActorFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	notifications, err := ctrl.NotificationUsecase.FindMine(ctx, actor.UserID)
	if err != nil {
		ctrl.Log.Error("Error in NotificationUsecase.FindMine",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetNotifications, notifications)
}

func (ctrl *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	actor, ok := middlewares.ActorFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	id, err := utils.URLParamInt64(r, "notificationID")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	if err := ctrl.NotificationUsecase.MarkRead(ctx, id, actor.UserID); err != nil {
		ctrl.Log.Error("Error in NotificationUsecase.MarkRead",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessMarkRead, nil)
}
