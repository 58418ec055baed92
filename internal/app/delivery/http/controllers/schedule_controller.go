package controllers

import (
	"context"
	"net/http"
	"time"

	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type ScheduleController struct {
	Log             *zap.Logger
	ScheduleUsecase contracts.ScheduleUsecase
	InternalConfig  *config.InternalConfig
}

func NewScheduleController(logger *zap.Logger, scheduleUsecase contracts.ScheduleUsecase, internalConfig *config.InternalConfig) *ScheduleController {
	return &ScheduleController{
		Log:             logger,
		ScheduleUsecase: scheduleUsecase,
		InternalConfig:  internalConfig,
	}
}

func (ctrl *ScheduleController) DoctorSlots(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("ScheduleController.DoctorSlots requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	doctorID, err := utils.URLParamInt64(r, "doctorID")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	date, err := utils.URLParamDate(r, "date")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	slots, err := ctrl.ScheduleUsecase.DoctorSlots(ctx, doctorID, date)
	if err != nil {
		ctrl.Log.Error("Error in ScheduleUsecase.DoctorSlots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetSlots, slots)
}
