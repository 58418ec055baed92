package controllers

import (
	"context"
	"net/http"
	"time"

	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/delivery/http/middlewares"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/requests"
	"medisync-service/internal/pkg/dto/responses"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
	InternalConfig     *config.InternalConfig
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase, internalConfig *config.InternalConfig) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
		InternalConfig:     internalConfig,
	}
}

func (ctrl *AppointmentController) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	return context.WithTimeout(r.Context(), timeout)
}

func (ctrl *AppointmentController) Create(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.Create requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	actor, ok := middlewares.ActorFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	var request requests.CreateAppointment
	if err := utils.DecodeAndValidate(r.Body, &request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingDateKey, request.AppointmentDate))

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.Create(ctx, actor, &request)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SuccessCreateAppointment, appointment)
}

func (ctrl *AppointmentController) FindMine(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.FindMine(ctx, actor)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.FindMine",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetAppointments, appointments)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	id, err := utils.URLParamInt64(r, "appointmentID")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.FindByID(ctx, id)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetAppointment, appointment)
}

func (ctrl *AppointmentController) BookingCounts(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
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

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	counts, err := ctrl.AppointmentUsecase.BookingCounts(ctx, doctorID, date)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.BookingCounts",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response := responses.BookingCounts{
		DoctorID: doctorID,
		Date:     date,
		Capacity: ctrl.InternalConfig.Scheduling.SlotCapacity,
		Counts:   counts,
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetBookingCounts, response)
}

func (ctrl *AppointmentController) Confirm(w http.ResponseWriter, r *http.Request) {
	ctrl.simpleTransition(w, r, "Confirm", func(ctx context.Context, actor contracts.Actor, id int64) (*models.Appointment, error) {
		return ctrl.AppointmentUsecase.Confirm(ctx, actor, id)
	})
}

func (ctrl *AppointmentController) Reject(w http.ResponseWriter, r *http.Request) {
	ctrl.reasonTransition(w, r, "Reject", func(ctx context.Context, actor contracts.Actor, id int64, reason string) (*models.Appointment, error) {
		return ctrl.AppointmentUsecase.Reject(ctx, actor, id, reason)
	})
}

func (ctrl *AppointmentController) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctrl.simpleTransition(w, r, "CheckIn", func(ctx context.Context, actor contracts.Actor, id int64) (*models.Appointment, error) {
		return ctrl.AppointmentUsecase.CheckIn(ctx, actor, id)
	})
}

func (ctrl *AppointmentController) StartConsultation(w http.ResponseWriter, r *http.Request) {
	ctrl.simpleTransition(w, r, "StartConsultation", func(ctx context.Context, actor contracts.Actor, id int64) (*models.Appointment, error) {
		return ctrl.AppointmentUsecase.StartConsultation(ctx, actor, id)
	})
}

func (ctrl *AppointmentController) Complete(w http.ResponseWriter, r *http.Request) {
	ctrl.simpleTransition(w, r, "Complete", func(ctx context.Context, actor contracts.Actor, id int64) (*models.Appointment, error) {
		return ctrl.AppointmentUsecase.Complete(ctx, actor, id)
	})
}

func (ctrl *AppointmentController) Cancel(w http.ResponseWriter, r *http.Request) {
	ctrl.reasonTransition(w, r, "Cancel", func(ctx context.Context, actor contracts.Actor, id int64, reason string) (*models.Appointment, error) {
		return ctrl.AppointmentUsecase.Cancel(ctx, actor, id, reason)
	})
}

func (ctrl *AppointmentController) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	ctrl.simpleTransition(w, r, "MarkNoShow", func(ctx context.Context, actor contracts.Actor, id int64) (*models.Appointment, error) {
		return ctrl.AppointmentUsecase.MarkNoShow(ctx, actor, id)
	})
}

func (ctrl *AppointmentController) Reschedule(w http.ResponseWriter, r *http.Request) {
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

	id, err := utils.URLParamInt64(r, "appointmentID")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	var request requests.RescheduleAppointment
	if err := utils.DecodeAndValidate(r.Body, &request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.Reschedule(ctx, actor, id, &request)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.Reschedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessTransition, appointment)
}

func (ctrl *AppointmentController) simpleTransition(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	apply func(ctx context.Context, actor contracts.Actor, id int64) (*models.Appointment, error),
) {
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

	id, err := utils.URLParamInt64(r, "appointmentID")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController."+name+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAppointmentIDKey, id))

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	appointment, err := apply(ctx, actor, id)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase."+name,
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessTransition, appointment)
}

func (ctrl *AppointmentController) reasonTransition(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	apply func(ctx context.Context, actor contracts.Actor, id int64, reason string) (*models.Appointment, error),
) {
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

	id, err := utils.URLParamInt64(r, "appointmentID")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	var request requests.CancelAppointment
	if err := utils.DecodeAndValidate(r.Body, &request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController."+name+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAppointmentIDKey, id))

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	appointment, err := apply(ctx, actor, id, request.CancellationReason)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase."+name,
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessTransition, appointment)
}
