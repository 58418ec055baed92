package schedule

import (
	"context"
	"sync"
	"time"

	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/responses"
	"medisync-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type scheduleUsecase struct {
	DoctorRepository   contracts.DoctorRepository
	AppointmentService contracts.AppointmentUsecase
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

func NewScheduleUsecase(
	doctorRepository contracts.DoctorRepository,
	appointmentService contracts.AppointmentUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		instance := &scheduleUsecase{
			DoctorRepository:   doctorRepository,
			AppointmentService: appointmentService,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
		scheduleUsecaseInstance = instance
	})
	return scheduleUsecaseInstance
}

func (uc *scheduleUsecase) DoctorSlots(ctx context.Context, doctorID int64, date string) ([]responses.SlotInfo, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.DoctorSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, date),
	)

	availability, err := uc.DoctorRepository.FindAvailabilityByDoctorID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("scheduleUsecase.DoctorSlots error fetching doctor availability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if availability == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	bookable := ComputeAvailableSlots(
		availability.AvailableSlots,
		date,
		time.Now(),
		uc.InternalConfig.Scheduling.SlotDurationMinutes,
		func(raw string, parseErr error) {
			uc.Log.Warn("scheduleUsecase.DoctorSlots skipping malformed slot",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int64(constvars.LoggingDoctorIDKey, doctorID),
				zap.String(constvars.LoggingTimeSlotKey, raw),
				zap.Error(parseErr),
			)
		},
	)

	counts, err := uc.AppointmentService.BookingCounts(ctx, doctorID, date)
	if err != nil {
		uc.Log.Error("scheduleUsecase.DoctorSlots error computing booking counts",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	capacity := uc.InternalConfig.Scheduling.SlotCapacity
	slots := make([]responses.SlotInfo, 0, len(bookable))
	for _, slot := range bookable {
		cls := ClassifySlotAvailability(slot, counts, capacity)
		slots = append(slots, responses.SlotInfo{
			TimeSlot:  slot,
			Status:    string(cls.Status),
			Remaining: cls.Remaining,
		})
	}

	uc.Log.Info("scheduleUsecase.DoctorSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingResponseLengthKey, len(slots)),
	)
	return slots, nil
}
