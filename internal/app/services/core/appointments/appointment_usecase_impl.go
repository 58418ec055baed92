package appointments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/core/schedule"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/requests"
	"medisync-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	NotificationService   contracts.NotificationUsecase
	LockService           contracts.LockerService
	Broadcaster           contracts.Broadcaster
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	notificationService contracts.NotificationUsecase,
	lockService contracts.LockerService,
	broadcaster contracts.Broadcaster,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		instance := &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			DoctorRepository:      doctorRepository,
			NotificationService:   notificationService,
			LockService:           lockService,
			Broadcaster:           broadcaster,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

func bookingLockKey(doctorID int64, date string) string {
	return fmt.Sprintf("booking-lock:%d:%s", doctorID, date)
}

func (uc *appointmentUsecase) Create(ctx context.Context, actor contracts.Actor, request *requests.CreateAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingDateKey, request.AppointmentDate),
		zap.String(constvars.LoggingTimeSlotKey, request.TimeSlot),
	)

	appointmentType := models.AppointmentType(request.Type)
	patientID := request.PatientID
	switch actor.Role {
	case constvars.RolePatient:
		if appointmentType == "" {
			appointmentType = models.TypeOnline
		}
		patientID = actor.PatientID
	case constvars.RoleReceptionist, constvars.RoleHospital, constvars.RoleAdmin:
		if appointmentType == "" {
			appointmentType = models.TypeWalkIn
		}
		if patientID <= 0 {
			return nil, exceptions.ErrPatientIDRequired()
		}
	default:
		return nil, exceptions.ErrRoleNotAllowed(nil)
	}

	availability, err := uc.DoctorRepository.FindAvailabilityByDoctorID(ctx, request.DoctorID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Create error fetching doctor availability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if availability == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}
	if !availability.Offers(request.TimeSlot) {
		return nil, exceptions.ErrSlotNotOffered(request.TimeSlot)
	}

	inPast, err := schedule.SlotInPast(request.TimeSlot, request.AppointmentDate, time.Now(), uc.InternalConfig.Scheduling.SlotDurationMinutes)
	if err != nil {
		return nil, exceptions.ErrSlotNotOffered(request.TimeSlot)
	}
	if inPast {
		return nil, exceptions.ErrSlotInPast(nil)
	}

	lockKey := bookingLockKey(request.DoctorID, request.AppointmentDate)
	acquired, token, err := uc.LockService.TryLock(ctx, lockKey, 5*time.Second)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrLockNotAcquired(nil)
	}
	defer func() {
		if unlockErr := uc.LockService.Unlock(ctx, lockKey, token); unlockErr != nil {
			uc.Log.Warn("appointmentUsecase.Create error releasing booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	counts, err := uc.BookingCounts(ctx, request.DoctorID, request.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if !schedule.CanBook(request.TimeSlot, counts, uc.InternalConfig.Scheduling.SlotCapacity) {
		uc.Log.Info("appointmentUsecase.Create slot fully booked",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTimeSlotKey, request.TimeSlot),
		)
		return nil, exceptions.ErrSlotFullyBooked(nil)
	}

	now := time.Now()
	appointment := &models.Appointment{
		PatientID:       patientID,
		DoctorID:        request.DoctorID,
		HospitalID:      request.HospitalID,
		AppointmentDate: request.AppointmentDate,
		AppointmentTime: request.AppointmentTime,
		TimeSlot:        request.TimeSlot,
		Type:            appointmentType,
		Priority:        models.AppointmentPriority(request.Priority),
		Status:          models.StatusPending,
		Reason:          request.Reason,
		Notes:           request.Notes,
		CreatedBy:       actor.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if appointment.Priority == "" {
		appointment.Priority = models.PriorityNormal
	}
	// Staff-created walk-ins skip the confirmation queue.
	if appointmentType == models.TypeWalkIn && actor.Role != constvars.RolePatient {
		appointment.Status = models.StatusConfirmed
		appointment.ConfirmedAt = &now
	}

	created, err := uc.AppointmentRepository.Insert(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Create error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if created.Status == models.StatusPending {
		// Reception desk notifications are addressed to the hospital account.
		uc.notify(ctx, created.HospitalID, "New Booking Request",
			fmt.Sprintf("A new online booking for %s %s is waiting for confirmation.", created.AppointmentDate, created.TimeSlot))
	} else {
		uc.notify(ctx, created.PatientID, "Appointment Confirmed",
			fmt.Sprintf("Your walk-in appointment on %s at %s is confirmed.", created.AppointmentDate, created.TimeSlot))
	}

	uc.publishChange(ctx, ActionCreate, created)

	uc.Log.Info("appointmentUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAppointmentIDKey, created.ID),
	)
	return created, nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, id int64) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	appointment.Status = models.NormalizeStatus(string(appointment.Status))
	return appointment, nil
}

func (uc *appointmentUsecase) FindMine(ctx context.Context, actor contracts.Actor) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindMine called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, actor.Role),
	)

	var (
		appointments []models.Appointment
		err          error
	)
	switch actor.Role {
	case constvars.RolePatient:
		appointments, err = uc.AppointmentRepository.FindByPatient(ctx, actor.PatientID)
	case constvars.RoleDoctor:
		appointments, err = uc.AppointmentRepository.FindByDoctor(ctx, actor.DoctorID)
	case constvars.RoleReceptionist, constvars.RoleHospital, constvars.RoleAdmin:
		appointments, err = uc.AppointmentRepository.FindByHospital(ctx, actor.HospitalID)
	default:
		return nil, exceptions.ErrRoleNotAllowed(nil)
	}
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindMine error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// Stored legacy spellings never leak to dashboards.
	for i := range appointments {
		appointments[i].Status = models.NormalizeStatus(string(appointments[i].Status))
	}
	return appointments, nil
}

// BookingCounts tallies non-cancelled appointments per slot for a doctor and
// date. Cancelled rows release their capacity; every other status occupies.
func (uc *appointmentUsecase) BookingCounts(ctx context.Context, doctorID int64, date string) (map[string]int, error) {
	appointments, err := uc.AppointmentRepository.FindByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, appointment := range appointments {
		if models.NormalizeStatus(string(appointment.Status)) == models.StatusCancelled {
			continue
		}
		counts[appointment.TimeSlot]++
	}
	return counts, nil
}

func (uc *appointmentUsecase) Confirm(ctx context.Context, actor contracts.Actor, id int64) (*models.Appointment, error) {
	updated, err := uc.transition(ctx, actor, id, ActionConfirm, "")
	if err != nil {
		return nil, err
	}
	uc.notify(ctx, updated.PatientID, "Appointment Confirmed",
		fmt.Sprintf("Your appointment on %s at %s has been confirmed.", updated.AppointmentDate, updated.TimeSlot))
	uc.notify(ctx, updated.DoctorID, "Appointment Confirmed",
		fmt.Sprintf("An appointment on %s at %s has been added to your schedule.", updated.AppointmentDate, updated.TimeSlot))
	return updated, nil
}

func (uc *appointmentUsecase) Reject(ctx context.Context, actor contracts.Actor, id int64, reason string) (*models.Appointment, error) {
	updated, err := uc.transition(ctx, actor, id, ActionReject, reason)
	if err != nil {
		return nil, err
	}
	uc.notify(ctx, updated.PatientID, "Booking Rejected",
		fmt.Sprintf("Your booking request for %s was rejected: %s", updated.AppointmentDate, reason))
	return updated, nil
}

func (uc *appointmentUsecase) CheckIn(ctx context.Context, actor contracts.Actor, id int64) (*models.Appointment, error) {
	updated, err := uc.transition(ctx, actor, id, ActionCheckIn, "")
	if err != nil {
		return nil, err
	}
	uc.notify(ctx, updated.DoctorID, "Patient Checked In",
		fmt.Sprintf("A patient for the %s slot has checked in.", updated.TimeSlot))
	return updated, nil
}

func (uc *appointmentUsecase) StartConsultation(ctx context.Context, actor contracts.Actor, id int64) (*models.Appointment, error) {
	return uc.transition(ctx, actor, id, ActionStartConsultation, "")
}

func (uc *appointmentUsecase) Complete(ctx context.Context, actor contracts.Actor, id int64) (*models.Appointment, error) {
	updated, err := uc.transition(ctx, actor, id, ActionComplete, "")
	if err != nil {
		return nil, err
	}
	uc.notify(ctx, updated.PatientID, "Appointment Completed",
		fmt.Sprintf("Your appointment on %s has been completed.", updated.AppointmentDate))
	return updated, nil
}

func (uc *appointmentUsecase) Cancel(ctx context.Context, actor contracts.Actor, id int64, reason string) (*models.Appointment, error) {
	if actor.Role == constvars.RolePatient {
		existing, err := uc.AppointmentRepository.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, exceptions.ErrAppointmentNotFound(nil)
		}
		if existing.PatientID != actor.PatientID {
			return nil, exceptions.ErrRoleNotAllowed(nil)
		}
	}

	updated, err := uc.transition(ctx, actor, id, ActionCancel, reason)
	if err != nil {
		return nil, err
	}
	uc.notify(ctx, updated.HospitalID, "Appointment Cancelled",
		fmt.Sprintf("The appointment on %s at %s was cancelled: %s", updated.AppointmentDate, updated.TimeSlot, reason))
	uc.notify(ctx, updated.DoctorID, "Appointment Cancelled",
		fmt.Sprintf("The appointment on %s at %s was cancelled.", updated.AppointmentDate, updated.TimeSlot))
	return updated, nil
}

func (uc *appointmentUsecase) MarkNoShow(ctx context.Context, actor contracts.Actor, id int64) (*models.Appointment, error) {
	updated, err := uc.transition(ctx, actor, id, ActionNoShow, "")
	if err != nil {
		return nil, err
	}
	uc.notify(ctx, updated.PatientID, "Missed Appointment",
		fmt.Sprintf("You were marked as a no-show for your appointment on %s.", updated.AppointmentDate))
	return updated, nil
}

func (uc *appointmentUsecase) Reschedule(ctx context.Context, actor contracts.Actor, id int64, request *requests.RescheduleAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Reschedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAppointmentIDKey, id),
		zap.String(constvars.LoggingDateKey, request.AppointmentDate),
		zap.String(constvars.LoggingTimeSlotKey, request.TimeSlot),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	if _, err := ResolveTransition(ActionReschedule, appointment.Status, actor.Role, ""); err != nil {
		return nil, err
	}

	availability, err := uc.DoctorRepository.FindAvailabilityByDoctorID(ctx, appointment.DoctorID)
	if err != nil {
		return nil, err
	}
	if availability == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}
	if !availability.Offers(request.TimeSlot) {
		return nil, exceptions.ErrSlotNotOffered(request.TimeSlot)
	}

	inPast, err := schedule.SlotInPast(request.TimeSlot, request.AppointmentDate, time.Now(), uc.InternalConfig.Scheduling.SlotDurationMinutes)
	if err != nil {
		return nil, exceptions.ErrSlotNotOffered(request.TimeSlot)
	}
	if inPast {
		return nil, exceptions.ErrSlotInPast(nil)
	}

	lockKey := bookingLockKey(appointment.DoctorID, request.AppointmentDate)
	acquired, token, err := uc.LockService.TryLock(ctx, lockKey, 5*time.Second)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrLockNotAcquired(nil)
	}
	defer func() {
		if unlockErr := uc.LockService.Unlock(ctx, lockKey, token); unlockErr != nil {
			uc.Log.Warn("appointmentUsecase.Reschedule error releasing booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	counts, err := uc.BookingCounts(ctx, appointment.DoctorID, request.AppointmentDate)
	if err != nil {
		return nil, err
	}
	// The appointment's own slot does not count against the new target
	// unless it genuinely moves.
	if appointment.AppointmentDate == request.AppointmentDate && appointment.TimeSlot == request.TimeSlot {
		if counts[request.TimeSlot] > 0 {
			counts[request.TimeSlot]--
		}
	}
	if !schedule.CanBook(request.TimeSlot, counts, uc.InternalConfig.Scheduling.SlotCapacity) {
		return nil, exceptions.ErrSlotFullyBooked(nil)
	}

	updated, err := uc.AppointmentRepository.UpdateSchedule(ctx, id, request.AppointmentDate, request.AppointmentTime, request.TimeSlot, map[string]interface{}{
		"reschedule_reason": request.RescheduleReason,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	uc.notify(ctx, updated.PatientID, "Appointment Rescheduled",
		fmt.Sprintf("Your appointment has been moved to %s at %s.", updated.AppointmentDate, updated.TimeSlot))
	uc.notify(ctx, updated.DoctorID, "Appointment Rescheduled",
		fmt.Sprintf("An appointment has been moved to %s at %s.", updated.AppointmentDate, updated.TimeSlot))
	uc.publishChange(ctx, ActionReschedule, updated)

	return updated, nil
}

// transition applies one lifecycle action end to end: role and state gating,
// the conditional repository update, and the change broadcast. The update
// filter repeats the source-state check so concurrent actors cannot race
// past the in-memory validation.
func (uc *appointmentUsecase) transition(ctx context.Context, actor contracts.Actor, id int64, action Action, reason string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.transition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAppointmentIDKey, id),
		zap.String("action", string(action)),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	rule, err := ResolveTransition(action, appointment.Status, actor.Role, reason)
	if err != nil {
		uc.Log.Info("appointmentUsecase.transition rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingAppointmentIDKey, id),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return nil, err
	}

	extra := map[string]interface{}{}
	now := time.Now()
	if rule.RequiresReason {
		extra["cancellation_reason"] = reason
	}
	switch rule.To {
	case models.StatusConfirmed:
		extra["confirmed_at"] = now
	case models.StatusCompleted:
		extra["completed_at"] = now
	}

	// The stored status may carry a legacy spelling that ResolveTransition
	// normalized away; the filter must match the raw document value.
	updated, err := uc.AppointmentRepository.UpdateStatusIf(ctx, id, models.ExpandStatusAliases(rule.From), rule.To, extra)
	if err != nil {
		uc.Log.Error("appointmentUsecase.transition error updating status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		current, findErr := uc.AppointmentRepository.FindByID(ctx, id)
		if findErr == nil && current != nil {
			return nil, exceptions.ErrTransitionConflict(string(current.Status))
		}
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	uc.publishChange(ctx, action, updated)

	uc.Log.Info("appointmentUsecase.transition succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAppointmentIDKey, id),
		zap.String("status", string(updated.Status)),
	)
	return updated, nil
}

// notify is best effort; a failed notification never rolls back a
// transition.
func (uc *appointmentUsecase) notify(ctx context.Context, userID int64, title, message string) {
	if err := uc.NotificationService.Notify(ctx, userID, "appointment", title, message); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("appointmentUsecase.notify error creating notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
	}
}

// publishChange broadcasts the transition to every dashboard session.
// Failures are logged and swallowed; sessions converge through their poll
// interval.
func (uc *appointmentUsecase) publishChange(ctx context.Context, action Action, appointment *models.Appointment) {
	event := models.AppointmentEvent{
		Type:          constvars.AppointmentEventType,
		Action:        string(action),
		AppointmentID: appointment.ID,
		Status:        string(models.NormalizeStatus(string(appointment.Status))),
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		HospitalID:    appointment.HospitalID,
		OccurredAt:    time.Now().UnixMilli(),
	}
	if err := uc.Broadcaster.Publish(ctx, event); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("appointmentUsecase.publishChange error broadcasting event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}
}
