package appointments

import (
	"context"
	"fmt"
	"time"

	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// reminderLeaderLockKey ensures a single reminder leader across instances.
const reminderLeaderLockKey = "reminder:leader"

// ReminderWorker sends next-day reminders for confirmed appointments on a
// cron cadence.
type ReminderWorker struct {
	log           *zap.Logger
	cfg           *config.InternalConfig
	locker        contracts.LockerService
	appointments  contracts.AppointmentRepository
	notifications contracts.NotificationUsecase
	cron          *cron.Cron
	runCtx        context.Context
	cancel        context.CancelFunc
}

func NewReminderWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	appointmentRepository contracts.AppointmentRepository,
	notificationService contracts.NotificationUsecase,
) *ReminderWorker {
	return &ReminderWorker{
		log:           log,
		cfg:           cfg,
		locker:        lockerSvc,
		appointments:  appointmentRepository,
		notifications: notificationService,
	}
}

// Start begins the periodic loop.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Scheduling.ReminderCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("reminder.worker: failed to schedule with provided cron spec; falling back to @daily", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@daily", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop gracefully stops the cron and waits for a running job to finish.
func (w *ReminderWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *ReminderWorker) runOnce(ctx context.Context) {
	ttl := 2 * time.Minute
	acquired, token, err := w.locker.TryLock(ctx, reminderLeaderLockKey, ttl)
	if err != nil {
		w.log.Warn("reminder.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("reminder.worker: leader lock not acquired; another instance is running")
		return
	}
	defer w.locker.Unlock(ctx, reminderLeaderLockKey, token)

	tomorrow := time.Now().AddDate(0, 0, 1).Format(models.DateLayout)
	confirmed, err := w.appointments.FindByStatusAndDate(ctx, models.StatusConfirmed, tomorrow)
	if err != nil {
		w.log.Warn("reminder.worker: failed to load confirmed appointments", zap.Error(err))
		return
	}

	for _, appointment := range confirmed {
		message := fmt.Sprintf("Reminder: you have an appointment tomorrow (%s) at %s.", appointment.AppointmentDate, appointment.TimeSlot)
		if err := w.notifications.Notify(ctx, appointment.PatientID, "reminder", "Appointment Reminder", message); err != nil {
			w.log.Warn("reminder.worker: failed to create reminder notification",
				zap.Int64("appointment_id", appointment.ID),
				zap.Error(err),
			)
		}
	}

	w.log.Info("reminder.worker: reminder run finished",
		zap.String("date", tomorrow),
		zap.Int("count", len(confirmed)),
	)
}
