package contracts

import (
	"context"

	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/dto/requests"
)

// AppointmentRepository is the persistence boundary for appointments.
type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, id int64) (*models.Appointment, error)
	FindByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error)
	FindByDoctor(ctx context.Context, doctorID int64) ([]models.Appointment, error)
	FindByHospital(ctx context.Context, hospitalID int64) ([]models.Appointment, error)
	FindByDoctorAndDate(ctx context.Context, doctorID int64, date string) ([]models.Appointment, error)
	FindByStatusAndDate(ctx context.Context, status models.AppointmentStatus, date string) ([]models.Appointment, error)
	// UpdateStatusIf performs a conditional update: the document must
	// currently be in one of fromStatuses or the update matches nothing and
	// the caller receives a conflict. extra carries additional fields to set
	// alongside the status (cancellation reason, timestamps).
	UpdateStatusIf(ctx context.Context, id int64, fromStatuses []models.AppointmentStatus, to models.AppointmentStatus, extra map[string]interface{}) (*models.Appointment, error)
	// UpdateSchedule moves an appointment to a new date/time/slot.
	UpdateSchedule(ctx context.Context, id int64, date, startTime, timeSlot string, extra map[string]interface{}) (*models.Appointment, error)
}

// AppointmentUsecase is the lifecycle and booking surface exposed to the
// HTTP delivery layer.
type AppointmentUsecase interface {
	Create(ctx context.Context, actor Actor, request *requests.CreateAppointment) (*models.Appointment, error)
	FindByID(ctx context.Context, id int64) (*models.Appointment, error)
	FindMine(ctx context.Context, actor Actor) ([]models.Appointment, error)
	BookingCounts(ctx context.Context, doctorID int64, date string) (map[string]int, error)
	Confirm(ctx context.Context, actor Actor, id int64) (*models.Appointment, error)
	Reject(ctx context.Context, actor Actor, id int64, reason string) (*models.Appointment, error)
	CheckIn(ctx context.Context, actor Actor, id int64) (*models.Appointment, error)
	StartConsultation(ctx context.Context, actor Actor, id int64) (*models.Appointment, error)
	Complete(ctx context.Context, actor Actor, id int64) (*models.Appointment, error)
	Cancel(ctx context.Context, actor Actor, id int64, reason string) (*models.Appointment, error)
	MarkNoShow(ctx context.Context, actor Actor, id int64) (*models.Appointment, error)
	Reschedule(ctx context.Context, actor Actor, id int64, request *requests.RescheduleAppointment) (*models.Appointment, error)
}

// Actor identifies the authenticated caller of a lifecycle operation.
type Actor struct {
	UserID int64
	Role   string
	// PatientID / DoctorID / HospitalID scope "my appointments" queries.
	// Zero when the role has no such binding.
	PatientID  int64
	DoctorID   int64
	HospitalID int64
}
