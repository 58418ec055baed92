package models

import "time"

type AppointmentType string

const (
	TypeOnline AppointmentType = "online"
	TypeWalkIn AppointmentType = "walk-in"
)

type AppointmentPriority string

const (
	PriorityNormal AppointmentPriority = "normal"
	PriorityHigh   AppointmentPriority = "high"
	PriorityUrgent AppointmentPriority = "urgent"
)

const (
	// DateLayout is the calendar-date wire format ("YYYY-MM-DD").
	DateLayout = "2006-01-02"
	// ClockLayout is the 24-hour wall-clock wire format.
	ClockLayout = "15:04"
)

// Appointment is the single source of truth for a booking. Rows are never
// deleted by lifecycle actions; cancellation is a status mutation.
type Appointment struct {
	ID                 int64               `bson:"_id" json:"id"`
	PatientID          int64               `bson:"patient_id" json:"patientId"`
	DoctorID           int64               `bson:"doctor_id" json:"doctorId"`
	HospitalID         int64               `bson:"hospital_id" json:"hospitalId"`
	AppointmentDate    string              `bson:"appointment_date" json:"appointmentDate"`
	AppointmentTime    string              `bson:"appointment_time" json:"appointmentTime"`
	TimeSlot           string              `bson:"time_slot" json:"timeSlot"`
	Type               AppointmentType     `bson:"type" json:"type"`
	Priority           AppointmentPriority `bson:"priority" json:"priority"`
	Status             AppointmentStatus   `bson:"status" json:"status"`
	PaymentStatus      string              `bson:"payment_status,omitempty" json:"paymentStatus,omitempty"`
	Reason             string              `bson:"reason" json:"reason"`
	Notes              string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CancellationReason string              `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	RescheduleReason   string              `bson:"reschedule_reason,omitempty" json:"rescheduleReason,omitempty"`
	CreatedBy          int64               `bson:"created_by" json:"createdBy"`
	CreatedAt          time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updated_at" json:"updatedAt"`
	ConfirmedAt        *time.Time          `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`
	CompletedAt        *time.Time          `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// CancellationReasons is the controlled vocabulary accepted on transitions
// into cancelled. Free text is carried behind the "Other" entry.
var CancellationReasons = []string{
	"Patient request",
	"Doctor unavailable",
	"Duplicate booking",
	"Rescheduled",
	"Other",
}

// AppointmentEvent is the payload broadcast after every successful lifecycle
// transition. OccurredAt is a millisecond timestamp and doubles as the
// de-duplication key on the receiving side.
type AppointmentEvent struct {
	Type          string `json:"type"`
	Action        string `json:"action"`
	AppointmentID int64  `json:"appointmentId"`
	Status        string `json:"status"`
	DoctorID      int64  `json:"doctorId"`
	PatientID     int64  `json:"patientId"`
	HospitalID    int64  `json:"hospitalId"`
	OccurredAt    int64  `json:"occurredAt"`
}
