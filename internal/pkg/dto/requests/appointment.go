package requests

type CreateAppointment struct {
	PatientID       int64  `json:"patientId" validate:"omitempty,gt=0"`
	DoctorID        int64  `json:"doctorId" validate:"required,gt=0"`
	HospitalID      int64  `json:"hospitalId" validate:"required,gt=0"`
	AppointmentDate string `json:"appointmentDate" validate:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointmentTime" validate:"required"`
	TimeSlot        string `json:"timeSlot" validate:"required"`
	Type            string `json:"type" validate:"omitempty,oneof=online walk-in"`
	Priority        string `json:"priority" validate:"omitempty,oneof=normal high urgent"`
	Reason          string `json:"reason" validate:"required"`
	Notes           string `json:"notes"`
}

type CancelAppointment struct {
	CancellationReason string `json:"cancellationReason" validate:"required"`
}

type RescheduleAppointment struct {
	AppointmentDate  string `json:"appointmentDate" validate:"required,datetime=2006-01-02"`
	AppointmentTime  string `json:"appointmentTime" validate:"required"`
	TimeSlot         string `json:"timeSlot" validate:"required"`
	RescheduleReason string `json:"rescheduleReason" validate:"required"`
}
