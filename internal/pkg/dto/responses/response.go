package responses

type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SlotInfo is a bookable slot together with its availability classification.
type SlotInfo struct {
	TimeSlot  string `json:"timeSlot"`
	Status    string `json:"status"`
	Remaining int    `json:"remaining"`
}

// BookingCounts reports how many non-cancelled appointments occupy each slot
// of a doctor's day, plus the clinic capacity the counts are judged against.
type BookingCounts struct {
	DoctorID int64          `json:"doctorId"`
	Date     string         `json:"date"`
	Capacity int            `json:"capacity"`
	Counts   map[string]int `json:"counts"`
}
