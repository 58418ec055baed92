package models

// DoctorAvailability holds a doctor's bookable windows for a generic day.
// The slot list is static per doctor, not per calendar date; entries are
// either "HH:mm" starts or "HH:mm-HH:mm" ranges, assumed chronological and
// non-overlapping.
type DoctorAvailability struct {
	DoctorID       int64    `bson:"_id" json:"doctorId"`
	HospitalID     int64    `bson:"hospital_id" json:"hospitalId"`
	AvailableSlots []string `bson:"available_slots" json:"availableSlots"`
}

// Offers reports whether slot is one of the doctor's configured windows.
func (d *DoctorAvailability) Offers(slot string) bool {
	for _, s := range d.AvailableSlots {
		if s == slot {
			return true
		}
	}
	return false
}
