package models

import "strings"

// AppointmentStatus is the canonical appointment state vocabulary.
//
// Status flow:
//  1. pending          patient books, waiting for receptionist confirmation
//  2. confirmed        receptionist confirms
//  3. checked-in       patient arrives and is checked in
//  4. in_consultation  doctor starts the consultation (optional intermediate)
//  5. completed        doctor finishes and marks complete
//  6. cancelled        cancelled at any non-final stage
//  7. no-show          patient never arrived
//
// The wire spelling is inherited from the existing data: hyphens for
// multi-word states except in_consultation, which keeps its underscore.
type AppointmentStatus string

const (
	StatusPending        AppointmentStatus = "pending"
	StatusConfirmed      AppointmentStatus = "confirmed"
	StatusCheckedIn      AppointmentStatus = "checked-in"
	StatusInConsultation AppointmentStatus = "in_consultation"
	// StatusAttended is a legacy display alias for checked-in. NormalizeStatus
	// folds it into StatusCheckedIn; it never appears post-normalization.
	StatusAttended  AppointmentStatus = "attended"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no-show"
)

// legacyStatusMap folds historical spellings into canonical values.
var legacyStatusMap = map[string]AppointmentStatus{
	"checked_in": StatusCheckedIn,
	"checked":    StatusCheckedIn,
	"attended":   StatusCheckedIn,
}

var canonicalStatuses = map[AppointmentStatus]struct{}{
	StatusPending:        {},
	StatusConfirmed:      {},
	StatusCheckedIn:      {},
	StatusInConsultation: {},
	StatusAttended:       {},
	StatusCompleted:      {},
	StatusCancelled:      {},
	StatusNoShow:         {},
}

// NormalizeStatus maps any raw status string to a canonical value. It is a
// display-safety fallback, not a validation layer: unknown or empty input
// becomes pending and the function never fails.
func NormalizeStatus(raw string) AppointmentStatus {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return StatusPending
	}
	if mapped, ok := legacyStatusMap[normalized]; ok {
		return mapped
	}
	if _, ok := canonicalStatuses[AppointmentStatus(normalized)]; ok {
		return AppointmentStatus(normalized)
	}
	return StatusPending
}

// ExpandStatusAliases widens a canonical status set with every stored
// legacy spelling that normalizes into it. Conditional update filters match
// documents by their raw stored value, so rows written by older dashboards
// ("attended", "checked_in") must appear in the filter alongside the
// canonical spelling.
func ExpandStatusAliases(statuses []AppointmentStatus) []AppointmentStatus {
	out := make([]AppointmentStatus, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, status)
		for legacy, canonical := range legacyStatusMap {
			if canonical == status && AppointmentStatus(legacy) != status {
				out = append(out, AppointmentStatus(legacy))
			}
		}
	}
	return out
}

// IsActive reports whether the status is an ongoing, non-final state.
func (s AppointmentStatus) IsActive() bool {
	switch NormalizeStatus(string(s)) {
	case StatusConfirmed, StatusCheckedIn, StatusInConsultation, StatusAttended:
		return true
	}
	return false
}

// IsFinal reports whether no further lifecycle transitions are permitted.
func (s AppointmentStatus) IsFinal() bool {
	switch NormalizeStatus(string(s)) {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanCreatePrescription reports whether a prescription may be created or
// edited for an appointment in this status.
func (s AppointmentStatus) CanCreatePrescription() bool {
	return s.IsActive()
}
