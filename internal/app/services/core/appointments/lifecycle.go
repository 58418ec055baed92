package appointments

import (
	"strings"

	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
)

// Action names a lifecycle transition. The values double as the broadcast
// event action field.
type Action string

const (
	ActionCreate            Action = "create"
	ActionConfirm           Action = "confirm"
	ActionReject            Action = "reject"
	ActionCheckIn           Action = "check-in"
	ActionStartConsultation Action = "start-consultation"
	ActionComplete          Action = "complete"
	ActionCancel            Action = "cancel"
	ActionNoShow            Action = "no-show"
	ActionReschedule        Action = "reschedule"
)

// TransitionRule describes one row of the lifecycle state machine.
type TransitionRule struct {
	From           []models.AppointmentStatus
	To             models.AppointmentStatus
	Roles          []string
	RequiresReason bool
}

var staffRoles = []string{constvars.RoleReceptionist, constvars.RoleHospital, constvars.RoleAdmin}

// transitionRules is the authoritative state machine. Reschedule is listed
// for role and source-state gating; it mutates scheduling fields rather than
// status, so To mirrors From and is resolved per appointment.
var transitionRules = map[Action]TransitionRule{
	ActionConfirm: {
		From:  []models.AppointmentStatus{models.StatusPending},
		To:    models.StatusConfirmed,
		Roles: staffRoles,
	},
	ActionReject: {
		From:           []models.AppointmentStatus{models.StatusPending},
		To:             models.StatusCancelled,
		Roles:          staffRoles,
		RequiresReason: true,
	},
	ActionCheckIn: {
		From:  []models.AppointmentStatus{models.StatusConfirmed},
		To:    models.StatusCheckedIn,
		Roles: staffRoles,
	},
	ActionStartConsultation: {
		From:  []models.AppointmentStatus{models.StatusCheckedIn},
		To:    models.StatusInConsultation,
		Roles: []string{constvars.RoleDoctor},
	},
	ActionComplete: {
		From:  []models.AppointmentStatus{models.StatusConfirmed, models.StatusCheckedIn, models.StatusInConsultation},
		To:    models.StatusCompleted,
		Roles: []string{constvars.RoleDoctor},
	},
	ActionCancel: {
		From:           []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed, models.StatusCheckedIn, models.StatusInConsultation},
		To:             models.StatusCancelled,
		Roles:          append([]string{constvars.RolePatient}, staffRoles...),
		RequiresReason: true,
	},
	ActionNoShow: {
		From:  []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed},
		To:    models.StatusNoShow,
		Roles: staffRoles,
	},
	// Reschedule reasons are free text, validated non-empty at the request
	// layer rather than against the cancellation vocabulary.
	ActionReschedule: {
		From:  []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed},
		Roles: staffRoles,
	},
}

// ResolveTransition validates that role may apply action to an appointment
// currently in status, with reason where the rule demands one. On success it
// returns the matched rule; the repository's conditional update enforces the
// From set again at write time.
func ResolveTransition(action Action, current models.AppointmentStatus, role, reason string) (TransitionRule, error) {
	rule, ok := transitionRules[action]
	if !ok {
		return TransitionRule{}, exceptions.ErrInvalidTransition(string(current), string(action))
	}

	if !roleAllowed(rule.Roles, role) {
		return TransitionRule{}, exceptions.ErrRoleNotAllowed(nil)
	}

	normalized := models.NormalizeStatus(string(current))
	if !statusIn(rule.From, normalized) {
		return TransitionRule{}, exceptions.ErrInvalidTransition(string(normalized), string(rule.To))
	}

	if rule.RequiresReason {
		if err := ValidateCancellationReason(reason); err != nil {
			return TransitionRule{}, err
		}
	}
	return rule, nil
}

// ValidateCancellationReason enforces the controlled reason vocabulary.
// Free text rides behind the "Other" entry as "Other: <text>".
func ValidateCancellationReason(reason string) error {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return exceptions.ErrCancellationReasonRequired(nil)
	}
	for _, allowed := range models.CancellationReasons {
		if trimmed == allowed {
			return nil
		}
	}
	if strings.HasPrefix(trimmed, "Other:") && strings.TrimSpace(strings.TrimPrefix(trimmed, "Other:")) != "" {
		return nil
	}
	return exceptions.ErrInvalidCancellationReason(trimmed)
}

func roleAllowed(roles []string, role string) bool {
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	return false
}

func statusIn(statuses []models.AppointmentStatus, status models.AppointmentStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
