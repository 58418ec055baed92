package appointments

import (
	"testing"

	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTransitionHappyPath(t *testing.T) {
	cases := []struct {
		name   string
		action Action
		from   models.AppointmentStatus
		role   string
		reason string
		to     models.AppointmentStatus
	}{
		{"confirm", ActionConfirm, models.StatusPending, constvars.RoleReceptionist, "", models.StatusConfirmed},
		{"reject", ActionReject, models.StatusPending, constvars.RoleReceptionist, "Duplicate booking", models.StatusCancelled},
		{"check-in", ActionCheckIn, models.StatusConfirmed, constvars.RoleReceptionist, "", models.StatusCheckedIn},
		{"start consultation", ActionStartConsultation, models.StatusCheckedIn, constvars.RoleDoctor, "", models.StatusInConsultation},
		{"complete from checked-in", ActionComplete, models.StatusCheckedIn, constvars.RoleDoctor, "", models.StatusCompleted},
		{"complete from in_consultation", ActionComplete, models.StatusInConsultation, constvars.RoleDoctor, "", models.StatusCompleted},
		{"patient cancel", ActionCancel, models.StatusConfirmed, constvars.RolePatient, "Patient request", models.StatusCancelled},
		{"no-show", ActionNoShow, models.StatusConfirmed, constvars.RoleReceptionist, "", models.StatusNoShow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule, err := ResolveTransition(tc.action, tc.from, tc.role, tc.reason)
			require.NoError(t, err)
			assert.Equal(t, tc.to, rule.To)
		})
	}
}

func TestResolveTransitionRejectsSkippedStates(t *testing.T) {
	// check-in straight from pending skips confirm.
	_, err := ResolveTransition(ActionCheckIn, models.StatusPending, constvars.RoleReceptionist, "")
	require.Error(t, err)

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
}

func TestResolveTransitionRejectsFinalStates(t *testing.T) {
	finals := []models.AppointmentStatus{models.StatusCompleted, models.StatusCancelled, models.StatusNoShow}
	actions := []struct {
		action Action
		role   string
		reason string
	}{
		{ActionConfirm, constvars.RoleReceptionist, ""},
		{ActionCheckIn, constvars.RoleReceptionist, ""},
		{ActionComplete, constvars.RoleDoctor, ""},
		{ActionCancel, constvars.RoleReceptionist, "Patient request"},
		{ActionNoShow, constvars.RoleReceptionist, ""},
		{ActionReschedule, constvars.RoleReceptionist, ""},
	}

	for _, final := range finals {
		for _, tc := range actions {
			_, err := ResolveTransition(tc.action, final, tc.role, tc.reason)
			assert.Error(t, err, "action %s from %s", tc.action, final)
		}
	}
}

func TestResolveTransitionRoleGating(t *testing.T) {
	t.Run("patient cannot confirm", func(t *testing.T) {
		_, err := ResolveTransition(ActionConfirm, models.StatusPending, constvars.RolePatient, "")
		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})

	t.Run("receptionist cannot complete", func(t *testing.T) {
		_, err := ResolveTransition(ActionComplete, models.StatusCheckedIn, constvars.RoleReceptionist, "")
		assert.Error(t, err)
	})

	t.Run("doctor cannot check in", func(t *testing.T) {
		_, err := ResolveTransition(ActionCheckIn, models.StatusConfirmed, constvars.RoleDoctor, "")
		assert.Error(t, err)
	})

	t.Run("admin acts as staff", func(t *testing.T) {
		_, err := ResolveTransition(ActionConfirm, models.StatusPending, constvars.RoleAdmin, "")
		assert.NoError(t, err)
	})
}

func TestResolveTransitionNormalizesLegacyStatuses(t *testing.T) {
	// A stored "attended" row behaves as checked-in.
	rule, err := ResolveTransition(ActionComplete, models.AppointmentStatus("attended"), constvars.RoleDoctor, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, rule.To)

	rule, err = ResolveTransition(ActionStartConsultation, models.AppointmentStatus("checked_in"), constvars.RoleDoctor, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInConsultation, rule.To)
}

func TestValidateCancellationReason(t *testing.T) {
	t.Run("vocabulary entries pass", func(t *testing.T) {
		for _, reason := range models.CancellationReasons {
			assert.NoError(t, ValidateCancellationReason(reason), reason)
		}
	})

	t.Run("free text needs the Other prefix", func(t *testing.T) {
		assert.NoError(t, ValidateCancellationReason("Other: patient moved abroad"))
		assert.Error(t, ValidateCancellationReason("patient moved abroad"))
		assert.Error(t, ValidateCancellationReason("Other:   "))
	})

	t.Run("empty is rejected", func(t *testing.T) {
		err := ValidateCancellationReason("  ")
		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}
