package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	t.Run("Legacy Aliases", func(t *testing.T) {
		assert.Equal(t, StatusCheckedIn, NormalizeStatus("checked_in"))
		assert.Equal(t, StatusCheckedIn, NormalizeStatus("checked"))
		assert.Equal(t, StatusCheckedIn, NormalizeStatus("attended"))
		assert.Equal(t, StatusCheckedIn, NormalizeStatus("checked-in"))
	})

	t.Run("Case And Whitespace", func(t *testing.T) {
		assert.Equal(t, StatusConfirmed, NormalizeStatus("  CONFIRMED "))
		assert.Equal(t, StatusNoShow, NormalizeStatus("No-Show"))
		assert.Equal(t, StatusInConsultation, NormalizeStatus("IN_CONSULTATION"))
	})

	t.Run("Unknown Or Empty Defaults To Pending", func(t *testing.T) {
		assert.Equal(t, StatusPending, NormalizeStatus(""))
		assert.Equal(t, StatusPending, NormalizeStatus("   "))
		assert.Equal(t, StatusPending, NormalizeStatus("garbage"))
		assert.Equal(t, StatusPending, NormalizeStatus("CHECKED IN"))
	})

	t.Run("Total And Idempotent", func(t *testing.T) {
		inputs := []string{
			"pending", "confirmed", "checked-in", "checked_in", "checked",
			"attended", "in_consultation", "completed", "cancelled", "no-show",
			"", "bogus", "  Completed  ", "NO-SHOW",
		}
		valid := map[AppointmentStatus]bool{
			StatusPending: true, StatusConfirmed: true, StatusCheckedIn: true,
			StatusInConsultation: true, StatusCompleted: true,
			StatusCancelled: true, StatusNoShow: true,
		}
		for _, in := range inputs {
			once := NormalizeStatus(in)
			assert.True(t, valid[once], "normalize(%q) returned %q, not a canonical value", in, once)
			assert.Equal(t, once, NormalizeStatus(string(once)), "normalize not idempotent for %q", in)
		}
	})
}

func TestExpandStatusAliases(t *testing.T) {
	t.Run("Checked-In Gains Legacy Spellings", func(t *testing.T) {
		got := ExpandStatusAliases([]AppointmentStatus{StatusCheckedIn})
		assert.ElementsMatch(t,
			[]AppointmentStatus{StatusCheckedIn, "checked_in", "checked", "attended"},
			got)
	})

	t.Run("Statuses Without Aliases Pass Through", func(t *testing.T) {
		got := ExpandStatusAliases([]AppointmentStatus{StatusPending, StatusConfirmed})
		assert.ElementsMatch(t, []AppointmentStatus{StatusPending, StatusConfirmed}, got)
	})

	t.Run("Mixed Set Expands Only The Aliased Member", func(t *testing.T) {
		got := ExpandStatusAliases([]AppointmentStatus{StatusConfirmed, StatusCheckedIn, StatusInConsultation})
		assert.ElementsMatch(t,
			[]AppointmentStatus{
				StatusConfirmed, StatusCheckedIn, StatusInConsultation,
				"checked_in", "checked", "attended",
			},
			got)
	})

	t.Run("Every Expanded Value Normalizes Back", func(t *testing.T) {
		for _, s := range ExpandStatusAliases([]AppointmentStatus{StatusCheckedIn}) {
			assert.Equal(t, StatusCheckedIn, NormalizeStatus(string(s)))
		}
	})
}

func TestStatusPredicates(t *testing.T) {
	t.Run("IsActive", func(t *testing.T) {
		assert.True(t, StatusConfirmed.IsActive())
		assert.True(t, StatusCheckedIn.IsActive())
		assert.True(t, StatusInConsultation.IsActive())
		assert.True(t, StatusAttended.IsActive())
		assert.False(t, StatusPending.IsActive())
		assert.False(t, StatusCompleted.IsActive())
		assert.False(t, StatusCancelled.IsActive())
	})

	t.Run("IsFinal", func(t *testing.T) {
		assert.True(t, StatusCompleted.IsFinal())
		assert.True(t, StatusCancelled.IsFinal())
		assert.True(t, StatusNoShow.IsFinal())
		assert.False(t, StatusPending.IsFinal())
		assert.False(t, StatusCheckedIn.IsFinal())
	})

	t.Run("CanCreatePrescription", func(t *testing.T) {
		assert.True(t, StatusConfirmed.CanCreatePrescription())
		assert.True(t, StatusCheckedIn.CanCreatePrescription())
		assert.False(t, StatusPending.CanCreatePrescription())
		assert.False(t, StatusCompleted.CanCreatePrescription())
		assert.False(t, StatusNoShow.CanCreatePrescription())
	})

	t.Run("Predicates Normalize Raw Input", func(t *testing.T) {
		assert.True(t, AppointmentStatus("CHECKED_IN").IsActive())
		assert.True(t, AppointmentStatus(" Completed ").IsFinal())
	})
}
