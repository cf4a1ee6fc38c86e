package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusRejected, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusPending, AppointmentStatusCancelled, false},
		{AppointmentStatusPending, AppointmentStatusPending, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusRejected, false},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusRejected, AppointmentStatusConfirmed, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestAppointmentStatusIsActive(t *testing.T) {
	assert.True(t, AppointmentStatusPending.IsActive())
	assert.True(t, AppointmentStatusConfirmed.IsActive())
	assert.True(t, AppointmentStatusCompleted.IsActive())
	assert.False(t, AppointmentStatusCancelled.IsActive())
	assert.False(t, AppointmentStatusRejected.IsActive())
}

func TestAppointmentStatusValid(t *testing.T) {
	assert.True(t, AppointmentStatusPending.Valid())
	assert.False(t, AppointmentStatus("BOOKED").Valid())
}
