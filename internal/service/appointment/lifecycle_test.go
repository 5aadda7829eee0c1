package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thelivecure/admin-api/internal/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from model.AppointmentStatus
		to   model.AppointmentStatus
		want bool
	}{
		{"pending to confirmed", model.AppointmentStatusPending, model.AppointmentStatusConfirmed, true},
		{"pending to cancelled", model.AppointmentStatusPending, model.AppointmentStatusCancelled, true},
		{"pending to rescheduled", model.AppointmentStatusPending, model.AppointmentStatusRescheduled, true},
		{"pending to completed", model.AppointmentStatusPending, model.AppointmentStatusCompleted, false},
		{"confirmed to completed", model.AppointmentStatusConfirmed, model.AppointmentStatusCompleted, true},
		{"confirmed to cancelled", model.AppointmentStatusConfirmed, model.AppointmentStatusCancelled, true},
		{"confirmed to rescheduled", model.AppointmentStatusConfirmed, model.AppointmentStatusRescheduled, true},
		{"rescheduled to confirmed", model.AppointmentStatusRescheduled, model.AppointmentStatusConfirmed, true},
		{"rescheduled to completed", model.AppointmentStatusRescheduled, model.AppointmentStatusCompleted, false},
		{"completed is terminal", model.AppointmentStatusCompleted, model.AppointmentStatusCancelled, false},
		{"cancelled is terminal", model.AppointmentStatusCancelled, model.AppointmentStatusConfirmed, false},
		{"cancelled cannot be rescheduled", model.AppointmentStatusCancelled, model.AppointmentStatusRescheduled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanTransition_SelfAlwaysAllowed(t *testing.T) {
	statuses := []model.AppointmentStatus{
		model.AppointmentStatusPending,
		model.AppointmentStatusConfirmed,
		model.AppointmentStatusCancelled,
		model.AppointmentStatusCompleted,
		model.AppointmentStatusRescheduled,
	}
	for _, s := range statuses {
		assert.True(t, CanTransition(s, s), "self transition for %s", s)
	}
}
