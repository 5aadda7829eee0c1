package appointment

import "github.com/thelivecure/admin-api/internal/model"

// transitions lists the statuses reachable from each state. Completed and
// cancelled are terminal.
var transitions = map[model.AppointmentStatus][]model.AppointmentStatus{
	model.AppointmentStatusPending: {
		model.AppointmentStatusConfirmed,
		model.AppointmentStatusCancelled,
		model.AppointmentStatusRescheduled,
	},
	model.AppointmentStatusConfirmed: {
		model.AppointmentStatusCompleted,
		model.AppointmentStatusCancelled,
		model.AppointmentStatusRescheduled,
	},
	model.AppointmentStatusRescheduled: {
		model.AppointmentStatusConfirmed,
		model.AppointmentStatusCancelled,
	},
	model.AppointmentStatusCompleted: {},
	model.AppointmentStatusCancelled: {},
}

// CanTransition reports whether an appointment may move between the two
// statuses. Re-applying the current status is always allowed so repeated
// identical updates stay idempotent.
func CanTransition(from, to model.AppointmentStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
