package entity

// Role represents a user role in the system
type Role string

const (
	RolePatient   Role = "PATIENT"
	RoleTherapist Role = "THERAPIST"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleTherapist, RoleAdmin:
		return true
	}
	return false
}

// Operation identifies a capability-gated action. Route middleware checks
// operations against the policy table before any handler runs.
type Operation string

const (
	OpBookAppointment         Operation = "appointment.book"
	OpViewAppointments        Operation = "appointment.view"
	OpUpdateAppointmentStatus Operation = "appointment.update_status"
	OpUpdateTherapistProfile  Operation = "therapist.update_profile"
	OpSetAvailability         Operation = "therapist.set_availability"
	OpCreateReview            Operation = "review.create"
	OpUpdateOwnProfile        Operation = "user.update_profile"
	OpViewDashboard           Operation = "admin.dashboard"
	OpListUsers               Operation = "admin.list_users"
	OpManageUser              Operation = "admin.manage_user"
	OpVerifyTherapist         Operation = "admin.verify_therapist"
	OpGenerateReport          Operation = "admin.generate_report"
	OpViewAuditLogs           Operation = "admin.view_audit_logs"
)

// policy maps each role to the operations it may perform. Admin is not
// enumerated here: Allowed grants it every operation.
var policy = map[Role]map[Operation]bool{
	RolePatient: {
		OpBookAppointment:  true,
		OpViewAppointments: true,
		OpCreateReview:     true,
		OpUpdateOwnProfile: true,
	},
	RoleTherapist: {
		OpViewAppointments:        true,
		OpUpdateAppointmentStatus: true,
		OpUpdateTherapistProfile:  true,
		OpSetAvailability:         true,
		OpUpdateOwnProfile:        true,
	},
}

// Allowed reports whether role may perform op.
func Allowed(role Role, op Operation) bool {
	if role == RoleAdmin {
		return true
	}
	return policy[role][op]
}
