package models

// Role defines the possible administrator roles.
type Role string

const (
	// RoleRoot is the elevated role allowed to manage administrators,
	// edit/delete records and change system settings.
	RoleRoot  Role = "root"
	RoleAdmin Role = "admin"
)

// Elevated reports whether the role carries management privileges.
func (r Role) Elevated() bool {
	return r == RoleRoot
}

// StudentStatus defines the possible status values for a student.
type StudentStatus string

const (
	StatusActive   StudentStatus = "Active"
	StatusInactive StudentStatus = "Inactive"
)

// ValidStudentStatus reports whether s is one of the accepted status values.
func ValidStudentStatus(s string) bool {
	return s == string(StatusActive) || s == string(StatusInactive)
}
