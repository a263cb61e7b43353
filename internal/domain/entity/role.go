package entity

import "strings"

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin   = 1
	RoleIDDoctor  = 2
	RoleIDPatient = 3
)

// RoleNames constants
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// RoleNameByID returns the role name for a role id, or "" when unknown.
func RoleNameByID(id int) string {
	switch id {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDDoctor:
		return RoleDoctor
	case RoleIDPatient:
		return RolePatient
	}
	return ""
}

// RoleIDByUserType maps the login form's user_type tag to a role id.
// "user" and "citizen" are the portal's names for a patient.
func RoleIDByUserType(userType string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(userType)) {
	case RoleAdmin:
		return RoleIDAdmin, true
	case RoleDoctor:
		return RoleIDDoctor, true
	case RolePatient, "user", "citizen":
		return RoleIDPatient, true
	}
	return 0, false
}
