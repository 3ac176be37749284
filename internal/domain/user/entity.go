package user

import "time"

type Role string

const (
	RoleStaff    Role = "staff"    // Regular staff member
	RoleManager  Role = "manager"  // Receives staff login broadcasts
	RoleDirector Role = "director" // Receives staff login broadcasts
	RoleAdmin    Role = "admin"    // Panel access, excluded from ledger marking
)

// AllRoles returns every recognized role.
func AllRoles() []Role {
	return []Role{RoleStaff, RoleManager, RoleDirector, RoleAdmin}
}

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	for _, known := range AllRoles() {
		if r == known {
			return r, true
		}
	}
	return "", false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus validates a raw account status string.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusActive:
		return StatusActive, true
	case StatusInactive:
		return StatusInactive, true
	}
	return "", false
}

type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Department   string
	PasswordHash string
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive checks if the account can log in and counts toward absentee
// inference.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// ReceivesStaffLoginBroadcast reports whether this user is notified when a
// staff member signs in.
func (u *User) ReceivesStaffLoginBroadcast() bool {
	return u.Role == RoleManager || u.Role == RoleDirector
}
