package user

import "time"

type Role string

const (
	RoleAdmin   Role = "ADMIN"   // Full access, reviews leave and timesheets
	RoleManager Role = "MANAGER" // Can approve sessions for their reports
	RoleUser    Role = "USER"    // Regular workforce member
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// Weekday enum values stored in the weekoffs column.
var ValidWeekdays = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

type User struct {
	ID             string
	Email          string
	Name           string
	PasswordHash   *string
	Role           Role
	WorkRole       *string
	IsActive       bool
	DefaultShiftID *string
	RPMUserID      *string
	Weekoffs       []string
	QualityRating  *float64
	DOJ            *time.Time
	DOL            *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined for listings
	RPMName *string
}

// IsAdmin checks if user has full administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanApprove checks if user can review sessions and leave requests
func (u *User) CanApprove() bool {
	return u.IsManager()
}
