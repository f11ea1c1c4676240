package domain

import "time"

// Role distinguishes students from campus administrators. It is fixed at
// account creation and never changes afterwards.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// YearPostGraduate marks postgraduate students, who have no numeric study
// year. Undergraduate years run 1 through 6.
const YearPostGraduate = -1

// Account mirrors the persisted representation under the registeredUsers key.
type Account struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              Role      `json:"role"`
	Department        string    `json:"department,omitempty"`
	Year              int       `json:"year,omitempty"`
	RegisterNumber    string    `json:"registerNumber,omitempty"`
	PasswordHash      string    `json:"passwordHash,omitempty"`
	PasswordAlgo      string    `json:"passwordAlgo,omitempty"`
	IsProfileComplete bool      `json:"isProfileComplete"`
	CreatedAt         time.Time `json:"createdAt"`
}

// IsAdmin reports whether the account holds the administrator role.
func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ProfileUpdate carries a partial profile merge. Nil fields leave the
// existing value untouched; email and role are deliberately absent because
// they are immutable after creation.
type ProfileUpdate struct {
	Name           *string
	Department     *string
	Year           *int
	RegisterNumber *string
}
