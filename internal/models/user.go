package models

// Role selects which view an account gets.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleResident Role = "resident"
)

// UserAccount is the account stored in the current-session slot.
//
// Password is only populated for the configured credential list and is never
// written back into the session slot.
type UserAccount struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	ApartmentID string `json:"apartmentId,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Password    string `json:"password,omitempty"`
}

// IsAdmin reports whether the account has the admin role.
func (u *UserAccount) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
