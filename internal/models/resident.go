package models

// ResidentStatus describes whether a resident currently lives in the apartment.
type ResidentStatus string

const (
	ResidentActive    ResidentStatus = "active"
	ResidentTemporary ResidentStatus = "temporary"
	ResidentAbsent    ResidentStatus = "absent"
)

// ResidentRole is the resident's role within the apartment.
type ResidentRole string

const (
	RoleOwner  ResidentRole = "owner"
	RoleMember ResidentRole = "member"
)

// Resident is a person registered to an apartment.
// At most one resident per apartment may hold RoleOwner.
type Resident struct {
	ID          string `json:"id"`
	ApartmentID string `json:"apartmentId"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`

	// MemberCount is the household size the resident declared.
	// Displays derive the household size from grouping instead, see
	// calculator.MemberCounts.
	MemberCount int `json:"memberCount"`

	// EntryDate is an ISO date (YYYY-MM-DD).
	EntryDate string         `json:"entryDate"`
	Status    ResidentStatus `json:"status"`
	Role      ResidentRole   `json:"role,omitempty"`
}

// IsOwner reports whether the resident is the apartment owner.
func (r Resident) IsOwner() bool {
	return r.Role == RoleOwner
}
