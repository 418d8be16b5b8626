package calculator

import (
	"sort"
	"strings"

	"github.com/mmynk/apartmanager/internal/models"
)

// ApartmentID builds the "{building}-{room}" identifier.
func ApartmentID(building, room string) string {
	return building + "-" + room
}

// MemberCounts returns the number of resident records per apartment.
// The residents' own MemberCount fields are not consulted.
func MemberCounts(residents []models.Resident) map[string]int {
	counts := make(map[string]int)
	for _, r := range residents {
		counts[r.ApartmentID]++
	}
	return counts
}

// SortResidents returns a copy ordered by apartment, then by given name
// (the last word of the full name).
func SortResidents(residents []models.Resident) []models.Resident {
	out := make([]models.Resident, len(residents))
	copy(out, residents)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ApartmentID != out[j].ApartmentID {
			return out[i].ApartmentID < out[j].ApartmentID
		}
		return givenName(out[i].Name) < givenName(out[j].Name)
	})
	return out
}

func givenName(full string) string {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// FilterResidents returns the residents whose name or apartment ID contains
// term, case-insensitively. An empty term matches everything.
func FilterResidents(residents []models.Resident, term string) []models.Resident {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Resident, 0, len(residents))
	for _, r := range residents {
		if term == "" ||
			strings.Contains(strings.ToLower(r.Name), term) ||
			strings.Contains(strings.ToLower(r.ApartmentID), term) {
			out = append(out, r)
		}
	}
	return out
}

// OwnerConflict returns the existing owner of candidate's apartment, if any.
// The candidate itself (matched by ID) is ignored so editing an owner is
// allowed. It returns false when candidate is not an owner.
func OwnerConflict(residents []models.Resident, candidate models.Resident) (models.Resident, bool) {
	if !candidate.IsOwner() {
		return models.Resident{}, false
	}
	for _, r := range residents {
		if r.ApartmentID == candidate.ApartmentID && r.IsOwner() && (candidate.ID == "" || r.ID != candidate.ID) {
			return r, true
		}
	}
	return models.Resident{}, false
}
