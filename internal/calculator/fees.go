// Package calculator holds the pure functions behind the dashboard: period
// tallies, chart data, rankings and the small derivations the fee and
// resident lists need. Nothing here touches storage.
package calculator

import (
	"strings"

	"github.com/mmynk/apartmanager/internal/models"
)

// ChargeSum returns the sum of the four charge components.
func ChargeSum(f models.FeeItem) int64 {
	return f.ManagementFee + f.Electricity + f.Water + f.Parking
}

// RecomputeTotal sets fee.Total to the sum of its charge components.
func RecomputeTotal(fee *models.FeeItem) {
	fee.Total = ChargeSum(*fee)
}

// FilterFees returns the fees whose apartment ID or resident name contains
// term, case-insensitively. An empty term matches everything.
func FilterFees(fees []models.FeeItem, term string) []models.FeeItem {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.FeeItem, 0, len(fees))
	for _, f := range fees {
		if term == "" ||
			strings.Contains(strings.ToLower(f.ApartmentID), term) ||
			strings.Contains(strings.ToLower(f.ResidentName), term) {
			out = append(out, f)
		}
	}
	return out
}

// FeesForApartment returns the fees billed to apartmentID.
func FeesForApartment(fees []models.FeeItem, apartmentID string) []models.FeeItem {
	out := make([]models.FeeItem, 0)
	for _, f := range fees {
		if f.ApartmentID == apartmentID {
			out = append(out, f)
		}
	}
	return out
}
