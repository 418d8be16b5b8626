package calculator

import (
	"testing"

	"github.com/mmynk/apartmanager/internal/models"
)

func TestRecomputeTotal(t *testing.T) {
	tests := []struct {
		name string
		fee  models.FeeItem
		want int64
	}{
		{"all components", models.FeeItem{ManagementFee: 500000, Electricity: 900000, Water: 250000, Parking: 100000, Total: 1}, 1750000},
		{"zero components", models.FeeItem{Total: 99}, 0},
		{"parking only", models.FeeItem{Parking: 150000}, 150000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := tt.fee
			RecomputeTotal(&fee)
			if fee.Total != tt.want {
				t.Errorf("Total = %d, want %d", fee.Total, tt.want)
			}
			RecomputeTotal(&fee)
			if fee.Total != tt.want {
				t.Errorf("second RecomputeTotal changed Total to %d", fee.Total)
			}
		})
	}
}

func TestRecomputeTotal_AfterEdit(t *testing.T) {
	fee := models.FeeItem{ManagementFee: 700000, Electricity: 1900000, Water: 420000, Parking: 200000}
	RecomputeTotal(&fee)
	if fee.Total != 3220000 {
		t.Fatalf("Total = %d, want 3220000", fee.Total)
	}
	fee.Electricity = 2100000
	RecomputeTotal(&fee)
	if fee.Total != 3420000 {
		t.Errorf("Total after edit = %d, want 3420000", fee.Total)
	}
}

func TestFilterFees(t *testing.T) {
	fees := []models.FeeItem{
		{ID: "1", ApartmentID: "A-101", ResidentName: "Nguyễn Văn An"},
		{ID: "2", ApartmentID: "B-205", ResidentName: "Lê Văn Cường"},
	}

	tests := []struct {
		term string
		want int
	}{
		{"", 2},
		{"a-1", 1},
		{"b-205", 1},
		{"VĂN", 2},
		{"zzz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			if got := FilterFees(fees, tt.term); len(got) != tt.want {
				t.Errorf("FilterFees(%q) returned %d fees, want %d", tt.term, len(got), tt.want)
			}
		})
	}
}

func TestFeesForApartment(t *testing.T) {
	fees := []models.FeeItem{{ID: "1", ApartmentID: "A-101"}, {ID: "2", ApartmentID: "B-205"}, {ID: "3", ApartmentID: "A-101"}}
	got := FeesForApartment(fees, "A-101")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("got %+v", got)
	}
}
