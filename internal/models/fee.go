package models

// PaymentStatus is the payment state of a fee.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "PAID"
	StatusPending PaymentStatus = "PENDING"
	StatusOverdue PaymentStatus = "OVERDUE"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusPending, StatusOverdue:
		return true
	}
	return false
}

// FeeItem is one apartment's invoice for a billing month.
//
// Amounts are whole VND. Total must always equal the sum of the four charge
// components; use calculator.RecomputeTotal after editing any of them.
type FeeItem struct {
	ID           string `json:"id"`
	ApartmentID  string `json:"apartmentId"`
	ResidentName string `json:"residentName"`

	// Month is the month number as entered ("10", "9"). It is compared as a
	// string, so "9" and "09" are different periods.
	Month string `json:"month"`
	Year  int    `json:"year"`

	ManagementFee int64 `json:"managementFee"`
	Electricity   int64 `json:"electricity"`
	Water         int64 `json:"water"`
	Parking       int64 `json:"parking"`
	Total         int64 `json:"total"`

	Status PaymentStatus `json:"status"`

	// DueDate is an ISO date (YYYY-MM-DD).
	DueDate string `json:"dueDate"`
}
