package service

import (
	"github.com/mmynk/apartmanager/internal/calculator"
	"github.com/mmynk/apartmanager/internal/models"
)

// Fee messages.

type ListFeesRequest struct {
	Term string `json:"term"`
}

type ListFeesResponse struct {
	Fees []models.FeeItem `json:"fees"`
}

// FeeInput holds the editable fields of a fee.
type FeeInput struct {
	ApartmentID   string               `json:"apartmentId" validate:"required"`
	ResidentName  string               `json:"residentName" validate:"required"`
	Month         string               `json:"month" validate:"omitempty,numeric"`
	Year          int                  `json:"year" validate:"omitempty,gte=1970"`
	ManagementFee int64                `json:"managementFee" validate:"gte=0"`
	Electricity   int64                `json:"electricity" validate:"gte=0"`
	Water         int64                `json:"water" validate:"gte=0"`
	Parking       int64                `json:"parking" validate:"gte=0"`
	Status        models.PaymentStatus `json:"status" validate:"omitempty,oneof=PAID PENDING OVERDUE"`
}

type CreateFeeRequest struct {
	FeeInput
}

type UpdateFeeRequest struct {
	ID string `json:"id" validate:"required"`
	FeeInput
	DueDate string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

type SetFeeStatusRequest struct {
	ID     string               `json:"id" validate:"required"`
	Status models.PaymentStatus `json:"status" validate:"required,oneof=PAID PENDING OVERDUE"`
}

type FeeResponse struct {
	Fee models.FeeItem `json:"fee"`
}

type DeleteFeeRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteFeeResponse struct{}

// Resident messages.

type ListResidentsRequest struct {
	Term string `json:"term"`
}

type ListResidentsResponse struct {
	Residents []models.Resident `json:"residents"`
	// MemberCounts maps apartment id to the number of resident records.
	MemberCounts map[string]int `json:"memberCounts"`
}

// SaveResidentRequest creates a resident when ID is empty and edits it
// otherwise. When Building and Room are both set they replace ApartmentID.
type SaveResidentRequest struct {
	ID          string                `json:"id"`
	Name        string                `json:"name" validate:"required"`
	Phone       string                `json:"phone"`
	Email       string                `json:"email" validate:"omitempty,email"`
	Building    string                `json:"building"`
	Room        string                `json:"room"`
	ApartmentID string                `json:"apartmentId"`
	MemberCount int                   `json:"memberCount" validate:"gte=0"`
	EntryDate   string                `json:"entryDate" validate:"omitempty,datetime=2006-01-02"`
	Status      models.ResidentStatus `json:"status" validate:"omitempty,oneof=active temporary absent"`
	Role        models.ResidentRole   `json:"role" validate:"omitempty,oneof=owner member"`
}

type ResidentResponse struct {
	Resident models.Resident `json:"resident"`
}

type DeleteResidentRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteResidentResponse struct{}

type GetProfileRequest struct{}

// GetProfileResponse carries the caller's resident record. When Registered
// is false the record is a draft built from the account and nothing is stored.
type GetProfileResponse struct {
	Resident   models.Resident `json:"resident"`
	Registered bool            `json:"registered"`
}

type UpsertProfileRequest struct {
	Name        string                `json:"name" validate:"required"`
	Phone       string                `json:"phone"`
	ApartmentID string                `json:"apartmentId"`
	MemberCount int                   `json:"memberCount" validate:"gte=0"`
	EntryDate   string                `json:"entryDate" validate:"omitempty,datetime=2006-01-02"`
	Status      models.ResidentStatus `json:"status" validate:"omitempty,oneof=active temporary absent"`
}

// Dashboard messages.

type GetSummaryRequest struct{}

type GetSummaryResponse struct {
	Summary calculator.Summary `json:"summary"`
}

type HomeRequest struct{}

// ResidentHome is the home view of a resident account.
type ResidentHome struct {
	ApartmentID string           `json:"apartmentId"`
	Fees        []models.FeeItem `json:"fees"`
	Outstanding int64            `json:"outstanding"`
	Resident    *models.Resident `json:"resident,omitempty"`
}

// HomeResponse holds exactly one view, selected by Role.
type HomeResponse struct {
	Role     models.Role         `json:"role"`
	Admin    *calculator.Summary `json:"admin,omitempty"`
	Resident *ResidentHome       `json:"resident,omitempty"`
}

type ResetDataRequest struct{}

type ResetDataResponse struct {
	Version string `json:"version"`
}

// Auth messages.

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name"`
	ApartmentID string `json:"apartmentId"`
}

type AuthResponse struct {
	User  models.UserAccount `json:"user"`
	Token string             `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	State string              `json:"state"`
	User  *models.UserAccount `json:"user,omitempty"`
}

// Community messages.

type ListNotificationsRequest struct{}

type ListNotificationsResponse struct {
	Notifications []models.AppNotification `json:"notifications"`
}

type ListActivitiesRequest struct{}

type ListActivitiesResponse struct {
	Activities []models.Activity `json:"activities"`
}

type ListPoolTicketsRequest struct{}

type ListPoolTicketsResponse struct {
	Tickets []models.PoolTicket `json:"tickets"`
}

type SubmitFeedbackRequest struct {
	Kind          models.FeedbackKind `json:"kind" validate:"required,oneof=feedback repair"`
	Subject       string              `json:"subject" validate:"required"`
	Content       string              `json:"content" validate:"required"`
	PreferredDate string              `json:"preferredDate" validate:"omitempty,datetime=2006-01-02"`
}

type SubmitFeedbackResponse struct {
	Feedback models.Feedback `json:"feedback"`
}

type ListFeedbackRequest struct{}

type ListFeedbackResponse struct {
	Feedback []models.Feedback `json:"feedback"`
}

// Advisor messages.

type AnalyzeFeesRequest struct{}

type DraftReminderRequest struct {
	ResidentName string `json:"residentName" validate:"required"`
	Amount       int64  `json:"amount" validate:"gte=0"`
	ApartmentID  string `json:"apartmentId" validate:"required"`
}

// AdvisorResponse carries generated text or the fixed apology string.
type AdvisorResponse struct {
	Text string `json:"text"`
}
