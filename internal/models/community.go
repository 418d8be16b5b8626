package models

// NotificationType categorizes a board notification.
type NotificationType string

const (
	NotificationInfo        NotificationType = "info"
	NotificationWarning     NotificationType = "warning"
	NotificationMaintenance NotificationType = "maintenance"
	NotificationSuccess     NotificationType = "success"
)

// AppNotification is a message posted on the residents' board.
type AppNotification struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Content string           `json:"content"`
	Date    string           `json:"date"`
	Type    NotificationType `json:"type"`
}

// ActivityCategory groups community activities for display.
type ActivityCategory string

const (
	ActivitySports      ActivityCategory = "sports"
	ActivityCommunity   ActivityCategory = "community"
	ActivityMaintenance ActivityCategory = "maintenance"
	ActivityEvent       ActivityCategory = "event"
)

// Activity is a scheduled community activity.
type Activity struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Category    ActivityCategory `json:"category"`
	Date        string           `json:"date"`
	Time        string           `json:"time"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
}

// PoolSlot is the time of day a pool ticket is valid for.
type PoolSlot string

const (
	SlotMorning   PoolSlot = "morning"
	SlotAfternoon PoolSlot = "afternoon"
	SlotEvening   PoolSlot = "evening"
)

// TicketStatus is the lifecycle state of a pool ticket.
type TicketStatus string

const (
	TicketConfirmed TicketStatus = "confirmed"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
)

// PoolTicket is a swimming pool booking.
type PoolTicket struct {
	ID           string       `json:"id"`
	ApartmentID  string       `json:"apartmentId"`
	ResidentName string       `json:"residentName"`
	Date         string       `json:"date"`
	Slot         PoolSlot     `json:"slot"`
	AdultCount   int          `json:"adultCount"`
	ChildCount   int          `json:"childCount"`
	Status       TicketStatus `json:"status"`
}

// FeedbackKind separates general feedback from repair requests.
type FeedbackKind string

const (
	FeedbackGeneral FeedbackKind = "feedback"
	FeedbackRepair  FeedbackKind = "repair"
)

// Feedback is a submission from a resident to the management board.
type Feedback struct {
	ID          string       `json:"id"`
	Kind        FeedbackKind `json:"kind"`
	Subject     string       `json:"subject"`
	Content     string       `json:"content"`
	ApartmentID string       `json:"apartmentId,omitempty"`
	SubmittedBy string       `json:"submittedBy"`
	// PreferredDate is the requested visit date for repair requests.
	PreferredDate string `json:"preferredDate,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
}
