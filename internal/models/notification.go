package models

type NotificationType string

const (
	NotificationMessage  NotificationType = "message"
	NotificationAlert    NotificationType = "alert"
	NotificationReminder NotificationType = "reminder"
)

// Notification is the outbound payload handed to the dispatcher. Delivery is
// best effort; the core never observes the outcome.
type Notification struct {
	Recipient string           `json:"recipient"`
	Type      NotificationType `json:"type"`
	Content   string           `json:"content"`
}
