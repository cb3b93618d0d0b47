package models

import "time"

// ReminderConfig defines one recurring reminder: what it is about, when it is
// due, how many days before the due date to notify, and through which
// channels.
type ReminderConfig struct {
	ID         int64     `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Type       string    `db:"type" json:"type"` // "service", "document", "insurance", "custom"
	VehicleID  int64     `db:"vehicle_id" json:"vehicleId"`
	Document   string    `db:"document" json:"document"` // document name for document reminders
	Template   string    `db:"template" json:"template"` // HTML message template with placeholders
	DueDate    time.Time `db:"due_date" json:"dueDate"`
	DaysBefore string    `db:"days_before" json:"daysBefore"` // JSON array of ints, e.g. [30,14,7,1]
	Channels   string    `db:"channels" json:"channels"`      // JSON array of channel names
	Recipients string    `db:"recipients" json:"recipients"`  // JSON array of addresses/numbers/chat ids
	IsActive   bool      `db:"is_active" json:"isActive"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// DeliveryLog records one delivery attempt for a reminder.
type DeliveryLog struct {
	ID         int64     `db:"id" json:"id"`
	ReminderID int64     `db:"reminder_id" json:"reminderId"`
	Channel    string    `db:"channel" json:"channel"`
	Recipient  string    `db:"recipient" json:"recipient"`
	Status     string    `db:"status" json:"status"` // "sent" or "failed"
	Error      string    `db:"error" json:"error,omitempty"`
	SentAt     time.Time `db:"sent_at" json:"sentAt"`
}

const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)
