package entity

import (
	"time"
)

// Notification kinds dispatched by the scheduling core.
const (
	NotificationConfirmation = "confirmation"
	NotificationCancellation = "cancellation"
	NotificationReminder24h  = "reminder-24h"
	NotificationReminder2h   = "reminder-2h"
	NotificationReschedule   = "reschedule"
)

// NotificationLog records one delivery attempt for auditing. Writing it is
// best-effort: a failed insert never fails the dispatch itself.
type NotificationLog struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID string    `gorm:"type:char(36);not null;index" json:"appointment_id"`
	Kind          string    `gorm:"type:varchar(20);not null" json:"kind"`
	Recipient     string    `gorm:"type:varchar(255);not null" json:"recipient"`
	Outcome       string    `gorm:"type:varchar(10);not null" json:"outcome"`
	Error         string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}
