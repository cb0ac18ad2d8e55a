package entity

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusInProgress  AppointmentStatus = "in-progress"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "no-show"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// validTransitions is the lifecycle state machine. A missing entry means the
// status is terminal for scheduling purposes.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:   {StatusConfirmed, StatusCancelled, StatusScheduled},
	StatusConfirmed:   {StatusConfirmed, StatusCancelled, StatusScheduled, StatusInProgress, StatusCompleted, StatusNoShow},
	StatusInProgress:  {StatusCompleted, StatusCancelled},
	StatusRescheduled: {StatusScheduled, StatusConfirmed, StatusCancelled},
}

// Appointment represents a single consult between a patient and a doctor.
// The time range is half-open: [StartsAt, EndsAt). Cancellation is a status,
// never a row deletion. Sequence is the calendar revision counter, bumped on
// every cancel or reschedule so calendar clients supersede earlier invites.
type Appointment struct {
	ID                 string            `gorm:"type:char(36);primaryKey" json:"id"`
	PatientID          string            `gorm:"type:char(36);not null;index" json:"patient_id"`
	DoctorID           string            `gorm:"type:char(36);not null;index" json:"doctor_id"`
	StartsAt           time.Time         `gorm:"not null;index" json:"starts_at"`
	EndsAt             time.Time         `gorm:"not null" json:"ends_at"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	CancellationReason string            `gorm:"type:text" json:"cancellation_reason,omitempty"`
	Sequence           int               `gorm:"not null;default:0" json:"sequence"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsTerminal reports whether no further status transition is permitted.
// Notes-only edits are still allowed on completed appointments.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo checks the lifecycle state machine.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsCancelled checks if the appointment was cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsConfirmed checks if the appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// HasStarted reports whether the appointment start time has passed.
func (a *Appointment) HasStarted(now time.Time) bool {
	return !a.StartsAt.After(now)
}

// HasEnded reports whether the appointment end time has passed.
func (a *Appointment) HasEnded(now time.Time) bool {
	return !a.EndsAt.After(now)
}

// Overlaps reports half-open interval intersection with [startsAt, endsAt).
// An appointment ending exactly when another starts does not overlap it.
func (a *Appointment) Overlaps(startsAt, endsAt time.Time) bool {
	return a.StartsAt.Before(endsAt) && a.EndsAt.After(startsAt)
}
