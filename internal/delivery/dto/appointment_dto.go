package dto

import (
	"time"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID string    `json:"patient_id" validate:"required,uuid"`
	DoctorID  string    `json:"doctor_id" validate:"required,uuid"`
	StartsAt  time.Time `json:"starts_at" validate:"required"`
	EndsAt    time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	Notes     string    `json:"notes" validate:"max=2000"`
}

type RescheduleAppointmentRequest struct {
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// UpdateAppointmentRequest patches notes and/or the time range. Nil fields
// are left untouched.
type UpdateAppointmentRequest struct {
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Notes    *string    `json:"notes" validate:"omitempty,max=2000"`
}

type AvailabilityRequest struct {
	DoctorID  string    `json:"doctor_id" validate:"required,uuid"`
	StartsAt  time.Time `json:"starts_at" validate:"required"`
	EndsAt    time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	ExcludeID string    `json:"exclude_id" validate:"omitempty,uuid"`
}

// Response DTOs

type ConflictingAppointment struct {
	ID       string    `json:"id"`
	DoctorID string    `json:"doctor_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type AvailabilityResponse struct {
	HasOverlap              bool                     `json:"has_overlap"`
	ConflictingAppointments []ConflictingAppointment `json:"conflicting_appointments"`
	Message                 string                   `json:"message,omitempty"`
}

// NotificationOutcome reports the best-effort dispatch attached to a
// lifecycle operation. The appointment state change is authoritative
// regardless of this outcome.
type NotificationOutcome struct {
	Sent     bool     `json:"sent"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

type AppointmentResponse struct {
	ID                 string               `json:"id"`
	PatientID          string               `json:"patient_id"`
	DoctorID           string               `json:"doctor_id"`
	StartsAt           time.Time            `json:"starts_at"`
	EndsAt             time.Time            `json:"ends_at"`
	Status             string               `json:"status"`
	Notes              string               `json:"notes,omitempty"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`
	Patient            *PatientResponse     `json:"patient,omitempty"`
	Doctor             *DoctorResponse      `json:"doctor,omitempty"`
	Notification       *NotificationOutcome `json:"notification,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
