package entity

import (
	"time"
)

// AppointmentFilter narrows appointment listings. Zero values mean "no filter".
type AppointmentFilter struct {
	DoctorID  string
	PatientID string
	Status    AppointmentStatus
	From      time.Time
	To        time.Time
}
