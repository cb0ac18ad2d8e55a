// Package timepolicy holds the scheduling rules for the clinic: all
// appointments live in a single fixed timezone, on weekdays, inside the
// medical attention window.
package timepolicy

import (
	"time"
	_ "time/tzdata"
)

// ZoneName is the single timezone every appointment is evaluated in.
const ZoneName = "America/Argentina/Buenos_Aires"

const (
	// OpeningHour is the first bookable local hour (inclusive).
	OpeningHour = 8
	// ClosingHour is the end of the attention window (exclusive).
	ClosingHour = 20
)

var location *time.Location

func init() {
	loc, err := time.LoadLocation(ZoneName)
	if err != nil {
		// tzdata is linked in, so this only happens with a corrupt build.
		panic("timepolicy: load location " + ZoneName + ": " + err.Error())
	}
	location = loc
}

// Location returns the fixed clinic timezone.
func Location() *time.Location {
	return location
}

// IsWeekday reports whether t falls on Monday through Friday in the clinic zone.
func IsWeekday(t time.Time) bool {
	switch t.In(location).Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// IsValidMedicalHour reports whether the local hour of t is inside the
// attention window [OpeningHour, ClosingHour).
func IsValidMedicalHour(t time.Time) bool {
	hour := t.In(location).Hour()
	return hour >= OpeningHour && hour < ClosingHour
}

// IsFuture reports whether t is strictly after the current instant.
func IsFuture(t time.Time) bool {
	return t.After(time.Now())
}
