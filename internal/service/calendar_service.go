package service

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
	"github.com/REINA-08/autamedica-reboot-deploy/pkg/timepolicy"
)

// Calendar methods per RFC 5546.
const (
	CalendarMethodRequest = "REQUEST"
	CalendarMethodCancel  = "CANCEL"
	CalendarMethodPublish = "PUBLISH"
)

const calendarUIDSuffix = "@autamedica"

// CalendarArtifact is the ICS blob handed to the notification dispatcher.
type CalendarArtifact struct {
	Filename string
	MIMEType string
	Content  []byte
}

// Base64 returns the payload encoded for transports that require it.
func (a *CalendarArtifact) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Content)
}

// CalendarService builds RFC 5545 calendar objects for appointment events.
// Every artifact of the same appointment shares one stable UID; the sequence
// number (bumped by the lifecycle on cancel/reschedule) tells calendar
// clients which revision supersedes which.
type CalendarService struct {
	now func() time.Time
}

func NewCalendarService() *CalendarService {
	return &CalendarService{now: time.Now}
}

// Confirmation builds a REQUEST artifact. The event is CONFIRMED once the
// appointment is confirmed, TENTATIVE while it is merely scheduled.
func (s *CalendarService) Confirmation(appointment *entity.Appointment) *CalendarArtifact {
	status := "TENTATIVE"
	if appointment.IsConfirmed() {
		status = "CONFIRMED"
	}
	description := s.baseDescription(appointment)
	return s.build(appointment, CalendarMethodRequest, status, description, 0)
}

// Cancellation builds a CANCEL artifact for the same UID with the bumped
// sequence so clients drop the event.
func (s *CalendarService) Cancellation(appointment *entity.Appointment) *CalendarArtifact {
	description := s.baseDescription(appointment)
	if appointment.CancellationReason != "" {
		description += "\nMotivo de cancelación: " + appointment.CancellationReason
	}
	return s.build(appointment, CalendarMethodCancel, "CANCELLED", description, 0)
}

// Reschedule builds a REQUEST artifact whose description carries both the
// previous and the new start time.
func (s *CalendarService) Reschedule(appointment *entity.Appointment, oldStart time.Time) *CalendarArtifact {
	loc := timepolicy.Location()
	description := s.baseDescription(appointment) + fmt.Sprintf(
		"\nCita reprogramada. Horario anterior: %s. Nuevo horario: %s.",
		oldStart.In(loc).Format("02/01/2006 15:04"),
		appointment.StartsAt.In(loc).Format("02/01/2006 15:04"),
	)
	return s.build(appointment, CalendarMethodRequest, "CONFIRMED", description, 0)
}

// Reminder builds a PUBLISH artifact identical to the confirmation plus a
// display alarm firing hoursBefore the start.
func (s *CalendarService) Reminder(appointment *entity.Appointment, hoursBefore int) *CalendarArtifact {
	description := s.baseDescription(appointment)
	return s.build(appointment, CalendarMethodPublish, "CONFIRMED", description, hoursBefore)
}

func (s *CalendarService) baseDescription(appointment *entity.Appointment) string {
	description := fmt.Sprintf("Cita médica con %s.\nPaciente: %s.",
		appointment.Doctor.FullName, appointment.Patient.FullName)
	if appointment.Notes != "" {
		description += "\nNotas: " + appointment.Notes
	}
	return description
}

func (s *CalendarService) build(appointment *entity.Appointment, method, status, description string, alarmHours int) *CalendarArtifact {
	loc := timepolicy.Location()
	var b strings.Builder

	writeICSLine(&b, "BEGIN:VCALENDAR")
	writeICSLine(&b, "VERSION:2.0")
	writeICSLine(&b, "PRODID:-//Autamedica//Agenda Medica//ES")
	writeICSLine(&b, "CALSCALE:GREGORIAN")
	writeICSLine(&b, "METHOD:"+method)

	// Fixed clinic zone; Argentina has not observed DST since 2009.
	writeICSLine(&b, "BEGIN:VTIMEZONE")
	writeICSLine(&b, "TZID:"+timepolicy.ZoneName)
	writeICSLine(&b, "BEGIN:STANDARD")
	writeICSLine(&b, "DTSTART:19700101T000000")
	writeICSLine(&b, "TZOFFSETFROM:-0300")
	writeICSLine(&b, "TZOFFSETTO:-0300")
	writeICSLine(&b, "TZNAME:-03")
	writeICSLine(&b, "END:STANDARD")
	writeICSLine(&b, "END:VTIMEZONE")

	writeICSLine(&b, "BEGIN:VEVENT")
	writeICSLine(&b, "UID:"+appointment.ID+calendarUIDSuffix)
	writeICSLine(&b, fmt.Sprintf("SEQUENCE:%d", appointment.Sequence))
	writeICSLine(&b, "DTSTAMP:"+s.now().UTC().Format("20060102T150405Z"))
	writeICSLine(&b, fmt.Sprintf("DTSTART;TZID=%s:%s", timepolicy.ZoneName,
		appointment.StartsAt.In(loc).Format("20060102T150405")))
	writeICSLine(&b, fmt.Sprintf("DTEND;TZID=%s:%s", timepolicy.ZoneName,
		appointment.EndsAt.In(loc).Format("20060102T150405")))
	writeICSLine(&b, "SUMMARY:"+escapeICSText("Cita médica - "+appointment.Doctor.FullName))
	writeICSLine(&b, "DESCRIPTION:"+escapeICSText(description))
	writeICSLine(&b, "STATUS:"+status)
	if appointment.Doctor.Email != "" {
		writeICSLine(&b, fmt.Sprintf("ORGANIZER;CN=%s:mailto:%s",
			escapeICSText(appointment.Doctor.FullName), appointment.Doctor.Email))
	}
	if appointment.Patient.Email != "" {
		writeICSLine(&b, fmt.Sprintf("ATTENDEE;CN=%s:mailto:%s",
			escapeICSText(appointment.Patient.FullName), appointment.Patient.Email))
	}

	if alarmHours > 0 {
		writeICSLine(&b, "BEGIN:VALARM")
		writeICSLine(&b, fmt.Sprintf("TRIGGER:-PT%dH", alarmHours))
		writeICSLine(&b, "ACTION:DISPLAY")
		writeICSLine(&b, "DESCRIPTION:"+escapeICSText("Recordatorio de cita médica"))
		writeICSLine(&b, "END:VALARM")
	}

	writeICSLine(&b, "END:VEVENT")
	writeICSLine(&b, "END:VCALENDAR")

	return &CalendarArtifact{
		Filename: "cita-" + appointment.ID + ".ics",
		MIMEType: "text/calendar; charset=utf-8; method=" + method,
		Content:  []byte(b.String()),
	}
}

// escapeICSText applies RFC 5545 TEXT escaping: backslash, semicolon, comma
// and newline.
func escapeICSText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return r.Replace(s)
}

// writeICSLine writes a content line with CRLF, folding at 75 octets with a
// single-space continuation per RFC 5545 §3.1.
func writeICSLine(b *strings.Builder, line string) {
	const limit = 75
	// Continuation lines start with a space, which counts against the limit.
	budget := limit
	for len(line) > budget {
		cut := budget
		// Never split a UTF-8 sequence.
		for cut > 0 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		budget = limit - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}
