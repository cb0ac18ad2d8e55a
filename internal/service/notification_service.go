package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/REINA-08/autamedica-reboot-deploy/config"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
	domainRepo "github.com/REINA-08/autamedica-reboot-deploy/internal/domain/repository"
	"github.com/REINA-08/autamedica-reboot-deploy/pkg/mailer"
	"github.com/REINA-08/autamedica-reboot-deploy/pkg/retry"
	"github.com/REINA-08/autamedica-reboot-deploy/pkg/timepolicy"
)

// BatchReminderResult aggregates a sequential reminder run. Errors keeps
// input order, one entry per failed item, formatted "<id>: <message>".
type BatchReminderResult struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// NotificationService renders notification content, attaches the calendar
// artifact and delivers through the transport. Warnings returned alongside a
// nil error are non-fatal (e.g. the doctor copy failed); the primary send
// outcome is independent of the copy.
type NotificationService interface {
	SendConfirmation(ctx context.Context, appointment *entity.Appointment) ([]string, error)
	SendCancellation(ctx context.Context, appointment *entity.Appointment) ([]string, error)
	SendReminder(ctx context.Context, appointment *entity.Appointment, hoursBefore int) error
	SendReschedule(ctx context.Context, appointment *entity.Appointment, oldStart time.Time) ([]string, error)
	SendBatchReminders(ctx context.Context, appointments []entity.Appointment, hoursBefore int) *BatchReminderResult
}

type notificationService struct {
	db        *gorm.DB
	log       *logrus.Logger
	transport mailer.Transport
	renderer  TemplateRenderer
	calendar  *CalendarService
	logRepo   domainRepo.NotificationLogRepository
	strategy  retry.Strategy
}

// NewNotificationService wires the dispatcher. renderer may be nil: bodies
// then degrade to the built-in minimal markup instead of failing.
func NewNotificationService(
	db *gorm.DB,
	log *logrus.Logger,
	transport mailer.Transport,
	renderer TemplateRenderer,
	calendar *CalendarService,
	logRepo domainRepo.NotificationLogRepository,
	cfg config.NotificationConfig,
) NotificationService {
	strategy := retry.Strategy{Attempts: cfg.RetryAttempts, Delay: cfg.RetryBaseDelay}
	if strategy.Attempts <= 0 {
		strategy = retry.DefaultStrategy()
	}
	return &notificationService{
		db:        db,
		log:       log,
		transport: transport,
		renderer:  renderer,
		calendar:  calendar,
		logRepo:   logRepo,
		strategy:  strategy,
	}
}

func (s *notificationService) SendConfirmation(ctx context.Context, appointment *entity.Appointment) ([]string, error) {
	title := "Cita agendada"
	if appointment.IsConfirmed() {
		title = "Cita confirmada"
	}
	data := s.templateData(appointment)
	data["Title"] = title
	data["Intro"] = "Estos son los detalles de tu cita médica:"

	artifact := s.calendar.Confirmation(appointment)
	message := &mailer.Message{
		To:          []string{appointment.Patient.Email},
		Subject:     fmt.Sprintf("%s - %s", title, s.formatLocal(appointment.StartsAt)),
		HTMLBody:    s.renderBody("confirmation", title, data),
		Headers:     map[string]string{},
		Attachments: []mailer.Attachment{artifactAttachment(artifact)},
		Tags:        []string{entity.NotificationConfirmation},
	}

	if err := s.deliver(ctx, entity.NotificationConfirmation, appointment, message); err != nil {
		return nil, err
	}

	warnings := s.sendDoctorCopy(ctx, entity.NotificationConfirmation, "confirmation", appointment, title, data, message.Headers, artifact)
	return warnings, nil
}

func (s *notificationService) SendCancellation(ctx context.Context, appointment *entity.Appointment) ([]string, error) {
	reason := appointment.CancellationReason
	if reason == "" {
		reason = "Not specified"
	}

	data := s.templateData(appointment)
	data["Reason"] = reason

	artifact := s.calendar.Cancellation(appointment)
	message := &mailer.Message{
		To:       []string{appointment.Patient.Email},
		Subject:  fmt.Sprintf("Cita cancelada - %s", s.formatLocal(appointment.StartsAt)),
		HTMLBody: s.renderBody("cancellation", "Cita cancelada", data),
		Headers: map[string]string{
			"X-Cancellation-Reason": reason,
		},
		Attachments: []mailer.Attachment{artifactAttachment(artifact)},
		Tags:        []string{entity.NotificationCancellation},
	}

	if err := s.deliver(ctx, entity.NotificationCancellation, appointment, message); err != nil {
		return nil, err
	}

	warnings := s.sendDoctorCopy(ctx, entity.NotificationCancellation, "cancellation", appointment, "Cita cancelada", data, message.Headers, artifact)
	return warnings, nil
}

// SendReminder delivers a patient-only reminder. hoursBefore branches the
// urgency: 24h is a normal-priority heads-up, 2h is marked high priority.
func (s *notificationService) SendReminder(ctx context.Context, appointment *entity.Appointment, hoursBefore int) error {
	kind := entity.NotificationReminder24h
	title := "Recordatorio de cita"
	subject := fmt.Sprintf("Recordatorio: cita el %s", s.formatLocal(appointment.StartsAt))
	headers := map[string]string{}

	if hoursBefore == 2 {
		kind = entity.NotificationReminder2h
		title = "Tu cita es muy pronto"
		subject = fmt.Sprintf("URGENTE: tu cita comienza a las %s",
			appointment.StartsAt.In(timepolicy.Location()).Format("15:04"))
		headers["X-Priority"] = "1 (Highest)"
		headers["Importance"] = "high"
	}

	data := s.templateData(appointment)
	data["Title"] = title

	artifact := s.calendar.Reminder(appointment, hoursBefore)
	message := &mailer.Message{
		To:          []string{appointment.Patient.Email},
		Subject:     subject,
		HTMLBody:    s.renderBody("reminder", title, data),
		Headers:     headers,
		Attachments: []mailer.Attachment{artifactAttachment(artifact)},
		Tags:        []string{kind},
	}

	return s.deliver(ctx, kind, appointment, message)
}

func (s *notificationService) SendReschedule(ctx context.Context, appointment *entity.Appointment, oldStart time.Time) ([]string, error) {
	data := s.templateData(appointment)
	data["OldStartsAt"] = s.formatLocal(oldStart)

	artifact := s.calendar.Reschedule(appointment, oldStart)
	message := &mailer.Message{
		To:          []string{appointment.Patient.Email},
		Subject:     fmt.Sprintf("Cita reprogramada - nuevo horario %s", s.formatLocal(appointment.StartsAt)),
		HTMLBody:    s.renderBody("reschedule", "Cita reprogramada", data),
		Headers:     map[string]string{},
		Attachments: []mailer.Attachment{artifactAttachment(artifact)},
		Tags: []string{
			entity.NotificationReschedule,
			"old-start:" + oldStart.UTC().Format(time.RFC3339),
			"new-start:" + appointment.StartsAt.UTC().Format(time.RFC3339),
		},
	}

	if err := s.deliver(ctx, entity.NotificationReschedule, appointment, message); err != nil {
		return nil, err
	}

	warnings := s.sendDoctorCopy(ctx, entity.NotificationReschedule, "reschedule", appointment, "Cita reprogramada", data, message.Headers, artifact)
	return warnings, nil
}

// SendBatchReminders processes the list sequentially. One item's failure is
// recorded and never stops the remaining items.
func (s *notificationService) SendBatchReminders(ctx context.Context, appointments []entity.Appointment, hoursBefore int) *BatchReminderResult {
	result := &BatchReminderResult{}

	for i := range appointments {
		appointment := appointments[i]
		if err := s.SendReminder(ctx, &appointment, hoursBefore); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", appointment.ID, err))
			s.log.Warnf("Failed to send reminder for appointment %s: %+v", appointment.ID, err)
			continue
		}
		result.Successful++
	}

	return result
}

// deliver wraps only the transport call in the retry loop. Rendering and
// artifact generation happen before and fail immediately.
func (s *notificationService) deliver(ctx context.Context, kind string, appointment *entity.Appointment, message *mailer.Message) error {
	err := retry.Do(ctx, s.strategy, func() error {
		_, sendErr := s.transport.Send(ctx, message)
		return sendErr
	})

	recipient := ""
	if len(message.To) > 0 {
		recipient = message.To[0]
	}

	if err != nil {
		wrapped := fmt.Errorf("Failed to send %s after %d attempts: %v", kind, s.strategy.Attempts, err)
		s.recordLog(appointment.ID, kind, recipient, mailer.StatusFailed, wrapped.Error())
		return wrapped
	}

	s.recordLog(appointment.ID, kind, recipient, mailer.StatusSent, "")
	return nil
}

// sendDoctorCopy sends a doctor-facing copy when the doctor has a distinct
// email. The copy carries the same kind-specific headers and template as the
// patient message. Its failure never affects the primary outcome; it is
// returned as a warning.
func (s *notificationService) sendDoctorCopy(ctx context.Context, kind, templateName string, appointment *entity.Appointment, title string, data map[string]any, headers map[string]string, artifact *CalendarArtifact) []string {
	doctorEmail := appointment.Doctor.Email
	if doctorEmail == "" || doctorEmail == appointment.Patient.Email {
		return nil
	}

	copyData := make(map[string]any, len(data)+1)
	for k, v := range data {
		copyData[k] = v
	}
	copyData["Title"] = title
	copyData["Intro"] = fmt.Sprintf("Detalle de la cita con el paciente %s:", appointment.Patient.FullName)

	copyHeaders := make(map[string]string, len(headers))
	for k, v := range headers {
		copyHeaders[k] = v
	}

	message := &mailer.Message{
		To:          []string{doctorEmail},
		Subject:     fmt.Sprintf("[Agenda] %s - paciente %s", title, appointment.Patient.FullName),
		HTMLBody:    s.renderBody(templateName, title, copyData),
		Headers:     copyHeaders,
		Attachments: []mailer.Attachment{artifactAttachment(artifact)},
		Tags:        []string{kind, "doctor-copy"},
	}

	if err := s.deliver(ctx, kind, appointment, message); err != nil {
		s.log.Warnf("Failed to send doctor copy for appointment %s: %+v", appointment.ID, err)
		return []string{fmt.Sprintf("doctor copy not delivered: %v", err)}
	}
	return nil
}

func (s *notificationService) renderBody(templateName, title string, data map[string]any) string {
	if s.renderer == nil {
		return fallbackBody(title, data)
	}
	body, err := s.renderer.Render(templateName, data)
	if err != nil {
		s.log.Warnf("Template %s unavailable, using fallback: %+v", templateName, err)
		return fallbackBody(title, data)
	}
	return body
}

// recordLog persists the dispatch attempt; failures here are logged only.
func (s *notificationService) recordLog(appointmentID, kind, recipient, outcome, errDetail string) {
	if s.logRepo == nil || s.db == nil {
		return
	}
	record := &entity.NotificationLog{
		AppointmentID: appointmentID,
		Kind:          kind,
		Recipient:     recipient,
		Outcome:       outcome,
		Error:         errDetail,
	}
	if err := s.logRepo.Create(s.db, record); err != nil {
		s.log.Warnf("Failed to persist notification log for appointment %s: %+v", appointmentID, err)
	}
}

func (s *notificationService) templateData(appointment *entity.Appointment) map[string]any {
	return map[string]any{
		"PatientName": appointment.Patient.FullName,
		"DoctorName":  appointment.Doctor.FullName,
		"StartsAt":    s.formatLocal(appointment.StartsAt),
		"EndsAt":      s.formatLocal(appointment.EndsAt),
		"Notes":       appointment.Notes,
	}
}

func (s *notificationService) formatLocal(t time.Time) string {
	return t.In(timepolicy.Location()).Format("02/01/2006 15:04")
}

func artifactAttachment(artifact *CalendarArtifact) mailer.Attachment {
	return mailer.Attachment{
		Filename: artifact.Filename,
		MIMEType: artifact.MIMEType,
		Content:  artifact.Content,
	}
}
