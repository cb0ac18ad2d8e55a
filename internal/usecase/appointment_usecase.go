package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/REINA-08/autamedica-reboot-deploy/internal/converter"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/delivery/dto"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/repository"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/service"
	"github.com/REINA-08/autamedica-reboot-deploy/pkg/timepolicy"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrInvalidTimeRange    = errors.New("ends_at must be strictly after starts_at")
	ErrPastDate            = errors.New("cannot schedule an appointment in the past")
	ErrNotWeekday          = errors.New("appointments are only available Monday through Friday")
	ErrOutsideMedicalHours = errors.New("appointments are only available between 08:00 and 20:00")
	ErrAlreadyCancelled    = errors.New("appointment is already cancelled")
	ErrTerminalState       = errors.New("appointment is in a terminal state")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrAppointmentInPast   = errors.New("appointment is already in the past")
	ErrNotFinished         = errors.New("appointment has not ended yet")
	ErrPastTimeEdit        = errors.New("past appointments cannot change their time")
)

// pgExclusionViolation is the SQLSTATE raised when the appointments_no_overlap
// exclusion constraint rejects a write.
const pgExclusionViolation = "23P01"

// OverlapError is the user-actionable scheduling conflict. It is raised both
// by the advisory pre-check and by the translated storage-constraint
// violation, so clients see a single conflict vocabulary.
type OverlapError struct {
	Conflicts []entity.Appointment
}

func (e *OverlapError) Error() string {
	// Conflicts may be empty when the constraint fired but the re-query
	// failed; never report a zero count.
	if len(e.Conflicts) == 0 {
		return "Conflicto detectado: ya existe una cita en ese horario"
	}
	return fmt.Sprintf("Conflicto detectado: %d cita(s) en ese horario", len(e.Conflicts))
}

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Get(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	CheckAvailability(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error)
	Confirm(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id string, reason string) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, id string, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	ConsultSummary(ctx context.Context, id string) (*service.DocumentArtifact, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	notifier        service.NotificationService
	documents       *service.DocumentService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	notifier service.NotificationService,
	documents *service.DocumentService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		notifier:        notifier,
		documents:       documents,
	}
}

// Create books a new appointment. The write is authoritative once the
// storage accepts it; the confirmation dispatch is best-effort and reported
// in the response's notification outcome.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := validateTimeRange(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}
	if err := validateSchedulingPolicy(req.StartsAt); err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, fmt.Errorf("error loading patient: %w", err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, fmt.Errorf("error loading doctor: %w", err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// Advisory pre-check. The exclusion constraint remains the sole
	// correctness backstop against concurrent bookings.
	conflicts, err := u.appointmentRepo.FindOverlapping(u.db.WithContext(ctx), req.DoctorID, req.StartsAt, req.EndsAt, "")
	if err != nil {
		return nil, fmt.Errorf("error checking overlap: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, &OverlapError{Conflicts: conflicts}
	}

	appointment := &entity.Appointment{
		ID:        uuid.NewString(),
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Status:    entity.StatusScheduled,
		Notes:     req.Notes,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, u.translateStorageError(ctx, "creating appointment", appointment, err)
	}

	appointment.Patient = *patient
	appointment.Doctor = *doctor

	warnings, sendErr := u.notifier.SendConfirmation(ctx, appointment)
	response := converter.AppointmentToResponse(appointment)
	response.Notification = u.notifyOutcome(appointment.ID, warnings, sendErr)
	return response, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.List(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CheckAvailability is the read-only overlap pre-check exposed to clients.
// It never mutates anything; its result is advisory and recomputed on every
// call.
func (u *appointmentUsecase) CheckAvailability(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if err := validateTimeRange(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}

	conflicts, err := u.appointmentRepo.FindOverlapping(u.db.WithContext(ctx), req.DoctorID, req.StartsAt, req.EndsAt, req.ExcludeID)
	if err != nil {
		return nil, fmt.Errorf("error checking overlap: %w", err)
	}

	response := &dto.AvailabilityResponse{
		HasOverlap:              len(conflicts) > 0,
		ConflictingAppointments: converter.ConflictsToResponses(conflicts),
	}
	if response.HasOverlap {
		response.Message = fmt.Sprintf("Conflicto detectado: %d cita(s) en ese horario", len(conflicts))
	}
	return response, nil
}

// Confirm moves a scheduled appointment to confirmed. Confirming an already
// confirmed appointment is an idempotent no-op.
func (u *appointmentUsecase) Confirm(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.IsConfirmed() {
		return converter.AppointmentToResponse(appointment), nil
	}
	if appointment.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}
	if appointment.Status != entity.StatusScheduled {
		return nil, ErrInvalidTransition
	}
	if appointment.HasStarted(time.Now()) {
		return nil, ErrAppointmentInPast
	}

	appointment.Status = entity.StatusConfirmed
	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to confirm appointment %s: %+v", id, err)
		return nil, fmt.Errorf("error confirming appointment: %w", err)
	}

	warnings, sendErr := u.notifier.SendConfirmation(ctx, appointment)
	response := converter.AppointmentToResponse(appointment)
	response.Notification = u.notifyOutcome(appointment.ID, warnings, sendErr)
	return response, nil
}

// Cancel marks the appointment cancelled. Cancelling twice is rejected.
// Cancellation is a status change; the row is never deleted.
func (u *appointmentUsecase) Cancel(ctx context.Context, id string, reason string) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}
	if !appointment.CanTransitionTo(entity.StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	appointment.Status = entity.StatusCancelled
	appointment.CancellationReason = reason
	appointment.Sequence++

	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return nil, fmt.Errorf("error cancelling appointment: %w", err)
	}

	warnings, sendErr := u.notifier.SendCancellation(ctx, appointment)
	response := converter.AppointmentToResponse(appointment)
	response.Notification = u.notifyOutcome(appointment.ID, warnings, sendErr)
	return response, nil
}

// Reschedule moves the appointment to a new validated time. The appointment
// returns to scheduled and its calendar sequence advances so the new invite
// supersedes the old one.
func (u *appointmentUsecase) Reschedule(ctx context.Context, id string, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}
	if appointment.Status != entity.StatusScheduled && appointment.Status != entity.StatusConfirmed {
		return nil, ErrInvalidTransition
	}

	return u.applyTimeChange(ctx, appointment, req.StartsAt, req.EndsAt)
}

// Complete closes a confirmed appointment whose end time has passed.
func (u *appointmentUsecase) Complete(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	return u.finish(ctx, id, entity.StatusCompleted)
}

// MarkNoShow records that the patient did not attend.
func (u *appointmentUsecase) MarkNoShow(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	return u.finish(ctx, id, entity.StatusNoShow)
}

func (u *appointmentUsecase) finish(ctx context.Context, id string, status entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appointment.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}
	if !appointment.HasEnded(time.Now()) {
		return nil, ErrNotFinished
	}

	appointment.Status = status
	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s to %s: %+v", id, status, err)
		return nil, fmt.Errorf("error updating appointment status: %w", err)
	}
	return converter.AppointmentToResponse(appointment), nil
}

// Update patches notes and/or time. A time change re-runs the full policy
// and overlap validation and behaves like a reschedule; completed
// appointments accept notes edits only; past appointments never change time.
func (u *appointmentUsecase) Update(ctx context.Context, id string, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	timeChange := req.StartsAt != nil || req.EndsAt != nil

	switch appointment.Status {
	case entity.StatusCancelled:
		return nil, ErrAlreadyCancelled
	case entity.StatusNoShow:
		return nil, ErrTerminalState
	case entity.StatusCompleted:
		if timeChange {
			return nil, ErrTerminalState
		}
	}

	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if !timeChange {
		if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
			u.log.Warnf("Failed to update appointment %s: %+v", id, err)
			return nil, fmt.Errorf("error updating appointment: %w", err)
		}
		return converter.AppointmentToResponse(appointment), nil
	}

	if appointment.HasStarted(time.Now()) {
		return nil, ErrPastTimeEdit
	}

	newStart := appointment.StartsAt
	newEnd := appointment.EndsAt
	if req.StartsAt != nil {
		newStart = *req.StartsAt
	}
	if req.EndsAt != nil {
		newEnd = *req.EndsAt
	}

	return u.applyTimeChange(ctx, appointment, newStart, newEnd)
}

// applyTimeChange is the shared reschedule path: validation, self-excluded
// overlap check, sequence bump and reschedule dispatch.
func (u *appointmentUsecase) applyTimeChange(ctx context.Context, appointment *entity.Appointment, newStart, newEnd time.Time) (*dto.AppointmentResponse, error) {
	if err := validateTimeRange(newStart, newEnd); err != nil {
		return nil, err
	}
	if err := validateSchedulingPolicy(newStart); err != nil {
		return nil, err
	}

	conflicts, err := u.appointmentRepo.FindOverlapping(u.db.WithContext(ctx), appointment.DoctorID, newStart, newEnd, appointment.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking overlap: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, &OverlapError{Conflicts: conflicts}
	}

	oldStart := appointment.StartsAt
	appointment.StartsAt = newStart
	appointment.EndsAt = newEnd
	appointment.Status = entity.StatusScheduled
	appointment.Sequence++

	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to reschedule appointment %s: %+v", appointment.ID, err)
		return nil, u.translateStorageError(ctx, "rescheduling appointment", appointment, err)
	}

	warnings, sendErr := u.notifier.SendReschedule(ctx, appointment, oldStart)
	response := converter.AppointmentToResponse(appointment)
	response.Notification = u.notifyOutcome(appointment.ID, warnings, sendErr)
	return response, nil
}

// ConsultSummary renders the downloadable PDF summary for an appointment.
func (u *appointmentUsecase) ConsultSummary(ctx context.Context, id string) (*service.DocumentArtifact, error) {
	appointment, err := u.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	artifact, err := u.documents.ConsultSummary(appointment, service.ConsultSummaryOptions{})
	if err != nil {
		u.log.Warnf("Failed to render consult summary for %s: %+v", id, err)
		return nil, fmt.Errorf("error rendering consult summary: %w", err)
	}
	return artifact, nil
}

func (u *appointmentUsecase) findAppointment(ctx context.Context, id string) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, fmt.Errorf("error loading appointment: %w", err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// translateStorageError converts an exclusion-constraint violation into the
// same conflict error the advisory pre-check raises, so concurrent bookings
// that slipped past the pre-check surface identically.
func (u *appointmentUsecase) translateStorageError(ctx context.Context, op string, appointment *entity.Appointment, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		conflicts, qErr := u.appointmentRepo.FindOverlapping(
			u.db.WithContext(ctx), appointment.DoctorID, appointment.StartsAt, appointment.EndsAt, appointment.ID)
		if qErr != nil {
			u.log.Warnf("Failed to load conflicts after constraint violation: %+v", qErr)
		}
		return &OverlapError{Conflicts: conflicts}
	}
	return fmt.Errorf("error %s: %w", op, err)
}

// notifyOutcome folds a dispatch result into the response DTO. Dispatch
// failure is reported, never propagated: the state change already committed.
func (u *appointmentUsecase) notifyOutcome(appointmentID string, warnings []string, err error) *dto.NotificationOutcome {
	outcome := &dto.NotificationOutcome{Sent: err == nil, Warnings: warnings}
	if err != nil {
		outcome.Error = err.Error()
		u.log.Warnf("Notification for appointment %s failed: %+v", appointmentID, err)
	}
	return outcome
}

func validateTimeRange(startsAt, endsAt time.Time) error {
	if !endsAt.After(startsAt) {
		return ErrInvalidTimeRange
	}
	return nil
}

func validateSchedulingPolicy(startsAt time.Time) error {
	if !timepolicy.IsFuture(startsAt) {
		return ErrPastDate
	}
	if !timepolicy.IsWeekday(startsAt) {
		return ErrNotWeekday
	}
	if !timepolicy.IsValidMedicalHour(startsAt) {
		return ErrOutsideMedicalHours
	}
	return nil
}
