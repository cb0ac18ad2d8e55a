package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/REINA-08/autamedica-reboot-deploy/internal/delivery/dto"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/repository"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/service"
	"github.com/REINA-08/autamedica-reboot-deploy/pkg/timepolicy"
)

// stubNotifier fulfils the dispatch interface without a transport.
type stubNotifier struct {
	confirmations int
	cancellations int
	reschedules   int
	warnings      []string
	err           error
}

func (s *stubNotifier) SendConfirmation(ctx context.Context, a *entity.Appointment) ([]string, error) {
	s.confirmations++
	return s.warnings, s.err
}

func (s *stubNotifier) SendCancellation(ctx context.Context, a *entity.Appointment) ([]string, error) {
	s.cancellations++
	return s.warnings, s.err
}

func (s *stubNotifier) SendReschedule(ctx context.Context, a *entity.Appointment, oldStart time.Time) ([]string, error) {
	s.reschedules++
	return s.warnings, s.err
}

func (s *stubNotifier) SendReminder(ctx context.Context, a *entity.Appointment, hoursBefore int) error {
	return s.err
}

func (s *stubNotifier) SendBatchReminders(ctx context.Context, appointments []entity.Appointment, hoursBefore int) *service.BatchReminderResult {
	result := &service.BatchReminderResult{}
	for i := range appointments {
		if s.err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", appointments[i].ID, s.err))
			continue
		}
		result.Successful++
	}
	return result
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&entity.Patient{}, &entity.Doctor{}, &entity.Appointment{}, &entity.NotificationLog{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

type usecaseFixture struct {
	db       *gorm.DB
	usecase  AppointmentUsecase
	notifier *stubNotifier
	doctor   *entity.Doctor
	patient  *entity.Patient
}

func newFixture(t *testing.T) *usecaseFixture {
	t.Helper()
	db := openTestDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	doctor := &entity.Doctor{
		ID:       uuid.NewString(),
		FullName: "Dr. Pérez",
		Email:    "perez@example.com",
		IsActive: true,
	}
	patient := &entity.Patient{
		ID:       uuid.NewString(),
		FullName: "Ana García",
		Email:    "ana@example.com",
	}
	if err := db.Create(doctor).Error; err != nil {
		t.Fatalf("failed to seed doctor: %v", err)
	}
	if err := db.Create(patient).Error; err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}

	notifier := &stubNotifier{}
	uc := NewAppointmentUsecase(
		db, log,
		repository.NewAppointmentRepository(),
		repository.NewDoctorRepository(),
		repository.NewPatientRepository(),
		notifier,
		service.NewDocumentService(log),
	)
	return &usecaseFixture{db: db, usecase: uc, notifier: notifier, doctor: doctor, patient: patient}
}

// nextBusinessSlot returns a future weekday slot inside opening hours,
// daysAhead business days from now, at the given local hour.
func nextBusinessSlot(daysAhead, hour int) (time.Time, time.Time) {
	loc := timepolicy.Location()
	day := time.Now().In(loc).AddDate(0, 0, daysAhead)
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc)
	return start, start.Add(30 * time.Minute)
}

func nextWeekendSlot() (time.Time, time.Time) {
	loc := timepolicy.Location()
	day := time.Now().In(loc).AddDate(0, 0, 1)
	for day.Weekday() != time.Saturday {
		day = day.AddDate(0, 0, 1)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, loc)
	return start, start.Add(30 * time.Minute)
}

func (f *usecaseFixture) create(t *testing.T, startsAt, endsAt time.Time) *dto.AppointmentResponse {
	t.Helper()
	resp, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	})
	if err != nil {
		t.Fatalf("failed to create appointment: %v", err)
	}
	return resp
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)

	resp := f.create(t, startsAt, endsAt)

	if resp.Status != string(entity.StatusScheduled) {
		t.Errorf("new appointment status = %q", resp.Status)
	}
	if resp.Notification == nil || !resp.Notification.Sent {
		t.Error("confirmation should be reported as sent")
	}
	if f.notifier.confirmations != 1 {
		t.Errorf("expected 1 confirmation dispatch, got %d", f.notifier.confirmations)
	}
	if resp.Patient == nil || resp.Doctor == nil {
		t.Error("response should embed patient and doctor")
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	f := newFixture(t)
	weekdayStart, weekdayEnd := nextBusinessSlot(2, 10)
	weekendStart, weekendEnd := nextWeekendSlot()
	loc := timepolicy.Location()
	past := time.Now().In(loc).AddDate(0, 0, -7)
	pastStart := time.Date(past.Year(), past.Month(), past.Day(), 10, 0, 0, 0, loc)
	earlyStart := time.Date(weekdayStart.Year(), weekdayStart.Month(), weekdayStart.Day(), 7, 0, 0, 0, loc)

	tests := []struct {
		name     string
		startsAt time.Time
		endsAt   time.Time
		wantErr  error
	}{
		{"inverted range", weekdayEnd, weekdayStart, ErrInvalidTimeRange},
		{"zero-length range", weekdayStart, weekdayStart, ErrInvalidTimeRange},
		{"past start", pastStart, pastStart.Add(30 * time.Minute), ErrPastDate},
		{"weekend", weekendStart, weekendEnd, ErrNotWeekday},
		{"before opening", earlyStart, earlyStart.Add(30 * time.Minute), ErrOutsideMedicalHours},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
				PatientID: f.patient.ID,
				DoctorID:  f.doctor.ID,
				StartsAt:  tt.startsAt,
				EndsAt:    tt.endsAt,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateAppointmentUnknownParticipants(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)

	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID: f.patient.ID,
		DoctorID:  uuid.NewString(),
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	})
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("got %v, want ErrDoctorNotFound", err)
	}

	_, err = f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID: uuid.NewString(),
		DoctorID:  f.doctor.ID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("got %v, want ErrPatientNotFound", err)
	}
}

func TestCreateAppointmentOverlap(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)
	f.create(t, startsAt, endsAt)

	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartsAt:  startsAt.Add(15 * time.Minute),
		EndsAt:    endsAt.Add(15 * time.Minute),
	})

	var overlapErr *OverlapError
	if !errors.As(err, &overlapErr) {
		t.Fatalf("got %v, want OverlapError", err)
	}
	if len(overlapErr.Conflicts) != 1 {
		t.Errorf("expected 1 conflict, got %d", len(overlapErr.Conflicts))
	}
	if overlapErr.Error() != "Conflicto detectado: 1 cita(s) en ese horario" {
		t.Errorf("unexpected conflict message %q", overlapErr.Error())
	}
}

func TestOverlapErrorMessage(t *testing.T) {
	tests := []struct {
		name      string
		conflicts []entity.Appointment
		want      string
	}{
		{"one conflict", make([]entity.Appointment, 1), "Conflicto detectado: 1 cita(s) en ese horario"},
		{"two conflicts", make([]entity.Appointment, 2), "Conflicto detectado: 2 cita(s) en ese horario"},
		// Conflicts can be empty when the storage constraint fired but the
		// follow-up conflict query failed.
		{"unknown conflicts", nil, "Conflicto detectado: ya existe una cita en ese horario"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &OverlapError{Conflicts: tt.conflicts}
			if got := err.Error(); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateAppointmentBoundaryTouchAllowed(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)
	f.create(t, startsAt, endsAt)

	// Back-to-back slot starting exactly at the previous end.
	resp := f.create(t, endsAt, endsAt.Add(30*time.Minute))
	if resp.ID == "" {
		t.Fatal("back-to-back appointment should be accepted")
	}
}

func TestCreateAppointmentCancelledSlotIsFree(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)
	first := f.create(t, startsAt, endsAt)

	if _, err := f.usecase.Cancel(context.Background(), first.ID, "libero el turno"); err != nil {
		t.Fatalf("failed to cancel: %v", err)
	}

	// The cancelled appointment no longer blocks the slot.
	f.create(t, startsAt, endsAt)
}

func TestCreateAppointmentStateSurvivesNotificationFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp unreachable")
	startsAt, endsAt := nextBusinessSlot(2, 10)

	resp, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	})
	if err != nil {
		t.Fatalf("creation must succeed despite dispatch failure: %v", err)
	}
	if resp.Notification == nil || resp.Notification.Sent || resp.Notification.Error == "" {
		t.Errorf("notification outcome should report the failure, got %+v", resp.Notification)
	}

	stored, err := f.usecase.Get(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("appointment should be persisted: %v", err)
	}
	if stored.Status != string(entity.StatusScheduled) {
		t.Errorf("persisted status = %q", stored.Status)
	}
}

func TestConfirmAppointment(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)
	created := f.create(t, startsAt, endsAt)
	f.notifier.confirmations = 0

	confirmed, err := f.usecase.Confirm(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("failed to confirm: %v", err)
	}
	if confirmed.Status != string(entity.StatusConfirmed) {
		t.Errorf("status = %q", confirmed.Status)
	}
	if f.notifier.confirmations != 1 {
		t.Errorf("confirm should dispatch once, got %d", f.notifier.confirmations)
	}

	// Second confirm is a no-op without another dispatch.
	again, err := f.usecase.Confirm(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("re-confirm should be idempotent: %v", err)
	}
	if again.Status != string(entity.StatusConfirmed) {
		t.Errorf("status after re-confirm = %q", again.Status)
	}
	if f.notifier.confirmations != 1 {
		t.Errorf("idempotent confirm must not redispatch, got %d", f.notifier.confirmations)
	}
}

func TestCancelAppointment(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)
	created := f.create(t, startsAt, endsAt)

	cancelled, err := f.usecase.Cancel(context.Background(), created.ID, "Paciente de viaje")
	if err != nil {
		t.Fatalf("failed to cancel: %v", err)
	}
	if cancelled.Status != string(entity.StatusCancelled) {
		t.Errorf("status = %q", cancelled.Status)
	}
	if cancelled.CancellationReason != "Paciente de viaje" {
		t.Errorf("reason = %q", cancelled.CancellationReason)
	}
	if f.notifier.cancellations != 1 {
		t.Errorf("cancel should dispatch once, got %d", f.notifier.cancellations)
	}

	if _, err := f.usecase.Cancel(context.Background(), created.ID, "otra vez"); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("second cancel: got %v, want ErrAlreadyCancelled", err)
	}
	if _, err := f.usecase.Confirm(context.Background(), created.ID); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("confirm after cancel: got %v, want ErrAlreadyCancelled", err)
	}
}

func TestRescheduleAppointment(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)
	created := f.create(t, startsAt, endsAt)
	if _, err := f.usecase.Confirm(context.Background(), created.ID); err != nil {
		t.Fatalf("failed to confirm: %v", err)
	}

	newStart, newEnd := nextBusinessSlot(3, 14)
	rescheduled, err := f.usecase.Reschedule(context.Background(), created.ID, &dto.RescheduleAppointmentRequest{
		StartsAt: newStart,
		EndsAt:   newEnd,
	})
	if err != nil {
		t.Fatalf("failed to reschedule: %v", err)
	}
	if rescheduled.Status != string(entity.StatusScheduled) {
		t.Errorf("rescheduled appointment should return to scheduled, got %q", rescheduled.Status)
	}
	if !rescheduled.StartsAt.Equal(newStart) {
		t.Errorf("starts_at = %v, want %v", rescheduled.StartsAt, newStart)
	}
	if f.notifier.reschedules != 1 {
		t.Errorf("reschedule should dispatch once, got %d", f.notifier.reschedules)
	}

	var stored entity.Appointment
	if err := f.db.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if stored.Sequence != 1 {
		t.Errorf("sequence after reschedule = %d, want 1", stored.Sequence)
	}
}

func TestRescheduleOntoOwnSlot(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)
	created := f.create(t, startsAt, endsAt)

	// Shifting inside its own current window must not self-conflict.
	if _, err := f.usecase.Reschedule(context.Background(), created.ID, &dto.RescheduleAppointmentRequest{
		StartsAt: startsAt.Add(10 * time.Minute),
		EndsAt:   endsAt.Add(10 * time.Minute),
	}); err != nil {
		t.Fatalf("self-overlapping reschedule should succeed: %v", err)
	}
}

func TestRescheduleIntoOccupiedSlot(t *testing.T) {
	f := newFixture(t)
	firstStart, firstEnd := nextBusinessSlot(2, 10)
	f.create(t, firstStart, firstEnd)

	otherStart, otherEnd := nextBusinessSlot(3, 14)
	second := f.create(t, otherStart, otherEnd)

	_, err := f.usecase.Reschedule(context.Background(), second.ID, &dto.RescheduleAppointmentRequest{
		StartsAt: firstStart,
		EndsAt:   firstEnd,
	})
	var overlapErr *OverlapError
	if !errors.As(err, &overlapErr) {
		t.Fatalf("got %v, want OverlapError", err)
	}
}

// seedPastAppointment inserts directly, bypassing the future-only policy.
func (f *usecaseFixture) seedPastAppointment(t *testing.T, status entity.AppointmentStatus, endedAgo time.Duration) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		ID:        uuid.NewString(),
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartsAt:  time.Now().Add(-endedAgo - 30*time.Minute),
		EndsAt:    time.Now().Add(-endedAgo),
		Status:    status,
	}
	if err := f.db.Create(appointment).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}
	return appointment
}

func TestCompleteAppointment(t *testing.T) {
	f := newFixture(t)
	past := f.seedPastAppointment(t, entity.StatusConfirmed, time.Hour)

	completed, err := f.usecase.Complete(context.Background(), past.ID)
	if err != nil {
		t.Fatalf("failed to complete: %v", err)
	}
	if completed.Status != string(entity.StatusCompleted) {
		t.Errorf("status = %q", completed.Status)
	}

	// Completed is terminal for further closing transitions.
	if _, err := f.usecase.MarkNoShow(context.Background(), past.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("no-show after complete: got %v, want ErrInvalidTransition", err)
	}
}

func TestCompleteBeforeEndRejected(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)
	created := f.create(t, startsAt, endsAt)
	if _, err := f.usecase.Confirm(context.Background(), created.ID); err != nil {
		t.Fatalf("failed to confirm: %v", err)
	}

	if _, err := f.usecase.Complete(context.Background(), created.ID); !errors.Is(err, ErrNotFinished) {
		t.Errorf("got %v, want ErrNotFinished", err)
	}
}

func TestMarkNoShow(t *testing.T) {
	f := newFixture(t)
	past := f.seedPastAppointment(t, entity.StatusConfirmed, time.Hour)

	marked, err := f.usecase.MarkNoShow(context.Background(), past.ID)
	if err != nil {
		t.Fatalf("failed to mark no-show: %v", err)
	}
	if marked.Status != string(entity.StatusNoShow) {
		t.Errorf("status = %q", marked.Status)
	}
}

func TestUpdateAppointment(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)
	created := f.create(t, startsAt, endsAt)

	notes := "Traer estudios previos"
	updated, err := f.usecase.Update(context.Background(), created.ID, &dto.UpdateAppointmentRequest{Notes: &notes})
	if err != nil {
		t.Fatalf("failed to update notes: %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("notes = %q", updated.Notes)
	}
	if f.notifier.reschedules != 0 {
		t.Error("notes-only edit must not dispatch a reschedule")
	}

	// A time change behaves like a reschedule.
	newStart, newEnd := nextBusinessSlot(3, 15)
	updated, err = f.usecase.Update(context.Background(), created.ID, &dto.UpdateAppointmentRequest{
		StartsAt: &newStart,
		EndsAt:   &newEnd,
	})
	if err != nil {
		t.Fatalf("failed to update time: %v", err)
	}
	if !updated.StartsAt.Equal(newStart) {
		t.Errorf("starts_at = %v, want %v", updated.StartsAt, newStart)
	}
	if f.notifier.reschedules != 1 {
		t.Errorf("time change should dispatch a reschedule, got %d", f.notifier.reschedules)
	}
}

func TestUpdateTerminalAppointment(t *testing.T) {
	f := newFixture(t)
	past := f.seedPastAppointment(t, entity.StatusCompleted, time.Hour)

	// Notes may still be edited on a completed consult.
	notes := "Se indicó control en 6 meses"
	if _, err := f.usecase.Update(context.Background(), past.ID, &dto.UpdateAppointmentRequest{Notes: &notes}); err != nil {
		t.Fatalf("notes edit on completed should succeed: %v", err)
	}

	// Its time may not.
	newStart, newEnd := nextBusinessSlot(2, 10)
	_, err := f.usecase.Update(context.Background(), past.ID, &dto.UpdateAppointmentRequest{
		StartsAt: &newStart,
		EndsAt:   &newEnd,
	})
	if !errors.Is(err, ErrTerminalState) {
		t.Errorf("got %v, want ErrTerminalState", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	startsAt, endsAt := nextBusinessSlot(2, 10)
	created := f.create(t, startsAt, endsAt)

	busy, err := f.usecase.CheckAvailability(context.Background(), &dto.AvailabilityRequest{
		DoctorID: f.doctor.ID,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	})
	if err != nil {
		t.Fatalf("failed to check availability: %v", err)
	}
	if !busy.HasOverlap || len(busy.ConflictingAppointments) != 1 {
		t.Fatalf("expected one conflict, got %+v", busy)
	}
	if busy.Message != "Conflicto detectado: 1 cita(s) en ese horario" {
		t.Errorf("message = %q", busy.Message)
	}

	// Excluding the appointment itself frees the slot.
	free, err := f.usecase.CheckAvailability(context.Background(), &dto.AvailabilityRequest{
		DoctorID:  f.doctor.ID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		ExcludeID: created.ID,
	})
	if err != nil {
		t.Fatalf("failed to check availability: %v", err)
	}
	if free.HasOverlap || free.Message != "" {
		t.Errorf("expected free slot, got %+v", free)
	}
}

func TestListAppointmentsFilter(t *testing.T) {
	f := newFixture(t)
	aStart, aEnd := nextBusinessSlot(2, 10)
	bStart, bEnd := nextBusinessSlot(3, 14)
	f.create(t, aStart, aEnd)
	created := f.create(t, bStart, bEnd)
	if _, err := f.usecase.Cancel(context.Background(), created.ID, ""); err != nil {
		t.Fatalf("failed to cancel: %v", err)
	}

	all, err := f.usecase.List(context.Background(), &entity.AppointmentFilter{DoctorID: f.doctor.ID})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if all.Total != 2 {
		t.Errorf("total = %d, want 2", all.Total)
	}

	cancelled, err := f.usecase.List(context.Background(), &entity.AppointmentFilter{Status: entity.StatusCancelled})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if cancelled.Total != 1 {
		t.Errorf("cancelled total = %d, want 1", cancelled.Total)
	}
}

func TestConsultSummaryFromUsecase(t *testing.T) {
	f := newFixture(t)
	past := f.seedPastAppointment(t, entity.StatusCompleted, time.Hour)

	artifact, err := f.usecase.ConsultSummary(context.Background(), past.ID)
	if err != nil {
		t.Fatalf("failed to render summary: %v", err)
	}
	if artifact.Filename != "consulta_"+past.ID+".pdf" {
		t.Errorf("filename = %q", artifact.Filename)
	}

	if _, err := f.usecase.ConsultSummary(context.Background(), uuid.NewString()); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("got %v, want ErrAppointmentNotFound", err)
	}
}
