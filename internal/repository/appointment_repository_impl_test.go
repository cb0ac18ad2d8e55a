package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
)

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

func seedAppointment(t *testing.T, db *gorm.DB, doctorID string, status entity.AppointmentStatus, startsAt, endsAt time.Time) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		ID:        uuid.NewString(),
		PatientID: uuid.NewString(),
		DoctorID:  doctorID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Status:    status,
	}
	if err := db.Create(appointment).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}
	return appointment
}

func TestFindOverlappingHalfOpen(t *testing.T) {
	db := openTestDB(t)
	repo := NewAppointmentRepository()
	doctorID := uuid.NewString()

	base := time.Date(2026, 9, 7, 13, 0, 0, 0, time.UTC)
	existing := seedAppointment(t, db, doctorID, entity.StatusScheduled, base, base.Add(30*time.Minute))

	tests := []struct {
		name      string
		startsAt  time.Time
		endsAt    time.Time
		wantCount int
	}{
		{"identical range", base, base.Add(30 * time.Minute), 1},
		{"contained", base.Add(10 * time.Minute), base.Add(20 * time.Minute), 1},
		{"straddles start", base.Add(-10 * time.Minute), base.Add(10 * time.Minute), 1},
		{"straddles end", base.Add(20 * time.Minute), base.Add(40 * time.Minute), 1},
		{"touches start", base.Add(-30 * time.Minute), base, 0},
		{"touches end", base.Add(30 * time.Minute), base.Add(60 * time.Minute), 0},
		{"disjoint", base.Add(2 * time.Hour), base.Add(3 * time.Hour), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts, err := repo.FindOverlapping(db, doctorID, tt.startsAt, tt.endsAt, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(conflicts) != tt.wantCount {
				t.Errorf("got %d conflicts, want %d", len(conflicts), tt.wantCount)
			}
		})
	}

	t.Run("other doctor is free", func(t *testing.T) {
		conflicts, err := repo.FindOverlapping(db, uuid.NewString(), base, base.Add(30*time.Minute), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(conflicts) != 0 {
			t.Errorf("got %d conflicts, want 0", len(conflicts))
		}
	})

	t.Run("exclude self", func(t *testing.T) {
		conflicts, err := repo.FindOverlapping(db, doctorID, base, base.Add(30*time.Minute), existing.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(conflicts) != 0 {
			t.Errorf("got %d conflicts, want 0", len(conflicts))
		}
	})
}

func TestFindOverlappingIgnoresCancelled(t *testing.T) {
	db := openTestDB(t)
	repo := NewAppointmentRepository()
	doctorID := uuid.NewString()

	base := time.Date(2026, 9, 7, 13, 0, 0, 0, time.UTC)
	seedAppointment(t, db, doctorID, entity.StatusCancelled, base, base.Add(30*time.Minute))
	seedAppointment(t, db, doctorID, entity.StatusConfirmed, base.Add(time.Hour), base.Add(90*time.Minute))

	conflicts, err := repo.FindOverlapping(db, doctorID, base, base.Add(30*time.Minute), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 0 {
		t.Error("cancelled appointments must not block the slot")
	}

	conflicts, err = repo.FindOverlapping(db, doctorID, base.Add(time.Hour), base.Add(2*time.Hour), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 1 {
		t.Errorf("confirmed appointment should conflict, got %d", len(conflicts))
	}
}

func TestFindStartingBetween(t *testing.T) {
	db := openTestDB(t)
	repo := NewAppointmentRepository()
	doctorID := uuid.NewString()

	base := time.Date(2026, 9, 7, 13, 0, 0, 0, time.UTC)
	inWindow := seedAppointment(t, db, doctorID, entity.StatusScheduled, base, base.Add(30*time.Minute))
	seedAppointment(t, db, doctorID, entity.StatusConfirmed, base.Add(5*time.Minute), base.Add(35*time.Minute))
	// Outside the window or in a non-reminder status.
	seedAppointment(t, db, doctorID, entity.StatusScheduled, base.Add(time.Hour), base.Add(90*time.Minute))
	seedAppointment(t, db, doctorID, entity.StatusCancelled, base.Add(10*time.Minute), base.Add(40*time.Minute))

	found, err := repo.FindStartingBetween(db, base, base.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("got %d appointments, want 2", len(found))
	}
	if found[0].ID != inWindow.ID {
		t.Errorf("results should be ordered by start, got %s first", found[0].ID)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewAppointmentRepository()

	appointment, err := repo.FindByID(db, uuid.NewString())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appointment != nil {
		t.Error("missing row should yield nil, nil")
	}
}
