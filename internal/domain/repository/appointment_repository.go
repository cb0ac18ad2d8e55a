package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id string) (*entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	List(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)

	// FindOverlapping returns every non-cancelled appointment of the doctor
	// whose [starts_at, ends_at) range intersects the candidate half-open
	// range. excludeID, when non-empty, removes that appointment from the
	// result (used when validating an edit against its own slot).
	FindOverlapping(db *gorm.DB, doctorID string, startsAt, endsAt time.Time, excludeID string) ([]entity.Appointment, error)

	// FindStartingBetween returns scheduled or confirmed appointments whose
	// start time falls inside [from, to). Used by the reminder worker.
	FindStartingBetween(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error)
}
