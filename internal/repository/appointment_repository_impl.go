package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
	domainRepo "github.com/REINA-08/autamedica-reboot-deploy/internal/domain/repository"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) List(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Preload("Patient").Preload("Doctor")

	if filter != nil {
		if filter.DoctorID != "" {
			query = query.Where("doctor_id = ?", filter.DoctorID)
		}
		if filter.PatientID != "" {
			query = query.Where("patient_id = ?", filter.PatientID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if !filter.From.IsZero() {
			query = query.Where("starts_at >= ?", filter.From)
		}
		if !filter.To.IsZero() {
			query = query.Where("starts_at < ?", filter.To)
		}
	}

	var appointments []entity.Appointment
	err := query.Order("starts_at ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindOverlapping applies the half-open intersection predicate:
// a.starts_at < endsAt AND a.ends_at > startsAt. Appointments touching at
// the boundary are not returned. Cancelled rows never conflict.
func (r *appointmentRepository) FindOverlapping(db *gorm.DB, doctorID string, startsAt, endsAt time.Time, excludeID string) ([]entity.Appointment, error) {
	query := db.
		Where("doctor_id = ?", doctorID).
		Where("status != ?", entity.StatusCancelled).
		Where("starts_at < ? AND ends_at > ?", endsAt, startsAt)

	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}

	var conflicts []entity.Appointment
	err := query.Order("starts_at ASC").Find(&conflicts).Error
	if err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *appointmentRepository) FindStartingBetween(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Where("status IN ?", []entity.AppointmentStatus{entity.StatusScheduled, entity.StatusConfirmed}).
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Order("starts_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
