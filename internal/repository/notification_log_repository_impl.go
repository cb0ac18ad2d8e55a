package repository

import (
	"gorm.io/gorm"

	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
	domainRepo "github.com/REINA-08/autamedica-reboot-deploy/internal/domain/repository"
)

type notificationLogRepository struct{}

func NewNotificationLogRepository() domainRepo.NotificationLogRepository {
	return &notificationLogRepository{}
}

func (r *notificationLogRepository) Create(db *gorm.DB, log *entity.NotificationLog) error {
	return db.Create(log).Error
}

func (r *notificationLogRepository) FindByAppointmentID(db *gorm.DB, appointmentID string) ([]entity.NotificationLog, error) {
	var logs []entity.NotificationLog
	err := db.Where("appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
