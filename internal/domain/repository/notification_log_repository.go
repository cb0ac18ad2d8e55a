package repository

import (
	"gorm.io/gorm"

	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
)

type NotificationLogRepository interface {
	Create(db *gorm.DB, log *entity.NotificationLog) error
	FindByAppointmentID(db *gorm.DB, appointmentID string) ([]entity.NotificationLog, error)
}
