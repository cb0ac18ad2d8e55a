package repository

import (
	"gorm.io/gorm"

	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id string) (*entity.Patient, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Patient, error)
	FindAll(db *gorm.DB) ([]entity.Patient, error)
}
