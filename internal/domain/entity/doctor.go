package entity

import (
	"time"
)

// Doctor represents a practicing clinician able to receive appointments
type Doctor struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	FullName      string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Specialty     string    `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	LicenseNumber string    `gorm:"type:varchar(50)" json:"license_number,omitempty"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}
