package dto

import (
	"time"
)

type CreateDoctorRequest struct {
	FullName      string `json:"full_name" validate:"required,min=2,max=255"`
	Email         string `json:"email" validate:"required,email"`
	Specialty     string `json:"specialty" validate:"max=100"`
	LicenseNumber string `json:"license_number" validate:"max=50"`
}

type DoctorResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Specialty     string    `json:"specialty,omitempty"`
	LicenseNumber string    `json:"license_number,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
