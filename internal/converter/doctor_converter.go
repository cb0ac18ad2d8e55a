package converter

import (
	"github.com/REINA-08/autamedica-reboot-deploy/internal/delivery/dto"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to its response DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:            doctor.ID,
		FullName:      doctor.FullName,
		Email:         doctor.Email,
		Specialty:     doctor.Specialty,
		LicenseNumber: doctor.LicenseNumber,
		IsActive:      doctor.IsActive,
		CreatedAt:     doctor.CreatedAt,
		UpdatedAt:     doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to response DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		resp := DoctorToResponse(&doctor)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
