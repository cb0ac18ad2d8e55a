package converter

import (
	"github.com/REINA-08/autamedica-reboot-deploy/internal/delivery/dto"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		StartsAt:           appointment.StartsAt,
		EndsAt:             appointment.EndsAt,
		Status:             string(appointment.Status),
		Notes:              appointment.Notes,
		CancellationReason: appointment.CancellationReason,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	if appointment.Patient.ID != "" {
		response.Patient = PatientToResponse(&appointment.Patient)
	}
	if appointment.Doctor.ID != "" {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}

	return response
}

// AppointmentsToResponses converts a slice of entities to response DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// ConflictsToResponses converts conflicting appointments into the compact
// overlap-result shape.
func ConflictsToResponses(conflicts []entity.Appointment) []dto.ConflictingAppointment {
	out := make([]dto.ConflictingAppointment, len(conflicts))
	for i, c := range conflicts {
		out[i] = dto.ConflictingAppointment{
			ID:       c.ID,
			DoctorID: c.DoctorID,
			StartsAt: c.StartsAt,
			EndsAt:   c.EndsAt,
		}
	}
	return out
}
