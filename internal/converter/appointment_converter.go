package converter

import (
	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO.
// Party display fields are included when the associations are loaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:            appointment.ID,
		DateTime:      appointment.DateTime,
		Duration:      appointment.Duration,
		Price:         appointment.Price,
		Status:        string(appointment.Status),
		PaymentStatus: appointment.PaymentStatus,
		CreatedAt:     appointment.CreatedAt,
	}

	if appointment.Patient.Email != "" {
		response.Patient = UserToParty(&appointment.Patient)
	}
	if appointment.Therapist.Email != "" {
		response.Therapist = UserToParty(&appointment.Therapist)
	}

	return response
}

// AppointmentsToResponses converts a slice of appointments to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// UserToParty reduces a user to the display fields shown on an appointment.
func UserToParty(user *entity.User) *dto.PartyResponse {
	if user == nil {
		return nil
	}
	return &dto.PartyResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

// AppointmentsToPaymentRecords converts paid appointments to report rows.
func AppointmentsToPaymentRecords(appointments []entity.Appointment) []dto.PaymentRecordResponse {
	records := make([]dto.PaymentRecordResponse, len(appointments))
	for i := range appointments {
		a := &appointments[i]
		records[i] = dto.PaymentRecordResponse{
			ID:       a.ID,
			DateTime: a.DateTime,
			Price:    a.Price,
		}
		if a.Patient.Email != "" {
			records[i].Patient = UserToParty(&a.Patient)
		}
		if a.Therapist.Email != "" {
			records[i].Therapist = UserToParty(&a.Therapist)
		}
	}
	return records
}
