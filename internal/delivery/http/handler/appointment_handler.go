package handler

import (
	"encoding/json"
	"net/http"

	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/delivery/http/middleware"
	"therapy-booking/internal/usecase"
	"therapy-booking/pkg/response"
	"therapy-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// BookAppointment books a session with a verified therapist
// @Summary Book an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Book Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.BookAppointment(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateTime:
			response.Error(w, http.StatusBadRequest, "Invalid date time, use RFC 3339", nil)
		case usecase.ErrTherapistNotFound:
			response.NotFound(w, "Therapist not found")
		case usecase.ErrTimeSlotTaken:
			response.Conflict(w, "Time slot is already booked")
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// GetMyAppointments lists the caller's appointments
// @Summary List own appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Role information not found")
		return
	}

	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context(), userID, role)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetAppointmentDetails returns one appointment visible to its parties
// @Summary Get appointment details
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetAppointmentDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Role information not found")
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointmentDetails(r.Context(), userID, role, appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentParty:
			response.Forbidden(w, "You are not a party to this appointment")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// UpdateStatus moves an appointment through its lifecycle
// @Summary Update appointment status
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentStatusRequest true "Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id}/status [put]
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Role information not found")
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), callerID, role, appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAssignedTherapist:
			response.Forbidden(w, "Appointment is assigned to another therapist")
		case usecase.ErrIllegalTransition:
			response.Error(w, http.StatusBadRequest, "Illegal appointment status transition", nil)
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}
