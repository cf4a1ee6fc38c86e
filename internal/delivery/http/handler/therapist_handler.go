package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/delivery/http/middleware"
	"therapy-booking/internal/domain/entity"
	"therapy-booking/internal/usecase"
	"therapy-booking/pkg/response"
	"therapy-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type TherapistHandler struct {
	therapistUsecase usecase.TherapistUsecase
	validator        *validator.CustomValidator
}

func NewTherapistHandler(therapistUsecase usecase.TherapistUsecase, validator *validator.CustomValidator) *TherapistHandler {
	return &TherapistHandler{
		therapistUsecase: therapistUsecase,
		validator:        validator,
	}
}

// ListTherapists returns the public directory of verified therapists
// @Summary List verified therapists
// @Tags Therapists
// @Produce json
// @Param specialization query string false "Filter by specialization"
// @Param min_rating query number false "Minimum average rating"
// @Param max_price query number false "Maximum hourly rate"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /therapists [get]
func (h *TherapistHandler) ListTherapists(w http.ResponseWriter, r *http.Request) {
	filter := &entity.TherapistFilter{
		Specialization: r.URL.Query().Get("specialization"),
	}

	if raw := r.URL.Query().Get("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil || minRating < 0 || minRating > 5 {
			response.Error(w, http.StatusBadRequest, "Invalid min_rating, expected a number between 0 and 5", nil)
			return
		}
		filter.MinRating = &minRating
	}

	if raw := r.URL.Query().Get("max_price"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil || maxPrice.IsNegative() {
			response.Error(w, http.StatusBadRequest, "Invalid max_price, expected a non-negative number", nil)
			return
		}
		filter.MaxPrice = &maxPrice
	}

	therapists, err := h.therapistUsecase.ListTherapists(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list therapists")
		return
	}

	response.Success(w, http.StatusOK, "Therapists retrieved successfully", therapists)
}

// GetTherapist returns one verified therapist with availability and reviews
// @Summary Get therapist details
// @Tags Therapists
// @Produce json
// @Param id path string true "Therapist ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /therapists/{id} [get]
func (h *TherapistHandler) GetTherapist(w http.ResponseWriter, r *http.Request) {
	therapistID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid therapist ID", nil)
		return
	}

	therapist, err := h.therapistUsecase.GetTherapist(r.Context(), therapistID)
	if err != nil {
		switch err {
		case usecase.ErrTherapistNotFound:
			response.NotFound(w, "Therapist not found")
		default:
			response.InternalServerError(w, "Failed to get therapist")
		}
		return
	}

	response.Success(w, http.StatusOK, "Therapist retrieved successfully", therapist)
}

// UpdateProfile updates the authenticated therapist's professional profile
// @Summary Update therapist profile
// @Tags Therapists
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateTherapistProfileRequest true "Update Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /therapists/profile [put]
func (h *TherapistHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	therapistID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	var req dto.UpdateTherapistProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.therapistUsecase.UpdateProfile(r.Context(), therapistID, &req)
	if err != nil {
		switch err {
		case usecase.ErrNegativeRate:
			response.Error(w, http.StatusBadRequest, "Hourly rate must not be negative", nil)
		case usecase.ErrTherapistNotFound:
			response.NotFound(w, "Therapist profile not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

// SetAvailability replaces the authenticated therapist's weekly schedule
// @Summary Set weekly availability
// @Tags Therapists
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SetAvailabilityRequest true "Availability Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /therapists/availability [put]
func (h *TherapistHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	therapistID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	var req dto.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.therapistUsecase.SetAvailability(r.Context(), therapistID, &req)
	if err != nil {
		switch err {
		case usecase.ErrTherapistNotFound:
			response.NotFound(w, "Therapist profile not found")
		default:
			response.InternalServerError(w, "Failed to set availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", availability)
}

// CreateReview records a patient review for a therapist
// @Summary Review a therapist
// @Tags Therapists
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Therapist ID"
// @Param request body dto.CreateReviewRequest true "Review Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /therapists/{id}/reviews [post]
func (h *TherapistHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	therapistID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid therapist ID", nil)
		return
	}

	var req dto.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	review, err := h.therapistUsecase.CreateReview(r.Context(), patientID, therapistID, &req)
	if err != nil {
		switch err {
		case usecase.ErrTherapistNotFound:
			response.NotFound(w, "Therapist not found")
		default:
			response.InternalServerError(w, "Failed to create review")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Review created successfully", review)
}
