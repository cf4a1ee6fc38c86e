package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/delivery/http/middleware"
	"therapy-booking/internal/domain/entity"
	"therapy-booking/internal/domain/repository"
	"therapy-booking/internal/usecase"
	"therapy-booking/pkg/response"
	"therapy-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

// GetDashboardStats returns platform-wide counters
// @Summary Get dashboard statistics
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/dashboard [get]
func (h *AdminHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminUsecase.GetDashboardStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard stats")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// ListUsers lists users, optionally filtered by role and blocked state
// @Summary List users
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param role query string false "Filter by role"
// @Param is_blocked query bool false "Filter by blocked state"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := &repository.UserFilter{}

	if raw := r.URL.Query().Get("role"); raw != "" {
		role := entity.Role(raw)
		if !role.Valid() {
			response.Error(w, http.StatusBadRequest, "Invalid role filter", nil)
			return
		}
		filter.Role = role
	}

	if raw := r.URL.Query().Get("is_blocked"); raw != "" {
		isBlocked, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid is_blocked filter", nil)
			return
		}
		filter.IsBlocked = &isBlocked
	}

	users, err := h.adminUsecase.ListUsers(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

// ManageUser blocks or unblocks a user account
// @Summary Block or unblock a user
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.ManageUserRequest true "Manage User Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [put]
func (h *AdminHandler) ManageUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req dto.ManageUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.adminUsecase.ManageUser(r.Context(), adminID, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to manage user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

// VerifyTherapist approves or rejects a pending therapist profile
// @Summary Verify or reject a therapist
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Therapist ID"
// @Param request body dto.VerifyTherapistRequest true "Verify Therapist Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/therapists/{id}/verify [put]
func (h *AdminHandler) VerifyTherapist(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	therapistID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid therapist ID", nil)
		return
	}

	var req dto.VerifyTherapistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.adminUsecase.VerifyTherapist(r.Context(), adminID, therapistID, &req)
	if err != nil {
		switch err {
		case usecase.ErrTherapistNotFound:
			response.NotFound(w, "Therapist not found")
		default:
			response.InternalServerError(w, "Failed to verify therapist")
		}
		return
	}

	response.Success(w, http.StatusOK, "Therapist verification updated successfully", profile)
}

// GenerateReport builds an appointments or payments report for a date range
// @Summary Generate a report
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param type query string true "Report type (appointments or payments)"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/reports [get]
func (h *AdminHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	reportType := r.URL.Query().Get("type")
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	if reportType == "" || startDate == "" || endDate == "" {
		response.Error(w, http.StatusBadRequest, "type, start_date and end_date are required", nil)
		return
	}

	report, err := h.adminUsecase.GenerateReport(r.Context(), reportType, startDate, endDate)
	if err != nil {
		switch err {
		case usecase.ErrInvalidReportType:
			response.Error(w, http.StatusBadRequest, "Invalid report type, use appointments or payments", nil)
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to generate report")
		}
		return
	}

	response.Success(w, http.StatusOK, "Report generated successfully", report)
}
