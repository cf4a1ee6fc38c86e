package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ManageUserRequest struct {
	IsBlocked *bool `json:"is_blocked" validate:"required"`
}

type VerifyTherapistRequest struct {
	Status          string `json:"status" validate:"required,oneof=VERIFIED REJECTED"`
	RejectionReason string `json:"rejection_reason" validate:"omitempty,max=2000"`
}

// Response DTOs

type DashboardStatsResponse struct {
	TotalPatients     int64           `json:"total_patients"`
	TotalTherapists   int64           `json:"total_therapists"`
	TotalAppointments int64           `json:"total_appointments"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	PendingTherapists int64           `json:"pending_therapists"`
}

// PaymentRecordResponse is one row of the payments report.
type PaymentRecordResponse struct {
	ID        uuid.UUID       `json:"id"`
	DateTime  time.Time       `json:"date_time"`
	Price     decimal.Decimal `json:"price"`
	Patient   *PartyResponse  `json:"patient,omitempty"`
	Therapist *PartyResponse  `json:"therapist,omitempty"`
}

type ReportResponse struct {
	Type         string                  `json:"type"`
	Appointments []AppointmentResponse   `json:"appointments,omitempty"`
	Payments     []PaymentRecordResponse `json:"payments,omitempty"`
	Total        int                     `json:"total"`
}
