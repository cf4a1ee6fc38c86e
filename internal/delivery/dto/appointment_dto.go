package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type BookAppointmentRequest struct {
	TherapistID uuid.UUID `json:"therapist_id" validate:"required"`
	DateTime    string    `json:"date_time" validate:"required"` // RFC 3339
	Duration    int       `json:"duration" validate:"required,gte=15,lte=480"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED REJECTED"`
}

// Response DTOs

// PartyResponse carries the display fields of one side of an appointment.
type PartyResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

type AppointmentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Patient       *PartyResponse  `json:"patient,omitempty"`
	Therapist     *PartyResponse  `json:"therapist,omitempty"`
	DateTime      time.Time       `json:"date_time"`
	Duration      int             `json:"duration"`
	Price         decimal.Decimal `json:"price"`
	Status        string          `json:"status"`
	PaymentStatus bool            `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
