package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// UpdateTherapistProfileRequest overwrites only the supplied professional
// fields; nil pointers and nil slices leave the stored value untouched.
type UpdateTherapistProfileRequest struct {
	Specialization []string         `json:"specialization" validate:"omitempty,dive,min=1"`
	Bio            *string          `json:"bio"`
	Experience     *int             `json:"experience" validate:"omitempty,gte=0,lte=80"`
	Education      []string         `json:"education" validate:"omitempty,dive,min=1"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate"`
}

type AvailabilitySlotRequest struct {
	DayOfWeek   int    `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	IsAvailable bool   `json:"is_available"`
}

type SetAvailabilityRequest struct {
	Slots []AvailabilitySlotRequest `json:"availability" validate:"required,min=1,dive"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// Response DTOs

type TherapistProfileResponse struct {
	UserID          uuid.UUID                  `json:"user_id"`
	FirstName       string                     `json:"first_name,omitempty"`
	LastName        string                     `json:"last_name,omitempty"`
	Specialization  []string                   `json:"specialization"`
	Bio             string                     `json:"bio,omitempty"`
	Experience      int                        `json:"experience"`
	Education       []string                   `json:"education"`
	HourlyRate      decimal.Decimal            `json:"hourly_rate"`
	Status          string                     `json:"status"`
	RejectionReason string                     `json:"rejection_reason,omitempty"`
	AverageRating   float64                    `json:"average_rating"`
	TotalReviews    int                        `json:"total_reviews"`
	Availability    []AvailabilitySlotResponse `json:"availability,omitempty"`
	Reviews         []ReviewResponse           `json:"reviews,omitempty"`
}

type AvailabilitySlotResponse struct {
	ID          int    `json:"id"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type AvailabilityListResponse struct {
	Slots []AvailabilitySlotResponse `json:"availability"`
	Total int                        `json:"total"`
}

type ReviewResponse struct {
	ID      int64  `json:"id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type TherapistListResponse struct {
	Therapists []TherapistProfileResponse `json:"therapists"`
	Total      int                        `json:"total"`
}
