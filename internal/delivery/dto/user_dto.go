package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateUserProfileRequest struct {
	FirstName   string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName    string `json:"last_name" validate:"omitempty,min=1,max=100"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=7,max=20"`
}

// Response DTOs

type UserResponse struct {
	ID               uuid.UUID                 `json:"id"`
	Email            string                    `json:"email"`
	FirstName        string                    `json:"first_name"`
	LastName         string                    `json:"last_name"`
	Role             string                    `json:"role"`
	PhoneNumber      string                    `json:"phone_number,omitempty"`
	IsBlocked        bool                      `json:"is_blocked"`
	IsVerified       bool                      `json:"is_verified"`
	TherapistProfile *TherapistProfileResponse `json:"therapist_profile,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
