package converter

import (
	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Includes the TherapistProfile if it is loaded. The password hash is
// never copied anywhere a serializer can reach.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        string(user.Role),
		PhoneNumber: user.PhoneNumber,
		IsBlocked:   user.IsBlocked,
		IsVerified:  user.IsVerified,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	if user.TherapistProfile != nil {
		response.TherapistProfile = TherapistProfileToResponse(user.TherapistProfile)
	}

	return response
}

// UsersToResponses converts a slice of User entities to response DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
