package converter

import (
	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/domain/entity"
)

// TherapistProfileToResponse converts a TherapistProfile entity to its DTO.
// Average rating and review count are computed from the loaded reviews;
// user display fields are included when the User association is loaded.
func TherapistProfileToResponse(profile *entity.TherapistProfile) *dto.TherapistProfileResponse {
	if profile == nil {
		return nil
	}

	avg, total := profile.AverageRating()

	response := &dto.TherapistProfileResponse{
		UserID:          profile.UserID,
		Specialization:  profile.Specialization,
		Bio:             profile.Bio,
		Experience:      profile.Experience,
		Education:       profile.Education,
		HourlyRate:      profile.HourlyRate,
		Status:          string(profile.Status),
		RejectionReason: profile.RejectionReason,
		AverageRating:   avg,
		TotalReviews:    total,
	}

	if profile.User.Email != "" {
		response.FirstName = profile.User.FirstName
		response.LastName = profile.User.LastName
	}

	if len(profile.Availability) > 0 {
		response.Availability = AvailabilityToResponses(profile.Availability)
	}

	if len(profile.Reviews) > 0 {
		response.Reviews = ReviewsToResponses(profile.Reviews)
	}

	return response
}

// TherapistProfilesToResponses converts a slice of profiles to DTOs
func TherapistProfilesToResponses(profiles []entity.TherapistProfile) []dto.TherapistProfileResponse {
	responses := make([]dto.TherapistProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = *TherapistProfileToResponse(&profiles[i])
	}
	return responses
}

// AvailabilityToResponses converts availability slots to DTOs
func AvailabilityToResponses(slots []entity.Availability) []dto.AvailabilitySlotResponse {
	responses := make([]dto.AvailabilitySlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.AvailabilitySlotResponse{
			ID:          slot.ID,
			DayOfWeek:   slot.DayOfWeek,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			IsAvailable: slot.IsAvailable,
		}
	}
	return responses
}

// ReviewsToResponses converts reviews to DTOs
func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = dto.ReviewResponse{
			ID:      review.ID,
			Rating:  review.Rating,
			Comment: review.Comment,
		}
	}
	return responses
}
