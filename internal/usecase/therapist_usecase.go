package usecase

import (
	"context"
	"errors"

	"therapy-booking/internal/converter"
	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/domain/entity"
	"therapy-booking/internal/domain/repository"
	"therapy-booking/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTherapistNotFound = errors.New("therapist not found")
	ErrNegativeRate      = errors.New("hourly rate must not be negative")
)

type TherapistUsecase interface {
	ListTherapists(ctx context.Context, filter *entity.TherapistFilter) (*dto.TherapistListResponse, error)
	GetTherapist(ctx context.Context, therapistID uuid.UUID) (*dto.TherapistProfileResponse, error)
	UpdateProfile(ctx context.Context, therapistID uuid.UUID, req *dto.UpdateTherapistProfileRequest) (*dto.TherapistProfileResponse, error)
	SetAvailability(ctx context.Context, therapistID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.AvailabilityListResponse, error)
	CreateReview(ctx context.Context, patientID, therapistID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
}

type therapistUsecase struct {
	db                   *gorm.DB
	log                  *logrus.Logger
	therapistProfileRepo repository.TherapistProfileRepository
	availabilityRepo     repository.AvailabilityRepository
	reviewRepo           repository.ReviewRepository
	auditService         service.AuditService
}

func NewTherapistUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	therapistProfileRepo repository.TherapistProfileRepository,
	availabilityRepo repository.AvailabilityRepository,
	reviewRepo repository.ReviewRepository,
	auditService service.AuditService,
) TherapistUsecase {
	return &therapistUsecase{
		db:                   db,
		log:                  log,
		therapistProfileRepo: therapistProfileRepo,
		availabilityRepo:     availabilityRepo,
		reviewRepo:           reviewRepo,
		auditService:         auditService,
	}
}

func (u *therapistUsecase) ListTherapists(ctx context.Context, filter *entity.TherapistFilter) (*dto.TherapistListResponse, error) {
	var maxPrice *decimal.Decimal
	if filter != nil {
		maxPrice = filter.MaxPrice
	}

	profiles, err := u.therapistProfileRepo.FindVerified(u.db.WithContext(ctx), maxPrice)
	if err != nil {
		u.log.Warnf("Failed to list verified therapists: %+v", err)
		return nil, err
	}

	// Specialization membership lives in a jsonb column and the rating is
	// an aggregate over reviews, so both filters are applied here rather
	// than in SQL.
	matched := make([]entity.TherapistProfile, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if filter != nil && filter.Specialization != "" && !p.Specialization.Contains(filter.Specialization) {
			continue
		}
		if filter != nil && filter.MinRating != nil {
			avg, total := p.AverageRating()
			// Unreviewed therapists have no rating to compare, so a
			// minimum rating filter excludes them.
			if total == 0 || avg < *filter.MinRating {
				continue
			}
		}
		matched = append(matched, *p)
	}

	therapists := converter.TherapistProfilesToResponses(matched)
	return &dto.TherapistListResponse{
		Therapists: therapists,
		Total:      len(therapists),
	}, nil
}

func (u *therapistUsecase) GetTherapist(ctx context.Context, therapistID uuid.UUID) (*dto.TherapistProfileResponse, error) {
	profile, err := u.therapistProfileRepo.FindDetailed(u.db.WithContext(ctx), therapistID)
	if err != nil {
		u.log.Warnf("Failed to find therapist profile: %+v", err)
		return nil, err
	}
	if profile == nil || !profile.IsVerified() || profile.User.IsBlocked {
		// Unverified and blocked therapists are invisible to the public
		// directory, indistinguishable from missing ones.
		return nil, ErrTherapistNotFound
	}

	return converter.TherapistProfileToResponse(profile), nil
}

func (u *therapistUsecase) UpdateProfile(ctx context.Context, therapistID uuid.UUID, req *dto.UpdateTherapistProfileRequest) (*dto.TherapistProfileResponse, error) {
	if req.HourlyRate != nil && req.HourlyRate.IsNegative() {
		return nil, ErrNegativeRate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.therapistProfileRepo.FindByUserID(tx, therapistID)
	if err != nil {
		u.log.Warnf("Failed to find therapist profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrTherapistNotFound
	}

	oldValue := entity.JSON{
		"specialization": profile.Specialization,
		"bio":            profile.Bio,
		"experience":     profile.Experience,
		"education":      profile.Education,
		"hourly_rate":    profile.HourlyRate.String(),
	}

	if req.Specialization != nil {
		profile.Specialization = entity.StringList(req.Specialization)
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Experience != nil {
		profile.Experience = *req.Experience
	}
	if req.Education != nil {
		profile.Education = entity.StringList(req.Education)
	}
	if req.HourlyRate != nil {
		profile.HourlyRate = *req.HourlyRate
	}

	if err := u.therapistProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update therapist profile: %+v", err)
		return nil, err
	}

	newValue := entity.JSON{
		"specialization": profile.Specialization,
		"bio":            profile.Bio,
		"experience":     profile.Experience,
		"education":      profile.Education,
		"hourly_rate":    profile.HourlyRate.String(),
	}
	if err := u.auditService.LogUpdate(ctx, tx, &therapistID, entity.AuditActionProfileUpdate, "therapist_profile", therapistID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TherapistProfileToResponse(profile), nil
}

func (u *therapistUsecase) SetAvailability(ctx context.Context, therapistID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.AvailabilityListResponse, error) {
	profile, err := u.therapistProfileRepo.FindByUserID(u.db.WithContext(ctx), therapistID)
	if err != nil {
		u.log.Warnf("Failed to find therapist profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrTherapistNotFound
	}

	slots := make([]entity.Availability, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, entity.Availability{
			TherapistID: therapistID,
			DayOfWeek:   s.DayOfWeek,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			IsAvailable: s.IsAvailable,
		})
	}

	// Replace-on-write: the incoming set is the whole schedule. Delete and
	// insert share one transaction so a failed insert never leaves the
	// therapist with an empty calendar.
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.availabilityRepo.DeleteByTherapistID(tx, therapistID); err != nil {
		u.log.Warnf("Failed to clear availability: %+v", err)
		return nil, err
	}
	if err := u.availabilityRepo.CreateBatch(tx, slots); err != nil {
		u.log.Warnf("Failed to create availability slots: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, &therapistID, entity.AuditActionAvailabilityUpdate, entity.JSON{
		"slot_count": len(slots),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	responses := converter.AvailabilityToResponses(slots)
	return &dto.AvailabilityListResponse{
		Slots: responses,
		Total: len(responses),
	}, nil
}

func (u *therapistUsecase) CreateReview(ctx context.Context, patientID, therapistID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	profile, err := u.therapistProfileRepo.FindByUserID(u.db.WithContext(ctx), therapistID)
	if err != nil {
		u.log.Warnf("Failed to find therapist profile: %+v", err)
		return nil, err
	}
	// Only listable therapists can collect reviews; a rating written against
	// a pending profile would surface the moment an admin verifies it.
	if profile == nil || !profile.IsVerified() || profile.User.IsBlocked {
		return nil, ErrTherapistNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	review := &entity.Review{
		TherapistID: therapistID,
		PatientID:   patientID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}
	if err := u.reviewRepo.Create(tx, review); err != nil {
		if isForeignKeyError(err, "therapist") {
			return nil, ErrTherapistNotFound
		}
		u.log.Warnf("Failed to create review: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionReviewCreate, "review", therapistID.String(), entity.JSON{
		"rating": req.Rating,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.ReviewResponse{
		ID:      review.ID,
		Rating:  review.Rating,
		Comment: review.Comment,
	}, nil
}
