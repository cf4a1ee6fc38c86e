package usecase

import (
	"context"
	"errors"
	"time"

	"therapy-booking/internal/converter"
	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/domain/entity"
	"therapy-booking/internal/domain/repository"
	"therapy-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidReportType = errors.New("invalid report type, use appointments or payments")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

const (
	ReportTypeAppointments = "appointments"
	ReportTypePayments     = "payments"
)

type AdminUsecase interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	ListUsers(ctx context.Context, filter *repository.UserFilter) (*dto.UserListResponse, error)
	ManageUser(ctx context.Context, adminID, userID uuid.UUID, req *dto.ManageUserRequest) (*dto.UserResponse, error)
	VerifyTherapist(ctx context.Context, adminID, therapistID uuid.UUID, req *dto.VerifyTherapistRequest) (*dto.TherapistProfileResponse, error)
	GenerateReport(ctx context.Context, reportType, startDate, endDate string) (*dto.ReportResponse, error)
}

type adminUsecase struct {
	db                   *gorm.DB
	log                  *logrus.Logger
	userRepo             repository.UserRepository
	therapistProfileRepo repository.TherapistProfileRepository
	appointmentRepo      repository.AppointmentRepository
	auditService         service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	therapistProfileRepo repository.TherapistProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:                   db,
		log:                  log,
		userRepo:             userRepo,
		therapistProfileRepo: therapistProfileRepo,
		appointmentRepo:      appointmentRepo,
		auditService:         auditService,
	}
}

func (u *adminUsecase) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	db := u.db.WithContext(ctx)

	totalPatients, err := u.userRepo.CountByRole(db, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	totalTherapists, err := u.userRepo.CountByRole(db, entity.RoleTherapist)
	if err != nil {
		u.log.Warnf("Failed to count therapists: %+v", err)
		return nil, err
	}

	totalAppointments, err := u.appointmentRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	totalRevenue, err := u.appointmentRepo.SumPaidPrice(db)
	if err != nil {
		u.log.Warnf("Failed to sum paid appointments: %+v", err)
		return nil, err
	}

	pendingTherapists, err := u.therapistProfileRepo.CountByStatus(db, entity.VerificationPending)
	if err != nil {
		u.log.Warnf("Failed to count pending therapists: %+v", err)
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		TotalPatients:     totalPatients,
		TotalTherapists:   totalTherapists,
		TotalAppointments: totalAppointments,
		TotalRevenue:      totalRevenue,
		PendingTherapists: pendingTherapists,
	}, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context, filter *repository.UserFilter) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	responses := converter.UsersToResponses(users)
	return &dto.UserListResponse{
		Users: responses,
		Total: len(responses),
	}, nil
}

func (u *adminUsecase) ManageUser(ctx context.Context, adminID, userID uuid.UUID, req *dto.ManageUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	wasBlocked := user.IsBlocked
	user.IsBlocked = *req.IsBlocked

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionUserBlock, "user", userID.String(),
		entity.JSON{"is_blocked": wasBlocked},
		entity.JSON{"is_blocked": user.IsBlocked},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *adminUsecase) VerifyTherapist(ctx context.Context, adminID, therapistID uuid.UUID, req *dto.VerifyTherapistRequest) (*dto.TherapistProfileResponse, error) {
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

	oldStatus := profile.Status
	profile.Status = entity.VerificationStatus(req.Status)
	if profile.Status == entity.VerificationRejected {
		profile.RejectionReason = req.RejectionReason
	} else {
		profile.RejectionReason = ""
	}

	if err := u.therapistProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update therapist profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionTherapistVerify, "therapist_profile", therapistID.String(),
		entity.JSON{"status": string(oldStatus)},
		entity.JSON{"status": string(profile.Status), "rejection_reason": profile.RejectionReason},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TherapistProfileToResponse(profile), nil
}

func (u *adminUsecase) GenerateReport(ctx context.Context, reportType, startDate, endDate string) (*dto.ReportResponse, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	// The end date is inclusive.
	end = end.Add(24*time.Hour - time.Nanosecond)

	switch reportType {
	case ReportTypeAppointments:
		appointments, err := u.appointmentRepo.FindByDateRange(u.db.WithContext(ctx), start, end, false)
		if err != nil {
			u.log.Warnf("Failed to load appointments report: %+v", err)
			return nil, err
		}
		rows := converter.AppointmentsToResponses(appointments)
		return &dto.ReportResponse{
			Type:         ReportTypeAppointments,
			Appointments: rows,
			Total:        len(rows),
		}, nil

	case ReportTypePayments:
		appointments, err := u.appointmentRepo.FindByDateRange(u.db.WithContext(ctx), start, end, true)
		if err != nil {
			u.log.Warnf("Failed to load payments report: %+v", err)
			return nil, err
		}
		rows := converter.AppointmentsToPaymentRecords(appointments)
		return &dto.ReportResponse{
			Type:     ReportTypePayments,
			Payments: rows,
			Total:    len(rows),
		}, nil

	default:
		return nil, ErrInvalidReportType
	}
}
