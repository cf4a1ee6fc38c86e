package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"therapy-booking/internal/converter"
	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/domain/entity"
	"therapy-booking/internal/domain/repository"
	"therapy-booking/internal/service"
	"therapy-booking/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("account has been blocked")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessTokenID, refreshTokenID string) error
}

type authUsecase struct {
	db                   *gorm.DB
	log                  *logrus.Logger
	userRepo             repository.UserRepository
	therapistProfileRepo repository.TherapistProfileRepository
	jwtService           *jwt.JWTService
	redisClient          *redis.Client
	auditService         service.AuditService
	notifier             service.Notifier
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	therapistProfileRepo repository.TherapistProfileRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	auditService service.AuditService,
	notifier service.Notifier,
) AuthUsecase {
	return &authUsecase{
		db:                   db,
		log:                  log,
		userRepo:             userRepo,
		therapistProfileRepo: therapistProfileRepo,
		jwtService:           jwtService,
		redisClient:          redisClient,
		auditService:         auditService,
		notifier:             notifier,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Unvalidated roles are rejected by the DTO validator; an empty role
	// defaults to patient.
	role := entity.Role(req.Role)
	if role == "" {
		role = entity.RolePatient
	}

	existing, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to check existing email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Email:       email,
		Password:    string(hashedPassword),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        role,
		PhoneNumber: req.PhoneNumber,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		// Backstop for the race between the pre-check and the insert.
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	// Therapists start with an empty PENDING profile and stay out of the
	// public directory until an admin verifies them.
	if role == entity.RoleTherapist {
		profile := &entity.TherapistProfile{
			UserID:         user.ID,
			Specialization: entity.StringList{},
			Education:      entity.StringList{},
			HourlyRate:     decimal.Zero,
			Status:         entity.VerificationPending,
		}
		if err := u.therapistProfileRepo.Create(tx, profile); err != nil {
			u.log.Warnf("Failed to create therapist profile: %+v", err)
			return nil, err
		}
		user.TherapistProfile = profile
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), entity.JSON{
		"email": user.Email,
		"role":  string(user.Role),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if role == entity.RolePatient {
		u.sendVerificationEmail(user)
	}

	return &dto.AuthResponse{
		User:         converter.UserToResponse(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	// An unknown email and a wrong password must be indistinguishable
	// to the caller.
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"email": user.Email,
	}); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:         converter.UserToResponse(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

func (u *authUsecase) VerifyEmail(ctx context.Context, token string) error {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return ErrInvalidToken
	}
	if claims.TokenType != jwt.VerifyToken {
		return ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsVerified {
		return nil
	}

	user.IsVerified = true
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to mark user verified: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Blocked accounts must not outlive their refresh tokens.
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}

	// Rotate: old refresh token is single-use.
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshTokenID string) error {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:*:%s", accessTokenID),
		fmt.Sprintf("refresh_token:*:%s", refreshTokenID),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to list token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}

	return nil
}

// issueTokens generates an access and refresh token pair and registers both
// in Redis so they can be revoked before expiry.
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", user.ID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", user.ID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// sendVerificationEmail publishes the registration event carrying the
// verify-email token. Failures are logged and swallowed: registration has
// already committed and must not be rolled back by a broker outage.
func (u *authUsecase) sendVerificationEmail(user *entity.User) {
	if u.notifier == nil {
		return
	}

	token, err := u.jwtService.GenerateVerificationToken(user.ID, user.Email)
	if err != nil {
		u.log.Warnf("Failed to generate verification token: %+v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := &service.UserRegisteredEvent{
		UserID:            user.ID.String(),
		Email:             user.Email,
		FirstName:         user.FirstName,
		Role:              string(user.Role),
		VerificationToken: token,
		RegisteredAt:      time.Now().UTC(),
	}
	if err := u.notifier.PublishUserRegistered(ctx, event); err != nil {
		u.log.Warnf("Failed to publish user registered event: %+v", err)
	}
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
