package usecase

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"therapy-booking/config"
	"therapy-booking/internal/domain/entity"
	"therapy-booking/internal/repository"
	"therapy-booking/internal/service"
	"therapy-booking/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "password123"

// newTestDB opens a uniquely named in-memory database so parallel tests in
// the same process never share state.
func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.TherapistProfile{},
		&entity.Availability{},
		&entity.Appointment{},
		&entity.Review{},
		&entity.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func newTestJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		VerifyExpiry:  24 * time.Hour,
	})
}

func newTestAuditService(db *gorm.DB) service.AuditService {
	return service.NewAuditService(db, newTestLogger(), repository.NewAuditLogRepository())
}

// captureNotifier records published events instead of talking to a broker.
type captureNotifier struct {
	registered []*service.UserRegisteredEvent
	booked     []*service.AppointmentBookedEvent
}

func (n *captureNotifier) PublishUserRegistered(ctx context.Context, event *service.UserRegisteredEvent) error {
	n.registered = append(n.registered, event)
	return nil
}

func (n *captureNotifier) PublishAppointmentBooked(ctx context.Context, event *service.AppointmentBookedEvent) error {
	n.booked = append(n.booked, event)
	return nil
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role entity.Role) *entity.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &entity.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createVerifiedTherapist(t *testing.T, db *gorm.DB, email string, hourlyRate string) *entity.User {
	t.Helper()

	user := createTestUser(t, db, email, entity.RoleTherapist)
	rate, err := decimal.NewFromString(hourlyRate)
	if err != nil {
		t.Fatalf("invalid hourly rate %q: %v", hourlyRate, err)
	}

	profile := &entity.TherapistProfile{
		UserID:         user.ID,
		Specialization: entity.StringList{"anxiety"},
		Education:      entity.StringList{},
		HourlyRate:     rate,
		Status:         entity.VerificationVerified,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create therapist profile: %v", err)
	}
	user.TherapistProfile = profile
	return user
}
