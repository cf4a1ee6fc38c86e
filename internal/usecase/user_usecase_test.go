package usecase

import (
	"context"
	"testing"

	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/domain/entity"
	"therapy-booking/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserUsecaseFixture(t *testing.T, name string) (UserUsecase, *entity.User) {
	t.Helper()

	db := newTestDB(t, name)
	uc := NewUserUsecase(db, newTestLogger(), repository.NewUserRepository(), newTestAuditService(db))
	user := createTestUser(t, db, "jane@example.com", entity.RolePatient)
	return uc, user
}

func TestGetProfile(t *testing.T) {
	uc, user := newUserUsecaseFixture(t, "user_get_profile")

	resp, err := uc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.Email)

	_, err = uc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileKeepsEmptyFields(t *testing.T) {
	uc, user := newUserUsecaseFixture(t, "user_update_profile")

	resp, err := uc.UpdateProfile(context.Background(), user.ID, &dto.UpdateUserProfileRequest{
		PhoneNumber: "+4915123456789",
	})
	require.NoError(t, err)

	assert.Equal(t, "+4915123456789", resp.PhoneNumber)
	assert.Equal(t, user.FirstName, resp.FirstName)
	assert.Equal(t, user.LastName, resp.LastName)
}
