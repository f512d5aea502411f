package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/services"
	"github.com/junyi/vocabflash/internal/testutil/mocks"
)

func TestCreateUser(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := services.NewUserService(users)
	ctx := context.Background()

	users.On("GetByName", ctx, "alice").Return(nil, nil)
	users.On("Insert", ctx, mock.MatchedBy(func(u models.User) bool {
		return u.Name == "alice" && u.Level == "B2" && u.Rating == 1000
	})).Return(int64(1), nil)
	users.On("Get", ctx, int64(1)).Return(&models.User{ID: 1, Name: "alice", Level: "B2", Rating: 1000}, nil)

	user, err := svc.Create(ctx, "  alice  ", "B2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Name)

	users.AssertExpectations(t)
}

func TestCreateUser_EmptyName(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := services.NewUserService(users)

	_, err := svc.Create(context.Background(), "   ", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")

	users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateUser_DuplicateName(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := services.NewUserService(users)
	ctx := context.Background()

	users.On("GetByName", ctx, "alice").Return(&models.User{ID: 1, Name: "alice"}, nil)

	_, err := svc.Create(ctx, "alice", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFLICT")

	users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestGetUser_NotFound(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := services.NewUserService(users)
	ctx := context.Background()

	users.On("Get", ctx, int64(42)).Return(nil, nil)

	_, err := svc.Get(ctx, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestDeleteUser(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := services.NewUserService(users)
	ctx := context.Background()

	users.On("Get", ctx, int64(1)).Return(&models.User{ID: 1, Name: "alice"}, nil)
	users.On("Delete", ctx, int64(1)).Return(nil)

	require.NoError(t, svc.Delete(ctx, 1))
	users.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := services.NewUserService(users)
	ctx := context.Background()

	users.On("Get", ctx, int64(9)).Return(nil, nil)

	err := svc.Delete(ctx, 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
