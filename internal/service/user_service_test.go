package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ada-support/helpdesk/internal/domain"
	apperrors "github.com/ada-support/helpdesk/pkg/util"
)

func TestListUsersEmptyStoreIsNotFound(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	_, err := svc.ListUsers(context.Background())
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 404, domainErr.HTTPStatus)
	assert.Equal(t, "No users found", domainErr.Message)
}

func TestDeleteUserInvalidID(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	err := svc.DeleteUser(context.Background(), testActor(), "42")
	require.Error(t, err)
	assert.Equal(t, "Invalid user ID format", apperrors.ToDomainError(err).Message)
}

func TestDeleteUserTargetIsAdmin(t *testing.T) {
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleAdmin}, nil
		},
	}
	svc := NewUserService(users)

	err := svc.DeleteUser(context.Background(), testActor(), uuid.NewString())
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 403, domainErr.HTTPStatus)
	assert.Equal(t, "You cannot delete an admin", domainErr.Message)
}

func TestDeleteUserSelf(t *testing.T) {
	actor := testActor()
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: actor.ID, Role: domain.RoleUser}, nil
		},
	}
	svc := NewUserService(users)

	err := svc.DeleteUser(context.Background(), actor, actor.ID)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "You cannot delete yourself", domainErr.Message)
}

func TestDeleteUserRemovesTarget(t *testing.T) {
	var deletedID string
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleUser}, nil
		},
		deleteFn: func(ctx context.Context, id string) (int64, error) {
			deletedID = id
			return 1, nil
		},
	}
	svc := NewUserService(users)

	target := uuid.NewString()
	err := svc.DeleteUser(context.Background(), testActor(), target)
	require.NoError(t, err)
	assert.Equal(t, target, deletedID)
}

func TestUpdateUserPartialFields(t *testing.T) {
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, FirstName: "Asha", LastName: "Rao", Role: domain.RoleUser}, nil
		},
	}
	svc := NewUserService(users)

	role := domain.RoleAdmin
	user, err := svc.UpdateUser(context.Background(), uuid.NewString(), UserUpdateInput{Role: &role})
	require.NoError(t, err)

	assert.Equal(t, "Asha", user.FirstName)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleUser}, nil
		},
	}
	svc := NewUserService(users)

	role := domain.Role("superuser")
	_, err := svc.UpdateUser(context.Background(), uuid.NewString(), UserUpdateInput{Role: &role})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUpdateProfileRequiresAllFields(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	_, err := svc.UpdateProfile(context.Background(), testActor(), ProfileUpdateInput{
		FirstName: "Asha",
		LastName:  "Rao",
	})
	require.Error(t, err)
	assert.Equal(t, "All fields are required", apperrors.ToDomainError(err).Message)
}

func TestUpdateProfileAppliesFields(t *testing.T) {
	actor := testActor()
	var updated *domain.User
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: actor.ID, Email: email}, nil
		},
		updateFn: func(ctx context.Context, user *domain.User) error {
			updated = user
			return nil
		},
	}
	svc := NewUserService(users)

	user, err := svc.UpdateProfile(context.Background(), actor, ProfileUpdateInput{
		FirstName: "Asha",
		LastName:  "Rao",
		JobTitle:  "Analyst",
		Phone:     "555-0142",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Analyst", user.JobTitle)
	assert.Equal(t, "555-0142", user.Phone)
}

func TestGetProfileMissingRecord(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	_, err := svc.GetProfile(context.Background(), testActor())
	require.Error(t, err)
	assert.Equal(t, "User details not found", apperrors.ToDomainError(err).Message)
}
