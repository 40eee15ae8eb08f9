package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ada-support/helpdesk/internal/domain"
	"github.com/ada-support/helpdesk/internal/repository"
	apperrors "github.com/ada-support/helpdesk/pkg/util"
)

// UserUpdateInput carries the admin-only user update. Fields apply only when
// provided.
type UserUpdateInput struct {
	FirstName *string
	LastName  *string
	Role      *domain.Role
}

// ProfileUpdateInput carries the self-service profile update.
type ProfileUpdateInput struct {
	FirstName string
	LastName  string
	JobTitle  string
	Phone     string
}

// UserService handles admin user management and self-service profile ops.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ListUsers returns every identity record. An empty store is reported as a
// not-found condition.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("Internal server error", err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFound("No users found")
	}
	return users, nil
}

// DeleteUser removes a user with guardrails: admins can never be deleted, and
// no actor may delete themselves regardless of role.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewInvalidID("Invalid user ID format")
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User not found")
		}
		return apperrors.NewUpstreamFailure("Internal Server Error", err)
	}

	if target.Role == domain.RoleAdmin {
		return apperrors.NewForbidden("You cannot delete an admin")
	}
	if actor.ID == target.ID {
		return apperrors.NewBadRequest("You cannot delete yourself")
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return apperrors.NewUpstreamFailure("Internal Server Error", err)
	}
	if deleted == 0 {
		return apperrors.NewNotFound("User not found")
	}
	return nil
}

// UpdateUser applies the admin-only name/role update.
func (s *UserService) UpdateUser(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewInvalidID("Invalid user ID format")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, apperrors.NewUpstreamFailure("Internal Server Error", err)
	}

	if input.FirstName != nil && *input.FirstName != "" {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil && *input.LastName != "" {
		user.LastName = *input.LastName
	}
	if input.Role != nil && *input.Role != "" {
		if *input.Role != domain.RoleUser && *input.Role != domain.RoleAdmin {
			return nil, apperrors.NewValidationError("Validation error")
		}
		user.Role = *input.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.NewUpstreamFailure("Internal Server Error", err)
	}
	return user, nil
}

// UpdateProfile applies the self-service name/title/phone update.
func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, input ProfileUpdateInput) (*domain.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.JobTitle == "" || input.Phone == "" {
		return nil, apperrors.NewValidationError("All fields are required")
	}

	user, err := s.users.GetByEmail(ctx, actor.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, apperrors.NewUpstreamFailure("Error while updating profile details", err)
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.JobTitle = input.JobTitle
	user.Phone = input.Phone

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.NewUpstreamFailure("Error while updating profile details", err)
	}
	return user, nil
}

// GetProfile fetches the acting user's own record.
func (s *UserService) GetProfile(ctx context.Context, actor *domain.User) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, actor.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User details not found")
		}
		return nil, apperrors.NewUpstreamFailure("Internal server error", err)
	}
	return user, nil
}
