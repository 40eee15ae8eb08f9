package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ada-support/helpdesk/internal/auth"
	"github.com/ada-support/helpdesk/internal/config"
	"github.com/ada-support/helpdesk/internal/domain"
	"github.com/ada-support/helpdesk/internal/repository"
	apperrors "github.com/ada-support/helpdesk/pkg/util"
)

// RegisterInput carries the OTP-gated registration payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Process   string
	Email     string
	EmpID     int64
	Password  string
	OTP       string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	otp        *OTPService
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	OTP      *OTPService
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		otp:        deps.OTP,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account after OTP verification. The passcode is
// deleted only once the user row exists.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.Process == "" ||
		input.Email == "" || input.EmpID == 0 || input.Password == "" || input.OTP == "" {
		return nil, apperrors.NewValidationError("All fields are required")
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, apperrors.NewValidationError("Invalid email format")
	}
	email := strings.ToLower(input.Email)

	if err := s.otp.Consume(ctx, email, input.OTP); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("Error hashing password", err)
	}

	if _, err := s.users.GetByEmpID(ctx, input.EmpID); err == nil {
		return nil, apperrors.NewConflict("User with this empID already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewUpstreamFailure("Internal Server Error", err)
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		EmpID:        input.EmpID,
		Process:      input.Process,
		Role:         domain.RoleUser,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.otp.Remove(ctx, email); err != nil {
		return nil, apperrors.NewUpstreamFailure("Error deleting OTP", err)
	}

	return user, nil
}

// Login authenticates a user and issues a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperrors.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewNotFound("User not found")
		}
		return nil, "", apperrors.NewUpstreamFailure("Internal Server Error", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewUnauthorized("Wrong password")
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", apperrors.NewUpstreamFailure("Internal Server Error", err)
	}
	return user, token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
