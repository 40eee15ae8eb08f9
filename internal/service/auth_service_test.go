package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ada-support/helpdesk/internal/auth"
	"github.com/ada-support/helpdesk/internal/config"
	"github.com/ada-support/helpdesk/internal/domain"
	"github.com/ada-support/helpdesk/internal/repository"
	apperrors "github.com/ada-support/helpdesk/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func newAuthService(users repository.UserRepository, otps *mockOTPRepo) (*AuthService, *OTPService) {
	otpSvc := NewOTPService(OTPDependencies{
		UserRepo: users,
		OTPRepo:  otps,
		Mailer:   &mockMailer{},
	}, time.Minute, zap.NewNop())

	return NewAuthService(testConfig(), AuthDependencies{UserRepo: users, OTP: otpSvc}), otpSvc
}

func TestRegisterRequiresAllFields(t *testing.T) {
	svc, _ := newAuthService(&mockUserRepo{}, newMockOTPRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Asha",
		Email:     "asha.rao@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, "All fields are required", apperrors.ToDomainError(err).Message)
}

func TestRegisterConsumesIssuedCode(t *testing.T) {
	var created *domain.User
	users := &mockUserRepo{
		createFn: func(ctx context.Context, user *domain.User) error {
			user.ID = uuid.NewString()
			created = user
			return nil
		},
	}
	otps := newMockOTPRepo()
	svc, otpSvc := newAuthService(users, otps)

	code, err := otpSvc.Issue(context.Background(), "Asha.Rao@example.com")
	require.NoError(t, err)
	require.Len(t, code, 4)

	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Asha",
		LastName:  "Rao",
		Process:   "Billing",
		Email:     "Asha.Rao@example.com",
		EmpID:     4711,
		Password:  "s3cret",
		OTP:       code,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "asha.rao@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	// the passcode is single-use
	err = otpSvc.Consume(context.Background(), "asha.rao@example.com", code)
	require.Error(t, err)
	assert.Equal(t, "OTP does not match", apperrors.ToDomainError(err).Message)
}

func TestRegisterWrongCode(t *testing.T) {
	otps := newMockOTPRepo()
	otps.codes["asha.rao@example.com"] = "1234"
	svc, _ := newAuthService(&mockUserRepo{}, otps)

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Asha",
		LastName:  "Rao",
		Process:   "Billing",
		Email:     "asha.rao@example.com",
		EmpID:     4711,
		Password:  "s3cret",
		OTP:       "9999",
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 404, domainErr.HTTPStatus)
	assert.Equal(t, "OTP does not match", domainErr.Message)
}

func TestRegisterDuplicateEmpID(t *testing.T) {
	users := &mockUserRepo{
		getByEmpIDFn: func(ctx context.Context, empID int64) (*domain.User, error) {
			return &domain.User{ID: uuid.NewString(), EmpID: empID}, nil
		},
	}
	otps := newMockOTPRepo()
	otps.codes["asha.rao@example.com"] = "1234"
	svc, _ := newAuthService(users, otps)

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Asha",
		LastName:  "Rao",
		Process:   "Billing",
		Email:     "asha.rao@example.com",
		EmpID:     4711,
		Password:  "s3cret",
		OTP:       "1234",
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Equal(t, "User with this empID already exists", domainErr.Message)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthService(&mockUserRepo{}, newMockOTPRepo())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 404, domainErr.HTTPStatus)
	assert.Equal(t, "User not found", domainErr.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: uuid.NewString(), Email: email, PasswordHash: hash}, nil
		},
	}
	svc, _ := newAuthService(users, newMockOTPRepo())

	_, _, err = svc.Login(context.Background(), "asha.rao@example.com", "wrong")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 401, domainErr.HTTPStatus)
	assert.Equal(t, "Wrong password", domainErr.Message)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.NewString()
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: userID, Email: email, PasswordHash: hash}, nil
		},
	}
	svc, _ := newAuthService(users, newMockOTPRepo())

	user, token, err := svc.Login(context.Background(), "Asha.Rao@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, userID, user.ID)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "asha.rao@example.com", claims.Email)
}
