package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ada-support/helpdesk/internal/mail"
	"github.com/ada-support/helpdesk/internal/repository"
	apperrors "github.com/ada-support/helpdesk/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// OTPService issues and consumes registration passcodes. Codes are keyed by
// the normalized email with upsert-on-reissue, and consumption checks that the
// presented email owns the code.
type OTPService struct {
	users  repository.UserRepository
	otps   repository.OTPRepository
	mailer mail.Sender
	ttl    time.Duration
	logger *zap.Logger
}

// OTPDependencies encapsulates requirements for the OTP service.
type OTPDependencies struct {
	UserRepo repository.UserRepository
	OTPRepo  repository.OTPRepository
	Mailer   mail.Sender
}

// NewOTPService builds the service.
func NewOTPService(deps OTPDependencies, ttl time.Duration, logger *zap.Logger) *OTPService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OTPService{
		users:  deps.UserRepo,
		otps:   deps.OTPRepo,
		mailer: deps.Mailer,
		ttl:    ttl,
		logger: logger,
	}
}

// Issue generates a 4-digit passcode for an unregistered email, stores it with
// the configured TTL and mails it. The code is returned to the caller because
// the response payload echoes it.
func (s *OTPService) Issue(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", apperrors.NewValidationError("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return "", apperrors.NewValidationError("Invalid email format")
	}
	email = strings.ToLower(email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", apperrors.NewConflict("User already registered. Please login...")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.NewUpstreamFailure("Internal Server Error", err)
	}

	code := fmt.Sprintf("%d", 1000+rand.Intn(9000))

	if err := s.otps.Save(ctx, email, code, s.ttl); err != nil {
		return "", apperrors.NewUpstreamFailure("Failed to create OTP document", err)
	}

	if err := s.mailer.Send(email, "OTP Verification", mail.OTPBody(code)); err != nil {
		s.logger.Error("otp mail send failed", zap.String("email", email), zap.Error(err))
		return "", apperrors.NewUpstreamFailure("Failed to send OTP via email", err)
	}

	s.logger.Info("otp issued", zap.String("email", email))
	return code, nil
}

// Consume verifies the presented code against the stored one for that email.
// The passcode document is not removed here; callers delete it explicitly
// once registration succeeds.
func (s *OTPService) Consume(ctx context.Context, email, code string) error {
	stored, err := s.otps.Get(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return apperrors.NewNotFound("OTP does not match")
		}
		return apperrors.NewUpstreamFailure("Internal Server Error", err)
	}
	if stored != code {
		return apperrors.NewNotFound("OTP does not match")
	}
	return nil
}

// Remove deletes the passcode for an email after successful registration.
func (s *OTPService) Remove(ctx context.Context, email string) error {
	return s.otps.Delete(ctx, strings.ToLower(email))
}
