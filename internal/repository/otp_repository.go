package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPNotFound is returned when no live passcode exists for an email.
var ErrOTPNotFound = errors.New("otp not found")

const otpKeyPrefix = "otp:"

// OTPRepository stores registration passcodes keyed by normalized email.
// Expiry is enforced by the store's TTL; re-issuing for the same email
// overwrites the previous code.
type OTPRepository interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type otpRepository struct {
	client *redis.Client
}

// NewOTPRepository returns a Redis-backed implementation.
func NewOTPRepository(client *redis.Client) OTPRepository {
	return &otpRepository{client: client}
}

func (r *otpRepository) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	return r.client.Set(ctx, otpKeyPrefix+email, code, ttl).Err()
}

func (r *otpRepository) Get(ctx context.Context, email string) (string, error) {
	code, err := r.client.Get(ctx, otpKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrOTPNotFound
		}
		return "", err
	}
	return code, nil
}

func (r *otpRepository) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, otpKeyPrefix+email).Err()
}
