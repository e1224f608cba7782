package redis

import (
	"context"
	"errors"
	"time"

	"github.com/flexibill/internal/domain"
	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// OTPStore keeps codes under otp:<mobile_number>. A ttl of zero stores
// codes without expiry.
type OTPStore struct {
	client redis.Cmdable
	ttl    time.Duration
	gen    domain.OTPCodeGenerator
}

func NewOTPStore(client redis.Cmdable, ttl time.Duration, gen domain.OTPCodeGenerator) *OTPStore {
	if gen == nil {
		gen = domain.FixedOTPCode
	}
	return &OTPStore{client: client, ttl: ttl, gen: gen}
}

func (s *OTPStore) Put(ctx context.Context, mobileNumber string) (string, error) {
	code := s.gen(mobileNumber)
	if err := s.client.Set(ctx, otpKeyPrefix+mobileNumber, code, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

func (s *OTPStore) Peek(ctx context.Context, mobileNumber string) (string, bool, error) {
	code, err := s.client.Get(ctx, otpKeyPrefix+mobileNumber).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return code, true, nil
}

func (s *OTPStore) Expire(ctx context.Context, mobileNumber string) error {
	return s.client.Del(ctx, otpKeyPrefix+mobileNumber).Err()
}
