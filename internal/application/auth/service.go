package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flexibill/internal/domain"
)

type Service interface {
	SendOTP(ctx context.Context, req domain.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.AccessGrant, error)
}

// otpStore is the keyed code store the flow runs against.
type otpStore interface {
	Put(ctx context.Context, mobileNumber string) (string, error)
	Peek(ctx context.Context, mobileNumber string) (string, bool, error)
	Expire(ctx context.Context, mobileNumber string) error
}

type tokenIssuer interface {
	Issue(claims map[string]any, ttl time.Duration) (string, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	store     otpStore
	issuer    tokenIssuer
	smsSender smsSender
}

type ServiceDeps struct {
	Store  otpStore
	Issuer tokenIssuer
	// SMSSender is optional; without it codes are only stored.
	SMSSender smsSender
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:     deps.Store,
		issuer:    deps.Issuer,
		smsSender: deps.SMSSender,
	}
}

func (s *service) SendOTP(ctx context.Context, req domain.SendOTPRequest) error {
	if _, err := s.store.Put(ctx, req.MobileNumber); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	code, ok, err := s.store.Peek(ctx, req.MobileNumber)
	if err != nil {
		return fmt.Errorf("confirm otp: %w", err)
	}
	if !ok || code == "" {
		return domain.ErrOTPNotConfirmed
	}
	if s.smsSender != nil {
		if err := s.smsSender.SendSMS(ctx, req.MobileNumber, "Your OTP: "+code); err != nil {
			slog.Warn("failed to deliver otp", "mobile_number", req.MobileNumber, "err", err)
			return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
		}
	}
	return nil
}

// VerifyOTP does not consume the code: a verified code stays valid
// until it is overwritten by the next SendOTP.
func (s *service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.AccessGrant, error) {
	slog.DebugContext(ctx, "verifying otp", "mobile_number", req.MobileNumber)

	code, ok, err := s.store.Peek(ctx, req.MobileNumber)
	if err != nil {
		return nil, fmt.Errorf("read otp: %w", err)
	}
	if !ok || code != req.OTP {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(map[string]any{domain.ClaimMobileNumber: req.MobileNumber}, 0)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.AccessGrant{
		MobileNumber: req.MobileNumber,
		AccessToken:  token,
		TokenType:    domain.TokenTypeBearer,
	}, nil
}
