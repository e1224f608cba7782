package http

import (
	"context"

	"github.com/flexibill/internal/domain"
	jwtinfra "github.com/flexibill/internal/infrastructure/jwt"
)

// OTPStore is the minimal interface the router requires from an OTP backend.
type OTPStore interface {
	Put(ctx context.Context, mobileNumber string) (string, error)
	Peek(ctx context.Context, mobileNumber string) (string, bool, error)
	Expire(ctx context.Context, mobileNumber string) error
}

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	GetByMobileNumber(ctx context.Context, mobileNumber string) (*domain.User, error)
}

// LicenseRepository is the minimal interface the router requires from a license store.
type LicenseRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]domain.License, error)
}

// SMSSender delivers OTP codes. Optional.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	OTPStore    OTPStore
	UserRepo    UserRepository
	LicenseRepo LicenseRepository
	SMSSender   SMSSender
	JWTProvider *jwtinfra.Provider
}
