package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials covers both a wrong code and a mobile number
	// that never requested one.
	ErrInvalidCredentials = errors.New("invalid OTP or mobile number")
	ErrOTPNotConfirmed    = fmt.Errorf("otp creation could not be confirmed: %w", ErrInvalidCredentials)
	ErrDeliveryFailed     = errors.New("otp delivery failed")
)
