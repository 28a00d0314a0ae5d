package auth

import "errors"

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrNoOTP              = errors.New("otp not found")
	ErrOTPExpired         = errors.New("otp has expired")
	ErrOTPMismatch        = errors.New("invalid otp")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email not verified")
)
