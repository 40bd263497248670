package domain

import "errors"

// Input errors
var (
	ErrPhoneRequired    = errors.New("phone number is required")
	ErrOTPRequired      = errors.New("phone number and otp are required")
	ErrLanguageRequired = errors.New("language is required")
	ErrInvalidDate      = errors.New("invalid date of birth")
	ErrInvalidField     = errors.New("invalid profile field value")
)

// OTP errors
var (
	ErrOTPNotFound = errors.New("otp not found")
	// ErrOTPInvalid is the uniform verification failure: wrong code, expired
	// code and unknown phone number are deliberately indistinguishable.
	ErrOTPInvalid = errors.New("invalid or expired otp")
)

// Session errors
var (
	ErrTokenRequired   = errors.New("no token provided")
	ErrSessionNotFound = errors.New("invalid or expired token")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Delivery errors
var (
	ErrDeliveryFailed = errors.New("otp delivery failed")
)
