package domain

import "errors"

// errors surfaced by the reservation engine and its collaborators
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrGuesthouseNotFound  = errors.New("guesthouse not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrMessageNotFound     = errors.New("message not found")

	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidGuestCount = errors.New("at least 1 guest is required")
	ErrDatesUnavailable  = errors.New("dates are not available")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")

	ErrNotMessageReceiver = errors.New("you can only mark your own received messages as read")
)
