package model

import "errors"

var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrServiceNotBookable   = errors.New("service is contact-only and cannot be booked")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrIllegalTransition    = errors.New("illegal booking status transition")
	ErrPaymentProofRequired = errors.New("payment proof must be uploaded before confirmation")
	ErrNotBookingOwner      = errors.New("booking belongs to another client")
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var (
	ErrAdminRequestNotFound = errors.New("admin request not found")
	ErrRequestAlreadyFinal  = errors.New("admin request has already been decided")
)

var (
	ErrDraftNotFound = errors.New("intake draft not found")
)
