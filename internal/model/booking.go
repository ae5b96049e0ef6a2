package model

import "time"

type BookingStatus string

const (
	BookingStatusPending             BookingStatus = "pending"
	BookingStatusApproved            BookingStatus = "approved"
	BookingStatusPendingConfirmation BookingStatus = "pending_confirmation"
	BookingStatusCompleted           BookingStatus = "completed"
	BookingStatusCancelled           BookingStatus = "cancelled"
)

// bookingTransitions is the full set of legal status moves. Anything not in
// this table is caller misuse and is rejected with ErrIllegalTransition.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:             {BookingStatusApproved, BookingStatusCancelled},
	BookingStatusApproved:            {BookingStatusPendingConfirmation, BookingStatusCancelled},
	BookingStatusPendingConfirmation: {BookingStatusCompleted},
	BookingStatusCompleted:           {},
	BookingStatusCancelled:           {},
}

// Valid reports whether s is one of the enumerated booking statuses.
func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// Terminal reports whether no further transition may leave s.
func (s BookingStatus) Terminal() bool {
	return len(bookingTransitions[s]) == 0
}

// CanTransition reports whether moving from s to target is legal.
func (s BookingStatus) CanTransition(target BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Booking is a client's request for a dated photography service. Created in
// pending by the intake workflow and mutated only through sanctioned
// transitions; cancelled is terminal, rows are never deleted.
type Booking struct {
	ID              int64         `db:"id" json:"id"`
	UserID          string        `db:"user_id" json:"user_id"`
	ServiceID       int64         `db:"service_id" json:"service_id"`
	BookingDate     time.Time     `db:"booking_date" json:"booking_date"`
	Message         string        `db:"message" json:"message,omitempty"`
	Status          BookingStatus `db:"status" json:"status"`
	PaymentProofURL *string       `db:"payment_proof_url" json:"payment_proof_url,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}

// BookingDetail is a booking joined with the owning client's profile and the
// booked service, as consumed by the admin dashboard and calendar views.
type BookingDetail struct {
	Booking
	ClientName   string `db:"client_name" json:"client_name"`
	ClientEmail  string `db:"client_email" json:"client_email"`
	ClientPhone  string `db:"client_phone" json:"client_phone"`
	ServiceName  string `db:"service_name" json:"service_name"`
	ServicePrice int64  `db:"service_price" json:"service_price"`
}

type CreateBookingRequest struct {
	ServiceID   int64  `json:"service_id" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required,futuredate"`
	Message     string `json:"message" binding:"max=2000"`
}

type TransitionBookingRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}

type BookingFilter struct {
	UserID string
	Status BookingStatus
}
