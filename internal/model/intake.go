package model

import "time"

// Intake steps. The form is a forward/backward walk with no skipping.
const (
	IntakeStepContact      = 1
	IntakeStepDetails      = 2
	IntakeStepReview       = 3
	IntakeStepConfirmation = 4
)

// IntakeContact holds step 1 fields.
type IntakeContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// IntakeDetails holds step 2 fields. ServiceID of zero means no selection.
type IntakeDetails struct {
	ServiceID int64  `json:"service_id"`
	Date      string `json:"date"`
	Message   string `json:"message"`
}

// IntakeDraft is an in-flight booking request being assembled by the
// multi-step form. Drafts live in Redis until submitted or expired and are
// never written to the booking store before a successful submit.
type IntakeDraft struct {
	ID        string        `json:"id"`
	Step      int           `json:"step"`
	Contact   IntakeContact `json:"contact"`
	Details   IntakeDetails `json:"details"`
	BookingID *int64        `json:"booking_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// FieldErrors maps offending field names to messages. Validation failures
// are local to the form and never reach the store.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	for field, msg := range e {
		return field + ": " + msg
	}
	return "validation failed"
}

type UpdateContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UpdateDetailsRequest struct {
	ServiceID int64  `json:"service_id"`
	Date      string `json:"date"`
	Message   string `json:"message"`
}
