package model

import "time"

type AdminRequestStatus string

const (
	AdminRequestStatusPending  AdminRequestStatus = "pending"
	AdminRequestStatusApproved AdminRequestStatus = "approved"
	AdminRequestStatusRejected AdminRequestStatus = "rejected"
)

// AdminRequest is a registered user's pending request for the admin role.
// It is decided exactly once; approved and rejected are both terminal.
type AdminRequest struct {
	ID        string             `db:"id" json:"id"`
	UserID    string             `db:"user_id" json:"user_id"`
	Email     string             `db:"email" json:"email"`
	FullName  string             `db:"full_name" json:"full_name"`
	Status    AdminRequestStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}

type DecideAdminRequest struct {
	Decision AdminRequestStatus `json:"decision" binding:"required,oneof=approved rejected"`
}
