package repository

import (
	"context"

	"github.com/nekkositon/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	ServiceRepository interface {
		Get(ctx context.Context, id int64) (*model.Service, error)
		List(ctx context.Context, bookableOnly bool) ([]*model.Service, error)
	}

	// BookingRepository persists bookings. Mutations return the post-write
	// row so callers can treat the store's acknowledged value as the source
	// of truth instead of assuming the requested write succeeded.
	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
		Get(ctx context.Context, id int64) (*model.Booking, error)
		List(ctx context.Context, filter *model.BookingFilter) ([]*model.Booking, error)
		ListDetailed(ctx context.Context) ([]*model.BookingDetail, error)
		UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.Booking, error)
		UpdateStatusAndProof(ctx context.Context, id int64, status model.BookingStatus, proofURL string) (*model.Booking, error)
	}

	AdminRequestRepository interface {
		Create(ctx context.Context, req *model.AdminRequest) error
		ListPending(ctx context.Context) ([]*model.AdminRequest, error)
		// Decide flips a pending request to its terminal status and, on
		// approval, promotes the user in the same transaction. Zero rows
		// matched means the request is missing or already decided.
		Decide(ctx context.Context, id string, decision model.AdminRequestStatus) (*model.AdminRequest, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id string) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		UpdateProfile(ctx context.Context, id string, fullName, phoneNumber *string) (*model.User, error)
		UpdateAvatar(ctx context.Context, id string, avatarURL string) (*model.User, error)
	}
)
