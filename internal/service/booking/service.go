package booking

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/repository"
	"github.com/nekkositon/booking-api/internal/service/catalog"
	"github.com/nekkositon/booking-api/pkg/metrics"
	"github.com/nekkositon/booking-api/pkg/storage"
)

// Service enforces the booking lifecycle. Every mutation goes through the
// store and the store's returned row is what callers get back; the requested
// status is never assumed to have been applied.
type Service struct {
	repo       repository.BookingRepository
	catalogSvc *catalog.Service
	blobs      storage.BlobStore
	metrics    *metrics.Metrics
}

func NewService(repo repository.BookingRepository, catalogSvc *catalog.Service, blobs storage.BlobStore, m *metrics.Metrics) *Service {
	return &Service{
		repo:       repo,
		catalogSvc: catalogSvc,
		blobs:      blobs,
		metrics:    m,
	}
}

// Create persists a new booking in pending. The service must exist and be
// bookable, and the requested date must be today or later.
func (s *Service) Create(ctx context.Context, userID string, serviceID int64, date time.Time, message string) (*model.Booking, error) {
	if _, err := s.catalogSvc.GetBookable(ctx, serviceID); err != nil {
		return nil, err
	}

	today := truncateDay(time.Now(), date.Location())
	if truncateDay(date, date.Location()).Before(today) {
		return nil, model.FieldErrors{"booking_date": "date cannot be in the past"}
	}

	booking := &model.Booking{
		UserID:      userID,
		ServiceID:   serviceID,
		BookingDate: date,
		Message:     message,
		Status:      model.BookingStatusPending,
	}

	stored, err := s.repo.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	return stored, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Booking, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return s.repo.List(ctx, &model.BookingFilter{UserID: userID})
}

func (s *Service) ListDetailed(ctx context.Context) ([]*model.BookingDetail, error) {
	return s.repo.ListDetailed(ctx)
}

// Transition moves a booking to target if the lifecycle table allows it.
// The move into pending_confirmation is payment-gated and only reachable
// through UploadPaymentProof.
func (s *Service) Transition(ctx context.Context, id int64, target model.BookingStatus) (*model.Booking, error) {
	if !target.Valid() {
		return nil, model.ErrIllegalTransition
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransition(target) {
		if s.metrics != nil {
			s.metrics.IllegalTransitions.Inc()
		}
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrIllegalTransition, current.Status, target)
	}
	if target == model.BookingStatusPendingConfirmation {
		return nil, model.ErrPaymentProofRequired
	}

	stored, err := s.repo.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingTransitions.WithLabelValues(string(current.Status), string(stored.Status)).Inc()
	}
	return stored, nil
}

// CancelOwn lets the owning client cancel a booking that is still pending.
func (s *Service) CancelOwn(ctx context.Context, id int64, userID string) (*model.Booking, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, model.ErrNotBookingOwner
	}
	if current.Status != model.BookingStatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrIllegalTransition, current.Status, model.BookingStatusCancelled)
	}
	return s.repo.UpdateStatus(ctx, id, model.BookingStatusCancelled)
}

// UploadPaymentProof stores the payment evidence and advances the booking
// from approved to pending_confirmation. Uploading again overwrites the
// previous reference; the booking must already be approved.
func (s *Service) UploadPaymentProof(ctx context.Context, id int64, userID, filename string, r io.Reader) (*model.Booking, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, model.ErrNotBookingOwner
	}
	if current.Status != model.BookingStatusApproved {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrIllegalTransition, current.Status, model.BookingStatusPendingConfirmation)
	}

	objectPath := path.Join("payment-proofs", userID, fmt.Sprintf("%d-%s", id, path.Base(filename)))
	url, err := s.blobs.Upload(ctx, objectPath, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload payment proof: %w", err)
	}

	stored, err := s.repo.UpdateStatusAndProof(ctx, id, model.BookingStatusPendingConfirmation, url)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PaymentProofUploads.Inc()
		s.metrics.BookingTransitions.WithLabelValues(string(current.Status), string(stored.Status)).Inc()
	}
	return stored, nil
}

func truncateDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
