package booking

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/service/catalog"
)

type fakeServiceRepo struct {
	services map[int64]*model.Service
}

func (r *fakeServiceRepo) Get(_ context.Context, id int64) (*model.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, model.ErrServiceNotFound
	}
	return svc, nil
}

func (r *fakeServiceRepo) List(_ context.Context, bookableOnly bool) ([]*model.Service, error) {
	var out []*model.Service
	for _, svc := range r.services {
		if bookableOnly && !svc.Bookable() {
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}

type fakeBookingRepo struct {
	nextID   int64
	bookings map[int64]*model.Booking
	failNext error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, bookings: make(map[int64]*model.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *model.Booking) (*model.Booking, error) {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return nil, err
	}
	stored := *b
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.nextID++
	r.bookings[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *fakeBookingRepo) Get(_ context.Context, id int64) (*model.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, model.ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

func (r *fakeBookingRepo) List(_ context.Context, filter *model.BookingFilter) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range r.bookings {
		if filter != nil && filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeBookingRepo) ListDetailed(_ context.Context) ([]*model.BookingDetail, error) {
	return nil, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status model.BookingStatus) (*model.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, model.ErrBookingNotFound
	}
	b.Status = status
	out := *b
	return &out, nil
}

func (r *fakeBookingRepo) UpdateStatusAndProof(_ context.Context, id int64, status model.BookingStatus, proofURL string) (*model.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, model.ErrBookingNotFound
	}
	b.Status = status
	b.PaymentProofURL = &proofURL
	out := *b
	return &out, nil
}

type fakeBlobStore struct {
	uploads map[string][]byte
	failure error
}

func (s *fakeBlobStore) Upload(_ context.Context, objectPath string, r io.Reader) (string, error) {
	if s.failure != nil {
		return "", s.failure
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.uploads == nil {
		s.uploads = make(map[string][]byte)
	}
	s.uploads[objectPath] = data
	return "/uploads/" + objectPath, nil
}

func testCatalog() *catalog.Service {
	repo := &fakeServiceRepo{services: map[int64]*model.Service{
		1: {ID: 1, Name: "Package A", Price: 20000},
		2: {ID: 2, Name: "Concept Shoot", Price: 6000},
		9: {ID: 9, Name: "Custom Package", IsCustom: true},
	}}
	return catalog.NewService(repo, time.Minute, time.Minute)
}

func newTestService(repo *fakeBookingRepo, blobs *fakeBlobStore) *Service {
	if blobs == nil {
		blobs = &fakeBlobStore{}
	}
	return NewService(repo, testCatalog(), blobs, nil)
}

func futureDate() time.Time {
	return time.Now().AddDate(0, 0, 7)
}

func bytesReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestCreateStartsPending(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), "u1", 1, futureDate(), "outdoor shoot")
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPending, created.Status)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "u1", created.UserID)

	stored, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, stored.Status)
}

func TestCreateRejectsUnknownService(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), nil)

	_, err := svc.Create(context.Background(), "u1", 42, futureDate(), "")
	assert.ErrorIs(t, err, model.ErrServiceNotFound)
}

func TestCreateRejectsCustomService(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), nil)

	_, err := svc.Create(context.Background(), "u1", 9, futureDate(), "")
	assert.ErrorIs(t, err, model.ErrServiceNotBookable)
}

func TestCreateRejectsPastDate(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), "u1", 1, time.Now().AddDate(0, 0, -1), "")

	var fieldErrs model.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "booking_date")
	assert.Empty(t, repo.bookings)
}

func TestCreateAllowsToday(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), nil)

	_, err := svc.Create(context.Background(), "u1", 1, time.Now(), "")
	assert.NoError(t, err)
}

func TestTransitionLegalMove(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), "u1", 1, futureDate(), "")
	require.NoError(t, err)

	stored, err := svc.Transition(context.Background(), created.ID, model.BookingStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusApproved, stored.Status)
}

func TestTransitionIllegalMoveLeavesStatusUnchanged(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), "u1", 1, futureDate(), "")
	require.NoError(t, err)

	for _, target := range []model.BookingStatus{
		model.BookingStatusApproved,
		model.BookingStatusPendingConfirmation,
		model.BookingStatusCompleted,
	} {
		if target == model.BookingStatusPendingConfirmation {
			_, err = svc.UploadPaymentProof(context.Background(), created.ID, "u1", "proof.jpg", bytesReader("receipt"))
		} else {
			_, err = svc.Transition(context.Background(), created.ID, target)
		}
		require.NoError(t, err, string(target))
	}

	// completed is terminal; any further move is rejected without effect.
	_, err = svc.Transition(context.Background(), created.ID, model.BookingStatusPending)
	assert.ErrorIs(t, err, model.ErrIllegalTransition)

	stored, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCompleted, stored.Status)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), nil)

	_, err := svc.Transition(context.Background(), 1, model.BookingStatus("confirmed"))
	assert.ErrorIs(t, err, model.ErrIllegalTransition)
}

func TestTransitionToPendingConfirmationRequiresProof(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), "u1", 1, futureDate(), "")
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), created.ID, model.BookingStatusApproved)
	require.NoError(t, err)

	// The direct move is gated; only a proof upload performs it.
	_, err = svc.Transition(context.Background(), created.ID, model.BookingStatusPendingConfirmation)
	assert.ErrorIs(t, err, model.ErrPaymentProofRequired)

	stored, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusApproved, stored.Status)
	assert.Nil(t, stored.PaymentProofURL)
}

func TestUploadPaymentProof(t *testing.T) {
	repo := newFakeBookingRepo()
	blobs := &fakeBlobStore{}
	svc := newTestService(repo, blobs)

	created, err := svc.Create(context.Background(), "u1", 1, futureDate(), "")
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), created.ID, model.BookingStatusApproved)
	require.NoError(t, err)

	stored, err := svc.UploadPaymentProof(context.Background(), created.ID, "u1", "receipt.jpg", bytesReader("gcash"))
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPendingConfirmation, stored.Status)
	require.NotNil(t, stored.PaymentProofURL)
	assert.Equal(t, "/uploads/payment-proofs/u1/1-receipt.jpg", *stored.PaymentProofURL)
	assert.Contains(t, blobs.uploads, "payment-proofs/u1/1-receipt.jpg")
}

func TestUploadPaymentProofRequiresApproved(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), "u1", 1, futureDate(), "")
	require.NoError(t, err)

	_, err = svc.UploadPaymentProof(context.Background(), created.ID, "u1", "receipt.jpg", bytesReader("gcash"))
	assert.ErrorIs(t, err, model.ErrIllegalTransition)
}

func TestUploadPaymentProofRejectsNonOwner(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), "u1", 1, futureDate(), "")
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), created.ID, model.BookingStatusApproved)
	require.NoError(t, err)

	_, err = svc.UploadPaymentProof(context.Background(), created.ID, "u2", "receipt.jpg", bytesReader("gcash"))
	assert.ErrorIs(t, err, model.ErrNotBookingOwner)
}

func TestUploadPaymentProofStoreFailureLeavesStatus(t *testing.T) {
	repo := newFakeBookingRepo()
	blobs := &fakeBlobStore{failure: errors.New("disk full")}
	svc := newTestService(repo, blobs)

	created, err := svc.Create(context.Background(), "u1", 1, futureDate(), "")
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), created.ID, model.BookingStatusApproved)
	require.NoError(t, err)

	_, err = svc.UploadPaymentProof(context.Background(), created.ID, "u1", "receipt.jpg", bytesReader("gcash"))
	require.Error(t, err)

	stored, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusApproved, stored.Status)
	assert.Nil(t, stored.PaymentProofURL)
}

func TestCancelOwn(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), "u1", 1, futureDate(), "")
	require.NoError(t, err)

	stored, err := svc.CancelOwn(context.Background(), created.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, stored.Status)
}

func TestCancelOwnRejectsNonOwner(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), "u1", 1, futureDate(), "")
	require.NoError(t, err)

	_, err = svc.CancelOwn(context.Background(), created.ID, "u2")
	assert.ErrorIs(t, err, model.ErrNotBookingOwner)
}

func TestCancelOwnRejectsNonPending(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), "u1", 1, futureDate(), "")
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), created.ID, model.BookingStatusApproved)
	require.NoError(t, err)

	_, err = svc.CancelOwn(context.Background(), created.ID, "u1")
	assert.ErrorIs(t, err, model.ErrIllegalTransition)
}

func TestListForUser(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), "u1", 1, futureDate(), "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "u2", 2, futureDate(), "")
	require.NoError(t, err)

	own, err := svc.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "u1", own[0].UserID)
}
