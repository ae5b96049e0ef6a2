package intake

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/service/booking"
	"github.com/nekkositon/booking-api/internal/service/catalog"
	"github.com/nekkositon/booking-api/pkg/apperror"
	"github.com/nekkositon/booking-api/pkg/metrics"
)

// Matches the loose local@domain shape the booking form accepts.
var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Service runs the step-gated intake form: four steps, forward only through
// validation, backward unconditionally, submit only from review.
type Service struct {
	drafts     DraftStore
	catalogSvc *catalog.Service
	bookingSvc *booking.Service
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewService(drafts DraftStore, catalogSvc *catalog.Service, bookingSvc *booking.Service, m *metrics.Metrics) *Service {
	return &Service{
		drafts:     drafts,
		catalogSvc: catalogSvc,
		bookingSvc: bookingSvc,
		metrics:    m,
		now:        time.Now,
	}
}

// Start opens a new draft at step 1. Contact fields are prefilled from the
// authenticated profile when one is present, and a service id carried from
// navigation context prefills step 2; both stay editable.
func (s *Service) Start(ctx context.Context, principal *model.User, preselectServiceID *int64) (*model.IntakeDraft, error) {
	draft := &model.IntakeDraft{
		ID:        uuid.New().String(),
		Step:      model.IntakeStepContact,
		CreatedAt: s.now(),
	}

	if principal != nil {
		draft.Contact = model.IntakeContact{
			Name:  principal.FullName,
			Email: principal.Email,
			Phone: principal.PhoneNumber,
		}
	}
	if preselectServiceID != nil {
		if _, err := s.catalogSvc.GetBookable(ctx, *preselectServiceID); err == nil {
			draft.Details.ServiceID = *preselectServiceID
		}
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, apperror.Store(err)
	}
	if s.metrics != nil {
		s.metrics.IntakeDraftsStarted.Inc()
	}
	return draft, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.IntakeDraft, error) {
	return s.drafts.Get(ctx, id)
}

// SetContact stores step 1 fields without validating them; validation gates
// the step advance, not the keystroke.
func (s *Service) SetContact(ctx context.Context, id string, contact model.IntakeContact) (*model.IntakeDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.Contact = contact
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, apperror.Store(err)
	}
	return draft, nil
}

func (s *Service) SetDetails(ctx context.Context, id string, details model.IntakeDetails) (*model.IntakeDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.Details = details
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, apperror.Store(err)
	}
	return draft, nil
}

// Advance validates the current step and moves the draft forward one step.
// The walk never skips and never advances past review; step 4 is only
// reachable through Submit.
func (s *Service) Advance(ctx context.Context, id string) (*model.IntakeDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if draft.Step >= model.IntakeStepReview {
		return draft, nil
	}

	if fieldErrs := s.validateStep(ctx, draft, draft.Step); len(fieldErrs) > 0 {
		if s.metrics != nil {
			s.metrics.IntakeStepRejections.WithLabelValues(strconv.Itoa(draft.Step)).Inc()
		}
		return nil, apperror.Validation("please correct the highlighted fields", fieldErrs)
	}

	draft.Step++
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, apperror.Store(err)
	}
	return draft, nil
}

// Retreat steps back unconditionally, bottoming out at step 1.
func (s *Service) Retreat(ctx context.Context, id string) (*model.IntakeDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if draft.Step > model.IntakeStepContact && draft.Step < model.IntakeStepConfirmation {
		draft.Step--
		if err := s.drafts.Save(ctx, draft); err != nil {
			return nil, apperror.Store(err)
		}
	}
	return draft, nil
}

// Submit turns a reviewed draft into a pending booking. It requires an
// authenticated principal; without one the caller is redirected to
// authentication carrying the draft so the flow can resume. On store failure
// the draft stays at review and may be resubmitted as-is.
func (s *Service) Submit(ctx context.Context, id string, principal *model.User) (*model.IntakeDraft, *model.Booking, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if draft.Step != model.IntakeStepReview {
		return nil, nil, apperror.Validation("booking can only be submitted from the review step", nil)
	}
	if principal == nil {
		return nil, nil, apperror.Unauthorized("you must be logged in to book a service", "/intake/"+id)
	}

	// Re-check both input steps; the review step adds no fields of its own.
	for step := model.IntakeStepContact; step <= model.IntakeStepDetails; step++ {
		if fieldErrs := s.validateStep(ctx, draft, step); len(fieldErrs) > 0 {
			return nil, nil, apperror.Validation("please correct the highlighted fields", fieldErrs)
		}
	}

	date, err := time.ParseInLocation(model.DateOnly, draft.Details.Date, s.now().Location())
	if err != nil {
		return nil, nil, apperror.Validation("please correct the highlighted fields", map[string]string{"date": "preferred date is invalid"})
	}

	created, err := s.bookingSvc.Create(ctx, principal.ID, draft.Details.ServiceID, date, draft.Details.Message)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IntakeSubmissions.WithLabelValues("failed").Inc()
		}
		// Draft untouched: the client stays on review and may retry.
		return draft, nil, fmt.Errorf("failed to submit booking: %w", err)
	}

	draft.Step = model.IntakeStepConfirmation
	draft.BookingID = &created.ID
	if err := s.drafts.Save(ctx, draft); err != nil {
		// The booking exists; confirmation display is best-effort.
		return draft, created, nil
	}

	if s.metrics != nil {
		s.metrics.IntakeSubmissions.WithLabelValues("success").Inc()
	}
	return draft, created, nil
}

func (s *Service) validateStep(ctx context.Context, draft *model.IntakeDraft, step int) model.FieldErrors {
	fieldErrs := model.FieldErrors{}

	switch step {
	case model.IntakeStepContact:
		if draft.Contact.Name == "" {
			fieldErrs["name"] = "full name is required"
		}
		if !emailShape.MatchString(draft.Contact.Email) {
			fieldErrs["email"] = "valid email is required"
		}
		if draft.Contact.Phone == "" {
			fieldErrs["phone"] = "phone number is required"
		}
	case model.IntakeStepDetails:
		if draft.Details.ServiceID == 0 {
			fieldErrs["service_id"] = "please select a service"
		} else if _, err := s.catalogSvc.GetBookable(ctx, draft.Details.ServiceID); err != nil {
			fieldErrs["service_id"] = "please select a service"
		}
		if draft.Details.Date == "" {
			fieldErrs["date"] = "preferred date is required"
		} else if date, err := time.ParseInLocation(model.DateOnly, draft.Details.Date, s.now().Location()); err != nil {
			fieldErrs["date"] = "preferred date is invalid"
		} else {
			now := s.now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if date.Before(today) {
				fieldErrs["date"] = "preferred date cannot be in the past"
			}
		}
	}

	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}
