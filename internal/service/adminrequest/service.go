package adminrequest

import (
	"context"
	"fmt"

	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/repository"
	"github.com/nekkositon/booking-api/pkg/metrics"
)

// Service decides admin elevation requests. A decision is a single atomic
// store update; either the request leaves the pending working set or nothing
// changes.
type Service struct {
	repo    repository.AdminRequestRepository
	metrics *metrics.Metrics
}

func NewService(repo repository.AdminRequestRepository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m}
}

func (s *Service) File(ctx context.Context, user *model.User) (*model.AdminRequest, error) {
	req := &model.AdminRequest{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to file admin request: %w", err)
	}
	return req, nil
}

func (s *Service) ListPending(ctx context.Context) ([]*model.AdminRequest, error) {
	return s.repo.ListPending(ctx)
}

// Decide applies an approve/reject decision. Decided requests are terminal;
// deciding one again reports ErrRequestAlreadyFinal and mutates nothing.
func (s *Service) Decide(ctx context.Context, id string, decision model.AdminRequestStatus) (*model.AdminRequest, error) {
	if decision != model.AdminRequestStatusApproved && decision != model.AdminRequestStatusRejected {
		return nil, fmt.Errorf("invalid decision %q", decision)
	}

	req, err := s.repo.Decide(ctx, id, decision)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AdminRequestDecisions.WithLabelValues(string(decision)).Inc()
	}
	return req, nil
}
