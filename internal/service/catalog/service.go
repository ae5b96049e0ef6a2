package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/repository"
)

const (
	listAllKey      = "services:all"
	listBookableKey = "services:bookable"
)

// Service serves catalog lookups. The catalog is immutable after seeding,
// so reads are fronted by an in-process cache.
type Service struct {
	repo  repository.ServiceRepository
	cache *cache.Cache
}

func NewService(repo repository.ServiceRepository, ttl, cleanup time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(ttl, cleanup),
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Service, error) {
	key := fmt.Sprintf("service:%d", id)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.Service), nil
	}

	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, svc, cache.DefaultExpiration)
	return svc, nil
}

func (s *Service) List(ctx context.Context, bookableOnly bool) ([]*model.Service, error) {
	key := listAllKey
	if bookableOnly {
		key = listBookableKey
	}
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.repo.List(ctx, bookableOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	s.cache.Set(key, services, cache.DefaultExpiration)
	return services, nil
}

// GetBookable resolves a service and rejects contact-only entries. Used by
// intake validation so custom packages never enter the booking flow.
func (s *Service) GetBookable(ctx context.Context, id int64) (*model.Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.Bookable() {
		return nil, model.ErrServiceNotBookable
	}
	return svc, nil
}
