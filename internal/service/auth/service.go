package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/repository"
	"github.com/nekkositon/booking-api/internal/service/adminrequest"
	"github.com/nekkositon/booking-api/pkg/auth"
	"github.com/nekkositon/booking-api/pkg/security"
)

type Service struct {
	users    repository.UserRepository
	requests *adminrequest.Service
	tokens   auth.JWTService
	hasher   security.PasswordHasher
}

func NewService(users repository.UserRepository, requests *adminrequest.Service, tokens auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		users:    users,
		requests: requests,
		tokens:   tokens,
		hasher:   hasher,
	}
}

// Register creates a client account. Admin-tier registrations additionally
// file an elevation request; the role stays client until an admin approves.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Role:         model.RoleClient,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if req.AdminTier {
		if _, err := s.requests.File(ctx, user); err != nil {
			return nil, fmt.Errorf("account created but admin request failed: %w", err)
		}
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.User, *model.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, nil, model.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The user row is
// re-read so a role change since issuance is reflected in the new claims.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

// Authenticate resolves an access token into the current user record.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}
	return s.users.Get(ctx, claims.UserID)
}

func (s *Service) issueTokens(user *model.User) (*model.TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return &model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
