package auth

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekkositon/booking-api/internal/config"
	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/service/adminrequest"
	"github.com/nekkositon/booking-api/pkg/auth"
	"github.com/nekkositon/booking-api/pkg/security"
)

type fakeUserRepo struct {
	nextID int
	byID   map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, existing := range r.byID {
		if existing.Email == user.Email {
			return model.ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = "u" + strconv.Itoa(r.nextID)
	copied := *user
	r.byID[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id string) (*model.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id string, fullName, phoneNumber *string) (*model.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	if fullName != nil {
		user.FullName = *fullName
	}
	if phoneNumber != nil {
		user.PhoneNumber = *phoneNumber
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, id string, avatarURL string) (*model.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user.AvatarURL = &avatarURL
	copied := *user
	return &copied, nil
}

type recordingRequestRepo struct {
	filed []*model.AdminRequest
}

func (r *recordingRequestRepo) Create(_ context.Context, req *model.AdminRequest) error {
	req.ID = "req1"
	req.Status = model.AdminRequestStatusPending
	r.filed = append(r.filed, req)
	return nil
}

func (r *recordingRequestRepo) ListPending(_ context.Context) ([]*model.AdminRequest, error) {
	return r.filed, nil
}

func (r *recordingRequestRepo) Decide(_ context.Context, _ string, _ model.AdminRequestStatus) (*model.AdminRequest, error) {
	return nil, model.ErrAdminRequestNotFound
}

func newTestService(users *fakeUserRepo, requests *recordingRequestRepo) *Service {
	tokens := auth.NewJWTService(config.JWTConfig{
		Secret:             "access-secret",
		RefreshSecret:      "refresh-secret",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	})
	hasher := security.NewBcryptHasher(4)
	return NewService(users, adminrequest.NewService(requests, nil), tokens, hasher)
}

func registerReq() *model.RegisterRequest {
	return &model.RegisterRequest{
		FullName:    "Ana Cruz",
		Email:       "ana@example.com",
		PhoneNumber: "+639171234567",
		Password:    "sekret-pass",
	}
}

func TestRegister(t *testing.T) {
	users := newFakeUserRepo()
	requests := &recordingRequestRepo{}
	svc := newTestService(users, requests)

	user, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.Equal(t, model.RoleClient, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "sekret-pass", user.PasswordHash)
	assert.Empty(t, requests.filed)
}

func TestRegisterAdminTierFilesRequest(t *testing.T) {
	users := newFakeUserRepo()
	requests := &recordingRequestRepo{}
	svc := newTestService(users, requests)

	req := registerReq()
	req.AdminTier = true
	user, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	// The account stays a client until an existing admin approves.
	assert.Equal(t, model.RoleClient, user.Role)
	require.Len(t, requests.filed, 1)
	assert.Equal(t, user.ID, requests.filed[0].UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &recordingRequestRepo{})

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &recordingRequestRepo{})

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	user, pair, err := svc.Login(context.Background(), "ana@example.com", "sekret-pass")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &recordingRequestRepo{})

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ana@example.com", "wrong-pass")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &recordingRequestRepo{})

	// Unknown accounts and wrong passwords are indistinguishable to callers.
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "sekret-pass")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestRefreshReflectsRoleChange(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users, &recordingRequestRepo{})

	registered, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, pair, err := svc.Login(context.Background(), "ana@example.com", "sekret-pass")
	require.NoError(t, err)

	// Promote behind the service's back, then refresh.
	users.byID[registered.ID].Role = model.RoleAdmin

	fresh, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	current, err := svc.Authenticate(context.Background(), fresh.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, current.Role)
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &recordingRequestRepo{})

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, pair, err := svc.Login(context.Background(), "ana@example.com", "sekret-pass")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), pair.RefreshToken)
	assert.Error(t, err)
}
