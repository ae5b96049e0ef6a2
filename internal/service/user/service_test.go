package user

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekkositon/booking-api/internal/model"
)

type fakeUserRepo struct {
	byID map[string]*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
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

type stubBlobStore struct {
	lastPath string
	failure  error
}

func (s *stubBlobStore) Upload(_ context.Context, objectPath string, _ io.Reader) (string, error) {
	if s.failure != nil {
		return "", s.failure
	}
	s.lastPath = objectPath
	return "/uploads/" + objectPath, nil
}

func seededRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*model.User{
		"u1": {ID: "u1", Email: "ana@example.com", FullName: "Ana Cruz", PhoneNumber: "+639171234567", Role: model.RoleClient},
	}}
}

func strPtr(s string) *string { return &s }

func TestUpdateProfilePartial(t *testing.T) {
	svc := NewService(seededRepo(), &stubBlobStore{})

	updated, err := svc.UpdateProfile(context.Background(), "u1", &model.UpdateProfileRequest{
		FullName: strPtr("Ana C. Reyes"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana C. Reyes", updated.FullName)
	// Omitted fields are untouched.
	assert.Equal(t, "+639171234567", updated.PhoneNumber)
}

func TestUploadAvatar(t *testing.T) {
	repo := seededRepo()
	blobs := &stubBlobStore{}
	svc := NewService(repo, blobs)

	updated, err := svc.UploadAvatar(context.Background(), "u1", "portrait.png", strings.NewReader("img"))
	require.NoError(t, err)

	assert.Equal(t, "avatars/u1.png", blobs.lastPath)
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, "/uploads/avatars/u1.png", *updated.AvatarURL)

	// The returned record is the persisted one.
	stored, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, updated.AvatarURL, stored.AvatarURL)
}

func TestUploadAvatarBlobFailureLeavesProfile(t *testing.T) {
	repo := seededRepo()
	svc := NewService(repo, &stubBlobStore{failure: errors.New("disk full")})

	_, err := svc.UploadAvatar(context.Background(), "u1", "portrait.png", strings.NewReader("img"))
	require.Error(t, err)

	stored, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, stored.AvatarURL)
}

func TestUploadAvatarUnknownUser(t *testing.T) {
	svc := NewService(seededRepo(), &stubBlobStore{})

	_, err := svc.UploadAvatar(context.Background(), "missing", "portrait.png", strings.NewReader("img"))
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
