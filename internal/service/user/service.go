package user

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/repository"
	"github.com/nekkositon/booking-api/pkg/storage"
)

type Service struct {
	repo  repository.UserRepository
	blobs storage.BlobStore
}

func NewService(repo repository.UserRepository, blobs storage.BlobStore) *Service {
	return &Service{repo: repo, blobs: blobs}
}

func (s *Service) Get(ctx context.Context, id string) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

// UpdateProfile updates the editable profile fields and returns the stored
// row, which is the complete next state for the profile.
func (s *Service) UpdateProfile(ctx context.Context, id string, req *model.UpdateProfileRequest) (*model.User, error) {
	return s.repo.UpdateProfile(ctx, id, req.FullName, req.PhoneNumber)
}

// UploadAvatar stores the image and persists its reference. The caller gets
// the record returned by the successful write, not a locally patched copy.
func (s *Service) UploadAvatar(ctx context.Context, id, filename string, r io.Reader) (*model.User, error) {
	objectPath := path.Join("avatars", fmt.Sprintf("%s%s", id, path.Ext(filename)))
	url, err := s.blobs.Upload(ctx, objectPath, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}
	return s.repo.UpdateAvatar(ctx, id, url)
}
