package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// BlobStore uploads files under a caller-chosen path and returns a durable
// retrieval reference.
type BlobStore interface {
	Upload(ctx context.Context, objectPath string, r io.Reader) (string, error)
}

type fileStore struct {
	baseDir       string
	publicBaseURL string
}

// NewFileStore returns a BlobStore backed by the local filesystem. The
// returned references are publicBaseURL + "/" + objectPath.
func NewFileStore(baseDir, publicBaseURL string) (BlobStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &fileStore{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *fileStore) Upload(ctx context.Context, objectPath string, r io.Reader) (string, error) {
	clean := path.Clean("/" + objectPath)[1:]
	if clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}

	dst := filepath.Join(s.baseDir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.publicBaseURL + "/" + clean, nil
}
