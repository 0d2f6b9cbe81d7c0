package service

import (
	"context"
	"fmt"
	"io"
)

// AvatarStore uploads one image and returns its hosted URL.
type AvatarStore interface {
	UploadImage(ctx context.Context, filename string, image io.Reader) (string, error)
}

// UploadService hands uploaded media to the configured image host.
type UploadService struct {
	store AvatarStore
}

// NewUploadService creates a new upload service
func NewUploadService(store AvatarStore) *UploadService {
	return &UploadService{store: store}
}

// Avatar uploads a profile image and returns its hosted URL.
func (s *UploadService) Avatar(ctx context.Context, filename string, image io.Reader) (string, error) {
	url, err := s.store.UploadImage(ctx, filename, image)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return url, nil
}
