package storage

import (
	"context"
	"errors"
)

// UploadResult identifies a stored file
type UploadResult struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
}

// Service stores uploaded media on an external file host
type Service interface {
	Upload(ctx context.Context, data []byte, fileName, folder string) (*UploadResult, error)
	Delete(ctx context.Context, fileID string) error
	DeleteByURL(ctx context.Context, url string) error
}

// ErrNotConfigured is returned by NoopService for every operation.
var ErrNotConfigured = errors.New("file storage not configured")

// NoopService rejects all operations, used when no file host is configured
type NoopService struct{}

func (NoopService) Upload(ctx context.Context, data []byte, fileName, folder string) (*UploadResult, error) {
	return nil, ErrNotConfigured
}

func (NoopService) Delete(ctx context.Context, fileID string) error { return ErrNotConfigured }

func (NoopService) DeleteByURL(ctx context.Context, url string) error { return ErrNotConfigured }
