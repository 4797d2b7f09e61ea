package domain

import (
	"context"
	"time"
)

const (
	DocumentUploadTTL   = 10 * time.Minute
	DocumentDownloadTTL = 5 * time.Minute
)

// UploadSlot is a presigned PUT target. The key is only stored on the
// employer after ConfirmUpload.
type UploadSlot struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}

type ObjectPresigner interface {
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration, disposition string) (string, error)
}

type DocumentUsecase interface {
	RequestUploadSlot(ctx context.Context, employerID, contentType string) (*UploadSlot, error)
	ConfirmUpload(ctx context.Context, employerID, key string) error
	GetViewURL(ctx context.Context, employerID string) (string, error)
	GetDownloadURL(ctx context.Context, employerID string) (string, error)
}
