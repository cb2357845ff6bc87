package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"eventregistration/internal/clock"
	"eventregistration/internal/domain"
)

// ReceiptKeyPrefix namespaces receipt objects inside the bucket.
const ReceiptKeyPrefix = "receipts"

// ReceiptUploader stores payment receipts in the blob store.
type ReceiptUploader struct {
	store     domain.BlobStore
	clock     clock.Clock
	newSuffix func() string
}

// NewReceiptUploader returns an uploader writing to store.
func NewReceiptUploader(store domain.BlobStore, clk clock.Clock) *ReceiptUploader {
	return &ReceiptUploader{
		store:     store,
		clock:     clk,
		newSuffix: randomSuffix,
	}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ShouldUpload reports whether in carries a receipt that must be stored.
// In-person registrations and forms without a file never reach the store.
func (u *ReceiptUploader) ShouldUpload(in domain.RegistrationInput) bool {
	return in.EffectiveReceipt() != nil
}

// Key builds the object key for f: receipts/<unix millis>-<random>.<ext>.
func (u *ReceiptUploader) Key(f *domain.ReceiptFile) string {
	key := fmt.Sprintf("%s/%d-%s", ReceiptKeyPrefix, u.clock.Now().UnixMilli(), u.newSuffix())
	if ext := f.Ext(); ext != "" {
		key += "." + ext
	}
	return key
}

// Upload stores f and returns its public URL. Failures are *domain.UploadError.
func (u *ReceiptUploader) Upload(ctx context.Context, f *domain.ReceiptFile) (string, error) {
	key := u.Key(f)
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := u.store.Put(ctx, key, contentType, f.Data); err != nil {
		return "", &domain.UploadError{Key: key, Err: err}
	}
	return u.store.PublicURLFor(key), nil
}
