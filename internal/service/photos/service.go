// Package photos stores profile photos in the Firebase Storage default
// bucket and hands back stable download URLs.
package photos

import (
	"context"
	"errors"
)

// Service errors
var (
	ErrInvalidType = errors.New("unsupported photo content type")
	ErrTooLarge    = errors.New("photo exceeds maximum size")
	ErrNotFound    = errors.New("photo not found")
)

// MaxBytes is the photo size ceiling, enforced before any network call.
const MaxBytes = 5 << 20

// extensions maps accepted MIME types to object name extensions.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Validate checks content type and size locally. Upload implementations call
// it before touching the bucket; handlers may call it earlier to fail fast.
func Validate(contentType string, size int) error {
	if _, ok := extensions[contentType]; !ok {
		return ErrInvalidType
	}
	if size <= 0 || size > MaxBytes {
		return ErrTooLarge
	}
	return nil
}

// Service defines photo storage operations.
type Service interface {
	// Upload validates and stores one photo for the user, returning the
	// object's stable URL.
	Upload(ctx context.Context, uid, contentType string, data []byte) (string, error)
	// Delete removes a previously uploaded object by its URL. Used as
	// compensating cleanup when a submission half-fails.
	Delete(ctx context.Context, objectURL string) error
}
