package photos

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	applog "github.com/zipparents/backend/internal/platform/logging"
)

const objectPrefix = "profile-photos"

// FirebaseStore implements Service against the Firebase Storage default
// bucket.
type FirebaseStore struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewFirebaseStore creates a bucket-backed photo store.
func NewFirebaseStore(bucket *storage.BucketHandle, bucketName string) *FirebaseStore {
	return &FirebaseStore{bucket: bucket, bucketName: bucketName}
}

// Upload validates the photo, writes it under profile-photos/{uid}/, and
// returns a tokenized Firebase download URL.
func (s *FirebaseStore) Upload(ctx context.Context, uid, contentType string, data []byte) (string, error) {
	if err := Validate(contentType, len(data)); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("%s/%s/%s%s", objectPrefix, uid, uuid.NewString(), extensions[contentType])
	token := uuid.NewString()

	w := s.bucket.Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write photo object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize photo object: %w", err)
	}

	applog.LogAuditEvent(ctx, "upload", uid, "photo", objectName, "success", nil)
	return downloadURL(s.bucketName, objectName, token), nil
}

// Delete removes the object a download URL points at.
func (s *FirebaseStore) Delete(ctx context.Context, objectURL string) error {
	objectName, err := objectNameFromURL(objectURL)
	if err != nil {
		return err
	}
	if err := s.bucket.Object(objectName).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete photo object: %w", err)
	}
	return nil
}

// downloadURL builds the stable Firebase-style download URL for an object.
func downloadURL(bucket, objectName, token string) string {
	return fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(objectName), token,
	)
}

// objectNameFromURL recovers the object name from a download URL.
func objectNameFromURL(objectURL string) (string, error) {
	u, err := url.Parse(objectURL)
	if err != nil {
		return "", fmt.Errorf("parse photo url: %w", err)
	}
	_, escaped, found := strings.Cut(u.Path, "/o/")
	if !found || escaped == "" {
		return "", errors.New("photo url has no object path")
	}
	name, err := url.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("unescape object path: %w", err)
	}
	return name, nil
}

// Compile-time interface check
var _ Service = (*FirebaseStore)(nil)
