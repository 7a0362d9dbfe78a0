package photos

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int
		wantErr     error
	}{
		{"jpeg", "image/jpeg", 1024, nil},
		{"png", "image/png", 1024, nil},
		{"webp", "image/webp", 1024, nil},
		{"at limit", "image/jpeg", MaxBytes, nil},
		{"gif", "image/gif", 1024, ErrInvalidType},
		{"svg", "image/svg+xml", 1024, ErrInvalidType},
		{"empty type", "", 1024, ErrInvalidType},
		{"zero size", "image/jpeg", 0, ErrTooLarge},
		{"over limit", "image/jpeg", MaxBytes + 1, ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.contentType, tt.size)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate(%q, %d) = %v, want %v", tt.contentType, tt.size, err, tt.wantErr)
			}
		})
	}
}

func TestMockUploadAndDelete(t *testing.T) {
	m := NewMockService()
	ctx := context.Background()

	url, err := m.Upload(ctx, "u1", "image/png", []byte("data"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("expected .png suffix, got %s", url)
	}
	if m.Stored() != 1 {
		t.Errorf("expected 1 object, got %d", m.Stored())
	}

	if err := m.Delete(ctx, url); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if m.Stored() != 0 {
		t.Errorf("expected 0 objects after delete, got %d", m.Stored())
	}
	if err := m.Delete(ctx, url); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete should return ErrNotFound, got %v", err)
	}
}

func TestMockUploadRejectsInvalidInput(t *testing.T) {
	m := NewMockService()

	if _, err := m.Upload(context.Background(), "u1", "image/gif", []byte("x")); !errors.Is(err, ErrInvalidType) {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}
	if m.Stored() != 0 {
		t.Errorf("rejected upload must not store anything, got %d", m.Stored())
	}
}

func TestObjectNameFromURL(t *testing.T) {
	name := "profile-photos/u1/abc.jpg"
	url := downloadURL("my-bucket", name, "tok-1")

	got, err := objectNameFromURL(url)
	if err != nil {
		t.Fatalf("objectNameFromURL: %v", err)
	}
	if got != name {
		t.Errorf("round-trip = %q, want %q", got, name)
	}
}

func TestObjectNameFromURLRejectsForeignURL(t *testing.T) {
	if _, err := objectNameFromURL("https://example.com/not-a-photo"); err == nil {
		t.Error("expected error for URL without object path")
	}
}
