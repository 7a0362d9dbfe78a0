package photos

import (
	"context"
	"fmt"
	"sync"
)

// MockService implements Service in memory for unit tests.
type MockService struct {
	mu      sync.Mutex
	objects map[string][]byte // URL -> data
	n       int

	// UploadErr / DeleteErr force failures for error-path tests.
	UploadErr error
	DeleteErr error
}

// NewMockService creates a new mock photo store.
func NewMockService() *MockService {
	return &MockService{objects: make(map[string][]byte)}
}

func (m *MockService) Upload(_ context.Context, uid, contentType string, data []byte) (string, error) {
	if err := Validate(contentType, len(data)); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	m.n++
	url := fmt.Sprintf("https://photos.test/%s/%d%s", uid, m.n, extensions[contentType])
	m.objects[url] = append([]byte(nil), data...)
	return url, nil
}

func (m *MockService) Delete(_ context.Context, objectURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.objects[objectURL]; !ok {
		return ErrNotFound
	}
	delete(m.objects, objectURL)
	return nil
}

// Stored reports how many objects the mock currently holds.
func (m *MockService) Stored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
