package imagestore

import (
	"context"
	"sync"

	"github.com/renaqiu/stylematch/internal/domain/closet"
)

type memoryObject struct {
	data     []byte
	mimeType string
}

// MemoryStorage holds photos in process memory for tests/dev.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryStorage constructs the in-memory adapter.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]memoryObject)}
}

// Put implements closet.ImageStore.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, mimeType string) (closet.StoredImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memoryObject{data: append([]byte(nil), data...), mimeType: mimeType}
	return closet.StoredImage{Key: key, Size: int64(len(data)), MimeType: mimeType}, nil
}

// Delete implements closet.ImageStore.
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Len reports the number of stored photos; used by tests.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

var _ closet.ImageStore = (*MemoryStorage)(nil)
