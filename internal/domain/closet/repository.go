package closet

import (
	"context"

	"github.com/google/uuid"
)

// SimilarityMatch is the closest owned item by color-signature distance.
type SimilarityMatch struct {
	Item     WardrobeItem
	Distance float64
}

// Repository encapsulates wardrobe persistence.
type Repository interface {
	List(ctx context.Context) ([]WardrobeItem, error)
	Insert(ctx context.Context, item WardrobeItem) (WardrobeItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindSimilar(ctx context.Context, vector []float32) (SimilarityMatch, bool, error)
}

// StoredImage describes an uploaded wardrobe photo.
type StoredImage struct {
	Key      string
	Size     int64
	MimeType string
	ETag     string
}

// ImageStore persists wardrobe item photos.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredImage, error)
	Delete(ctx context.Context, key string) error
}
