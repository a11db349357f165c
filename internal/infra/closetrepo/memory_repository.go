package closetrepo

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/renaqiu/stylematch/internal/domain/closet"
)

// MemoryRepository is an in-memory closet.Repository used for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]closet.WardrobeItem
	order []uuid.UUID
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]closet.WardrobeItem)}
}

// List implements closet.Repository.
func (r *MemoryRepository) List(_ context.Context) ([]closet.WardrobeItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]closet.WardrobeItem, 0, len(r.order))
	for _, id := range r.order {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// Insert implements closet.Repository.
func (r *MemoryRepository) Insert(_ context.Context, item closet.WardrobeItem) (closet.WardrobeItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[item.ID]; !exists {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = item
	return item, nil
}

// Delete implements closet.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindSimilar implements closet.Repository with a linear scan.
func (r *MemoryRepository) FindSimilar(_ context.Context, vector []float32) (closet.SimilarityMatch, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := append([]uuid.UUID(nil), r.order...)
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	var (
		best   closet.SimilarityMatch
		hasAny bool
	)
	for _, id := range ids {
		candidate := r.items[id]
		if len(candidate.ColorVector) == 0 {
			continue
		}
		dist := euclideanDistance(vector, candidate.ColorVector)
		if !hasAny || dist < best.Distance {
			hasAny = true
			best = closet.SimilarityMatch{Item: candidate, Distance: dist}
		}
	}
	if !hasAny {
		return closet.SimilarityMatch{}, false, nil
	}
	return best, true, nil
}

func euclideanDistance(a, b []float32) float64 {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	var sum float64
	for i := 0; i < length; i++ {
		diff := float64(a[i] - b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

var _ closet.Repository = (*MemoryRepository)(nil)
