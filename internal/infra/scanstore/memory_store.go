package scanstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/renaqiu/stylematch/internal/domain/scan"
	"github.com/renaqiu/stylematch/pkg/util"
)

type verdictRecord struct {
	payload   scan.SavedScan
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the scan store for tests/dev.
type MemoryStore struct {
	mu       sync.RWMutex
	verdicts map[uuid.UUID]verdictRecord
	trending map[string]int64
	displays map[string]string
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		verdicts: make(map[uuid.UUID]verdictRecord),
		trending: make(map[string]int64),
		displays: make(map[string]string),
	}
}

// SaveVerdict keeps the verdict record with optional TTL.
func (s *MemoryStore) SaveVerdict(_ context.Context, record scan.SavedScan, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = util.NowUTC().Add(ttl)
	}
	s.verdicts[record.ScanID] = verdictRecord{payload: record, expiresAt: exp}
	return nil
}

// GetVerdict implements scan.Store.
func (s *MemoryStore) GetVerdict(_ context.Context, scanID uuid.UUID) (scan.SavedScan, bool, error) {
	s.mu.RLock()
	record, ok := s.verdicts[scanID]
	s.mu.RUnlock()
	if !ok {
		return scan.SavedScan{}, false, nil
	}
	if hasExpired(record.expiresAt) {
		s.mu.Lock()
		delete(s.verdicts, scanID)
		s.mu.Unlock()
		return scan.SavedScan{}, false, nil
	}
	return record.payload, true, nil
}

// DeleteVerdict implements scan.Store.
func (s *MemoryStore) DeleteVerdict(_ context.Context, scanID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.verdicts, scanID)
	return nil
}

// IncrementStyleTag bumps the counter for a canonical tag and records a
// display string.
func (s *MemoryStore) IncrementStyleTag(_ context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trending[canonical]++
	if _, exists := s.displays[canonical]; !exists {
		s.displays[canonical] = display
	}
	return nil
}

// TopStyleTags returns the most frequently scanned style tags.
func (s *MemoryStore) TopStyleTags(_ context.Context, limit int) ([]scan.TrendingStyle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.trending)
	}
	items := make([]scan.TrendingStyle, 0, len(s.trending))
	for canonical, count := range s.trending {
		display := s.displays[canonical]
		if display == "" {
			display = canonical
		}
		items = append(items, scan.TrendingStyle{Tag: display, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Tag < items[j].Tag
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(util.NowUTC())
}

var _ scan.Store = (*MemoryStore)(nil)
