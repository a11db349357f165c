package scan

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the persistence contract for saved verdicts and the
// trending style-tag counters.
type Store interface {
	SaveVerdict(ctx context.Context, record SavedScan, ttl time.Duration) error
	GetVerdict(ctx context.Context, scanID uuid.UUID) (SavedScan, bool, error)
	DeleteVerdict(ctx context.Context, scanID uuid.UUID) error
	IncrementStyleTag(ctx context.Context, canonical, display string) error
	TopStyleTags(ctx context.Context, limit int) ([]TrendingStyle, error)
}
