package scan

import (
	"time"

	"github.com/google/uuid"

	"github.com/renaqiu/stylematch/internal/domain/closet"
	"github.com/renaqiu/stylematch/internal/domain/matching"
	"github.com/renaqiu/stylematch/internal/domain/outfits"
	"github.com/renaqiu/stylematch/internal/domain/render"
	"github.com/renaqiu/stylematch/internal/domain/verdict"
	"github.com/renaqiu/stylematch/pkg/metrics"
)

// Request carries the finished record produced by the upstream image
// analysis. The core performs no inference of its own.
type Request struct {
	Item closet.ScannedItem `json:"item"`
}

// Response aggregates everything one results screen needs.
type Response struct {
	ScanID      uuid.UUID                 `json:"scanId"`
	Confidence  matching.ConfidenceResult `json:"confidence"`
	Verdict     verdict.Result            `json:"verdict"`
	WearNow     outfits.Result            `json:"wearNow"`
	WorthTrying outfits.Result            `json:"worthTrying"`
	Render      render.RenderModel        `json:"render"`
	Tabs        render.TabsState          `json:"tabs"`
	Summary     metrics.ScanSummary       `json:"summary"`
}

// SaveRequest persists the verdict of a scan the user chose to keep.
type SaveRequest struct {
	ScanID   uuid.UUID       `json:"scanId"`
	Category closet.Category `json:"category"`
	UIState  verdict.UIState `json:"verdictUIState"`
}

// SavedScan is the stored verdict record. Deliberately small: when the user
// unsaves, only the UI state is needed to restore a representative outcome.
type SavedScan struct {
	ScanID   uuid.UUID       `json:"scanId"`
	Category closet.Category `json:"category"`
	UIState  verdict.UIState `json:"verdictUIState"`
	SavedAt  time.Time       `json:"savedAt"`
}

// TrendingStyle is a frequently scanned style tag.
type TrendingStyle struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// Config holds runtime knobs for the scan service.
type Config struct {
	SavedScanTTL  time.Duration
	TrendingCount int
}
