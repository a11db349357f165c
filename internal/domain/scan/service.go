package scan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/renaqiu/stylematch/internal/domain/closet"
	"github.com/renaqiu/stylematch/internal/domain/matching"
	"github.com/renaqiu/stylematch/internal/domain/outfits"
	"github.com/renaqiu/stylematch/internal/domain/render"
	"github.com/renaqiu/stylematch/internal/domain/verdict"
	apperrors "github.com/renaqiu/stylematch/pkg/errors"
	"github.com/renaqiu/stylematch/pkg/metrics"
)

// Service orchestrates the matching pipeline around one scan.
type Service interface {
	EvaluateScan(ctx context.Context, req Request) (Response, error)
	SaveScan(ctx context.Context, req SaveRequest) error
	UnsaveScan(ctx context.Context, scanID uuid.UUID) (verdict.Outcome, error)
	TrendingStyles(ctx context.Context) ([]TrendingStyle, error)
}

type service struct {
	cfg    Config
	engine *matching.Engine
	repo   closet.Repository
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the scan domain.
func NewService(cfg Config, engine *matching.Engine, repo closet.Repository, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		engine: engine,
		repo:   repo,
		store:  store,
		logger: logger.With("component", "scan.service"),
		now:    time.Now,
	}
}

// EvaluateScan runs the full pipeline: score the wardrobe, classify the
// item, assemble both combo passes, then project the render model. The
// pipeline itself is pure; this layer only adds the wardrobe snapshot,
// logging and trending counters.
func (s *service) EvaluateScan(ctx context.Context, req Request) (Response, error) {
	item := req.Item
	if _, ok := closet.ParseCategory(string(item.Category)); !ok {
		return Response{}, apperrors.Wrap("invalid_input", fmt.Sprintf("unknown category %q", item.Category), nil)
	}

	wardrobe, err := s.repo.List(ctx)
	if err != nil {
		return Response{}, apperrors.Wrap("wardrobe_error", "failed to load wardrobe snapshot", err)
	}

	confidence := s.engine.Evaluate(item, wardrobe)
	classification := verdict.Classify(verdict.Input{
		Category:          item.Category,
		Signals:           item.Signals,
		FitPreference:     item.FitPreference,
		ContextSufficient: item.ContextSufficient,
		WardrobeCount:     len(wardrobe),
	})

	wearNow := outfits.Assemble(item, confidence, outfits.FloorHigh, render.MaxCombosSingleTab)
	worthTrying := outfits.Assemble(item, confidence, outfits.FloorHighAndMedium, render.MaxCombosSingleTab)

	scanID := uuid.New()
	resp := Response{
		ScanID:      scanID,
		Confidence:  confidence,
		Verdict:     classification,
		WearNow:     wearNow,
		WorthTrying: worthTrying,
		Render:      render.BuildRenderModel(confidence, len(wardrobe), wardrobe),
		Tabs: render.BuildTabsState(scanID, confidence, render.ComboResults{
			High: wearNow,
			Near: worthTrying,
		}, wardrobe, nil),
	}
	resp.Summary = metrics.ScanSummary{
		HighMatches:   len(confidence.Matches),
		NearMatches:   confidence.NearMatchCount,
		WearNowCombos: len(wearNow.Combos),
		Outcome:       string(classification.Outcome),
		DebugTier:     debugTierLabel(confidence),
	}

	s.recordStyleTags(ctx, item.StyleTags)
	s.logger.Info("scan evaluated",
		"scan_id", scanID,
		"category", item.Category,
		"outcome", classification.Outcome,
		"high_matches", resp.Summary.HighMatches,
		"near_matches", resp.Summary.NearMatches,
		"wear_now_combos", resp.Summary.WearNowCombos,
	)
	return resp, nil
}

// SaveScan persists the verdict record so it can be restored after unsave.
func (s *service) SaveScan(ctx context.Context, req SaveRequest) error {
	if req.ScanID == uuid.Nil {
		return apperrors.Wrap("invalid_input", "scan id is required", nil)
	}
	if _, ok := verdict.RepresentativeOutcome(req.UIState); !ok {
		return apperrors.Wrap("invalid_input", fmt.Sprintf("unknown verdict state %q", req.UIState), nil)
	}
	record := SavedScan{
		ScanID:   req.ScanID,
		Category: req.Category,
		UIState:  req.UIState,
		SavedAt:  s.now().UTC(),
	}
	if err := s.store.SaveVerdict(ctx, record, s.cfg.SavedScanTTL); err != nil {
		return apperrors.Wrap("scan_error", "failed to save scan", err)
	}
	s.logger.Info("scan saved", "scan_id", req.ScanID, "verdict_state", req.UIState)
	return nil
}

// UnsaveScan deletes the saved record and restores a representative outcome
// through the fixed reverse table; the original classification inputs are
// no longer available at this point.
func (s *service) UnsaveScan(ctx context.Context, scanID uuid.UUID) (verdict.Outcome, error) {
	record, found, err := s.store.GetVerdict(ctx, scanID)
	if err != nil {
		return "", apperrors.Wrap("scan_error", "failed to load saved scan", err)
	}
	if !found {
		return "", apperrors.Wrap("not_found", "scan is not saved", nil)
	}
	if err := s.store.DeleteVerdict(ctx, scanID); err != nil {
		return "", apperrors.Wrap("scan_error", "failed to unsave scan", err)
	}
	outcome, ok := verdict.RepresentativeOutcome(record.UIState)
	if !ok {
		return "", apperrors.Wrap("scan_error", fmt.Sprintf("stored verdict state %q has no outcome", record.UIState), nil)
	}
	s.logger.Info("scan unsaved", "scan_id", scanID, "restored_outcome", outcome)
	return outcome, nil
}

func (s *service) TrendingStyles(ctx context.Context) ([]TrendingStyle, error) {
	styles, err := s.store.TopStyleTags(ctx, s.cfg.TrendingCount)
	if err != nil {
		return nil, apperrors.Wrap("scan_error", "failed to load trending styles", err)
	}
	return styles, nil
}

func (s *service) recordStyleTags(ctx context.Context, tags []string) {
	for _, tag := range tags {
		canonical := normalizeTag(tag)
		if canonical == "" {
			continue
		}
		if err := s.store.IncrementStyleTag(ctx, canonical, strings.TrimSpace(tag)); err != nil {
			s.logger.Warn("style tag increment failed", "tag", canonical, "error", err)
			return
		}
	}
}

func debugTierLabel(conf matching.ConfidenceResult) string {
	if conf.DebugTier == nil {
		return ""
	}
	return string(*conf.DebugTier)
}

// normalizeTag lowercases a style tag and collapses punctuation to single
// spaces so "Y2K-revival" and "y2k revival" count together.
func normalizeTag(tag string) string {
	lowered := strings.ToLower(strings.TrimSpace(tag))
	var builder strings.Builder
	builder.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(builder.String())
}
