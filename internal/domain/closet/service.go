package closet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/renaqiu/stylematch/pkg/errors"
)

// Config holds runtime knobs for the wardrobe service.
type Config struct {
	// SimilarityThreshold is the maximum color-signature distance at which
	// an existing item is flagged as a likely duplicate on add.
	SimilarityThreshold float64
}

// AddItemRequest carries a new owned item plus an optional photo.
type AddItemRequest struct {
	Category  string       `json:"category"`
	Colors    []Color      `json:"colors"`
	StyleTags []string     `json:"styleTags"`
	Match     MatchSignals `json:"matchSignals"`
	// ColorVector is the color-signature embedding computed upstream.
	ColorVector []float32 `json:"colorVector,omitempty"`
	ImageData   []byte    `json:"-"`
	ImageMime   string    `json:"-"`
}

// AddItemResult reports the stored item and, when the closet already holds
// something visually close, the nearest owned item.
type AddItemResult struct {
	Item         WardrobeItem  `json:"item"`
	SimilarOwned *WardrobeItem `json:"similarOwned,omitempty"`
	Distance     float64       `json:"distance,omitempty"`
}

// Service manages the owned-item collection.
type Service interface {
	Snapshot(ctx context.Context) ([]WardrobeItem, error)
	AddItem(ctx context.Context, req AddItemRequest) (AddItemResult, error)
	RemoveItem(ctx context.Context, id uuid.UUID) error
}

type service struct {
	cfg    Config
	repo   Repository
	images ImageStore
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the wardrobe domain.
func NewService(cfg Config, repo Repository, images ImageStore, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		images: images,
		logger: logger.With("component", "closet.service"),
		now:    time.Now,
	}
}

func (s *service) Snapshot(ctx context.Context) ([]WardrobeItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("wardrobe_error", "failed to load wardrobe snapshot", err)
	}
	return items, nil
}

func (s *service) AddItem(ctx context.Context, req AddItemRequest) (AddItemResult, error) {
	category, ok := ParseCategory(strings.TrimSpace(req.Category))
	if !ok {
		return AddItemResult{}, apperrors.Wrap("invalid_input", fmt.Sprintf("unknown category %q", req.Category), nil)
	}
	if len(req.Colors) == 0 {
		return AddItemResult{}, apperrors.Wrap("invalid_input", "at least one color is required", nil)
	}

	item := WardrobeItem{
		ID:          uuid.New(),
		Category:    category,
		Colors:      req.Colors,
		StyleTags:   req.StyleTags,
		Match:       req.Match,
		ColorVector: req.ColorVector,
		AddedAt:     s.now().UTC(),
	}

	if len(req.ImageData) > 0 {
		key := fmt.Sprintf("closet/%s/%s", category, item.ID)
		stored, err := s.images.Put(ctx, key, req.ImageData, req.ImageMime)
		if err != nil {
			return AddItemResult{}, apperrors.Wrap("wardrobe_error", "failed to store item photo", err)
		}
		item.ImageKey = stored.Key
	}

	result := AddItemResult{}
	if len(req.ColorVector) > 0 {
		match, found, err := s.repo.FindSimilar(ctx, req.ColorVector)
		if err != nil {
			s.logger.Warn("similarity lookup failed", "error", err)
		} else if found && match.Distance <= s.cfg.SimilarityThreshold {
			owned := match.Item
			result.SimilarOwned = &owned
			result.Distance = match.Distance
		}
	}

	saved, err := s.repo.Insert(ctx, item)
	if err != nil {
		return AddItemResult{}, apperrors.Wrap("wardrobe_error", "failed to save item", err)
	}
	result.Item = saved
	s.logger.Info("wardrobe item added", "id", saved.ID, "category", saved.Category)
	return result, nil
}

func (s *service) RemoveItem(ctx context.Context, id uuid.UUID) error {
	imageKey := s.imageKeyFor(ctx, id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Wrap("wardrobe_error", "failed to remove item", err)
	}
	if imageKey != "" {
		// The item record is already gone; an orphaned photo is not worth
		// failing the request over.
		if err := s.images.Delete(ctx, imageKey); err != nil {
			s.logger.Warn("item photo cleanup failed", "id", id, "key", imageKey, "error", err)
		}
	}
	s.logger.Info("wardrobe item removed", "id", id)
	return nil
}

func (s *service) imageKeyFor(ctx context.Context, id uuid.UUID) string {
	items, err := s.repo.List(ctx)
	if err != nil {
		return ""
	}
	for _, item := range items {
		if item.ID == id {
			return item.ImageKey
		}
	}
	return ""
}
