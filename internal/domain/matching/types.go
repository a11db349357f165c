package matching

import (
	"github.com/renaqiu/stylematch/internal/domain/closet"
)

// Tier classifies how strongly an owned item pairs with the scanned item.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// SuggestionsMode identifies which suggestion surface is active.
type SuggestionsMode string

const (
	// SuggestionsModeA surfaces generic category-targeted styling bullets.
	SuggestionsModeA SuggestionsMode = "mode_a"
	// SuggestionsModeNone hides the suggestion surface entirely.
	SuggestionsModeNone SuggestionsMode = "none"
)

// PairEvaluation is the score of one owned item against the scanned item.
// Ephemeral: recomputed on every evaluation, never persisted.
type PairEvaluation struct {
	Item        closet.WardrobeItem `json:"item"`
	RawScore    float64             `json:"rawScore"`
	Tier        Tier                `json:"tier"`
	Explanation string              `json:"explanation,omitempty"`
}

// Bullet is a single Mode A suggestion. Key is stable and used by the copy
// collaborator to look up display strings; Target is nil for advice that is
// independent of the wardrobe.
type Bullet struct {
	Text   string           `json:"text"`
	Target *closet.Category `json:"target,omitempty"`
	Key    string           `json:"key"`
}

// Suggestions groups the active Mode A bullets.
type Suggestions struct {
	Bullets []Bullet `json:"bullets"`
}

// CoverageSet records which core categories hold at least one high-tier pair.
type CoverageSet map[closet.Category]bool

// Covered reports whether the category already has a high-tier match.
func (s CoverageSet) Covered(c closet.Category) bool {
	return s[c]
}

// Categories returns the covered categories in the stable enum order.
func (s CoverageSet) Categories() []closet.Category {
	out := make([]closet.Category, 0, len(s))
	for _, c := range closet.CoreCategories() {
		if s[c] {
			out = append(out, c)
		}
	}
	return out
}

// ConfidenceResult is the engine's full output for one scanned item against
// a wardrobe snapshot. Owned for the lifetime of a single render and
// recomputed whenever either input changes.
type ConfidenceResult struct {
	Evaluated          bool                     `json:"evaluated"`
	Matches            []PairEvaluation         `json:"matches"`
	NearMatches        []PairEvaluation         `json:"nearMatches"`
	NearMatchCount     int                      `json:"nearMatchCount"`
	ShowMatchesSection bool                     `json:"showMatchesSection"`
	DebugTier          *Tier                    `json:"debugTier"`
	SuggestionsMode    SuggestionsMode          `json:"suggestionsMode"`
	ModeASuggestions   *Suggestions             `json:"modeASuggestions"`
	UIVibeForCopy      string                   `json:"uiVibeForCopy"`
	MatchedCategories  CoverageSet              `json:"matchedCategories"`
	CategoryCounts     map[closet.Category]int  `json:"categoryCounts"`
}

// Weights distributes the scoring signal between the four comparisons.
type Weights struct {
	Category  float64 `yaml:"category"`
	Color     float64 `yaml:"color"`
	Style     float64 `yaml:"style"`
	Formality float64 `yaml:"formality"`
}

// Config holds the tunable scoring constants. The thresholds and weights
// are deliberately configuration, not contract; behavior is pinned by
// property tests instead of golden numbers.
type Config struct {
	HighThreshold   float64 `yaml:"highThreshold"`
	MediumThreshold float64 `yaml:"mediumThreshold"`
	MaxSuggestions  int     `yaml:"maxSuggestions"`
	Weights         Weights `yaml:"weights"`
}

// DefaultConfig returns the tuned scoring constants.
func DefaultConfig() Config {
	return Config{
		HighThreshold:   0.75,
		MediumThreshold: 0.45,
		MaxSuggestions:  3,
		Weights: Weights{
			Category:  0.35,
			Color:     0.30,
			Style:     0.20,
			Formality: 0.15,
		},
	}
}
