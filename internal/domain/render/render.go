// Package render turns the engine and assembler outputs into the single
// presentation-agnostic render model the UI reads. Pure projections only:
// visibility is decided here once and never re-derived downstream.
package render

import (
	"github.com/renaqiu/stylematch/internal/domain/closet"
	"github.com/renaqiu/stylematch/internal/domain/matching"
)

// UIState summarizes what the results screen should lead with.
type UIState string

const (
	StateMatches         UIState = "matches"
	StateNearMatchesOnly UIState = "near_matches_only"
	StateSuggestionsOnly UIState = "suggestions_only"
	StateRescan          UIState = "rescan"
)

// MatchesSection controls the matched-items section.
type MatchesSection struct {
	Visible     bool `json:"visible"`
	NearMatches int  `json:"nearMatches"`
}

// RenderModel is derived, never mutated; recomputed from the confidence
// result and wardrobe snapshot on every input change.
type RenderModel struct {
	UIState        UIState        `json:"uiState"`
	MatchesSection MatchesSection `json:"matchesSection"`
	ShowRescanCta  bool           `json:"showRescanCta"`
}

// BuildRenderModel projects the confidence result into the render model.
// The wardrobe snapshot may momentarily trail the persisted count after an
// add or delete; the larger of the two is trusted.
func BuildRenderModel(conf matching.ConfidenceResult, wardrobeCount int, wardrobe []closet.WardrobeItem) RenderModel {
	if len(wardrobe) > wardrobeCount {
		wardrobeCount = len(wardrobe)
	}

	hasHigh := conf.Evaluated && len(conf.Matches) > 0
	hasNear := conf.Evaluated && conf.NearMatchCount > 0
	hasSuggestions := conf.SuggestionsMode == matching.SuggestionsModeA &&
		conf.ModeASuggestions != nil && len(conf.ModeASuggestions.Bullets) > 0

	model := RenderModel{
		MatchesSection: MatchesSection{
			Visible:     hasHigh || hasNear,
			NearMatches: conf.NearMatchCount,
		},
	}

	switch {
	case hasHigh:
		model.UIState = StateMatches
	case hasNear:
		model.UIState = StateNearMatchesOnly
	case hasSuggestions:
		model.UIState = StateSuggestionsOnly
	default:
		// Last resort: no matches, no outfits, no suggestions. The rescan
		// call to action keeps the screen from being a dead end.
		model.UIState = StateRescan
		model.ShowRescanCta = true
	}

	return model
}
