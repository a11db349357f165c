package matching

import (
	"fmt"
	"strings"

	"github.com/renaqiu/stylematch/internal/domain/closet"
)

// suggestionTargets lists, per scanned category, the core categories a
// Mode A bullet may point the user toward.
var suggestionTargets = map[closet.Category][]closet.Category{
	closet.CategoryTops:        {closet.CategoryBottoms, closet.CategoryShoes},
	closet.CategoryBottoms:     {closet.CategoryTops, closet.CategoryShoes},
	closet.CategorySkirts:      {closet.CategoryTops, closet.CategoryShoes},
	closet.CategoryDresses:     {closet.CategoryShoes},
	closet.CategoryShoes:       {closet.CategoryTops, closet.CategoryBottoms},
	closet.CategoryOuterwear:   {closet.CategoryTops, closet.CategoryBottoms, closet.CategoryShoes},
	closet.CategoryBags:        {closet.CategoryTops, closet.CategoryBottoms, closet.CategoryShoes},
	closet.CategoryAccessories: {closet.CategoryTops, closet.CategoryBottoms, closet.CategoryShoes},
}

var targetAdjectives = map[closet.Category]string{
	closet.CategoryTops:    "simple",
	closet.CategoryBottoms: "structured",
	closet.CategoryShoes:   "versatile",
}

// modeABullets derives the generic category-targeted suggestions from the
// scanned item's signals alone.
func modeABullets(scanned closet.ScannedItem) []Bullet {
	var bullets []Bullet
	for _, target := range suggestionTargets[scanned.Category] {
		t := target
		adjective := targetAdjectives[target]
		if adjective == "" {
			adjective = "matching"
		}
		bullets = append(bullets, Bullet{
			Key:    "add_" + string(target),
			Target: &t,
			Text:   fmt.Sprintf("add a %s %s", adjective, target.Noun()),
		})
	}

	signals := scanned.Signals.Normalized()
	if signals.StylingRisk == closet.RiskHigh {
		bullets = append(bullets, Bullet{
			Key:  "keep_rest_simple",
			Text: "keep the rest of the look simple so this piece leads",
		})
	}
	if strings.EqualFold(signals.Silhouette, "oversized") || strings.EqualFold(signals.Silhouette, "loose") {
		bullets = append(bullets, Bullet{
			Key:  "balance_with_fitted",
			Text: "balance the volume with one fitted piece",
		})
	}
	return bullets
}

// FilterCovered removes bullets whose target category already holds a
// high-tier match. Idempotent, and never reduces a non-empty list to empty:
// an empty bullet list would hide an entire section, so a wardrobe that
// covers every target gets the free-play fallback instead.
func FilterCovered(bullets []Bullet, coverage CoverageSet) []Bullet {
	if len(bullets) == 0 {
		return bullets
	}
	kept := make([]Bullet, 0, len(bullets))
	for _, b := range bullets {
		if b.Target != nil && coverage.Covered(*b.Target) {
			continue
		}
		kept = append(kept, b)
	}
	if len(kept) == 0 {
		return []Bullet{{
			Key:  "styling_free_play",
			Text: "you already own everything this needs; have fun styling it",
		}}
	}
	return kept
}
