package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/renaqiu/stylematch/internal/domain/closet"
)

// unknownSignalScore is the neutral contribution used when a signal is
// missing on either side, so incomplete records degrade instead of failing.
const unknownSignalScore = 0.5

const scoreEpsilon = 1e-9

// Engine scores every owned item against a scanned item. Pure and
// synchronous: no I/O, no clock, no internal state beyond the config.
type Engine struct {
	cfg Config
}

// NewEngine constructs an engine with the given scoring constants.
func NewEngine(cfg Config) *Engine {
	if cfg.HighThreshold <= 0 || cfg.MediumThreshold <= 0 || cfg.MediumThreshold >= cfg.HighThreshold {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg}
}

// Evaluate produces the full confidence result for one scanned item against
// a wardrobe snapshot. Total over any wardrobe size including zero.
func (e *Engine) Evaluate(scanned closet.ScannedItem, wardrobe []closet.WardrobeItem) ConfidenceResult {
	if _, ok := closet.ParseCategory(string(scanned.Category)); !ok || !scanned.IsFashionItem {
		return ConfidenceResult{
			Evaluated:         false,
			SuggestionsMode:   SuggestionsModeNone,
			MatchedCategories: CoverageSet{},
			CategoryCounts:    map[closet.Category]int{},
		}
	}

	counts := make(map[closet.Category]int, len(wardrobe))
	evaluations := make([]PairEvaluation, 0, len(wardrobe))
	for _, item := range wardrobe {
		if _, ok := closet.ParseCategory(string(item.Category)); !ok {
			continue
		}
		counts[item.Category]++
		score := e.scorePair(scanned, item)
		evaluations = append(evaluations, PairEvaluation{
			Item:        item,
			RawScore:    score,
			Tier:        e.tierFor(score),
			Explanation: explanationFor(e.tierFor(score), item.Category),
		})
	}

	ordered := orderEvaluations(evaluations)

	var matches, nearMatches []PairEvaluation
	coverage := CoverageSet{}
	for _, ev := range ordered {
		switch ev.Tier {
		case TierHigh:
			matches = append(matches, ev)
			if ev.Item.Category.IsCore() {
				coverage[ev.Item.Category] = true
			}
		case TierMedium:
			nearMatches = append(nearMatches, ev)
		}
	}

	result := ConfidenceResult{
		Evaluated:          true,
		Matches:            matches,
		NearMatches:        nearMatches,
		NearMatchCount:     len(nearMatches),
		ShowMatchesSection: len(matches) > 0,
		DebugTier:          bestTier(ordered),
		MatchedCategories:  coverage,
		CategoryCounts:     counts,
	}
	result.UIVibeForCopy = vibeFor(result.DebugTier, len(wardrobe))

	if len(matches) > 0 || len(wardrobe) == 0 {
		result.SuggestionsMode = SuggestionsModeA
		bullets := modeABullets(scanned)
		bullets = FilterCovered(bullets, coverage)
		if max := e.cfg.MaxSuggestions; max > 0 && len(bullets) > max {
			bullets = bullets[:max]
		}
		result.ModeASuggestions = &Suggestions{Bullets: bullets}
	} else {
		result.SuggestionsMode = SuggestionsModeNone
	}

	return result
}

// scorePair computes the bounded raw score for one pair. When the owned or
// scanned record lacks style/formality metadata, the score falls back to
// category and color only.
func (e *Engine) scorePair(scanned closet.ScannedItem, item closet.WardrobeItem) float64 {
	w := e.cfg.Weights
	category := categoryAffinity(scanned.Category, item.Category)
	color := colorCompatibility(scanned.Colors, item.Colors)

	hasStyle := scanned.Match.StyleFamily != "" && item.Match.StyleFamily != ""
	hasFormality := scanned.Match.Formality > 0 && item.Match.Formality > 0
	if !hasStyle && !hasFormality {
		total := w.Category + w.Color
		if total <= 0 {
			return clamp01(category)
		}
		return clamp01((w.Category*category + w.Color*color) / total)
	}

	style := unknownSignalScore
	if hasStyle {
		style = styleFamilyAlignment(scanned.Match.StyleFamily, item.Match.StyleFamily)
	}
	formality := unknownSignalScore
	if hasFormality {
		formality = formalityProximity(scanned.Match.Formality, item.Match.Formality)
	}

	total := w.Category + w.Color + w.Style + w.Formality
	if total <= 0 {
		return clamp01(category)
	}
	score := (w.Category*category + w.Color*color + w.Style*style + w.Formality*formality) / total
	return clamp01(score)
}

func (e *Engine) tierFor(score float64) Tier {
	switch {
	case score >= e.cfg.HighThreshold:
		return TierHigh
	case score >= e.cfg.MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// orderEvaluations sorts by score descending. Ties prefer items whose core
// category is not yet represented earlier in the ordering, which keeps
// downstream combo assembly maximally productive; remaining ties fall back
// to item id so output is reproducible.
func orderEvaluations(evaluations []PairEvaluation) []PairEvaluation {
	sorted := append([]PairEvaluation(nil), evaluations...)
	sort.Slice(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].RawScore-sorted[j].RawScore) > scoreEpsilon {
			return sorted[i].RawScore > sorted[j].RawScore
		}
		return sorted[i].Item.ID.String() < sorted[j].Item.ID.String()
	})

	out := make([]PairEvaluation, 0, len(sorted))
	covered := map[closet.Category]bool{}
	for len(sorted) > 0 {
		// Collect the group tied with the current best score.
		groupEnd := 1
		for groupEnd < len(sorted) && math.Abs(sorted[groupEnd].RawScore-sorted[0].RawScore) <= scoreEpsilon {
			groupEnd++
		}
		group := sorted[:groupEnd]
		pick := 0
		for i, ev := range group {
			if ev.Item.Category.IsCore() && !covered[ev.Item.Category] {
				pick = i
				break
			}
		}
		chosen := group[pick]
		out = append(out, chosen)
		if chosen.Item.Category.IsCore() {
			covered[chosen.Item.Category] = true
		}
		sorted = append(sorted[:pick], sorted[pick+1:]...)
	}
	return out
}

func bestTier(ordered []PairEvaluation) *Tier {
	if len(ordered) == 0 {
		return nil
	}
	best := TierLow
	for _, ev := range ordered {
		switch ev.Tier {
		case TierHigh:
			best = TierHigh
		case TierMedium:
			if best != TierHigh {
				best = TierMedium
			}
		}
	}
	return &best
}

func vibeFor(tier *Tier, wardrobeCount int) string {
	if wardrobeCount == 0 {
		return "fresh_start"
	}
	if tier == nil {
		return "exploratory"
	}
	switch *tier {
	case TierHigh:
		return "confident"
	case TierMedium:
		return "encouraging"
	default:
		return "exploratory"
	}
}

func explanationFor(tier Tier, category closet.Category) string {
	switch tier {
	case TierHigh:
		return fmt.Sprintf("pairs cleanly with this %s", category.Noun())
	case TierMedium:
		return fmt.Sprintf("could work with this %s after a styling tweak", category.Noun())
	default:
		return ""
	}
}

// categoryAffinity scores how naturally two categories share an outfit.
// Symmetric; same-category pairs score low because they compete for the
// same slot rather than completing one another.
func categoryAffinity(a, b closet.Category) float64 {
	if a == b {
		switch a {
		case closet.CategoryTops:
			return 0.3
		case closet.CategoryOuterwear, closet.CategoryBags, closet.CategoryAccessories:
			return 0.4
		default:
			return 0.1
		}
	}
	if v, ok := pairAffinity[pairKey(a, b)]; ok {
		return v
	}
	return 0.2
}

func pairKey(a, b closet.Category) string {
	if a > b {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}

var pairAffinity = map[string]float64{
	pairKey(closet.CategoryTops, closet.CategoryBottoms):          1.0,
	pairKey(closet.CategoryTops, closet.CategorySkirts):           1.0,
	pairKey(closet.CategoryTops, closet.CategoryShoes):            0.85,
	pairKey(closet.CategoryTops, closet.CategoryOuterwear):        0.8,
	pairKey(closet.CategoryTops, closet.CategoryBags):             0.7,
	pairKey(closet.CategoryTops, closet.CategoryAccessories):      0.7,
	pairKey(closet.CategoryTops, closet.CategoryDresses):          0.15,
	pairKey(closet.CategoryBottoms, closet.CategoryShoes):         0.85,
	pairKey(closet.CategoryBottoms, closet.CategoryOuterwear):     0.75,
	pairKey(closet.CategoryBottoms, closet.CategoryBags):          0.7,
	pairKey(closet.CategoryBottoms, closet.CategoryAccessories):   0.7,
	pairKey(closet.CategoryBottoms, closet.CategoryDresses):       0.1,
	pairKey(closet.CategoryBottoms, closet.CategorySkirts):        0.15,
	pairKey(closet.CategoryDresses, closet.CategoryShoes):         0.95,
	pairKey(closet.CategoryDresses, closet.CategoryOuterwear):     0.8,
	pairKey(closet.CategoryDresses, closet.CategoryBags):          0.75,
	pairKey(closet.CategoryDresses, closet.CategoryAccessories):   0.75,
	pairKey(closet.CategoryDresses, closet.CategorySkirts):        0.1,
	pairKey(closet.CategorySkirts, closet.CategoryShoes):          0.85,
	pairKey(closet.CategorySkirts, closet.CategoryOuterwear):      0.75,
	pairKey(closet.CategorySkirts, closet.CategoryBags):           0.7,
	pairKey(closet.CategorySkirts, closet.CategoryAccessories):    0.7,
	pairKey(closet.CategoryShoes, closet.CategoryOuterwear):       0.7,
	pairKey(closet.CategoryShoes, closet.CategoryBags):            0.65,
	pairKey(closet.CategoryShoes, closet.CategoryAccessories):     0.65,
	pairKey(closet.CategoryOuterwear, closet.CategoryBags):        0.6,
	pairKey(closet.CategoryOuterwear, closet.CategoryAccessories): 0.6,
	pairKey(closet.CategoryBags, closet.CategoryAccessories):      0.55,
}

// styleAdjacency maps each style family to the families it blends with.
var styleAdjacency = map[string][]string{
	"casual":   {"sporty", "minimal", "boho"},
	"classic":  {"minimal", "formal", "romantic"},
	"sporty":   {"casual", "minimal"},
	"edgy":     {"minimal", "sporty"},
	"romantic": {"classic", "boho"},
	"formal":   {"classic", "minimal"},
	"boho":     {"casual", "romantic"},
	"minimal":  {"casual", "classic", "sporty", "edgy", "formal"},
}

func styleFamilyAlignment(a, b string) float64 {
	fa := strings.ToLower(strings.TrimSpace(a))
	fb := strings.ToLower(strings.TrimSpace(b))
	if fa == "" || fb == "" {
		return unknownSignalScore
	}
	if fa == fb {
		return 1
	}
	for _, adjacent := range styleAdjacency[fa] {
		if adjacent == fb {
			return 0.65
		}
	}
	return 0.25
}

// formalityProximity compares two 1..5 formality levels.
func formalityProximity(a, b int) float64 {
	diff := math.Abs(float64(a - b))
	if diff > 4 {
		diff = 4
	}
	return 1 - diff/4
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
