package outfits

import (
	"fmt"
	"strings"

	"github.com/renaqiu/stylematch/internal/domain/closet"
	"github.com/renaqiu/stylematch/internal/domain/matching"
)

// maxDecorationsPerCombo caps the optional-category add-ons attached to an
// assembled outfit.
const maxDecorationsPerCombo = 2

// Assemble builds complete combos around the scanned item from pairs at or
// above the tier floor, up to maxCombos. Pure and deterministic: the same
// inputs always produce the same combos in the same order.
func Assemble(scanned closet.ScannedItem, conf matching.ConfidenceResult, floor TierFloor, maxCombos int) Result {
	if !conf.Evaluated {
		return Result{EmptyReason: EmptyMissingCorePieces, MissingSlots: slotCategories(formulaFor(scanned.Category))}
	}
	if maxCombos <= 0 {
		maxCombos = 1
	}

	eligible := append([]matching.PairEvaluation(nil), conf.Matches...)
	if floor == FloorHighAndMedium {
		eligible = append(eligible, conf.NearMatches...)
	}

	formula := formulaFor(scanned.Category)
	options := make([][]matching.PairEvaluation, len(formula))
	for i, slot := range formula {
		options[i] = diversify(slotOptions(slot, eligible))
	}

	var missing []closet.Category
	for i, slot := range formula {
		if len(options[i]) == 0 {
			missing = append(missing, slot.Accepts[0])
		}
	}
	if len(missing) > 0 {
		return classifyEmpty(missing, formula, conf)
	}

	decorations := pickDecorations(eligible)

	width := 0
	for _, opts := range options {
		if len(opts) > width {
			width = len(opts)
		}
	}
	if width > maxCombos {
		width = maxCombos
	}

	combos := make([]Combo, 0, width)
	seen := map[string]bool{}
	for i := 0; i < width; i++ {
		slots := make([]SlotFill, len(formula))
		for j, slot := range formula {
			pick := options[j][i%len(options[j])]
			slots[j] = SlotFill{
				Slot:     slot.Name,
				Category: pick.Item.Category,
				Item:     pick.Item,
				Tier:     pick.Tier,
			}
		}
		id := comboID(slots)
		if seen[id.String()] {
			continue
		}
		seen[id.String()] = true
		combos = append(combos, Combo{
			ID:          id,
			Slots:       slots,
			Decorations: decorations,
		})
	}

	return Result{
		Combos:        combos,
		CanFormCombos: len(combos) > 0,
	}
}

// slotOptions filters the eligible pairs down to one slot, preserving the
// engine's ordering.
func slotOptions(slot Slot, eligible []matching.PairEvaluation) []matching.PairEvaluation {
	var out []matching.PairEvaluation
	for _, ev := range eligible {
		for _, accepts := range slot.Accepts {
			if ev.Item.Category == accepts {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

// diversify round-robins ranked options across distinct color buckets so
// consecutive combos differ by more than a near-identical swap. Seedless
// and deterministic: bucket order follows first appearance in rank order.
func diversify(ranked []matching.PairEvaluation) []matching.PairEvaluation {
	if len(ranked) < 3 {
		return ranked
	}
	var order []string
	buckets := map[string][]matching.PairEvaluation{}
	for _, ev := range ranked {
		key := colorBucket(ev.Item)
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], ev)
	}
	if len(order) == 1 {
		return ranked
	}
	out := make([]matching.PairEvaluation, 0, len(ranked))
	for round := 0; len(out) < len(ranked); round++ {
		for _, key := range order {
			if round < len(buckets[key]) {
				out = append(out, buckets[key][round])
			}
		}
	}
	return out
}

func colorBucket(item closet.WardrobeItem) string {
	if primary, ok := item.PrimaryColor(); ok && strings.TrimSpace(primary.Name) != "" {
		return strings.ToLower(strings.TrimSpace(primary.Name))
	}
	// No color data: fall back to an id bucket so the item still spreads.
	return "id:" + item.ID.String()[:8]
}

// pickDecorations selects at most one finishing touch per optional
// category, best score first.
func pickDecorations(eligible []matching.PairEvaluation) []closet.WardrobeItem {
	var out []closet.WardrobeItem
	for _, category := range closet.OptionalCategories() {
		for _, ev := range eligible {
			if ev.Item.Category == category {
				out = append(out, ev.Item)
				break
			}
		}
		if len(out) == maxDecorationsPerCombo {
			break
		}
	}
	return out
}

// classifyEmpty decides which empty-reason variant applies. If any missing
// slot has no owned item at all the closet itself is the gap; otherwise
// pieces exist but nothing cleared the floor. Never both.
func classifyEmpty(missing []closet.Category, formula []Slot, conf matching.ConfidenceResult) Result {
	var absent []closet.Category
	for _, slot := range formula {
		owned := 0
		for _, accepts := range slot.Accepts {
			owned += conf.CategoryCounts[accepts]
		}
		if owned == 0 {
			absent = append(absent, slot.Accepts[0])
		}
	}

	if len(absent) > 0 {
		return Result{
			MissingSlots:   absent,
			EmptyReason:    EmptyMissingCorePieces,
			MissingMessage: fmt.Sprintf("you don't own any %s yet", nounList(absent)),
		}
	}
	return Result{
		MissingSlots:   missing,
		EmptyReason:    EmptyMissingHighTierCorePieces,
		MissingMessage: fmt.Sprintf("nothing in your closet pairs strongly enough for the %s slot", nounList(missing)),
	}
}

func nounList(categories []closet.Category) string {
	nouns := make([]string, 0, len(categories))
	for _, c := range categories {
		nouns = append(nouns, c.Noun())
	}
	switch len(nouns) {
	case 0:
		return ""
	case 1:
		return nouns[0]
	default:
		return strings.Join(nouns[:len(nouns)-1], ", ") + " and " + nouns[len(nouns)-1]
	}
}

func slotCategories(formula []Slot) []closet.Category {
	out := make([]closet.Category, 0, len(formula))
	for _, slot := range formula {
		out = append(out, slot.Accepts[0])
	}
	return out
}
