package outfits

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/renaqiu/stylematch/internal/domain/closet"
	"github.com/renaqiu/stylematch/internal/domain/matching"
)

func scannedTop() closet.ScannedItem {
	return closet.ScannedItem{Category: closet.CategoryTops, IsFashionItem: true, ContextSufficient: true}
}

func pair(id byte, category closet.Category, tier matching.Tier, colorName string) matching.PairEvaluation {
	return matching.PairEvaluation{
		Item: closet.WardrobeItem{
			ID:       uuid.UUID{15: id},
			Category: category,
			Colors:   []closet.Color{{Hex: "#123456", Name: colorName}},
		},
		Tier: tier,
	}
}

func confidenceWith(matches, near []matching.PairEvaluation) matching.ConfidenceResult {
	counts := map[closet.Category]int{}
	for _, ev := range matches {
		counts[ev.Item.Category]++
	}
	for _, ev := range near {
		counts[ev.Item.Category]++
	}
	return matching.ConfidenceResult{
		Evaluated:      true,
		Matches:        matches,
		NearMatches:    near,
		NearMatchCount: len(near),
		CategoryCounts: counts,
	}
}

func TestAssembleCompleteHighOutfit(t *testing.T) {
	conf := confidenceWith([]matching.PairEvaluation{
		pair(1, closet.CategoryBottoms, matching.TierHigh, "navy"),
		pair(2, closet.CategoryShoes, matching.TierHigh, "white"),
	}, nil)

	result := Assemble(scannedTop(), conf, FloorHigh, 5)
	require.True(t, result.CanFormCombos)
	require.Len(t, result.Combos, 1)
	require.Equal(t, EmptyReasonNone, result.EmptyReason)

	combo := result.Combos[0]
	require.Len(t, combo.Slots, 2)
	require.Equal(t, "bottoms", combo.Slots[0].Slot)
	require.Equal(t, "shoes", combo.Slots[1].Slot)
	require.Empty(t, combo.MissingSlots)
	require.False(t, combo.HasMediumSlot())
}

func TestAssembleDeterministicIDs(t *testing.T) {
	conf := confidenceWith([]matching.PairEvaluation{
		pair(1, closet.CategoryBottoms, matching.TierHigh, "navy"),
		pair(2, closet.CategoryShoes, matching.TierHigh, "white"),
	}, nil)

	first := Assemble(scannedTop(), conf, FloorHigh, 5)
	second := Assemble(scannedTop(), conf, FloorHigh, 5)
	require.Equal(t, first.Combos[0].ID, second.Combos[0].ID)
}

func TestAssembleHighFloorExcludesNearMatches(t *testing.T) {
	conf := confidenceWith(
		[]matching.PairEvaluation{pair(1, closet.CategoryBottoms, matching.TierHigh, "navy")},
		[]matching.PairEvaluation{pair(2, closet.CategoryShoes, matching.TierMedium, "white")},
	)

	high := Assemble(scannedTop(), conf, FloorHigh, 5)
	require.False(t, high.CanFormCombos)
	require.Equal(t, EmptyMissingHighTierCorePieces, high.EmptyReason)
	require.Equal(t, []closet.Category{closet.CategoryShoes}, high.MissingSlots)
	require.NotEmpty(t, high.MissingMessage)

	both := Assemble(scannedTop(), conf, FloorHighAndMedium, 5)
	require.True(t, both.CanFormCombos)
	require.Len(t, both.Combos, 1)
	require.True(t, both.Combos[0].HasMediumSlot())
}

func TestAssembleEmptyReasonsAreExclusive(t *testing.T) {
	// No shoes owned at all: the closet itself is the gap.
	conf := confidenceWith([]matching.PairEvaluation{
		pair(1, closet.CategoryBottoms, matching.TierHigh, "navy"),
	}, nil)

	result := Assemble(scannedTop(), conf, FloorHigh, 5)
	require.False(t, result.CanFormCombos)
	require.Equal(t, EmptyMissingCorePieces, result.EmptyReason)
	require.Equal(t, []closet.Category{closet.CategoryShoes}, result.MissingSlots)
}

func TestAssembleNotEvaluated(t *testing.T) {
	result := Assemble(scannedTop(), matching.ConfidenceResult{}, FloorHigh, 5)
	require.False(t, result.CanFormCombos)
	require.Equal(t, EmptyMissingCorePieces, result.EmptyReason)
	require.NotEmpty(t, result.MissingSlots)
}

func TestAssembleBottomsFamilySlotAcceptsSkirts(t *testing.T) {
	conf := confidenceWith([]matching.PairEvaluation{
		pair(1, closet.CategorySkirts, matching.TierHigh, "black"),
		pair(2, closet.CategoryShoes, matching.TierHigh, "white"),
	}, nil)

	result := Assemble(scannedTop(), conf, FloorHigh, 5)
	require.True(t, result.CanFormCombos)
	require.Equal(t, closet.CategorySkirts, result.Combos[0].Slots[0].Category)
}

func TestAssembleDressFormulaOnlyNeedsShoes(t *testing.T) {
	scanned := closet.ScannedItem{Category: closet.CategoryDresses, IsFashionItem: true, ContextSufficient: true}
	conf := confidenceWith([]matching.PairEvaluation{
		pair(1, closet.CategoryShoes, matching.TierHigh, "white"),
	}, nil)

	result := Assemble(scanned, conf, FloorHigh, 5)
	require.True(t, result.CanFormCombos)
	require.Len(t, result.Combos[0].Slots, 1)
}

func TestAssembleRespectsMaxCombos(t *testing.T) {
	matches := []matching.PairEvaluation{
		pair(10, closet.CategoryShoes, matching.TierHigh, "white"),
	}
	for i := byte(1); i <= 6; i++ {
		matches = append(matches, pair(i, closet.CategoryBottoms, matching.TierHigh, string('a'+rune(i))))
	}
	conf := confidenceWith(matches, nil)

	result := Assemble(scannedTop(), conf, FloorHigh, 3)
	require.Len(t, result.Combos, 3)
}

func TestAssembleAttachesDecorations(t *testing.T) {
	conf := confidenceWith([]matching.PairEvaluation{
		pair(1, closet.CategoryBottoms, matching.TierHigh, "navy"),
		pair(2, closet.CategoryShoes, matching.TierHigh, "white"),
		pair(3, closet.CategoryOuterwear, matching.TierHigh, "camel"),
		pair(4, closet.CategoryBags, matching.TierHigh, "black"),
		pair(5, closet.CategoryAccessories, matching.TierHigh, "gold"),
	}, nil)

	result := Assemble(scannedTop(), conf, FloorHigh, 5)
	require.True(t, result.CanFormCombos)
	require.Len(t, result.Combos[0].Decorations, maxDecorationsPerCombo)
	for _, decoration := range result.Combos[0].Decorations {
		require.True(t, decoration.Category.IsOptional())
	}
}

func TestDiversifyRoundRobinsColorBuckets(t *testing.T) {
	ranked := []matching.PairEvaluation{
		pair(1, closet.CategoryBottoms, matching.TierHigh, "red"),
		pair(2, closet.CategoryBottoms, matching.TierHigh, "red"),
		pair(3, closet.CategoryBottoms, matching.TierHigh, "blue"),
		pair(4, closet.CategoryBottoms, matching.TierHigh, "blue"),
	}

	out := diversify(ranked)
	require.Len(t, out, 4)
	require.Equal(t, "red", out[0].Item.Colors[0].Name)
	require.Equal(t, "blue", out[1].Item.Colors[0].Name)
	require.Equal(t, "red", out[2].Item.Colors[0].Name)
	require.Equal(t, "blue", out[3].Item.Colors[0].Name)
}

func TestDiversifyLeavesShortListsAlone(t *testing.T) {
	ranked := []matching.PairEvaluation{
		pair(1, closet.CategoryBottoms, matching.TierHigh, "red"),
		pair(2, closet.CategoryBottoms, matching.TierHigh, "blue"),
	}
	require.Equal(t, ranked, diversify(ranked))
}

func TestWeakLinkTipsOnlyForMediumSlots(t *testing.T) {
	combo := Combo{
		Slots: []SlotFill{
			{Slot: "bottoms", Category: closet.CategoryBottoms, Tier: matching.TierHigh},
			{Slot: "shoes", Category: closet.CategoryShoes, Tier: matching.TierMedium},
		},
	}

	tips := WeakLinkTips(combo)
	require.Len(t, tips, 1)
	require.Equal(t, "tweak_shoes", tips[0].Key)
	require.NotNil(t, tips[0].Target)
	require.Equal(t, closet.CategoryShoes, *tips[0].Target)

	combo.Slots[1].Tier = matching.TierHigh
	require.Empty(t, WeakLinkTips(combo))
}
