package matching

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/renaqiu/stylematch/internal/domain/closet"
)

func TestModeABulletsTargetCoreCategories(t *testing.T) {
	scanned := closet.ScannedItem{Category: closet.CategoryTops, IsFashionItem: true}
	bullets := modeABullets(scanned)
	require.Len(t, bullets, 2)
	require.Equal(t, "add_bottoms", bullets[0].Key)
	require.Equal(t, "add_shoes", bullets[1].Key)
	for _, b := range bullets {
		require.NotNil(t, b.Target)
		require.NotEmpty(t, b.Text)
	}
}

func TestModeABulletsIncludeRiskAdvice(t *testing.T) {
	scanned := closet.ScannedItem{
		Category: closet.CategoryDresses,
		Signals: closet.ItemSignals{
			StylingRisk: closet.RiskHigh,
			Silhouette:  "oversized",
		},
		IsFashionItem: true,
	}
	bullets := modeABullets(scanned)

	keys := make([]string, 0, len(bullets))
	for _, b := range bullets {
		keys = append(keys, b.Key)
	}
	require.Contains(t, keys, "keep_rest_simple")
	require.Contains(t, keys, "balance_with_fitted")
}

func TestFilterCoveredRemovesCoveredTargets(t *testing.T) {
	scanned := closet.ScannedItem{Category: closet.CategoryTops, IsFashionItem: true}
	bullets := modeABullets(scanned)
	coverage := CoverageSet{closet.CategoryBottoms: true}

	kept := FilterCovered(bullets, coverage)
	require.Len(t, kept, 1)
	require.Equal(t, "add_shoes", kept[0].Key)
}

func TestFilterCoveredIdempotent(t *testing.T) {
	scanned := closet.ScannedItem{Category: closet.CategoryShoes, IsFashionItem: true}
	bullets := modeABullets(scanned)
	coverage := CoverageSet{closet.CategoryTops: true}

	once := FilterCovered(bullets, coverage)
	twice := FilterCovered(once, coverage)
	require.Equal(t, once, twice)
}

func TestFilterCoveredNeverEmptiesNonEmptyList(t *testing.T) {
	scanned := closet.ScannedItem{Category: closet.CategoryTops, IsFashionItem: true}
	bullets := modeABullets(scanned)
	coverage := CoverageSet{}
	for _, c := range closet.CoreCategories() {
		coverage[c] = true
	}

	kept := FilterCovered(bullets, coverage)
	require.Len(t, kept, 1)
	require.Equal(t, "styling_free_play", kept[0].Key)

	// The fallback bullet itself survives another pass.
	require.Equal(t, kept, FilterCovered(kept, coverage))
}

func TestFilterCoveredEmptyInputStaysEmpty(t *testing.T) {
	require.Empty(t, FilterCovered(nil, CoverageSet{}))
}
