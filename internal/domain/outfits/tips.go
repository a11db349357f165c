package outfits

import (
	"fmt"

	"github.com/renaqiu/stylematch/internal/domain/matching"
)

// WeakLinkTips produces the Mode B suggestions for a selected combo: one
// precise tip per slot filled by a near match, naming the piece to tweak.
func WeakLinkTips(combo Combo) []matching.Bullet {
	var tips []matching.Bullet
	for _, fill := range combo.Slots {
		if fill.Tier != matching.TierMedium {
			continue
		}
		target := fill.Category
		tips = append(tips, matching.Bullet{
			Key:    "tweak_" + fill.Slot,
			Target: &target,
			Text:   fmt.Sprintf("this %s needs a small tweak to land; try half-tucking or swapping the finish", target.Noun()),
		})
	}
	return tips
}
