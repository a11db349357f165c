// Package outfits assembles complete, slot-valid outfit combinations from
// the confidence engine's scored pairs.
package outfits

import (
	"strings"

	"github.com/google/uuid"

	"github.com/renaqiu/stylematch/internal/domain/closet"
	"github.com/renaqiu/stylematch/internal/domain/matching"
)

// TierFloor selects which scored pairs may fill a slot.
type TierFloor string

const (
	// FloorHigh only admits high-tier pairs; feeds the "wear now" tab.
	FloorHigh TierFloor = "high"
	// FloorHighAndMedium also admits near matches; feeds "worth trying".
	FloorHighAndMedium TierFloor = "high_and_medium"
)

// EmptyReason classifies why no complete combo could be formed. The two
// variants drive different calls to action and are never both applicable.
type EmptyReason string

const (
	EmptyReasonNone EmptyReason = ""
	// EmptyMissingCorePieces: the closet holds nothing at all in one or
	// more required core categories.
	EmptyMissingCorePieces EmptyReason = "missing_core_pieces"
	// EmptyMissingHighTierCorePieces: items exist but none clear the floor.
	EmptyMissingHighTierCorePieces EmptyReason = "missing_high_tier_core_pieces"
)

// Slot is one position in an outfit formula. A slot may accept more than
// one category (the bottoms-family slot takes bottoms or skirts).
type Slot struct {
	Name    string
	Accepts []closet.Category
}

var (
	slotTops          = Slot{Name: "tops", Accepts: []closet.Category{closet.CategoryTops}}
	slotBottomsFamily = Slot{Name: "bottoms", Accepts: []closet.Category{closet.CategoryBottoms, closet.CategorySkirts}}
	slotShoes         = Slot{Name: "shoes", Accepts: []closet.Category{closet.CategoryShoes}}
)

// formulaFor returns the wardrobe slots required around a scanned item.
// The scanned item occupies its own slot and is not listed.
func formulaFor(category closet.Category) []Slot {
	switch category {
	case closet.CategoryTops:
		return []Slot{slotBottomsFamily, slotShoes}
	case closet.CategoryBottoms, closet.CategorySkirts:
		return []Slot{slotTops, slotShoes}
	case closet.CategoryDresses:
		return []Slot{slotShoes}
	case closet.CategoryShoes:
		return []Slot{slotTops, slotBottomsFamily}
	default:
		// Outerwear, bags and accessories decorate a full base outfit.
		return []Slot{slotTops, slotBottomsFamily, slotShoes}
	}
}

// SlotFill records which item fills a slot and the tier it arrived with,
// so tier provenance stays retrievable per slot.
type SlotFill struct {
	Slot     string              `json:"slot"`
	Category closet.Category     `json:"category"`
	Item     closet.WardrobeItem `json:"item"`
	Tier     matching.Tier       `json:"tier"`
}

// Combo is one assembled outfit. Complete combos have no missing slots.
type Combo struct {
	ID           uuid.UUID             `json:"id"`
	Slots        []SlotFill            `json:"candidates"`
	MissingSlots []closet.Category     `json:"missingSlots"`
	Decorations  []closet.WardrobeItem `json:"decorations,omitempty"`
}

// HasMediumSlot reports whether any filled slot came from a near match.
func (c Combo) HasMediumSlot() bool {
	for _, fill := range c.Slots {
		if fill.Tier == matching.TierMedium {
			return true
		}
	}
	return false
}

// Result is the output of one assembly pass.
type Result struct {
	Combos         []Combo           `json:"combos"`
	CanFormCombos  bool              `json:"canFormCombos"`
	MissingSlots   []closet.Category `json:"missingSlots"`
	MissingMessage string            `json:"missingMessage,omitempty"`
	EmptyReason    EmptyReason       `json:"emptyReason,omitempty"`
}

// comboNamespace seeds deterministic combo ids: the same slot contents
// always produce the same id, so a reselection after recompute still finds
// its combo.
var comboNamespace = uuid.MustParse("8f3c5de2-9b41-4a57-9c76-2f1a6d30b1c4")

func comboID(slots []SlotFill) uuid.UUID {
	parts := make([]string, 0, len(slots))
	for _, fill := range slots {
		parts = append(parts, fill.Item.ID.String())
	}
	return uuid.NewSHA1(comboNamespace, []byte(strings.Join(parts, "|")))
}
