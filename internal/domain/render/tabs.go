package render

import (
	"github.com/google/uuid"

	"github.com/renaqiu/stylematch/internal/domain/closet"
	"github.com/renaqiu/stylematch/internal/domain/matching"
	"github.com/renaqiu/stylematch/internal/domain/outfits"
)

// Tab identifies one of the two result tabs.
type Tab string

const (
	TabWearNow     Tab = "wear_now"
	TabWorthTrying Tab = "worth_trying"
)

// Combo caps are a presentation decision owned here, not by the assembler:
// a lone tab gets more room than a split view.
const (
	MaxCombosSingleTab = 5
	MaxCombosDualTab   = 3
)

// ComboResults bundles the two assembly passes.
type ComboResults struct {
	High outfits.Result
	Near outfits.Result
}

// TabsState is the tab partition for one scan. Selection is tab-scoped and
// cleared whenever its combo disappears from the recomputed lists.
type TabsState struct {
	ScanID       uuid.UUID         `json:"scanId"`
	ShowTabs     bool              `json:"showTabs"`
	ShowHigh     bool              `json:"showHigh"`
	ShowNear     bool              `json:"showNear"`
	ActiveTab    Tab               `json:"activeTab"`
	WearNow      []outfits.Combo   `json:"wearNow"`
	WorthTrying  []outfits.Combo   `json:"worthTrying"`
	Selected     *uuid.UUID        `json:"selectedComboId,omitempty"`
	WeakLinkTips []matching.Bullet `json:"weakLinkTips,omitempty"`
}

// BuildTabsState partitions combos into tabs. prev, when non-nil, is the
// state from the previous recompute of the same scan; its active tab and
// selection survive only while they remain valid.
func BuildTabsState(scanID uuid.UUID, conf matching.ConfidenceResult, combos ComboResults, wardrobe []closet.WardrobeItem, prev *TabsState) TabsState {
	state := TabsState{ScanID: scanID}
	if !conf.Evaluated || len(wardrobe) == 0 {
		state.ActiveTab = TabWearNow
		return state
	}

	// Worth trying only shows combos a near match enriched; pure-high
	// combos already live on the wear-now tab.
	nearCombos := make([]outfits.Combo, 0, len(combos.Near.Combos))
	for _, combo := range combos.Near.Combos {
		if combo.HasMediumSlot() {
			nearCombos = append(nearCombos, combo)
		}
	}

	state.ShowHigh = len(conf.Matches) > 0 || combos.High.CanFormCombos
	state.ShowNear = conf.NearMatchCount > 0 && len(nearCombos) > 0
	state.ShowTabs = state.ShowHigh && state.ShowNear

	cap := MaxCombosSingleTab
	if state.ShowTabs {
		cap = MaxCombosDualTab
	}
	state.WearNow = truncate(combos.High.Combos, cap)
	state.WorthTrying = truncate(nearCombos, cap)

	state.ActiveTab = defaultTab(state)
	if prev != nil && prev.ScanID == scanID {
		if tabVisible(state, prev.ActiveTab) {
			state.ActiveTab = prev.ActiveTab
		}
		if prev.Selected != nil && prev.ActiveTab == state.ActiveTab {
			state = state.WithSelection(*prev.Selected)
		}
	}
	return state
}

// WithActiveTab switches tabs. Selection is tab-scoped, so it never
// survives the switch.
func (s TabsState) WithActiveTab(tab Tab) TabsState {
	if !tabVisible(s, tab) {
		return s
	}
	s.ActiveTab = tab
	s.Selected = nil
	s.WeakLinkTips = nil
	return s
}

// WithSelection marks a combo selected if it exists on the active tab;
// stale ids are dropped rather than treated as an error.
func (s TabsState) WithSelection(id uuid.UUID) TabsState {
	s.Selected = nil
	s.WeakLinkTips = nil
	for _, combo := range s.activeCombos() {
		if combo.ID == id {
			selected := id
			s.Selected = &selected
			if s.ActiveTab == TabWorthTrying {
				s.WeakLinkTips = outfits.WeakLinkTips(combo)
			}
			return s
		}
	}
	return s
}

func (s TabsState) activeCombos() []outfits.Combo {
	if s.ActiveTab == TabWorthTrying {
		return s.WorthTrying
	}
	return s.WearNow
}

func defaultTab(s TabsState) Tab {
	if !s.ShowHigh && s.ShowNear {
		return TabWorthTrying
	}
	return TabWearNow
}

func tabVisible(s TabsState, tab Tab) bool {
	switch tab {
	case TabWearNow:
		return s.ShowHigh
	case TabWorthTrying:
		return s.ShowNear
	}
	return false
}

func truncate(combos []outfits.Combo, limit int) []outfits.Combo {
	if len(combos) <= limit {
		return combos
	}
	return combos[:limit]
}
