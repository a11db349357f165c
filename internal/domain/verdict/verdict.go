// Package verdict classifies a scanned item's overall placement through an
// ordered rule cascade, independent of any individual wardrobe pair.
package verdict

import (
	"fmt"
	"strings"

	"github.com/renaqiu/stylematch/internal/domain/closet"
)

// Outcome is the closed set of terminal classifications.
type Outcome string

const (
	OutcomeGoodMatch    Outcome = "looks_like_good_match"
	OutcomeCouldWork    Outcome = "could_work_with_pieces"
	OutcomeTricky       Outcome = "might_feel_tricky"
	OutcomeNeedsContext Outcome = "needs_more_context"
)

// UIState is the presentation bucket each outcome renders as.
type UIState string

const (
	UIStateGreat         UIState = "great"
	UIStateOkay          UIState = "okay"
	UIStateRisky         UIState = "risky"
	UIStateContextNeeded UIState = "context_needed"
)

// Input is everything the cascade consults. The wardrobe participates only
// as a coarse count; individual pairs never influence the verdict.
type Input struct {
	Category          closet.Category
	Signals           closet.ItemSignals
	FitPreference     closet.FitPreference
	ContextSufficient bool
	WardrobeCount     int
}

// Result is the classification plus its rendered explanation.
type Result struct {
	Outcome     Outcome `json:"outcome"`
	Explanation string  `json:"explanation"`
	UIState     UIState `json:"verdictUIState"`
}

type rule struct {
	name    string
	applies func(Input) bool
	outcome Outcome
}

// cascade is evaluated top to bottom and the first matching rule wins.
// The rules are not mutually exclusive by construction, so this order is
// part of the contract and must not be rearranged.
var cascade = []rule{
	{
		name: "insufficient_context",
		applies: func(in Input) bool {
			return !in.ContextSufficient
		},
		outcome: OutcomeNeedsContext,
	},
	{
		name: "high_risk_fit_conflict",
		applies: func(in Input) bool {
			return in.Signals.StylingRisk == closet.RiskHigh && fitConflicts(in.FitPreference, in.Signals.Silhouette)
		},
		outcome: OutcomeTricky,
	},
	{
		name: "sparse_closet_or_medium_risk",
		applies: func(in Input) bool {
			return in.WardrobeCount == 0 || in.Signals.StylingRisk == closet.RiskMedium
		},
		outcome: OutcomeCouldWork,
	},
	{
		name: "default_good_match",
		applies: func(Input) bool {
			return true
		},
		outcome: OutcomeGoodMatch,
	},
}

// Classify runs the cascade. Deterministic, total, side-effect-free.
func Classify(in Input) Result {
	in.Signals = in.Signals.Normalized()
	for _, r := range cascade {
		if r.applies(in) {
			return Result{
				Outcome:     r.outcome,
				Explanation: explain(r.outcome, in),
				UIState:     UIStateFor(r.outcome),
			}
		}
	}
	// Unreachable: the final rule always applies.
	return Result{Outcome: OutcomeGoodMatch, Explanation: explain(OutcomeGoodMatch, in), UIState: UIStateGreat}
}

// fitConflicts reports whether the declared fit preference clashes with the
// detected silhouette.
func fitConflicts(pref closet.FitPreference, silhouette string) bool {
	s := strings.ToLower(strings.TrimSpace(silhouette))
	switch pref {
	case closet.FitSlim:
		return s == "oversized" || s == "loose" || s == "relaxed"
	case closet.FitOversized, closet.FitRelaxed:
		return s == "slim" || s == "fitted" || s == "bodycon"
	default:
		return false
	}
}

// UIStateFor maps every outcome to its presentation bucket. Total: adding
// an outcome without extending this map is caught by the bijection test.
func UIStateFor(outcome Outcome) UIState {
	switch outcome {
	case OutcomeGoodMatch:
		return UIStateGreat
	case OutcomeCouldWork:
		return UIStateOkay
	case OutcomeTricky:
		return UIStateRisky
	case OutcomeNeedsContext:
		return UIStateContextNeeded
	}
	return UIStateOkay
}

// representativeOutcomes is a fixed table, not re-derived by re-running the
// cascade: when a saved scan is unsaved, the original inputs are gone and
// only the UI state survives.
var representativeOutcomes = map[UIState]Outcome{
	UIStateGreat:         OutcomeGoodMatch,
	UIStateOkay:          OutcomeCouldWork,
	UIStateRisky:         OutcomeTricky,
	UIStateContextNeeded: OutcomeNeedsContext,
}

// RepresentativeOutcome reverses a UI state back to an outcome whose forward
// mapping reproduces the same state.
func RepresentativeOutcome(state UIState) (Outcome, bool) {
	outcome, ok := representativeOutcomes[state]
	return outcome, ok
}

// AllOutcomes returns the closed outcome set, used by tests and the reverse
// table check.
func AllOutcomes() []Outcome {
	return []Outcome{OutcomeGoodMatch, OutcomeCouldWork, OutcomeTricky, OutcomeNeedsContext}
}

func explain(outcome Outcome, in Input) string {
	noun := in.Category.Noun()
	notes := styleNotes(in)
	switch outcome {
	case OutcomeNeedsContext:
		return fmt.Sprintf("we couldn't see this %s clearly enough to judge; try another photo", noun)
	case OutcomeTricky:
		return fmt.Sprintf("this %s%s sits differently from how you like things to fit, so it might feel tricky", noun, notes)
	case OutcomeCouldWork:
		if in.WardrobeCount == 0 {
			return fmt.Sprintf("this %s%s could work once there are a few pieces in your closet to build around", noun, notes)
		}
		return fmt.Sprintf("this %s%s could work with the right pieces", noun, notes)
	default:
		return fmt.Sprintf("this %s%s looks like a good match for your closet", noun, notes)
	}
}

func styleNotes(in Input) string {
	if len(in.Signals.StyleNotes) == 0 {
		return ""
	}
	return " (" + strings.Join(in.Signals.StyleNotes, ", ") + ")"
}
