package closet

import (
	"time"

	"github.com/google/uuid"
)

// StylingRisk grades how easy an item is to style against a typical closet.
type StylingRisk string

const (
	RiskLow    StylingRisk = "low"
	RiskMedium StylingRisk = "medium"
	RiskHigh   StylingRisk = "high"
)

// FitPreference is the user-declared silhouette preference consulted when
// a high-risk item might clash with how they like clothes to sit.
type FitPreference string

const (
	FitSlim         FitPreference = "slim"
	FitRelaxed      FitPreference = "relaxed"
	FitOversized    FitPreference = "oversized"
	FitNoPreference FitPreference = "no_preference"
)

// Color is a single detected color with its hex value and display name.
type Color struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

// ItemSignals carries the category-specific attributes produced by the
// upstream analysis. StylingRisk is always present; the rest vary by
// category and may be empty.
type ItemSignals struct {
	StylingRisk StylingRisk `json:"stylingRisk"`
	Silhouette  string      `json:"silhouette,omitempty"`
	Length      string      `json:"length,omitempty"`
	StyleNotes  []string    `json:"styleNotes,omitempty"`
}

// Normalized returns a copy with the documented defaults applied: missing
// styling risk degrades to medium rather than failing.
func (s ItemSignals) Normalized() ItemSignals {
	switch s.StylingRisk {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		s.StylingRisk = RiskMedium
	}
	return s
}

// MatchSignals is the confidence-signal metadata used only as scoring
// inputs. Any field may be empty; scoring degrades to category+color.
type MatchSignals struct {
	ColorProfile string `json:"colorProfile,omitempty"`
	StyleFamily  string `json:"styleFamily,omitempty"`
	Formality    int    `json:"formality,omitempty"`
	Texture      string `json:"texture,omitempty"`
}

// ScannedItem is the finished record handed over by the upstream image
// analysis. Immutable once produced; the core never mutates it.
type ScannedItem struct {
	Category          Category      `json:"category"`
	Colors            []Color       `json:"colors"`
	StyleTags         []string      `json:"styleTags"`
	Signals           ItemSignals   `json:"itemSignals"`
	Match             MatchSignals  `json:"matchSignals"`
	FitPreference     FitPreference `json:"fitPreference,omitempty"`
	ContextSufficient bool          `json:"contextSufficient"`
	IsFashionItem     bool          `json:"isFashionItem"`
}

// WardrobeItem is an owned item. The persistence layer owns the collection;
// the core treats every wardrobe slice as a read-only snapshot.
type WardrobeItem struct {
	ID          uuid.UUID    `json:"id"`
	Category    Category     `json:"category"`
	Colors      []Color      `json:"colors"`
	StyleTags   []string     `json:"styleTags"`
	Match       MatchSignals `json:"matchSignals"`
	ImageKey    string       `json:"imageKey,omitempty"`
	ColorVector []float32    `json:"-"`
	AddedAt     time.Time    `json:"addedAt"`
}

// PrimaryColor returns the first detected color, the strongest signal the
// upstream analysis emits.
func (w WardrobeItem) PrimaryColor() (Color, bool) {
	if len(w.Colors) == 0 {
		return Color{}, false
	}
	return w.Colors[0], true
}
