package metrics

// ScanSummary is the read-only aggregate handed to the analytics
// collaborator after an evaluation. It carries counts and the verdict only,
// never the matched items themselves.
type ScanSummary struct {
	HighMatches   int    `json:"highMatches"`
	NearMatches   int    `json:"nearMatches"`
	WearNowCombos int    `json:"wearNowCombos"`
	Outcome       string `json:"outcome"`
	DebugTier     string `json:"debugTier,omitempty"`
}

// IsZero reports whether the summary carries no signal.
func (s ScanSummary) IsZero() bool {
	return s.HighMatches == 0 && s.NearMatches == 0 && s.WearNowCombos == 0 && s.Outcome == ""
}
