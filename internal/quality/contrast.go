package quality

import "github.com/MeKo-Tech/dpc/internal/view"

// contrastFinding is the documented not-yet-implemented slot (§4.F,
// resolved Open Question): always an Info placeholder, never affects score.
func contrastFinding() Finding {
	return Finding{Severity: view.SeverityInfo, Kind: KindLowContrast, Message: "contrast analysis not yet implemented"}
}
