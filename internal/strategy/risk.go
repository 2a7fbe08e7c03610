package strategy

import (
	"math"

	"MarketPulse/internal/model"
)

// The three risk tiers, ordered by severity. Colors follow the report
// palette: green badge for normal, amber for caution, red for danger.
var (
	TierNormal  = model.RiskTier{Label: "Normal", Color: "green", Weight: 0}
	TierCaution = model.RiskTier{Label: "Caution", Color: "#ffcc00", Weight: 1}
	TierDanger  = model.RiskTier{Label: "Danger", Color: "red", Weight: 2}
)

// Classify maps a z-score to a risk tier using the given thresholds.
// Band edges belong to the lower tier: |z| exactly at the caution threshold
// is Normal, exactly at the danger threshold is Caution. Total and monotonic
// in |z|.
func Classify(z float64, th model.Thresholds) model.RiskTier {
	abs := math.Abs(z)
	switch {
	case abs > th.Danger:
		return TierDanger
	case abs > th.Caution:
		return TierCaution
	default:
		return TierNormal
	}
}
