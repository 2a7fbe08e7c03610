package notifier

import (
	"fmt"
	"strings"

	"MarketPulse/internal/engine"
	"MarketPulse/internal/model"
)

// FormatRunReport formats one engine run into a Telegram message.
func FormatRunReport(result *engine.RunResult, ratioName string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>MarketPulse</b> | %s\n\n", result.RunAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("%s ratio: %.4f\n\n", ratioName, result.Ratio))

	for _, o := range result.Outcomes {
		if !o.OK() {
			b.WriteString(fmt.Sprintf("%s: data unavailable, skipped\n", o.Name))
			continue
		}
		r := o.Result
		b.WriteString(fmt.Sprintf("%s %s: %.2f (%+.2f, %+.2f%%)\n",
			tierEmoji(r.Tier), r.Name, r.Price, r.Change, r.PctChange))
		rsi := "–"
		if r.RSIValid {
			rsi = fmt.Sprintf("%.1f", r.RSI)
		}
		b.WriteString(fmt.Sprintf("   z %+.2f · conv %.0f%% · RSI %s · dd %.1f%%\n",
			r.ZScore, r.ConversionProb, rsi, r.Drawdown))
	}
	return b.String()
}

// FormatDangerAlert formats an alert listing instruments in the Danger tier.
// Returns "" when none are.
func FormatDangerAlert(results []model.IndicatorResult) string {
	var danger []model.IndicatorResult
	for _, r := range results {
		if r.Tier.Weight >= 2 {
			danger = append(danger, r)
		}
	}
	if len(danger) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("🚨 <b>Risk alert</b>\n\n")
	for _, r := range danger {
		b.WriteString(fmt.Sprintf("%s: z-score %+.2f (|z| beyond danger band)\n", r.Name, r.ZScore))
	}
	return b.String()
}

// FormatSnapshot formats the latest persisted snapshot for /status replies.
func FormatSnapshot(snap model.Snapshot, ratioName string, names []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>Latest snapshot</b> | %s\n\n", snap.Key))
	for _, name := range names {
		if v, ok := snap.Prices[name]; ok {
			b.WriteString(fmt.Sprintf("%s: %.2f\n", name, v))
		} else {
			b.WriteString(fmt.Sprintf("%s: no observation\n", name))
		}
	}
	b.WriteString(fmt.Sprintf("%s: %.4f\n", ratioName, snap.Ratio))
	return b.String()
}

func tierEmoji(t model.RiskTier) string {
	switch t.Weight {
	case 2:
		return "🔴"
	case 1:
		return "🟡"
	default:
		return "🟢"
	}
}
