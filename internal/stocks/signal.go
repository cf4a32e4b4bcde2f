package stocks

import "math"

// Action is a derived trading-signal classification.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Recommendation classifies a price against its 200-day moving average.
type Recommendation struct {
	Action         Action  `json:"action"`
	Reason         string  `json:"reason"`
	PercentAboveMA float64 `json:"percent_above_ma"`
}

// Signal thresholds, in percent above/below the 200-day moving average.
const (
	sellThresholdPct = 15.0
	buyThresholdPct  = -5.0
)

// Recommend derives a BUY/SELL/HOLD signal from the current price and the
// 200-day moving average. A missing or non-positive moving average cannot be
// classified and yields a low-confidence HOLD instead of dividing by zero.
func Recommend(currentPrice, movingAvg200 float64) Recommendation {
	if movingAvg200 <= 0 {
		return Recommendation{
			Action:         ActionHold,
			Reason:         "200-day moving average unavailable, low confidence",
			PercentAboveMA: 0,
		}
	}

	// Classify on the raw percent; rounding is for display only.
	pct := (currentPrice - movingAvg200) / movingAvg200 * 100
	switch {
	case pct > sellThresholdPct:
		return Recommendation{Action: ActionSell, Reason: "well above 200-day moving average", PercentAboveMA: round2(pct)}
	case pct < buyThresholdPct:
		return Recommendation{Action: ActionBuy, Reason: "below 200-day moving average", PercentAboveMA: round2(pct)}
	default:
		return Recommendation{Action: ActionHold, Reason: "near 200-day moving average", PercentAboveMA: round2(pct)}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
