package stocks

import "testing"

func TestRecommend_Thresholds(t *testing.T) {
	cases := []struct {
		name    string
		price   float64
		ma      float64
		action  Action
		percent float64
	}{
		{"well above", 120, 100, ActionSell, 20.00},
		{"below", 90, 100, ActionBuy, -10.00},
		{"at average", 100, 100, ActionHold, 0.00},
		{"just under sell threshold", 115, 100, ActionHold, 15.00},
		{"just under buy threshold", 95, 100, ActionHold, -5.00},
		{"rounded", 100.333, 100, ActionHold, 0.33},
		// Classification uses the raw percent even when rounding the
		// display value would land exactly on the threshold.
		{"barely over sell threshold", 115.004, 100, ActionSell, 15.00},
		{"barely under buy threshold", 94.996, 100, ActionBuy, -5.00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Recommend(tc.price, tc.ma)
			if got.Action != tc.action {
				t.Fatalf("action: want %s, got %s", tc.action, got.Action)
			}
			if got.PercentAboveMA != tc.percent {
				t.Fatalf("percent: want %.2f, got %.2f", tc.percent, got.PercentAboveMA)
			}
			if got.Reason == "" {
				t.Fatalf("missing reason")
			}
		})
	}
}

func TestRecommend_ZeroMovingAverage(t *testing.T) {
	// No division by zero: an unavailable average is a low-confidence HOLD.
	got := Recommend(100, 0)
	if got.Action != ActionHold {
		t.Fatalf("want HOLD, got %s", got.Action)
	}
	if got.PercentAboveMA != 0 {
		t.Fatalf("want percent 0, got %.2f", got.PercentAboveMA)
	}
	if got.Reason != "200-day moving average unavailable, low confidence" {
		t.Fatalf("unexpected reason: %q", got.Reason)
	}

	if neg := Recommend(100, -3); neg.Action != ActionHold {
		t.Fatalf("negative average: want HOLD, got %s", neg.Action)
	}
}
