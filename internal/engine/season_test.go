package engine

import "testing"

func TestSeasonalBonus(t *testing.T) {
	turkanaNeem := map[string]float64{"March-April": 8, "Irrigated": 15, "June-Sept": -25}

	tests := []struct {
		name   string
		season string
		perf   map[string]float64
		want   float64
	}{
		{"exact label", "March-April", turkanaNeem, 8},
		{"en dash folds to hyphen", "March–April", turkanaNeem, 8},
		{"lowercase", "march-april", turkanaNeem, 8},
		{"month overlap across labels", "April-June", map[string]float64{"March-June": 10}, 10},
		{"dry season penalty", "June-Sept", turkanaNeem, -25},
		{"september long form", "July-September", turkanaNeem, -25},
		{"no month overlap", "Irrigated", turkanaNeem, 0},
		{"unknown season", "January-February", turkanaNeem, 0},
		{"empty map", "March-May", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeasonalBonus(tt.season, tt.perf); got != tt.want {
				t.Errorf("SeasonalBonus(%q) = %v, want %v", tt.season, got, tt.want)
			}
		})
	}
}

func TestSeasonalBonusIsDeterministic(t *testing.T) {
	// Two keys share a month with the label; sorted key order must make the
	// same one win on every call.
	perf := map[string]float64{"March-May": 6, "March-June": 10}
	want := SeasonalBonus("March-April", perf)
	for i := 0; i < 50; i++ {
		if got := SeasonalBonus("March-April", perf); got != want {
			t.Fatalf("iteration %d: got %v, want %v", i, got, want)
		}
	}
	if want != 6 {
		t.Errorf("sorted-first match = %v, want 6 (March-May)", want)
	}
}

func TestRainfallBand(t *testing.T) {
	tests := []struct {
		daily float64
		want  string
	}{
		{0, RainfallDry},
		{1.9, RainfallDry},
		{2, RainfallOptimal},
		{10, RainfallOptimal},
		{10.1, RainfallExcess},
	}
	for _, tt := range tests {
		if got := RainfallBand(tt.daily); got != tt.want {
			t.Errorf("RainfallBand(%v) = %q, want %q", tt.daily, got, tt.want)
		}
	}
}
