package llm

import (
	"strings"
	"testing"
)

func TestFallbackAdjustment(t *testing.T) {
	tests := []struct {
		name string
		pc   PredictionContext
		want float64
	}{
		{
			name: "indigenous mix in highlands",
			pc:   PredictionContext{Species: "Indigenous Mix", County: "Meru"},
			want: 12,
		},
		{
			name: "pine in highlands with good season",
			pc:   PredictionContext{Species: "Pine", County: "Nyeri", SeasonalBonus: 8},
			want: 12, // 5 + 8 clamps at the ceiling
		},
		{
			name: "pine at the coast",
			pc:   PredictionContext{Species: "Pine", County: "Mombasa"},
			want: -12,
		},
		{
			name: "neem in arid county",
			pc:   PredictionContext{Species: "Neem", County: "Turkana"},
			want: 10,
		},
		{
			name: "neem in highlands off season",
			pc:   PredictionContext{Species: "Neem", County: "Meru", SeasonalBonus: -10},
			want: -11,
		},
		{
			name: "eucalyptus anywhere",
			pc:   PredictionContext{Species: "Eucalyptus", County: "Nakuru"},
			want: 3,
		},
		{
			name: "no rule applies",
			pc:   PredictionContext{Species: "Grevillea", County: "Nakuru"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackAdjustment(tt.pc)
			if got != tt.want {
				t.Errorf("FallbackAdjustment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampAdjustment(t *testing.T) {
	if got := ClampAdjustment(-30); got != AdjustmentMin {
		t.Errorf("ClampAdjustment(-30) = %v, want %v", got, float64(AdjustmentMin))
	}
	if got := ClampAdjustment(50); got != AdjustmentMax {
		t.Errorf("ClampAdjustment(50) = %v, want %v", got, float64(AdjustmentMax))
	}
	if got := ClampAdjustment(4.5); got != 4.5 {
		t.Errorf("ClampAdjustment(4.5) = %v, want 4.5", got)
	}
}

func TestFallbackExplanationBands(t *testing.T) {
	pc := PredictionContext{Species: "Grevillea", County: "Meru", Season: "March-May"}

	pc.SurvivalRate = 85
	if !strings.Contains(FallbackExplanation(pc), "excellent choice") {
		t.Error("expected excellent-band explanation at 85")
	}
	pc.SurvivalRate = 70
	if !strings.Contains(FallbackExplanation(pc), "performs well") {
		t.Error("expected mid-band explanation at 70")
	}
	pc.SurvivalRate = 40
	if !strings.Contains(FallbackExplanation(pc), "faces challenges") {
		t.Error("expected low-band explanation at 40")
	}
}

func TestFallbackCareSteps(t *testing.T) {
	base := []string{"Water weekly", "Mulch well", "Fence seedlings"}

	t.Run("low risk returns base care", func(t *testing.T) {
		got := FallbackCareSteps(PredictionContext{SurvivalRate: 85, BaseCare: base})
		if len(got) != len(base) || got[0] != base[0] {
			t.Errorf("got %v, want base care unchanged", got)
		}
	})

	t.Run("medium risk prepends critical notice", func(t *testing.T) {
		got := FallbackCareSteps(PredictionContext{SurvivalRate: 70, BaseCare: base})
		if got[0] != "CRITICAL: Follow all care steps closely" {
			t.Errorf("first step = %q", got[0])
		}
		if got[len(got)-1] != "Check soil moisture weekly" {
			t.Errorf("last step = %q", got[len(got)-1])
		}
		if len(got) > 6 {
			t.Errorf("got %d steps, want at most 6", len(got))
		}
	})

	t.Run("high risk replaces care entirely", func(t *testing.T) {
		got := FallbackCareSteps(PredictionContext{SurvivalRate: 40, BaseCare: base})
		if len(got) != 5 {
			t.Fatalf("got %d steps, want 5", len(got))
		}
		if !strings.HasPrefix(got[0], "CRITICAL") {
			t.Errorf("first step = %q", got[0])
		}
	})

	t.Run("empty base care uses defaults", func(t *testing.T) {
		got := FallbackCareSteps(PredictionContext{SurvivalRate: 85})
		if len(got) != 4 {
			t.Errorf("got %d default steps, want 4", len(got))
		}
	})
}

func TestSanitizeText(t *testing.T) {
	in := `**Grevillea** grows 'well' in "Meru". (Word count: 8) (8 words)`
	got := SanitizeText(in)
	want := "Grevillea grows well in Meru."
	if got != want {
		t.Errorf("SanitizeText() = %q, want %q", got, want)
	}
}

func TestSanitizeCareSteps(t *testing.T) {
	raw := `1. Water the seedlings twice per week during dry spells
2. Mulch
3. Protect young trees from browsing livestock with
- Remove weeds within one meter of every seedling
Apply organic compost at the start of each rainy season
Check for pest damage on leaves every single week
Prune lower branches once the tree reaches two meters tall
Stake tall seedlings so wind cannot loosen their roots
An extra step that should be cut by the cap limit here`

	got := SanitizeCareSteps(raw)
	if len(got) != 6 {
		t.Fatalf("got %d steps %v, want 6", len(got), got)
	}
	if got[0] != "Water the seedlings twice per week during dry spells" {
		t.Errorf("first step = %q", got[0])
	}
	for _, step := range got {
		if strings.Contains(step, "Mulch") && len(step) < 20 {
			t.Errorf("short step kept: %q", step)
		}
		if strings.HasSuffix(step, "with") {
			t.Errorf("truncated step kept: %q", step)
		}
	}
}
