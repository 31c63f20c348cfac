package rewards

import "testing"

func TestBadgeForTrees(t *testing.T) {
	tests := []struct {
		trees int64
		want  string
	}{
		{0, "Nature Friend"},
		{4, "Nature Friend"},
		{5, "Eco Defender"},
		{9, "Eco Defender"},
		{10, "Green Warrior"},
		{19, "Green Warrior"},
		{20, "Tree Champion"},
		{49, "Tree Champion"},
		{50, "Forest Hero"},
		{500, "Forest Hero"},
	}
	for _, tt := range tests {
		if got := BadgeForTrees(tt.trees); got != tt.want {
			t.Errorf("BadgeForTrees(%d) = %q, want %q", tt.trees, got, tt.want)
		}
	}
}

func TestBadgesIncludeParticipant(t *testing.T) {
	badges := Badges(12, true)
	if len(badges) != 2 {
		t.Fatalf("badges = %v", badges)
	}
	if badges[0] != "Green Warrior" || badges[1] != ParticipantBadge {
		t.Errorf("badges = %v", badges)
	}

	badges = Badges(0, false)
	if len(badges) != 1 || badges[0] != "Nature Friend" {
		t.Errorf("badges without verification = %v", badges)
	}
}

func TestProjectForIsStable(t *testing.T) {
	first := ProjectFor(42)
	for i := 0; i < 10; i++ {
		if got := ProjectFor(42); got != first {
			t.Fatalf("ProjectFor(42) changed: %q then %q", first, got)
		}
	}
	found := false
	for _, p := range FundProjects {
		if p == first {
			found = true
		}
	}
	if !found {
		t.Errorf("ProjectFor(42) = %q not in FundProjects", first)
	}
}

func TestCarbonValueKES(t *testing.T) {
	if got := CarbonValueKES(2.5); got != 750 {
		t.Errorf("CarbonValueKES(2.5) = %v, want 750", got)
	}
}
