package engine

import (
	"sort"
	"strings"
)

// months recognized in season labels, including the common short forms.
var seasonMonths = []string{
	"march", "april", "may", "june", "july", "august",
	"september", "sept", "october", "oct", "november", "december", "dec",
}

// SeasonalBonus resolves the score delta for a requested planting season
// against a compatibility's seasonal performance map. A season label and a
// map key match when they share a month token. Keys are visited in sorted
// order so the result is stable; the first match wins, default 0.
func SeasonalBonus(season string, performance map[string]float64) float64 {
	if len(performance) == 0 {
		return 0
	}
	label := normalizeSeason(season)

	keys := make([]string, 0, len(performance))
	for k := range performance {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if monthsOverlap(label, normalizeSeason(key)) {
			return performance[key]
		}
	}
	return 0
}

func monthsOverlap(label, key string) bool {
	for _, month := range seasonMonths {
		if strings.Contains(label, month) && strings.Contains(key, month) {
			return true
		}
	}
	return false
}

// normalizeSeason lowercases and folds en and em dashes so "March–May"
// matches "march-may".
func normalizeSeason(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "—", "-")
	return s
}
