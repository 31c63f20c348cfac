package engine

import "github.com/msituguard/msituguard/internal/models"

// Recommendation pairs a county-ranked species with its playbook profile.
type Recommendation struct {
	Species       models.Species
	SurvivalRate  float64
	Rank          int
	MatchScore    float64
	Reason        string
	RiskLabel     string
	SeasonalBonus map[string]float64
}

// Recommend lists the species with playbook coverage for a county, best
// rank first, filtered to those at or above minSurvival.
func (e *Engine) Recommend(countyName string, minSurvival float64) ([]Recommendation, error) {
	county, err := e.store.GetCountyByName(countyName)
	if err != nil {
		return nil, err
	}
	rows, err := e.store.GetCountyCompatibilities(county.ID)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(rows))
	for _, r := range rows {
		if r.Compatibility.SurvivalRate < minSurvival {
			continue
		}
		recs = append(recs, Recommendation{
			Species:       r.Species,
			SurvivalRate:  r.Compatibility.SurvivalRate,
			Rank:          r.Compatibility.Rank,
			MatchScore:    r.Compatibility.ConfidenceScore,
			Reason:        r.Compatibility.Reason,
			RiskLabel:     RiskLabel(r.Compatibility.SurvivalRate),
			SeasonalBonus: r.Compatibility.SeasonalPerformance,
		})
	}
	return recs, nil
}
