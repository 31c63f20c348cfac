package llm

import "fmt"

// Counties where indigenous and highland conifer species historically do
// well, and the hot lowland counties suited to drought-tolerant species.
var (
	highlandCounties = map[string]bool{"Meru": true, "Nyeri": true, "Kiambu": true}
	aridCounties     = map[string]bool{"Mombasa": true, "Kilifi": true, "Garissa": true, "Turkana": true}
	coastalCounties  = map[string]bool{"Mombasa": true, "Kilifi": true}
)

// FallbackAdjustment applies rule-of-thumb species/county affinities when
// the chat adviser is unavailable. The result obeys the same clamp as the
// live adviser.
func FallbackAdjustment(pc PredictionContext) float64 {
	var adj float64

	if pc.SeasonalBonus > 5 {
		adj += 5
	} else if pc.SeasonalBonus < -5 {
		adj -= 3
	}

	switch pc.Species {
	case "Indigenous Mix":
		if highlandCounties[pc.County] {
			adj += 12
		}
	case "Pine", "Cypress":
		if highlandCounties[pc.County] {
			adj += 8
		}
		if coastalCounties[pc.County] {
			adj -= 12
		}
	case "Neem":
		if aridCounties[pc.County] {
			adj += 10
		}
		if pc.County == "Meru" || pc.County == "Nyeri" {
			adj -= 8
		}
	case "Eucalyptus":
		adj += 3
	}

	return ClampAdjustment(adj)
}

// FallbackExplanation picks a templated explanation by survival band.
func FallbackExplanation(pc PredictionContext) string {
	switch {
	case pc.SurvivalRate >= 80:
		return fmt.Sprintf("%s is an excellent choice for %s County. The local climate and soil conditions strongly favor this species, and planting during %s gives it the best start. With basic care, your trees should thrive.", pc.Species, pc.County, pc.Season)
	case pc.SurvivalRate >= 65:
		return fmt.Sprintf("%s performs well in %s County when planted during %s. Conditions are generally favorable, though consistent care in the first months will make the difference. Follow the care steps closely for strong growth.", pc.Species, pc.County, pc.Season)
	default:
		return fmt.Sprintf("%s faces challenges in %s County during %s. The local conditions are not ideal for this species, so survival depends heavily on dedicated care. Consider the suggested alternatives, or commit to close monitoring and extra watering.", pc.Species, pc.County, pc.Season)
	}
}

// FallbackCareSteps adapts the species base care list to the risk implied
// by the survival band.
func FallbackCareSteps(pc PredictionContext) []string {
	base := pc.BaseCare
	if len(base) == 0 {
		base = []string{
			"Water regularly during the first dry season",
			"Mulch around the base to retain soil moisture",
			"Protect young seedlings from livestock",
			"Remove competing weeds within a one meter radius",
		}
	}

	switch {
	case pc.SurvivalRate >= 80:
		return base
	case pc.SurvivalRate >= 65:
		steps := make([]string, 0, len(base)+2)
		steps = append(steps, "CRITICAL: Follow all care steps closely")
		steps = append(steps, base...)
		steps = append(steps, "Check soil moisture weekly")
		if len(steps) > 6 {
			steps = steps[:6]
		}
		return steps
	default:
		return []string{
			"CRITICAL: This planting needs intensive care to survive",
			"Water deeply twice per week without fail",
			"Apply thick mulch and renew it monthly",
			"Shield seedlings from direct sun and strong wind",
			"Inspect weekly for pests, disease, and water stress",
		}
	}
}
