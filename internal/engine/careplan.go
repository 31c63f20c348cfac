package engine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/msituguard/msituguard/internal/llm"
	"github.com/msituguard/msituguard/internal/models"
)

// carePlan builds the after-care list for a scored prediction. The adviser's
// steps are preferred when they survive sanitization; otherwise the plan
// follows the risk policy over the species' static instructions.
func (e *Engine) carePlan(ctx context.Context, pc llm.PredictionContext, tier string, species *models.Species, alternatives []string, bestSeason string) []string {
	if e.adviser != nil {
		if steps, err := e.adviser.CareSteps(ctx, pc); err != nil {
			log.Printf("adviser care steps failed, using policy plan: %v", err)
		} else {
			return steps
		}
	}

	switch tier {
	case "Low":
		return staticCare(species)
	case "Medium":
		return llm.FallbackCareSteps(pc)
	default:
		return e.highRiskPlan(tier, alternatives, bestSeason)
	}
}

func (e *Engine) highRiskPlan(tier string, alternatives []string, bestSeason string) []string {
	lead := "Recommended"
	if tier == "Very High" {
		lead = "Strongly recommended"
	}

	if len(alternatives) > 0 {
		alt := alternatives[0]
		plan := []string{fmt.Sprintf("%s: Plant %s instead (better survival rate)", lead, alt)}
		if altSpecies, err := e.store.GetSpeciesByName(alt); err != nil {
			log.Printf("load alternative species %s: %v", alt, err)
		} else {
			plan = append(plan, staticCare(altSpecies)...)
		}
		return plan
	}

	return []string{
		fmt.Sprintf("%s: Wait for %s for optimal conditions", lead, bestSeason),
		"Prepare planting site with compost and proper drainage",
		"Source quality seedlings before the season",
		"Consider soil testing and improvement",
	}
}

func staticCare(species *models.Species) []string {
	if len(species.CareInstructions) > 0 {
		return species.CareInstructions
	}
	return []string{"Follow standard tree care practices"}
}

var (
	hotLowlandCounties   = map[string]bool{"Mombasa": true, "Kilifi": true, "Garissa": true, "Turkana": true}
	coolHighlandCounties = map[string]bool{"Nyeri": true, "Meru": true, "Nakuru": true}
)

// assessRisks derives the headline risk factors from species/county class,
// season dryness, and care level.
func assessRisks(speciesName, countyName, season, careLevel string, final float64) []string {
	var risks []string

	switch speciesName {
	case "Pine", "Cypress":
		if hotLowlandCounties[countyName] {
			risks = append(risks, "Highland species struggle in hot coastal/arid conditions")
		}
	case "Neem":
		if coolHighlandCounties[countyName] {
			risks = append(risks, "Lowland species may not tolerate highland cold")
		}
	}

	if strings.Contains(season, "Dry") && speciesName != "Neem" {
		risks = append(risks, "Dry season planting increases water stress")
	}
	if careLevel == "Low" && final < 70 {
		risks = append(risks, "Low care may reduce survival in challenging conditions")
	}
	return risks
}

func assessReasons(speciesName, countyName, careLevel string, final float64) []string {
	var reasons []string

	switch speciesName {
	case "Pine", "Cypress":
		if !hotLowlandCounties[countyName] {
			reasons = append(reasons, "Highland species thrive in cool, moist conditions")
		}
	case "Neem":
		if !coolHighlandCounties[countyName] {
			reasons = append(reasons, "Excellent drought and heat tolerance")
		}
	case "Grevillea":
		reasons = append(reasons, "Good adaptation to highland agroforestry")
	case "Indigenous Mix":
		reasons = append(reasons, "Native species naturally adapted to local conditions")
	}

	if careLevel == "High" {
		reasons = append(reasons, "High care level improves survival chances")
	}
	if final >= 80 {
		reasons = append(reasons, "Optimal environmental match for this species")
	}
	return reasons
}
