// Package engine fuses playbook knowledge, live weather, the survival
// classifier, and the chat adviser into a single scored prediction.
package engine

import (
	"context"
	"database/sql"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/msituguard/msituguard/internal/classifier"
	"github.com/msituguard/msituguard/internal/llm"
	"github.com/msituguard/msituguard/internal/models"
	"github.com/msituguard/msituguard/internal/store"
)

// Weather serves cached or freshly fetched conditions, reporting false
// when no data is available.
type Weather interface {
	Current(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, bool)
}

// Classifier scores a feature map to a survival probability in [0,1].
type Classifier interface {
	Predict(in classifier.Input) (float64, error)
	Version() string
}

// Adviser is the chat-completion layer. All three calls degrade to
// deterministic fallbacks when it is nil or errors.
type Adviser interface {
	ScoreAdjustment(ctx context.Context, pc llm.PredictionContext) (float64, error)
	Explain(ctx context.Context, pc llm.PredictionContext) (string, error)
	CareSteps(ctx context.Context, pc llm.PredictionContext) ([]string, error)
}

type Engine struct {
	store        *store.Store
	weather      Weather
	model        Classifier
	adviser      Adviser
	modelVersion string
}

// New wires the fusion engine. weather, model, and adviser may each be nil;
// the engine then runs on the playbook and fallback rules alone.
func New(st *store.Store, weather Weather, model Classifier, adviser Adviser, modelVersion string) *Engine {
	return &Engine{
		store:        st,
		weather:      weather,
		model:        model,
		adviser:      adviser,
		modelVersion: modelVersion,
	}
}

type Request struct {
	Species    string
	County     string
	Season     string
	Method     string
	CareLevel  string
	Experience string
	UserID     int64
}

// Sources breaks the final score into its contributing signals.
type Sources struct {
	MLScore         *float64 `json:"ml_prediction"`
	PlaybookScore   float64  `json:"playbook_prediction"`
	ExperienceBonus float64  `json:"experience_bonus"`
	LLMAdjustment   float64  `json:"llm_adjustment"`
	FinalScore      float64  `json:"final_prediction"`
}

type Result struct {
	Reference       string
	SurvivalPercent float64
	PredictionText  string
	RiskTier        string
	RiskLabel       string
	Confidence      string
	MLConfidence    string
	Explanation     string
	CareSteps       []string
	Risks           []string
	Reasons         []string
	Alternatives    []string
	SeasonalBonus   float64
	Rank            int
	MatchScore      float64
	Reason          string
	BestSeason      string
	ModelVersion    string
	WeatherUsed     bool
	MLUsed          bool
	AIUsed          bool
	Sources         Sources
}

var experienceBonus = map[string]float64{"High": 15, "Medium": 8, "Low": 0}

var careAdjustment = map[string]float64{"High": 8, "Medium": 0, "Low": -5}

var speciesVariance = map[string]float64{
	"Grevillea":      1.00,
	"Pine":           0.92,
	"Cypress":        0.88,
	"Neem":           0.95,
	"Indigenous Mix": 1.05,
	"Eucalyptus":     0.90,
}

// Predict runs the full fusion pipeline and records the outcome.
func (e *Engine) Predict(ctx context.Context, req Request) (*Result, error) {
	county, err := e.store.GetCountyByName(req.County)
	if err != nil {
		return nil, err
	}
	species, err := e.store.GetSpeciesByName(req.Species)
	if err != nil {
		return nil, err
	}
	compat, err := e.store.GetCompatibility(county.ID, species.ID)
	if err != nil {
		return nil, err
	}
	env, err := e.store.GetCountyEnvironment(county.ID)
	if err != nil {
		return nil, err
	}

	seasonalBonus := SeasonalBonus(req.Season, compat.SeasonalPerformance)

	var snapshot *models.WeatherSnapshot
	if e.weather != nil {
		if ws, ok := e.weather.Current(ctx, county.Latitude, county.Longitude); ok {
			snapshot = &ws
		}
	}

	var mlScore *float64
	if e.model != nil {
		in := buildFeatures(county, env, species.Name, req.Season, req.Method, req.CareLevel, snapshot)
		if p, err := e.model.Predict(in); err != nil {
			log.Printf("classifier unavailable for %s/%s: %v", req.Species, req.County, err)
		} else {
			v := p * 100
			mlScore = &v
		}
	}

	playbookScore := e.playbookScore(species.Name, compat.SurvivalRate, env, seasonalBonus, req.CareLevel)

	var base float64
	if mlScore != nil {
		base = 0.5**mlScore + 0.5*playbookScore
	} else {
		base = 0.85 * playbookScore
	}

	expBonus := experienceBonus[experienceLevel(req)]

	pc := llm.PredictionContext{
		Species:       species.Name,
		County:        county.Name,
		Season:        req.Season,
		SurvivalRate:  base,
		Reason:        compat.Reason,
		SeasonalBonus: seasonalBonus,
		BaseCare:      species.CareInstructions,
	}

	adjustment := llm.FallbackAdjustment(pc)
	aiUsed := false
	if e.adviser != nil {
		if adj, err := e.adviser.ScoreAdjustment(ctx, pc); err != nil {
			log.Printf("adviser adjustment failed, using fallback: %v", err)
		} else {
			adjustment = adj
			aiUsed = true
		}
	}

	variance, ok := speciesVariance[species.Name]
	if !ok {
		variance = 0.9
	}

	final := clamp((base+expBonus+adjustment)*variance, 5, 95)

	tier := riskTier(final)
	mlUsed := mlScore != nil
	weatherUsed := snapshot != nil

	alternatives := e.alternatives(county.ID, species.ID, req.Season, final)

	pc.SurvivalRate = final
	pc.RiskLevel = tier

	explanation := e.explain(ctx, pc, tier, alternatives, species.BestSeason)
	careSteps := e.carePlan(ctx, pc, tier, species, alternatives, species.BestSeason)

	res := &Result{
		Reference:       uuid.NewString(),
		SurvivalPercent: final,
		PredictionText:  predictionText(final),
		RiskTier:        tier,
		RiskLabel:       RiskLabel(final),
		Confidence:      confidenceLabel(weatherUsed, mlUsed),
		MLConfidence:    mlConfidence(mlScore),
		Explanation:     explanation,
		CareSteps:       careSteps,
		Risks:           assessRisks(species.Name, county.Name, req.Season, experienceLevel(req), final),
		Reasons:         assessReasons(species.Name, county.Name, experienceLevel(req), final),
		Alternatives:    alternatives,
		SeasonalBonus:   seasonalBonus,
		Rank:            compat.Rank,
		MatchScore:      compat.ConfidenceScore,
		Reason:          compat.Reason,
		BestSeason:      species.BestSeason,
		ModelVersion:    e.modelVersion,
		WeatherUsed:     weatherUsed,
		MLUsed:          mlUsed,
		AIUsed:          aiUsed,
		Sources: Sources{
			MLScore:         mlScore,
			PlaybookScore:   playbookScore,
			ExperienceBonus: expBonus,
			LLMAdjustment:   adjustment,
			FinalScore:      final,
		},
	}

	e.record(req, county, species, snapshot, res)
	return res, nil
}

// playbookScore applies species and environment matching on top of the
// compatibility base rate, clamped to [15,95].
func (e *Engine) playbookScore(speciesName string, baseRate float64, env *models.CountyEnvironment, seasonalBonus float64, careLevel string) float64 {
	score := baseRate

	if env != nil {
		altitude := (env.AltitudeMin + env.AltitudeMax) / 2
		temp := (env.TempMin + env.TempMax) / 2

		switch speciesName {
		case "Pine", "Cypress":
			if altitude > 1500 {
				score += 15
			} else {
				score -= 20
			}
			score += tempMatch(temp, 10, 22, true)
		case "Grevillea":
			if altitude > 1500 {
				score += 8
			} else {
				score -= 10
			}
			score += tempMatch(temp, 15, 28, true)
		case "Neem":
			if altitude > 1500 {
				score -= 15
			} else if altitude < 1000 {
				score += 15
			}
			score += tempMatch(temp, 24, 34, true)
		case "Indigenous Mix":
			score += 10
			score += tempMatch(temp, 12, 26, false)
		case "Eucalyptus":
			score += 5
			score += tempMatch(temp, 18, 32, false)
		}
	}

	score += seasonalBonus
	score += careAdjustment[careLevel]
	return clamp(score, 15, 95)
}

// tempMatch rewards a mean temperature inside the optimal band and, when
// penalize is set, punishes one more than five degrees outside it.
func tempMatch(temp, lo, hi float64, penalize bool) float64 {
	if temp >= lo && temp <= hi {
		return 8
	}
	if penalize && (temp < lo-5 || temp > hi+5) {
		return -12
	}
	return 0
}

// alternatives suggests up to two better-suited species when the score
// lands below the medium-risk floor.
func (e *Engine) alternatives(countyID, speciesID int64, season string, final float64) []string {
	if final >= 65 {
		return nil
	}
	rows, err := e.store.GetCountyCompatibilities(countyID)
	if err != nil {
		log.Printf("list compatibilities: %v", err)
		return nil
	}

	type candidate struct {
		name     string
		survival float64
	}
	var candidates []candidate
	for _, r := range rows {
		if r.Species.ID == speciesID || r.Compatibility.SurvivalRate < 70 {
			continue
		}
		if SeasonalBonus(season, r.Compatibility.SeasonalPerformance) < 0 {
			continue
		}
		if r.Compatibility.SurvivalRate < final+15 {
			continue
		}
		candidates = append(candidates, candidate{r.Species.Name, r.Compatibility.SurvivalRate})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].survival > candidates[j].survival })

	var names []string
	for _, c := range candidates {
		names = append(names, c.name)
		if len(names) == 2 {
			break
		}
	}
	return names
}

func (e *Engine) explain(ctx context.Context, pc llm.PredictionContext, tier string, alternatives []string, bestSeason string) string {
	explanation := llm.FallbackExplanation(pc)
	if e.adviser != nil {
		if text, err := e.adviser.Explain(ctx, pc); err != nil {
			log.Printf("adviser explanation failed, using fallback: %v", err)
		} else {
			explanation = text
		}
	}

	if tier == "High" || tier == "Very High" {
		if len(alternatives) > 0 {
			explanation += " For significantly better results in " + pc.Season + ", try " + alternatives[0] + " which has higher success rates during this season."
		} else if bestSeason != "" {
			explanation += " For better results, wait for the optimal planting season (" + bestSeason + ") when conditions are more favorable."
		}
	}
	return explanation
}

// record persists the snapshot and prediction row. Failures are logged,
// never surfaced; the response must not depend on the audit trail.
func (e *Engine) record(req Request, county *models.County, species *models.Species, snapshot *models.WeatherSnapshot, res *Result) {
	p := models.Prediction{
		Reference:     res.Reference,
		CountyID:      county.ID,
		SpeciesID:     species.ID,
		Season:        req.Season,
		CareLevel:     req.CareLevel,
		Experience:    experienceLevel(req),
		FinalScore:    res.SurvivalPercent,
		PlaybookScore: res.Sources.PlaybookScore,
		SeasonalBonus: res.SeasonalBonus,
		RiskTier:      res.RiskTier,
		Confidence:    res.Confidence,
		ModelVersion:  e.modelVersion,
		AIUsed:        res.AIUsed,
		CreatedAt:     time.Now().UTC(),
	}
	if res.Sources.MLScore != nil {
		p.MLScore = sql.NullFloat64{Float64: *res.Sources.MLScore, Valid: true}
	}
	if res.AIUsed {
		p.LLMAdjustment = sql.NullFloat64{Float64: res.Sources.LLMAdjustment, Valid: true}
	}

	p.WeatherSource = "playbook"
	if snapshot != nil {
		p.WeatherSource = "live"
		if id, err := e.store.InsertWeatherSnapshot(*snapshot); err != nil {
			log.Printf("persist weather snapshot: %v", err)
		} else {
			p.SnapshotID = sql.NullInt64{Int64: id, Valid: true}
		}
	}

	if _, err := e.store.InsertPrediction(p); err != nil {
		log.Printf("persist prediction %s: %v", res.Reference, err)
	}
}

func experienceLevel(req Request) string {
	if req.Experience != "" {
		return req.Experience
	}
	return req.CareLevel
}

func riskTier(score float64) string {
	switch {
	case score >= 80:
		return "Low"
	case score >= 65:
		return "Medium"
	case score >= 45:
		return "High"
	default:
		return "Very High"
	}
}

// RiskLabel is the descriptive variant shown to end users.
func RiskLabel(score float64) string {
	switch {
	case score >= 75:
		return "Low Risk – Good Conditions"
	case score >= 60:
		return "Moderate Risk – Extra Care Needed"
	default:
		return "High Risk – Challenging Conditions"
	}
}

func predictionText(score float64) string {
	if score >= 60 {
		return "Likely to Survive"
	}
	return "Challenging Conditions"
}

func confidenceLabel(weatherUsed, mlUsed bool) string {
	switch {
	case weatherUsed && mlUsed:
		return "High"
	case mlUsed:
		return "Medium"
	default:
		return "Low"
	}
}

func mlConfidence(mlScore *float64) string {
	switch {
	case mlScore == nil:
		return "No ML Data"
	case *mlScore > 40:
		return "High"
	case *mlScore > 25:
		return "Medium"
	default:
		return "Low"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
