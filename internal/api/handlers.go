package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/msituguard/msituguard/internal/engine"
	"github.com/msituguard/msituguard/internal/geo"
	"github.com/msituguard/msituguard/internal/metrics"
)

type predictRequest struct {
	Species    string `json:"tree_species"`
	County     string `json:"county"`
	Season     string `json:"planting_season"`
	Method     string `json:"planting_method"`
	CareLevel  string `json:"care_level"`
	Experience string `json:"experience"`
	UserID     int64  `json:"user_id"`
}

type predictResponse struct {
	Success             bool           `json:"success"`
	Reference           string         `json:"reference"`
	SurvivalPercentage  float64        `json:"survival_percentage"`
	SurvivalProbability float64        `json:"survival_probability"`
	Prediction          string         `json:"prediction"`
	RiskLevel           string         `json:"risk_level"`
	RiskTier            string         `json:"risk_tier"`
	ConfidenceLevel     string         `json:"confidence_level"`
	MLConfidence        string         `json:"ml_confidence"`
	Explanation         string         `json:"explanation"`
	AfterCare           []string       `json:"after_care"`
	Risks               []string       `json:"risks"`
	Reasons             []string       `json:"reasons"`
	AlternativeSpecies  []string       `json:"alternative_species"`
	SpeciesRank         int            `json:"species_rank"`
	MatchScore          float64        `json:"match_score"`
	Reason              string         `json:"recommendation_reason"`
	BestSeason          string         `json:"best_season"`
	ModelVersion        string         `json:"model_version"`
	WeatherUsed         bool           `json:"weather_used"`
	MLUsed              bool           `json:"ml_used"`
	AIUsed              bool           `json:"ai_used"`
	Sources             engine.Sources `json:"prediction_sources"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Species == "" || req.County == "" || req.Season == "" || req.Method == "" || req.CareLevel == "" {
		writeError(w, http.StatusBadRequest, errors.New("tree_species, county, planting_season, planting_method, and care_level are required"))
		return
	}

	start := time.Now()
	res, err := s.engine.Predict(r.Context(), engine.Request{
		Species:    req.Species,
		County:     req.County,
		Season:     req.Season,
		Method:     req.Method,
		CareLevel:  req.CareLevel,
		Experience: req.Experience,
		UserID:     req.UserID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metrics.PredictionsTotal.WithLabelValues(req.County, req.Species, res.RiskTier).Inc()
	metrics.PredictionLatency.WithLabelValues(req.County).Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, predictResponse{
		Success:             true,
		Reference:           res.Reference,
		SurvivalPercentage:  res.SurvivalPercent,
		SurvivalProbability: res.SurvivalPercent / 100,
		Prediction:          res.PredictionText,
		RiskLevel:           res.RiskLabel,
		RiskTier:            res.RiskTier,
		ConfidenceLevel:     res.Confidence,
		MLConfidence:        res.MLConfidence,
		Explanation:         res.Explanation,
		AfterCare:           res.CareSteps,
		Risks:               res.Risks,
		Reasons:             res.Reasons,
		AlternativeSpecies:  res.Alternatives,
		SpeciesRank:         res.Rank,
		MatchScore:          res.MatchScore,
		Reason:              res.Reason,
		BestSeason:          res.BestSeason,
		ModelVersion:        res.ModelVersion,
		WeatherUsed:         res.WeatherUsed,
		MLUsed:              res.MLUsed,
		AIUsed:              res.AIUsed,
		Sources:             res.Sources,
	})
}

type recommendRequest struct {
	County      string  `json:"county"`
	MinSurvival float64 `json:"min_survival"`
}

type recommendationDTO struct {
	Species       string             `json:"species"`
	SurvivalRate  float64            `json:"survival_rate"`
	Rank          int                `json:"rank"`
	MatchScore    float64            `json:"match_score"`
	Reason        string             `json:"reason"`
	RiskLevel     string             `json:"risk_level"`
	SeasonalBonus map[string]float64 `json:"seasonal_performance"`
	Soil          string             `json:"soil"`
	Rainfall      string             `json:"rainfall"`
	Temperature   string             `json:"temperature"`
	CareLevel     string             `json:"care_level"`
	BestSeason    string             `json:"best_month"`
	Method        string             `json:"planting_method"`
	Water         string             `json:"water"`
	PlantingGuide []string           `json:"planting_guide"`
	CareSteps     []string           `json:"care_instructions"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.County == "" {
		writeError(w, http.StatusBadRequest, errors.New("county is required"))
		return
	}

	recs, err := s.engine.Recommend(req.County, req.MinSurvival)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]recommendationDTO, 0, len(recs))
	playbook := make(map[string][]string, len(recs))
	for _, rec := range recs {
		playbook[rec.Species.Name] = rec.Species.PlantingGuide
		dtos = append(dtos, recommendationDTO{
			Species:       rec.Species.Name,
			SurvivalRate:  rec.SurvivalRate,
			Rank:          rec.Rank,
			MatchScore:    rec.MatchScore,
			Reason:        rec.Reason,
			RiskLevel:     rec.RiskLabel,
			SeasonalBonus: rec.SeasonalBonus,
			Soil:          rec.Species.Soil,
			Rainfall:      rec.Species.Rainfall,
			Temperature:   rec.Species.Temperature,
			CareLevel:     rec.Species.CareLevel,
			BestSeason:    rec.Species.BestSeason,
			Method:        rec.Species.PlantingMethod,
			Water:         rec.Species.Water,
			PlantingGuide: rec.Species.PlantingGuide,
			CareSteps:     rec.Species.CareInstructions,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"county":   req.County,
		"species":  dtos,
		"playbook": playbook,
	})
}

type detectCountyRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (s *Server) handleDetectCounty(w http.ResponseWriter, r *http.Request) {
	var req detectCountyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	counties, err := s.store.GetAllCounties()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	nearest, distanceKM := geo.NearestCounty(req.Lat, req.Lon, counties)
	if nearest == nil {
		writeError(w, http.StatusNotFound, errors.New("no counties available"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"county":      nearest.Name,
		"distance_km": distanceKM,
		"note":        "Suggested county based on approximate location. Please confirm.",
		"coordinates": map[string]float64{"lat": req.Lat, "lon": req.Lon},
	})
}

type countyEnvironmentRequest struct {
	County string `json:"county"`
}

func (s *Server) handleCountyEnvironment(w http.ResponseWriter, r *http.Request) {
	var req countyEnvironmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	county, err := s.store.GetCountyByName(req.County)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	env, err := s.store.GetCountyEnvironment(county.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"environment": map[string]any{
			"altitude_m":    (env.AltitudeMin + env.AltitudeMax) / 2,
			"rainfall_mm":   (env.RainfallMin + env.RainfallMax) / 2,
			"temperature_c": (env.TempMin + env.TempMax) / 2,
			"soil_type":     env.SoilTypes,
			"climate_zone":  env.ClimateZone,
			"best_season":   env.BestSeasons,
		},
	})
}
