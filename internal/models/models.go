package models

import (
	"database/sql"
	"time"
)

type County struct {
	ID          int64
	Name        string
	Latitude    float64
	Longitude   float64
	ClimateZone string
}

type CountyEnvironment struct {
	CountyID    int64
	RainfallMin float64
	RainfallMax float64
	TempMin     float64
	TempMax     float64
	AltitudeMin float64
	AltitudeMax float64
	SoilPHMin   float64
	SoilPHMax   float64
	SoilTypes   string
	ClimateZone string
	BestSeasons string
}

type Species struct {
	ID               int64
	Name             string
	BaseSurvival     float64
	Soil             string
	Rainfall         string
	Temperature      string
	CareLevel        string
	BestSeason       string
	PlantingMethod   string
	Water            string
	PlantingGuide    []string
	CareInstructions []string
}

// Compatibility links a county to a species with its local suitability.
// SeasonalPerformance maps a season label to a score delta, stored as JSON.
type Compatibility struct {
	CountyID            int64
	SpeciesID           int64
	SurvivalRate        float64
	Rank                int
	ConfidenceScore     float64
	SeasonalPerformance map[string]float64
	Reason              string
}

type WeatherSnapshot struct {
	ID         int64
	Latitude   float64
	Longitude  float64
	TempC      float64
	Humidity   float64
	WindSpeed  float64
	RainfallMM float64
	FetchedAt  time.Time
}

type Prediction struct {
	ID               int64
	Reference        string
	CountyID         int64
	SpeciesID        int64
	Season           string
	CareLevel        string
	Experience       string
	FinalScore       float64
	MLScore          sql.NullFloat64
	PlaybookScore    float64
	SeasonalBonus    float64
	LLMAdjustment    sql.NullFloat64
	RiskTier         string
	Confidence       string
	WeatherSource    string
	SnapshotID       sql.NullInt64
	ModelVersion     string
	AIUsed           bool
	CreatedAt        time.Time
}

// TreePlanting transitions planned -> planted -> verified. Awarded is set
// exactly once, inside the same transaction that writes the ledger rows.
type TreePlanting struct {
	ID         int64
	UserID     int64
	CountyID   int64
	SpeciesID  int64
	TreeCount  int
	Status     string
	Awarded    bool
	PlantedAt  sql.NullTime
	VerifiedAt sql.NullTime
	CreatedAt  time.Time
}

type EnvironmentalReport struct {
	ID          int64
	UserID      int64
	CountyID    int64
	Category    string
	Description string
	Status      string
	Awarded     bool
	CreatedAt   time.Time
}

type LedgerEntry struct {
	ID        int64
	UserID    int64
	Kind      string // "points" or "carbon"
	Amount    float64
	ValueKES  sql.NullFloat64
	RefKind   string
	RefID     int64
	Note      string
	CreatedAt time.Time
}

type UserBalance struct {
	UserID            int64
	Points            int64
	CarbonBalance     float64
	CarbonEarned      float64
	EstimatedValueKES float64
	Badges            []string
}

type CarbonTransaction struct {
	ID          int64
	UserID      int64
	Kind        string // "sell", "fund", "earn"
	Amount      float64
	ValueKES    float64
	ProjectName sql.NullString
	CreatedAt   time.Time
}
