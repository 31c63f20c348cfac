// Package playbook holds the curated county and species knowledge base for
// Kenyan tree planting: county environment profiles, species profiles, and
// per-county compatibility scores with seasonal performance deltas.
package playbook

type CountySeed struct {
	Name        string
	Latitude    float64
	Longitude   float64
	ClimateZone string
}

type EnvironmentSeed struct {
	RainfallMin float64
	RainfallMax float64
	TempMin     float64
	TempMax     float64
	AltitudeMin float64
	AltitudeMax float64
	SoilPHMin   float64
	SoilPHMax   float64
	SoilTypes   string
	BestSeasons string
}

type SpeciesSeed struct {
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

type CompatibilitySeed struct {
	County              string
	Species             string
	SurvivalRate        float64
	Rank                int
	ConfidenceScore     float64
	SeasonalPerformance map[string]float64
	Reason              string
}

var Counties = []CountySeed{
	{Name: "Meru", Latitude: 0.0476, Longitude: 37.6498, ClimateZone: "Semi-Humid"},
	{Name: "Nakuru", Latitude: -0.3031, Longitude: 36.0800, ClimateZone: "Sub-Humid"},
	{Name: "Machakos", Latitude: -1.5174, Longitude: 37.2625, ClimateZone: "Semi-Arid"},
	{Name: "Turkana", Latitude: 2.9235, Longitude: 35.1728, ClimateZone: "Extremely Arid"},
	{Name: "Garissa", Latitude: -0.4569, Longitude: 39.6458, ClimateZone: "Arid"},
	{Name: "Mombasa", Latitude: -4.0435, Longitude: 39.6682, ClimateZone: "Coastal Humid"},
	{Name: "Nyeri", Latitude: -0.4236, Longitude: 36.9519, ClimateZone: "Sub-Humid"},
	{Name: "Kiambu", Latitude: -1.1833, Longitude: 36.9333, ClimateZone: "Sub-Humid"},
	{Name: "Embu", Latitude: -0.5312, Longitude: 37.4506, ClimateZone: "Semi-Humid"},
}

var Environments = map[string]EnvironmentSeed{
	"Meru": {
		RainfallMin: 600, RainfallMax: 1500,
		TempMin: 15, TempMax: 25,
		AltitudeMin: 1200, AltitudeMax: 2000,
		SoilPHMin: 6.0, SoilPHMax: 7.5,
		SoilTypes:   "Clay / Loam",
		BestSeasons: "March–May, Oct–Dec",
	},
	"Machakos": {
		RainfallMin: 500, RainfallMax: 1100,
		TempMin: 18, TempMax: 27,
		AltitudeMin: 1000, AltitudeMax: 1600,
		SoilPHMin: 6.0, SoilPHMax: 7.4,
		SoilTypes:   "Red Soil / Clay",
		BestSeasons: "March–May",
	},
	"Turkana": {
		RainfallMin: 100, RainfallMax: 300,
		TempMin: 28, TempMax: 36,
		AltitudeMin: 300, AltitudeMax: 900,
		SoilPHMin: 7.5, SoilPHMax: 8.5,
		SoilTypes:   "Rocky / Sandy",
		BestSeasons: "Any (if irrigated)",
	},
	"Garissa": {
		RainfallMin: 250, RainfallMax: 350,
		TempMin: 26, TempMax: 34,
		AltitudeMin: 150, AltitudeMax: 400,
		SoilPHMin: 6.0, SoilPHMax: 7.0,
		SoilTypes:   "Red Soil",
		BestSeasons: "March–May",
	},
	"Nakuru": {
		RainfallMin: 800, RainfallMax: 1400,
		TempMin: 12, TempMax: 22,
		AltitudeMin: 1600, AltitudeMax: 2100,
		SoilPHMin: 5.5, SoilPHMax: 6.8,
		SoilTypes:   "Volcanic / Loam",
		BestSeasons: "March–June, Oct–Dec",
	},
	"Mombasa": {
		RainfallMin: 1000, RainfallMax: 1200,
		TempMin: 24, TempMax: 32,
		AltitudeMin: 0, AltitudeMax: 50,
		SoilPHMin: 6.5, SoilPHMax: 7.8,
		SoilTypes:   "Sandy / Coral",
		BestSeasons: "April–June",
	},
	"Nyeri": {
		RainfallMin: 900, RainfallMax: 1600,
		TempMin: 12, TempMax: 20,
		AltitudeMin: 1700, AltitudeMax: 2100,
		SoilPHMin: 6.0, SoilPHMax: 7.0,
		SoilTypes:   "Volcanic / Clay",
		BestSeasons: "March–May, October–December",
	},
	"Kiambu": {
		RainfallMin: 800, RainfallMax: 1400,
		TempMin: 14, TempMax: 22,
		AltitudeMin: 1500, AltitudeMax: 1900,
		SoilPHMin: 6.2, SoilPHMax: 7.2,
		SoilTypes:   "Clay / Loam",
		BestSeasons: "March–May, October–December",
	},
	"Embu": {
		RainfallMin: 500, RainfallMax: 1500,
		TempMin: 18, TempMax: 28,
		AltitudeMin: 1200, AltitudeMax: 1800,
		SoilPHMin: 6.0, SoilPHMax: 7.3,
		SoilTypes:   "Red Soil / Clay",
		BestSeasons: "March–May, October–December",
	},
}

var SpeciesProfiles = []SpeciesSeed{
	{
		Name:           "Grevillea",
		BaseSurvival:   75.0,
		Soil:           "Loam / Clay-loam",
		Rainfall:       "600–1800mm",
		Temperature:    "15–28°C",
		CareLevel:      "Low",
		BestSeason:     "March–May, October–December",
		PlantingMethod: "Seedling",
		Water:          "Weekly watering for the first 4 weeks",
		PlantingGuide: []string{
			"Dig a hole 2x2 ft",
			"Mix soil with compost/manure",
			"Place seedling upright",
			"Mulch to retain moisture",
			"Water immediately after planting",
		},
		CareInstructions: []string{
			"Mulch every 2–3 months",
			"Protect from goats/livestock",
			"Remove weeds monthly",
			"Water during long dry periods",
		},
	},
	{
		Name:           "Cypress",
		BaseSurvival:   78.0,
		Soil:           "Clay / Volcanic",
		Rainfall:       "700–1500mm",
		Temperature:    "12–22°C",
		CareLevel:      "Medium",
		BestSeason:     "March–June",
		PlantingMethod: "Cutting or Seedling",
		Water:          "2x per week for first month",
		PlantingGuide: []string{
			"Dig deep hole (3x3 ft)",
			"Add compost and topsoil",
			"Stake if area is windy",
			"Water deeply after planting",
		},
		CareInstructions: []string{
			"Weed monthly",
			"Apply manure annually",
			"Prune to shape",
			"Protect from frost in high areas",
		},
	},
	{
		Name:           "Pine",
		BaseSurvival:   80.0,
		Soil:           "Red soil / Clay / Sandy-loam",
		Rainfall:       "800–1800mm",
		Temperature:    "10–22°C",
		CareLevel:      "Medium",
		BestSeason:     "March–June",
		PlantingMethod: "Seedling",
		Water:          "Weekly for 2 months",
		PlantingGuide: []string{
			"Prepare hole 2x2 ft",
			"Apply compost",
			"Water thoroughly",
			"Ensure spacing of 1.5–3m",
		},
		CareInstructions: []string{
			"Remove weeds regularly",
			"Mulch during dry season",
			"Protect from livestock",
			"Check for pests annually",
		},
	},
	{
		Name:           "Neem",
		BaseSurvival:   70.0,
		Soil:           "Red soil / Sandy soil",
		Rainfall:       "200–600mm",
		Temperature:    "24–34°C",
		CareLevel:      "Low",
		BestSeason:     "March–April",
		PlantingMethod: "Seedling or Direct Seeding",
		Water:          "Little water (can survive drought)",
		PlantingGuide: []string{
			"Dig 2x2 ft hole",
			"Mix soil with little manure",
			"Plant the seedling",
			"Water lightly",
		},
		CareInstructions: []string{
			"Minimal care required",
			"Keep area weed-free",
			"Water once every 10–14 days during drought",
			"Protect from termites",
		},
	},
	{
		Name:           "Eucalyptus",
		BaseSurvival:   72.0,
		Soil:           "Sandy / Loam",
		Rainfall:       "400–1200mm",
		Temperature:    "18–32°C",
		CareLevel:      "Low",
		BestSeason:     "March–May",
		PlantingMethod: "Seedling",
		Water:          "Weekly for 4 weeks",
		PlantingGuide: []string{
			"Dig hole 2 ft deep",
			"Fill with manure and topsoil",
			"Plant straight and firm",
			"Mulch lightly",
		},
		CareInstructions: []string{
			"Weed around base",
			"Avoid planting near rivers (drinks a lot)",
			"Prune after 1 year",
		},
	},
	{
		Name:           "Indigenous Mix",
		BaseSurvival:   85.0,
		Soil:           "Loam / Clay / Volcanic",
		Rainfall:       "600–1800mm",
		Temperature:    "12–26°C",
		CareLevel:      "Medium",
		BestSeason:     "March–May",
		PlantingMethod: "Seedling",
		Water:          "Weekly for 1 month",
		PlantingGuide: []string{
			"Dig hole 2x2 ft",
			"Fill with compost",
			"Water well",
			"Mulch",
		},
		CareInstructions: []string{
			"Weed regularly",
			"Apply mulch",
			"Protect from livestock",
			"Prune lightly after 1 year",
		},
	},
}

var Compatibilities = []CompatibilitySeed{
	{County: "Meru", Species: "Indigenous Mix", SurvivalRate: 85, Rank: 1, ConfidenceScore: 98,
		SeasonalPerformance: map[string]float64{"March-May": 8, "Oct-Dec": 5, "June-Sept": -15},
		Reason:              "Native highland species - perfectly adapted to Meru's climate and soil"},
	{County: "Meru", Species: "Grevillea", SurvivalRate: 78, Rank: 2, ConfidenceScore: 85,
		SeasonalPerformance: map[string]float64{"Oct-Dec": 12, "March-May": 6, "June-Sept": -18},
		Reason:              "Thrives in Meru's highland conditions, especially during short rains (Oct-Dec)"},
	{County: "Meru", Species: "Pine", SurvivalRate: 82, Rank: 2, ConfidenceScore: 88,
		SeasonalPerformance: map[string]float64{"March-June": 10, "July-Sept": -8, "Oct-Dec": 3},
		Reason:              "Excellent for Meru highlands - cool temperatures and good rainfall"},
	{County: "Meru", Species: "Cypress", SurvivalRate: 75, Rank: 3, ConfidenceScore: 80,
		SeasonalPerformance: map[string]float64{"March-June": 8, "July-Sept": -12, "Oct-Dec": 2},
		Reason:              "Good highland species but needs consistent moisture"},

	{County: "Nakuru", Species: "Pine", SurvivalRate: 88, Rank: 1, ConfidenceScore: 96,
		SeasonalPerformance: map[string]float64{"March-June": 7, "July-Sept": -5, "Oct-Dec": 4},
		Reason:              "Perfect conditions - Nakuru's volcanic soil and cool climate ideal for Pine"},
	{County: "Nakuru", Species: "Cypress", SurvivalRate: 85, Rank: 2, ConfidenceScore: 92,
		SeasonalPerformance: map[string]float64{"March-June": 6, "July-Sept": -8, "Oct-Dec": 3},
		Reason:              "Excellent highland climate, volcanic soil perfect for Cypress"},
	{County: "Nakuru", Species: "Indigenous Mix", SurvivalRate: 83, Rank: 3, ConfidenceScore: 90,
		SeasonalPerformance: map[string]float64{"March-May": 5, "Oct-Dec": 4, "June-Sept": -12},
		Reason:              "Native highland species adapted to Nakuru's conditions"},

	{County: "Machakos", Species: "Indigenous Mix", SurvivalRate: 80, Rank: 1, ConfidenceScore: 92,
		SeasonalPerformance: map[string]float64{"March-May": 10, "June-Sept": -8, "Oct-Dec": 5},
		Reason:              "Native dryland species - perfectly adapted to Machakos semi-arid conditions"},
	{County: "Machakos", Species: "Neem", SurvivalRate: 76, Rank: 2, ConfidenceScore: 88,
		SeasonalPerformance: map[string]float64{"March-May": 12, "June-Sept": -5, "Oct-Dec": 3},
		Reason:              "Excellent drought tolerance - thrives in Machakos dry conditions"},
	{County: "Machakos", Species: "Grevillea", SurvivalRate: 65, Rank: 3, ConfidenceScore: 70,
		SeasonalPerformance: map[string]float64{"March-May": 15, "June-Sept": -20, "Oct-Dec": 5},
		Reason:              "Challenging but possible with extra care during wet season only"},

	{County: "Turkana", Species: "Neem", SurvivalRate: 82, Rank: 1, ConfidenceScore: 95,
		SeasonalPerformance: map[string]float64{"March-April": 8, "Irrigated": 15, "June-Sept": -25},
		Reason:              "Perfect for Turkana - exceptional drought and heat tolerance"},
	{County: "Turkana", Species: "Indigenous Mix", SurvivalRate: 75, Rank: 2, ConfidenceScore: 85,
		SeasonalPerformance: map[string]float64{"March-May": 10, "Irrigated": 12, "June-Sept": -20},
		Reason:              "Native dryland acacias adapted to extreme arid conditions"},
	{County: "Turkana", Species: "Eucalyptus", SurvivalRate: 55, Rank: 3, ConfidenceScore: 60,
		SeasonalPerformance: map[string]float64{"March-May": 15, "Irrigated": 20, "June-Sept": -30},
		Reason:              "High risk - only with irrigation and intensive care"},

	{County: "Garissa", Species: "Neem", SurvivalRate: 76, Rank: 1, ConfidenceScore: 91,
		SeasonalPerformance: map[string]float64{"March-May": 8, "Irrigated": 12, "Dry": -18},
		Reason:              "Best species for arid conditions, minimal water needs"},

	{County: "Mombasa", Species: "Neem", SurvivalRate: 78, Rank: 1, ConfidenceScore: 85,
		SeasonalPerformance: map[string]float64{"April-June": 8, "July-Sept": 2, "Oct-Dec": 3},
		Reason:              "Good heat tolerance for Mombasa's hot coastal climate"},
	{County: "Mombasa", Species: "Indigenous Mix", SurvivalRate: 72, Rank: 2, ConfidenceScore: 80,
		SeasonalPerformance: map[string]float64{"April-June": 10, "July-Sept": -5, "Oct-Dec": 5},
		Reason:              "Native coastal species adapted to Mombasa conditions"},
	{County: "Mombasa", Species: "Grevillea", SurvivalRate: 58, Rank: 3, ConfidenceScore: 65,
		SeasonalPerformance: map[string]float64{"April-June": 15, "July-Sept": -15, "Oct-Dec": 5},
		Reason:              "Challenging - needs intensive care and optimal timing"},
	{County: "Mombasa", Species: "Pine", SurvivalRate: 35, Rank: 4, ConfidenceScore: 40,
		SeasonalPerformance: map[string]float64{"April-June": 10, "July-Sept": -20, "Oct-Dec": 5},
		Reason:              "Very high risk - coastal heat unsuitable for highland Pine"},

	{County: "Nyeri", Species: "Pine", SurvivalRate: 92, Rank: 1, ConfidenceScore: 98,
		SeasonalPerformance: map[string]float64{"March-June": 5, "July-Sept": -3, "Oct-Dec": 4},
		Reason:              "Absolute best conditions - Nyeri's cool highland climate perfect for Pine"},
	{County: "Nyeri", Species: "Indigenous Mix", SurvivalRate: 90, Rank: 2, ConfidenceScore: 96,
		SeasonalPerformance: map[string]float64{"March-May": 6, "Oct-Dec": 5, "June-Sept": -8},
		Reason:              "Native highland species - excellent adaptation to Nyeri conditions"},
	{County: "Nyeri", Species: "Cypress", SurvivalRate: 87, Rank: 3, ConfidenceScore: 92,
		SeasonalPerformance: map[string]float64{"March-June": 4, "July-Sept": -6, "Oct-Dec": 3},
		Reason:              "Excellent highland species for Nyeri's cool climate"},
	{County: "Nyeri", Species: "Grevillea", SurvivalRate: 84, Rank: 4, ConfidenceScore: 88,
		SeasonalPerformance: map[string]float64{"March-May": 6, "Oct-Dec": 8, "June-Sept": -10},
		Reason:              "Good highland adaptation, thrives in Nyeri's conditions"},

	{County: "Kiambu", Species: "Grevillea", SurvivalRate: 87, Rank: 1, ConfidenceScore: 94,
		SeasonalPerformance: map[string]float64{"March-May": 6, "Oct-Dec": 4, "June-Sept": -8},
		Reason:              "Excellent highland adaptation, perfect for coffee agroforestry"},
	{County: "Kiambu", Species: "Cypress", SurvivalRate: 83, Rank: 2, ConfidenceScore: 90,
		SeasonalPerformance: map[string]float64{"March-June": 3, "July-Sept": -8, "Oct-Dec": 1},
		Reason:              "Good highland species, suitable climate and altitude"},

	{County: "Embu", Species: "Grevillea", SurvivalRate: 81, Rank: 1, ConfidenceScore: 87,
		SeasonalPerformance: map[string]float64{"March-May": 5, "Oct-Dec": 3, "June-Sept": -10},
		Reason:              "Good highland adaptation, excellent for agroforestry"},
	{County: "Embu", Species: "Cypress", SurvivalRate: 81, Rank: 2, ConfidenceScore: 86,
		SeasonalPerformance: map[string]float64{"March-June": 3, "July-Sept": -10, "Oct-Dec": 1},
		Reason:              "Highland species, good timber potential"},
	{County: "Embu", Species: "Indigenous Mix", SurvivalRate: 87, Rank: 1, ConfidenceScore: 94,
		SeasonalPerformance: map[string]float64{"March-May": 5, "Oct-Dec": 3, "June-Sept": -8},
		Reason:              "Native species perfectly adapted to eastern highlands"},
}
