package engine

import (
	"github.com/msituguard/msituguard/internal/classifier"
	"github.com/msituguard/msituguard/internal/models"
)

// Rainfall bands for a daily estimate in millimeters.
const (
	RainfallDry     = "Dry"
	RainfallOptimal = "Optimal"
	RainfallExcess  = "Excess"
)

// RainfallBand classifies a daily rainfall estimate.
func RainfallBand(dailyMM float64) string {
	switch {
	case dailyMM < 2:
		return RainfallDry
	case dailyMM <= 10:
		return RainfallOptimal
	default:
		return RainfallExcess
	}
}

// DailyRainfallMM extrapolates an hourly reading to a daily estimate.
func DailyRainfallMM(hourlyMM float64) float64 {
	return hourlyMM * 24
}

// buildFeatures assembles the classifier input. Environment midpoints stand
// in for any value live weather cannot supply; snapshot may be nil.
func buildFeatures(county *models.County, env *models.CountyEnvironment, speciesName, season, method, careLevel string, snapshot *models.WeatherSnapshot) classifier.Input {
	region := "Central"
	altitude := 1500.0
	rainfall := 900.0
	temperature := 20.0
	soilType := "Loam"
	if env != nil {
		region = env.ClimateZone
		altitude = (env.AltitudeMin + env.AltitudeMax) / 2
		rainfall = (env.RainfallMin + env.RainfallMax) / 2
		temperature = (env.TempMin + env.TempMax) / 2
		soilType = env.SoilTypes
	}
	if snapshot != nil {
		temperature = snapshot.TempC
		rainfall = DailyRainfallMM(snapshot.RainfallMM)
	}

	const soilPH = 6.5

	numeric := map[string]float64{
		"rainfall_mm":     rainfall,
		"temperature_c":   temperature,
		"altitude_m":      altitude,
		"soil_ph":         soilPH,
		"tree_age_months": 12,
		"latitude":        county.Latitude,
		"longitude":       county.Longitude,
		"water_balance":   rainfall - temperature*20,
	}
	if altitude > 1500 {
		numeric["is_high_altitude"] = 1
	} else {
		numeric["is_high_altitude"] = 0
	}
	if soilPH < 6.5 {
		numeric["soil_acidity"] = 1
	} else {
		numeric["soil_acidity"] = 0
	}

	return classifier.Input{
		Numeric: numeric,
		Categorical: map[string]string{
			"county":          county.Name,
			"region":          region,
			"soil_type":       soilType,
			"tree_species":    speciesName,
			"planting_season": season,
			"planting_method": method,
			"care_level":      careLevel,
			"water_source":    "Rain-fed",
		},
	}
}
