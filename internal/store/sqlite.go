package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/msituguard/msituguard/internal/models"
	"github.com/msituguard/msituguard/internal/playbook"
)

var (
	ErrCountyNotFound      = errors.New("county not found")
	ErrSpeciesNotFound     = errors.New("species not found")
	ErrEnvironmentNotFound = errors.New("county environment not found")
	ErrNotRecommended      = errors.New("species not recommended for county")
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SeedPlaybook upserts the curated county and species data. Safe to run on
// every startup.
func (s *Store) SeedPlaybook() error {
	for _, c := range playbook.Counties {
		if _, err := s.db.Exec(`
			INSERT INTO counties (name, latitude, longitude, climate_zone)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				latitude = excluded.latitude,
				longitude = excluded.longitude,
				climate_zone = excluded.climate_zone
		`, c.Name, c.Latitude, c.Longitude, c.ClimateZone); err != nil {
			return fmt.Errorf("upsert county %s: %w", c.Name, err)
		}
	}

	for name, env := range playbook.Environments {
		county, err := s.GetCountyByName(name)
		if err != nil {
			return fmt.Errorf("environment for %s: %w", name, err)
		}
		if _, err := s.db.Exec(`
			INSERT INTO county_environments (county_id, rainfall_min, rainfall_max, temp_min, temp_max, altitude_min, altitude_max, soil_ph_min, soil_ph_max, soil_types, best_seasons)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(county_id) DO UPDATE SET
				rainfall_min = excluded.rainfall_min,
				rainfall_max = excluded.rainfall_max,
				temp_min = excluded.temp_min,
				temp_max = excluded.temp_max,
				altitude_min = excluded.altitude_min,
				altitude_max = excluded.altitude_max,
				soil_ph_min = excluded.soil_ph_min,
				soil_ph_max = excluded.soil_ph_max,
				soil_types = excluded.soil_types,
				best_seasons = excluded.best_seasons
		`, county.ID, env.RainfallMin, env.RainfallMax, env.TempMin, env.TempMax,
			env.AltitudeMin, env.AltitudeMax, env.SoilPHMin, env.SoilPHMax,
			env.SoilTypes, env.BestSeasons); err != nil {
			return fmt.Errorf("upsert environment %s: %w", name, err)
		}
	}

	for _, sp := range playbook.SpeciesProfiles {
		guide, err := json.Marshal(sp.PlantingGuide)
		if err != nil {
			return fmt.Errorf("marshal planting guide %s: %w", sp.Name, err)
		}
		care, err := json.Marshal(sp.CareInstructions)
		if err != nil {
			return fmt.Errorf("marshal care instructions %s: %w", sp.Name, err)
		}
		if _, err := s.db.Exec(`
			INSERT INTO species (name, base_survival, soil, rainfall, temperature, care_level, best_season, planting_method, water, planting_guide, care_instructions)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				base_survival = excluded.base_survival,
				soil = excluded.soil,
				rainfall = excluded.rainfall,
				temperature = excluded.temperature,
				care_level = excluded.care_level,
				best_season = excluded.best_season,
				planting_method = excluded.planting_method,
				water = excluded.water,
				planting_guide = excluded.planting_guide,
				care_instructions = excluded.care_instructions
		`, sp.Name, sp.BaseSurvival, sp.Soil, sp.Rainfall, sp.Temperature, sp.CareLevel,
			sp.BestSeason, sp.PlantingMethod, sp.Water, string(guide), string(care)); err != nil {
			return fmt.Errorf("upsert species %s: %w", sp.Name, err)
		}
	}

	for _, compat := range playbook.Compatibilities {
		county, err := s.GetCountyByName(compat.County)
		if err != nil {
			return fmt.Errorf("compatibility %s/%s: %w", compat.County, compat.Species, err)
		}
		species, err := s.GetSpeciesByName(compat.Species)
		if err != nil {
			return fmt.Errorf("compatibility %s/%s: %w", compat.County, compat.Species, err)
		}
		seasonal, err := json.Marshal(compat.SeasonalPerformance)
		if err != nil {
			return fmt.Errorf("marshal seasonal performance %s/%s: %w", compat.County, compat.Species, err)
		}
		if _, err := s.db.Exec(`
			INSERT INTO compatibilities (county_id, species_id, survival_rate, rank, confidence_score, seasonal_performance, reason)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(county_id, species_id) DO UPDATE SET
				survival_rate = excluded.survival_rate,
				rank = excluded.rank,
				confidence_score = excluded.confidence_score,
				seasonal_performance = excluded.seasonal_performance,
				reason = excluded.reason
		`, county.ID, species.ID, compat.SurvivalRate, compat.Rank, compat.ConfidenceScore, string(seasonal), compat.Reason); err != nil {
			return fmt.Errorf("upsert compatibility %s/%s: %w", compat.County, compat.Species, err)
		}
	}

	return nil
}

// GetCountyByName resolves case-insensitively on the trimmed name.
func (s *Store) GetCountyByName(name string) (*models.County, error) {
	row := s.db.QueryRow(`
		SELECT id, name, latitude, longitude, climate_zone
		FROM counties
		WHERE LOWER(name) = LOWER(?)
	`, strings.TrimSpace(name))

	var c models.County
	err := row.Scan(&c.ID, &c.Name, &c.Latitude, &c.Longitude, &c.ClimateZone)
	if err == sql.ErrNoRows {
		return nil, ErrCountyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetAllCounties() ([]models.County, error) {
	rows, err := s.db.Query(`SELECT id, name, latitude, longitude, climate_zone FROM counties ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counties []models.County
	for rows.Next() {
		var c models.County
		if err := rows.Scan(&c.ID, &c.Name, &c.Latitude, &c.Longitude, &c.ClimateZone); err != nil {
			return nil, err
		}
		counties = append(counties, c)
	}
	return counties, rows.Err()
}

func (s *Store) GetCountyEnvironment(countyID int64) (*models.CountyEnvironment, error) {
	row := s.db.QueryRow(`
		SELECT ce.county_id, ce.rainfall_min, ce.rainfall_max, ce.temp_min, ce.temp_max,
		       ce.altitude_min, ce.altitude_max, ce.soil_ph_min, ce.soil_ph_max,
		       ce.soil_types, ce.best_seasons, c.climate_zone
		FROM county_environments ce
		JOIN counties c ON c.id = ce.county_id
		WHERE ce.county_id = ?
	`, countyID)

	var env models.CountyEnvironment
	err := row.Scan(&env.CountyID, &env.RainfallMin, &env.RainfallMax, &env.TempMin, &env.TempMax,
		&env.AltitudeMin, &env.AltitudeMax, &env.SoilPHMin, &env.SoilPHMax,
		&env.SoilTypes, &env.BestSeasons, &env.ClimateZone)
	if err == sql.ErrNoRows {
		return nil, ErrEnvironmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &env, nil
}

func (s *Store) GetSpeciesByName(name string) (*models.Species, error) {
	row := s.db.QueryRow(`
		SELECT id, name, base_survival, soil, rainfall, temperature, care_level, best_season, planting_method, water, planting_guide, care_instructions
		FROM species
		WHERE LOWER(name) = LOWER(?)
	`, strings.TrimSpace(name))
	return scanSpecies(row)
}

func (s *Store) GetSpeciesByID(id int64) (*models.Species, error) {
	row := s.db.QueryRow(`
		SELECT id, name, base_survival, soil, rainfall, temperature, care_level, best_season, planting_method, water, planting_guide, care_instructions
		FROM species
		WHERE id = ?
	`, id)
	return scanSpecies(row)
}

func (s *Store) GetAllSpecies() ([]models.Species, error) {
	rows, err := s.db.Query(`SELECT id, name, base_survival, soil, rainfall, temperature, care_level, best_season, planting_method, water, planting_guide, care_instructions FROM species ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var species []models.Species
	for rows.Next() {
		var sp models.Species
		var guide, care string
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.BaseSurvival, &sp.Soil, &sp.Rainfall,
			&sp.Temperature, &sp.CareLevel, &sp.BestSeason, &sp.PlantingMethod, &sp.Water,
			&guide, &care); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(guide), &sp.PlantingGuide); err != nil {
			return nil, fmt.Errorf("unmarshal planting guide for %s: %w", sp.Name, err)
		}
		if err := json.Unmarshal([]byte(care), &sp.CareInstructions); err != nil {
			return nil, fmt.Errorf("unmarshal care instructions for %s: %w", sp.Name, err)
		}
		species = append(species, sp)
	}
	return species, rows.Err()
}

// GetCompatibility returns ErrNotRecommended when the species has no entry
// for the county.
func (s *Store) GetCompatibility(countyID, speciesID int64) (*models.Compatibility, error) {
	row := s.db.QueryRow(`
		SELECT county_id, species_id, survival_rate, rank, confidence_score, seasonal_performance, reason
		FROM compatibilities
		WHERE county_id = ? AND species_id = ?
	`, countyID, speciesID)

	var c models.Compatibility
	var seasonal string
	err := row.Scan(&c.CountyID, &c.SpeciesID, &c.SurvivalRate, &c.Rank, &c.ConfidenceScore, &seasonal, &c.Reason)
	if err == sql.ErrNoRows {
		return nil, ErrNotRecommended
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(seasonal), &c.SeasonalPerformance); err != nil {
		return nil, fmt.Errorf("unmarshal seasonal performance: %w", err)
	}
	return &c, nil
}

type CountySpeciesRow struct {
	Species       models.Species
	Compatibility models.Compatibility
}

// GetCountyCompatibilities lists all species with playbook coverage for a
// county, best rank first.
func (s *Store) GetCountyCompatibilities(countyID int64) ([]CountySpeciesRow, error) {
	rows, err := s.db.Query(`
		SELECT sp.id, sp.name, sp.base_survival, sp.soil, sp.rainfall, sp.temperature,
		       sp.care_level, sp.best_season, sp.planting_method, sp.water,
		       sp.planting_guide, sp.care_instructions,
		       c.county_id, c.species_id, c.survival_rate, c.rank, c.confidence_score, c.seasonal_performance, c.reason
		FROM compatibilities c
		JOIN species sp ON sp.id = c.species_id
		WHERE c.county_id = ?
		ORDER BY c.rank ASC, c.survival_rate DESC
	`, countyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []CountySpeciesRow
	for rows.Next() {
		var r CountySpeciesRow
		var guide, care, seasonal string
		if err := rows.Scan(&r.Species.ID, &r.Species.Name, &r.Species.BaseSurvival,
			&r.Species.Soil, &r.Species.Rainfall, &r.Species.Temperature, &r.Species.CareLevel,
			&r.Species.BestSeason, &r.Species.PlantingMethod, &r.Species.Water, &guide, &care,
			&r.Compatibility.CountyID, &r.Compatibility.SpeciesID, &r.Compatibility.SurvivalRate,
			&r.Compatibility.Rank, &r.Compatibility.ConfidenceScore, &seasonal, &r.Compatibility.Reason); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(guide), &r.Species.PlantingGuide); err != nil {
			return nil, fmt.Errorf("unmarshal planting guide for %s: %w", r.Species.Name, err)
		}
		if err := json.Unmarshal([]byte(care), &r.Species.CareInstructions); err != nil {
			return nil, fmt.Errorf("unmarshal care instructions for %s: %w", r.Species.Name, err)
		}
		if err := json.Unmarshal([]byte(seasonal), &r.Compatibility.SeasonalPerformance); err != nil {
			return nil, fmt.Errorf("unmarshal seasonal performance for %s: %w", r.Species.Name, err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanSpecies(row *sql.Row) (*models.Species, error) {
	var sp models.Species
	var guide, care string
	err := row.Scan(&sp.ID, &sp.Name, &sp.BaseSurvival, &sp.Soil, &sp.Rainfall,
		&sp.Temperature, &sp.CareLevel, &sp.BestSeason, &sp.PlantingMethod, &sp.Water,
		&guide, &care)
	if err == sql.ErrNoRows {
		return nil, ErrSpeciesNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(guide), &sp.PlantingGuide); err != nil {
		return nil, fmt.Errorf("unmarshal planting guide: %w", err)
	}
	if err := json.Unmarshal([]byte(care), &sp.CareInstructions); err != nil {
		return nil, fmt.Errorf("unmarshal care instructions: %w", err)
	}
	return &sp, nil
}
