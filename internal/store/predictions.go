package store

import (
	"database/sql"
	"time"

	"github.com/msituguard/msituguard/internal/models"
)

func (s *Store) InsertWeatherSnapshot(ws models.WeatherSnapshot) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO weather_snapshots (latitude, longitude, temp_c, humidity, wind_speed, rainfall_mm, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, ws.Latitude, ws.Longitude, ws.TempC, ws.Humidity, ws.WindSpeed, ws.RainfallMM, ws.FetchedAt.UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) InsertPrediction(p models.Prediction) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO predictions (reference, county_id, species_id, season, care_level, experience,
			final_score, ml_score, playbook_score, seasonal_bonus, llm_adjustment,
			risk_tier, confidence, weather_source, snapshot_id, model_version, ai_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Reference, p.CountyID, p.SpeciesID, p.Season, p.CareLevel, p.Experience,
		p.FinalScore, p.MLScore, p.PlaybookScore, p.SeasonalBonus, p.LLMAdjustment,
		p.RiskTier, p.Confidence, p.WeatherSource, p.SnapshotID, p.ModelVersion, p.AIUsed, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) GetPredictionByReference(reference string) (*models.Prediction, error) {
	row := s.db.QueryRow(`
		SELECT id, reference, county_id, species_id, season, care_level, experience,
		       final_score, ml_score, playbook_score, seasonal_bonus, llm_adjustment,
		       risk_tier, confidence, weather_source, snapshot_id, model_version, ai_used, created_at
		FROM predictions
		WHERE reference = ?
	`, reference)

	var p models.Prediction
	err := row.Scan(&p.ID, &p.Reference, &p.CountyID, &p.SpeciesID, &p.Season, &p.CareLevel, &p.Experience,
		&p.FinalScore, &p.MLScore, &p.PlaybookScore, &p.SeasonalBonus, &p.LLMAdjustment,
		&p.RiskTier, &p.Confidence, &p.WeatherSource, &p.SnapshotID, &p.ModelVersion, &p.AIUsed, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetRecentPredictions(limit int) ([]models.Prediction, error) {
	rows, err := s.db.Query(`
		SELECT id, reference, county_id, species_id, season, care_level, experience,
		       final_score, ml_score, playbook_score, seasonal_bonus, llm_adjustment,
		       risk_tier, confidence, weather_source, snapshot_id, model_version, ai_used, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var predictions []models.Prediction
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(&p.ID, &p.Reference, &p.CountyID, &p.SpeciesID, &p.Season, &p.CareLevel, &p.Experience,
			&p.FinalScore, &p.MLScore, &p.PlaybookScore, &p.SeasonalBonus, &p.LLMAdjustment,
			&p.RiskTier, &p.Confidence, &p.WeatherSource, &p.SnapshotID, &p.ModelVersion, &p.AIUsed, &p.CreatedAt); err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}
