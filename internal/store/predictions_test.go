package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/msituguard/msituguard/internal/models"
)

func TestInsertAndGetPrediction(t *testing.T) {
	s := setupSeededStore(t)

	county, err := s.GetCountyByName("Meru")
	if err != nil {
		t.Fatalf("county: %v", err)
	}
	sp, err := s.GetSpeciesByName("Grevillea")
	if err != nil {
		t.Fatalf("species: %v", err)
	}

	snapshotID, err := s.InsertWeatherSnapshot(models.WeatherSnapshot{
		Latitude:   county.Latitude,
		Longitude:  county.Longitude,
		TempC:      21.5,
		Humidity:   64,
		WindSpeed:  3.1,
		RainfallMM: 0.4,
		FetchedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("insert snapshot: %v", err)
	}
	if snapshotID == 0 {
		t.Fatal("snapshot id not assigned")
	}

	ref := uuid.NewString()
	_, err = s.InsertPrediction(models.Prediction{
		Reference:     ref,
		CountyID:      county.ID,
		SpeciesID:     sp.ID,
		Season:        "March-May",
		CareLevel:     "Medium",
		Experience:    "Medium",
		FinalScore:    74.2,
		MLScore:       sql.NullFloat64{Float64: 68.0, Valid: true},
		PlaybookScore: 81.0,
		SeasonalBonus: 6,
		RiskTier:      "Medium",
		Confidence:    "High",
		WeatherSource: "live",
		SnapshotID:    sql.NullInt64{Int64: snapshotID, Valid: true},
		ModelVersion:  "v2.0.0",
		AIUsed:        true,
	})
	if err != nil {
		t.Fatalf("insert prediction: %v", err)
	}

	got, err := s.GetPredictionByReference(ref)
	if err != nil {
		t.Fatalf("get prediction: %v", err)
	}
	if got == nil {
		t.Fatal("prediction not found")
	}
	if got.FinalScore != 74.2 {
		t.Errorf("final score = %v, want 74.2", got.FinalScore)
	}
	if !got.MLScore.Valid || got.MLScore.Float64 != 68.0 {
		t.Errorf("ml score = %+v, want 68", got.MLScore)
	}
	if !got.SnapshotID.Valid || got.SnapshotID.Int64 != snapshotID {
		t.Errorf("snapshot id = %+v, want %d", got.SnapshotID, snapshotID)
	}

	missing, err := s.GetPredictionByReference("no-such-reference")
	if err != nil || missing != nil {
		t.Errorf("missing reference: got %v, %v, want nil, nil", missing, err)
	}
}

func TestGetRecentPredictions(t *testing.T) {
	s := setupSeededStore(t)

	county, err := s.GetCountyByName("Meru")
	if err != nil {
		t.Fatalf("county: %v", err)
	}
	sp, err := s.GetSpeciesByName("Pine")
	if err != nil {
		t.Fatalf("species: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := s.InsertPrediction(models.Prediction{
			Reference:     uuid.NewString(),
			CountyID:      county.ID,
			SpeciesID:     sp.ID,
			Season:        "March-June",
			CareLevel:     "High",
			Experience:    "High",
			FinalScore:    float64(60 + i),
			PlaybookScore: 80,
			RiskTier:      "Medium",
			Confidence:    "Low",
			WeatherSource: "playbook",
			ModelVersion:  "v2.0.0",
		}); err != nil {
			t.Fatalf("insert prediction %d: %v", i, err)
		}
	}

	recent, err := s.GetRecentPredictions(3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("got %d predictions, want 3", len(recent))
	}
}
