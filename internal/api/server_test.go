package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/msituguard/msituguard/internal/engine"
	"github.com/msituguard/msituguard/internal/store"
)

func setupTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := st.SeedPlaybook(); err != nil {
		t.Fatalf("seed playbook: %v", err)
	}

	eng := engine.New(st, nil, nil, nil, "v2.0.0-test")
	return NewServer(st, eng, "0"), st
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestPredictEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)
	handler := srv.Handler()

	rec := postJSON(t, handler, "/api/predict", map[string]any{
		"tree_species":    "Pine",
		"county":          "Nyeri",
		"planting_season": "March-June",
		"planting_method": "Seedling",
		"care_level":      "Medium",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("success = %v", body["success"])
	}
	pct, ok := body["survival_percentage"].(float64)
	if !ok || pct < 5 || pct > 95 {
		t.Fatalf("survival_percentage = %v", body["survival_percentage"])
	}
	if prob := body["survival_probability"].(float64); prob != pct/100 {
		t.Errorf("survival_probability = %v, want %v", prob, pct/100)
	}
	if body["prediction"] != "Likely to Survive" {
		t.Errorf("prediction = %v", body["prediction"])
	}
	if body["weather_used"] != false || body["ml_used"] != false {
		t.Errorf("source flags = %v / %v, want playbook only", body["weather_used"], body["ml_used"])
	}
	if body["reference"] == "" {
		t.Error("reference is empty")
	}
	sources, ok := body["prediction_sources"].(map[string]any)
	if !ok {
		t.Fatalf("prediction_sources = %v", body["prediction_sources"])
	}
	if sources["final_prediction"] != pct {
		t.Errorf("final_prediction = %v, want %v", sources["final_prediction"], pct)
	}
}

func TestPredictEndpointValidation(t *testing.T) {
	srv, _ := setupTestServer(t)
	handler := srv.Handler()

	rec := postJSON(t, handler, "/api/predict", map[string]any{
		"tree_species": "Pine",
		"county":       "Nyeri",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestPredictEndpointUnknownCounty(t *testing.T) {
	srv, _ := setupTestServer(t)
	handler := srv.Handler()

	rec := postJSON(t, handler, "/api/predict", map[string]any{
		"tree_species":    "Pine",
		"county":          "Atlantis",
		"planting_season": "March-June",
		"planting_method": "Seedling",
		"care_level":      "Medium",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPredictEndpointRejectsGet(t *testing.T) {
	srv, _ := setupTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/predict", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestRecommendEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)
	handler := srv.Handler()

	rec := postJSON(t, handler, "/api/recommend", map[string]any{"county": "Mombasa"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	species, ok := body["species"].([]any)
	if !ok || len(species) == 0 {
		t.Fatalf("species = %v", body["species"])
	}
	first := species[0].(map[string]any)
	if first["species"] != "Neem" {
		t.Errorf("top species = %v, want Neem", first["species"])
	}
	if first["rank"].(float64) != 1 {
		t.Errorf("rank = %v, want 1", first["rank"])
	}
	playbook, ok := body["playbook"].(map[string]any)
	if !ok {
		t.Fatalf("playbook = %v", body["playbook"])
	}
	if _, ok := playbook["Neem"]; !ok {
		t.Error("playbook missing Neem guide")
	}
}

func TestDetectCountyEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)
	handler := srv.Handler()

	// Near Mombasa's centroid.
	rec := postJSON(t, handler, "/api/detect-county", map[string]any{
		"lat": -4.05, "lon": 39.67,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["county"] != "Mombasa" {
		t.Errorf("county = %v, want Mombasa", body["county"])
	}
	if body["note"] != "Suggested county based on approximate location. Please confirm." {
		t.Errorf("note = %v", body["note"])
	}
	coords, ok := body["coordinates"].(map[string]any)
	if !ok || coords["lat"].(float64) != -4.05 {
		t.Errorf("coordinates = %v", body["coordinates"])
	}
}

func TestCountyEnvironmentEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)
	handler := srv.Handler()

	rec := postJSON(t, handler, "/api/county-environment", map[string]any{"county": "Nakuru"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	env, ok := body["environment"].(map[string]any)
	if !ok {
		t.Fatalf("environment = %v", body["environment"])
	}
	if alt := env["altitude_m"].(float64); alt != 1850 {
		t.Errorf("altitude_m = %v, want midpoint 1850", alt)
	}
	if env["soil_type"] == "" {
		t.Error("soil_type is empty")
	}
}

func TestVerifyTreeEndpoint(t *testing.T) {
	srv, st := setupTestServer(t)
	handler := srv.Handler()

	county, err := st.GetCountyByName("Nyeri")
	if err != nil {
		t.Fatalf("county: %v", err)
	}
	species, err := st.GetSpeciesByName("Pine")
	if err != nil {
		t.Fatalf("species: %v", err)
	}
	plantingID, err := st.CreateTreePlanting(7, county.ID, species.ID, 10)
	if err != nil {
		t.Fatalf("create planting: %v", err)
	}
	if err := st.MarkPlanted(plantingID); err != nil {
		t.Fatalf("mark planted: %v", err)
	}

	rec := postJSON(t, handler, "/api/verify/tree", map[string]any{
		"tree_id": plantingID, "actor_role": "member",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin status = %d, want 403", rec.Code)
	}

	rec = postJSON(t, handler, "/api/verify/tree", map[string]any{
		"tree_id": plantingID, "actor_role": "admin",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["awarded_now"] != true {
		t.Fatalf("awarded_now = %v", body["awarded_now"])
	}
	if pts := body["points"].(float64); pts != 20 {
		t.Errorf("points = %v, want 20", pts)
	}
	if carbon := body["carbon_tonnes"].(float64); carbon != 0.25 {
		t.Errorf("carbon_tonnes = %v, want 0.25", carbon)
	}

	// Second verification is a success no-op.
	rec = postJSON(t, handler, "/api/verify/tree", map[string]any{
		"tree_id": plantingID, "actor_role": "admin",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("re-verify status = %d", rec.Code)
	}
	body = decodeBody(t, rec)
	if body["awarded_now"] != false {
		t.Errorf("re-verify awarded_now = %v, want false", body["awarded_now"])
	}
}

func TestVerifyTreeEndpointMissingPlanting(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := postJSON(t, srv.Handler(), "/api/verify/tree", map[string]any{
		"tree_id": 999, "actor_role": "admin",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestTransactEndpoint(t *testing.T) {
	srv, st := setupTestServer(t)
	handler := srv.Handler()

	county, err := st.GetCountyByName("Nyeri")
	if err != nil {
		t.Fatalf("county: %v", err)
	}
	species, err := st.GetSpeciesByName("Pine")
	if err != nil {
		t.Fatalf("species: %v", err)
	}
	plantingID, err := st.CreateTreePlanting(9, county.ID, species.ID, 100)
	if err != nil {
		t.Fatalf("create planting: %v", err)
	}
	if err := st.MarkPlanted(plantingID); err != nil {
		t.Fatalf("mark planted: %v", err)
	}
	if _, err := st.VerifyTreePlanting(plantingID); err != nil {
		t.Fatalf("verify: %v", err)
	}

	rec := postJSON(t, handler, "/api/marketplace/transact", map[string]any{
		"user_id": 9, "type": "sell", "amount": 1.0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if kes := body["value_kes"].(float64); kes != 300 {
		t.Errorf("value_kes = %v, want 300", kes)
	}

	rec = postJSON(t, handler, "/api/marketplace/transact", map[string]any{
		"user_id": 9, "type": "fund", "amount": 0.5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("fund status = %d", rec.Code)
	}
	body = decodeBody(t, rec)
	if body["project"] == nil || body["project"] == "" {
		t.Errorf("fund project = %v", body["project"])
	}

	// 2.5 t earned, 1.5 t spent. An oversized sell must fail closed.
	rec = postJSON(t, handler, "/api/marketplace/transact", map[string]any{
		"user_id": 9, "type": "sell", "amount": 5.0,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("overdraw status = %d, want 409", rec.Code)
	}

	rec = postJSON(t, handler, "/api/marketplace/transact", map[string]any{
		"user_id": 9, "type": "hoard", "amount": 0.1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad kind status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, handler, "/api/balance", map[string]any{"user_id": 9})
	if rec.Code != http.StatusOK {
		t.Fatalf("balance status = %d", rec.Code)
	}
	body = decodeBody(t, rec)
	if bal := body["carbon_balance"].(float64); bal != 1.0 {
		t.Errorf("carbon_balance = %v, want 1.0", bal)
	}
	if earned := body["carbon_earned"].(float64); earned != 2.5 {
		t.Errorf("carbon_earned = %v, want 2.5", earned)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" {
		t.Errorf("status = %v", body["status"])
	}
	if body["schema_version"].(float64) < 1 {
		t.Errorf("schema_version = %v", body["schema_version"])
	}
}
