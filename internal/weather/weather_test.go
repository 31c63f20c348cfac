package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msituguard/msituguard/internal/models"
)

type fakeFetcher struct {
	calls int
	snap  *models.WeatherSnapshot
	err   error
}

func (f *fakeFetcher) FetchCurrent(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	snap := *f.snap
	snap.Latitude = lat
	snap.Longitude = lon
	return &snap, nil
}

func TestServiceCachesWithinTTL(t *testing.T) {
	fetcher := &fakeFetcher{snap: &models.WeatherSnapshot{TempC: 21.5, RainfallMM: 0.4}}
	svc := NewService(fetcher, 30*time.Minute)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	snap, ok := svc.Current(context.Background(), -0.42, 36.95)
	if !ok {
		t.Fatal("first lookup failed")
	}
	if snap.TempC != 21.5 {
		t.Errorf("TempC = %v, want 21.5", snap.TempC)
	}
	if fetcher.calls != 1 {
		t.Fatalf("calls = %d, want 1", fetcher.calls)
	}

	now = now.Add(29 * time.Minute)
	if _, ok := svc.Current(context.Background(), -0.42, 36.95); !ok {
		t.Fatal("cached lookup failed")
	}
	if fetcher.calls != 1 {
		t.Errorf("calls = %d after cached lookup, want 1", fetcher.calls)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := svc.Current(context.Background(), -0.42, 36.95); !ok {
		t.Fatal("post-expiry lookup failed")
	}
	if fetcher.calls != 2 {
		t.Errorf("calls = %d after expiry, want 2", fetcher.calls)
	}
}

func TestServiceSeparatesCoordinates(t *testing.T) {
	fetcher := &fakeFetcher{snap: &models.WeatherSnapshot{TempC: 25}}
	svc := NewService(fetcher, time.Hour)

	svc.Current(context.Background(), -4.0435, 39.6682)
	svc.Current(context.Background(), -0.4236, 36.9519)
	if fetcher.calls != 2 {
		t.Errorf("calls = %d, want one per coordinate", fetcher.calls)
	}

	// Rounding folds near-identical points onto one entry.
	svc.Current(context.Background(), -4.04351, 39.66819)
	if fetcher.calls != 2 {
		t.Errorf("calls = %d, want rounded point to share the Mombasa entry", fetcher.calls)
	}
}

func TestServiceDegradesOnFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("upstream down")}
	svc := NewService(fetcher, time.Hour)

	if _, ok := svc.Current(context.Background(), -1.18, 36.93); ok {
		t.Error("expected degraded lookup, got ok")
	}
	if fetcher.calls != 1 {
		t.Errorf("calls = %d, want 1", fetcher.calls)
	}
}

func TestServiceNilFetcher(t *testing.T) {
	svc := NewService(nil, time.Hour)
	if _, ok := svc.Current(context.Background(), 0, 0); ok {
		t.Error("nil fetcher must not report ok")
	}
}

func TestClientFetchCurrent(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"main":{"temp":26.3,"humidity":74},"wind":{"speed":4.1},"rain":{"1h":0.8}}`))
	}))
	defer ts.Close()

	c := NewClient("test-key")
	c.baseURL = ts.URL

	snap, err := c.FetchCurrent(context.Background(), -4.0435, 39.6682)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snap.TempC != 26.3 || snap.Humidity != 74 || snap.WindSpeed != 4.1 || snap.RainfallMM != 0.8 {
		t.Errorf("snapshot = %+v", snap)
	}
	if gotQuery != "lat=-4.0435&lon=39.6682&units=metric&appid=test-key" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestClientRetriesRateLimitOnce(t *testing.T) {
	var attempts int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"main":{"temp":20,"humidity":60},"wind":{"speed":2},"rain":{}}`))
	}))
	defer ts.Close()

	c := NewClient("test-key")
	c.baseURL = ts.URL

	snap, err := c.FetchCurrent(context.Background(), -1.18, 36.93)
	if err != nil {
		t.Fatalf("fetch after rate limit: %v", err)
	}
	if snap.TempC != 20 {
		t.Errorf("TempC = %v, want 20", snap.TempC)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestClientGivesUpOnPersistentRateLimit(t *testing.T) {
	var attempts int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := NewClient("test-key")
	c.baseURL = ts.URL

	if _, err := c.FetchCurrent(context.Background(), -1.18, 36.93); err == nil {
		t.Fatal("expected error on persistent rate limiting")
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want the initial call plus one retry", attempts)
	}
}

func TestClientFetchCurrentServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient("test-key")
	c.baseURL = ts.URL

	if _, err := c.FetchCurrent(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error on 500")
	}
}
