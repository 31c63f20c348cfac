// Package weather fetches live conditions from OpenWeather and caches them
// per coordinate so repeated predictions for the same spot reuse one call.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/msituguard/msituguard/internal/httputil"
	"github.com/msituguard/msituguard/internal/models"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  httputil.NewClient(),
	}
}

type currentResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
}

func (c *Client) FetchCurrent(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error) {
	url := fmt.Sprintf("%s?lat=%.4f&lon=%.4f&units=metric&appid=%s", c.baseURL, lat, lon, c.apiKey)

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("fetch current: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("rate limited: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("fetch current: status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, 1), ctx)); err != nil {
		return nil, err
	}

	var data currentResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return &models.WeatherSnapshot{
		Latitude:   lat,
		Longitude:  lon,
		TempC:      data.Main.Temp,
		Humidity:   data.Main.Humidity,
		WindSpeed:  data.Wind.Speed,
		RainfallMM: data.Rain.OneHour,
		FetchedAt:  time.Now().UTC(),
	}, nil
}
