// Package weather is a thin HTTP client for the OpenWeatherMap 2.5 API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"life-dashboard/internal/model"
)

// ErrCityNotFound is returned when the provider does not know the city.
var ErrCityNotFound = errors.New("city not found")

// Client queries current conditions and the 5 day / 3 hour forecast.
type Client struct {
	baseURL    string
	apiKey     string
	units      string
	lang       string
	httpClient *http.Client
	now        func() time.Time
}

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string
	Units   string
	Lang    string
	Timeout time.Duration
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		units:      opts.Units,
		lang:       opts.Lang,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

type apiCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type apiMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Humidity  int     `json:"humidity"`
}

type currentResponse struct {
	Name    string         `json:"name"`
	Dt      int64          `json:"dt"`
	Main    apiMain        `json:"main"`
	Weather []apiCondition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	List []struct {
		Dt      int64          `json:"dt"`
		Main    apiMain        `json:"main"`
		Weather []apiCondition `json:"weather"`
	} `json:"list"`
	City struct {
		Timezone int `json:"timezone"`
	} `json:"city"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Current fetches the current conditions for city.
func (c *Client) Current(ctx context.Context, city string) (model.WeatherSnapshot, error) {
	var resp currentResponse
	if err := c.get(ctx, "/weather", city, &resp); err != nil {
		return model.WeatherSnapshot{}, err
	}

	snap := model.WeatherSnapshot{
		City:        resp.Name,
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
		ObservedAt:  c.now(),
	}
	if snap.City == "" {
		snap.City = city
	}
	if resp.Dt > 0 {
		snap.ObservedAt = time.Unix(resp.Dt, 0)
	}
	if len(resp.Weather) > 0 {
		snap.Description = resp.Weather[0].Description
		snap.Icon = resp.Weather[0].Icon
	}
	return snap, nil
}

// Forecast fetches the forecast and keeps the first slot of each calendar
// day, in the city's own UTC offset, ordered by date.
func (c *Client) Forecast(ctx context.Context, city string) ([]model.ForecastDay, error) {
	var resp forecastResponse
	if err := c.get(ctx, "/forecast", city, &resp); err != nil {
		return nil, err
	}
	return dailyForecast(resp), nil
}

func dailyForecast(resp forecastResponse) []model.ForecastDay {
	zone := time.FixedZone("city", resp.City.Timezone)
	seen := make(map[string]bool)
	var days []model.ForecastDay
	for _, slot := range resp.List {
		at := time.Unix(slot.Dt, 0).In(zone)
		key := at.Format(time.DateOnly)
		if seen[key] {
			continue
		}
		seen[key] = true

		day := model.ForecastDay{
			Date:        at,
			Temperature: slot.Main.Temp,
			TempMin:     slot.Main.TempMin,
			TempMax:     slot.Main.TempMax,
			Humidity:    slot.Main.Humidity,
		}
		if len(slot.Weather) > 0 {
			day.Description = slot.Weather[0].Description
			day.Icon = slot.Weather[0].Icon
		}
		days = append(days, day)
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

func (c *Client) get(ctx context.Context, path, city string, result any) error {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	if c.units != "" {
		q.Set("units", c.units)
	}
	if c.lang != "" {
		q.Set("lang", c.lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrCityNotFound, city)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("weather API error (%d) on GET %s: %s", resp.StatusCode, path, apiErr.Message)
		}
		return fmt.Errorf("weather API error (%d) on GET %s", resp.StatusCode, path)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
