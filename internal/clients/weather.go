// Package clients holds the thin HTTP clients for the third-party APIs the
// application proxies. Calls are synchronous with a bounded timeout; there is
// no retry and no caching.
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const openMeteoBaseURL = "https://api.open-meteo.com"

var (
	ErrUnknownCity     = errors.New("unknown city")
	ErrWeatherUpstream = errors.New("weather upstream request failed")
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// cityCoordinates is the fixed set of cities the proxy knows about.
var cityCoordinates = map[string]Coordinates{
	"Guadalajara": {Latitude: 20.6597, Longitude: -103.3496},
	"London":      {Latitude: 51.5074, Longitude: -0.1278},
	"New York":    {Latitude: 40.7128, Longitude: -74.0060},
}

// CurrentWeather is the condensed weather payload returned to clients.
type CurrentWeather struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Windspeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

// WeatherClient calls the open-meteo forecast API.
type WeatherClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewWeatherClient creates a weather client. An empty baseURL selects the
// public open-meteo endpoint.
func NewWeatherClient(baseURL string) *WeatherClient {
	if baseURL == "" {
		baseURL = openMeteoBaseURL
	}
	return &WeatherClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Current fetches the current weather for one of the known cities. Any
// upstream failure is reported as ErrWeatherUpstream; the upstream status is
// never surfaced verbatim.
func (c *WeatherClient) Current(ctx context.Context, city string) (*CurrentWeather, error) {
	coords, ok := cityCoordinates[city]
	if !ok {
		return nil, ErrUnknownCity
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', 4, 64))
	params.Set("current_weather", "true")

	endpoint := c.baseURL + "/v1/forecast?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrWeatherUpstream, resp.StatusCode)
	}

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			Windspeed   float64 `json:"windspeed"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUpstream, err)
	}

	return &CurrentWeather{
		City:        city,
		Temperature: payload.CurrentWeather.Temperature,
		Windspeed:   payload.CurrentWeather.Windspeed,
		WeatherCode: payload.CurrentWeather.WeatherCode,
	}, nil
}
