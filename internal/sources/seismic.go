package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/disasterwatch/italia/internal/models"
)

// Italy bounding box for the FDSN event query.
const (
	italyMinLat = 36.0
	italyMaxLat = 47.0
	italyMinLon = 6.0
	italyMaxLon = 19.0
)

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string         `json:"id"`
	Properties usgsProperties `json:"properties"`
	Geometry   usgsGeometry   `json:"geometry"`
}
type usgsProperties struct {
	Mag   float64 `json:"mag"`
	Place string  `json:"place"`
	Time  int64   `json:"time"` // unix millis
}
type usgsGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

// SeismicClient fetches recent earthquakes for the Italy region from the
// USGS FDSN event service.
type SeismicClient struct {
	baseURL      string
	minMagnitude float64
	windowDays   int
	http         *http.Client
}

func NewSeismicClient(baseURL string, minMagnitude float64, windowDays int) *SeismicClient {
	return &SeismicClient{
		baseURL:      baseURL,
		minMagnitude: minMagnitude,
		windowDays:   windowDays,
		http:         &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *SeismicClient) Fetch(ctx context.Context, now time.Time) ([]models.SeismicEvent, error) {
	params := url.Values{}
	params.Set("format", "geojson")
	params.Set("starttime", now.AddDate(0, 0, -c.windowDays).Format("2006-01-02"))
	params.Set("endtime", now.Format("2006-01-02"))
	params.Set("minlatitude", strconv.FormatFloat(italyMinLat, 'f', -1, 64))
	params.Set("maxlatitude", strconv.FormatFloat(italyMaxLat, 'f', -1, 64))
	params.Set("minlongitude", strconv.FormatFloat(italyMinLon, 'f', -1, 64))
	params.Set("maxlongitude", strconv.FormatFloat(italyMaxLon, 'f', -1, 64))
	params.Set("minmagnitude", strconv.FormatFloat(c.minMagnitude, 'f', -1, 64))
	params.Set("orderby", "time")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data usgsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	events := make([]models.SeismicEvent, 0, len(data.Features))
	for _, f := range data.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		depth := 10.0
		if len(f.Geometry.Coordinates) > 2 {
			depth = f.Geometry.Coordinates[2]
		}
		events = append(events, models.SeismicEvent{
			ID:        "usgs_" + f.ID,
			Magnitude: f.Properties.Mag,
			Depth:     depth,
			Longitude: f.Geometry.Coordinates[0],
			Latitude:  f.Geometry.Coordinates[1],
			Location:  f.Properties.Place,
			Timestamp: time.UnixMilli(f.Properties.Time),
			Source:    "USGS",
			RiskLevel: models.SeismicRisk(f.Properties.Mag, depth),
		})
	}

	return events, nil
}
