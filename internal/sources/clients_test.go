package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/disasterwatch/italia/internal/models"
)

const usgsFixture = `{
	"features": [
		{
			"id": "eq1",
			"properties": {"mag": 6.2, "place": "Central Italy - Amatrice", "time": 1750000000000},
			"geometry": {"coordinates": [13.292, 42.628, 8.1]}
		},
		{
			"id": "eq2",
			"properties": {"mag": 3.4, "place": "Campania - Benevento", "time": 1750003600000},
			"geometry": {"coordinates": [14.782, 41.130]}
		}
	]
}`

func TestSeismicClient_Fetch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"minlatitude":  q.Get("minlatitude"),
			"maxlatitude":  q.Get("maxlatitude"),
			"minmagnitude": q.Get("minmagnitude"),
			"format":       q.Get("format"),
		}
		w.Write([]byte(usgsFixture))
	}))
	defer srv.Close()

	client := NewSeismicClient(srv.URL, 2.5, 7)
	events, err := client.Fetch(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if gotQuery["minlatitude"] != "36" || gotQuery["maxlatitude"] != "47" {
		t.Errorf("expected Italy bounding box, got %v", gotQuery)
	}
	if gotQuery["minmagnitude"] != "2.5" || gotQuery["format"] != "geojson" {
		t.Errorf("unexpected query params: %v", gotQuery)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "usgs_eq1" || events[0].RiskLevel != models.RiskCritical {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[0].Depth != 8.1 {
		t.Errorf("expected depth from coordinates, got %f", events[0].Depth)
	}
	// Missing depth defaults to 10km.
	if events[1].Depth != 10.0 {
		t.Errorf("expected default depth 10, got %f", events[1].Depth)
	}
	if events[1].RiskLevel != models.RiskLow {
		t.Errorf("expected low risk for M3.4, got %s", events[1].RiskLevel)
	}
}

func TestSeismicClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewSeismicClient(srv.URL, 2.5, 7)
	if _, err := client.Fetch(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestFloodClient_BasinFallback(t *testing.T) {
	client := NewFloodClient("")
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	alerts, err := client.Fetch(context.Background(), now)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(alerts) != len(riskBasins) {
		t.Fatalf("expected %d basin alerts, got %d", len(riskBasins), len(alerts))
	}

	var high, evacuations int
	for _, a := range alerts {
		if !a.RiskLevel.Known() {
			t.Errorf("alert %s has unknown risk level %q", a.ID, a.RiskLevel)
		}
		if a.RiskLevel == models.RiskHigh {
			high++
		}
		if a.EvacuationAdvised {
			evacuations++
			if a.PredictedPeak == nil {
				t.Errorf("high-risk alert %s missing predicted peak", a.ID)
			}
		}
	}
	if high == 0 || high != evacuations {
		t.Errorf("expected evacuation advisories to match high-risk basins, high=%d evacuations=%d", high, evacuations)
	}

	// Same day produces the same IDs so the store dedupes re-polls.
	again, _ := client.Fetch(context.Background(), now.Add(time.Hour))
	if alerts[0].ID != again[0].ID {
		t.Errorf("expected stable IDs within a day: %s vs %s", alerts[0].ID, again[0].ID)
	}
}

func TestFloodClient_Feed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": "po-1", "region": "Po Valley", "risk_level": "critical", "river_name": "Po",
			 "water_level": 7.1, "predicted_peak": "2026-07-02T06:00:00Z", "evacuation_advised": true,
			 "affected_population": 30000, "latitude": 44.8, "longitude": 11.6},
			{"id": "arno-1", "region": "Arno Basin", "risk_level": "SEVERE",
			 "latitude": 43.77, "longitude": 11.25}
		]`))
	}))
	defer srv.Close()

	client := NewFloodClient(srv.URL)
	alerts, err := client.Fetch(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].ID != "flood_po-1" || alerts[0].RiskLevel != models.RiskCritical {
		t.Errorf("unexpected first alert: %+v", alerts[0])
	}
	if alerts[0].PredictedPeak == nil {
		t.Error("expected predicted peak parsed")
	}
	// Unrecognized risk levels pass through; the aggregator drops them later.
	if alerts[1].RiskLevel.Known() {
		t.Errorf("expected unknown risk level preserved, got %s", alerts[1].RiskLevel)
	}
}

func TestFloodClient_FeedFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewFloodClient(srv.URL)
	alerts, err := client.Fetch(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Fetch should fall back, got error: %v", err)
	}
	if len(alerts) != len(riskBasins) {
		t.Errorf("expected basin fallback, got %d alerts", len(alerts))
	}
}

func TestHeatClient_FromWeatherAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"main": {"temp": 41.0, "feels_like": 46.5, "humidity": 40}}`))
	}))
	defer srv.Close()

	client := NewHeatClient(srv.URL, "test-key")
	alerts, err := client.Fetch(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	// 41 + 0.5*40 = 61: every monitored city reports critical.
	if len(alerts) != len(heatCities) {
		t.Fatalf("expected %d alerts, got %d", len(heatCities), len(alerts))
	}
	for _, a := range alerts {
		if a.RiskLevel != models.RiskCritical {
			t.Errorf("expected critical risk, got %s for %s", a.RiskLevel, a.Region)
		}
		if a.Advisory == "" {
			t.Errorf("expected advisory text for %s", a.Region)
		}
	}
}

func TestHeatClient_BaselineFallback(t *testing.T) {
	// No API key: every city falls back to its seasonal baseline.
	client := NewHeatClient("http://127.0.0.1:0", "")
	alerts, err := client.Fetch(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(alerts) == 0 {
		t.Fatal("expected baseline alerts")
	}
	for _, a := range alerts {
		if !a.RiskLevel.AtLeast(models.RiskModerate) {
			t.Errorf("alerts below moderate must be filtered, got %s", a.RiskLevel)
		}
	}
}

func TestHeatClient_ColdCityFiltered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main": {"temp": 18.0, "feels_like": 18.0, "humidity": 20}}`))
	}))
	defer srv.Close()

	client := NewHeatClient(srv.URL, "test-key")
	alerts, err := client.Fetch(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("expected no alerts for mild weather, got %d", len(alerts))
	}
}
