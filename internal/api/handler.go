package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/disasterwatch/italia/internal/alerts"
	"github.com/disasterwatch/italia/internal/geo"
	"github.com/disasterwatch/italia/internal/models"
	"github.com/disasterwatch/italia/internal/repository"
	"github.com/disasterwatch/italia/internal/seed"
	"github.com/disasterwatch/italia/internal/snapshot"
)

const (
	defaultNearbyLimit = 5
	maxNearbyLimit     = 50
	defaultHistoryDays = 7
	maxHistoryLimit    = 500
)

// Generator produces a risk outlook for one disaster type and region.
type Generator interface {
	Generate(ctx context.Context, disasterType models.EventKind, region string) (*models.Prediction, error)
}

type Handler struct {
	events      repository.EventRepository
	hospitals   repository.HospitalRepository
	predictions repository.PredictionRepository
	snap        *snapshot.Store
	predictor   Generator
}

func NewHandler(events repository.EventRepository, hospitals repository.HospitalRepository, predictions repository.PredictionRepository, snap *snapshot.Store, predictor Generator) *Handler {
	return &Handler{
		events:      events,
		hospitals:   hospitals,
		predictions: predictions,
		snap:        snap,
		predictor:   predictor,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/seismic/events", h.getSeismicEvents)
	api.GET("/seismic/stats", h.getSeismicStats)
	api.GET("/flood/alerts", h.getFloodAlerts)
	api.GET("/flood/stats", h.getFloodStats)
	api.GET("/heatwave/alerts", h.getHeatAlerts)
	api.GET("/heatwave/stats", h.getHeatStats)
	api.GET("/alerts/feed", h.getAlertsFeed)

	api.GET("/hospitals", h.listHospitals)
	api.POST("/hospitals", h.createHospital)
	api.PUT("/hospitals/:id", h.updateHospital)
	api.GET("/hospitals/stats", h.getHospitalStats)
	api.GET("/hospitals/nearby", h.getNearbyHospitals)

	api.GET("/safezones", h.listSafeZones)
	api.GET("/safezones/nearest", h.getNearestSafeZone)

	api.POST("/predictions/generate", h.generatePrediction)
	api.GET("/predictions/history", h.getPredictionHistory)

	api.GET("/dashboard/summary", h.getDashboardSummary)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getSeismicEvents(c *gin.Context) {
	filter := repository.EventFilter{Limit: 100}

	if m := c.Query("min_magnitude"); m != "" {
		if mag, err := strconv.ParseFloat(m, 64); err == nil {
			filter.MinMagnitude = &mag
		}
	}
	days := defaultHistoryDays
	if d := c.Query("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 && v <= 90 {
			days = v
		}
	}
	since := time.Now().AddDate(0, 0, -days)
	filter.Since = &since

	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= maxHistoryLimit {
			filter.Limit = lim
		}
	}

	events, err := h.events.ListSeismic(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch seismic events"})
		return
	}

	if c.Query("format") == "geojson" {
		c.Header("Content-Type", "application/geo+json")
		c.JSON(http.StatusOK, seismicGeoJSON(events))
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

func (h *Handler) getSeismicStats(c *gin.Context) {
	events, at := h.snap.Seismic()

	maxMag := 0.0
	byRisk := map[models.RiskLevel]int{}
	for _, e := range events {
		if e.Magnitude > maxMag {
			maxMag = e.Magnitude
		}
		byRisk[e.RiskLevel]++
	}

	c.JSON(http.StatusOK, gin.H{
		"total_events":  len(events),
		"max_magnitude": maxMag,
		"by_risk_level": byRisk,
		"last_updated":  at,
	})
}

func (h *Handler) getFloodAlerts(c *gin.Context) {
	alertsList, at := h.snap.Floods()
	c.JSON(http.StatusOK, gin.H{"alerts": alertsList, "count": len(alertsList), "last_updated": at})
}

func (h *Handler) getFloodStats(c *gin.Context) {
	alertsList, at := h.snap.Floods()

	evacuations := 0
	affected := 0
	byRisk := map[models.RiskLevel]int{}
	for _, a := range alertsList {
		if a.EvacuationAdvised {
			evacuations++
		}
		affected += a.AffectedPopulation
		byRisk[a.RiskLevel]++
	}

	c.JSON(http.StatusOK, gin.H{
		"total_alerts":         len(alertsList),
		"evacuation_advised":   evacuations,
		"affected_population":  affected,
		"by_risk_level":        byRisk,
		"last_updated":         at,
	})
}

func (h *Handler) getHeatAlerts(c *gin.Context) {
	alertsList, at := h.snap.Heat()
	c.JSON(http.StatusOK, gin.H{"alerts": alertsList, "count": len(alertsList), "last_updated": at})
}

func (h *Handler) getHeatStats(c *gin.Context) {
	alertsList, at := h.snap.Heat()

	maxTemp := 0.0
	byRisk := map[models.RiskLevel]int{}
	for _, a := range alertsList {
		if a.Temperature > maxTemp {
			maxTemp = a.Temperature
		}
		byRisk[a.RiskLevel]++
	}

	c.JSON(http.StatusOK, gin.H{
		"total_alerts":    len(alertsList),
		"max_temperature": maxTemp,
		"by_risk_level":   byRisk,
		"last_updated":    at,
	})
}

// getAlertsFeed returns the aggregated high-priority feed the dashboard
// banner renders, newest and most severe first.
func (h *Handler) getAlertsFeed(c *gin.Context) {
	seismic, _ := h.snap.Seismic()
	floods, _ := h.snap.Floods()
	heat, _ := h.snap.Heat()

	feed := alerts.Aggregate(seismic, floods, heat)
	c.JSON(http.StatusOK, gin.H{"alerts": feed, "count": len(feed)})
}

func (h *Handler) listHospitals(c *gin.Context) {
	hospitals, err := h.hospitals.ListHospitals(c.Request.Context(), c.Query("region"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch hospitals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hospitals": hospitals, "count": len(hospitals)})
}

type createHospitalRequest struct {
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	City              string   `json:"city"`
	Region            string   `json:"region"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	TotalBeds         int      `json:"total_beds"`
	AvailableBeds     int      `json:"available_beds"`
	ICUBeds           int      `json:"icu_beds"`
	ICUAvailable      int      `json:"icu_available"`
	EmergencyCapacity bool     `json:"emergency_capacity"`
	Equipment         []string `json:"equipment"`
	ContactPhone      string   `json:"contact_phone"`
}

func (r createHospitalRequest) validate() error {
	if r.Name == "" || r.City == "" || r.Region == "" {
		return errors.New("name, city, and region are required")
	}
	if r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
		return errors.New("invalid coordinates")
	}
	if r.TotalBeds < 0 || r.AvailableBeds < 0 || r.ICUBeds < 0 || r.ICUAvailable < 0 {
		return errors.New("bed counts must be non-negative")
	}
	if r.AvailableBeds > r.TotalBeds {
		return errors.New("available beds cannot exceed total beds")
	}
	if r.ICUAvailable > r.ICUBeds {
		return errors.New("available ICU beds cannot exceed ICU beds")
	}
	return nil
}

func (h *Handler) createHospital(c *gin.Context) {
	var req createHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	hospital := &models.Hospital{
		ID:                fmt.Sprintf("hosp_%d", now.UnixNano()),
		Name:              req.Name,
		Address:           req.Address,
		City:              req.City,
		Region:            req.Region,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		TotalBeds:         req.TotalBeds,
		AvailableBeds:     req.AvailableBeds,
		ICUBeds:           req.ICUBeds,
		ICUAvailable:      req.ICUAvailable,
		EmergencyCapacity: req.EmergencyCapacity,
		Equipment:         req.Equipment,
		ContactPhone:      req.ContactPhone,
		LastUpdated:       now,
	}

	if err := h.hospitals.CreateHospital(c.Request.Context(), hospital); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create hospital"})
		return
	}
	c.JSON(http.StatusCreated, hospital)
}

func (h *Handler) updateHospital(c *gin.Context) {
	var upd models.HospitalUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	hospital, err := h.hospitals.UpdateHospital(c.Request.Context(), c.Param("id"), upd, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hospital not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update hospital"})
		return
	}
	c.JSON(http.StatusOK, hospital)
}

func (h *Handler) getHospitalStats(c *gin.Context) {
	hospitals, err := h.hospitals.ListHospitals(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch hospitals"})
		return
	}

	var totalBeds, availableBeds, icuBeds, icuAvailable, emergency int
	for _, hosp := range hospitals {
		totalBeds += hosp.TotalBeds
		availableBeds += hosp.AvailableBeds
		icuBeds += hosp.ICUBeds
		icuAvailable += hosp.ICUAvailable
		if hosp.EmergencyCapacity {
			emergency++
		}
	}

	occupancy := 0.0
	if totalBeds > 0 {
		occupancy = float64(totalBeds-availableBeds) / float64(totalBeds)
	}

	c.JSON(http.StatusOK, gin.H{
		"total_hospitals":     len(hospitals),
		"total_beds":          totalBeds,
		"available_beds":      availableBeds,
		"icu_beds":            icuBeds,
		"icu_available":       icuAvailable,
		"emergency_capable":   emergency,
		"occupancy_rate":      occupancy,
	})
}

func (h *Handler) getNearbyHospitals(c *gin.Context) {
	ref, ok := parseCoordinates(c)
	if !ok {
		return
	}

	limit := defaultNearbyLimit
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxNearbyLimit {
		limit = maxNearbyLimit
	}

	hospitals, err := h.hospitals.ListHospitals(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch hospitals"})
		return
	}

	ranked := geo.NearestHospitals(ref, hospitals, limit)
	c.JSON(http.StatusOK, gin.H{"hospitals": ranked, "count": len(ranked)})
}

func (h *Handler) listSafeZones(c *gin.Context) {
	zones := seed.SafeZones(models.ZoneType(c.Query("zone_type")), c.Query("region"))
	c.JSON(http.StatusOK, gin.H{"safe_zones": zones, "count": len(zones)})
}

func (h *Handler) getNearestSafeZone(c *gin.Context) {
	ref, ok := parseCoordinates(c)
	if !ok {
		return
	}

	zones := seed.SafeZones(models.ZoneType(c.Query("zone_type")), "")
	nearest, found := geo.NearestZone(ref, zones)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no safe zones available"})
		return
	}
	c.JSON(http.StatusOK, nearest)
}

func (h *Handler) generatePrediction(c *gin.Context) {
	kind, ok := parseEventKind(c.Query("disaster_type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "disaster_type must be seismic, flood, or heatwave"})
		return
	}
	region := c.Query("region")
	if region == "" {
		region = "Italia"
	}

	pred, err := h.predictor.Generate(c.Request.Context(), kind, region)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate prediction"})
		return
	}
	c.JSON(http.StatusOK, pred)
}

func (h *Handler) getPredictionHistory(c *gin.Context) {
	var kind models.EventKind
	if t := c.Query("disaster_type"); t != "" {
		k, ok := parseEventKind(t)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "disaster_type must be seismic, flood, or heatwave"})
			return
		}
		kind = k
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	preds, err := h.predictions.ListPredictions(c.Request.Context(), kind, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch predictions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": preds, "count": len(preds)})
}

// getDashboardSummary rolls the three snapshots into the single status panel
// the dashboard polls.
func (h *Handler) getDashboardSummary(c *gin.Context) {
	seismic, _ := h.snap.Seismic()
	floods, _ := h.snap.Floods()
	heat, _ := h.snap.Heat()

	feed := alerts.Aggregate(seismic, floods, heat)
	critical, high := 0, 0
	for _, a := range feed {
		switch a.Severity {
		case models.RiskCritical:
			critical++
		case models.RiskHigh:
			high++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"seismic_events":  len(seismic),
		"flood_alerts":    len(floods),
		"heatwave_alerts": len(heat),
		"high_priority":   feed,
		"overall_status":  overallStatus(critical, high),
		"generated_at":    time.Now(),
	})
}

// overallStatus maps active alert counts to the dashboard traffic light.
func overallStatus(critical, high int) string {
	switch {
	case critical > 0:
		return "critical"
	case high > 2:
		return "high"
	case high > 0:
		return "moderate"
	default:
		return "normal"
	}
}

func parseCoordinates(c *gin.Context) (models.Coordinates, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if latErr != nil || lonErr != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid latitude and longitude are required"})
		return models.Coordinates{}, false
	}
	return models.Coordinates{Latitude: lat, Longitude: lon}, true
}

func parseEventKind(s string) (models.EventKind, bool) {
	switch models.EventKind(s) {
	case models.KindSeismic, models.KindFlood, models.KindHeat:
		return models.EventKind(s), true
	default:
		return "", false
	}
}
