// Package prediction generates 24-48h risk outlooks for a region by feeding
// the current snapshot data to an OpenAI chat model.
package prediction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/disasterwatch/italia/internal/models"
	"github.com/disasterwatch/italia/internal/observability"
	"github.com/disasterwatch/italia/internal/repository"
	"github.com/disasterwatch/italia/internal/snapshot"
)

// chatClient is the slice of the OpenAI client the predictor needs.
// *openai.Client satisfies it.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Predictor struct {
	client  chatClient
	model   string
	snap    *snapshot.Store
	repo    repository.PredictionRepository
	metrics *observability.Metrics
}

// NewPredictor returns a predictor backed by the given OpenAI API key. An
// empty key disables the model call; Generate then always returns the
// baseline outlook.
func NewPredictor(apiKey, model string, snap *snapshot.Store, repo repository.PredictionRepository, metrics *observability.Metrics) *Predictor {
	p := &Predictor{
		model:   model,
		snap:    snap,
		repo:    repo,
		metrics: metrics,
	}
	if apiKey != "" {
		p.client = openai.NewClient(apiKey)
	}
	return p
}

// modelReply is the JSON object the prompt instructs the model to return.
type modelReply struct {
	RiskLevel       string   `json:"risk_level"`
	Confidence      float64  `json:"confidence"`
	Forecast        string   `json:"forecast"`
	Recommendations []string `json:"recommendations"`
}

// Generate produces and persists a risk outlook for one disaster type and
// region. Model errors or unparseable replies degrade to the baseline
// outlook rather than failing the request.
func (p *Predictor) Generate(ctx context.Context, disasterType models.EventKind, region string) (*models.Prediction, error) {
	now := time.Now()
	pred := p.fromModel(ctx, disasterType, region, now)
	if pred == nil {
		p.metrics.PredictionRequests.WithLabelValues("fallback").Inc()
		pred = p.baseline(disasterType, region, now)
	} else {
		p.metrics.PredictionRequests.WithLabelValues("success").Inc()
	}

	if err := p.repo.AddPrediction(ctx, pred); err != nil {
		return nil, fmt.Errorf("error persisting prediction: %w", err)
	}
	return pred, nil
}

func (p *Predictor) fromModel(ctx context.Context, disasterType models.EventKind, region string, now time.Time) *models.Prediction {
	if p.client == nil {
		return nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a disaster risk analyst for Italy. Reply with a single JSON object " +
					`{"risk_level": "low|moderate|high|critical", "confidence": 0.0-1.0, ` +
					`"forecast": "...", "recommendations": ["..."]} and nothing else.`,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: p.buildPrompt(disasterType, region),
			},
		},
		MaxTokens:   400,
		Temperature: 0.3,
	})
	if err != nil {
		slog.Warn("prediction model call failed", "type", disasterType, "region", region, "error", err)
		return nil
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		slog.Warn("prediction model returned no choices", "type", disasterType, "region", region)
		return nil
	}

	reply, err := extractReply(resp.Choices[0].Message.Content)
	if err != nil {
		slog.Warn("prediction reply not parseable", "type", disasterType, "region", region, "error", err)
		return nil
	}

	risk, ok := models.ParseRiskLevel(reply.RiskLevel)
	if !ok {
		slog.Warn("prediction reply has unknown risk level", "risk_level", reply.RiskLevel)
		return nil
	}
	confidence := reply.Confidence
	if confidence < 0 || confidence > 1 {
		confidence = 0.5
	}

	return &models.Prediction{
		ID:              fmt.Sprintf("pred_%d", now.UnixNano()),
		DisasterType:    disasterType,
		Region:          region,
		PredictionText:  reply.Forecast,
		RiskLevel:       risk,
		Confidence:      confidence,
		ValidFrom:       now,
		ValidUntil:      now.Add(48 * time.Hour),
		Recommendations: reply.Recommendations,
		CreatedAt:       now,
	}
}

// buildPrompt summarizes the live snapshot so the model grounds its outlook
// in current conditions instead of inventing them.
func (p *Predictor) buildPrompt(disasterType models.EventKind, region string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Assess the %s risk for %s, Italy over the next 24-48 hours.\n\nCurrent conditions:\n", disasterType, region)

	seismic, _ := p.snap.Seismic()
	maxMag := 0.0
	for _, e := range seismic {
		if e.Magnitude > maxMag {
			maxMag = e.Magnitude
		}
	}
	fmt.Fprintf(&b, "- %d recent earthquakes, strongest M%.1f\n", len(seismic), maxMag)

	floods, _ := p.snap.Floods()
	evacuations := 0
	for _, a := range floods {
		if a.EvacuationAdvised {
			evacuations++
		}
	}
	fmt.Fprintf(&b, "- %d active flood alerts, %d with evacuation advisories\n", len(floods), evacuations)

	heat, _ := p.snap.Heat()
	maxTemp := 0.0
	for _, a := range heat {
		if a.Temperature > maxTemp {
			maxTemp = a.Temperature
		}
	}
	fmt.Fprintf(&b, "- %d active heat alerts, peak temperature %.1f C\n", len(heat), maxTemp)

	return b.String()
}

// extractReply pulls the JSON object out of the model's reply, tolerating
// prose or code fences around it.
func extractReply(content string) (*modelReply, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var reply modelReply
	if err := json.Unmarshal([]byte(content[start:end+1]), &reply); err != nil {
		return nil, fmt.Errorf("error decoding reply: %w", err)
	}
	return &reply, nil
}

func (p *Predictor) baseline(disasterType models.EventKind, region string, now time.Time) *models.Prediction {
	return &models.Prediction{
		ID:             fmt.Sprintf("pred_%d", now.UnixNano()),
		DisasterType:   disasterType,
		Region:         region,
		PredictionText: fmt.Sprintf("Based on recent activity, %s risk for %s remains moderate over the next 24-48 hours. Continue monitoring official channels.", disasterType, region),
		RiskLevel:      models.RiskModerate,
		Confidence:     0.6,
		ValidFrom:      now,
		ValidUntil:     now.Add(48 * time.Hour),
		Recommendations: []string{
			"Monitor official emergency channels",
			"Keep emergency supplies ready",
			"Know the location of your nearest safe zone",
		},
		CreatedAt: now,
	}
}
