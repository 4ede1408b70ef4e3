package prediction

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disasterwatch/italia/internal/models"
	"github.com/disasterwatch/italia/internal/observability"
	"github.com/disasterwatch/italia/internal/snapshot"
)

type fakeChat struct {
	reply string
	err   error
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

type memPredictionRepo struct {
	saved []*models.Prediction
}

func (m *memPredictionRepo) AddPrediction(ctx context.Context, p *models.Prediction) error {
	m.saved = append(m.saved, p)
	return nil
}

func (m *memPredictionRepo) ListPredictions(ctx context.Context, disasterType models.EventKind, limit int) ([]models.Prediction, error) {
	return nil, nil
}

func newTestPredictor(chat chatClient) (*Predictor, *memPredictionRepo) {
	repo := &memPredictionRepo{}
	p := &Predictor{
		client:  chat,
		model:   openai.GPT4oMini,
		snap:    snapshot.NewStore(),
		repo:    repo,
		metrics: observability.NewMetrics(),
	}
	return p, repo
}

func TestExtractReply(t *testing.T) {
	reply, err := extractReply(`Here is my assessment:
{"risk_level": "high", "confidence": 0.82, "forecast": "Elevated seismic activity.", "recommendations": ["Secure heavy furniture"]}
Stay safe.`)
	require.NoError(t, err)
	assert.Equal(t, "high", reply.RiskLevel)
	assert.Equal(t, 0.82, reply.Confidence)
	assert.Len(t, reply.Recommendations, 1)
}

func TestExtractReply_NoJSON(t *testing.T) {
	_, err := extractReply("I cannot assess that right now.")
	assert.Error(t, err)
}

func TestGenerate_FromModel(t *testing.T) {
	p, repo := newTestPredictor(&fakeChat{
		reply: `{"risk_level": "critical", "confidence": 0.9, "forecast": "Major flooding expected.", "recommendations": ["Evacuate low-lying areas", "Avoid river crossings"]}`,
	})

	got, err := p.Generate(context.Background(), models.KindFlood, "Emilia-Romagna")
	require.NoError(t, err)
	assert.Equal(t, models.RiskCritical, got.RiskLevel)
	assert.Equal(t, 0.9, got.Confidence)
	assert.Equal(t, "Major flooding expected.", got.PredictionText)
	assert.Equal(t, models.KindFlood, got.DisasterType)
	assert.Equal(t, 48*time.Hour, got.ValidUntil.Sub(got.ValidFrom))

	require.Len(t, repo.saved, 1)
	assert.Equal(t, got.ID, repo.saved[0].ID)
}

func TestGenerate_FallbackOnModelError(t *testing.T) {
	p, repo := newTestPredictor(&fakeChat{err: errors.New("rate limited")})

	got, err := p.Generate(context.Background(), models.KindSeismic, "Lazio")
	require.NoError(t, err)
	assert.Equal(t, models.RiskModerate, got.RiskLevel)
	assert.Equal(t, 0.6, got.Confidence)
	assert.NotEmpty(t, got.Recommendations)
	assert.Len(t, repo.saved, 1)
}

func TestGenerate_FallbackOnGarbageReply(t *testing.T) {
	p, _ := newTestPredictor(&fakeChat{reply: "the outlook is grim"})

	got, err := p.Generate(context.Background(), models.KindHeat, "Sicilia")
	require.NoError(t, err)
	assert.Equal(t, models.RiskModerate, got.RiskLevel)
}

func TestGenerate_FallbackOnUnknownRisk(t *testing.T) {
	p, _ := newTestPredictor(&fakeChat{
		reply: `{"risk_level": "catastrophic", "confidence": 0.7, "forecast": "x", "recommendations": []}`,
	})

	got, err := p.Generate(context.Background(), models.KindHeat, "Sicilia")
	require.NoError(t, err)
	assert.Equal(t, models.RiskModerate, got.RiskLevel)
}

func TestGenerate_NoAPIKey(t *testing.T) {
	p, repo := newTestPredictor(nil)

	got, err := p.Generate(context.Background(), models.KindFlood, "Veneto")
	require.NoError(t, err)
	assert.Equal(t, models.RiskModerate, got.RiskLevel)
	assert.Len(t, repo.saved, 1)
}
