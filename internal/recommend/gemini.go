package recommend

import (
	"context"
	"errors"
	"time"

	"google.golang.org/genai"

	"github.com/tirematch/backend/internal/models"
)

type GeminiEngine struct {
	Client *genai.Client
	Model  string
}

func NewGeminiEngine(ctx context.Context, apiKey, model string) (*GeminiEngine, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiEngine{Client: client, Model: model}, nil
}

func (g *GeminiEngine) Recommend(ctx context.Context, query string, items []models.CatalogItem) ([]models.Candidate, int64, error) {
	start := time.Now()
	prompt := BuildPrompt(query, items)

	resp, err := g.Client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), nil)
	if err != nil {
		return nil, time.Since(start).Milliseconds(), err
	}
	text := resp.Text()
	if text == "" {
		return nil, time.Since(start).Milliseconds(), errors.New("empty model response")
	}

	cands, err := ParseCandidates(text)
	if err != nil {
		return nil, time.Since(start).Milliseconds(), err
	}
	return cands, time.Since(start).Milliseconds(), nil
}
