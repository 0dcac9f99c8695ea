package main

import (
	"context"
	"net/http"

	"github.com/mobicorp/spaceplanner-backend/internal/generation"
	"github.com/mobicorp/spaceplanner-backend/pkg/config"
)

func newGenerator(ctx context.Context, cfg *config.Config) (generation.Generator, error) {
	switch cfg.Planner.Provider {
	case config.ProviderGemini:
		client, err := generation.NewGeminiClient(ctx, cfg.Gemini.APIKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return generation.NewOpenAIClient(generation.OpenAIConfig{
			APIKey:     cfg.OpenAI.APIKey,
			BaseURL:    cfg.OpenAI.BaseURL,
			HTTPClient: &http.Client{},
		}), nil
	}
}
