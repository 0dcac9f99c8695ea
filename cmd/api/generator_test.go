package main

import (
	"context"
	"errors"
	"testing"

	"github.com/mobicorp/spaceplanner-backend/internal/generation"
	"github.com/mobicorp/spaceplanner-backend/pkg/config"
)

func TestNewGeneratorSelectsProvider(t *testing.T) {
	cases := []struct {
		provider string
		want     string
	}{
		{provider: config.ProviderOpenAI, want: "*generation.OpenAIClient"},
		{provider: config.ProviderGemini, want: "*generation.GeminiClient"},
	}
	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Planner.Provider = tc.provider
			gen, err := newGenerator(context.Background(), cfg)
			if err != nil {
				t.Fatalf("newGenerator: %v", err)
			}
			switch gen.(type) {
			case *generation.OpenAIClient:
				if tc.want != "*generation.OpenAIClient" {
					t.Fatalf("got openai client for %s", tc.provider)
				}
			case *generation.GeminiClient:
				if tc.want != "*generation.GeminiClient" {
					t.Fatalf("got gemini client for %s", tc.provider)
				}
			default:
				t.Fatalf("unexpected generator %T", gen)
			}

			_, err = gen.Generate(context.Background(), generation.Request{Model: "m", User: "hola"})
			if !errors.Is(err, generation.ErrMissingAPIKey) {
				t.Fatalf("expected missing key error without credential, got %v", err)
			}
		})
	}
}
