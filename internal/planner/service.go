package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mobicorp/spaceplanner-backend/internal/generation"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
	"github.com/mobicorp/spaceplanner-backend/pkg/metrics"
)

const (
	// EmptyFallback answers a successful call that returned no text.
	EmptyFallback = "Propuesta generada: revisa dimensiones, tipo de espacio y selección de productos para definir un layout equilibrado entre comodidad y cantidad de puestos."
	// FailureFallback answers a failed generation call.
	FailureFallback = "No se pudo generar la propuesta con IA en este momento. Por favor, intenta nuevamente."
	// FailureTag is the machine-readable error carried alongside FailureFallback.
	FailureTag = "Error generando la propuesta con IA"
)

// Service turns a PlanningRequest into exactly one AdvisoryResponse.
type Service interface {
	Advise(ctx context.Context, req PlanningRequest) (AdvisoryResponse, error)
}

// ServiceParams wires the advisory service. Timeout bounds the single generation call;
// zero leaves the deadline to the caller's context.
type ServiceParams struct {
	Generator generation.Generator
	Provider  string
	Model     string
	Policy    Policy
	Timeout   time.Duration
	Logger    *logger.Logger
	Metrics   *metrics.PlannerMetrics
}

type service struct {
	gen      generation.Generator
	provider string
	model    string
	policy   Policy
	timeout  time.Duration
	logg     *logger.Logger
	metrics  *metrics.PlannerMetrics
}

// NewService builds the advisory service. Calls are single-shot: no retry and no backoff.
func NewService(p ServiceParams) (Service, error) {
	if p.Generator == nil {
		return nil, fmt.Errorf("generator required")
	}
	if strings.TrimSpace(p.Model) == "" {
		return nil, fmt.Errorf("model required")
	}
	if p.Policy.Name == "" {
		p.Policy = DefaultPolicy()
	}
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		gen:      p.Generator,
		provider: p.Provider,
		model:    p.Model,
		policy:   p.Policy,
		timeout:  p.Timeout,
		logg:     logg,
		metrics:  p.Metrics,
	}, nil
}

// Advise composes the prompt, calls the generator once and shapes the reply. On failure
// it returns the retry fallback together with the error; the response is always usable.
func (s *service) Advise(ctx context.Context, req PlanningRequest) (AdvisoryResponse, error) {
	prompt := Compose(req, s.policy)

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.gen.Generate(callCtx, generation.Request{
		Model:       s.model,
		System:      prompt.System,
		User:        prompt.User,
		Temperature: s.policy.Temperature,
		MaxTokens:   s.policy.MaxTokens,
	})
	s.metrics.ObserveGeneration(s.provider, time.Since(start))

	if err != nil {
		s.metrics.IncAdvice(metrics.OutcomeError)
		return AdvisoryResponse{Error: FailureTag, SuggestionText: FailureFallback}, fmt.Errorf("generate suggestion: %w", err)
	}

	text = strings.TrimSpace(text)
	if s.policy.TrimEnabled {
		text = Trim(text)
	}
	if text == "" {
		s.metrics.IncAdvice(metrics.OutcomeEmpty)
		s.logg.Warn(ctx, "planner.empty_suggestion")
		return AdvisoryResponse{SuggestionText: EmptyFallback}, nil
	}

	s.metrics.IncAdvice(metrics.OutcomeOK)
	return AdvisoryResponse{SuggestionText: text}, nil
}
