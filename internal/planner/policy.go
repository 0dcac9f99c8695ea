package planner

import (
	"fmt"
	"strings"
)

const (
	PolicyStandard = "standard"
	PolicyBrief    = "brief"
	PolicyStrict   = "strict"
)

// Policy holds the length ceilings written into the prompt and whether the reply is
// post-trimmed. The ceilings are instructions to the model; only Trim enforces anything.
type Policy struct {
	Name         string
	MinSentences int
	MaxSentences int
	MaxWords     int
	Paragraphs   int
	TrimEnabled  bool
	Temperature  *float64
	MaxTokens    int
}

func floatPtr(v float64) *float64 {
	return &v
}

var policies = map[string]Policy{
	PolicyStandard: {
		Name:         PolicyStandard,
		MinSentences: 3,
		MaxSentences: 5,
		MaxWords:     120,
		Paragraphs:   2,
	},
	PolicyBrief: {
		Name:         PolicyBrief,
		MinSentences: 2,
		MaxSentences: 3,
		MaxWords:     70,
		Paragraphs:   1,
		TrimEnabled:  true,
	},
	PolicyStrict: {
		Name:         PolicyStrict,
		MinSentences: 2,
		MaxSentences: 3,
		MaxWords:     60,
		Paragraphs:   1,
		TrimEnabled:  true,
		Temperature:  floatPtr(0.2),
		MaxTokens:    160,
	},
}

// DefaultPolicy returns the standard preset.
func DefaultPolicy() Policy {
	return policies[PolicyStandard]
}

// PolicyByName resolves a preset; an empty name selects the standard one.
func PolicyByName(name string) (Policy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return DefaultPolicy(), nil
	}
	if p, ok := policies[key]; ok {
		return p, nil
	}
	return Policy{}, fmt.Errorf("unknown planner policy %q (want %s, %s or %s)", name, PolicyStandard, PolicyBrief, PolicyStrict)
}
