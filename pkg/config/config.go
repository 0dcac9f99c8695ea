package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/mobicorp/spaceplanner-backend/pkg/env"
)

// Config is resolved once at startup and handed to constructors; nothing reads the
// environment after Load returns.
type Config struct {
	App       AppConfig
	Planner   PlannerConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Inventory InventoryConfig
	Redis     RedisConfig
	CORS      CORSConfig
	CLI       CLIConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.resolveSources()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SPACE_PLANNER_APP_ENV" default:"dev"`
	Port         string `ignored:"true"`
	LogLevel     string `envconfig:"SPACE_PLANNER_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"SPACE_PLANNER_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"SPACE_PLANNER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Addr returns the listen address for the HTTP server.
func (a AppConfig) Addr() string {
	return ":" + a.Port
}

type PlannerConfig struct {
	Policy            string        `envconfig:"SPACE_PLANNER_POLICY" default:"standard"`
	Provider          string        `envconfig:"SPACE_PLANNER_PROVIDER" default:"openai"`
	Model             string        `envconfig:"SPACE_PLANNER_MODEL"`
	GenerationTimeout time.Duration `envconfig:"SPACE_PLANNER_GENERATION_TIMEOUT" default:"30s"`
}

// ModelName returns the configured model or the provider default.
func (p PlannerConfig) ModelName() string {
	if m := strings.TrimSpace(p.Model); m != "" {
		return m
	}
	if strings.EqualFold(p.Provider, ProviderGemini) {
		return "gemini-2.0-flash"
	}
	return "gpt-4o-mini"
}

type OpenAIConfig struct {
	APIKey  string `ignored:"true"`
	BaseURL string `envconfig:"SPACE_PLANNER_OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
}

type GeminiConfig struct {
	APIKey string `envconfig:"SPACE_PLANNER_GEMINI_API_KEY"`
}

type InventoryConfig struct {
	BaseURL string        `envconfig:"SPACE_PLANNER_INVENTORY_BASE_URL"`
	Timeout time.Duration `envconfig:"SPACE_PLANNER_INVENTORY_TIMEOUT" default:"10s"`
}

// Enabled reports whether an inventory endpoint was configured.
func (i InventoryConfig) Enabled() bool {
	return strings.TrimSpace(i.BaseURL) != ""
}

type RedisConfig struct {
	URL          string        `envconfig:"SPACE_PLANNER_REDIS_URL"`
	PoolSize     int           `envconfig:"SPACE_PLANNER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SPACE_PLANNER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SPACE_PLANNER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SPACE_PLANNER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SPACE_PLANNER_REDIS_WRITE_TIMEOUT" default:"5s"`
	CartTTL      time.Duration `envconfig:"SPACE_PLANNER_CART_TTL" default:"720h"`
}

// Enabled reports whether carts should be kept in Redis instead of process memory.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SPACE_PLANNER_CORS_ORIGINS" default:"*"`
}

type CLIConfig struct {
	AdvisoryURL string `ignored:"true"`
}

// HasCredential reports whether the selected provider has an API key.
func (c *Config) HasCredential() bool {
	if strings.EqualFold(c.Planner.Provider, ProviderGemini) {
		return c.Gemini.APIKey != ""
	}
	return c.OpenAI.APIKey != ""
}

func (c *Config) resolveSources() {
	c.App.Port = env.FirstOf(DefaultPort, EnvSpacePlannerPort, EnvPort)
	c.OpenAI.APIKey = env.FirstOf("", EnvOpenAIKeyScoped, EnvOpenAIKey)
	c.CLI.AdvisoryURL = env.FirstOf(
		fmt.Sprintf("http://localhost:%s/api/space-planner", c.App.Port),
		EnvAdvisoryURL, EnvAdvisoryURLVite,
	)
	c.Planner.Provider = strings.ToLower(strings.TrimSpace(c.Planner.Provider))
	c.Planner.Policy = strings.ToLower(strings.TrimSpace(c.Planner.Policy))
}

func (c *Config) validate() error {
	known := false
	for _, p := range validProviders {
		if c.Planner.Provider == p {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%s must be one of %s", EnvProvider, strings.Join(validProviders, ", "))
	}
	if c.Planner.GenerationTimeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvGenerationTimeout)
	}
	return nil
}
