package config

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DefaultPort = "3000"

	EnvAppEnv            = "SPACE_PLANNER_APP_ENV"
	EnvSpacePlannerPort  = "SPACE_PLANNER_PORT"
	EnvPort              = "PORT"
	EnvLogLevel          = "SPACE_PLANNER_LOG_LEVEL"
	EnvLogFormat         = "SPACE_PLANNER_LOG_FORMAT"
	EnvPolicy            = "SPACE_PLANNER_POLICY"
	EnvProvider          = "SPACE_PLANNER_PROVIDER"
	EnvModel             = "SPACE_PLANNER_MODEL"
	EnvGenerationTimeout = "SPACE_PLANNER_GENERATION_TIMEOUT"
	EnvOpenAIKeyScoped   = "SPACE_PLANNER_OPENAI_API_KEY"
	EnvOpenAIKey         = "OPENAI_API_KEY"
	EnvOpenAIBaseURL     = "SPACE_PLANNER_OPENAI_BASE_URL"
	EnvGeminiKey         = "SPACE_PLANNER_GEMINI_API_KEY"
	EnvInventoryBaseURL  = "SPACE_PLANNER_INVENTORY_BASE_URL"
	EnvRedisURL          = "SPACE_PLANNER_REDIS_URL"
	EnvCartTTL           = "SPACE_PLANNER_CART_TTL"
	EnvCORSOrigins       = "SPACE_PLANNER_CORS_ORIGINS"
	EnvAdvisoryURL       = "SPACE_PLANNER_URL"
	EnvAdvisoryURLVite   = "VITE_SPACE_PLANNER_URL"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var validProviders = []string{ProviderOpenAI, ProviderGemini}
