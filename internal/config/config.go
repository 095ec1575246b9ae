package config

import "time"

// Generation providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
	Generation  GenerationConfig  `yaml:"generation"`
	Translation TranslationConfig `yaml:"translation"`
	Redis       RedisConfig       `yaml:"redis"`
	RateLimit   RateLimitConfig   `yaml:"ratelimit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN               string        `yaml:"dsn"                 env:"DATABASE_DSN"                 env-required:"true"`
	MaxConns          int32         `yaml:"max_conns"           env:"DATABASE_MAX_CONNS"           env-default:"25"`
	MinConns          int32         `yaml:"min_conns"           env:"DATABASE_MIN_CONNS"           env-default:"5"`
	MaxConnLifetime   time.Duration `yaml:"max_conn_lifetime"   env:"DATABASE_MAX_CONN_LIFETIME"   env-default:"1h"`
	MaxConnIdleTime   time.Duration `yaml:"max_conn_idle_time"  env:"DATABASE_MAX_CONN_IDLE_TIME"  env-default:"30m"`
	HealthCheckPeriod time.Duration `yaml:"health_check_period" env:"DATABASE_HEALTH_CHECK_PERIOD" env-default:"1m"`
	ApplicationName   string        `yaml:"application_name"    env:"DATABASE_APPLICATION_NAME"    env-default:"skillquest-backend"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// GenerationConfig selects and configures the roadmap generator.
// A missing credential for the selected provider disables generation;
// every roadmap is then built by the fallback builder.
type GenerationConfig struct {
	Provider        string        `yaml:"provider"          env:"GENERATION_PROVIDER"  env-default:"gemini"`
	GeminiAPIKey    string        `yaml:"gemini_api_key"    env:"GEMINI_API_KEY"`
	GeminiModel     string        `yaml:"gemini_model"      env:"GEMINI_MODEL"         env-default:"gemini-1.5-flash"`
	GeminiBaseURL   string        `yaml:"gemini_base_url"   env:"GEMINI_BASE_URL"      env-default:"https://generativelanguage.googleapis.com"`
	AnthropicAPIKey string        `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string        `yaml:"anthropic_model"   env:"ANTHROPIC_MODEL"      env-default:"claude-sonnet-4-5"`
	Timeout         time.Duration `yaml:"timeout"           env:"GENERATION_TIMEOUT"   env-default:"20s"`
}

// APIKey returns the credential of the selected provider.
func (c GenerationConfig) APIKey() string {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// Enabled reports whether a generation credential is configured.
func (c GenerationConfig) Enabled() bool {
	return c.APIKey() != ""
}

// TranslationConfig holds machine-translation settings.
type TranslationConfig struct {
	URL      string        `yaml:"url"      env:"LIBRETRANSLATE_URL"     env-default:"https://libretranslate.com/translate"`
	APIKey   string        `yaml:"api_key"  env:"LIBRETRANSLATE_API_KEY"`
	Disabled bool          `yaml:"disabled" env:"DISABLE_TRANSLATION"    env-default:"false"`
	Timeout  time.Duration `yaml:"timeout"  env:"TRANSLATION_TIMEOUT"    env-default:"4s"`
}

// RedisConfig holds the translation cache settings. An empty URL disables the cache.
type RedisConfig struct {
	URL      string        `yaml:"url"       env:"REDIS_URL"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"168h"`
}

// RateLimitConfig holds per-IP request limits for the expensive endpoints.
type RateLimitConfig struct {
	RoadmapPerMinute   int `yaml:"roadmap_per_minute"   env:"RATELIMIT_ROADMAP_PER_MINUTE"   env-default:"10"`
	TranslatePerMinute int `yaml:"translate_per_minute" env:"RATELIMIT_TRANSLATE_PER_MINUTE" env-default:"60"`
}
