package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	LLM       LLMConfig       `yaml:"llm"`
	Import    ImportConfig    `yaml:"import"`
	Device    DeviceConfig    `yaml:"device"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"180s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"2097152"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ConnectAttempts int           `yaml:"connect_attempts"   env:"DATABASE_CONNECT_ATTEMPTS"   env-default:"5"`
	AppName         string        `yaml:"app_name"           env:"DATABASE_APP_NAME"           env-default:"kashi"`
}

// AuthConfig holds the settings for verifying the external auth provider's tokens.
type AuthConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"   env:"AUTH_JWT_SECRET"   env-required:"true"`
	JWTIssuer   string        `yaml:"jwt_issuer"   env:"AUTH_JWT_ISSUER"`
	JWTAudience string        `yaml:"jwt_audience" env:"AUTH_JWT_AUDIENCE" env-default:"authenticated"`
	Leeway      time.Duration `yaml:"leeway"       env:"AUTH_LEEWAY"       env-default:"30s"`
}

// LLM providers accepted in LLMConfig.Provider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// LLMConfig selects the model that turns raw lyrics into a lyrics document.
// An empty Provider disables ingestion.
type LLMConfig struct {
	Provider    string        `yaml:"provider"    env:"LLM_PROVIDER"`
	APIKey      string        `yaml:"api_key"     env:"LLM_API_KEY"`
	Model       string        `yaml:"model"       env:"LLM_MODEL"`
	BaseURL     string        `yaml:"base_url"    env:"LLM_BASE_URL"`
	Temperature float64       `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.1"`
	MaxTokens   int           `yaml:"max_tokens"  env:"LLM_MAX_TOKENS"  env-default:"8192"`
	Timeout     time.Duration `yaml:"timeout"     env:"LLM_TIMEOUT"     env-default:"150s"`
	SkipVerify  bool          `yaml:"skip_verify" env:"LLM_SKIP_VERIFY"`
}

// Enabled reports whether a provider is configured.
func (c LLMConfig) Enabled() bool { return c.Provider != "" }

// ModelOrDefault returns the configured model, or the provider's default.
func (c LLMConfig) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	}
	return ""
}

// ImportConfig holds the settings of the import pipeline around the LLM.
// Switches are negative so that false, their zero value, is the default.
type ImportConfig struct {
	SkipAnnotate bool          `yaml:"skip_annotate"  env:"IMPORT_SKIP_ANNOTATE"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"  env:"IMPORT_FETCH_TIMEOUT"  env-default:"15s"`
	MaxPageBytes int64         `yaml:"max_page_bytes" env:"IMPORT_MAX_PAGE_BYTES" env-default:"10485760"`
}

// DeviceConfig locates the device-local store of the terminal client.
type DeviceConfig struct {
	Path string `yaml:"path" env:"DEVICE_STORE_PATH" env-default:"kashi-device.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Disabled bool   `yaml:"disabled" env:"METRICS_DISABLED"`
	Path     string `yaml:"path"     env:"METRICS_PATH"     env-default:"/metrics"`
}

// RateLimitConfig limits the expensive ingestion endpoints per client.
type RateLimitConfig struct {
	IngestPerMinute int           `yaml:"ingest_per_minute" env:"RATE_LIMIT_INGEST_PER_MINUTE" env-default:"6"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"  env:"RATE_LIMIT_CLEANUP_INTERVAL"  env-default:"5m"`
}
