package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Provider ProviderConfig `yaml:"provider"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimit       int           `yaml:"rate_limit"       env:"SERVER_RATE_LIMIT"       env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings for the account
// record store.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ProviderConfig holds settings for the upstream scripture provider.
// Dialect selects which of the provider's two chapter-content response
// shapes the client expects; it is configuration, never sniffed from
// responses.
type ProviderConfig struct {
	BaseURL            string        `yaml:"base_url"            env:"PROVIDER_BASE_URL"            env-default:"https://api.scripture.api.bible/v1"`
	APIKey             string        `yaml:"api_key"             env:"PROVIDER_API_KEY"             env-required:"true"`
	DefaultTranslation string        `yaml:"default_translation" env:"PROVIDER_DEFAULT_TRANSLATION" env-required:"true"`
	Dialect            string        `yaml:"dialect"             env:"PROVIDER_DIALECT"             env-default:"embedded"`
	RequestTimeout     time.Duration `yaml:"request_timeout"     env:"PROVIDER_REQUEST_TIMEOUT"     env-default:"15s"`
	SearchLimit        int           `yaml:"search_limit"        env:"PROVIDER_SEARCH_LIMIT"        env-default:"20"`
	SizingConcurrency  int           `yaml:"sizing_concurrency"  env:"PROVIDER_SIZING_CONCURRENCY"  env-default:"4"`
}

// AuthConfig holds session token verification settings. Tokens are issued
// by the external identity service; this engine only verifies them.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"lectern"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
