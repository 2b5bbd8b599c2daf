package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Feed     FeedConfig     `yaml:"feed"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" env:"SERVER_RATE_LIMIT_PER_MIN" env-default:"300"`
	RateLimitSweep  time.Duration `yaml:"rate_limit_sweep"   env:"SERVER_RATE_LIMIT_SWEEP"   env-default:"5m"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// AuthConfig holds authentication and OAuth settings.
type AuthConfig struct {
	JWTSecret          string        `yaml:"jwt_secret"           env:"AUTH_JWT_SECRET"           env-required:"true"`
	JWTIssuer          string        `yaml:"jwt_issuer"           env:"AUTH_JWT_ISSUER"           env-default:"dealboard"`
	AccessTokenTTL     time.Duration `yaml:"access_token_ttl"     env:"AUTH_ACCESS_TOKEN_TTL"     env-default:"15m"`
	RefreshTokenTTL    time.Duration `yaml:"refresh_token_ttl"    env:"AUTH_REFRESH_TOKEN_TTL"    env-default:"720h"`
	GoogleClientID     string        `yaml:"google_client_id"     env:"AUTH_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `yaml:"google_client_secret" env:"AUTH_GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string        `yaml:"google_redirect_uri"  env:"AUTH_GOOGLE_REDIRECT_URI"`
}

// FeedConfig holds feed composition settings.
type FeedConfig struct {
	HottestWindow int `yaml:"hottest_window" env:"FEED_HOTTEST_WINDOW" env-default:"50"`
	HottestLimit  int `yaml:"hottest_limit"  env:"FEED_HOTTEST_LIMIT"  env-default:"3"`
	PageSize      int `yaml:"page_size"      env:"FEED_PAGE_SIZE"      env-default:"20"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// GoogleConfigured reports whether the Google OAuth credentials are
// fully present.
func (c AuthConfig) GoogleConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
