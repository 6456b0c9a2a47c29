// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Auth          AuthConfig         `mapstructure:"auth"`
	Catalog       CatalogConfig      `mapstructure:"catalog"`
	Scoring       ScoringConfig      `mapstructure:"scoring"`
	RateLimit     RateLimitConfig    `mapstructure:"rate_limit"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	IdleTimeout     int    `mapstructure:"idle_timeout"`     // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address       string `mapstructure:"address"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	ScoreCacheTTL int    `mapstructure:"score_cache_ttl"` // seconds, latest-score cache
}

// AuthConfig holds JWT and password hashing settings.
type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTIssuer      string `mapstructure:"jwt_issuer"`
	TokenTTLHours  int    `mapstructure:"token_ttl_hours"`
	BcryptCost     int    `mapstructure:"bcrypt_cost"`
	MinPasswordLen int    `mapstructure:"min_password_len"`
}

// CatalogConfig holds settings for the loan offer catalog loader.
type CatalogConfig struct {
	CSVPath      string `mapstructure:"csv_path"`      // empty -> built-in seed offers
	RegistryPath string `mapstructure:"registry_path"` // endpoint schema registry
}

// ScoringConfig allows overriding the readiness score formula constants.
// Zero values fall back to the engine defaults.
type ScoringConfig struct {
	Base               float64 `mapstructure:"base"`
	CreditCoefficient  float64 `mapstructure:"credit_coefficient"`
	IncomeCoefficient  float64 `mapstructure:"income_coefficient"`
	DebtCoefficient    float64 `mapstructure:"debt_coefficient"`
	SavingsCoefficient float64 `mapstructure:"savings_coefficient"`
	DefaultCreditScore float64 `mapstructure:"default_credit_score"`
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	RequestsPerIP int  `mapstructure:"requests_per_ip"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// NotificationConfig holds settings for welcome email / SMS delivery.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}
