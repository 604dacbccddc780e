package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	Stripe   StripeConfig
	Voice    VoiceConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                 string
	RefreshSecret          string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
	Issuer                 string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StripeConfig holds payment processor settings
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	// OnboardingRefreshURL and OnboardingReturnURL are where the hosted
	// onboarding flow sends the merchant back.
	OnboardingRefreshURL string
	OnboardingReturnURL  string
	// PollInterval and PollMaxAttempts bound the synchronous
	// card-present payment status poll.
	PollInterval    time.Duration
	PollMaxAttempts int
}

// VoiceConfig holds conversational-voice vendor settings
type VoiceConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Load reads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/backoffice")

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults suffice.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "backoffice")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "backoffice")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxopenconns", 25)
	v.SetDefault("database.maxidleconns", 5)
	v.SetDefault("database.connmaxlifetime", 30)
	v.SetDefault("database.connmaxidletime", 10)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.refreshsecret", "")
	v.SetDefault("jwt.accesstokenexpiration", 15*time.Minute)
	v.SetDefault("jwt.refreshtokenexpiration", 7*24*time.Hour)
	v.SetDefault("jwt.issuer", "backoffice")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("stripe.secretkey", "")
	v.SetDefault("stripe.webhooksecret", "")
	v.SetDefault("stripe.onboardingrefreshurl", "http://localhost:3000/onboarding/refresh")
	v.SetDefault("stripe.onboardingreturnurl", "http://localhost:3000/onboarding/complete")
	v.SetDefault("stripe.pollinterval", time.Second)
	v.SetDefault("stripe.pollmaxattempts", 30)

	v.SetDefault("voice.apikey", "")
	v.SetDefault("voice.baseurl", "https://api.elevenlabs.io")
	v.SetDefault("voice.timeout", 10*time.Second)
}

// Validate checks configuration values that have no safe default
func (c *Config) Validate() error {
	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("config: jwt.secret is required in production")
		}
		if c.Stripe.SecretKey == "" {
			return fmt.Errorf("config: stripe.secretkey is required in production")
		}
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = "dev-secret-do-not-use-in-production"
	}
	if c.Stripe.PollMaxAttempts <= 0 {
		return fmt.Errorf("config: stripe.pollmaxattempts must be positive")
	}
	if c.Stripe.PollInterval <= 0 {
		return fmt.Errorf("config: stripe.pollinterval must be positive")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
