package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for the loan engine.
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Auth      AuthConfig      `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
}

type ServerConfig struct {
	Host         string `mapstructure:"SERVER_HOST"`
	Port         string `mapstructure:"SERVER_PORT"`
	Env          string `mapstructure:"ENV"`
	ReadTimeout  string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout string `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"DATABASE_HOST"`
	Port            string `mapstructure:"DATABASE_PORT"`
	Name            string `mapstructure:"DATABASE_NAME"`
	User            string `mapstructure:"DATABASE_USER"`
	Password        string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode         string `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns    int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime string `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"JWT_SECRET"`
	TokenTTL  string `mapstructure:"TOKEN_TTL"`
}

type SchedulerConfig struct {
	OverdueSpec string `mapstructure:"SCHEDULER_OVERDUE_SPEC"`
	Timezone    string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type BusinessConfig struct {
	DefaultCreditLimit int64  `mapstructure:"DEFAULT_CREDIT_LIMIT"`
	DailyLateFeeRate   string `mapstructure:"DAILY_LATE_FEE_RATE"`
	DefaultGraceDays   int    `mapstructure:"DEFAULT_GRACE_DAYS"`
	LoanCacheTTL       string `mapstructure:"LOAN_CACHE_TTL"`
}

// Load reads configuration from the environment and an optional .env
// file, applying defaults first.
func Load() (*Config, error) {
	// .env is optional; environment variables win
	_ = godotenv.Load()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")

	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_NAME", "loan_engine")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("TOKEN_TTL", "720h")

	viper.SetDefault("SCHEDULER_OVERDUE_SPEC", "0 0 0 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Asia/Ulaanbaatar")

	viper.SetDefault("DEFAULT_CREDIT_LIMIT", 500000)
	viper.SetDefault("DAILY_LATE_FEE_RATE", "0.5")
	viper.SetDefault("DEFAULT_GRACE_DAYS", 60)
	viper.SetDefault("LOAN_CACHE_TTL", "5m")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Auth.JWTSecret == "" && c.IsProduction() {
		return fmt.Errorf("JWT_SECRET is required in production")
	}

	if _, err := time.ParseDuration(c.Auth.TokenTTL); err != nil {
		return fmt.Errorf("TOKEN_TTL must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("DATABASE_CONN_MAX_LIFETIME must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Business.LoanCacheTTL); err != nil {
		return fmt.Errorf("LOAN_CACHE_TTL must be a valid duration: %w", err)
	}

	if _, err := decimal.NewFromString(c.Business.DailyLateFeeRate); err != nil {
		return fmt.Errorf("DAILY_LATE_FEE_RATE must be a valid decimal: %w", err)
	}

	if c.Business.DefaultGraceDays <= 0 {
		return fmt.Errorf("DEFAULT_GRACE_DAYS must be greater than 0")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// DSN builds the postgres connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// GetWriteTimeout returns the server write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.WriteTimeout)
	return d
}

// GetConnMaxLifetime returns the database connection lifetime.
func (c *Config) GetConnMaxLifetime() time.Duration {
	d, _ := time.ParseDuration(c.Database.ConnMaxLifetime)
	return d
}

// GetTokenTTL returns how long issued session tokens stay valid.
func (c *Config) GetTokenTTL() time.Duration {
	d, _ := time.ParseDuration(c.Auth.TokenTTL)
	return d
}

// GetLoanCacheTTL returns how long loan reads stay cached.
func (c *Config) GetLoanCacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Business.LoanCacheTTL)
	return d
}

// GetDailyLateFeeRate returns the late fee rate in percent per day.
func (c *Config) GetDailyLateFeeRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.DailyLateFeeRate)
	return rate
}
