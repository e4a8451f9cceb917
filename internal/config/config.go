package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Activity  ActivityConfig  `mapstructure:"activity"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port" envconfig:"PORT"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	StaticDir      string        `mapstructure:"static_dir" envconfig:"STATIC_DIR"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host" envconfig:"DB_HOST"`
	Port            int           `mapstructure:"port" envconfig:"DB_PORT"`
	User            string        `mapstructure:"user" envconfig:"DB_USER"`
	Password        string        `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name            string        `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode         string        `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" envconfig:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" envconfig:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" envconfig:"DB_CONN_MAX_LIFETIME"`
}

type JWTConfig struct {
	Secret       string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours  int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
	AuthRequired bool   `mapstructure:"auth_required" envconfig:"AUTH_REQUIRED"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url" envconfig:"REDIS_URL"`
	Channel      string        `mapstructure:"channel" envconfig:"REDIS_CHANNEL"`
	MaxRetries   int           `mapstructure:"max_retries" envconfig:"REDIS_MAX_RETRIES"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff" envconfig:"REDIS_RETRY_BACKOFF"`
	PoolSize     int           `mapstructure:"pool_size" envconfig:"REDIS_POOL_SIZE"`
	// Consecutive publish failures before publishing is suspended for BreakerTimeout.
	BreakerFailures int           `mapstructure:"breaker_failures" envconfig:"REDIS_BREAKER_FAILURES"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout" envconfig:"REDIS_BREAKER_TIMEOUT"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" envconfig:"LOG_LEVEL"`
	Format string `mapstructure:"format" envconfig:"LOG_FORMAT"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

// ActivityConfig bounds the activity feed. RetentionDays of 0 keeps everything.
type ActivityConfig struct {
	RetentionDays   int           `mapstructure:"retention_days" envconfig:"ACTIVITY_RETENTION_DAYS"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" envconfig:"ACTIVITY_CLEANUP_INTERVAL"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" envconfig:"CORS_ORIGINS"`
}

// DSN builds a lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		c.SSLMode,
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 35*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("jwt.expiry_hours", 24)
	v.SetDefault("jwt.auth_required", false)

	v.SetDefault("redis.channel", "doctor.activities")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.breaker_failures", 5)
	v.SetDefault("redis.breaker_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("rate_limit.requests_per_second", 50.0)
	v.SetDefault("rate_limit.burst", 100)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("activity.retention_days", 90)
	v.SetDefault("activity.cleanup_interval", time.Hour)
}

// LoadConfig reads defaults, then an optional YAML file, then the process
// environment. An explicit path must exist; otherwise a missing file is fine.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/app")
		v.AddConfigPath("/app/config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(&config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyEnv(config *Config) error {
	targets := []interface{}{
		&config.Server,
		&config.Database,
		&config.JWT,
		&config.Redis,
		&config.Log,
		&config.RateLimit,
		&config.CORS,
		&config.Activity,
	}
	for _, t := range targets {
		if err := envconfig.Process("", t); err != nil {
			return err
		}
	}
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Activity.RetentionDays < 0 {
		return fmt.Errorf("activity.retention_days must not be negative")
	}
	if c.Activity.RetentionDays > 0 && c.Activity.CleanupInterval <= 0 {
		return fmt.Errorf("activity.cleanup_interval must be positive")
	}
	if c.JWT.AuthRequired && c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_REQUIRED is set")
	}
	return nil
}
