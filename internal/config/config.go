package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all content service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port            int      `yaml:"port"`
	CORSOrigins     []string `yaml:"cors_origins"`
	RateLimitRPS    float64  `yaml:"rate_limit_rps"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
	MaxUploadBytes  int64    `yaml:"max_upload_bytes"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
}

// DatabaseConfig selects the gorm dialector. Driver is one of mysql, postgres, sqlite3.
type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate"`
}

// RedisConfig is optional; an empty Addr disables the like-count cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig is optional; with no brokers outbox rows are only logged.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	PublicBaseURL   string `yaml:"public_base_url"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Folder          string `yaml:"folder"`
}

// AuthConfig enables bearer-token checks on write routes when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	TokenTTL  string `yaml:"token_ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

var (
	ErrUnknownDriver = errors.New("unknown database driver")
	ErrMissingDSN    = errors.New("database dsn required")
)

// Default returns a configuration usable for local development.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			CORSOrigins:     []string{"*"},
			RateLimitRPS:    20,
			RateLimitBurst:  40,
			MaxUploadBytes:  2 << 20,
			ShutdownTimeout: "10s",
		},
		Database: DatabaseConfig{
			Driver:       "mysql",
			MaxOpenConns: 20,
			MaxIdleConns: 5,
		},
		Kafka: KafkaConfig{
			Topic: "content-events",
		},
		Storage: StorageConfig{
			Region: "us-east-1",
			Folder: "uploads",
		},
		Auth: AuthConfig{
			TokenTTL: "30m",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if any),
// then .env, then process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setInt(&c.Server.Port, "PORT")
	setList(&c.Server.CORSOrigins, "CORS_ORIGINS")
	setFloat(&c.Server.RateLimitRPS, "RATE_LIMIT_RPS")
	setInt(&c.Server.RateLimitBurst, "RATE_LIMIT_BURST")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DB_DSN")
	setBool(&c.Database.AutoMigrate, "DB_AUTO_MIGRATE")

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")

	setList(&c.Kafka.Brokers, "KAFKA_BROKERS")
	setString(&c.Kafka.Topic, "KAFKA_TOPIC")

	setString(&c.Storage.Bucket, "S3_BUCKET")
	setString(&c.Storage.Region, "S3_REGION")
	setString(&c.Storage.Endpoint, "S3_ENDPOINT")
	setString(&c.Storage.PublicBaseURL, "S3_PUBLIC_BASE_URL")
	setString(&c.Storage.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&c.Storage.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.TokenTTL, "JWT_TTL")

	setString(&c.Log.Level, "LOG_LEVEL")
}

// Validate checks the fields the service cannot start without.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite3":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return ErrMissingDSN
	}
	return nil
}

// ShutdownGrace returns the parsed shutdown timeout, falling back to 10s.
func (c *Config) ShutdownGrace() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

// TokenLifetime returns the parsed JWT lifetime, falling back to 30m.
func (c *Config) TokenLifetime() time.Duration {
	return parseDuration(c.Auth.TokenTTL, 30*time.Minute)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setList(dst *[]string, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}
