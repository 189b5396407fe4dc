package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"

	QueueMemory = "memory"
	QueueRedis  = "redis"
)

type Config struct {
	Port        string `yaml:"port" validate:"required,numeric"`
	DatabaseURL string `yaml:"databaseUrl"`

	JWTSecret     string `yaml:"jwtSecret" validate:"required"`
	JWTIssuer     string `yaml:"jwtIssuer" validate:"required"`
	JWTTTLMinutes int    `yaml:"jwtTtlMinutes" validate:"min=1"`

	LogLevel  string `yaml:"logLevel" validate:"oneof=trace debug info warn error"`
	LogFormat string `yaml:"logFormat" validate:"oneof=console json"`

	StorageBackend string `yaml:"storageBackend" validate:"oneof=local minio"`
	UploadDir      string `yaml:"uploadDir" validate:"required_if=StorageBackend local"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes" validate:"min=1"`

	Minio MinioConfig `yaml:"minio"`

	QueueBackend string      `yaml:"queueBackend" validate:"oneof=memory redis"`
	Redis        RedisConfig `yaml:"redis"`

	Workers           int           `yaml:"workers" validate:"min=1,max=64"`
	WorkerPollTimeout time.Duration `yaml:"workerPollTimeout" validate:"min=100ms"`
	QueueSize         int           `yaml:"queueSize" validate:"min=1"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"useSsl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"min=0"`
	QueueKey string `yaml:"queueKey"`
}

func defaults() Config {
	return Config{
		Port:              "8080",
		JWTSecret:         "dev-secret-change",
		JWTIssuer:         "hr-service",
		JWTTTLMinutes:     60,
		LogLevel:          "info",
		LogFormat:         "json",
		StorageBackend:    StorageLocal,
		UploadDir:         "uploads",
		MaxUploadBytes:    5 << 20,
		Minio:             MinioConfig{Bucket: "resumes", Region: "us-east-1"},
		QueueBackend:      QueueMemory,
		Redis:             RedisConfig{Addr: "localhost:6379", QueueKey: "ingest:resumes"},
		Workers:           4,
		WorkerPollTimeout: 5 * time.Second,
		QueueSize:         1024,
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables (a .env file is read when present).
// Later sources win.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.JWTTTLMinutes = getEnvInt("JWT_TTL_MINUTES", cfg.JWTTTLMinutes)

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", cfg.LogFormat))

	cfg.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", cfg.StorageBackend))
	cfg.UploadDir = getEnv("UPLOAD_DIR", cfg.UploadDir)
	cfg.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", int(cfg.MaxUploadBytes)))

	cfg.Minio.Endpoint = getEnv("MINIO_ENDPOINT", cfg.Minio.Endpoint)
	cfg.Minio.AccessKey = getEnv("MINIO_ACCESS_KEY", cfg.Minio.AccessKey)
	cfg.Minio.SecretKey = getEnv("MINIO_SECRET_KEY", cfg.Minio.SecretKey)
	cfg.Minio.Bucket = getEnv("MINIO_BUCKET", cfg.Minio.Bucket)
	cfg.Minio.Region = getEnv("MINIO_REGION", cfg.Minio.Region)
	cfg.Minio.UseSSL = getEnvBool("MINIO_USE_SSL", cfg.Minio.UseSSL)

	cfg.QueueBackend = strings.ToLower(getEnv("QUEUE_BACKEND", cfg.QueueBackend))
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.QueueKey = getEnv("REDIS_QUEUE_KEY", cfg.Redis.QueueKey)

	cfg.Workers = getEnvInt("WORKERS", cfg.Workers)
	cfg.WorkerPollTimeout = getEnvDuration("WORKER_POLL_TIMEOUT", cfg.WorkerPollTimeout)
	cfg.QueueSize = getEnvInt("QUEUE_SIZE", cfg.QueueSize)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the settings each backend needs.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.StorageBackend == StorageMinio && (c.Minio.Endpoint == "" || c.Minio.Bucket == "") {
		return errors.New("invalid config: MINIO_ENDPOINT and MINIO_BUCKET are required for minio storage")
	}
	if c.QueueBackend == QueueRedis && c.Redis.Addr == "" {
		return errors.New("invalid config: REDIS_ADDR is required for the redis queue")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
