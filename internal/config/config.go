package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Models    ModelsConfig
	Ingest    IngestConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	Version     string
	CORSOrigins []string
	SeedOnStart bool
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// AdminConfig holds the bcrypt hash of the admin API key, never the key itself.
type AdminConfig struct {
	APIKeyHash string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type ModelsConfig struct {
	Dir string
}

type IngestConfig struct {
	Sources     []string
	MaxJobs     int
	Workers     int
	RemoteOKURL string
	Timeout     time.Duration
}

type SchedulerConfig struct {
	Enabled         bool
	RefreshSchedule string
	RetrainSchedule string
	RetrainLimit    int
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}
	optInt := func(key string) int {
		raw := opt(key)
		if raw == "" {
			return 0
		}
		n, err := parseInt(raw)
		if err != nil {
			invalid = append(invalid, key)
		}
		return n
	}
	optDuration := func(key string) time.Duration {
		raw := opt(key)
		if raw == "" {
			return 0
		}
		d, err := parseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		Version:     opt("APP_VERSION"),
		CORSOrigins: splitList(opt("CORS_ORIGINS")),
		SeedOnStart: v.GetBool("SEED_ON_START"),
	}

	cfg.Log = LogConfig{
		Level:  strings.ToLower(opt("LOG_LEVEL")),
		Format: strings.ToLower(opt("LOG_FORMAT")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS")),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS")),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB"),
		TTL:      optDuration("REDIS_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     opt("JWT_ACCESS_SECRET"),
		RefreshSecret:    opt("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN"),
	}

	cfg.Admin = AdminConfig{
		APIKeyHash: opt("ADMIN_API_KEY_HASH"),
	}

	cfg.RateLimit = RateLimitConfig{
		Requests: optInt("RATE_LIMIT_REQUESTS"),
		Window:   optDuration("RATE_LIMIT_WINDOW"),
	}

	cfg.Models = ModelsConfig{
		Dir: opt("MODELS_DIR"),
	}

	cfg.Ingest = IngestConfig{
		Sources:     splitList(strings.ToLower(opt("INGEST_SOURCES"))),
		MaxJobs:     optInt("INGEST_MAX_JOBS"),
		Workers:     optInt("INGEST_WORKERS"),
		RemoteOKURL: opt("REMOTEOK_URL"),
		Timeout:     optDuration("INGEST_TIMEOUT"),
	}

	cfg.Scheduler = SchedulerConfig{
		Enabled:         v.GetBool("SCHEDULER_ENABLED"),
		RefreshSchedule: opt("REFRESH_SCHEDULE"),
		RetrainSchedule: opt("RETRAIN_SCHEDULE"),
		RetrainLimit:    optInt("RETRAIN_LIMIT"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("SEED_ON_START", "true")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_TTL", "600s")

	v.SetDefault("JWT_ACCESS_EXPIRES_IN", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", "168h")

	v.SetDefault("RATE_LIMIT_REQUESTS", "100")
	v.SetDefault("RATE_LIMIT_WINDOW", "60s")

	v.SetDefault("MODELS_DIR", "models/saved")

	v.SetDefault("INGEST_SOURCES", "simulated")
	v.SetDefault("INGEST_MAX_JOBS", "1000")
	v.SetDefault("INGEST_WORKERS", "4")
	v.SetDefault("REMOTEOK_URL", "https://remoteok.com/api")
	v.SetDefault("INGEST_TIMEOUT", "30s")

	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("REFRESH_SCHEDULE", "@every 6h")
	v.SetDefault("RETRAIN_SCHEDULE", "@every 24h")
	v.SetDefault("RETRAIN_LIMIT", "1000")
}
