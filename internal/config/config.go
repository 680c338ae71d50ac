package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Log       LogConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	AppName     string `env:"APP_NAME,required,notEmpty"`
	Environment string `env:"APP_ENV,required,notEmpty"`
	HTTPPort    string `env:"HTTP_PORT,required,notEmpty"`
}

type DatabaseConfig struct {
	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBName     string `env:"DB_NAME"     envDefault:"agrimatch"`
	DBUser     string `env:"DB_USER"     envDefault:"agrimatch"`
	DBPassword string `env:"DB_PASSWORD"`
	DBSSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`

	ConnectTimeout        time.Duration `env:"DB_CONNECT_TIMEOUT"         envDefault:"5s"`
	PoolMaxConns          int32         `env:"DB_POOL_MAX_CONNS"          envDefault:"10"`
	PoolMinConns          int32         `env:"DB_POOL_MIN_CONNS"          envDefault:"0"`
	PoolMaxConnLifetime   time.Duration `env:"DB_POOL_MAX_CONN_LIFETIME"  envDefault:"1h"`
	PoolMaxConnIdleTime   time.Duration `env:"DB_POOL_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	PoolHealthCheckPeriod time.Duration `env:"DB_POOL_HEALTH_CHECK"       envDefault:"1m"`

	MigrationsDir string `env:"DB_MIGRATIONS_DIR" envDefault:"migrations"`
}

type RedisConfig struct {
	Host     string        `env:"REDIS_HOST"     envDefault:"localhost"`
	Port     string        `env:"REDIS_PORT"     envDefault:"6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB"       envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL"      envDefault:"600s"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type JWTConfig struct {
	AccessSecret    string        `env:"JWT_ACCESS_SECRET,required,notEmpty"`
	AccessExpiresIn time.Duration `env:"JWT_ACCESS_EXPIRES_IN" envDefault:"15m"`
}

type LogConfig struct {
	JSON  bool `env:"LOG_JSON"  envDefault:"false"`
	Debug bool `env:"LOG_DEBUG" envDefault:"false"`
}

type MatchingConfig struct {
	// RequireVerifiedToApply is the platform policy gating applications on verification.
	RequireVerifiedToApply bool          `env:"MATCH_REQUIRE_VERIFIED_TO_APPLY" envDefault:"false"`
	RankingCacheTTL        time.Duration `env:"MATCH_RANKING_CACHE_TTL"         envDefault:"60s"`
	StoreTimeout           time.Duration `env:"MATCH_STORE_TIMEOUT"             envDefault:"5s"`
}

type RateLimitConfig struct {
	ApplyLimit  int           `env:"APPLY_RATE_LIMIT"  envDefault:"10"`
	ApplyWindow time.Duration `env:"APPLY_RATE_WINDOW" envDefault:"1m"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.Matching.StoreTimeout <= 0 {
		cfg.Matching.StoreTimeout = 5 * time.Second
	}
	if cfg.Matching.RankingCacheTTL < 0 {
		cfg.Matching.RankingCacheTTL = 0
	}
	return cfg, nil
}

// LoadDotEnv loads .env files for local development. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return fmt.Errorf("load .env file: %w", err)
		}
	}
	return nil
}
