package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is passed to envconfig; explicit envconfig tags carry the
// full variable names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv             = "LEAFMARKET_APP_ENV"
	EnvPort               = "LEAFMARKET_APP_PORT"
	EnvDBDSN              = "LEAFMARKET_DB_DSN"
	EnvDBHost             = "LEAFMARKET_DB_HOST"
	EnvDBUser             = "LEAFMARKET_DB_USER"
	EnvDBName             = "LEAFMARKET_DB_NAME"
	EnvRedisURL           = "LEAFMARKET_REDIS_URL"
	EnvJWTSecret          = "LEAFMARKET_JWT_SECRET"
	EnvJWTIssuer          = "LEAFMARKET_JWT_ISSUER"
	EnvJWTExpMins         = "LEAFMARKET_JWT_EXPIRATION_MINUTES"
	EnvMarketplaceBaseURL = "LEAFMARKET_MARKETPLACE_BASE_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Marketplace  MarketplaceConfig
	Promotions   PromotionsConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LEAFMARKET_APP_ENV" required:"true"`
	Port         string `envconfig:"LEAFMARKET_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LEAFMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LEAFMARKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LEAFMARKET_DB_DSN"`
	Driver string `envconfig:"LEAFMARKET_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LEAFMARKET_DB_HOST"`
	LegacyPort     int    `envconfig:"LEAFMARKET_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LEAFMARKET_DB_USER"`
	LegacyPassword string `envconfig:"LEAFMARKET_DB_PASSWORD"`
	LegacyName     string `envconfig:"LEAFMARKET_DB_NAME"`
	LegacySSLMode  string `envconfig:"LEAFMARKET_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LEAFMARKET_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LEAFMARKET_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LEAFMARKET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LEAFMARKET_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LEAFMARKET_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LEAFMARKET_REDIS_ADDR"`
	Password     string        `envconfig:"LEAFMARKET_REDIS_PASSWORD"`
	DB           int           `envconfig:"LEAFMARKET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LEAFMARKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LEAFMARKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LEAFMARKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LEAFMARKET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LEAFMARKET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LEAFMARKET_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LEAFMARKET_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LEAFMARKET_JWT_EXPIRATION_MINUTES" required:"true"`
}

// MarketplaceConfig points at the legacy marketplace backend that owns
// the canonical promotion records.
type MarketplaceConfig struct {
	BaseURL string        `envconfig:"LEAFMARKET_MARKETPLACE_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"LEAFMARKET_MARKETPLACE_API_KEY"`
	Timeout time.Duration `envconfig:"LEAFMARKET_MARKETPLACE_TIMEOUT" default:"10s"`
}

type PromotionsConfig struct {
	CacheTTL          time.Duration `envconfig:"LEAFMARKET_PROMOTIONS_CACHE_TTL" default:"30s"`
	ValidateWindow    time.Duration `envconfig:"LEAFMARKET_PROMOTIONS_VALIDATE_WINDOW" default:"1m"`
	ValidateRateLimit int64         `envconfig:"LEAFMARKET_PROMOTIONS_VALIDATE_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LEAFMARKET_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LEAFMARKET_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
