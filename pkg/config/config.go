package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "PROCURESTOCK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "PROCURESTOCK_APP_ENV"
	EnvPort       = "PROCURESTOCK_APP_PORT"
	EnvDBDSN      = "PROCURESTOCK_DB_DSN"
	EnvDBHost     = "PROCURESTOCK_DB_HOST"
	EnvDBUser     = "PROCURESTOCK_DB_USER"
	EnvDBName     = "PROCURESTOCK_DB_NAME"
	EnvRedisURL   = "PROCURESTOCK_REDIS_URL"
	EnvJWTSecret  = "PROCURESTOCK_JWT_SECRET"
	EnvJWTIssuer  = "PROCURESTOCK_JWT_ISSUER"
	EnvJWTExpMins = "PROCURESTOCK_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Receiving    ReceivingConfig
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
	Env          string `envconfig:"PROCURESTOCK_APP_ENV" required:"true"`
	Port         string `envconfig:"PROCURESTOCK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PROCURESTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PROCURESTOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PROCURESTOCK_DB_DSN"`
	Driver string `envconfig:"PROCURESTOCK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PROCURESTOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"PROCURESTOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PROCURESTOCK_DB_USER"`
	LegacyPassword string `envconfig:"PROCURESTOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"PROCURESTOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"PROCURESTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PROCURESTOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PROCURESTOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PROCURESTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROCURESTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// LockTimeout bounds how long a receiving transaction may wait on
	// contended purchase order or inventory rows before failing retryably.
	LockTimeout time.Duration `envconfig:"PROCURESTOCK_DB_LOCK_TIMEOUT" default:"5s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PROCURESTOCK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PROCURESTOCK_REDIS_ADDR"`
	Password     string        `envconfig:"PROCURESTOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROCURESTOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROCURESTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROCURESTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROCURESTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROCURESTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PROCURESTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PROCURESTOCK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PROCURESTOCK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PROCURESTOCK_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PROCURESTOCK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PROCURESTOCK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PROCURESTOCK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PROCURESTOCK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PROCURESTOCK_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PROCURESTOCK_AUTO_MIGRATE" default:"false"`
}

type ReceivingConfig struct {
	// IdempotencyTTL is how long a receipt POST idempotency key is remembered.
	IdempotencyTTL time.Duration `envconfig:"PROCURESTOCK_RECEIVING_IDEMPOTENCY_TTL" default:"24h"`
	ReceiptPrefix  string        `envconfig:"PROCURESTOCK_RECEIPT_PREFIX" default:"GR"`
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
