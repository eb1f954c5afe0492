package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	AI           AIConfig
	Uploads      UploadsConfig
	Cart         CartConfig
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
	Env          string `envconfig:"FARMMARKET_APP_ENV" required:"true"`
	Port         string `envconfig:"FARMMARKET_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"FARMMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FARMMARKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FARMMARKET_DB_DSN"`
	Driver string `envconfig:"FARMMARKET_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FARMMARKET_DB_HOST"`
	LegacyPort     int    `envconfig:"FARMMARKET_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FARMMARKET_DB_USER"`
	LegacyPassword string `envconfig:"FARMMARKET_DB_PASSWORD"`
	LegacyName     string `envconfig:"FARMMARKET_DB_NAME"`
	LegacySSLMode  string `envconfig:"FARMMARKET_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FARMMARKET_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FARMMARKET_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FARMMARKET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FARMMARKET_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FARMMARKET_REDIS_URL"`
	Address      string        `envconfig:"FARMMARKET_REDIS_ADDR"`
	Password     string        `envconfig:"FARMMARKET_REDIS_PASSWORD"`
	DB           int           `envconfig:"FARMMARKET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FARMMARKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FARMMARKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FARMMARKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FARMMARKET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FARMMARKET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether a Redis endpoint was supplied at all. The cart
// store falls back to the file-backed implementation when it was not.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"FARMMARKET_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FARMMARKET_JWT_ISSUER" default:"farmmarket"`
	ExpirationMinutes int    `envconfig:"FARMMARKET_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// Expiration returns the session token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type AIConfig struct {
	BaseURL        string        `envconfig:"FARMMARKET_AI_BASE_URL" default:"http://127.0.0.1:7000"`
	RequestTimeout time.Duration `envconfig:"FARMMARKET_AI_REQUEST_TIMEOUT" default:"60s"`
	HealthTimeout  time.Duration `envconfig:"FARMMARKET_AI_HEALTH_TIMEOUT" default:"3s"`
}

type UploadsConfig struct {
	Dir         string `envconfig:"FARMMARKET_UPLOADS_DIR" default:"uploads"`
	MaxUploadMB int    `envconfig:"FARMMARKET_MAX_UPLOAD_MB" default:"5"`
}

type CartConfig struct {
	Backend string `envconfig:"FARMMARKET_CART_BACKEND" default:"redis"`
	FileDir string `envconfig:"FARMMARKET_CART_FILE_DIR" default:"data/cart"`
}

type FeatureFlagsConfig struct {
	UseSQLite      bool `envconfig:"FARMMARKET_USE_SQLITE" default:"false"`
	AutoMigrate    bool `envconfig:"FARMMARKET_AUTO_MIGRATE" default:"false"`
	StrictCheckout bool `envconfig:"FARMMARKET_FEATURE_STRICT_CHECKOUT" default:"false"`
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
