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
	Password     PasswordConfig
	Checks       ChecksConfig
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
	Env          string `envconfig:"FLEETLEDGER_APP_ENV" required:"true"`
	Port         string `envconfig:"FLEETLEDGER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FLEETLEDGER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLEETLEDGER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"FLEETLEDGER_DB_DSN"`

	Host     string `envconfig:"FLEETLEDGER_DB_HOST"`
	Port     int    `envconfig:"FLEETLEDGER_DB_PORT" default:"5432"`
	User     string `envconfig:"FLEETLEDGER_DB_USER"`
	Password string `envconfig:"FLEETLEDGER_DB_PASSWORD"`
	Name     string `envconfig:"FLEETLEDGER_DB_NAME"`
	SSLMode  string `envconfig:"FLEETLEDGER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FLEETLEDGER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FLEETLEDGER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FLEETLEDGER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FLEETLEDGER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FLEETLEDGER_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"FLEETLEDGER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FLEETLEDGER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FLEETLEDGER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FLEETLEDGER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FLEETLEDGER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FLEETLEDGER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FLEETLEDGER_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FLEETLEDGER_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FLEETLEDGER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FLEETLEDGER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FLEETLEDGER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FLEETLEDGER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FLEETLEDGER_ARGON_KEY_LEN" default:"32"`
}

// ChecksConfig drives the background notification sweep.
type ChecksConfig struct {
	Interval             time.Duration `envconfig:"FLEETLEDGER_CHECKS_INTERVAL" default:"1h"`
	MaintenanceDays      int           `envconfig:"FLEETLEDGER_CHECKS_MAINTENANCE_DAYS" default:"30"`
	ProfitabilityDays    int           `envconfig:"FLEETLEDGER_CHECKS_PROFITABILITY_DAYS" default:"30"`
	MetricsListenAddress string        `envconfig:"FLEETLEDGER_CHECKS_METRICS_ADDR" default:":9190"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FLEETLEDGER_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range componentDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
