package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "medlocate"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Search        SearchConfig
	GIS           GISConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"MEDLOCATE_APP_ENV" required:"true"`
	Port         string `envconfig:"MEDLOCATE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MEDLOCATE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEDLOCATE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"MEDLOCATE_DB_DSN"`

	Host     string `envconfig:"MEDLOCATE_DB_HOST"`
	Port     int    `envconfig:"MEDLOCATE_DB_PORT" default:"5432"`
	User     string `envconfig:"MEDLOCATE_DB_USER"`
	Password string `envconfig:"MEDLOCATE_DB_PASSWORD"`
	Name     string `envconfig:"MEDLOCATE_DB_NAME"`
	SSLMode  string `envconfig:"MEDLOCATE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MEDLOCATE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MEDLOCATE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MEDLOCATE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MEDLOCATE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database config requires either MEDLOCATE_DB_DSN or host/user/name parts")
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MEDLOCATE_REDIS_URL" required:"true"`
	Password     string        `envconfig:"MEDLOCATE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MEDLOCATE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MEDLOCATE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEDLOCATE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEDLOCATE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEDLOCATE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MEDLOCATE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MEDLOCATE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MEDLOCATE_JWT_ISSUER" default:"medlocate"`
	ExpirationMinutes int    `envconfig:"MEDLOCATE_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// Expiration returns the access token TTL.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MEDLOCATE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MEDLOCATE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MEDLOCATE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MEDLOCATE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MEDLOCATE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MEDLOCATE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MEDLOCATE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MEDLOCATE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MEDLOCATE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MEDLOCATE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MEDLOCATE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type SearchConfig struct {
	MedicineCandidateCap int `envconfig:"MEDLOCATE_SEARCH_MEDICINE_CANDIDATE_CAP" default:"200"`
}

type GISConfig struct {
	BaseURL string        `envconfig:"MEDLOCATE_GIS_BASE_URL" default:"http://localhost:5001"`
	Timeout time.Duration `envconfig:"MEDLOCATE_GIS_TIMEOUT" default:"15s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MEDLOCATE_AUTO_MIGRATE" default:"false"`
}
