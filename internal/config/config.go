package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/acolin/asso-ledger/pkg/logger"
)

var config *Config

// Config holds every env-driven setting of the service. Only this struct may
// be used to read configuration; no direct env access elsewhere.
type Config struct {
	AppEnv              string `env:"APP_ENV" default:"dev"`
	AppName             string `env:"APP_NAME" default:"asso_ledger"`
	AppDebug            bool   `env:"APP_DEBUG" default:"1"`
	AppDebugMetricsAddr string `env:"APP_DEBUG_METRIC_ADDR"`
	AppDebugMetricsURI  string `env:"APP_DEBUG_METRIC_URI"`

	HttpListenAddr string `env:"HTTP_LISTEN_ADDR" default:":8080"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX" default:"asso_ledger"`

	PromNamespace string `env:"PROM_NAMESPACE" default:"asso_ledger"`

	JWTSecret   string        `env:"JWT_SECRET"`
	SessionTTL  time.Duration `env:"SESSION_TTL" default:"24h"`
	InviteTTL   time.Duration `env:"INVITE_TTL" default:"168h"`
	BcryptCost  int           `env:"BCRYPT_COST" default:"10"`

	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitMaxWrite int           `env:"RATE_LIMIT_MAX_WRITE" default:"30"`

	BlobDir       string        `env:"BLOB_DIR" default:"./data/invoices"`
	BlobSecret    string        `env:"BLOB_SECRET"`
	BlobURLTTL    time.Duration `env:"BLOB_URL_TTL" default:"15m"`
	BlobBaseURL   string        `env:"BLOB_BASE_URL" default:"http://localhost:8080"`
	MaxInvoiceMiB int           `env:"MAX_INVOICE_MIB" default:"10"`

	MigrationsDir string `env:"MIGRATIONS_DIR" default:"./migrations"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.New("failed to map env variables to Configuration object " + " error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
