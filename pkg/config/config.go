package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "CHEX_DB_DSN"
	EnvDBHost = "CHEX_DB_HOST"
	EnvDBUser = "CHEX_DB_USER"
	EnvDBName = "CHEX_DB_NAME"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// sqliteDefaultDSN backs dev runs when the sqlite flag is set without an
	// explicit DSN.
	sqliteDefaultDSN = "file:chexseeds.db?_pragma=foreign_keys(1)"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Shipping     ShippingConfig
	Email        EmailConfig
	WhatsApp     WhatsAppConfig
	Contact      ContactConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	// The sqlite flag overrides the driver so a single env var flips dev
	// runs off postgres.
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CHEX_APP_ENV" required:"true"`
	Port         string `envconfig:"CHEX_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CHEX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CHEX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CHEX_DB_DSN"`
	Driver string `envconfig:"CHEX_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CHEX_DB_HOST"`
	LegacyPort     int    `envconfig:"CHEX_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CHEX_DB_USER"`
	LegacyPassword string `envconfig:"CHEX_DB_PASSWORD"`
	LegacyName     string `envconfig:"CHEX_DB_NAME"`
	LegacySSLMode  string `envconfig:"CHEX_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CHEX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CHEX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CHEX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CHEX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CHEX_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CHEX_REDIS_ADDR"`
	Password     string        `envconfig:"CHEX_REDIS_PASSWORD"`
	DB           int           `envconfig:"CHEX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CHEX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CHEX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CHEX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHEX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHEX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	SessionTTL time.Duration `envconfig:"CHEX_CART_SESSION_TTL" default:"720h"`
}

type ShippingConfig struct {
	FreeThreshold int64 `envconfig:"CHEX_SHIPPING_FREE_THRESHOLD" default:"100000"`
	FlatRate      int64 `envconfig:"CHEX_SHIPPING_FLAT_RATE" default:"8000"`
}

type EmailConfig struct {
	ResendAPIKey string `envconfig:"CHEX_RESEND_API_KEY"`
	FromAddress  string `envconfig:"CHEX_EMAIL_FROM" default:"contacto@chexseeds.com"`
	CompanyInbox string `envconfig:"CHEX_EMAIL_COMPANY_INBOX"`
}

type WhatsAppConfig struct {
	AccountSID   string `envconfig:"CHEX_TWILIO_ACCOUNT_SID"`
	AuthToken    string `envconfig:"CHEX_TWILIO_AUTH_TOKEN"`
	SenderNumber string `envconfig:"CHEX_TWILIO_WHATSAPP_NUMBER"`
	ClientNumber string `envconfig:"CHEX_CLIENT_WHATSAPP_NUMBER"`
}

// Complete reports whether every credential the WhatsApp channel needs is set.
func (w WhatsAppConfig) Complete() bool {
	return strings.TrimSpace(w.AccountSID) != "" &&
		strings.TrimSpace(w.AuthToken) != "" &&
		strings.TrimSpace(w.SenderNumber) != "" &&
		strings.TrimSpace(w.ClientNumber) != ""
}

type ContactConfig struct {
	RecipientEmail string `envconfig:"CHEX_CONTACT_RECIPIENT"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CHEX_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CHEX_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Driver == DriverSQLite {
		db.DSN = sqliteDefaultDSN
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
