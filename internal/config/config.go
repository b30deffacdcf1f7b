package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"bazar"`
	Port        int    `envconfig:"PORT" default:"5000"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI    string `envconfig:"MONGODB_URI"`
	DBUser      string `envconfig:"DB_USER"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBHost      string `envconfig:"DB_HOST" default:"cluster0.rwmjrnt.mongodb.net"`
	DBName      string `envconfig:"DB_NAME" default:"bazarDotComDB"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	AccessTokenSecret string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	TokenTTL          time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`
	PaymentCurrency string `envconfig:"PAYMENT_CURRENCY" default:"usd"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`

	ESURL      string `envconfig:"ES_URL"`
	ESUser     string `envconfig:"ES_USER"`
	ESPassword string `envconfig:"ES_PASSWORD"`
	ESIndex    string `envconfig:"ES_INDEX" default:"products"`
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env not loaded (%v), using process environment", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" && (c.DBUser == "" || c.DBPassword == "") {
			errs = append(errs, errors.New("mongo store needs MONGODB_URI or DB_USER and DB_PASSWORD"))
		}
	case StorePostgres, StoreSQLite:
		if c.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("%s store needs DATABASE_URL", c.StoreDriver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	if c.AccessTokenSecret == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET is empty"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}

	return errors.Join(errs...)
}

// MongoConnString returns MONGODB_URI or an Atlas SRV URI built from the
// DB_* credentials.
func (c Config) MongoConnString() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
