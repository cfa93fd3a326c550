package api

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	orderworkflows "github.com/Apurer/pizzeria-console/internal/durable/temporal/workflows/orders"
)

// Backend selectors.
const (
	StoreMemory    = "memory"
	StoreFirestore = "firestore"
	StoreMongo     = "mongo"
	StoreFirebase  = "firebase"
	StoreDocument  = "document"
	StorePostgres  = "postgres"
	SinkRabbitMQ   = "rabbitmq"
)

// Config carries environment-driven settings for the console processes.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"local"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	Timezone    string `env:"TIMEZONE" envDefault:"Europe/Moscow"`
	ShopID      string `env:"SHOP_ID" envDefault:"pizzeria-161"`

	DocumentStore           string `env:"DOCUMENT_STORE" envDefault:"memory"`
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseStorageBucket   string `env:"FIREBASE_STORAGE_BUCKET"`
	MongoURI                string `env:"MONGO_URI"`
	MongoDatabase           string `env:"MONGO_DATABASE" envDefault:"pizzeria"`

	PhotoStore string `env:"PHOTO_STORE" envDefault:"memory"`
	UploadDir  string `env:"UPLOAD_DIR" envDefault:"uploads"`

	OrderStore  string `env:"ORDER_STORE" envDefault:"document"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	ReasonCachePath string `env:"REASON_CACHE_PATH" envDefault:"reasons.db"`

	NotificationSink string `env:"NOTIFICATION_SINK" envDefault:"document"`
	AMQPURL          string `env:"AMQP_URL"`
	AMQPExchange     string `env:"AMQP_EXCHANGE" envDefault:"pizzeria.mail"`
	AMQPRoutingKey   string `env:"AMQP_ROUTING_KEY" envDefault:"mail.outbound"`

	IdentityProvider string `env:"IDENTITY_PROVIDER" envDefault:"memory"`

	TemporalAddress   string `env:"TEMPORAL_ADDRESS"`
	TemporalNamespace string `env:"TEMPORAL_NAMESPACE"`
	TemporalDisabled  bool   `env:"TEMPORAL_DISABLED"`
	TemporalTaskQueue string `env:"TEMPORAL_TASK_QUEUE"`

	PhotoResizeDelay time.Duration `env:"PHOTO_RESIZE_DELAY" envDefault:"10s"`
	PhotoDeleteDelay time.Duration `env:"PHOTO_DELETE_DELAY" envDefault:"1s"`
	OrderWriteDelay  time.Duration `env:"ORDER_WRITE_DELAY" envDefault:"1500ms"`

	MailLogoURL string `env:"MAIL_LOGO_URL"`
	MailPhone   string `env:"MAIL_PHONE"`
	MailHours   string `env:"MAIL_HOURS"`

	// Location is resolved from Timezone.
	Location *time.Location `env:"-"`
}

// LoadConfig reads an optional .env file and the environment, applies
// defaults, and validates basic constraints.
func LoadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TemporalAddress == "" {
		cfg.TemporalAddress = client.DefaultHostPort
	}
	if cfg.TemporalNamespace == "" {
		cfg.TemporalNamespace = client.DefaultNamespace
	}
	if cfg.TemporalTaskQueue == "" {
		cfg.TemporalTaskQueue = orderworkflows.OrderTransitionTaskQueue
	}
	loc, err := time.LoadLocation(strings.TrimSpace(cfg.Timezone))
	if err != nil {
		return Config{}, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc
	return cfg, cfg.Validate()
}

// Validate checks selectors and the settings each selected backend needs.
func (c Config) Validate() error {
	var errs []error
	check := func(key, value string, allowed ...string) {
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, "|"), value))
	}
	check("DOCUMENT_STORE", c.DocumentStore, StoreMemory, StoreFirestore, StoreMongo)
	check("PHOTO_STORE", c.PhotoStore, StoreMemory, StoreFirebase)
	check("ORDER_STORE", c.OrderStore, StoreDocument, StorePostgres)
	check("NOTIFICATION_SINK", c.NotificationSink, StoreDocument, SinkRabbitMQ)
	check("IDENTITY_PROVIDER", c.IdentityProvider, StoreMemory, StoreFirebase)

	if c.DocumentStore == StoreMongo && strings.TrimSpace(c.MongoURI) == "" {
		errs = append(errs, errors.New("MONGO_URI is required for DOCUMENT_STORE=mongo"))
	}
	if c.OrderStore == StorePostgres && strings.TrimSpace(c.PostgresDSN) == "" {
		errs = append(errs, errors.New("POSTGRES_DSN is required for ORDER_STORE=postgres"))
	}
	if c.NotificationSink == SinkRabbitMQ && strings.TrimSpace(c.AMQPURL) == "" {
		errs = append(errs, errors.New("AMQP_URL is required for NOTIFICATION_SINK=rabbitmq"))
	}
	if c.PhotoStore == StoreFirebase && strings.TrimSpace(c.FirebaseStorageBucket) == "" {
		errs = append(errs, errors.New("FIREBASE_STORAGE_BUCKET is required for PHOTO_STORE=firebase"))
	}
	for key, d := range map[string]time.Duration{
		"PHOTO_RESIZE_DELAY": c.PhotoResizeDelay,
		"PHOTO_DELETE_DELAY": c.PhotoDeleteDelay,
		"ORDER_WRITE_DELAY":  c.OrderWriteDelay,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", key))
		}
	}
	return errors.Join(errs...)
}

// UsesFirebase reports whether any backend needs the Firebase app.
func (c Config) UsesFirebase() bool {
	return c.DocumentStore == StoreFirestore || c.PhotoStore == StoreFirebase || c.IdentityProvider == StoreFirebase
}
