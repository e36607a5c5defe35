package myconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment      string        `validate:"oneof=development production test"`
	Port             string        `validate:"required,numeric"`
	BackendBaseURL   string        `validate:"required,url"`
	HTTPTimeout      time.Duration `validate:"gt=0"`
	ScanDebounce     time.Duration `validate:"gt=0"`
	PollInterval     time.Duration `validate:"gt=0"`
	CartStaleTime    time.Duration `validate:"gte=0"`
	CameraEnabled    bool
	CameraDevice     string
	StoreBackend     string        `validate:"oneof=memory redis datastore"`
	RedisURL         string        `validate:"required_if=StoreBackend redis"`
	GoogleProject    string        `validate:"required_if=StoreBackend datastore,required_if=BrokerBackend gcloud,required_if=OutboxTrigger cloudtasks"`
	BrokerBackend    string        `validate:"oneof=none gcloud amqp"`
	AMQPURL          string        `validate:"required_if=BrokerBackend amqp"`
	OutboxTrigger    string        `validate:"oneof=ticker cloudtasks"`
	OutboxInterval   time.Duration `validate:"gt=0"`
	TasksLocation    string        `validate:"required_if=OutboxTrigger cloudtasks"`
	TasksQueue       string        `validate:"required"`
	PublicBaseURL    string        `validate:"required_if=OutboxTrigger cloudtasks,omitempty,url"`
	PaymentGateway   string        `validate:"oneof=backend mollie stripe adyen"`
	MollieAPIKey     string        `validate:"required_if=PaymentGateway mollie"`
	StripeAPIKey     string        `validate:"required_if=PaymentGateway stripe"`
	AdyenAPIKey      string        `validate:"required_if=PaymentGateway adyen"`
	AdyenMerchant    string        `validate:"required_if=PaymentGateway adyen"`
	AdyenEnvironment string        `validate:"oneof=test live"`
	AdyenCountryCode string        `validate:"len=2"`
	AdyenLocale      string        `validate:"required"`
	PaymentReturnURL string        `validate:"omitempty,url"`
	Currency         string        `validate:"required,len=3"`
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load(envFiles ...string) (Config, error) {
	err := godotenv.Load(envFiles...)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("error loading env file: %s", err)
	}

	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	r := reader{getenv: getenv}

	cfg := Config{
		Environment:      r.str("KIOSK_ENV", "development"),
		Port:             r.str("PORT", "8080"),
		BackendBaseURL:   r.str("BACKEND_BASE_URL", "http://localhost:3000/api"),
		HTTPTimeout:      r.duration("HTTP_TIMEOUT", 5*time.Second),
		ScanDebounce:     r.duration("SCAN_DEBOUNCE", 1500*time.Millisecond),
		PollInterval:     r.duration("POLL_INTERVAL", 5*time.Second),
		CartStaleTime:    r.duration("CART_STALE_TIME", 30*time.Second),
		CameraEnabled:    r.boolean("CAMERA_ENABLED", true),
		CameraDevice:     r.str("CAMERA_DEVICE", ""),
		StoreBackend:     r.str("STORE_BACKEND", "memory"),
		RedisURL:         r.str("REDIS_URL", ""),
		GoogleProject:    r.str("GOOGLE_CLOUD_PROJECT", ""),
		BrokerBackend:    r.str("BROKER_BACKEND", "none"),
		AMQPURL:          r.str("AMQP_URL", ""),
		OutboxTrigger:    r.str("OUTBOX_TRIGGER", "ticker"),
		OutboxInterval:   r.duration("OUTBOX_INTERVAL", 10*time.Second),
		TasksLocation:    r.str("CLOUD_TASKS_LOCATION", ""),
		TasksQueue:       r.str("CLOUD_TASKS_QUEUE", "default"),
		PublicBaseURL:    r.str("PUBLIC_BASE_URL", ""),
		PaymentGateway:   r.str("PAYMENT_GATEWAY", "backend"),
		MollieAPIKey:     r.str("MOLLIE_API_KEY", ""),
		StripeAPIKey:     r.str("STRIPE_API_KEY", ""),
		AdyenAPIKey:      r.str("ADYEN_API_KEY", ""),
		AdyenMerchant:    r.str("ADYEN_MERCHANT_ACCOUNT", ""),
		AdyenEnvironment: r.str("ADYEN_ENVIRONMENT", "test"),
		AdyenCountryCode: r.str("ADYEN_COUNTRY_CODE", "ID"),
		AdyenLocale:      r.str("ADYEN_SHOPPER_LOCALE", "id-ID"),
		PaymentReturnURL: r.str("PAYMENT_RETURN_URL", ""),
		Currency:         r.str("CURRENCY", "IDR"),
	}
	if r.err != nil {
		return Config{}, r.err
	}

	err := validator.New().Struct(cfg)
	if err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %s", err)
	}

	return cfg, nil
}

type reader struct {
	getenv func(string) string
	err    error
}

func (r *reader) str(key string, defaultValue string) string {
	value := r.getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (r *reader) duration(key string, defaultValue time.Duration) time.Duration {
	value := r.getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("invalid duration for %s: %s", key, err)
	}
	return d
}

func (r *reader) boolean(key string, defaultValue bool) bool {
	value := r.getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("invalid boolean for %s: %s", key, err)
	}
	return b
}
