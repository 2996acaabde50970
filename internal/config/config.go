package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment       DeploymentConfig       `mapstructure:"deployment" validate:"required"`
	Server           ServerConfig           `mapstructure:"server" validate:"required"`
	Logging          LoggingConfig          `mapstructure:"logging" validate:"required"`
	Postgres         PostgresConfig         `mapstructure:"postgres"`
	Cache            CacheConfig            `mapstructure:"cache"`
	Kafka            KafkaConfig            `mapstructure:"kafka"`
	EventBus         EventBusConfig         `mapstructure:"event_bus"`
	Sentry           SentryConfig           `mapstructure:"sentry"`
	Pyroscope        PyroscopeConfig        `mapstructure:"pyroscope"`
	DiscountFunction DiscountFunctionConfig `mapstructure:"discount_function"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

type PostgresConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	// ConnectRetries is how many times a failed connect is retried at startup
	ConnectRetries int `mapstructure:"connect_retries" validate:"gte=0"`
}

type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Expiration      time.Duration `mapstructure:"expiration"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

type PyroscopeConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	ServerAddress   string   `mapstructure:"server_address"`
	ApplicationName string   `mapstructure:"application_name"`
	BasicAuthUser   string   `mapstructure:"basic_auth_user"`
	BasicAuthPass   string   `mapstructure:"basic_auth_pass"`
	SampleRate      uint32   `mapstructure:"sample_rate"`
	DisableGCRuns   bool     `mapstructure:"disable_gc_runs"`
	ProfileTypes    []string `mapstructure:"profile_types"`
}

// DiscountFunctionConfig holds the knobs of the checkout discount function
type DiscountFunctionConfig struct {
	TargetProduct TargetProductConfig `mapstructure:"target_product"`
}

// TargetProductConfig discounts every variant of the listed products by a
// flat percentage unless the variant has its own configured percentage.
// An empty product list disables the rule.
type TargetProductConfig struct {
	ProductIDs []string `mapstructure:"product_ids"`
	Percentage float64  `mapstructure:"percentage" validate:"gte=0"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional and only meant for local development
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/discount-function")

	v.SetEnvPrefix("DISCOUNT_FUNCTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if err := c.Deployment.Mode.Validate(); err != nil {
		return err
	}
	if c.EventBus.PubSub != "" {
		return c.EventBus.PubSub.Validate()
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Cache: CacheConfig{
			Enabled:         true,
			Expiration:      30 * time.Minute,
			CleanupInterval: time.Hour,
		},
		EventBus: EventBusConfig{
			PubSub:          types.MemoryPubSub,
			Topic:           types.TopicVariantDiscountsUpdated,
			MaxRetries:      3,
			InitialInterval: time.Second,
			MaxInterval:     10 * time.Second,
			Multiplier:      2,
			MaxElapsedTime:  time.Minute,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
