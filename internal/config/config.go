package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is built once in main and handed to every constructor; nothing
// else in the module reads the process environment.
type Config struct {
	Server    ServerConfig
	Commerce  CommerceConfig
	Cache     CacheConfig
	Telemetry TelemetryConfig
	Gateway   GatewayConfig
}

type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// CommerceConfig describes the external commerce platform.
type CommerceConfig struct {
	BaseURL     string
	AccessToken string
	APIKey      string
	APISecret   string
	ShopName    string
	APIVersion  string
	Timeout     time.Duration
	Fake        bool
}

// CacheConfig enables the optional upstream response cache when RedisAddr is set.
type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string
	LogLevel     string
}

// GatewayConfig points the lookup CLI at a running gateway instead of
// calling the commerce platform in-process.
type GatewayConfig struct {
	URL string
}

const (
	defaultAddr            = ":8000"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultCommerceTimeout = 30 * time.Second
	defaultAPIVersion      = "2024-10"
	defaultCacheTTL        = time.Minute
	defaultServiceName     = "order-lookup"
	defaultLogLevel        = "info"
)

// Load reads an optional .env file, an optional config.yaml and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("server.addr", defaultAddr)
	v.SetDefault("server.read_timeout", defaultReadTimeout)
	v.SetDefault("server.write_timeout", defaultWriteTimeout)
	v.SetDefault("server.idle_timeout", defaultIdleTimeout)
	v.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("shopify.api_version", defaultAPIVersion)
	v.SetDefault("commerce.timeout", defaultCommerceTimeout)
	v.SetDefault("commerce.fake", false)
	v.SetDefault("cache.ttl", defaultCacheTTL)
	v.SetDefault("otel.service_name", defaultServiceName)
	v.SetDefault("log.level", defaultLogLevel)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment")
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			IdleTimeout:     v.GetDuration("server.idle_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Commerce: CommerceConfig{
			BaseURL:     strings.TrimRight(v.GetString("shopify.api_url"), "/"),
			AccessToken: v.GetString("shopify.access_token"),
			APIKey:      v.GetString("shopify.api_key"),
			APISecret:   v.GetString("shopify.api_secret"),
			ShopName:    v.GetString("shopify.shop_name"),
			APIVersion:  v.GetString("shopify.api_version"),
			Timeout:     v.GetDuration("commerce.timeout"),
			Fake:        v.GetBool("commerce.fake"),
		},
		Cache: CacheConfig{
			RedisAddr: v.GetString("redis.addr"),
			TTL:       v.GetDuration("cache.ttl"),
		},
		Telemetry: TelemetryConfig{
			ServiceName:  v.GetString("otel.service_name"),
			OTLPEndpoint: v.GetString("otel.exporter_otlp_endpoint"),
			LogLevel:     v.GetString("log.level"),
		},
		Gateway: GatewayConfig{
			URL: strings.TrimRight(v.GetString("gateway.url"), "/"),
		},
	}

	if cfg.Commerce.BaseURL == "" && cfg.Commerce.ShopName != "" {
		cfg.Commerce.BaseURL = fmt.Sprintf("https://%s/admin/api/%s", cfg.Commerce.ShopName, cfg.Commerce.APIVersion)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	durations := map[string]time.Duration{
		"SERVER_READ_TIMEOUT":     c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":    c.Server.WriteTimeout,
		"SERVER_IDLE_TIMEOUT":     c.Server.IdleTimeout,
		"SERVER_SHUTDOWN_TIMEOUT": c.Server.ShutdownTimeout,
		"COMMERCE_TIMEOUT":        c.Commerce.Timeout,
	}
	for key, d := range durations {
		if d <= 0 {
			return fmt.Errorf("config: %s must be a positive duration, got %s", key, d)
		}
	}
	return nil
}

// RequireCommerce reports whether the settings needed to reach the real
// platform are present.
func (c CommerceConfig) RequireCommerce() error {
	if c.Fake {
		return nil
	}
	if c.BaseURL == "" {
		return errors.New("config: SHOPIFY_API_URL or SHOPIFY_SHOP_NAME is required")
	}
	if c.AccessToken == "" {
		return errors.New("config: SHOPIFY_ACCESS_TOKEN is required")
	}
	return nil
}
