package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Custody  CustodyConfig  `mapstructure:"custody"`
	Peers    PeersConfig    `mapstructure:"peers"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Events   EventsConfig   `mapstructure:"events"`
	Storage  StorageConfig  `mapstructure:"storage"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

type EngineConfig struct {
	Admin            string        `mapstructure:"admin"`              // operator wallet address
	Instance         string        `mapstructure:"instance"`           // address concealed inputs are bound to
	AutoPickInterval time.Duration `mapstructure:"auto_pick_interval"` // 0 disables the settler
	ChallengeTTL     time.Duration `mapstructure:"challenge_ttl"`
}

// AdminAddress returns the parsed operator address.
func (e EngineConfig) AdminAddress() common.Address {
	return common.HexToAddress(e.Admin)
}

// InstanceAddress returns the parsed engine instance address.
func (e EngineConfig) InstanceAddress() common.Address {
	return common.HexToAddress(e.Instance)
}

type GatewayConfig struct {
	Mode        string        `mapstructure:"mode"` // local, remote
	URL         string        `mapstructure:"url"`
	CallbackURL string        `mapstructure:"callback_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MasterKey   string        `mapstructure:"master_key"`   // hex, local mode only
	RevealDelay time.Duration `mapstructure:"reveal_delay"` // local mode only
	DevConceal  bool          `mapstructure:"dev_conceal"`  // expose POST /dev/conceal in local mode
}

type CustodyConfig struct {
	URL     string        `mapstructure:"url"` // empty logs payouts instead of sending them
	Timeout time.Duration `mapstructure:"timeout"`
}

// PeerCredentials is one HMAC key pair. Inbound requests from the peer and
// outbound requests to it use the same pair.
type PeerCredentials struct {
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type PeersConfig struct {
	Gateway PeerCredentials `mapstructure:"gateway"`
	Custody PeerCredentials `mapstructure:"custody"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"` // empty disables the sink
	Topic   string   `mapstructure:"topic"`
}

type EventsConfig struct {
	WebhookURL       string `mapstructure:"webhook_url"` // empty disables the sink
	WebhookAccessKey string `mapstructure:"webhook_access_key"`
	WebhookSecretKey string `mapstructure:"webhook_secret_key"`
	Buffer           int    `mapstructure:"buffer"`
	Stream           bool   `mapstructure:"stream"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver"` // postgres, pebble, memory
	PebblePath string `mapstructure:"pebble_path"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type SeedConfig struct {
	Prices map[string]string `mapstructure:"prices"` // asset address -> ether price
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if !common.IsHexAddress(c.Engine.Admin) {
		errs = append(errs, fmt.Errorf("engine.admin %q is not an address", c.Engine.Admin))
	}
	if !common.IsHexAddress(c.Engine.Instance) {
		errs = append(errs, fmt.Errorf("engine.instance %q is not an address", c.Engine.Instance))
	}
	switch c.Storage.Driver {
	case "postgres", "memory":
	case "pebble":
		if c.Storage.PebblePath == "" {
			errs = append(errs, errors.New("storage.pebble_path is required for the pebble driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}
	switch c.Gateway.Mode {
	case "local":
		if c.Gateway.MasterKey == "" {
			errs = append(errs, errors.New("gateway.master_key is required in local mode"))
		}
		// Local handles and request ids live in process memory only.
		if c.Storage.Driver != "memory" {
			errs = append(errs, fmt.Errorf("gateway.mode local requires storage.driver memory, got %q", c.Storage.Driver))
		}
	case "remote":
		if c.Gateway.URL == "" {
			errs = append(errs, errors.New("gateway.url is required in remote mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown gateway.mode %q", c.Gateway.Mode))
	}
	for asset := range c.Seed.Prices {
		if !common.IsHexAddress(asset) {
			errs = append(errs, fmt.Errorf("seed.prices key %q is not an address", asset))
		}
	}
	return errors.Join(errs...)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: BBE_ (BlindBuy Escrow).
// Nested keys use underscore: BBE_DATABASE_HOST, BBE_ENGINE_ADMIN, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "blindbuy_escrow")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "blindbuy-escrow")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("engine.admin", "")
	v.SetDefault("engine.instance", "")
	v.SetDefault("engine.auto_pick_interval", "0s")
	v.SetDefault("engine.challenge_ttl", "5m")
	v.SetDefault("gateway.mode", "local")
	v.SetDefault("gateway.url", "")
	v.SetDefault("gateway.callback_url", "")
	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("gateway.master_key", "")
	v.SetDefault("gateway.reveal_delay", "0s")
	v.SetDefault("gateway.dev_conceal", false)
	v.SetDefault("custody.url", "")
	v.SetDefault("custody.timeout", "10s")
	v.SetDefault("peers.gateway.access_key", "")
	v.SetDefault("peers.gateway.secret_key", "")
	v.SetDefault("peers.custody.access_key", "")
	v.SetDefault("peers.custody.secret_key", "")
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "blindbuy.escrow.events")
	v.SetDefault("events.webhook_url", "")
	v.SetDefault("events.webhook_access_key", "")
	v.SetDefault("events.webhook_secret_key", "")
	v.SetDefault("events.buffer", 1024)
	v.SetDefault("events.stream", true)
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.pebble_path", "data/escrow")
	v.SetDefault("cors.allowed_origins", []string{})

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: BBE_DATABASE_HOST -> database.host
	v.SetEnvPrefix("BBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
