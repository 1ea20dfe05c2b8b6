package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DataSourceLocal  = "local"
	DataSourceMyRent = "myrent"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	Env        string        `yaml:"env" env:"ENV" env-default:"local"`
	Jaeger     string        `yaml:"jaeger" env:"JAEGER" env-default:"jaeger"`
	DataSource string        `yaml:"datasource" env:"DATA_SOURCE" env-default:"local"`
	Log        LogConfig     `yaml:"log"`
	HTTP       HTTPConfig    `yaml:"http"`
	GRPC       GRPCConfig    `yaml:"grpc"`
	Auth       AuthConfig    `yaml:"auth"`
	Catalog    CatalogConfig `yaml:"catalog"`
	MyRent     MyRentConfig  `yaml:"myrent"`
	Listing    ListingConfig `yaml:"listing"`
	Pricing    PricingConfig `yaml:"pricing"`
	Redis      RedisConfig   `yaml:"redis"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"GRPC_PORT" env-default:"44046"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key" env:"MYRENT_API_KEY" env-default:"MYRENT-DEMO-KEY"`
}

type CatalogConfig struct {
	Path string `yaml:"path" env:"CATALOG_PATH" env-default:"data/vehicles.json"`
}

type MyRentConfig struct {
	BaseURL     string        `yaml:"base_url" env:"MYRENT_BASE_URL"`
	UserID      string        `yaml:"user_id" env:"MYRENT_USER_ID"`
	Password    string        `yaml:"password" env:"MYRENT_PASSWORD"`
	CompanyCode string        `yaml:"company_code" env:"MYRENT_COMPANY_CODE"`
	Timeout     time.Duration `yaml:"timeout" env:"MYRENT_TIMEOUT" env-default:"30s"`
	MaxRetries  int           `yaml:"max_retries" env:"MYRENT_MAX_RETRIES" env-default:"3"`
	Backoff     time.Duration `yaml:"backoff" env:"MYRENT_BACKOFF" env-default:"500ms"`
	VATPct      float64       `yaml:"vat_pct" env:"MYRENT_VAT_PCT" env-default:"22"`
}

type ListingConfig struct {
	CacheBackend     string        `yaml:"cache_backend" env:"LISTING_CACHE_BACKEND" env-default:"memory"`
	CacheTTL         time.Duration `yaml:"cache_ttl" env:"LISTING_CACHE_TTL" env-default:"5m"`
	StartOffsetsDays []int         `yaml:"start_offsets_days" env:"LISTING_START_OFFSETS_DAYS" env-default:"5,10"`
	DurationsDays    []int         `yaml:"durations_days" env:"LISTING_DURATIONS_DAYS" env-default:"2,4,6,8"`
	ProbeHourUTC     int           `yaml:"probe_hour_utc" env:"LISTING_PROBE_HOUR_UTC" env-default:"10"`
	DefaultAge       int           `yaml:"default_age" env:"LISTING_DEFAULT_AGE" env-default:"30"`
}

type PricingConfig struct {
	AvailabilityBuckets int `yaml:"availability_buckets" env:"PRICING_AVAILABILITY_BUCKETS" env-default:"10"`
	AvailableBuckets    int `yaml:"available_buckets" env:"PRICING_AVAILABLE_BUCKETS" env-default:"8"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

func (c HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c MyRentConfig) Enabled() bool {
	return c.BaseURL != ""
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}
	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	cfg, err := LoadByPath(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func LoadByPath(configPath string) (*Config, error) {
	const op = "config.LoadByPath"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: config file does not exist: %s", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read the config: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DataSource {
	case DataSourceLocal, DataSourceMyRent:
	default:
		return fmt.Errorf("unknown datasource %q", c.DataSource)
	}

	switch c.Listing.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("unknown listing cache backend %q", c.Listing.CacheBackend)
	}

	if c.DataSource == DataSourceMyRent && !c.MyRent.Enabled() {
		return fmt.Errorf("datasource %q requires myrent.base_url", c.DataSource)
	}

	if c.Pricing.AvailableBuckets > c.Pricing.AvailabilityBuckets {
		return fmt.Errorf("available buckets %d exceed total buckets %d", c.Pricing.AvailableBuckets, c.Pricing.AvailabilityBuckets)
	}

	return nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}
