package config

import (
	"fmt"
	"time"
)

// Store backends for the local credential store.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds runtime settings for the portfolio admin console.
type Config struct {
	APIBaseURL     string        `env:"PORTFOLIO_API_BASE_URL"`
	RequestTimeout time.Duration `env:"PORTFOLIO_REQUEST_TIMEOUT"`

	Store   string `env:"PORTFOLIO_STORE"`
	DataDir string `env:"PORTFOLIO_DATA_DIR"`
	DBFile  string `env:"PORTFOLIO_DB_FILE"`

	Redis RedisConfig `envPrefix:"PORTFOLIO_REDIS_"`
	Log   LogConfig   `envPrefix:"PORTFOLIO_LOG_"`
	Media MediaConfig `envPrefix:"PORTFOLIO_S3_"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`
	Prefix   string `env:"PREFIX"`
}

type LogConfig struct {
	Level  string `env:"LEVEL"`
	Format string `env:"FORMAT"`
	File   string `env:"FILE"`
}

// MediaConfig configures the optional S3-compatible image upload target.
// Uploads are disabled when Bucket is empty.
type MediaConfig struct {
	Bucket        string `env:"BUCKET"`
	Region        string `env:"REGION"`
	Endpoint      string `env:"ENDPOINT"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
	AccessKey     string `env:"ACCESS_KEY"`
	SecretKey     string `env:"SECRET_KEY"`
	UsePathStyle  bool   `env:"USE_PATH_STYLE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.RequestTimeout = 15 * time.Second
	c.Store = StoreSQLite
	c.DataDir = "portfolio_data"
	c.DBFile = "portfolio.db"
	c.Redis = RedisConfig{Addr: "localhost:6379", Prefix: "portfolio:"}
	c.Log = LogConfig{Level: "warn", Format: "text"}
	c.Media = MediaConfig{Region: "us-east-1"}
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	switch c.Store {
	case StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}

// LoadConfig builds a Config from defaults, the dotenv file, the
// environment, an optional JSON/YAML file and command-line flags, in that
// order. Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	environ, err := loadEnviron(args)
	if err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
