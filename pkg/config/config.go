package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"SignalDash/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"2s"`
		AllowedOrigins  []string      `yaml:"allowed_origins"`
	} `yaml:"server"`
	Logger struct {
		Level      string `yaml:"level" default:"info"`
		Format     string `yaml:"format" default:"console"`
		Output     string `yaml:"output" default:"stdout"`
		MaxSizeMB  int    `yaml:"max_size_mb" default:"10"`
		MaxBackups int    `yaml:"max_backups" default:"7"`
		MaxAgeDays int    `yaml:"max_age_days" default:"30"`
	} `yaml:"logger"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	SignalAPI struct {
		BaseURL      string        `yaml:"base_url"`
		Timeout      time.Duration `yaml:"timeout" default:"30s"`
		Symbols      []string      `yaml:"symbols"`
		HistoryLimit int           `yaml:"history_limit" default:"100"`
	} `yaml:"signal_api"`
	Display struct {
		Timezone string `yaml:"timezone" default:"Asia/Shanghai"`
		PageSize int    `yaml:"page_size" default:"20"`
	} `yaml:"display"`
	Session struct {
		TTL         time.Duration `yaml:"ttl" default:"2h"`
		MaxSessions int           `yaml:"max_sessions" default:"1000"`
	} `yaml:"session"`
	Cache struct {
		Enabled    bool          `yaml:"enabled"`
		HistoryTTL time.Duration `yaml:"history_ttl" default:"15s"`
		MemorySize int           `yaml:"memory_size" default:"500"`
		Redis      struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"signaldash"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"signaldash.events"`
		LogTopic     string   `yaml:"log_topic"`
		EventQueue   int      `yaml:"event_queue" default:"256"`
		RequiredAcks int      `yaml:"required_acks" default:"1"`
		Compression  string   `yaml:"compression" default:"gzip"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			Linger       time.Duration `yaml:"linger" default:"200ms"`
			BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	RateLimit struct {
		RefreshCapacity  float64 `yaml:"refresh_capacity" default:"5"`
		RefreshPerSec    float64 `yaml:"refresh_per_sec" default:"1"`
		BacktestCapacity float64 `yaml:"backtest_capacity" default:"2"`
		BacktestPerSec   float64 `yaml:"backtest_per_sec" default:"0.1"`
	} `yaml:"rate_limit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes, fills defaults and validates.
func Parse(b []byte) (*Config, error) {
	c, err := decode(b)
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func decode(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	c.SignalAPI.Symbols = util.UniqueSymbols(c.SignalAPI.Symbols)
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// A .env file next to the working directory is honoured when present.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := decode(b)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("SIGNAL_API_URL"); v != "" {
		c.SignalAPI.BaseURL = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.SignalAPI.Symbols = util.UniqueSymbols(strings.Split(v, ","))
	}
	if v := os.Getenv("DISPLAY_TZ"); v != "" {
		c.Display.Timezone = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Host = host
		if ok {
			c.Cache.Redis.Port = util.ParseIntDefault(port, c.Cache.Redis.Port)
		}
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.SignalAPI.BaseURL == "" {
		return fmt.Errorf("signal_api.base_url is required")
	}
	if len(c.SignalAPI.Symbols) == 0 {
		return fmt.Errorf("signal_api.symbols cannot be empty")
	}
	if c.SignalAPI.HistoryLimit <= 0 {
		return fmt.Errorf("signal_api.history_limit must be positive, got %d", c.SignalAPI.HistoryLimit)
	}
	if c.Display.PageSize <= 0 {
		return fmt.Errorf("display.page_size must be positive, got %d", c.Display.PageSize)
	}
	if _, err := util.LoadDisplayLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("display.timezone: %w", err)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}
