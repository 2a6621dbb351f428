package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "URLPICKER_"

type Config struct {
	Listen          string        `yaml:"listen"`           // ex: ":8080"
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // ex: 5s
	HomeURL         string        `yaml:"home_url"`         // absolute URLs under it display relative
	Locale          string        `yaml:"locale"`           // ex: "fr-CA"

	Log    LogConfig    `yaml:"log"`
	Store  StoreConfig  `yaml:"store"`
	Dialog DialogConfig `yaml:"dialog"`
	Labels LabelsConfig `yaml:"labels"`
	Forms  FormsConfig  `yaml:"forms"`

	// Translations maps locale -> message key -> message.
	Translations map[string]map[string]string `yaml:"translations"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Pretty bool   `yaml:"pretty"` // true => zap dev (color), false => zap prod (JSON)
}

type StoreConfig struct {
	Driver string      `yaml:"driver"` // "memory" | "redis"
	Redis  RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	Prefix         string        `yaml:"prefix"`
	TTL            time.Duration `yaml:"ttl"`
	DialTimeout    time.Duration `yaml:"dial_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"` // total time to retry connecting
	RetryInterval  time.Duration `yaml:"retry_interval"`  // initial wait, grows exponentially
	MaxWait        time.Duration `yaml:"max_wait"`
	PingTimeout    time.Duration `yaml:"ping_timeout"`
}

type DialogConfig struct {
	FragmentURL  string        `yaml:"fragment_url"` // empty => render in-process
	RootSelector string        `yaml:"root_selector"`
	LoadTimeout  time.Duration `yaml:"load_timeout"`
}

type LabelsConfig struct {
	SelectLink string `yaml:"select_link"`
	RemoveLink string `yaml:"remove_link"`
}

type FormsConfig struct {
	Dir  string `yaml:"dir"`  // directory of form declarations, empty => bundled demo
	Form string `yaml:"form"` // form served at "/"
}

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Default returns the configuration used when no file or env overrides apply.
func Default() Config {
	return Config{
		Listen:          ":8080",
		ShutdownTimeout: 5 * time.Second,
		Locale:          "en",
		Log:             LogConfig{Level: "info", Pretty: true},
		Store: StoreConfig{
			Driver: DriverMemory,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "urlpicker",
			},
		},
		Dialog: DialogConfig{LoadTimeout: 10 * time.Second},
		Labels: LabelsConfig{SelectLink: "Select link", RemoveLink: "Remove link"},
		Forms:  FormsConfig{Form: "page"},
	}
}

// Load reads path (optional), then the .env file in the working directory
// (optional), then URLPICKER_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Listen = getenv("LISTEN", cfg.Listen)
	cfg.ShutdownTimeout = mustDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.HomeURL = getenv("HOME_URL", cfg.HomeURL)
	cfg.Locale = getenv("LOCALE", cfg.Locale)

	cfg.Log.Level = getenv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Pretty = mustBool("PRETTY_LOG", cfg.Log.Pretty)

	cfg.Store.Driver = getenv("STORE_DRIVER", cfg.Store.Driver)
	redis := &cfg.Store.Redis
	redis.Addr = getenv("REDIS_ADDR", redis.Addr)
	redis.Username = getenv("REDIS_USERNAME", redis.Username)
	redis.Password = getenv("REDIS_PASSWORD", redis.Password)
	redis.DB = getenvInt("REDIS_DB", redis.DB)
	redis.Prefix = getenv("REDIS_PREFIX", redis.Prefix)
	redis.TTL = mustDuration("REDIS_TTL", redis.TTL)
	redis.ConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", redis.ConnectTimeout)
	redis.RetryInterval = mustDuration("REDIS_RETRY_INTERVAL", redis.RetryInterval)

	cfg.Dialog.FragmentURL = getenv("DIALOG_FRAGMENT_URL", cfg.Dialog.FragmentURL)
	cfg.Dialog.LoadTimeout = mustDuration("DIALOG_LOAD_TIMEOUT", cfg.Dialog.LoadTimeout)

	cfg.Labels.SelectLink = getenv("LABEL_SELECT_LINK", cfg.Labels.SelectLink)
	cfg.Labels.RemoveLink = getenv("LABEL_REMOVE_LINK", cfg.Labels.RemoveLink)

	cfg.Forms.Dir = getenv("FORMS_DIR", cfg.Forms.Dir)
	cfg.Forms.Form = getenv("FORM", cfg.Forms.Form)
}

// Validate reports configuration the server cannot start with.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory:
	case DriverRedis:
		if strings.TrimSpace(c.Store.Redis.Addr) == "" {
			return errors.New("config: store.redis.addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Dialog.LoadTimeout <= 0 {
		return errors.New("config: dialog.load_timeout must be positive")
	}
	if strings.TrimSpace(c.Listen) == "" {
		return errors.New("config: listen address is required")
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	out := c
	if out.Store.Redis.Password != "" {
		out.Store.Redis.Password = "***REDACTED***"
	}
	return out
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(envPrefix + key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(envPrefix + key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(envPrefix + key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
