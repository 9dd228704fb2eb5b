package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort         = "8080"
	DefaultCookieName   = "factcheck-session"
	DefaultSecretEnv    = "SESSION_SECRET"
	DefaultSessionTTL   = 24 * time.Hour
	DefaultProvider     = "gemini"
	DefaultAPIKeyEnv    = "GEMINI_API_KEY"
	DefaultModelTimeout = 60 * time.Second
)

// ErrMissingAPIKey is returned when the env var named by model.api_key_env is unset.
var ErrMissingAPIKey = errors.New("model API key not configured")

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Session struct {
		CookieName string `yaml:"cookie_name"`
		SecretEnv  string `yaml:"secret_env"`
		TTL        string `yaml:"ttl"`
		Secure     bool   `yaml:"secure"`
	} `yaml:"session"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Model struct {
		Provider  string `yaml:"provider"`
		Endpoint  string `yaml:"endpoint"`
		Name      string `yaml:"name"`
		APIKeyEnv string `yaml:"api_key_env"`
		Timeout   string `yaml:"timeout"`
		Verbose   bool   `yaml:"verbose"`
	} `yaml:"model"`
	CORS struct {
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"cors"`
}

// Load reads YAML config from path and fills in defaults for anything left out.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.Session.SecretEnv == "" {
		c.Session.SecretEnv = DefaultSecretEnv
	}
	if c.Model.Provider == "" {
		c.Model.Provider = DefaultProvider
	}
	if c.Model.APIKeyEnv == "" {
		c.Model.APIKeyEnv = DefaultAPIKeyEnv
	}
	if len(c.CORS.AllowOrigins) == 0 {
		c.CORS.AllowOrigins = []string{"*"}
	}
}

func (c Config) validate() error {
	switch c.Model.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}
	return nil
}

// APIKey resolves the model credential from the environment.
func (c Config) APIKey() (string, error) {
	key := os.Getenv(c.Model.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("%w: set %s", ErrMissingAPIKey, c.Model.APIKeyEnv)
	}
	return key, nil
}

// SessionSecret returns the cookie signing secret, or nil when it is not set.
func (c Config) SessionSecret() []byte {
	if v := os.Getenv(c.Session.SecretEnv); v != "" {
		return []byte(v)
	}
	return nil
}

func (c Config) SessionTTL() time.Duration {
	return TTLDuration(c.Session.TTL, DefaultSessionTTL)
}

func (c Config) ModelTimeout() time.Duration {
	return TTLDuration(c.Model.Timeout, DefaultModelTimeout)
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
