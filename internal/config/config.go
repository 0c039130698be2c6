package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. COUNTRY_DATA_GATEWAY_ADDR.
const EnvPrefix = "COUNTRY_DATA"

// Config is the configuration shared by the gateway and web binaries.
type Config struct {
	Gateway  Gateway  `mapstructure:"gateway"`
	Upstream Upstream `mapstructure:"upstream"`
	Web      Web      `mapstructure:"web"`
	Log      Log      `mapstructure:"log"`
}

// Gateway configures the data gateway listener.
type Gateway struct {
	Addr string `mapstructure:"addr"`
}

// Upstream configures the REST Countries collaborator.
type Upstream struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Web configures the presentation client.
type Web struct {
	Addr       string        `mapstructure:"addr"`
	GatewayURL string        `mapstructure:"gateway_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Log configures zap.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Defaults are applied before any file, environment or flag source.
var Defaults = map[string]interface{}{
	"gateway.addr":      ":3001",
	"upstream.base_url": "https://restcountries.com/v3.1",
	"upstream.timeout":  10 * time.Second,
	"web.addr":          ":3000",
	"web.gateway_url":   "http://localhost:3001",
	"web.timeout":       10 * time.Second,
	"log.level":         "info",
	"log.format":        "json",
}

// Load resolves configuration from, in increasing precedence: defaults, an
// optional config file, a .env file, COUNTRY_DATA_* environment variables and
// flags. configFile may be empty, in which case ./config.yaml and
// ./configs/config.yaml are tried.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// bindFlags maps flag names like "upstream-url" onto config keys. Only flags
// listed in FlagKeys are bound.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range FlagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// FlagKeys lists the command-line flags understood by both binaries.
var FlagKeys = map[string]string{
	"gateway-addr":     "gateway.addr",
	"upstream-url":     "upstream.base_url",
	"upstream-timeout": "upstream.timeout",
	"web-addr":         "web.addr",
	"gateway-url":      "web.gateway_url",
	"web-timeout":      "web.timeout",
	"log-level":        "log.level",
	"log-format":       "log.format",
}

// Validate rejects configurations neither binary can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Gateway.Addr == "" {
		errs = append(errs, errors.New("gateway.addr is required"))
	}
	if c.Web.Addr == "" {
		errs = append(errs, errors.New("web.addr is required"))
	}
	if err := validateURL("upstream.base_url", c.Upstream.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateURL("web.gateway_url", c.Web.GatewayURL); err != nil {
		errs = append(errs, err)
	}
	if c.Upstream.Timeout < 0 {
		errs = append(errs, errors.New("upstream.timeout must not be negative"))
	}
	if c.Web.Timeout < 0 {
		errs = append(errs, errors.New("web.timeout must not be negative"))
	}
	return errors.Join(errs...)
}

func validateURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, raw)
	}
	return nil
}
