package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "LEDGER_"
	envConfigFile     = "LEDGER_CONFIG"
	defaultConfigFile = "ledger.yaml"

	StorageDriverJSON   = "json"
	StorageDriverSQLite = "sqlite"
)

type Config struct {
	Storage StorageConfig `koanf:"storage"`
	Ledger  LedgerConfig  `koanf:"ledger"`
	Report  ReportConfig  `koanf:"report"`
	HTTP    HTTPConfig    `koanf:"http"`
	Log     LogConfig     `koanf:"log"`
}

type StorageConfig struct {
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
}

type LedgerConfig struct {
	Currency    string `koanf:"currency"`
	DisplayName string `koanf:"display_name"`
}

type ReportConfig struct {
	Path string `koanf:"path"`
}

type HTTPConfig struct {
	Port string `koanf:"port"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// In all cases the defaults describe a local single-user setup.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"storage.driver":      StorageDriverJSON,
		"storage.path":        "ledger_data.json",
		"ledger.currency":     "RUB",
		"ledger.display_name": "Company",
		"report.path":         "report.csv",
		"http.port":           "9446",
		"log.level":           "info",
	}
}

// ProcessEnvironmentVariables loads defaults, then the optional YAML file named by
// LEDGER_CONFIG (or ./ledger.yaml), then LEDGER_* environment variables, with a
// .env file in the working directory merged into the environment first.
func ProcessEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("godotenv.Load: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, explicit := os.LookupEnv(envConfigFile)
	if !explicit {
		configFile = defaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", configFile, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", configFile, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps LEDGER_STORAGE_PATH to storage.path and
// LEDGER_LEDGER_DISPLAY_NAME to ledger.display_name.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}

// Validate checks the storage driver and the base currency code.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverJSON, StorageDriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Path == "" {
		return errors.New("storage path must not be empty")
	}

	c.Ledger.Currency = strings.ToUpper(c.Ledger.Currency)
	if money.GetCurrency(c.Ledger.Currency) == nil {
		return fmt.Errorf("unknown currency %q", c.Ledger.Currency)
	}
	return nil
}
