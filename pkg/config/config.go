package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Config holds all application configuration. Values are loaded from an
// optional YAML config file and then overridden by HONDANA_* environment
// variables.
type Config struct {
	CatalogAppID              string        `koanf:"catalog_app_id"`
	CatalogBaseURL            string        `koanf:"catalog_base_url"`
	DataDir                   string        `koanf:"data_dir"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries"`
	FrontendURL               string        `koanf:"frontend_url"`
	JWTSecret                 string        `koanf:"jwt_secret"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
}

const envPrefix = "HONDANA_"

func configFilePath() string {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return path
	}
	return "./config.yaml"
}

// New loads the configuration from defaults, the config file, and the
// environment, in increasing order of precedence.
func New() (*Config, error) {
	k := koanf.New(".")

	cfg := &Config{
		CatalogBaseURL:            "https://app.rakuten.co.jp/services/api",
		DataDir:                   "./data",
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        5,
		ServerHost:                "127.0.0.1",
		ServerPort:                6075,
	}

	if _, err := os.Stat(configFilePath()); err == nil {
		if err := k.Load(file.Provider(configFilePath()), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "failed to load config file")
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load environment config")
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	missing := []string{}
	if cfg.DatabaseFilePath == "" {
		missing = append(missing, "HONDANA_DATABASE_FILE_PATH (database_file_path)")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "HONDANA_JWT_SECRET (jwt_secret)")
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}
