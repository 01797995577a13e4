package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file, applies defaults, then environment variable
// overrides, then validates. A missing config file is not an error; the
// service runs on defaults plus environment overrides.
//
// .env files are loaded first (.env.local overrides .env); real environment
// variables always win.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, unmarshalErr)
			}
		case os.IsNotExist(err):
			// Run on defaults.
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.SetDefaults()
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFiles() {
	// Ignore missing files; only explicit parse failures would matter and
	// godotenv reports those through the environment staying unchanged.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Twitter.BearerToken, "TWITTER_BEARER_TOKEN")
	overrideString(&cfg.Twitter.BaseURL, "TWITTER_BASE_URL")
	overrideString(&cfg.Database.Host, "POSTGRES_HOST")
	overrideInt(&cfg.Database.Port, "POSTGRES_PORT")
	overrideString(&cfg.Database.User, "POSTGRES_USER")
	overrideString(&cfg.Database.Password, "POSTGRES_PASSWORD")
	overrideString(&cfg.Database.Database, "POSTGRES_DB")
	overrideString(&cfg.Database.SSLMode, "POSTGRES_SSLMODE")
	overrideString(&cfg.Redis.URL, "REDIS_URL")
	overrideString(&cfg.Redis.Password, "REDIS_PASSWORD")
	overrideString(&cfg.Logging.Level, "LOG_LEVEL")
	overrideInt(&cfg.Service.Port, "PORT")
	overrideInt(&cfg.Service.Concurrency, "ANALYZER_CONCURRENCY")
	overrideBool(&cfg.Service.Debug, "APP_DEBUG")
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func overrideBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
