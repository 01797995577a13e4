// Package config provides configuration loading and validation for the
// opinion-pulse service. Configuration comes from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
	"github.com/jonesrussell/opinion-pulse/internal/logging"
)

// Default configuration values.
const (
	DefaultServiceName     = "opinion-pulse"
	DefaultServiceVersion  = "1.0.0"
	DefaultServicePort     = 8085
	DefaultConcurrency     = 10
	DefaultFetchLimit      = 50
	DefaultRunInterval     = 5 * time.Minute
	DefaultTargetLanguage  = "en"
	DefaultMinTextLength   = 20
	DefaultFetchRPS        = 1
	DefaultFetchBurst      = 2
	DefaultDBHost          = "localhost"
	DefaultDBPort          = 5432
	DefaultDBUser          = "postgres"
	DefaultDBName          = "opinion_pulse"
	DefaultDBSSLMode       = "disable"
	DefaultRedisURL        = "localhost:6379"
	DefaultSummaryCacheTTL = 10 * time.Minute
	DefaultLogLevel        = "info"
)

// DefaultNewsMarkers are the leading markers that identify headline-style
// posts rather than personal opinions.
var DefaultNewsMarkers = []string{
	"BREAKING:", "UPDATE:", "WATCH:", "NEW:", "EXCLUSIVE:", "REPORT:", "JUST IN:",
}

// DefaultOpinionTerms are the lexical signals that a post expresses a
// personal opinion. Flat membership check, no negation handling or stemming.
var DefaultOpinionTerms = []string{
	"think", "feel", "believe", "love", "hate", "overrated", "underrated",
	"amazing", "terrible", "best", "worst", "good", "bad",
}

// Default threshold bands. Opinion posts carry clearer sentiment, so their
// neutral band is narrower.
var (
	DefaultOpinionBand    = domain.ThresholdBand{Positive: 0.3, Negative: -0.3}
	DefaultNonOpinionBand = domain.ThresholdBand{Positive: 0.5, Negative: -0.5}
)

// Config holds all configuration for the service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Twitter  TwitterConfig  `yaml:"twitter"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  logging.Config `yaml:"logging"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string        `yaml:"name"`
	Version     string        `yaml:"version"`
	Port        int           `yaml:"port"`
	Debug       bool          `yaml:"debug"`
	Concurrency int           `yaml:"concurrency"`
	Subjects    []string      `yaml:"subjects"`
	FetchLimit  int           `yaml:"fetch_limit"`
	RunInterval time.Duration `yaml:"run_interval"`
}

// TwitterConfig holds the fetch collaborator configuration.
type TwitterConfig struct {
	BaseURL     string `yaml:"base_url"`
	BearerToken string `yaml:"bearer_token"`
	RPS         int    `yaml:"rps"`
	Burst       int    `yaml:"burst"`
}

// DatabaseConfig holds Postgres configuration.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// RedisConfig holds Redis configuration for the summary cache.
type RedisConfig struct {
	URL             string        `yaml:"url"`
	Password        string        `yaml:"password"`
	Database        int           `yaml:"database"`
	SummaryCacheTTL time.Duration `yaml:"summary_cache_ttl"`
}

// AnalysisConfig holds the classification pipeline settings.
type AnalysisConfig struct {
	TargetLanguage string               `yaml:"target_language"`
	MinTextLength  int                  `yaml:"min_text_length"`
	NewsMarkers    []string             `yaml:"news_markers"`
	OpinionTerms   []string             `yaml:"opinion_terms"`
	OpinionBand    domain.ThresholdBand `yaml:"opinion_thresholds"`
	NonOpinionBand domain.ThresholdBand `yaml:"non_opinion_thresholds"`
}

// SetDefaults fills in zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = DefaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = DefaultServiceVersion
	}
	if c.Service.Port == 0 {
		c.Service.Port = DefaultServicePort
	}
	if c.Service.Concurrency <= 0 {
		c.Service.Concurrency = DefaultConcurrency
	}
	if c.Service.FetchLimit <= 0 {
		c.Service.FetchLimit = DefaultFetchLimit
	}
	if c.Service.RunInterval <= 0 {
		c.Service.RunInterval = DefaultRunInterval
	}
	if c.Twitter.RPS <= 0 {
		c.Twitter.RPS = DefaultFetchRPS
	}
	if c.Twitter.Burst <= 0 {
		c.Twitter.Burst = DefaultFetchBurst
	}
	if c.Database.Host == "" {
		c.Database.Host = DefaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = DefaultDBUser
	}
	if c.Database.Database == "" {
		c.Database.Database = DefaultDBName
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Redis.URL == "" {
		c.Redis.URL = DefaultRedisURL
	}
	if c.Redis.SummaryCacheTTL <= 0 {
		c.Redis.SummaryCacheTTL = DefaultSummaryCacheTTL
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	c.Analysis.SetDefaults()
}

// SetDefaults fills in zero-valued analysis fields with defaults.
func (a *AnalysisConfig) SetDefaults() {
	if a.TargetLanguage == "" {
		a.TargetLanguage = DefaultTargetLanguage
	}
	if a.MinTextLength <= 0 {
		a.MinTextLength = DefaultMinTextLength
	}
	if len(a.NewsMarkers) == 0 {
		a.NewsMarkers = DefaultNewsMarkers
	}
	if len(a.OpinionTerms) == 0 {
		a.OpinionTerms = DefaultOpinionTerms
	}
	if a.OpinionBand == (domain.ThresholdBand{}) {
		a.OpinionBand = DefaultOpinionBand
	}
	if a.NonOpinionBand == (domain.ThresholdBand{}) {
		a.NonOpinionBand = DefaultNonOpinionBand
	}
}

// Validate checks the configuration. Validation errors are fatal at startup;
// no batch is processed with an invalid configuration.
func (c *Config) Validate() error {
	if c.Service.Port <= 0 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid service port: %d", c.Service.Port)
	}
	return c.Analysis.Validate()
}

// Validate checks threshold ordering and the target language tag.
func (a *AnalysisConfig) Validate() error {
	if err := validateBand("opinion", a.OpinionBand); err != nil {
		return err
	}
	if err := validateBand("non_opinion", a.NonOpinionBand); err != nil {
		return err
	}
	if _, err := language.Parse(a.TargetLanguage); err != nil {
		return fmt.Errorf("invalid target language %q: %w", a.TargetLanguage, err)
	}
	return nil
}

func validateBand(name string, band domain.ThresholdBand) error {
	if band.Negative > band.Positive {
		return fmt.Errorf("%s thresholds inverted: negative %.2f > positive %.2f",
			name, band.Negative, band.Positive)
	}
	if band.Positive <= 0 || band.Positive > 1 {
		return fmt.Errorf("%s positive threshold %.2f outside (0, 1]", name, band.Positive)
	}
	if band.Negative >= 0 || band.Negative < -1 {
		return fmt.Errorf("%s negative threshold %.2f outside [-1, 0)", name, band.Negative)
	}
	return nil
}
