package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/advsearch/internal/domain/field"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
)

// Config holds the advsearch API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Elastic    ElasticConfig    `yaml:"elastic"`
	Cache      CacheConfig      `yaml:"cache"`
	Auth       AuthConfig       `yaml:"auth"`
	Search     SearchConfig     `yaml:"search"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Fields     []FieldConfig    `yaml:"fields"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ElasticConfig holds search index connection settings.
type ElasticConfig struct {
	Addresses        []string `yaml:"addresses"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	APIKey           string   `yaml:"api_key"`
	Index            string   `yaml:"index"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CacheConfig holds the optional Redis/Valkey cache settings.
// An empty address list disables the cache.
type CacheConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	TTLSec           int      `yaml:"ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a cache is configured.
func (c CacheConfig) Enabled() bool { return len(c.Addrs) > 0 }

// SearchConfig holds search behavior settings.
type SearchConfig struct {
	// FixedSeed pins the random-order seed. Empty rotates it weekly.
	FixedSeed string `yaml:"fixed_seed"`
}

// SimilarityConfig holds the field groups used by similar-document lookups.
// An empty map keeps the built-in groups.
type SimilarityConfig struct {
	Groups map[string][]string `yaml:"groups"`
}

// FieldConfig describes one catalog field.
type FieldConfig struct {
	Name               string  `yaml:"name"`
	Type               string  `yaml:"type"`
	Filterable         bool    `yaml:"filterable"`
	FreetextSearchable bool    `yaml:"freetext_searchable"`
	SearchBoost        float64 `yaml:"search_boost"`
	AggregationTarget  string  `yaml:"aggregation_target"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands environment variables in data, decodes it, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Elastic.Index == "" {
		c.Elastic.Index = "adventures"
	}
	if c.Elastic.ReadinessTimeout <= 0 {
		c.Elastic.ReadinessTimeout = 30
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 600
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Elastic.Addresses) == 0 {
		return fmt.Errorf("elastic.addresses is required")
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("fields must list at least one field")
	}
	if _, err := c.Catalog(); err != nil {
		return err
	}
	for name, fields := range c.Similarity.Groups {
		if len(fields) == 0 {
			return fmt.Errorf("similarity.groups.%s must list at least one field", name)
		}
	}
	return nil
}

// Catalog builds the field catalog from the fields section.
func (c *Config) Catalog() (*field.Catalog, error) {
	descriptors := make([]field.Descriptor, 0, len(c.Fields))
	for i, f := range c.Fields {
		d, err := field.New(f.Name, field.Type(f.Type), field.Options{
			Filterable:         f.Filterable,
			FreetextSearchable: f.FreetextSearchable,
			SearchBoost:        f.SearchBoost,
			AggregationTarget:  f.AggregationTarget,
		})
		if err != nil {
			return nil, fmt.Errorf("fields[%d]: %w", i, err)
		}
		descriptors = append(descriptors, d)
	}
	catalog, err := field.NewCatalog(descriptors)
	if err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}
	return catalog, nil
}

// SimilarityGroups returns the configured field groups, or nil for the built-in ones.
func (c *Config) SimilarityGroups() similarity.Groups {
	if len(c.Similarity.Groups) == 0 {
		return nil
	}
	return similarity.Groups(c.Similarity.Groups)
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
