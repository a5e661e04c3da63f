// Package config provides loading and parsing of review.yaml configuration
// files. Review configurations define per-stage model assignments, provider
// credentials, and report storage settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	sdk "github.com/redline-ai/sdk"
	"github.com/redline-ai/sdk/review"
)

// Config represents a review.yaml configuration file.
type Config struct {
	// Provider configures the inference backend.
	Provider *ProviderConfig `yaml:"provider,omitempty"`

	// Stages overrides the model assignment per pipeline stage, keyed by
	// stage name (e.g., "risk_analysis").
	Stages map[string]StageConfig `yaml:"stages,omitempty"`

	// Storage configures report persistence.
	Storage *StorageConfig `yaml:"storage,omitempty"`
}

// ProviderConfig selects the inference provider and its credentials.
type ProviderConfig struct {
	// BaseURL is the provider endpoint. Default: the OpenAI API.
	BaseURL string `yaml:"base_url,omitempty"`

	// APIKeyEnv names the environment variable holding the API key.
	// Default: OPENAI_API_KEY. The key itself never appears in the file.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

// StageConfig overrides the model assignment for one pipeline stage.
type StageConfig struct {
	Model       string   `yaml:"model,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
	MaxTokens   int      `yaml:"max_tokens,omitempty"`
}

// StorageConfig configures the Redis-backed report store.
type StorageConfig struct {
	// Addr is the Redis address (host:port).
	Addr string `yaml:"addr,omitempty"`

	// KeyPrefix namespaces stored reports. Default: "review".
	KeyPrefix string `yaml:"key_prefix,omitempty"`

	// TTL is how long stored reports live, as a Go duration string
	// (e.g., "720h"). Empty means reports never expire.
	TTL string `yaml:"ttl,omitempty"`
}

// GetAPIKeyEnv returns the configured API key variable name or the default.
func (p *ProviderConfig) GetAPIKeyEnv() string {
	if p == nil || p.APIKeyEnv == "" {
		return "OPENAI_API_KEY"
	}
	return p.APIKeyEnv
}

// APIKey resolves the API key from the environment. Empty when unset.
func (p *ProviderConfig) APIKey() string {
	return os.Getenv(p.GetAPIKeyEnv())
}

// GetKeyPrefix returns the configured key prefix or the default value.
func (s *StorageConfig) GetKeyPrefix() string {
	if s == nil || s.KeyPrefix == "" {
		return "review"
	}
	return s.KeyPrefix
}

// GetTTL parses the TTL string and returns a duration.
// Returns zero (no expiry) if not set or invalid.
func (s *StorageConfig) GetTTL() time.Duration {
	if s == nil || s.TTL == "" {
		return 0
	}
	d, err := time.ParseDuration(s.TTL)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks that configured stage names match known pipeline stages.
func (c *Config) Validate() error {
	known := make(map[string]bool, len(review.Stages()))
	for _, stage := range review.Stages() {
		known[stage.String()] = true
	}
	for name := range c.Stages {
		if !known[name] {
			return sdk.NewConfigurationError("config.Validate",
				fmt.Errorf("%w: unknown stage %q", sdk.ErrInvalidConfig, name))
		}
		if name == review.StageChangePrioritization.String() {
			return sdk.NewConfigurationError("config.Validate",
				fmt.Errorf("%w: stage %q runs locally and takes no model", sdk.ErrInvalidConfig, name))
		}
	}
	return nil
}

// ReviewerOptions converts the stage overrides into Reviewer options.
// Configured fields replace the stock assignment for that stage; omitted
// fields keep the stock value.
func (c *Config) ReviewerOptions() []review.ReviewerOption {
	var opts []review.ReviewerOption
	for _, stage := range review.Stages() {
		override, ok := c.Stages[stage.String()]
		if !ok {
			continue
		}
		opts = append(opts, reviewStageOption(stage, override))
	}
	return opts
}

func reviewStageOption(stage review.Stage, override StageConfig) review.ReviewerOption {
	cfg := review.DefaultStageConfig(stage)
	if override.Model != "" {
		cfg.Model = override.Model
	}
	if override.Temperature != nil {
		cfg.Temperature = *override.Temperature
	}
	if override.MaxTokens > 0 {
		cfg.MaxTokens = override.MaxTokens
	}
	return review.WithStageConfig(stage, cfg)
}

// Load reads and parses a review.yaml file from the given path.
// If the path is a directory, it looks for review.yaml or review.yml in
// that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, sdk.NewConfigurationError("config.Load",
			fmt.Errorf("stat path: %w", err))
	}

	var configPath string
	if info.IsDir() {
		yamlPath := filepath.Join(path, "review.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "review.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, sdk.NewConfigurationError("config.Load",
					fmt.Errorf("%w: no review.yaml or review.yml found in %s", sdk.ErrInvalidConfig, path))
			}
		}
	} else {
		configPath = path
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, sdk.NewConfigurationError("config.Load",
			fmt.Errorf("read config file: %w", err))
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, sdk.NewConfigurationError("config.Load",
			fmt.Errorf("%w: parse config file: %v", sdk.ErrInvalidConfig, err))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFromDir searches for review.yaml starting from the given directory
// and walking up to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, sdk.NewConfigurationError("config.LoadFromDir",
			fmt.Errorf("absolute path: %w", err))
	}

	for {
		config, err := Load(absDir)
		if err == nil {
			return config, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, sdk.NewConfigurationError("config.LoadFromDir",
				fmt.Errorf("%w: no review.yaml found in %s or parent directories", sdk.ErrInvalidConfig, dir))
		}
		absDir = parent
	}
}
