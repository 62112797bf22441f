// Package config provides configuration management for the grid feed
// worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Data kinds a source can publish.
const (
	KindProduction  = "production"
	KindConsumption = "consumption"
	KindExchange    = "exchange"
)

// Known providers.
const (
	ProviderHydroQuebec = "hydroquebec"
	ProviderCaiso       = "caiso"
	ProviderCenace      = "cenace"
)

// Configuration validation errors.
var (
	ErrNoSources                = errors.New("at least one source is required")
	ErrSourceMissingZone        = errors.New("zone_key is required")
	ErrSourceMissingKind        = errors.New("kind must be production, consumption or exchange")
	ErrSourceMissingSecondZone  = errors.New("second_zone is required for exchange sources")
	ErrSourceUnknownProvider    = errors.New("provider must be hydroquebec, caiso or cenace")
	ErrSourceMissingTimezone    = errors.New("timezone is required")
	ErrSourceInvalidTimezone    = errors.New("timezone is not a valid IANA zone name")
	ErrNoEnabledSources         = errors.New("at least one source must be enabled")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingOutputPath        = errors.New("output.base_path is required")
	ErrInvalidOutputFormat      = errors.New("output.format must be 'json' or 'jsonl'")
	ErrInvalidDuplicatePolicy   = errors.New("duplicate_policy must be 'first' or 'last'")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete worker configuration.
type Config struct {
	Worker   WorkerConfig   `yaml:"worker"`
	Features FeaturesConfig `yaml:"features"`
	Advanced AdvancedConfig `yaml:"advanced"`
}

// WorkerConfig contains the fetch-and-normalize settings.
type WorkerConfig struct {
	Output  OutputConfig   `yaml:"output"`
	Sources []SourceConfig `yaml:"sources"`
	Logging LoggingConfig  `yaml:"logging"`
	Retry   RetryPolicy    `yaml:"retry"`
}

// SourceConfig describes one provider feed for one zone and data kind.
type SourceConfig struct {
	ZoneKey         string             `yaml:"zone_key"`
	SecondZone      string             `yaml:"second_zone"`
	Kind            string             `yaml:"kind"`
	Provider        string             `yaml:"provider"`
	URL             string             `yaml:"url"`
	File            string             `yaml:"file"`
	Name            string             `yaml:"name"`
	Timezone        string             `yaml:"timezone"`
	DuplicatePolicy string             `yaml:"duplicate_policy"`
	Normalization   *NormalizationOpts `yaml:"normalization"`
	Enabled         bool               `yaml:"enabled"`
}

// NormalizationOpts overrides the built-in per-provider lookup tables for
// one source. The tables are configuration, not behavior: the correction
// algorithm itself never changes per source.
type NormalizationOpts struct {
	// ModeTable maps raw field names to canonical modes, replacing the
	// provider's built-in table when non-empty.
	ModeTable map[string]string `yaml:"mode_table"`
	// ArtifactFields lists raw field names whose negative readings clamp
	// to zero, replacing the built-in set when non-empty.
	ArtifactFields []string `yaml:"artifact_fields"`
	// TotalField names the "not yet reported" sentinel checked by the row
	// filter.
	TotalField string `yaml:"total_field"`
	// RequiredField names a scalar that must be present for a row to be
	// kept.
	RequiredField string `yaml:"required_field"`
	// ConsumptionField names the demand column on consumption feeds.
	ConsumptionField string `yaml:"consumption_field"`
	// NetFlowField names the flow column on exchange feeds.
	NetFlowField string `yaml:"net_flow_field"`
	// TrailingMidnightSentinel drops a trailing "00:00" row, for providers
	// that use a placeholder midnight row instead of omitting it. This is
	// a per-source rule; a midnight reading is valid everywhere else.
	TrailingMidnightSentinel bool `yaml:"trailing_midnight_sentinel"`
}

// IsLocalFile returns true if this source reads a local snapshot.
func (s *SourceConfig) IsLocalFile() bool {
	return s.File != ""
}

// GetSource returns the file path if local, or URL if remote. A source
// with neither set fetches the provider's built-in endpoint, so an empty
// result here is not an error.
func (s *SourceConfig) GetSource() string {
	if s.IsLocalFile() {
		return s.File
	}

	return s.URL
}

// Policy returns the source's duplicate policy, defaulting to first-wins.
func (s *SourceConfig) Policy() string {
	if s.DuplicatePolicy == "" {
		return "first"
	}

	return s.DuplicatePolicy
}

// RetryPolicy defines retry behavior for provider fetches.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// OutputConfig defines output behavior.
type OutputConfig struct {
	BasePath    string `yaml:"base_path"`
	Format      string `yaml:"format"`
	PrettyPrint bool   `yaml:"pretty_print"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	ShowProgress bool   `yaml:"show_progress"`
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	StrictValidation  bool `yaml:"strict_validation"`
	SaveRawSnapshots  bool `yaml:"save_raw_snapshots"`
	EnableTableReport bool `yaml:"enable_table_report"`
}

// AdvancedConfig contains advanced settings.
type AdvancedConfig struct {
	BufferSizeKb               int  `yaml:"buffer_size_kb"`
	ContinueOnValidationErrors bool `yaml:"continue_on_validation_errors"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Worker.Sources) == 0 {
		return ErrNoSources
	}

	enabledCount := 0

	for i, src := range c.Worker.Sources {
		if src.ZoneKey == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingZone, i)
		}

		switch src.Kind {
		case KindProduction, KindConsumption:
		case KindExchange:
			if src.SecondZone == "" {
				return fmt.Errorf("%w: source[%d]", ErrSourceMissingSecondZone, i)
			}
		default:
			return fmt.Errorf("%w: source[%d] has %q", ErrSourceMissingKind, i, src.Kind)
		}

		switch src.Provider {
		case ProviderHydroQuebec, ProviderCaiso, ProviderCenace:
		default:
			return fmt.Errorf("%w: source[%d] has %q", ErrSourceUnknownProvider, i, src.Provider)
		}

		if src.Timezone == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingTimezone, i)
		}

		if _, err := time.LoadLocation(src.Timezone); err != nil {
			return fmt.Errorf("%w: source[%d] has %q", ErrSourceInvalidTimezone, i, src.Timezone)
		}

		switch src.DuplicatePolicy {
		case "", "first", "last":
		default:
			return fmt.Errorf("%w: source[%d] has %q", ErrInvalidDuplicatePolicy, i, src.DuplicatePolicy)
		}

		if src.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledSources
	}

	if c.Worker.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Worker.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Worker.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Worker.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Worker.Output.BasePath == "" {
		return ErrMissingOutputPath
	}

	if c.Worker.Output.Format != "json" && c.Worker.Output.Format != "jsonl" {
		return ErrInvalidOutputFormat
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Worker.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetEnabledSources returns only enabled sources.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Worker.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// GetSourcesByZone returns enabled sources for a specific zone.
func (c *Config) GetSourcesByZone(zoneKey string) []SourceConfig {
	var sources []SourceConfig

	for _, src := range c.Worker.Sources {
		if src.ZoneKey == zoneKey && src.Enabled {
			sources = append(sources, src)
		}
	}

	return sources
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// GetOutputPath follows structure: {base_path}/{zone_key}/{kind}.{format}.
func (c *Config) GetOutputPath(zoneKey, kind string) string {
	return fmt.Sprintf("%s/%s/%s.%s",
		c.Worker.Output.BasePath,
		zoneKey,
		kind,
		c.Worker.Output.Format,
	)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sources: %d, MaxAttempts: %d, Output: %s}",
		len(c.Worker.Sources),
		c.Worker.Retry.MaxAttempts,
		c.Worker.Output.BasePath,
	)
}
