package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Worker: WorkerConfig{
			Output: OutputConfig{
				BasePath: "data/normalized",
				Format:   "json",
			},
			Sources: []SourceConfig{
				{
					ZoneKey:  "CA-QC",
					Kind:     KindProduction,
					Provider: ProviderHydroQuebec,
					URL:      "https://example.com/production.json",
					Timezone: "America/Montreal",
					Enabled:  true,
				},
			},
			Logging: LoggingConfig{Level: "info"},
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        5000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
		},
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate returned unexpected error: %v", err)
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			"no sources",
			func(c *Config) { c.Worker.Sources = nil },
			ErrNoSources,
		},
		{
			"missing zone",
			func(c *Config) { c.Worker.Sources[0].ZoneKey = "" },
			ErrSourceMissingZone,
		},
		{
			"bad kind",
			func(c *Config) { c.Worker.Sources[0].Kind = "telemetry" },
			ErrSourceMissingKind,
		},
		{
			"exchange without second zone",
			func(c *Config) { c.Worker.Sources[0].Kind = KindExchange },
			ErrSourceMissingSecondZone,
		},
		{
			"unknown provider",
			func(c *Config) { c.Worker.Sources[0].Provider = "enron" },
			ErrSourceUnknownProvider,
		},
		{
			"missing timezone",
			func(c *Config) { c.Worker.Sources[0].Timezone = "" },
			ErrSourceMissingTimezone,
		},
		{
			"bad timezone",
			func(c *Config) { c.Worker.Sources[0].Timezone = "Mars/Olympus" },
			ErrSourceInvalidTimezone,
		},
		{
			"bad duplicate policy",
			func(c *Config) { c.Worker.Sources[0].DuplicatePolicy = "newest" },
			ErrInvalidDuplicatePolicy,
		},
		{
			"nothing enabled",
			func(c *Config) { c.Worker.Sources[0].Enabled = false },
			ErrNoEnabledSources,
		},
		{
			"zero attempts",
			func(c *Config) { c.Worker.Retry.MaxAttempts = 0 },
			ErrInvalidMaxAttempts,
		},
		{
			"negative delay",
			func(c *Config) { c.Worker.Retry.InitialDelayMs = -1 },
			ErrInvalidInitialDelay,
		},
		{
			"backoff below one",
			func(c *Config) { c.Worker.Retry.BackoffMultiplier = 0.5 },
			ErrInvalidBackoffMultiplier,
		},
		{
			"zero timeout",
			func(c *Config) { c.Worker.Retry.TimeoutSec = 0 },
			ErrInvalidTimeout,
		},
		{
			"missing output path",
			func(c *Config) { c.Worker.Output.BasePath = "" },
			ErrMissingOutputPath,
		},
		{
			"bad output format",
			func(c *Config) { c.Worker.Output.Format = "xml" },
			ErrInvalidOutputFormat,
		},
		{
			"bad log level",
			func(c *Config) { c.Worker.Logging.Level = "verbose" },
			ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_DefaultEndpointSource(t *testing.T) {
	// A source with neither url nor file fetches the provider's built-in
	// endpoint, so validation must accept it.
	cfg := validConfig()
	cfg.Worker.Sources[0].URL = ""
	cfg.Worker.Sources[0].File = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate returned unexpected error: %v", err)
	}
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridfeed.yaml")

	if err := validConfig().SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(loaded.Worker.Sources) != 1 {
		t.Fatalf("Sources = %d, want 1", len(loaded.Worker.Sources))
	}

	src := loaded.Worker.Sources[0]
	if src.ZoneKey != "CA-QC" || src.Provider != ProviderHydroQuebec {
		t.Errorf("source = %s/%s, want CA-QC/hydroquebec", src.ZoneKey, src.Provider)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig expected error for missing file")
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("worker: [not a mapping"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig expected error for malformed YAML")
	}
}

func TestSourceConfig_Accessors(t *testing.T) {
	src := SourceConfig{File: "data/fixtures/snapshot.json"}
	if !src.IsLocalFile() {
		t.Error("IsLocalFile = false, want true")
	}

	if src.GetSource() != "data/fixtures/snapshot.json" {
		t.Errorf("GetSource = %s", src.GetSource())
	}

	remote := SourceConfig{URL: "https://example.com/feed"}
	if remote.IsLocalFile() {
		t.Error("IsLocalFile = true, want false")
	}

	if remote.Policy() != "first" {
		t.Errorf("Policy = %s, want first", remote.Policy())
	}

	remote.DuplicatePolicy = "last"
	if remote.Policy() != "last" {
		t.Errorf("Policy = %s, want last", remote.Policy())
	}
}

func TestRetryPolicy_GetRetryDelay(t *testing.T) {
	rp := RetryPolicy{
		InitialDelayMs:    500,
		MaxDelayMs:        3000,
		BackoffMultiplier: 2.0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 0},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
		{4, 3000 * time.Millisecond}, // capped
		{5, 3000 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := rp.GetRetryDelay(tt.attempt); got != tt.want {
			t.Errorf("GetRetryDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestConfig_GetOutputPath(t *testing.T) {
	cfg := validConfig()

	got := cfg.GetOutputPath("CA-QC", KindProduction)
	want := "data/normalized/CA-QC/production.json"

	if got != want {
		t.Errorf("GetOutputPath = %s, want %s", got, want)
	}
}

func TestConfig_GetEnabledSources(t *testing.T) {
	cfg := validConfig()
	cfg.Worker.Sources = append(cfg.Worker.Sources, SourceConfig{
		ZoneKey:  "US-CAL-CISO",
		Kind:     KindProduction,
		Provider: ProviderCaiso,
		URL:      "https://example.com/fuelsource.csv",
		Timezone: "America/Los_Angeles",
		Enabled:  false,
	})

	enabled := cfg.GetEnabledSources()
	if len(enabled) != 1 {
		t.Fatalf("enabled sources = %d, want 1", len(enabled))
	}

	if enabled[0].ZoneKey != "CA-QC" {
		t.Errorf("enabled source = %s, want CA-QC", enabled[0].ZoneKey)
	}
}
