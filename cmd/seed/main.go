// Package main provides the seed command-line tool for local development.
// It writes a starter configuration and offline fixture snapshots, then
// verifies the scaffold by loading the config back.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gridfeed/internal/config"
	"gridfeed/pkg/metadata"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
)

func logInfo(msg string) {
	fmt.Printf("%s[SEED]%s %s\n", colorGreen, colorReset, msg)
}

func logWarn(msg string) {
	fmt.Printf("%s[SEED]%s %s\n", colorYellow, colorReset, msg)
}

func logError(msg string) {
	fmt.Printf("%s[SEED]%s %s\n", colorRed, colorReset, msg)
}

const hydroQuebecFixture = `{
  "dateMAJ": "2020-01-20 14:45:00",
  "details": [
    {
      "date": "2020-01-20 14:00:00",
      "valeurs": {
        "hydraulique": 31245.0,
        "eolien": 2310.0,
        "thermique": 120.0,
        "solaire": 8.5,
        "autres": 305.0,
        "total": 33988.5,
        "demandeTotal": 34120.0
      }
    },
    {
      "date": "2020-01-20 14:15:00",
      "valeurs": {
        "hydraulique": 31410.0,
        "eolien": 2288.0,
        "thermique": 118.0,
        "solaire": 7.9,
        "autres": 301.0,
        "total": 34124.9,
        "demandeTotal": 34310.0
      }
    },
    {
      "date": "2020-01-20 14:30:00",
      "valeurs": {
        "total": 0.0
      }
    }
  ]
}
`

const caisoFixture = `Time,Solar,Wind,Geothermal,Biomass,Biogas,Small hydro,Coal,Nuclear,Natural Gas,Large Hydro,Batteries,Imports,Other
00:00,-3,1200,950,320,210,240,0,2250,9800,1450,35,5200,0
00:05,-2,1185,951,319,211,238,0,2251,9750,1430,-120,5150,0
00:10,-4,1170,949,321,209,235,0,2250,9720,-60,80,5100,0
00:00,0,0,0,0,0,0,0,0,0,0,0,0,0
`

const cenaceFixture = `<html>
  <body>
    <div id="IntercambioUSA-BCA">&#8208;128.4</div>
  </body>
</html>
`

func main() {
	configPath := flag.String("config", "configs/gridfeed.yaml", "Path for the starter configuration")
	fixtureDir := flag.String("fixtures", "data/fixtures", "Directory for fixture snapshots")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	logInfo("Scaffolding local development environment...")

	fixtures := map[string]string{
		"hydroquebec_production.json": hydroQuebecFixture,
		"caiso_fuelsource.csv":        caisoFixture,
		"cenace_exchange.html":        cenaceFixture,
	}

	for name, content := range fixtures {
		path := filepath.Join(*fixtureDir, name)
		if err := writeFixture(path, content, *force); err != nil {
			logError(fmt.Sprintf("Failed to write %s: %v", path, err))
			os.Exit(1)
		}
	}

	if err := writeConfig(*configPath, *fixtureDir, *force); err != nil {
		logError(fmt.Sprintf("Failed to write config: %v", err))
		os.Exit(1)
	}

	// Loading back exercises the same validation the worker runs at startup.
	if _, err := config.LoadConfig(*configPath); err != nil {
		logError(fmt.Sprintf("Generated config does not validate: %v", err))
		os.Exit(1)
	}

	logInfo("===========================================")
	logInfo("Seeding complete!")
	logInfo(fmt.Sprintf("Run: worker -config %s", *configPath))
	logInfo("===========================================")
}

func writeFixture(path, content string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		logWarn(fmt.Sprintf("Skipping existing fixture: %s", path))

		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}

	sidecar := metadata.Sign([]byte(content), "seed fixture", true)
	if err := os.WriteFile(metadata.SidecarPath(path), []byte(sidecar), 0644); err != nil {
		return err
	}

	logInfo(fmt.Sprintf("Wrote fixture: %s", path))

	return nil
}

func writeConfig(path, fixtureDir string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		logWarn(fmt.Sprintf("Skipping existing config: %s", path))

		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	cfg := starterConfig(fixtureDir)
	if err := cfg.SaveConfig(path); err != nil {
		return err
	}

	logInfo(fmt.Sprintf("Wrote config: %s", path))

	return nil
}

func starterConfig(fixtureDir string) *config.Config {
	return &config.Config{
		Worker: config.WorkerConfig{
			Output: config.OutputConfig{
				BasePath:    "data/normalized",
				Format:      "json",
				PrettyPrint: true,
			},
			Sources: []config.SourceConfig{
				{
					ZoneKey:  "CA-QC",
					Kind:     config.KindProduction,
					Provider: config.ProviderHydroQuebec,
					File:     filepath.Join(fixtureDir, "hydroquebec_production.json"),
					Name:     "Hydro-Québec production fixture",
					Timezone: "America/Montreal",
					Enabled:  true,
				},
				{
					ZoneKey:  "CA-QC",
					Kind:     config.KindConsumption,
					Provider: config.ProviderHydroQuebec,
					File:     filepath.Join(fixtureDir, "hydroquebec_production.json"),
					Name:     "Hydro-Québec demand fixture",
					Timezone: "America/Montreal",
					Enabled:  true,
				},
				{
					ZoneKey:  "US-CAL-CISO",
					Kind:     config.KindProduction,
					Provider: config.ProviderCaiso,
					File:     filepath.Join(fixtureDir, "caiso_fuelsource.csv"),
					Name:     "CAISO fuel source fixture",
					Timezone: "America/Los_Angeles",
					Normalization: &config.NormalizationOpts{
						TrailingMidnightSentinel: true,
					},
					Enabled: true,
				},
				{
					ZoneKey:    "MX-BC",
					SecondZone: "US-CAL-CISO",
					Kind:       config.KindExchange,
					Provider:   config.ProviderCenace,
					File:       filepath.Join(fixtureDir, "cenace_exchange.html"),
					Name:       "CENACE border flow fixture",
					Timezone:   "America/Tijuana",
					Enabled:    true,
				},
			},
			Logging: config.LoggingConfig{
				Level:        "info",
				ShowProgress: true,
			},
			Retry: config.RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        5000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
		},
		Features: config.FeaturesConfig{
			StrictValidation:  false,
			SaveRawSnapshots:  true,
			EnableTableReport: true,
		},
		Advanced: config.AdvancedConfig{
			BufferSizeKb:               4096,
			ContinueOnValidationErrors: false,
		},
	}
}
