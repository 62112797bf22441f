// Package main provides the unified worker command that fetches,
// normalizes and saves grid data for every enabled source.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gridfeed/internal/config"
	"gridfeed/internal/crawler"
	"gridfeed/internal/formatter"
	"gridfeed/internal/logger"
	"gridfeed/internal/validator"
)

func main() {
	configPath := flag.String("config", "configs/gridfeed.yaml", "Path to YAML configuration file")
	verbose := flag.Bool("verbose", false, "Force debug logging regardless of the configured level")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Worker.Logging.Level)
	if *verbose {
		log.SetLevel("debug")
	}

	log.Info("🚀 Starting grid feed worker")
	log.Info(cfg.String())

	client := crawler.NewClientWithScraper(
		crawler.NewScraperWithConfig(&cfg.Worker.Retry, cfg.Advanced.BufferSizeKb),
		log,
	)
	seriesValidator := validator.NewSeriesValidator(cfg.Features.StrictValidation)

	startTime := time.Now()
	failures := 0

	for _, src := range cfg.GetEnabledSources() {
		srcLog := log.With("zone", src.ZoneKey, "kind", src.Kind)
		srcLog.Info("Processing source", "provider", src.Provider)

		series, err := client.Run(src, time.Now())
		if err != nil {
			srcLog.Error(fmt.Sprintf("❌ Source failed: %v", err))

			failures++

			continue
		}

		srcLog.Info(fmt.Sprintf("✅ Normalized: %s", series.Report))

		result := validateSeries(seriesValidator, series)
		for _, warning := range result.Warnings {
			srcLog.Warn(fmt.Sprintf("⚠️  %s", warning))
		}

		if !result.IsValid {
			for _, vErr := range result.Errors {
				srcLog.Error("validation error", "index", vErr.Index, "field", vErr.Field, "message", vErr.Message)
			}

			if !cfg.Advanced.ContinueOnValidationErrors {
				failures++

				continue
			}
		}

		outputPath := cfg.GetOutputPath(src.ZoneKey, src.Kind)
		if err := crawler.SaveSeriesJSON(series, outputPath, cfg.Worker.Output.PrettyPrint); err != nil {
			srcLog.Error(fmt.Sprintf("❌ Save failed: %v", err))

			failures++

			continue
		}

		srcLog.Info(fmt.Sprintf("💾 Saved %d records to %s", series.Len(), outputPath))

		if cfg.Features.EnableTableReport {
			printTable(series)
		}
	}

	log.Info(fmt.Sprintf("✨ Worker complete in %v (%d failures)", time.Since(startTime), failures))

	if failures > 0 {
		os.Exit(1)
	}
}

func validateSeries(v *validator.SeriesValidator, series *crawler.Series) *validator.ValidationResult {
	switch series.Kind {
	case config.KindProduction:
		return v.ValidateProduction(series.Production)
	case config.KindConsumption:
		return v.ValidateConsumption(series.Consumption)
	default:
		return v.ValidateExchange(series.Exchange)
	}
}

func printTable(series *crawler.Series) {
	switch series.Kind {
	case config.KindProduction:
		fmt.Print(formatter.RenderProductionTable(series.Production))
	case config.KindConsumption:
		fmt.Print(formatter.RenderConsumptionTable(series.Consumption))
	default:
		fmt.Print(formatter.RenderExchangeTable(series.Exchange))
	}
}
