// Package main provides the normalizer command-line tool for transforming
// a local raw snapshot into a canonical record series.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gridfeed/internal/config"
	"gridfeed/internal/crawler"
	"gridfeed/internal/logger"
)

func main() {
	inputPath := flag.String("input", "", "Path to raw snapshot file")
	outputPath := flag.String("output", "", "Path to output JSON file")
	provider := flag.String("provider", "", "Provider: hydroquebec, caiso or cenace")
	zoneKey := flag.String("zone", "", "Zone key (e.g. CA-QC)")
	secondZone := flag.String("second-zone", "", "Second zone key (exchange only)")
	kind := flag.String("kind", config.KindProduction, "Data kind: production, consumption or exchange")
	timezone := flag.String("timezone", "", "IANA timezone of the zone")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" || *provider == "" || *zoneKey == "" || *timezone == "" {
		fmt.Println("Usage: normalizer -input <raw> -output <out.json> -provider <name> -zone <key> -timezone <tz>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	src := config.SourceConfig{
		ZoneKey:    *zoneKey,
		SecondZone: *secondZone,
		Kind:       *kind,
		Provider:   *provider,
		File:       *inputPath,
		Timezone:   *timezone,
		Enabled:    true,
	}

	info, err := os.Stat(*inputPath)
	if err != nil {
		log.Fatalf("Error reading input: %v\n", err)
	}

	fmt.Printf("📂 Reading: %s (%d bytes)\n", *inputPath, info.Size())

	client := crawler.NewClient(logger.NewLogger("info"))

	series, err := client.Run(src, time.Now())
	if err != nil {
		log.Fatalf("Error normalizing: %v\n", err)
	}

	fmt.Printf("📊 Normalized: %s\n", series.Report)

	if err := crawler.SaveSeriesJSON(series, *outputPath, true); err != nil {
		log.Fatalf("Error writing output: %v\n", err)
	}

	fmt.Printf("✅ Saved %d records to: %s\n", series.Len(), *outputPath)
}
