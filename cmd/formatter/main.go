// Package main provides the formatter command-line tool that renders a
// normalized series file as an aligned table.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gridfeed/internal/config"
	"gridfeed/internal/crawler"
	"gridfeed/internal/formatter"
)

func main() {
	inputPath := flag.String("input", "", "Path to normalized series JSON file")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: formatter -input <series.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Error reading file: %v\n", err)
	}

	var series crawler.Series
	if err := json.Unmarshal(data, &series); err != nil {
		log.Fatalf("Error parsing series: %v\n", err)
	}

	fmt.Printf("📊 %s %s from %s (%d records)\n\n", series.ZoneKey, series.Kind, series.Source, series.Len())

	switch series.Kind {
	case config.KindProduction:
		fmt.Print(formatter.RenderProductionTable(series.Production))
	case config.KindConsumption:
		fmt.Print(formatter.RenderConsumptionTable(series.Consumption))
	case config.KindExchange:
		fmt.Print(formatter.RenderExchangeTable(series.Exchange))
	default:
		log.Fatalf("Unknown series kind: %s\n", series.Kind)
	}
}
