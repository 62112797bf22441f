package integration

import (
	"path/filepath"
	"testing"
	"time"

	"gridfeed/internal/config"
	"gridfeed/internal/crawler"
	"gridfeed/internal/logger"
)

func fixturePath(name string) string {
	return filepath.Join("..", "..", "data", "fixtures", name)
}

func testClient() *crawler.Client {
	return crawler.NewClient(logger.NewLogger("error"))
}

// Reference instant later than every fixture timestamp.
var fixtureNow = time.Date(2020, 1, 20, 23, 0, 0, 0, time.UTC)

func TestCrawler_LocalCaisoSnapshot(t *testing.T) {
	src := config.SourceConfig{
		ZoneKey:  "US-CAL-CISO",
		Kind:     config.KindProduction,
		Provider: config.ProviderCaiso,
		File:     fixturePath("caiso_fuelsource.csv"),
		Timezone: "America/Los_Angeles",
	}

	rows, err := testClient().FetchRows(src)
	if err != nil {
		t.Fatalf("FetchRows failed: %v", err)
	}

	// Header excluded, trailing placeholder row still present without the
	// sentinel flag.
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	if rows[0].Clock != "00:00" {
		t.Errorf("first clock = %q, want 00:00", rows[0].Clock)
	}

	if got, ok := rows[0].Value("natural gas"); !ok || got != 9800 {
		t.Errorf("natural gas = %v (%v), want 9800", got, ok)
	}
}

func TestCrawler_LocalHydroQuebecSnapshot(t *testing.T) {
	src := config.SourceConfig{
		ZoneKey:  "CA-QC",
		Kind:     config.KindProduction,
		Provider: config.ProviderHydroQuebec,
		File:     fixturePath("hydroquebec_production.json"),
		Timezone: "America/Montreal",
	}

	rows, err := testClient().FetchRows(src)
	if err != nil {
		t.Fatalf("FetchRows failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	if rows[0].HasClock() {
		t.Error("hydroquebec rows carry full timestamps")
	}

	if got, ok := rows[0].Value("hydraulique"); !ok || got != 31245 {
		t.Errorf("hydraulique = %v (%v), want 31245", got, ok)
	}
}

func TestCrawler_MissingSnapshot(t *testing.T) {
	src := config.SourceConfig{
		ZoneKey:  "CA-QC",
		Kind:     config.KindProduction,
		Provider: config.ProviderHydroQuebec,
		File:     fixturePath("does_not_exist.json"),
		Timezone: "America/Montreal",
	}

	if _, err := testClient().Run(src, fixtureNow); err == nil {
		t.Error("Run expected error for missing snapshot")
	}
}
