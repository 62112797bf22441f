// Package main provides the signer command-line tool for signing and
// verifying raw snapshot sidecars.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gridfeed/pkg/metadata"
)

func main() {
	inputPath := flag.String("input", "", "Path to snapshot file")
	source := flag.String("source", "", "Source attribution to record when signing")
	verify := flag.Bool("verify", false, "Verify the existing sidecar instead of signing")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: signer -input <snapshot> [-verify] [-source <label>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	content, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Error reading file: %v\n", err)
	}

	sidecarPath := metadata.SidecarPath(*inputPath)

	if *verify {
		sidecar, err := os.ReadFile(sidecarPath)
		if err != nil {
			log.Fatalf("Error reading sidecar: %v\n", err)
		}

		if _, err := metadata.Verify(content, string(sidecar)); err != nil {
			log.Fatalf("❌ Verification failed: %v\n", err)
		}

		meta := metadata.Parse(string(sidecar))
		fmt.Printf("✅ Verified: %s (source %s, fetched %s)\n", *inputPath, meta.Source, meta.FetchedAt)

		return
	}

	sidecar := metadata.Sign(content, *source, true)
	if err := os.WriteFile(sidecarPath, []byte(sidecar), 0644); err != nil {
		log.Fatalf("Error writing sidecar: %v\n", err)
	}

	fmt.Printf("✅ Signed: %s\n", sidecarPath)
}
