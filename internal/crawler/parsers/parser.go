// Package parsers converts fetched provider payloads into raw rows. Each
// provider publishes a different wire format (nested JSON arrays, wide CSV
// tables, HTML fragments); a parser's only job is to materialize the rows,
// normalization happens downstream.
package parsers

import (
	"errors"
	"fmt"
	"time"

	"gridfeed/internal/config"
	"gridfeed/internal/models"
)

// ErrUnknownProvider is returned when no parser exists for a provider.
var ErrUnknownProvider = errors.New("unknown provider")

// Parser turns one fetched payload into a finite raw row sequence for a
// data kind.
type Parser interface {
	Rows(content string, kind string) ([]models.RawRow, error)
}

// ForSource builds the parser configured for a source.
func ForSource(src config.SourceConfig) (Parser, error) {
	location, err := time.LoadLocation(src.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", src.Timezone, err)
	}

	switch src.Provider {
	case config.ProviderHydroQuebec:
		return &HydroQuebec{Location: location}, nil
	case config.ProviderCaiso:
		dropTrailing := src.Normalization != nil && src.Normalization.TrailingMidnightSentinel

		return &Caiso{DropTrailingMidnight: dropTrailing}, nil
	case config.ProviderCenace:
		return &Cenace{Location: location}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, src.Provider)
}
