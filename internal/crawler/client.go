package crawler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gridfeed/internal/aggregator"
	"gridfeed/internal/config"
	"gridfeed/internal/crawler/parsers"
	"gridfeed/internal/logger"
	"gridfeed/internal/models"
	"gridfeed/internal/normalizer"
)

// ErrUnknownCanonicalMode is returned when a mode_table override names a
// mode outside the canonical taxonomy.
var ErrUnknownCanonicalMode = errors.New("unknown canonical mode in mode_table override")

// Series is the normalized output of one source: exactly one of the
// record slices is populated, matching the source's kind.
type Series struct {
	ZoneKey     string                     `json:"zoneKey"`
	Kind        string                     `json:"kind"`
	Source      string                     `json:"source"`
	Production  []models.ProductionRecord  `json:"production,omitempty"`
	Consumption []models.ConsumptionRecord `json:"consumption,omitempty"`
	Exchange    []models.ExchangeRecord    `json:"exchange,omitempty"`
	Report      normalizer.Report          `json:"-"`
}

// Len returns the number of records in the series.
func (s *Series) Len() int {
	return len(s.Production) + len(s.Consumption) + len(s.Exchange)
}

// Client ties fetching, parsing and normalization together for one source
// at a time. Independent sources share nothing, so clients may run in
// parallel as long as each invocation gets its own Run call arguments.
type Client struct {
	scraper *Scraper
	logger  *logger.Logger
}

// NewClient creates a crawler client with a default scraper.
func NewClient(log *logger.Logger) *Client {
	return &Client{
		scraper: NewScraper(),
		logger:  log,
	}
}

// NewClientWithScraper creates a crawler client with an injected scraper.
func NewClientWithScraper(scraper *Scraper, log *logger.Logger) *Client {
	return &Client{
		scraper: scraper,
		logger:  log,
	}
}

// FetchPayload returns the raw payload for a source: a local snapshot
// file, the configured URL, or the provider's built-in endpoint when the
// source names neither.
func (c *Client) FetchPayload(src config.SourceConfig) (string, error) {
	if src.IsLocalFile() {
		return c.scraper.ReadLocalFile(src.File)
	}

	url, err := Endpoint(src)
	if err != nil {
		return "", err
	}

	content, err := c.scraper.Scrape(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	return content, nil
}

// FetchRows fetches a source and parses its payload into raw rows.
func (c *Client) FetchRows(src config.SourceConfig) ([]models.RawRow, error) {
	content, err := c.FetchPayload(src)
	if err != nil {
		return nil, err
	}

	parser, err := parsers.ForSource(src)
	if err != nil {
		return nil, err
	}

	rows, err := parser.Rows(content, src.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s payload: %w", src.Provider, err)
	}

	return rows, nil
}

// Run executes the full pass for one source: fetch, parse, normalize,
// aggregate. The reference time anchors fragmented clock values and the
// future-timestamp filter.
func (c *Client) Run(src config.SourceConfig, reference time.Time) (*Series, error) {
	rows, err := c.FetchRows(src)
	if err != nil {
		return nil, err
	}

	return c.Normalize(src, reference, rows)
}

// Normalize runs the normalization pass over already-fetched rows.
func (c *Client) Normalize(src config.SourceConfig, reference time.Time, rows []models.RawRow) (*Series, error) {
	location, err := time.LoadLocation(src.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", src.Timezone, err)
	}

	pipelineCfg, rules, err := resolveTables(src)
	if err != nil {
		return nil, err
	}

	assembler := normalizer.NewAssembler(models.ZoneKey(src.ZoneKey), location, SourceLabel(src.Provider))
	filter := normalizer.NewFilterAt(rules, func() time.Time { return reference })
	pipeline := normalizer.NewPipeline(pipelineCfg, assembler, filter, c.logger)

	policy := aggregator.DuplicatePolicy(src.Policy())
	series := &Series{
		ZoneKey: src.ZoneKey,
		Kind:    src.Kind,
		Source:  SourceLabel(src.Provider),
	}

	switch src.Kind {
	case config.KindProduction:
		list := aggregator.NewProductionBreakdownList(policy, c.logger)
		series.Report = pipeline.ProcessProduction(reference, rows, list)
		series.Production = list.Records()
	case config.KindConsumption:
		list := aggregator.NewTotalConsumptionList(policy, c.logger)
		series.Report = pipeline.ProcessConsumption(reference, rows, list)
		series.Consumption = list.Records()
	case config.KindExchange:
		list := aggregator.NewExchangeList(policy, c.logger)
		series.Report = pipeline.ProcessExchange(reference, rows, models.ZoneKey(src.SecondZone), list)
		series.Exchange = list.Records()
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrSourceMissingKind, src.Kind)
	}

	return series, nil
}

// SaveSeriesJSON writes a normalized series to disk, creating parent
// directories as needed.
func SaveSeriesJSON(series *Series, outputPath string, pretty bool) error {
	var (
		data []byte
		err  error
	)

	if pretty {
		data, err = json.MarshalIndent(series, "", "  ")
	} else {
		data, err = json.Marshal(series)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal series: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// SourceLabel returns the attribution recorded on records from a provider.
func SourceLabel(provider string) string {
	switch provider {
	case config.ProviderHydroQuebec:
		return "hydroquebec.com"
	case config.ProviderCaiso:
		return "caiso.com"
	case config.ProviderCenace:
		return "cenace.gob.mx"
	}

	return provider
}

// resolveTables builds the pipeline tables for a source, starting from the
// provider's built-in tables and applying config overrides.
func resolveTables(src config.SourceConfig) (normalizer.PipelineConfig, normalizer.Rules, error) {
	cfg := normalizer.PipelineConfig{
		Modes:            normalizer.DefaultModes(src.Provider),
		Artifacts:        normalizer.DefaultArtifacts(src.Provider),
		ConsumptionField: normalizer.DefaultConsumptionField(src.Provider),
		NetFlowField:     normalizer.DefaultNetFlowField(src.Provider),
	}
	rules := normalizer.DefaultRules(src.Provider, src.Kind)

	opts := src.Normalization
	if opts == nil {
		return cfg, rules, nil
	}

	if len(opts.ModeTable) > 0 {
		table := make(normalizer.ModeTable, len(opts.ModeTable))

		for field, name := range opts.ModeTable {
			mode := models.Mode(name)
			if !mode.IsValid() {
				return cfg, rules, fmt.Errorf("%w: %q", ErrUnknownCanonicalMode, name)
			}

			table[field] = mode
		}

		cfg.Modes = table
	}

	if len(opts.ArtifactFields) > 0 {
		artifacts := make(normalizer.ArtifactFields, len(opts.ArtifactFields))
		for _, field := range opts.ArtifactFields {
			artifacts[field] = true
		}

		cfg.Artifacts = artifacts
	}

	if opts.ConsumptionField != "" {
		cfg.ConsumptionField = opts.ConsumptionField
	}

	if opts.NetFlowField != "" {
		cfg.NetFlowField = opts.NetFlowField
	}

	if opts.TotalField != "" {
		rules.TotalField = opts.TotalField
	}

	if opts.RequiredField != "" {
		rules.RequiredField = opts.RequiredField
	}

	return cfg, rules, nil
}
