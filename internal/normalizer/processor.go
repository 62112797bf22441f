package normalizer

import (
	"fmt"
	"time"

	"gridfeed/internal/aggregator"
	"gridfeed/internal/logger"
	"gridfeed/internal/models"
)

// DiscardDuplicate marks rows whose records were rejected by the output
// list's duplicate policy.
const DiscardDuplicate DiscardReason = "duplicate_record"

// Report summarizes one normalization pass. Callers compare processed and
// discarded counts to detect systematic upstream format drift: a pass that
// discards every row usually means the provider changed its format.
type Report struct {
	Reasons   map[DiscardReason]int
	Processed int
	Discarded int
}

func newReport() Report {
	return Report{Reasons: make(map[DiscardReason]int)}
}

func (r *Report) discard(reason DiscardReason) {
	r.Discarded++
	r.Reasons[reason]++
}

// String returns a one-line summary of the pass.
func (r Report) String() string {
	return fmt.Sprintf("Rows: %d processed, %d discarded %v", r.Processed, r.Discarded, r.Reasons)
}

// PipelineConfig holds the per-source lookup tables and field names the
// pipeline normalizes with. The tables are data, not behavior: the same
// pipeline serves every provider.
type PipelineConfig struct {
	Modes            ModeTable
	Artifacts        ArtifactFields
	ConsumptionField string
	NetFlowField     string
}

// Pipeline runs the normalization pass: map, correct, assemble, filter,
// append. A pass is single-threaded and holds no state between runs; a
// malformed or incomplete row is dropped and never aborts the remaining
// rows.
type Pipeline struct {
	assembler *Assembler
	filter    *Filter
	logger    *logger.Logger
	cfg       PipelineConfig
}

// NewPipeline creates a pipeline over the given assembler and filter.
func NewPipeline(cfg PipelineConfig, assembler *Assembler, filter *Filter, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		assembler: assembler,
		filter:    filter,
		logger:    log,
	}
}

// ProcessProduction normalizes production rows into list. Raw fields are
// visited in the mode table's deterministic order; fields mapping to the
// same canonical mode accumulate additively.
func (p *Pipeline) ProcessProduction(reference time.Time, rows []models.RawRow, list *aggregator.ProductionBreakdownList) Report {
	report := newReport()

	for _, row := range rows {
		ts, err := p.assembler.RowTimestamp(reference, row)
		if err != nil {
			p.logger.Warn("dropping row with unreadable timestamp", "error", err)
			report.discard(DiscardMalformedClock)

			continue
		}

		if verdict := p.filter.Check(ts, row); !verdict.Keep {
			report.discard(verdict.Reason)

			continue
		}

		production := models.ProductionMix{}
		storage := models.StorageMix{}

		for _, field := range p.cfg.Modes.Fields() {
			value, ok := row.Value(field)
			if !ok {
				continue
			}

			mode := p.cfg.Modes.Lookup(field)

			contribution := Correct(mode, value, p.cfg.Artifacts[field])
			if contribution.HasProduction {
				production.Add(mode, contribution.Production)
			}

			if contribution.HasStorage {
				storage.Add(mode, contribution.Storage)
			}
		}

		if err := list.Append(p.assembler.Production(ts, production, storage)); err != nil {
			report.discard(DiscardDuplicate)

			continue
		}

		report.Processed++
	}

	return report
}

// ProcessConsumption normalizes total-demand rows into list.
func (p *Pipeline) ProcessConsumption(reference time.Time, rows []models.RawRow, list *aggregator.TotalConsumptionList) Report {
	report := newReport()

	for _, row := range rows {
		ts, err := p.assembler.RowTimestamp(reference, row)
		if err != nil {
			p.logger.Warn("dropping row with unreadable timestamp", "error", err)
			report.discard(DiscardMalformedClock)

			continue
		}

		if verdict := p.filter.Check(ts, row); !verdict.Keep {
			report.discard(verdict.Reason)

			continue
		}

		consumption, ok := row.Value(p.cfg.ConsumptionField)
		if !ok {
			report.discard(DiscardMissingField)

			continue
		}

		if err := list.Append(p.assembler.Consumption(ts, consumption)); err != nil {
			report.discard(DiscardDuplicate)

			continue
		}

		report.Processed++
	}

	return report
}

// ProcessExchange normalizes net-flow rows between the pipeline's zone and
// the given neighbour into list.
func (p *Pipeline) ProcessExchange(reference time.Time, rows []models.RawRow, neighbour models.ZoneKey, list *aggregator.ExchangeList) Report {
	report := newReport()

	for _, row := range rows {
		ts, err := p.assembler.RowTimestamp(reference, row)
		if err != nil {
			p.logger.Warn("dropping row with unreadable timestamp", "error", err)
			report.discard(DiscardMalformedClock)

			continue
		}

		if verdict := p.filter.Check(ts, row); !verdict.Keep {
			report.discard(verdict.Reason)

			continue
		}

		netFlow, ok := row.Value(p.cfg.NetFlowField)
		if !ok {
			report.discard(DiscardMissingField)

			continue
		}

		if err := list.Append(p.assembler.Exchange(neighbour, ts, netFlow)); err != nil {
			report.discard(DiscardDuplicate)

			continue
		}

		report.Processed++
	}

	return report
}
