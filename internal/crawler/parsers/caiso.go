package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gridfeed/internal/models"
	"gridfeed/pkg/utils"
)

// CAISO CSV parsing errors.
var (
	ErrMissingHeader     = errors.New("csv payload has no header row")
	ErrMissingTimeColumn = errors.New("csv payload has no time column")
)

// Caiso parses the CAISO outlook CSV tables (fuelsource.csv,
// netdemand.csv): a "Time" column of fragmented "HH:MM" values followed by
// wide numeric columns. Column names are lowercased so the built-in mode
// table applies regardless of header casing.
type Caiso struct {
	// DropTrailingMidnight drops a final "00:00" row. Some CAISO feeds
	// publish the not-yet-reported last slot as a placeholder midnight row
	// instead of omitting it. The feed's other sentinel, a literal "OO:OO"
	// time, needs no handling here: it fails clock reconstruction and is
	// dropped by the pass.
	DropTrailingMidnight bool
}

// Rows materializes the CSV records as raw rows carrying clock fragments.
// Cells that do not parse as numbers are omitted from the value map, which
// downstream treats as a missing field.
func (p *Caiso) Rows(content string, kind string) ([]models.RawRow, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv payload: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrMissingHeader
	}

	header := make([]string, len(records[0]))
	timeIdx := -1

	for i, col := range records[0] {
		header[i] = utils.NormalizeFieldName(col)
		if header[i] == "time" {
			timeIdx = i
		}
	}

	if timeIdx == -1 {
		return nil, ErrMissingTimeColumn
	}

	rows := make([]models.RawRow, 0, len(records)-1)

	for _, record := range records[1:] {
		values := make(map[string]float64, len(record))

		for i, cell := range record {
			if i == timeIdx || i >= len(header) {
				continue
			}

			value, parseErr := strconv.ParseFloat(utils.CleanNumeric(cell), 64)
			if parseErr != nil {
				continue
			}

			values[header[i]] = value
		}

		clock := ""
		if timeIdx < len(record) {
			clock = strings.TrimSpace(record[timeIdx])
		}

		rows = append(rows, models.RawRow{
			Clock:  clock,
			Values: values,
		})
	}

	if p.DropTrailingMidnight && len(rows) > 0 && rows[len(rows)-1].Clock == "00:00" {
		rows = rows[:len(rows)-1]
	}

	return rows, nil
}
