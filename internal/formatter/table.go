// Package formatter renders normalized record series as aligned
// plain-text tables for CLI reports.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"gridfeed/internal/models"
)

const timeColumnLayout = "2006-01-02 15:04 MST"

// RenderProductionTable renders production records as an aligned table.
// Mode columns are the union of modes seen across the series, sorted.
func RenderProductionTable(records []models.ProductionRecord) string {
	modes := collectModes(records)

	header := []string{"datetime", "zone"}
	for _, mode := range modes {
		header = append(header, string(mode))
	}

	header = append(header, "storage")

	rows := [][]string{header}

	for _, rec := range records {
		row := []string{rec.Datetime.Format(timeColumnLayout), string(rec.ZoneKey)}

		for _, mode := range modes {
			value, ok := rec.Production[mode]
			if !ok {
				row = append(row, "-")

				continue
			}

			row = append(row, formatMW(value))
		}

		row = append(row, formatStorage(rec.Storage))
		rows = append(rows, row)
	}

	return renderTable(rows)
}

// RenderConsumptionTable renders consumption records as an aligned table.
func RenderConsumptionTable(records []models.ConsumptionRecord) string {
	rows := [][]string{{"datetime", "zone", "consumption"}}

	for _, rec := range records {
		rows = append(rows, []string{
			rec.Datetime.Format(timeColumnLayout),
			string(rec.ZoneKey),
			formatMW(rec.Consumption),
		})
	}

	return renderTable(rows)
}

// RenderExchangeTable renders exchange records as an aligned table.
func RenderExchangeTable(records []models.ExchangeRecord) string {
	rows := [][]string{{"datetime", "pair", "netFlow"}}

	for _, rec := range records {
		rows = append(rows, []string{
			rec.Datetime.Format(timeColumnLayout),
			rec.SortedZoneKeys,
			formatMW(rec.NetFlow),
		})
	}

	return renderTable(rows)
}

func collectModes(records []models.ProductionRecord) []models.Mode {
	seen := make(map[models.Mode]bool)

	for _, rec := range records {
		for mode := range rec.Production {
			seen[mode] = true
		}
	}

	modes := make([]models.Mode, 0, len(seen))
	for mode := range seen {
		modes = append(modes, mode)
	}

	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })

	return modes
}

func formatMW(value float64) string {
	return fmt.Sprintf("%.1f", value)
}

func formatStorage(storage models.StorageMix) string {
	if len(storage) == 0 {
		return "-"
	}

	modes := make([]models.Mode, 0, len(storage))
	for mode := range storage {
		modes = append(modes, mode)
	}

	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })

	parts := make([]string, 0, len(modes))
	for _, mode := range modes {
		parts = append(parts, fmt.Sprintf("%s=%s", mode, formatMW(storage[mode])))
	}

	return strings.Join(parts, " ")
}

// renderTable pads cells to the column's display width and joins rows
// with a separator line under the header.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i := 0; i < len(row) && i < colCount; i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	var sb strings.Builder

	for rowIdx, row := range rows {
		sb.WriteString("|")

		for i := 0; i < colCount; i++ {
			content := ""
			if i < len(row) {
				content = row[i]
			}

			sb.WriteString(" ")
			sb.WriteString(content)

			padding := colWidths[i] - runewidth.StringWidth(content)
			if padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		sb.WriteString("\n")

		if rowIdx == 0 {
			sb.WriteString("|")

			for i := 0; i < colCount; i++ {
				sb.WriteString(" ")
				sb.WriteString(strings.Repeat("-", colWidths[i]))
				sb.WriteString(" |")
			}

			sb.WriteString("\n")
		}
	}

	return sb.String()
}
