package parsers

import (
	"encoding/json"
	"fmt"
	"time"

	"gridfeed/internal/models"
)

const hydroQuebecTimeLayout = "2006-01-02 15:04:05"

// HydroQuebec parses the Hydro-Québec open-data JSON feed. Production and
// consumption share the same envelope: a "details" array of elements each
// carrying a full local timestamp and a "valeurs" value map.
type HydroQuebec struct {
	Location *time.Location
}

type hydroQuebecPayload struct {
	Details []struct {
		Date    string             `json:"date"`
		Valeurs map[string]float64 `json:"valeurs"`
	} `json:"details"`
}

// Rows materializes the feed's elements as raw rows. Timestamps are full,
// so the fragmented-clock path is bypassed. Elements with unreadable
// timestamps are skipped; the envelope failing to decode is an error.
func (p *HydroQuebec) Rows(content string, kind string) ([]models.RawRow, error) {
	var payload hydroQuebecPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode hydroquebec payload: %w", err)
	}

	rows := make([]models.RawRow, 0, len(payload.Details))

	for _, elem := range payload.Details {
		ts, err := p.parseDate(elem.Date)
		if err != nil {
			continue
		}

		rows = append(rows, models.RawRow{
			Datetime: ts,
			Values:   elem.Valeurs,
		})
	}

	return rows, nil
}

func (p *HydroQuebec) parseDate(value string) (time.Time, error) {
	if ts, err := time.ParseInLocation(hydroQuebecTimeLayout, value, p.Location); err == nil {
		return ts, nil
	}

	return time.Parse(time.RFC3339, value)
}
