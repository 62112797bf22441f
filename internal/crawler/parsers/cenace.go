package parsers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"gridfeed/internal/models"
	"gridfeed/pkg/utils"
)

// ErrExchangeValueNotFound is returned when the exchange value cannot be
// located in the scraped page.
var ErrExchangeValueNotFound = errors.New("exchange value not found in page")

const cenaceExchangeSelector = "div#IntercambioUSA-BCA"

// Cenace scrapes the CENACE regional demand page for the USA-BCA
// interconnection value. The page publishes a single current reading, so
// the row carries the fetch time; a negative value indicates flow from
// California into Baja California.
type Cenace struct {
	Location *time.Location
	// Now overrides the fetch-time clock, for tests.
	Now func() time.Time
}

// Rows extracts the single net-flow reading from the HTML fragment. The
// page renders the minus sign as a unicode hyphen, which is replaced
// before parsing.
func (p *Cenace) Rows(content string, kind string) ([]models.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse cenace page: %w", err)
	}

	sel := doc.Find(cenaceExchangeSelector)
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrExchangeValueNotFound, cenaceExchangeSelector)
	}

	text := utils.CleanNumeric(sel.First().Text())

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: unparsable value %q", ErrExchangeValueNotFound, text)
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	return []models.RawRow{
		{
			Datetime: now().In(p.Location),
			Values:   map[string]float64{"netflow": value},
		},
	}, nil
}
