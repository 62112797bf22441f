package parsers

import (
	"testing"
	"time"
)

const hydroQuebecSample = `{
  "dateMAJ": "2020-01-20 14:45:00",
  "details": [
    {
      "date": "2020-01-20 14:00:00",
      "valeurs": {
        "hydraulique": 31245.0,
        "eolien": 2310.0,
        "total": 33555.0,
        "demandeTotal": 34120.0
      }
    },
    {
      "date": "2020-01-20 14:15:00",
      "valeurs": {"total": 0.0}
    }
  ]
}`

func hydroQuebecParser(t *testing.T) *HydroQuebec {
	t.Helper()

	loc, err := time.LoadLocation("America/Montreal")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	return &HydroQuebec{Location: loc}
}

func TestHydroQuebec_Rows(t *testing.T) {
	p := hydroQuebecParser(t)

	rows, err := p.Rows(hydroQuebecSample, "production")
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	want := time.Date(2020, 1, 20, 14, 0, 0, 0, p.Location)
	if !rows[0].Datetime.Equal(want) {
		t.Errorf("Datetime = %s, want %s", rows[0].Datetime, want)
	}

	if rows[0].HasClock() {
		t.Error("row carries a full timestamp, HasClock must be false")
	}

	if got, ok := rows[0].Value("hydraulique"); !ok || got != 31245.0 {
		t.Errorf("hydraulique = %v (%v), want 31245", got, ok)
	}

	// The placeholder element is materialized as-is; filtering happens
	// downstream.
	if got, ok := rows[1].Value("total"); !ok || got != 0 {
		t.Errorf("total = %v (%v), want 0", got, ok)
	}
}

func TestHydroQuebec_Rows_UnreadableElementDate(t *testing.T) {
	p := hydroQuebecParser(t)

	payload := `{"details": [
		{"date": "not a date", "valeurs": {"hydraulique": 100}},
		{"date": "2020-01-20 14:00:00", "valeurs": {"hydraulique": 200}}
	]}`

	rows, err := p.Rows(payload, "production")
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (unreadable element skipped)", len(rows))
	}

	if got, _ := rows[0].Value("hydraulique"); got != 200 {
		t.Errorf("hydraulique = %v, want 200", got)
	}
}

func TestHydroQuebec_Rows_RFC3339Fallback(t *testing.T) {
	p := hydroQuebecParser(t)

	payload := `{"details": [{"date": "2020-01-20T14:00:00Z", "valeurs": {"eolien": 2310}}]}`

	rows, err := p.Rows(payload, "production")
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	want := time.Date(2020, 1, 20, 14, 0, 0, 0, time.UTC)
	if !rows[0].Datetime.Equal(want) {
		t.Errorf("Datetime = %s, want %s", rows[0].Datetime, want)
	}
}

func TestHydroQuebec_Rows_BadEnvelope(t *testing.T) {
	p := hydroQuebecParser(t)

	if _, err := p.Rows("<html>maintenance page</html>", "production"); err == nil {
		t.Error("Rows expected error for undecodable envelope")
	}
}

func TestHydroQuebec_Rows_EmptyDetails(t *testing.T) {
	p := hydroQuebecParser(t)

	rows, err := p.Rows(`{"details": []}`, "production")
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}
