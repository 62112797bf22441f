package parsers

import (
	"errors"
	"testing"
)

const caisoSample = `Time,Solar,Wind,Natural Gas,Large Hydro,Batteries
00:00,-3,1200,9800,1450,35
00:05,-2,1185,9750,1430,-120
`

func TestCaiso_Rows(t *testing.T) {
	p := &Caiso{}

	rows, err := p.Rows(caisoSample, "production")
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	if rows[0].Clock != "00:00" {
		t.Errorf("Clock = %q, want 00:00", rows[0].Clock)
	}

	if !rows[0].HasClock() {
		t.Error("csv rows carry fragmented clocks, HasClock must be true")
	}

	// Headers are lowercased.
	if got, ok := rows[0].Value("natural gas"); !ok || got != 9800 {
		t.Errorf("natural gas = %v (%v), want 9800", got, ok)
	}

	if got, ok := rows[1].Value("batteries"); !ok || got != -120 {
		t.Errorf("batteries = %v (%v), want -120", got, ok)
	}
}

func TestCaiso_Rows_UnparsableCellOmitted(t *testing.T) {
	p := &Caiso{}

	rows, err := p.Rows("Time,Wind,Solar\n00:00,n/a,12\n", "production")
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	if _, ok := rows[0].Value("wind"); ok {
		t.Error("unparsable cell must be omitted from the value map")
	}

	if got, ok := rows[0].Value("solar"); !ok || got != 12 {
		t.Errorf("solar = %v (%v), want 12", got, ok)
	}
}

func TestCaiso_Rows_SentinelClockPreserved(t *testing.T) {
	p := &Caiso{}

	rows, err := p.Rows("Time,Wind\nOO:OO,500\n", "production")
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	// The parser materializes the row as-is; the unreadable clock is
	// dropped during timestamp reconstruction.
	if rows[0].Clock != "OO:OO" {
		t.Errorf("Clock = %q, want OO:OO", rows[0].Clock)
	}
}

func TestCaiso_Rows_TrailingMidnight(t *testing.T) {
	content := "Time,Wind\n23:50,1180\n23:55,1175\n00:00,0\n"

	kept, err := (&Caiso{}).Rows(content, "production")
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	if len(kept) != 3 {
		t.Errorf("rows without sentinel handling = %d, want 3", len(kept))
	}

	dropped, err := (&Caiso{DropTrailingMidnight: true}).Rows(content, "production")
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	if len(dropped) != 2 {
		t.Fatalf("rows with sentinel handling = %d, want 2", len(dropped))
	}

	if dropped[len(dropped)-1].Clock != "23:55" {
		t.Errorf("last clock = %q, want 23:55", dropped[len(dropped)-1].Clock)
	}
}

func TestCaiso_Rows_MidnightInMiddleKept(t *testing.T) {
	content := "Time,Wind\n00:00,1200\n00:05,1185\n"

	rows, err := (&Caiso{DropTrailingMidnight: true}).Rows(content, "production")
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	// Only a trailing midnight row is a placeholder.
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rows))
	}
}

func TestCaiso_Rows_NoTimeColumn(t *testing.T) {
	if _, err := (&Caiso{}).Rows("Wind,Solar\n1200,12\n", "production"); !errors.Is(err, ErrMissingTimeColumn) {
		t.Errorf("Rows error = %v, want ErrMissingTimeColumn", err)
	}
}

func TestCaiso_Rows_EmptyPayload(t *testing.T) {
	if _, err := (&Caiso{}).Rows("", "production"); !errors.Is(err, ErrMissingHeader) {
		t.Errorf("Rows error = %v, want ErrMissingHeader", err)
	}
}
