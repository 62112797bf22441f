package metadata

import (
	"errors"
	"strings"
	"testing"
)

func TestSignAndParse(t *testing.T) {
	content := []byte(`{"details": []}`)

	sidecar := Sign(content, "hydroquebec.com", true)

	meta := Parse(sidecar)
	if meta.Source != "hydroquebec.com" {
		t.Errorf("Source = %s, want hydroquebec.com", meta.Source)
	}

	if meta.Hash != CalculateHash(content) {
		t.Errorf("Hash = %s, want %s", meta.Hash, CalculateHash(content))
	}

	if !meta.Verified {
		t.Error("Verified = false, want true")
	}

	if meta.FetchedAt.IsZero() {
		t.Error("FetchedAt not parsed")
	}
}

func TestVerify(t *testing.T) {
	content := []byte("Time,Wind\n00:00,1200\n")
	sidecar := Sign(content, "caiso.com", false)

	ok, err := Verify(content, sidecar)
	if err != nil {
		t.Fatalf("Verify returned unexpected error: %v", err)
	}

	if !ok {
		t.Error("Verify = false, want true")
	}
}

func TestVerify_TamperedContent(t *testing.T) {
	content := []byte("Time,Wind\n00:00,1200\n")
	sidecar := Sign(content, "caiso.com", false)

	tampered := []byte("Time,Wind\n00:00,9999\n")

	if _, err := Verify(tampered, sidecar); !errors.Is(err, ErrHashMismatch) {
		t.Errorf("Verify error = %v, want ErrHashMismatch", err)
	}
}

func TestVerify_NoHash(t *testing.T) {
	if _, err := Verify([]byte("content"), "SOURCE: somewhere\n"); !errors.Is(err, ErrNoHashFound) {
		t.Errorf("Verify error = %v, want ErrNoHashFound", err)
	}
}

func TestParse_IgnoresUnknownLines(t *testing.T) {
	sidecar := "SOURCE: caiso.com\nGARBAGE\nEXTRA: field\nVERIFIED: TRUE\n"

	meta := Parse(sidecar)
	if meta.Source != "caiso.com" {
		t.Errorf("Source = %s, want caiso.com", meta.Source)
	}

	if !meta.Verified {
		t.Error("Verified = false, want true")
	}
}

func TestSidecarPath(t *testing.T) {
	got := SidecarPath("data/raw/CA-QC/production.json")
	if !strings.HasSuffix(got, ".json.meta") {
		t.Errorf("SidecarPath = %s, want .json.meta suffix", got)
	}
}

func TestCalculateHash_Deterministic(t *testing.T) {
	a := CalculateHash([]byte("payload"))
	b := CalculateHash([]byte("payload"))

	if a != b {
		t.Errorf("hash not deterministic: %s vs %s", a, b)
	}

	if a == CalculateHash([]byte("other")) {
		t.Error("distinct payloads hashed identically")
	}
}
