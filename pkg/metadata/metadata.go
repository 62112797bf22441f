// Package metadata signs fetched raw snapshots with a sidecar file so
// later normalization runs can detect tampered or mislabeled payloads.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SidecarSuffix is appended to a snapshot path to name its sidecar.
const SidecarSuffix = ".meta"

// Sidecar verification errors.
var (
	ErrNoHashFound  = errors.New("no hash found in sidecar")
	ErrHashMismatch = errors.New("hash mismatch")
)

// Metadata describes one raw snapshot.
type Metadata struct {
	FetchedAt time.Time
	Source    string
	Hash      string
	Verified  bool
}

// SidecarPath returns the sidecar path for a snapshot path.
func SidecarPath(snapshotPath string) string {
	return snapshotPath + SidecarSuffix
}

// CalculateHash computes the SHA-256 hash of snapshot content.
func CalculateHash(content []byte) string {
	hash := sha256.Sum256(content)

	return hex.EncodeToString(hash[:])
}

// Sign builds the sidecar body for a snapshot.
func Sign(content []byte, source string, verified bool) string {
	verifiedStr := "FALSE"
	if verified {
		verifiedStr = "TRUE"
	}

	return fmt.Sprintf("SOURCE: %s\nFETCHED_AT: %s\nHASH: %s\nVERIFIED: %s\n",
		source,
		time.Now().UTC().Format(time.RFC3339),
		CalculateHash(content),
		verifiedStr,
	)
}

// Parse reads a sidecar body.
func Parse(sidecar string) *Metadata {
	meta := &Metadata{}

	for _, line := range strings.Split(sidecar, "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "SOURCE":
			meta.Source = val
		case "FETCHED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.FetchedAt = t
			}
		case "HASH":
			meta.Hash = val
		case "VERIFIED":
			meta.Verified = strings.EqualFold(val, "TRUE")
		}
	}

	return meta
}

// Verify checks snapshot content against its sidecar hash.
func Verify(content []byte, sidecar string) (bool, error) {
	meta := Parse(sidecar)

	if meta.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(content)
	if calculated != meta.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return true, nil
}
