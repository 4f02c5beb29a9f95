// Package cache implements the expression-level styling cache: content
// hashing, pluggable hash stores and the pre-filter / recorder pair that
// lets already-styled top-level expressions skip the transformer.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Store is the hash store the engine consumes. An entry carries no
// content; existence of the hash is the whole record, which makes
// concurrent writers of the same hash safe.
type Store interface {
	// Lookup reports whether the hash has been recorded
	Lookup(hash string) (bool, error)

	// Record stores the hash
	Record(hash string) error

	// Clear removes all recorded hashes
	Clear() error

	// Info describes the store for diagnostics
	Info() (Info, error)
}

// Info describes a cache store
type Info struct {
	Backend string
	Path    string
	Entries int
}

// Fingerprint hashes expression text together with the style-guide
// identity, so a style change invalidates every entry.
func Fingerprint(text, styleID string) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(styleID))
	return hex.EncodeToString(h.Sum(nil))
}
