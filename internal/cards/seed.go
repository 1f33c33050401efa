package cards

import (
	"crypto/sha256"
	"fmt"

	"github.com/google/uuid"
)

// SeedKind discriminates the three ways a hand's shuffle can be seeded.
type SeedKind string

const (
	SeedChosen   SeedKind = "chosen"
	SeedRandom   SeedKind = "random"
	SeedRedacted SeedKind = "redacted"
)

// Seed identifies the deterministic shuffle source for a hand. Random
// seeds carry a generated UUID so the deal can be replayed, but are
// withheld from non-privileged observers (redacted) until the hand ends.
type Seed struct {
	Kind  SeedKind `json:"type"`
	Value string   `json:"value,omitempty"`
}

// NewChosen builds a Seed from a caller-supplied string (e.g. a test
// fixture name), reproducible and never redacted.
func NewChosen(value string) Seed {
	return Seed{Kind: SeedChosen, Value: value}
}

// NewRandom builds a fresh random seed backed by a UUIDv4.
func NewRandom() Seed {
	return Seed{Kind: SeedRandom, Value: uuid.NewString()}
}

// Redact returns the observer-safe form of the seed: random seeds become
// Redacted, chosen seeds are left as-is since they carry no hidden
// information once the caller already knows the fixture name.
func (s Seed) Redact() Seed {
	if s.Kind == SeedRandom {
		return Seed{Kind: SeedRedacted}
	}
	return s
}

// Bytes hashes the seed to a 32-byte value that deterministically
// permutes the deck. Panics if called on a Redacted seed, mirroring the
// invariant that redacted seeds never reach deal logic.
func (s Seed) Bytes() [32]byte {
	if s.Kind == SeedRedacted {
		panic("cards: cannot derive deal bytes from a redacted seed")
	}
	return sha256.Sum256([]byte(s.Value))
}

func (s Seed) String() string {
	if s.Kind == SeedRedacted {
		return "redacted"
	}
	return fmt.Sprintf("%s:%s", s.Kind, s.Value)
}
