package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// IDFunc generates identifiers for graphs and vertex types created without
// an explicit id. The prefix names the kind of thing being identified
// (e.g. "m" for graphs, "vtype" for vertex types).
//
// Generators are injected rather than drawn from global randomness so
// tests can pin ids with [SequenceIDs] while production uses [RandomIDs].
type IDFunc func(prefix string) string

// RandomIDs returns a generator producing "<prefix>-<8 hex chars>" from a
// random UUID. Ids are unique for any practical number of calls.
func RandomIDs() IDFunc {
	return func(prefix string) string {
		return prefix + "-" + uuid.NewString()[:8]
	}
}

// SequenceIDs returns a deterministic generator producing "<prefix>-1",
// "<prefix>-2", ... The counter is shared across prefixes, so every id
// from one generator is distinct.
func SequenceIDs() IDFunc {
	var n int
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
