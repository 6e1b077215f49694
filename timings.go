package elreasoner

import (
	"time"

	"github.com/google/uuid"
)

// Timings records how long each construction phase took and a stable
// identifier for the build they belong to, so a caller correlating
// Prometheus histograms (internal/telemetry) against a specific in-memory
// Reasoner instance does not need to fabricate its own correlation key.
type Timings struct {
	// BuildID is minted once per NewReasoner call via uuid.New(), never
	// derived from ontology content — two reasoners built from byte-
	// identical input still get distinct IDs.
	BuildID uuid.UUID

	Normalize time.Duration
	RBoxBuild time.Duration
	Classify  time.Duration
	Saturate  time.Duration
}

// Total returns the sum of every recorded phase duration.
func (t Timings) Total() time.Duration {
	return t.Normalize + t.RBoxBuild + t.Classify + t.Saturate
}

func newTimings() Timings {
	return Timings{BuildID: uuid.New()}
}
