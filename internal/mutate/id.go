package mutate

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

var idCounter atomic.Uint64

// NewMutationID produces a unique, human-readable correlation token:
// prefix + counter + timestamp + random suffix. Practical uniqueness only;
// it is a debug identifier, not an idempotency key.
func NewMutationID(prefix string) string {
	n := idCounter.Add(1)
	return fmt.Sprintf("%s-%d-%d-%04d", prefix, n, time.Now().UnixMilli(), rand.Intn(10000))
}

// NewSyntheticID produces a placeholder entity id for optimistic creates,
// used until the server assigns the real id. The synthetic id must be
// replaced wholesale (not merged) once the server responds.
func NewSyntheticID(kind string) string {
	return fmt.Sprintf("temp-%s-%d-%04d", kind, time.Now().UnixMilli(), rand.Intn(10000))
}

// IsSyntheticID reports whether id was produced by NewSyntheticID
func IsSyntheticID(id string) bool {
	return len(id) > 5 && id[:5] == "temp-"
}
