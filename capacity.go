package threadpool

import (
	"runtime"

	"github.com/Hellaeh/thread-pool/state"
)

const (
	// MaxThreads is the largest capacity: one bit per worker in a state.Cell.
	MaxThreads = state.Width

	// MinThreads is the smallest capacity SuggestedCapacity returns.
	MinThreads = 2

	// DefaultThreads is used when the host CPU count cannot be determined.
	DefaultThreads = 4
)

// numCPU is swapped in tests.
var numCPU = runtime.NumCPU

// SuggestedCapacity returns the logical CPU count minus one, leaving a core
// to the submitter, clamped to [MinThreads, MaxThreads].
func SuggestedCapacity() int {
	n := numCPU()
	if n <= 0 {
		return DefaultThreads
	}
	return min(max(n-1, MinThreads), MaxThreads)
}
