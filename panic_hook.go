package threadpool

import (
	"fmt"
	"log/slog"

	"github.com/Hellaeh/thread-pool/metrics"
	"github.com/Hellaeh/thread-pool/state"
)

// PanicHandler observes a job panic recovered on worker workerID.
// stack is the panicking goroutine's stack at recovery time.
type PanicHandler func(workerID int, recovered any, stack []byte)

// newPanicHook builds the hook every worker of a pool installs on entry.
// The chain is: raise the panicking bit, count it, log it, then call next.
func newPanicHook(st *state.State, panicked metrics.Counter, logger *slog.Logger, next PanicHandler) PanicHandler {
	return func(id int, recovered any, stack []byte) {
		st.Panicking.Set(id)
		panicked.Add(1)
		logger.Error("job panicked, worker terminates",
			slog.Int("worker", id),
			slog.String("panic", fmt.Sprint(recovered)),
			slog.String("stack", string(stack)),
		)
		if next != nil {
			next(id, recovered, stack)
		}
	}
}
