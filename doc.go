// Package threadpool runs func() jobs on a fixed set of pre-spawned workers.
//
// Each worker is a goroutine locked to its own OS thread (see WithThreadLock).
// All workers pull from one unbounded FIFO queue, so at most Capacity() jobs
// run at once and jobs are dequeued in submission order.
//
// Constructors
//   - New(opts...): returns an error wrapping ErrInvalidConfig on bad options.
//   - MustNew(opts...): panics instead, e.g. for a capacity above MaxThreads.
//
// Defaults
// Unless overridden, the following defaults apply:
//   - Capacity: SuggestedCapacity(), the CPU count minus one in [MinThreads, MaxThreads]
//   - Name: "pool"
//   - Logger: slog.Default()
//   - Metrics: metrics.NoopProvider
//   - ThreadLock: true
//
// Jobs return nothing. Wire a channel into the closure to collect results
// or to wait for completion:
//
//	results := make(chan int, n)
//	for i := range n {
//		_ = p.Execute(func() { results <- i * i })
//	}
//
// Telemetry
// CheckBusy and CheckPanics read per-worker bitmaps. Both are advisory:
// they may lag the workers by a few instructions but never count a worker twice.
//
// Panics
// A panicking job is recovered on its worker. The worker's panicking bit is
// raised, the panic is logged and handed to the WithPanicHandler handler, and
// the worker terminates. It is not replaced, and its busy bit stays raised.
//
// Shutdown
// Close (or Join) queues one exit sentinel per worker behind every accepted
// job and returns immediately. Jobs already queued still run. Construct one
// Pool per use and always Close it; workers otherwise wait forever.
package threadpool
