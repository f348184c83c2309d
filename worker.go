package threadpool

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"time"
)

// worker is one goroutine, normally locked to its own OS thread, pulling
// tasks from the pool queue until it receives the exit sentinel or a job panics.
type worker struct {
	id     int
	name   string
	pool   *Pool
	logger *slog.Logger

	// hook is installed when the run loop starts and removed when it ends.
	// Only the worker goroutine touches it.
	hook PanicHandler
}

// spawnWorker starts worker id and returns without waiting for it to reach its loop.
func spawnWorker(p *Pool, id int) *worker {
	w := &worker{
		id:   id,
		name: fmt.Sprintf("%s-worker-%d", p.name, id),
		pool: p,
	}
	w.logger = p.logger.With(slog.String("worker", w.name))

	labels := pprof.Labels("pool", p.name, "worker", w.name)
	go pprof.Do(context.Background(), labels, func(context.Context) { w.run() })

	return w
}

func (w *worker) run() {
	p := w.pool
	if p.lockOSThread {
		runtime.LockOSThread()
	}

	w.hook = p.hook
	defer func() { w.hook = nil }()

	w.logger.Debug("worker started")

	for {
		t, err := p.rx.Recv()
		if err != nil {
			// Close always queues exits before closing the sender.
			w.logger.Error("worker lost its task queue", slog.Any("error", err))
			w.release()
			return
		}

		if t.exit {
			w.logger.Debug("worker stopped")
			w.release()
			return
		}

		p.queued.Add(-1)
		p.inst.queued.Add(-1)

		if !w.execute(t.job) {
			// The thread stays locked: the runtime discards it together with this goroutine.
			return
		}
	}
}

// execute runs job with the busy bit raised. It reports false when the job
// did not return normally, in which case the busy bit is left raised.
func (w *worker) execute(job Job) (returned bool) {
	p := w.pool
	p.state.Busy.Set(w.id)
	p.inst.busy.Add(1)
	start := time.Now()

	defer func() {
		if returned {
			return
		}
		r := recover()
		if r == nil {
			w.logger.Warn("job called runtime.Goexit, worker terminates")
			return
		}
		if w.hook != nil {
			w.hook(w.id, r, debug.Stack())
		}
	}()

	job()

	p.state.Busy.Clear(w.id)
	p.inst.busy.Add(-1)
	p.completed.Add(1)
	p.inst.completed.Add(1)
	p.inst.duration.Record(time.Since(start).Seconds())

	return true
}

func (w *worker) release() {
	if w.pool.lockOSThread {
		runtime.UnlockOSThread()
	}
}
