package threadpool

import (
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Hellaeh/thread-pool/metrics"
	"github.com/Hellaeh/thread-pool/queue"
	"github.com/Hellaeh/thread-pool/state"
)

// Pool runs jobs on a fixed set of workers fed by one shared FIFO queue.
// Methods are safe for concurrent use.
type Pool struct {
	// noCopy prevents accidental copying of the pool.
	//go:nocopy
	nc noCopy

	name         string
	capacity     int
	logger       *slog.Logger
	lockOSThread bool

	state *state.State
	tx    *queue.Sender[task]
	rx    *queue.Receiver[task]
	hook  PanicHandler
	inst  instruments

	// workers are kept for the pool lifetime only; they are never joined.
	workers []*worker

	// intake guards closed against Execute; Close holds it exclusively.
	intake sync.RWMutex
	closed bool
	lc     *lifecycleCoordinator

	submitted atomic.Int64
	completed atomic.Int64
	queued    atomic.Int64
}

// noCopy is a vet-recognized marker to discourage copying types with this field embedded.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

type instruments struct {
	submitted metrics.Counter
	completed metrics.Counter
	panicked  metrics.Counter
	queued    metrics.UpDownCounter
	busy      metrics.UpDownCounter
	duration  metrics.Histogram
}

func newInstruments(p metrics.Provider) instruments {
	return instruments{
		submitted: p.Counter("threadpool_tasks_submitted_total",
			metrics.WithDescription("jobs accepted by Execute"), metrics.WithUnit("1")),
		completed: p.Counter("threadpool_tasks_completed_total",
			metrics.WithDescription("jobs that returned normally"), metrics.WithUnit("1")),
		panicked: p.Counter("threadpool_tasks_panicked_total",
			metrics.WithDescription("jobs that panicked, each one terminating its worker"), metrics.WithUnit("1")),
		queued: p.UpDownCounter("threadpool_tasks_queued",
			metrics.WithDescription("jobs waiting for a worker"), metrics.WithUnit("1")),
		busy: p.UpDownCounter("threadpool_workers_busy",
			metrics.WithDescription("workers executing a job"), metrics.WithUnit("1")),
		duration: p.Histogram("threadpool_task_duration_seconds",
			metrics.WithDescription("wall time of jobs that returned normally"), metrics.WithUnit("seconds")),
	}
}

// New creates a Pool and spawns its workers.
// Without WithCapacity the capacity is SuggestedCapacity().
// Invalid options yield an error wrapping ErrInvalidConfig.
func New(opts ...Option) (*Pool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	p := &Pool{}
	p.initialize(&cfg)
	return p, nil
}

// MustNew is like New but panics on invalid configuration,
// such as a capacity above MaxThreads.
func MustNew(opts ...Option) *Pool {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// initialize wires the queue, shared state and panic hook, then spawns workers.
func (p *Pool) initialize(cfg *config) {
	p.name = cfg.Name
	p.capacity = cfg.Capacity
	p.logger = cfg.Logger.With(slog.String("pool", cfg.Name))
	p.lockOSThread = cfg.LockOSThread

	p.state = &state.State{}
	p.tx, p.rx = queue.New[task]()
	p.inst = newInstruments(cfg.Metrics)
	p.hook = newPanicHook(p.state, p.inst.panicked, p.logger, cfg.PanicHandler)

	p.lc = newLifecycleCoordinator(
		&p.intake,
		func() { p.closed = true },
		func() error { return p.tx.Send(exitTask()) },
		func() {
			p.tx.Close()
			p.logger.Debug("pool closed", slog.Int("exits", p.capacity))
		},
		p.capacity,
	)

	if p.capacity == 0 {
		p.logger.Warn("pool has no workers, submitted jobs will never run")
	}

	p.workers = make([]*worker, 0, p.capacity)
	for id := range p.capacity {
		p.workers = append(p.workers, spawnWorker(p, id))
	}

	p.logger.Debug("pool started", slog.Int("capacity", p.capacity))
}

// Execute queues job for execution by any worker and returns immediately.
// Jobs are dequeued in submission order. Execute never blocks on a busy pool.
//
// It returns ErrNilJob for a nil job and ErrPoolClosed once Close has been called.
func (p *Pool) Execute(job Job) error {
	if job == nil {
		return ErrNilJob
	}

	p.intake.RLock()
	defer p.intake.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	// Counted before the send so a fast worker never drives queued below zero.
	p.queued.Add(1)
	p.inst.queued.Add(1)

	// The sender is only closed under the exclusive intake lock.
	if err := p.tx.Send(runTask(job)); err != nil {
		p.queued.Add(-1)
		p.inst.queued.Add(-1)
		return fmt.Errorf("%w: %w", ErrPoolClosed, err)
	}

	p.submitted.Add(1)
	p.inst.submitted.Add(1)

	return nil
}

// Capacity returns the fixed number of workers.
func (p *Pool) Capacity() int { return p.capacity }

// CheckBusy returns how many workers are executing a job.
// A worker whose job panicked stays counted as busy.
func (p *Pool) CheckBusy() int { return p.state.Busy.Count() }

// CheckPanics returns how many workers have terminated because of a panicking job.
// The value never decreases.
func (p *Pool) CheckPanics() int { return p.state.Panicking.Count() }

// Iter yields the worker ids 0 through Capacity()-1 in order.
func (p *Pool) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range p.capacity {
			if !yield(i) {
				return
			}
		}
	}
}

// Close stops accepting jobs and queues one exit sentinel per worker behind
// every job already accepted. Queued jobs still run. Close does not wait for
// workers; callers needing a barrier collect acknowledgements from their jobs.
//
// Close is idempotent and safe for concurrent use.
func (p *Pool) Close() {
	p.lc.Close()
}

// Join is Close.
func (p *Pool) Join() { p.Close() }

// Stats is a point-in-time view of a Pool. Fields are read independently
// and may be mutually inconsistent while jobs are running.
type Stats struct {
	Capacity  int
	Busy      int
	Panicked  int
	Queued    int64
	Submitted int64
	Completed int64
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Capacity:  p.capacity,
		Busy:      p.state.Busy.Count(),
		Panicked:  p.state.Panicking.Count(),
		Queued:    p.queued.Load(),
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
	}
}

func (p *Pool) String() string {
	return fmt.Sprintf("Pool(%s, capacity=%d, %s)", p.name, p.capacity, p.state)
}
