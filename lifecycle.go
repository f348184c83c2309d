package threadpool

import (
	"sync"
)

// lifecycleCoordinator encapsulates the Pool shutdown sequence.
// It owns no resources; it orders the steps it is handed and runs them exactly once.
//
// Close() is safe for concurrent calls.
type lifecycleCoordinator struct {
	// intake is held exclusively for the whole sequence so that no Execute
	// can interleave with the exit sentinels.
	intake     sync.Locker
	stopIntake func()
	sendExit   func() error
	closeQueue func()
	workers    int

	once sync.Once
}

func newLifecycleCoordinator(
	intake sync.Locker,
	stopIntake func(),
	sendExit func() error,
	closeQueue func(),
	workers int,
) *lifecycleCoordinator {
	return &lifecycleCoordinator{
		intake:     intake,
		stopIntake: stopIntake,
		sendExit:   sendExit,
		closeQueue: closeQueue,
		workers:    workers,
	}
}

// Close executes the shutdown sequence exactly once:
// 1) lock intake and reject further jobs
// 2) queue one exit sentinel per worker, behind every accepted job
// 3) close the queue sender
// It does not wait for workers.
func (lc *lifecycleCoordinator) Close() {
	lc.once.Do(func() {
		lc.intake.Lock()
		defer lc.intake.Unlock()

		lc.stopIntake()
		for range lc.workers {
			if err := lc.sendExit(); err != nil {
				// The sender is closed only below; anything else is a broken pool.
				panic(Namespace + ": queue exit sentinel: " + err.Error())
			}
		}
		lc.closeQueue()
	})
}
