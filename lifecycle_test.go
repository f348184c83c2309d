package threadpool

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recordingLocker records Lock/Unlock into steps.
type recordingLocker struct {
	mu    sync.Mutex
	steps *[]string
}

func (l *recordingLocker) Lock()   { l.mu.Lock(); *l.steps = append(*l.steps, "lock") }
func (l *recordingLocker) Unlock() { *l.steps = append(*l.steps, "unlock"); l.mu.Unlock() }

func TestLifecycle_Order(t *testing.T) {
	var steps []string
	lc := newLifecycleCoordinator(
		&recordingLocker{steps: &steps},
		func() { steps = append(steps, "stopIntake") },
		func() error { steps = append(steps, "exit"); return nil },
		func() { steps = append(steps, "closeQueue") },
		3,
	)

	lc.Close()

	require.Equal(t, []string{"lock", "stopIntake", "exit", "exit", "exit", "closeQueue", "unlock"}, steps)
}

func TestLifecycle_Idempotent_ConcurrentClose(t *testing.T) {
	var (
		mu     sync.Mutex
		counts = map[string]int{}
	)
	record := func(s string) {
		mu.Lock()
		counts[s]++
		mu.Unlock()
	}

	lc := newLifecycleCoordinator(
		&sync.Mutex{},
		func() { record("stopIntake") },
		func() error { record("exit"); return nil },
		func() { record("closeQueue") },
		4,
	)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() { defer wg.Done(); lc.Close() }()
	}
	wg.Wait()

	require.Equal(t, map[string]int{"stopIntake": 1, "exit": 4, "closeQueue": 1}, counts)
}

func TestLifecycle_ZeroWorkers(t *testing.T) {
	exits := 0
	closed := false
	lc := newLifecycleCoordinator(
		&sync.Mutex{},
		func() {},
		func() error { exits++; return nil },
		func() { closed = true },
		0,
	)
	lc.Close()
	require.Zero(t, exits)
	require.True(t, closed)
}

func TestLifecycle_SendFailureIsFatal(t *testing.T) {
	lc := newLifecycleCoordinator(
		&sync.Mutex{},
		func() {},
		func() error { return errors.New("boom") },
		func() {},
		1,
	)
	require.Panics(t, lc.Close)
}

func TestLifecycle_HoldsIntakeDuringSequence(t *testing.T) {
	var intake sync.RWMutex
	release := make(chan struct{})
	entered := make(chan struct{})

	lc := newLifecycleCoordinator(
		&intake,
		func() {},
		func() error {
			close(entered)
			<-release
			return nil
		},
		func() {},
		1,
	)

	go lc.Close()
	<-entered

	// A reader (Execute) cannot enter while the exit sentinel is being queued.
	acquired := make(chan struct{})
	go func() {
		intake.RLock()
		close(acquired)
		intake.RUnlock()
	}()

	select {
	case <-acquired:
		t.Fatalf("intake read lock acquired during shutdown sequence")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("intake read lock not released after shutdown sequence")
	}
}
