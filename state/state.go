package state

import "fmt"

// State is the pair of bitmaps shared by a pool and all of its workers.
type State struct {
	// Busy has bit i raised while worker i executes a job.
	Busy Cell

	// Panicking has bit i raised once worker i recovered from a panic.
	// The bit is never lowered.
	Panicking Cell
}

func (s *State) String() string {
	return fmt.Sprintf("busy=%s panicking=%s", s.Busy.String(), s.Panicking.String())
}
