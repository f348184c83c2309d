// Package state holds per-worker flags packed into atomic bitmaps.
package state

import (
	"math/bits"
	"strconv"
	"sync/atomic"
)

// Width is the number of flags a Cell can hold.
const Width = 64

// Cell is an atomic bitmap indexed by worker id.
// The zero value is an empty bitmap, ready to use.
//
// Values read from a Cell are telemetry: they may lag concurrent updates
// and establish no ordering between workers and observers.
type Cell struct {
	word atomic.Uint64
}

// Set raises bit i. Setting an already raised bit is a no-op.
func (c *Cell) Set(i int) { c.word.Or(mask(i)) }

// Clear lowers bit i. Clearing an already lowered bit is a no-op.
func (c *Cell) Clear(i int) { c.word.And(^mask(i)) }

// Has reports whether bit i is raised.
func (c *Cell) Has(i int) bool { return c.word.Load()&mask(i) != 0 }

// Count returns the number of raised bits.
func (c *Cell) Count() int { return bits.OnesCount64(c.word.Load()) }

// Load returns the raw word.
func (c *Cell) Load() uint64 { return c.word.Load() }

// String renders the current word in binary.
func (c *Cell) String() string { return strconv.FormatUint(c.word.Load(), 2) }

// mask panics for bits outside [0, Width); a pool never hands out such ids.
func mask(i int) uint64 {
	if i < 0 || i >= Width {
		panic("state: bit index out of range: " + strconv.Itoa(i))
	}
	return 1 << uint(i)
}
