package state

import (
	"math/bits"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCell_SetClearCount(t *testing.T) {
	tests := []struct {
		name      string
		set       []int
		clear     []int
		wantCount int
		wantWord  uint64
	}{
		{name: "empty", wantCount: 0, wantWord: 0},
		{name: "single bit", set: []int{3}, wantCount: 1, wantWord: 1 << 3},
		{name: "set is idempotent", set: []int{5, 5, 5}, wantCount: 1, wantWord: 1 << 5},
		{name: "clear is idempotent", set: []int{1, 2}, clear: []int{1, 1}, wantCount: 1, wantWord: 1 << 2},
		{name: "clear on empty", clear: []int{7}, wantCount: 0, wantWord: 0},
		{name: "edges", set: []int{0, Width - 1}, wantCount: 2, wantWord: 1 | 1<<(Width-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cell
			for _, i := range tt.set {
				c.Set(i)
			}
			for _, i := range tt.clear {
				c.Clear(i)
			}
			require.Equal(t, tt.wantCount, c.Count())
			require.Equal(t, tt.wantWord, c.Load())
			require.Equal(t, bits.OnesCount64(c.Load()), c.Count())
		})
	}
}

func TestCell_SetThenClearRestoresPrior(t *testing.T) {
	var c Cell
	c.Set(4)
	c.Set(9)
	prior := c.Load()

	c.Set(17)
	c.Clear(17)
	require.Equal(t, prior, c.Load())
	require.True(t, c.Has(4))
	require.False(t, c.Has(17))
}

func TestCell_String(t *testing.T) {
	var c Cell
	require.Equal(t, "0", c.String())

	c.Set(0)
	c.Set(2)
	require.Equal(t, "101", c.String())
}

func TestCell_OutOfRangePanics(t *testing.T) {
	var c Cell
	require.Panics(t, func() { c.Set(Width) })
	require.Panics(t, func() { c.Clear(-1) })
}

func TestCell_ConcurrentDistinctBits(t *testing.T) {
	var c Cell
	var wg sync.WaitGroup
	wg.Add(Width)
	for i := 0; i < Width; i++ {
		go func(bit int) {
			defer wg.Done()
			for n := 0; n < 1000; n++ {
				c.Set(bit)
				c.Clear(bit)
			}
			c.Set(bit)
		}(i)
	}
	wg.Wait()
	require.Equal(t, Width, c.Count())
}

func TestState_String(t *testing.T) {
	var s State
	s.Busy.Set(1)
	s.Panicking.Set(0)
	require.Equal(t, "busy=10 panicking=1", s.String())
}
