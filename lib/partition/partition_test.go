package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkCoverage(t *testing.T) {
	tests := []struct{ n, nthreads int }{
		{0, 1}, {0, 4}, {1, 1}, {1, 8}, {10, 1}, {10, 3},
		{9, 3}, {16, 4}, {100, 7}, {5, 8},
	}

	for _, test := range tests {
		seen := make([]int, test.n)
		for tid := 0; tid < test.nthreads; tid++ {
			lo, hi := Chunk(test.n, test.nthreads, tid)
			assert.True(t, lo <= hi,
				"n = %d, nthreads = %d, tid = %d: lo = %d > hi = %d",
				test.n, test.nthreads, tid, lo, hi)
			for i := lo; i < hi; i++ {
				seen[i]++
			}
		}
		for i := range seen {
			assert.Equal(t, 1, seen[i],
				"n = %d, nthreads = %d: index %d covered %d times",
				test.n, test.nthreads, i, seen[i])
		}
	}
}

func TestChunkSingleThread(t *testing.T) {
	lo, hi := Chunk(123, 1, 0)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 123, hi)
}

func TestChunkTrailingEmpty(t *testing.T) {
	// 5 items over 8 workers: ceiling chunks of 1, workers 5..7 get
	// nothing.
	for tid := 5; tid < 8; tid++ {
		lo, hi := Chunk(5, 8, tid)
		assert.Equal(t, lo, hi, "tid = %d expected an empty range", tid)
	}
}

func TestForceViewDisjoint(t *testing.T) {
	nall, nthreads := 5, 3
	f := make([][3]float64, nall*nthreads)

	for tid := 0; tid < nthreads; tid++ {
		view := ForceView(f, nall, tid)
		assert.Equal(t, nall, len(view))
		view[0][0] = float64(tid + 1)
	}
	for tid := 0; tid < nthreads; tid++ {
		assert.Equal(t, float64(tid+1), f[tid*nall][0])
	}
}

func TestLoop(t *testing.T) {
	nall, nthreads, inum := 4, 2, 6
	f := make([][3]float64, nall*nthreads)

	fView, lo, hi := Loop(f, inum, nall, nthreads, 1)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 6, hi)
	assert.Equal(t, nall, len(fView))

	fView[2][1] = 7.0
	assert.Equal(t, 7.0, f[nall+2][1])
}
