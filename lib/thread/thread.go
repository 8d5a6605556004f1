/*package thread is the threading runtime consumed by the accumulation core:
it sets the worker count, hands out worker ids through Run, and provides the
barrier that separates tallying from reduction.*/
package thread

import (
	"runtime"
	"sync"

	"github.com/openmd/tally/lib/error"
)

// Set sets the number of OS threads that worker goroutines run on. Passing
// -1 uses every core on the node.
func Set(n int) {
	if n == -1 {
		n = runtime.NumCPU()
	}
	if n > runtime.NumCPU() {
		error.External("%d threads requested, but your system only has %d cores per node. If you want tally to use the maximum number of threads per node, set Threads=-1.", n, runtime.NumCPU())
	} else if n < 1 {
		error.External("%d threads requested. Threads must be positive or -1.", n)
	}

	runtime.GOMAXPROCS(n)
}

// Run executes body concurrently on nthreads workers with ids 0 through
// nthreads-1 and returns once every worker has finished. The last id runs
// on the calling goroutine, so nthreads == 1 spawns nothing.
func Run(nthreads int, body func(tid int)) {
	if nthreads < 1 {
		error.Internal("Run called with nthreads = %d.", nthreads)
	}

	wg := &sync.WaitGroup{}
	wg.Add(nthreads - 1)
	for tid := 0; tid < nthreads-1; tid++ {
		go func(tid int) {
			body(tid)
			wg.Done()
		}(tid)
	}
	body(nthreads - 1)
	wg.Wait()
}

// Barrier is a reusable barrier for a fixed group of workers: no Wait call
// returns until all n workers have arrived. Reuse across phases is safe
// because each phase has its own generation.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	n       int
	arrived int
	gen     int
}

// NewBarrier creates a Barrier for a group of n workers.
func NewBarrier(n int) *Barrier {
	if n < 1 {
		error.Internal("Barrier created for %d workers.", n)
	}
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until all n workers have called Wait for the current phase.
func (b *Barrier) Wait() {
	b.mu.Lock()
	gen := b.gen
	b.arrived++
	if b.arrived == b.n {
		b.arrived = 0
		b.gen++
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for gen == b.gen {
		b.cond.Wait()
	}
	b.mu.Unlock()
}
