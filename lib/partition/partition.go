/*package partition maps worker ids onto contiguous index ranges and onto
disjoint blocks of shared scratch buffers. Kernels get their slice of work
from here once per phase instead of recomputing offsets ad hoc.*/
package partition

// Chunk returns the half-open range [lo, hi) of items owned by worker tid
// when n items are split across nthreads workers in ceiling-sized chunks.
// The trailing chunk is clipped to n and may be empty. A single thread is
// the degenerate case of the same formula: worker 0 owns everything.
func Chunk(n, nthreads, tid int) (lo, hi int) {
	delta := (n + nthreads - 1) / nthreads
	lo = tid * delta
	hi = lo + delta
	if lo > n {
		lo = n
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}

// ForceView returns worker tid's private block of the force scratch f. f
// holds one block of nall vectors per worker and tid's block starts at
// tid*nall, so the views of different workers never overlap.
func ForceView(f [][3]float64, nall, tid int) [][3]float64 {
	return f[tid*nall : (tid+1)*nall]
}

// Loop assigns worker tid its slice of a kernel's interaction loop: the
// force block it may write to and the half-open interaction range it owns.
// inum is the number of interactions and nall the per-worker force block
// size.
func Loop(f [][3]float64, inum, nall, nthreads, tid int) (fView [][3]float64, lo, hi int) {
	lo, hi = Chunk(inum, nthreads, tid)
	return ForceView(f, nall, tid), lo, hi
}
