package accum

/* reduce.go combines thread-private partial sums into the canonical shared
results after parallel work completes. */

import (
	"gonum.org/v1/gonum/floats"

	"github.com/openmd/tally/lib/partition"
	"github.com/openmd/tally/lib/thread"
)

// Sink receives reduced totals. It is implemented by whichever result
// object the calling kernel maintains; Reduce writes through it, so this
// package needs no knowledge of the kernel's concrete type. The per-atom
// accessors may return nil when the matching flag is off.
type Sink interface {
	// AddEnergy adds to the global van der Waals, Coulomb, and bonded
	// energy totals.
	AddEnergy(evdwl, ecoul, ebond float64)
	// AddVirial adds to the global 6-component virial total.
	AddVirial(v *[6]float64)
	// AtomEnergy returns the per-atom energy totals.
	AtomEnergy() []float64
	// AtomVirial returns the per-atom virial totals.
	AtomVirial() [][6]float64
}

// Results is a plain Sink for callers without their own result object.
type Results struct {
	EngVdwl, EngCoul, EngBond float64
	Virial                    [6]float64
	Eatom                     []float64
	Vatom                     [][6]float64
}

func (r *Results) AddEnergy(evdwl, ecoul, ebond float64) {
	r.EngVdwl += evdwl
	r.EngCoul += ecoul
	r.EngBond += ebond
}

func (r *Results) AddVirial(v *[6]float64) {
	for k := 0; k < 6; k++ {
		r.Virial[k] += v[k]
	}
}

func (r *Results) AtomEnergy() []float64    { return r.Eatom }
func (r *Results) AtomVirial() [][6]float64 { return r.Vatom }

// Reduce sums every thread's accumulators into dst: global scalars and
// virial if the global flags are set, per-atom arrays over the owned or
// owned+ghost range if the per-atom flags are set. It must run on a single
// goroutine after the parallel region has joined. Thread scratch is left as
// is; the next Setup call zeroes it.
func (acc *Accumulator) Reduce(dst Sink) {
	for t := 0; t < acc.nthreads; t++ {
		if acc.flags.GlobalEnergy {
			dst.AddEnergy(acc.engVdwl[t], acc.engCoul[t], acc.engBond[t])
		}
		if acc.flags.GlobalVirial {
			dst.AddVirial(&acc.virial[t])
		}
		if acc.flags.AtomEnergy {
			floats.Add(dst.AtomEnergy()[:acc.ntotal], acc.eatom[t][:acc.ntotal])
		}
		if acc.flags.AtomVirial {
			vatom := dst.AtomVirial()
			src := acc.vatom[t]
			for i := 0; i < acc.ntotal; i++ {
				floats.Add(vatom[i][:], src[i][:])
			}
		}
	}
}

// ReduceForces is the collective force reduction. Once the barrier
// guarantees every worker has finished tallying, each worker sums all
// nonzero thread blocks of f into block 0 over its own slice of atoms and
// zeroes the cells it consumed, so the scratch is clean for the next phase
// without a separate clear pass. Every worker of the phase must call it.
// No-op for a single thread.
func ReduceForces(f [][3]float64, nall, nthreads, tid int, b *thread.Barrier) {
	if nthreads == 1 {
		return
	}
	b.Wait()

	lo, hi := partition.Chunk(nall, nthreads, tid)
	for t := 1; t < nthreads; t++ {
		ft := partition.ForceView(f, nall, t)
		for m := lo; m < hi; m++ {
			f[m][0] += ft[m][0]
			ft[m][0] = 0
			f[m][1] += ft[m][1]
			ft[m][1] = 0
			f[m][2] += ft[m][2]
			ft[m][2] = 0
		}
	}
}

// ReduceScalars is ReduceForces for a per-thread scalar-per-atom array,
// e.g. an embedding density. x holds nthreads blocks of nmax values each
// and the first nrange values of every block are summed into block 0, then
// zeroed.
func ReduceScalars(x []float64, nmax, nrange, nthreads, tid int, b *thread.Barrier) {
	if nthreads == 1 {
		return
	}
	b.Wait()

	lo, hi := partition.Chunk(nrange, nthreads, tid)
	for t := 1; t < nthreads; t++ {
		xt := x[t*nmax : t*nmax+nrange]
		for m := lo; m < hi; m++ {
			x[m] += xt[m]
			xt[m] = 0
		}
	}
}
