/*package accum accumulates per-interaction energy, virial, and force
contributions into thread-private scratch and reduces them into canonical
totals once a parallel phase has finished. Kernels tally into the scratch
slot of their own worker id during the parallel phase, so no locking is
needed; the reduction runs after the phase's barrier or join.*/
package accum

import (
	"github.com/openmd/tally/lib/error"
)

// Flags selects which outputs an accumulation phase produces.
type Flags struct {
	// GlobalEnergy and GlobalVirial accumulate system-wide totals.
	GlobalEnergy, GlobalVirial bool
	// AtomEnergy and AtomVirial accumulate per-atom arrays.
	AtomEnergy, AtomVirial bool
}

func (fl Flags) energy() bool { return fl.GlobalEnergy || fl.AtomEnergy }
func (fl Flags) virial() bool { return fl.GlobalVirial || fl.AtomVirial }

// Accumulator owns the thread-indexed accumulator scratch. The fixed-size
// per-thread totals live for the Accumulator's whole lifetime; the per-atom
// arrays are grown lazily by Setup and never shrunk, so oscillating atom
// counts don't cause repeated reallocation.
type Accumulator struct {
	nthreads int

	// Phase context captured by Setup. Tally calls read it instead of
	// re-receiving it per interaction.
	flags  Flags
	newton bool
	nlocal int
	ntotal int

	engVdwl []float64
	engCoul []float64
	engBond []float64
	virial  [][6]float64

	eatom [][]float64
	vatom [][][6]float64
	// The per-atom energy and virial arrays track separate high-water
	// marks so growing one can't leave the other undersized.
	maxEatom, maxVatom int
}

// New creates an Accumulator for a fixed number of worker threads. The
// thread count cannot change over the Accumulator's lifetime.
func New(nthreads int) *Accumulator {
	if nthreads < 1 {
		error.Internal("Accumulator created for %d threads.", nthreads)
	}
	return &Accumulator{
		nthreads: nthreads,
		engVdwl:  make([]float64, nthreads),
		engCoul:  make([]float64, nthreads),
		engBond:  make([]float64, nthreads),
		virial:   make([][6]float64, nthreads),
		eatom:    make([][]float64, nthreads),
		vatom:    make([][][6]float64, nthreads),
	}
}

// Threads returns the number of worker threads the Accumulator was created
// for.
func (acc *Accumulator) Threads() int { return acc.nthreads }

// Setup prepares the Accumulator for one accumulation phase over nlocal
// owned atoms and nghost ghost atoms. It grows the per-atom scratch if the
// requested flags need more capacity and zeroes exactly the accumulators
// the flags select. Under a Newton-symmetric law (newton == true) the
// per-atom range covers owned and ghost atoms; otherwise only owned atoms.
func (acc *Accumulator) Setup(flags Flags, newton bool, nlocal, nghost int) {
	if nlocal < 0 || nghost < 0 {
		error.Internal("Setup called with nlocal = %d, nghost = %d.",
			nlocal, nghost)
	}

	acc.flags = flags
	acc.newton = newton
	acc.nlocal = nlocal

	nall := nlocal + nghost
	if newton {
		acc.ntotal = nall
	} else {
		acc.ntotal = nlocal
	}

	if flags.AtomEnergy && nall > acc.maxEatom {
		acc.maxEatom = nall
		for t := range acc.eatom {
			acc.eatom[t] = growFloat64s(acc.eatom[t], nall)
		}
	}
	if flags.AtomVirial && nall > acc.maxVatom {
		acc.maxVatom = nall
		for t := range acc.vatom {
			acc.vatom[t] = growSym64s(acc.vatom[t], nall)
		}
	}

	for t := 0; t < acc.nthreads; t++ {
		if flags.GlobalEnergy {
			acc.engVdwl[t], acc.engCoul[t], acc.engBond[t] = 0, 0, 0
		}
		if flags.GlobalVirial {
			acc.virial[t] = [6]float64{}
		}
		if flags.AtomEnergy {
			eatom := acc.eatom[t]
			for i := 0; i < acc.ntotal; i++ {
				eatom[i] = 0
			}
		}
		if flags.AtomVirial {
			vatom := acc.vatom[t]
			for i := 0; i < acc.ntotal; i++ {
				vatom[i] = [6]float64{}
			}
		}
	}
}

// growFloat64s extends x to length n, keeping existing contents and never
// shrinking capacity.
func growFloat64s(x []float64, n int) []float64 {
	if cap(x) >= n {
		return x[:n]
	}
	x = x[:cap(x)]
	return append(x, make([]float64, n-len(x))...)
}

// growSym64s extends x to length n, keeping existing contents and never
// shrinking capacity.
func growSym64s(x [][6]float64, n int) [][6]float64 {
	if cap(x) >= n {
		return x[:n]
	}
	x = x[:cap(x)]
	return append(x, make([][6]float64, n-len(x))...)
}

// MemoryUsage returns the number of bytes currently held by the
// Accumulator's scratch buffers.
func (acc *Accumulator) MemoryUsage() int64 {
	bytes := int64(acc.nthreads) * (3 + 6) * 8
	bytes += int64(acc.nthreads) * int64(acc.maxEatom) * 8
	bytes += int64(acc.nthreads) * int64(acc.maxVatom) * 6 * 8
	return bytes
}
