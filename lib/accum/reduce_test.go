package accum

import (
	"math/rand"
	"testing"

	"github.com/openmd/tally/lib/eq"
	"github.com/openmd/tally/lib/partition"
	"github.com/openmd/tally/lib/thread"
)

type testPair struct {
	i, j                int
	evdwl, ecoul, fpair float64
	del                 [3]float64
}

func randomPairs(n, npairs int, seed int64) []testPair {
	gen := rand.New(rand.NewSource(seed))
	pairs := make([]testPair, npairs)
	for p := range pairs {
		i := gen.Intn(n)
		j := gen.Intn(n - 1)
		if j >= i {
			j++
		}
		pairs[p] = testPair{
			i: i, j: j,
			evdwl: gen.Float64(), ecoul: gen.Float64(),
			fpair: gen.Float64() - 0.5,
			del: [3]float64{
				gen.Float64() - 0.5, gen.Float64() - 0.5, gen.Float64() - 0.5,
			},
		}
	}
	return pairs
}

func runPhase(nthreads int, newton bool, n, nlocal int, pairs []testPair) *Results {
	acc := New(nthreads)
	acc.Setup(allFlags(), newton, nlocal, n-nlocal)

	thread.Run(nthreads, func(tid int) {
		lo, hi := partition.Chunk(len(pairs), nthreads, tid)
		for p := lo; p < hi; p++ {
			pr := &pairs[p]
			acc.TallyPair(pr.i, pr.j, pr.evdwl, pr.ecoul, pr.fpair,
				pr.del, tid)
		}
	})

	res := &Results{
		Eatom: make([]float64, n),
		Vatom: make([][6]float64, n),
	}
	acc.Reduce(res)
	return res
}

func TestConservation(t *testing.T) {
	// The reduced totals must match a single-threaded run for any thread
	// count, up to summation-order roundoff.
	n, nlocal := 32, 24
	pairs := randomPairs(n, 200, 42)
	eps := 1e-10

	for _, newton := range []bool{true, false} {
		want := runPhase(1, newton, n, nlocal, pairs)

		for _, nthreads := range []int{2, 3, 4} {
			got := runPhase(nthreads, newton, n, nlocal, pairs)

			if !eq.Float64sEps(
				[]float64{got.EngVdwl, got.EngCoul, got.EngBond},
				[]float64{want.EngVdwl, want.EngCoul, want.EngBond}, eps,
			) {
				t.Errorf("newton = %v, nthreads = %d: global energies "+
					"(%f, %f) don't match the single-threaded (%f, %f).",
					newton, nthreads, got.EngVdwl, got.EngCoul,
					want.EngVdwl, want.EngCoul)
			}
			if !eq.Float64sEps(got.Virial[:], want.Virial[:], eps) {
				t.Errorf("newton = %v, nthreads = %d: global virial %f "+
					"doesn't match the single-threaded %f.",
					newton, nthreads, got.Virial, want.Virial)
			}
			if !eq.Float64sEps(got.Eatom, want.Eatom, eps) {
				t.Errorf("newton = %v, nthreads = %d: per-atom energies "+
					"don't match the single-threaded run.", newton, nthreads)
			}
			if !eq.Sym64sEps(got.Vatom, want.Vatom, eps) {
				t.Errorf("newton = %v, nthreads = %d: per-atom virials "+
					"don't match the single-threaded run.", newton, nthreads)
			}
		}
	}
}

func TestIdempotentReset(t *testing.T) {
	acc := New(2)
	acc.Setup(allFlags(), true, 4, 0)
	acc.TallyPair(0, 1, 1.0, 1.0, 1.0, [3]float64{1, 2, 3}, 0)

	// Two setup/reduce cycles with nothing tallied in between must both
	// come out zero.
	for cycle := 0; cycle < 2; cycle++ {
		acc.Setup(allFlags(), true, 4, 0)

		res := &Results{
			Eatom: make([]float64, 4),
			Vatom: make([][6]float64, 4),
		}
		acc.Reduce(res)

		if res.EngVdwl != 0 || res.EngCoul != 0 || res.EngBond != 0 {
			t.Errorf("cycle %d: global energies nonzero after an empty "+
				"phase: (%f, %f, %f).", cycle,
				res.EngVdwl, res.EngCoul, res.EngBond)
		}
		if res.Virial != ([6]float64{}) {
			t.Errorf("cycle %d: global virial nonzero after an empty "+
				"phase: %f.", cycle, res.Virial)
		}
		if !eq.Float64s(res.Eatom, make([]float64, 4)) ||
			!eq.Sym64s(res.Vatom, make([][6]float64, 4)) {
			t.Errorf("cycle %d: per-atom accumulators nonzero after an "+
				"empty phase.", cycle)
		}
	}
}

func TestReduceForces(t *testing.T) {
	nall, nthreads := 5, 3
	f := make([][3]float64, nall*nthreads)
	for tid := 0; tid < nthreads; tid++ {
		view := partition.ForceView(f, nall, tid)
		for m := range view {
			for k := 0; k < 3; k++ {
				view[m][k] = float64((tid + 1) * (m + 1))
			}
		}
	}

	b := thread.NewBarrier(nthreads)
	thread.Run(nthreads, func(tid int) {
		ReduceForces(f, nall, nthreads, tid, b)
	})

	want := make([][3]float64, nall)
	for m := range want {
		for k := 0; k < 3; k++ {
			want[m][k] = float64(6 * (m + 1)) // 1+2+3 threads
		}
	}
	if !eq.Vec64s(f[:nall], want) {
		t.Errorf("block 0 is %f, expected %f.", f[:nall], want)
	}
	if !eq.Vec64s(f[nall:], make([][3]float64, 2*nall)) {
		t.Errorf("source blocks weren't zeroed: %f.", f[nall:])
	}
}

func TestReduceForcesSingleThread(t *testing.T) {
	f := [][3]float64{{1, 2, 3}, {4, 5, 6}}
	ReduceForces(f, 2, 1, 0, nil)
	if !eq.Vec64s(f, [][3]float64{{1, 2, 3}, {4, 5, 6}}) {
		t.Errorf("single-threaded reduction modified the force array: %f.", f)
	}
}

func TestReduceScalars(t *testing.T) {
	nmax, nrange, nthreads := 4, 3, 2
	x := []float64{1, 2, 3, 9, 10, 20, 30, 9}

	b := thread.NewBarrier(nthreads)
	thread.Run(nthreads, func(tid int) {
		ReduceScalars(x, nmax, nrange, nthreads, tid, b)
	})

	want := []float64{11, 22, 33, 9, 0, 0, 0, 9}
	if !eq.Float64s(x, want) {
		t.Errorf("expected %f after reduction, got %f.", want, x)
	}
}
