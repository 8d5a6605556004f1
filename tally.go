package main

import (
	"log"
	"math/rand"
	"os"
	"runtime"

	"github.com/openmd/tally/lib/accum"
	"github.com/openmd/tally/lib/checkpoint"
	"github.com/openmd/tally/lib/config"
	"github.com/openmd/tally/lib/error"
	"github.com/openmd/tally/lib/partition"
	"github.com/openmd/tally/lib/thread"
)

// The demo box: atoms on a jittered cubic lattice interacting through a
// short-range Lennard-Jones kernel. The kernel stands in for the physics
// styles that would normally drive the accumulation library.
const (
	latticeWidth = 12
	spacing      = 1.2
	cutoff       = 2.0
	epsilon      = 1.0
	sigma        = 1.0
)

func main() {
	// Parse arguments.
	if len(os.Args) != 2 {
		error.External("Usage: tally <config file>. An example config "+
			"file:\n\n%s", config.ExampleConfig)
	}
	args, err := config.Parse(os.Args[1])
	if err != nil {
		error.External("Couldn't parse %s: %s", os.Args[1], err.Error())
	}

	thread.Set(args.Threads)
	nthreads := args.Threads
	if nthreads == -1 {
		nthreads = runtime.NumCPU()
	}

	x := latticeAtoms()
	pairs := neighborPairs(x)
	n := len(x)
	log.Printf("%d atoms, %d pairs, %d threads", n, len(pairs), nthreads)

	flags := accum.Flags{
		GlobalEnergy: args.GlobalEnergy, GlobalVirial: args.GlobalVirial,
		AtomEnergy: args.AtomEnergy, AtomVirial: args.AtomVirial,
	}

	// One full phase: setup, parallel tally, force reduction, then the
	// single-threaded energy/virial reduction after the join.
	acc := accum.New(nthreads)
	acc.Setup(flags, args.Newton, n, 0)

	f := make([][3]float64, nthreads*n)
	b := thread.NewBarrier(nthreads)

	thread.Run(nthreads, func(tid int) {
		fView, lo, hi := partition.Loop(f, len(pairs), n, nthreads, tid)
		for p := lo; p < hi; p++ {
			i, j := pairs[p][0], pairs[p][1]
			del := [3]float64{
				x[i][0] - x[j][0], x[i][1] - x[j][1], x[i][2] - x[j][2],
			}
			r2 := del[0]*del[0] + del[1]*del[1] + del[2]*del[2]
			evdwl, fpair := lennardJones(r2)

			for k := 0; k < 3; k++ {
				fView[i][k] += del[k] * fpair
				fView[j][k] -= del[k] * fpair
			}
			acc.TallyPair(i, j, evdwl, 0, fpair, del, tid)
		}
		accum.ReduceForces(f, n, nthreads, tid, b)
	})

	res := &accum.Results{}
	if flags.AtomEnergy {
		res.Eatom = make([]float64, n)
	}
	if flags.AtomVirial {
		res.Vatom = make([][6]float64, n)
	}
	acc.Reduce(res)

	log.Printf("E_vdwl = %.8g", res.EngVdwl)
	log.Printf("virial = %.6g", res.Virial)
	log.Printf("Scratch memory: %d KB", acc.MemoryUsage()>>10)

	if args.Checkpoint != "" {
		if err := checkpoint.Write(args.Checkpoint, res); err != nil {
			error.External("Couldn't write the checkpoint %s: %s",
				args.Checkpoint, err.Error())
		}
		log.Printf("Wrote checkpoint to %s", args.Checkpoint)
	}
}

// latticeAtoms places atoms on a cubic lattice with some jitter so the demo
// forces aren't degenerate.
func latticeAtoms() [][3]float64 {
	gen := rand.New(rand.NewSource(0))
	x := make([][3]float64, 0, latticeWidth*latticeWidth*latticeWidth)
	for iz := 0; iz < latticeWidth; iz++ {
		for iy := 0; iy < latticeWidth; iy++ {
			for ix := 0; ix < latticeWidth; ix++ {
				x = append(x, [3]float64{
					(float64(ix) + 0.2*gen.Float64()) * spacing,
					(float64(iy) + 0.2*gen.Float64()) * spacing,
					(float64(iz) + 0.2*gen.Float64()) * spacing,
				})
			}
		}
	}
	return x
}

// neighborPairs returns every pair within the cutoff. Brute force is fine
// at demo sizes; a real driver would bring its own neighbor list.
func neighborPairs(x [][3]float64) [][2]int {
	pairs := [][2]int{}
	for i := range x {
		for j := i + 1; j < len(x); j++ {
			dx := x[i][0] - x[j][0]
			dy := x[i][1] - x[j][1]
			dz := x[i][2] - x[j][2]
			if dx*dx+dy*dy+dz*dz < cutoff*cutoff {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// lennardJones returns the pair energy and the force over distance at
// squared separation r2.
func lennardJones(r2 float64) (evdwl, fpair float64) {
	sr2 := sigma * sigma / r2
	sr6 := sr2 * sr2 * sr2
	sr12 := sr6 * sr6
	evdwl = 4 * epsilon * (sr12 - sr6)
	fpair = 24 * epsilon * (2*sr12 - sr6) / r2
	return evdwl, fpair
}
