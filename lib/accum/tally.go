package accum

/* tally.go contains the per-interaction tally rules. Each function adds one
interaction's contribution to the scratch owned by worker tid and never
touches another worker's scratch, which is why kernels can call them without
locks. */

const (
	half    = 0.5
	third   = 1.0 / 3.0
	quarter = 0.25
)

// TallyPair adds one pairwise interaction between atoms i and j to worker
// tid's scratch. evdwl and ecoul are the pair's van der Waals and Coulomb
// energies, fpair the force magnitude divided by the pair distance, and del
// the displacement from j to i. Under a Newton-symmetric law the full
// contribution is tallied once; otherwise each side contributes half, and
// only when locally owned, so a pair straddling a partition boundary is not
// double counted. Ghost-indexed per-atom slots are guarded the same way.
func (acc *Accumulator) TallyPair(
	i, j int, evdwl, ecoul, fpair float64, del [3]float64, tid int,
) {
	acc.tallyPairEnergy(i, j, evdwl, ecoul, tid)

	if acc.flags.virial() {
		v := [6]float64{
			del[0] * del[0] * fpair,
			del[1] * del[1] * fpair,
			del[2] * del[2] * fpair,
			del[0] * del[1] * fpair,
			del[0] * del[2] * fpair,
			del[1] * del[2] * fpair,
		}
		acc.tallyPairVirial(i, j, &v, tid)
	}
}

// TallyPairXYZ is TallyPair for kernels that compute an explicit force
// vector f on atom i rather than a scalar force over distance.
func (acc *Accumulator) TallyPairXYZ(
	i, j int, evdwl, ecoul float64, f, del [3]float64, tid int,
) {
	acc.tallyPairEnergy(i, j, evdwl, ecoul, tid)

	if acc.flags.virial() {
		v := [6]float64{
			del[0] * f[0],
			del[1] * f[1],
			del[2] * f[2],
			del[0] * f[1],
			del[0] * f[2],
			del[1] * f[2],
		}
		acc.tallyPairVirial(i, j, &v, tid)
	}
}

func (acc *Accumulator) tallyPairEnergy(i, j int, evdwl, ecoul float64, tid int) {
	if !acc.flags.energy() {
		return
	}

	if acc.flags.GlobalEnergy {
		if acc.newton {
			acc.engVdwl[tid] += evdwl
			acc.engCoul[tid] += ecoul
		} else {
			if i < acc.nlocal {
				acc.engVdwl[tid] += half * evdwl
				acc.engCoul[tid] += half * ecoul
			}
			if j < acc.nlocal {
				acc.engVdwl[tid] += half * evdwl
				acc.engCoul[tid] += half * ecoul
			}
		}
	}
	if acc.flags.AtomEnergy {
		// A pair's energy is split equally between its two atoms.
		epairhalf := half * (evdwl + ecoul)
		if acc.newton || i < acc.nlocal {
			acc.eatom[tid][i] += epairhalf
		}
		if acc.newton || j < acc.nlocal {
			acc.eatom[tid][j] += epairhalf
		}
	}
}

// tallyPairVirial applies the pair splitting rules to a 6-component virial
// contribution. Shared by TallyPair and TallyPairXYZ.
func (acc *Accumulator) tallyPairVirial(i, j int, v *[6]float64, tid int) {
	if acc.flags.GlobalVirial {
		vt := &acc.virial[tid]
		if acc.newton {
			for k := 0; k < 6; k++ {
				vt[k] += v[k]
			}
		} else {
			if i < acc.nlocal {
				for k := 0; k < 6; k++ {
					vt[k] += half * v[k]
				}
			}
			if j < acc.nlocal {
				for k := 0; k < 6; k++ {
					vt[k] += half * v[k]
				}
			}
		}
	}
	if acc.flags.AtomVirial {
		if acc.newton || i < acc.nlocal {
			vi := &acc.vatom[tid][i]
			for k := 0; k < 6; k++ {
				vi[k] += half * v[k]
			}
		}
		if acc.newton || j < acc.nlocal {
			vj := &acc.vatom[tid][j]
			for k := 0; k < 6; k++ {
				vj[k] += half * v[k]
			}
		}
	}
}

// Tally3 adds one three-body interaction between atoms i, j, and k to
// worker tid's scratch. fj and fk are the forces on j and k, and drji, drki
// their displacements from i. The energy is shared equally by the three
// atoms.
func (acc *Accumulator) Tally3(
	i, j, k int, evdwl, ecoul float64, fj, fk, drji, drki [3]float64, tid int,
) {
	if acc.flags.energy() {
		if acc.flags.GlobalEnergy {
			acc.engVdwl[tid] += evdwl
			acc.engCoul[tid] += ecoul
		}
		if acc.flags.AtomEnergy {
			ethird := third * (evdwl + ecoul)
			for _, idx := range [3]int{i, j, k} {
				if acc.newton || idx < acc.nlocal {
					acc.eatom[tid][idx] += ethird
				}
			}
		}
	}

	if acc.flags.virial() {
		v := [6]float64{
			drji[0]*fj[0] + drki[0]*fk[0],
			drji[1]*fj[1] + drki[1]*fk[1],
			drji[2]*fj[2] + drki[2]*fk[2],
			drji[0]*fj[1] + drki[0]*fk[1],
			drji[0]*fj[2] + drki[0]*fk[2],
			drji[1]*fj[2] + drki[1]*fk[2],
		}
		if acc.flags.GlobalVirial {
			vt := &acc.virial[tid]
			for c := 0; c < 6; c++ {
				vt[c] += v[c]
			}
		}
		if acc.flags.AtomVirial {
			for _, idx := range [3]int{i, j, k} {
				if acc.newton || idx < acc.nlocal {
					vi := &acc.vatom[tid][idx]
					for c := 0; c < 6; c++ {
						vi[c] += third * v[c]
					}
				}
			}
		}
	}
}

// Tally4 adds one four-body (dihedral-style) interaction between atoms i,
// j, k, and m to worker tid's scratch. The energy goes to the bonded
// channel and is shared equally by the four atoms. fi, fj, and fk are the
// forces on the first three atoms and drim, drjm, drkm their displacements
// from m.
func (acc *Accumulator) Tally4(
	i, j, k, m int, ebond float64,
	fi, fj, fk, drim, drjm, drkm [3]float64, tid int,
) {
	if acc.flags.energy() {
		if acc.flags.GlobalEnergy {
			acc.engBond[tid] += ebond
		}
		if acc.flags.AtomEnergy {
			equarter := quarter * ebond
			for _, idx := range [4]int{i, j, k, m} {
				if acc.newton || idx < acc.nlocal {
					acc.eatom[tid][idx] += equarter
				}
			}
		}
	}

	if acc.flags.virial() {
		v := [6]float64{
			drim[0]*fi[0] + drjm[0]*fj[0] + drkm[0]*fk[0],
			drim[1]*fi[1] + drjm[1]*fj[1] + drkm[1]*fk[1],
			drim[2]*fi[2] + drjm[2]*fj[2] + drkm[2]*fk[2],
			drim[0]*fi[1] + drjm[0]*fj[1] + drkm[0]*fk[1],
			drim[0]*fi[2] + drjm[0]*fj[2] + drkm[0]*fk[2],
			drim[1]*fi[2] + drjm[1]*fj[2] + drkm[1]*fk[2],
		}
		if acc.flags.GlobalVirial {
			vt := &acc.virial[tid]
			for c := 0; c < 6; c++ {
				vt[c] += v[c]
			}
		}
		if acc.flags.AtomVirial {
			for _, idx := range [4]int{i, j, k, m} {
				if acc.newton || idx < acc.nlocal {
					vi := &acc.vatom[tid][idx]
					for c := 0; c < 6; c++ {
						vi[c] += quarter * v[c]
					}
				}
			}
		}
	}
}
