/*
 * fields.go, part of gopolar.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package polar

import (
	"math"

	"github.com/rmera/gopolar/mpole"
	"github.com/rmera/gopolar/scale"
)

//kernel holds the radial functions for one pair: the one used for
//the pair in full (Ewald real space or bare), the bare Coulomb one, and the Thole damping.
type kernel struct {
	base, bare, lambda mpole.Radial
}

//screened returns the radial function for a pair scaled by s, with or without damping.
func (k *kernel) screened(s float64, damped bool) mpole.Radial {
	if damped {
		return mpole.Screened(&k.base, &k.bare, s, &k.lambda)
	}
	return mpole.Screened(&k.base, &k.bare, s, nil)
}

func (E *Engine) kernel(i, j int, d float64, k *kernel) {
	k.bare = mpole.Bare(d)
	k.lambda = mpole.Thole(d, math.Min(E.thole[i], E.thole[j]), E.damp[i]*E.damp[j])
	switch {
	case !E.periodic():
		k.base = k.bare
	case d < E.o.cutoff:
		k.base = mpole.Erfc(d, E.alpha)
	default:
		k.base = mpole.Radial{}
	}
}

//displacement returns the vector from site j to point x, the minimum image one
//for periodic systems, and its length.
func (E *Engine) displacement(x [3]float64, j int) ([3]float64, float64) {
	r := [3]float64{x[0] - E.pos[j][0], x[1] - E.pos[j][1], x[2] - E.pos[j][2]}
	if E.periodic() {
		r = E.box.MinImage(r)
	}
	return r, math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
}

//forPairs calls f for each site j that interacts with site i in real space, with the
//displacement from j to i, its length, and the scale factors of j acting on i.
//Beyond the cutoff, only pairs with scale factors are visited, to remove the
//reciprocal-space part of their interaction.
func (E *Engine) forPairs(i int, f func(j int, r [3]float64, d float64, e scale.Entry)) {
	row := E.table.Row(i)
	k := 0
	for j := 0; j < E.n; j++ {
		if j == i {
			continue
		}
		for k < len(row) && row[k].J < j {
			k++
		}
		e := scale.One
		e.J = j
		listed := false
		if k < len(row) && row[k].J == j {
			e = row[k]
			listed = true
		}
		r, d := E.displacement(E.pos[i], j)
		if E.periodic() && d >= E.o.cutoff && !listed {
			if _, ok := E.table.Get(j, i); !ok {
				continue
			}
		}
		f(j, r, d, e)
	}
}

//fixedFields computes the fields of the permanent multipoles on each site,
//d-scaled for the direct set and p-scaled for the polar set.
func (E *Engine) fixedFields() {
	self := 0.0
	if E.periodic() {
		self = mpole.SelfFieldFactor(E.alpha)
	}
	parallel(E.n, E.o.cpus, func(lo, hi int) {
		var t mpole.Tensor
		var k kernel
		for i := lo; i < hi; i++ {
			var fd, fp mpole.Field
			E.forPairs(i, func(j int, r [3]float64, d float64, e scale.Entry) {
				E.kernel(i, j, d, &k)
				b := k.screened(e.D, true)
				t.Fill(r, &b, 3)
				E.lab[j].AddField(&t, 1, 1, &fd)
				if e.P != e.D {
					b = k.screened(e.P, true)
					t.Fill(r, &b, 3)
				}
				E.lab[j].AddField(&t, 1, 1, &fp)
			})
			rec := E.permRec[i].E()
			for c := 0; c < 3; c++ {
				s := rec[c] + self*E.lab[i].D[c]
				E.direct.Fixed[i][c] = -fd.G[c] + s
				E.polar.Fixed[i][c] = -fp.G[c] + s
			}
		}
	})
}

//InducedField computes the field that the induced dipoles mu create on each site,
//u-scaled and damped, including the reciprocal-space part and the self-field correction.
//It is called by the SCF solver for each set.
func (E *Engine) InducedField(name string, mu [][3]float64, dst [][3]float64) error {
	parallel(E.n, E.o.cpus, func(lo, hi int) {
		var t mpole.Tensor
		var k kernel
		for i := lo; i < hi; i++ {
			var f mpole.Field
			E.forPairs(i, func(j int, r [3]float64, d float64, e scale.Entry) {
				if mu[j] == [3]float64{} {
					return
				}
				E.kernel(i, j, d, &k)
				b := k.screened(e.U, true)
				t.Fill(r, &b, 2)
				m := mpole.Dipole(mu[j])
				m.AddField(&t, 1, 1, &f)
			})
			dst[i] = f.E()
		}
	})
	if !E.periodic() {
		return nil
	}
	for i := range mu {
		E.dip[i] = mpole.Dipole(mu[i])
		E.scratch[i].Reset()
	}
	if err := E.grid.Solve(E.indPot, E.box, E.pos, E.dip); err != nil {
		return errDecorate(err, "InducedField")
	}
	E.indPot.Gather(E.pos, 1, 1, E.scratch)
	self := mpole.SelfFieldFactor(E.alpha)
	for i := range dst {
		for c := 0; c < 3; c++ {
			dst[i][c] += -E.scratch[i].G[c] + self*mu[i][c]
		}
	}
	return nil
}
