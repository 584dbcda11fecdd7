/*
 * query.go, part of gopolar.
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
	"github.com/rmera/gopolar/mpole"
	"github.com/rmera/gopolar/scf"
	v3 "github.com/rmera/gopolar/v3"
)

//ElectrostaticPotential returns the electrostatic potential, in kJ/(mol e), at each of
//the points, created by the permanent multipoles and the direct induced dipoles
//of the last successful Execute. The potential is not defined on the sites themselves.
func (E *Engine) ElectrostaticPotential(points *v3.Matrix) ([]float64, error) {
	if !E.executed {
		return nil, newError(false, "ElectrostaticPotential", "no successful Execute to take the dipoles from")
	}
	if points == nil || points.NVecs() == 0 {
		return nil, newError(false, "ElectrostaticPotential", "no points given")
	}
	p := points.Vecs(nil)
	ret := make([]float64, len(p))
	parallel(len(p), E.o.cpus, func(lo, hi int) {
		var t mpole.Tensor
		var b mpole.Radial
		for i := lo; i < hi; i++ {
			var f mpole.Field
			for j := 0; j < E.n; j++ {
				r, d := E.displacement(p[i], j)
				switch {
				case !E.periodic():
					b = mpole.Bare(d)
				case d < E.o.cutoff:
					b = mpole.Erfc(d, E.alpha)
				default:
					continue
				}
				t.Fill(r, &b, 2)
				E.lab[j].AddField(&t, 0, 1, &f)
				m := mpole.Dipole(E.direct.Mu[j])
				m.AddField(&t, 0, 1, &f)
			}
			ret[i] = f.V
		}
	})
	if E.periodic() {
		rec := make([]mpole.Field, len(p))
		E.permPot.Gather(p, 0, 1, rec)
		E.dPot.Gather(p, 0, 1, rec)
		for i := range ret {
			ret[i] += rec[i].V
		}
	}
	for i := range ret {
		ret[i] *= Coulomb
	}
	return ret, nil
}

//SystemMultipoleMoments returns the total charge (e), dipole (e nm) and traceless
//quadrupole (e nm^2, the full 3x3 matrix, row by row) of the system about origin, 13 numbers
//in all. The direct induced dipoles of the last successful Execute are included.
//For periodic systems, the positions are used as given, without wrapping.
func (E *Engine) SystemMultipoleMoments(origin []float64) ([]float64, error) {
	if !E.executed {
		return nil, newError(false, "SystemMultipoleMoments", "no successful Execute to take the dipoles from")
	}
	if len(origin) != 3 {
		return nil, newError(false, "SystemMultipoleMoments", "origin must have 3 elements, not %d", len(origin))
	}
	var q float64
	var dip [3]float64
	var quad [3][3]float64
	for i := range E.lab {
		m := &E.lab[i]
		var r, D [3]float64
		for c := 0; c < 3; c++ {
			r[c] = E.pos[i][c] - origin[c]
			D[c] = m.D[c] + E.direct.Mu[i][c]
		}
		r2 := r[0]*r[0] + r[1]*r[1] + r[2]*r[2]
		rd := r[0]*D[0] + r[1]*D[1] + r[2]*D[2]
		q += m.Q
		for a := 0; a < 3; a++ {
			dip[a] += m.Q*r[a] + D[a]
			for b := 0; b < 3; b++ {
				v := 1.5*m.Q*r[a]*r[b] + 1.5*(r[a]*D[b]+D[a]*r[b]) + m.Theta[a][b]
				if a == b {
					v -= 0.5*m.Q*r2 + rd
				}
				quad[a][b] += v
			}
		}
	}
	ret := make([]float64, 0, 13)
	ret = append(ret, q)
	ret = append(ret, dip[:]...)
	for a := 0; a < 3; a++ {
		ret = append(ret, quad[a][:]...)
	}
	return ret, nil
}

//SCF returns the report of the last induced-dipole calculation.
func (E *Engine) SCF() scf.Report {
	return E.report
}

//Torques returns the torques on the sites, in kJ/mol, from the last Execute that
//computed forces.
func (E *Engine) Torques() *v3.Matrix {
	return v3.FromVecs(E.torque)
}

//InducedDipoles returns the direct and polar induced dipoles, in e nm.
func (E *Engine) InducedDipoles() (*v3.Matrix, *v3.Matrix) {
	return v3.FromVecs(E.direct.Mu), v3.FromVecs(E.polar.Mu)
}

//LabMultipoles returns a copy of the permanent multipoles in the lab frame, as
//of the last Execute.
func (E *Engine) LabMultipoles() []mpole.Multipole {
	ret := make([]mpole.Multipole, E.n)
	copy(ret, E.lab)
	return ret
}

//SetInduced sets the induced dipoles from which the next SCF starts, if warm starts
//are enabled, for instance from a checkpoint.
func (E *Engine) SetInduced(direct, polar [][3]float64) error {
	if len(direct) != E.n || len(polar) != E.n {
		return newError(true, "SetInduced", "induced dipoles for %d sites expected", E.n)
	}
	copy(E.direct.Mu, direct)
	copy(E.polar.Mu, polar)
	E.induced = true
	return nil
}
