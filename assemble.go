/*
 * assemble.go, part of gopolar.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package polar

import (
	"github.com/rmera/gopolar/mpole"
	"github.com/rmera/gopolar/scale"
	"gonum.org/v1/gonum/floats"
)

func addTo(dst *[3]float64, w float64, v [3]float64) {
	dst[0] += w * v[0]
	dst[1] += w * v[1]
	dst[2] += w * v[2]
}

//contribution is a force on one site, coming from the torque on another.
type contribution struct {
	site  int
	force [3]float64
}

//assemble computes the energy and, if forces is true, the forces and torques, from the
//lab-frame multipoles and the converged induced dipoles. Each site only gets
//contributions written by the goroutine that handles it, so the whole force on a site
//is computed, as a target, from all its partners. Torques are turned into forces
//at the end, serially.
//The polarization forces come from
//
//	(1/2) sum_ij [p_ij W(mud_i, M_j) + d_ij W(mup_i, M_j)] + (1/2) sum_ij u_ij W(mud_i, mup_j)
//
//with the induced dipoles fixed, where W(a, b) is the interaction energy of a in the potential of b.
func (E *Engine) assemble(forces bool) float64 {
	periodic := E.periodic()
	self := 0.0
	if periodic {
		self = mpole.SelfFieldFactor(E.alpha)
	}
	kperm := 2
	if forces {
		kperm = 3
	}
	parallel(E.n, E.o.cpus, func(lo, hi int) {
		var t mpole.Tensor
		var k kernel
		for i := lo; i < hi; i++ {
			var fm, fp, fd, gsum, up, ud mpole.Field
			mi := &E.lab[i]
			mud := mpole.Dipole(E.direct.Mu[i])
			mup := mpole.Dipole(E.polar.Mu[i])
			E.forPairs(i, func(j int, r [3]float64, d float64, e scale.Entry) {
				E.kernel(i, j, d, &k)
				b := k.screened(e.M, false)
				t.Fill(r, &b, kperm+2)
				E.lab[j].AddField(&t, kperm, 1, &fm)
				if !forces {
					return
				}
				//permanent field on the induced dipoles of i
				b = k.screened(e.P, true)
				t.Fill(r, &b, 4)
				E.lab[j].AddField(&t, 2, 1, &fp)
				b = k.screened(e.D, true)
				t.Fill(r, &b, 4)
				E.lab[j].AddField(&t, 2, 1, &fd)
				//induced field on the permanent multipoles of i. The scale factors are those
				//of the induced dipole's site as a target.
				eji, _ := E.table.Get(j, i)
				dj := mpole.Dipole(E.direct.Mu[j])
				pj := mpole.Dipole(E.polar.Mu[j])
				b = k.screened(eji.P, true)
				t.Fill(r, &b, 4)
				dj.AddField(&t, 3, 0.5, &gsum)
				b = k.screened(eji.D, true)
				t.Fill(r, &b, 4)
				pj.AddField(&t, 3, 0.5, &gsum)
				//induced-induced
				b = k.screened(e.U, true)
				t.Fill(r, &b, 3)
				pj.AddField(&t, 2, 1, &up)
				b = k.screened(eji.U, true)
				t.Fill(r, &b, 3)
				dj.AddField(&t, 2, 1, &ud)
			})
			E.eperm[i] = mi.Energy(&fm)/2 + mi.Energy(&E.permRec[i])/2
			if periodic {
				E.eperm[i] += mpole.SelfEnergy(mi, E.alpha)
			}
			if !forces {
				continue
			}
			F := mi.Force(&fm)
			tau := mi.Torque(&fm)
			addTo(&F, 0.5, mud.Force(&fp))
			addTo(&F, 0.5, mup.Force(&fd))
			addTo(&F, 1, mi.Force(&gsum))
			addTo(&tau, 1, mi.Torque(&gsum))
			addTo(&F, 0.5, mud.Force(&up))
			addTo(&F, 0.5, mup.Force(&ud))
			addTo(&F, 1, mi.Force(&E.permRec[i]))
			addTo(&tau, 1, mi.Torque(&E.permRec[i]))
			if periodic {
				var bar mpole.Field
				bar.Add(&E.recD[i], 0.5)
				bar.Add(&E.recP[i], 0.5)
				addTo(&F, 1, mi.Force(&bar))
				addTo(&tau, 1, mi.Torque(&bar))
				var mbar [3]float64
				for c := 0; c < 3; c++ {
					mbar[c] = (E.direct.Mu[i][c] + E.polar.Mu[i][c]) / 2
				}
				mb := mpole.Dipole(mbar)
				addTo(&F, 1, mb.Force(&E.permRec[i]))
				addTo(&F, 0.5, mud.Force(&E.recP[i]))
				addTo(&F, 0.5, mup.Force(&E.recD[i]))
				//self torque, from the self-field correction
				di := mi.D
				addTo(&tau, self, [3]float64{
					di[1]*mbar[2] - di[2]*mbar[1],
					di[2]*mbar[0] - di[0]*mbar[2],
					di[0]*mbar[1] - di[1]*mbar[0],
				})
			}
			E.force[i] = F
			E.torque[i] = tau
		}
	})
	energy := floats.Sum(E.eperm)
	for i, mu := range E.direct.Mu {
		f := E.polar.Fixed[i]
		energy -= (mu[0]*f[0] + mu[1]*f[1] + mu[2]*f[2]) / 2
	}
	energy *= Coulomb
	if forces {
		E.scatter()
	}
	return energy
}

//scatter puts the forces, and the forces coming from the torques, into the total,
//in kJ/(mol nm).
func (E *Engine) scatter() {
	list := make([]contribution, 0, 3*E.n)
	for i := range E.force {
		for c := 0; c < 3; c++ {
			E.force[i][c] *= Coulomb
			E.torque[i][c] *= Coulomb
		}
		E.total[i] = E.force[i]
		s := &E.sites[i]
		fi, fz, fx := E.frames[i].Scatter(E.torque[i])
		switch s.Axis.Neighbors() {
		case 2:
			list = append(list, contribution{i, fi}, contribution{s.ZAtom, fz}, contribution{s.XAtom, fx})
		case 1:
			list = append(list, contribution{i, fi}, contribution{s.ZAtom, fz})
		}
	}
	for _, c := range list {
		addTo(&E.total[c.site], 1, c.force)
	}
}
