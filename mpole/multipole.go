/*
 * multipole.go, part of gopolar.
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

package mpole

//Multipole is a point multipole expansion up to quadrupole order, in the
//lab frame. Theta is the traceless (Buckingham) quadrupole.
//The potential of a Multipole at a displacement r from it is
//
//	phi(r) = q f(r) - d.grad f(r) + (1/3) Theta:grad grad f(r)
//
//where f is the radial interaction function (1/r for bare Coulomb).
type Multipole struct {
	Q     float64
	D     [3]float64
	Theta [3][3]float64
}

//Dipole returns a Multipole with only the dipole d.
func Dipole(d [3]float64) Multipole {
	return Multipole{D: d}
}

//Order returns 2 if m has a non-zero quadrupole, 1 if it has a non-zero
//dipole, and 0 otherwise.
func (m *Multipole) Order() int {
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			if m.Theta[a][b] != 0 {
				return 2
			}
		}
	}
	if m.D != [3]float64{} {
		return 1
	}
	return 0
}

//Field is the value of a potential and its first three derivatives
//at one point: V, grad V, grad grad V and grad grad grad V.
//The electric field is -G.
type Field struct {
	V float64
	G [3]float64
	H [3][3]float64
	T [3][3][3]float64
}

//Add adds w times o to f.
func (f *Field) Add(o *Field, w float64) {
	f.V += w * o.V
	for a := 0; a < 3; a++ {
		f.G[a] += w * o.G[a]
		for b := 0; b < 3; b++ {
			f.H[a][b] += w * o.H[a][b]
			for c := 0; c < 3; c++ {
				f.T[a][b][c] += w * o.T[a][b][c]
			}
		}
	}
}

//Reset sets f to zero.
func (f *Field) Reset() {
	*f = Field{}
}

//E returns the electric field, -G.
func (f *Field) E() [3]float64 {
	return [3]float64{-f.G[0], -f.G[1], -f.G[2]}
}

//the derivative of phi of m along nx, ny, nz.
func (m *Multipole) deriv(t *Tensor, c [3]int) float64 {
	d := &t.d
	ret := m.Q * d[c[0]][c[1]][c[2]]
	for b := 0; b < 3; b++ {
		if m.D[b] == 0 {
			continue
		}
		cb := c
		cb[b]++
		ret -= m.D[b] * d[cb[0]][cb[1]][cb[2]]
	}
	for b := 0; b < 3; b++ {
		for e := 0; e < 3; e++ {
			if m.Theta[b][e] == 0 {
				continue
			}
			cbe := c
			cbe[b]++
			cbe[e]++
			ret += m.Theta[b][e] * d[cbe[0]][cbe[1]][cbe[2]] / 3
		}
	}
	return ret
}

//AddField accumulates into f, multiplied by w, the potential of m and its derivatives
//up to order k at the point whose displacement from m was given to t.Fill.
//t must have been filled up to at least k+m.Order(). It panics otherwise.
func (m *Multipole) AddField(t *Tensor, k int, w float64, f *Field) {
	if k+m.Order() > t.max {
		panic(ErrOrder)
	}
	var c [3]int
	f.V += w * m.deriv(t, c)
	if k < 1 {
		return
	}
	for a := 0; a < 3; a++ {
		c = [3]int{}
		c[a]++
		f.G[a] += w * m.deriv(t, c)
	}
	if k < 2 {
		return
	}
	for a := 0; a < 3; a++ {
		for b := a; b < 3; b++ {
			c = [3]int{}
			c[a]++
			c[b]++
			v := w * m.deriv(t, c)
			f.H[a][b] += v
			if a != b {
				f.H[b][a] += v
			}
		}
	}
	if k < 3 {
		return
	}
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			for e := 0; e < 3; e++ {
				c = [3]int{}
				c[a]++
				c[b]++
				c[e]++
				f.T[a][b][e] += w * m.deriv(t, c)
			}
		}
	}
}

//Energy returns the interaction energy of m with the potential f,
//q V + d.G + (1/3) Theta:H. f needs to be at least of order 2
//if m has a quadrupole.
func (m *Multipole) Energy(f *Field) float64 {
	e := m.Q * f.V
	for a := 0; a < 3; a++ {
		e += m.D[a] * f.G[a]
		for b := 0; b < 3; b++ {
			e += m.Theta[a][b] * f.H[a][b] / 3
		}
	}
	return e
}

//Force returns the force that the potential f exerts on m,
//-(q G + d.H + (1/3) Theta:T). It needs a field one order higher than Energy.
func (m *Multipole) Force(f *Field) [3]float64 {
	var F [3]float64
	for a := 0; a < 3; a++ {
		v := m.Q * f.G[a]
		for b := 0; b < 3; b++ {
			v += m.D[b] * f.H[b][a]
			for c := 0; c < 3; c++ {
				v += m.Theta[b][c] * f.T[b][c][a] / 3
			}
		}
		F[a] = -v
	}
	return F
}

//Torque returns the torque that the potential f exerts on m, with respect
//to the position of m: -d x G for the dipole, plus
//(2/3) eps_abc (Theta H)_cb for the quadrupole.
func (m *Multipole) Torque(f *Field) [3]float64 {
	d := m.D
	G := f.G
	t := [3]float64{
		-(d[1]*G[2] - d[2]*G[1]),
		-(d[2]*G[0] - d[0]*G[2]),
		-(d[0]*G[1] - d[1]*G[0]),
	}
	var M [3][3]float64
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			for c := 0; c < 3; c++ {
				M[a][b] += m.Theta[a][c] * f.H[c][b]
			}
		}
	}
	t[0] += 2 * (M[2][1] - M[1][2]) / 3
	t[1] += 2 * (M[0][2] - M[2][0]) / 3
	t[2] += 2 * (M[1][0] - M[0][1]) / 3
	return t
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const ErrOrder = PanicMsg("gopolar/mpole: derivative order too high for the tensor")
