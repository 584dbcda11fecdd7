/*
 * pme.go, part of gopolar.
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

package pme

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/rmera/gopolar/mpole"
	"github.com/rmera/gopolar/pbc"
	"gonum.org/v1/gonum/dsp/fourier"
)

//Grid is a smooth particle-mesh Ewald solver for point multipoles.
//It owns the charge grid, the FFT plans and the scratch space, so a Grid
//must not be used from more than one goroutine at the time.
type Grid struct {
	n      [3]int
	order  int
	alpha  float64
	cpus   int
	moduli [3][]float64
	data   []complex128
	work   [][]float64 //one private real grid per worker, for spreading
	plans  [][3]*fourier.CmplxFFT
	lines  [][2][]complex128
	infl   []float64 //the influence function for the current box
	inflOf pbc.Box
}

//New returns a solver with grid dimensions n, B-spline order and Ewald
//coefficient alpha, which will use up to cpus goroutines (all available if cpus<1).
func New(n [3]int, order int, alpha float64, cpus int) (*Grid, error) {
	if order < MinOrder || order > MaxOrder {
		return nil, fmt.Errorf("pme: B-spline order %d out of the supported range [%d,%d]", order, MinOrder, MaxOrder)
	}
	if alpha <= 0 {
		return nil, fmt.Errorf("pme: Ewald coefficient must be positive, got %g", alpha)
	}
	for i, v := range n {
		if v < order {
			return nil, fmt.Errorf("pme: grid dimension %d (%d) smaller than the B-spline order (%d)", i, v, order)
		}
		if !Smooth(v) {
			return nil, fmt.Errorf("pme: grid dimension %d (%d) has prime factors other than 2, 3, 5 and 7", i, v)
		}
	}
	if cpus < 1 {
		cpus = runtime.NumCPU()
	}
	g := &Grid{n: n, order: order, alpha: alpha, cpus: cpus}
	for i := 0; i < 3; i++ {
		g.moduli[i] = moduli(n[i], order)
	}
	size := n[0] * n[1] * n[2]
	g.data = make([]complex128, size)
	g.work = make([][]float64, cpus)
	g.plans = make([][3]*fourier.CmplxFFT, cpus)
	g.lines = make([][2][]complex128, cpus)
	maxn := max(n[0], max(n[1], n[2]))
	for w := 0; w < cpus; w++ {
		g.work[w] = make([]float64, size)
		for i := 0; i < 3; i++ {
			g.plans[w][i] = fourier.NewCmplxFFT(n[i])
		}
		g.lines[w] = [2][]complex128{make([]complex128, maxn), make([]complex128, maxn)}
	}
	g.infl = make([]float64, size)
	return g, nil
}

//Dims returns the grid dimensions.
func (g *Grid) Dims() [3]int {
	return g.n
}

//Alpha returns the Ewald coefficient.
func (g *Grid) Alpha() float64 {
	return g.alpha
}

//Order returns the B-spline order.
func (g *Grid) Order() int {
	return g.order
}

//parallel splits the range [0,n) among at most cpus goroutines. f gets the
//worker number and its part of the range.
func parallel(n, cpus int, f func(w, lo, hi int)) {
	if cpus > n {
		cpus = n
	}
	if cpus <= 1 {
		if n > 0 {
			f(0, 0, n)
		}
		return
	}
	var wg sync.WaitGroup
	chunk := (n + cpus - 1) / cpus
	for w := 0; w < cpus; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			f(w, lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()
}

//fractional returns the matrix F, F[a][c] = n_a R_ac, which takes derivatives with
//respect to the scaled fractional coordinates to Cartesian ones.
func (g *Grid) fractional(box *pbc.Box) [3][3]float64 {
	R := box.Reciprocal()
	var F [3][3]float64
	for a := 0; a < 3; a++ {
		for c := 0; c < 3; c++ {
			F[a][c] = float64(g.n[a]) * R[a][c]
		}
	}
	return F
}

//splines computes the spline data of the point x.
func (g *Grid) splines(F *[3][3]float64, x [3]float64, s *[3]spline) {
	for a := 0; a < 3; a++ {
		u := F[a][0]*x[0] + F[a][1]*x[1] + F[a][2]*x[2]
		s[a].fill(u, g.n[a], g.order)
	}
}

//toFractional returns the charge, dipole and quadrupole of m in scaled
//fractional coordinates, F d and F Theta F^T.
func toFractional(F *[3][3]float64, m *mpole.Multipole) (float64, [3]float64, [3][3]float64) {
	var d [3]float64
	var q, tmp [3][3]float64
	for a := 0; a < 3; a++ {
		for c := 0; c < 3; c++ {
			d[a] += F[a][c] * m.D[c]
			for e := 0; e < 3; e++ {
				tmp[a][e] += F[a][c] * m.Theta[c][e]
			}
		}
	}
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			for e := 0; e < 3; e++ {
				q[a][b] += tmp[a][e] * F[b][e]
			}
		}
	}
	return m.Q, d, q
}

func (g *Grid) index(i0, i1, i2 int) int {
	return (i0*g.n[1]+i1)*g.n[2] + i2
}

//spread puts the multipoles m at positions pos onto the complex grid.
func (g *Grid) spread(F *[3][3]float64, pos [][3]float64, m []mpole.Multipole) {
	o := g.order
	parallel(len(pos), g.cpus, func(w, lo, hi int) {
		grid := g.work[w]
		var s [3]spline
		for p := lo; p < hi; p++ {
			g.splines(F, pos[p], &s)
			q, d, t := toFractional(F, &m[p])
			for t0 := 0; t0 < o; t0++ {
				i0 := (s[0].base - t0 + g.n[0]) % g.n[0]
				a := &s[0].w[t0]
				for t1 := 0; t1 < o; t1++ {
					i1 := (s[1].base - t1 + g.n[1]) % g.n[1]
					b := &s[1].w[t1]
					row := g.index(i0, i1, 0)
					for t2 := 0; t2 < o; t2++ {
						i2 := (s[2].base - t2 + g.n[2]) % g.n[2]
						c := &s[2].w[t2]
						v := q*a[0]*b[0]*c[0] +
							d[0]*a[1]*b[0]*c[0] + d[1]*a[0]*b[1]*c[0] + d[2]*a[0]*b[0]*c[1] +
							(t[0][0]*a[2]*b[0]*c[0]+t[1][1]*a[0]*b[2]*c[0]+t[2][2]*a[0]*b[0]*c[2]+
								2*t[0][1]*a[1]*b[1]*c[0]+2*t[0][2]*a[1]*b[0]*c[1]+2*t[1][2]*a[0]*b[1]*c[1])/3
						grid[row+i2] += v
					}
				}
			}
		}
	})
	//the private grids are left zeroed for the next call.
	parallel(len(g.data), g.cpus, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			v := 0.0
			for _, grid := range g.work {
				v += grid[i]
				grid[i] = 0
			}
			g.data[i] = complex(v, 0)
		}
	})
}

//influence computes the reciprocal-space influence function for box.
func (g *Grid) influence(box *pbc.Box) {
	if g.inflOf == *box {
		return
	}
	R := box.Reciprocal()
	vol := box.Volume()
	a2 := math.Pi * math.Pi / (g.alpha * g.alpha)
	den := 1 / (math.Pi * vol)
	n := g.n
	parallel(n[0], g.cpus, func(_, lo, hi int) {
		for m0 := lo; m0 < hi; m0++ {
			f0 := signed(m0, n[0])
			for m1 := 0; m1 < n[1]; m1++ {
				f1 := signed(m1, n[1])
				for m2 := 0; m2 < n[2]; m2++ {
					f2 := signed(m2, n[2])
					idx := g.index(m0, m1, m2)
					if m0 == 0 && m1 == 0 && m2 == 0 {
						g.infl[idx] = 0
						continue
					}
					var k [3]float64
					for c := 0; c < 3; c++ {
						k[c] = f0*R[0][c] + f1*R[1][c] + f2*R[2][c]
					}
					k2 := k[0]*k[0] + k[1]*k[1] + k[2]*k[2]
					b := g.moduli[0][m0] * g.moduli[1][m1] * g.moduli[2][m2]
					g.infl[idx] = den * math.Exp(-a2*k2) / (k2 * b)
				}
			}
		}
	})
	g.inflOf = *box
}

func signed(m, n int) float64 {
	if m > n/2 {
		return float64(m - n)
	}
	return float64(m)
}

//fft3 transforms the complex grid in place along its three dimensions.
func (g *Grid) fft3(forward bool) {
	n := g.n
	strides := [3]int{n[1] * n[2], n[2], 1}
	for axis := 0; axis < 3; axis++ {
		o1, o2 := (axis+1)%3, (axis+2)%3
		nlines := n[o1] * n[o2]
		ax := axis
		parallel(nlines, g.cpus, func(w, lo, hi int) {
			in := g.lines[w][0][:n[ax]]
			out := g.lines[w][1][:n[ax]]
			plan := g.plans[w][ax]
			for l := lo; l < hi; l++ {
				start := (l/n[o2])*strides[o1] + (l%n[o2])*strides[o2]
				for k := 0; k < n[ax]; k++ {
					in[k] = g.data[start+k*strides[ax]]
				}
				if forward {
					plan.Coefficients(out, in)
				} else {
					plan.Sequence(out, in)
				}
				for k := 0; k < n[ax]; k++ {
					g.data[start+k*strides[ax]] = out[k]
				}
			}
		})
	}
}

//Potential is the reciprocal-space potential created by a set of multipoles
//in a given box. It can be interpolated at any point.
type Potential struct {
	g   *Grid
	psi []float64
	F   [3][3]float64
	box pbc.Box
}

//NewPotential returns an empty potential for the grid g.
func (g *Grid) NewPotential() *Potential {
	return &Potential{g: g, psi: make([]float64, len(g.data))}
}

//Solve computes, into dst, the reciprocal-space potential of the multipoles m placed at pos, in box.
//dst must have been obtained from g.NewPotential.
func (g *Grid) Solve(dst *Potential, box pbc.Box, pos [][3]float64, m []mpole.Multipole) error {
	if len(pos) != len(m) {
		return fmt.Errorf("pme: %d positions for %d multipoles", len(pos), len(m))
	}
	if dst.g != g {
		return fmt.Errorf("pme: potential belongs to a different grid")
	}
	if box.Volume() <= 0 {
		return fmt.Errorf("pme: invalid box %v", box)
	}
	F := g.fractional(&box)
	g.spread(&F, pos, m)
	g.influence(&box)
	g.fft3(true)
	for i, v := range g.infl {
		g.data[i] *= complex(v, 0)
	}
	g.fft3(false)
	for i, v := range g.data {
		dst.psi[i] = real(v)
	}
	dst.F = F
	dst.box = box
	return nil
}

//the derivative orders gathered, as (x,y,z) counts in fractional coordinates.
var gathered = func() [][3]int {
	var ret [][3]int
	for a := 0; a <= 3; a++ {
		for b := 0; a+b <= 3; b++ {
			for c := 0; a+b+c <= 3; c++ {
				ret = append(ret, [3]int{a, b, c})
			}
		}
	}
	return ret
}()

//Gather interpolates the potential and its Cartesian derivatives up to order k (at most 3)
//at the points pos, and adds them, multiplied by w, to dst.
func (p *Potential) Gather(pos [][3]float64, k int, w float64, dst []mpole.Field) {
	g := p.g
	o := g.order
	parallel(len(pos), g.cpus, func(_, lo, hi int) {
		var s [3]spline
		var frac [4][4][4]float64
		for i := lo; i < hi; i++ {
			g.splines(&p.F, pos[i], &s)
			frac = [4][4][4]float64{}
			for t0 := 0; t0 < o; t0++ {
				i0 := (s[0].base - t0 + g.n[0]) % g.n[0]
				a := &s[0].w[t0]
				for t1 := 0; t1 < o; t1++ {
					i1 := (s[1].base - t1 + g.n[1]) % g.n[1]
					b := &s[1].w[t1]
					row := g.index(i0, i1, 0)
					var c [4]float64 //sums along the third dimension for each derivative order
					for t2 := 0; t2 < o; t2++ {
						i2 := (s[2].base - t2 + g.n[2]) % g.n[2]
						psi := p.psi[row+i2]
						for d := 0; d < 4; d++ {
							c[d] += psi * s[2].w[t2][d]
						}
					}
					for _, e := range gathered {
						frac[e[0]][e[1]][e[2]] += a[e[0]] * b[e[1]] * c[e[2]]
					}
				}
			}
			p.cartesian(&frac, k, w, &dst[i])
		}
	})
}

//cartesian turns derivatives with respect to scaled fractional coordinates into Cartesian ones.
func (p *Potential) cartesian(frac *[4][4][4]float64, k int, w float64, f *mpole.Field) {
	F := &p.F
	at := func(idx ...int) float64 {
		var c [3]int
		for _, v := range idx {
			c[v]++
		}
		return frac[c[0]][c[1]][c[2]]
	}
	f.V += w * frac[0][0][0]
	if k < 1 {
		return
	}
	for c := 0; c < 3; c++ {
		v := 0.0
		for a := 0; a < 3; a++ {
			v += F[a][c] * at(a)
		}
		f.G[c] += w * v
	}
	if k < 2 {
		return
	}
	for c := 0; c < 3; c++ {
		for d := 0; d < 3; d++ {
			v := 0.0
			for a := 0; a < 3; a++ {
				for b := 0; b < 3; b++ {
					v += F[a][c] * F[b][d] * at(a, b)
				}
			}
			f.H[c][d] += w * v
		}
	}
	if k < 3 {
		return
	}
	for c := 0; c < 3; c++ {
		for d := 0; d < 3; d++ {
			for e := 0; e < 3; e++ {
				v := 0.0
				for a := 0; a < 3; a++ {
					for b := 0; b < 3; b++ {
						for h := 0; h < 3; h++ {
							v += F[a][c] * F[b][d] * F[h][e] * at(a, b, h)
						}
					}
				}
				f.T[c][d][e] += w * v
			}
		}
	}
}

//Energy returns the reciprocal-space energy of the multipoles m at pos
//in the potential p, (1/2) sum_i M_i phi_i. Used mostly to check the solver.
func (p *Potential) Energy(pos [][3]float64, m []mpole.Multipole) float64 {
	f := make([]mpole.Field, len(pos))
	p.Gather(pos, 2, 1, f)
	e := 0.0
	for i := range m {
		e += m[i].Energy(&f[i])
	}
	return e / 2
}

//Box returns the box for which p was computed.
func (p *Potential) Box() pbc.Box {
	return p.box
}
