/*
 * pme_test.go, part of gopolar.
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

package pme

import (
	"fmt"
	"math"
	"testing"

	"github.com/rmera/gopolar/mpole"
	"github.com/rmera/gopolar/pbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplines(Te *testing.T) {
	for _, order := range []int{5, 6, 8} {
		for _, u := range []float64{3.0, 3.25, 7.999, -0.4} {
			var s spline
			s.fill(u, 20, order)
			var sums [4]float64
			for t := 0; t < order; t++ {
				for d := 0; d < 4; d++ {
					sums[d] += s.w[t][d]
				}
			}
			assert.InDelta(Te, 1, sums[0], 1e-12, "order %d u %f", order, u)
			for d := 1; d < 4; d++ {
				assert.InDelta(Te, 0, sums[d], 1e-10, "order %d u %f derivative %d", order, u, d)
			}
			assert.True(Te, s.base >= 0 && s.base < 20)
		}
	}
	//derivatives against finite differences of the values
	const h = 1e-5
	var s, sp, sm spline
	s.fill(2.3, 20, 5)
	sp.fill(2.3+h, 20, 5)
	sm.fill(2.3-h, 20, 5)
	for t := 0; t < 5; t++ {
		for d := 1; d < 4; d++ {
			num := (sp.w[t][d-1] - sm.w[t][d-1]) / (2 * h)
			assert.InDelta(Te, num, s.w[t][d], 1e-6, "t %d derivative %d", t, d)
		}
	}
	for _, v := range moduli(24, 5) {
		assert.True(Te, v > 0)
	}
}

func TestSmooth(Te *testing.T) {
	assert.True(Te, Smooth(2*3*5*7))
	assert.False(Te, Smooth(11))
	assert.False(Te, Smooth(0))
	assert.Equal(Te, 12, NextSmooth(11))
	assert.Equal(Te, 98, NextSmooth(97))
	alpha, n := Parameters(pbc.Orthorhombic(3, 3, 4), 0.9, 5e-4, 5)
	assert.InDelta(Te, math.Sqrt(-math.Log(1e-3))/0.9, alpha, 1e-12)
	for _, v := range n {
		assert.True(Te, Smooth(v))
		assert.True(Te, v >= 10)
	}
	assert.True(Te, n[2] >= n[0])
}

func TestNewErrors(Te *testing.T) {
	_, err := New([3]int{24, 24, 24}, 3, 3, 1)
	assert.Error(Te, err)
	_, err = New([3]int{24, 22, 24}, 5, 3, 1)
	assert.Error(Te, err)
	_, err = New([3]int{24, 24, 24}, 5, 0, 1)
	assert.Error(Te, err)
	_, err = New([3]int{4, 24, 24}, 5, 3, 1)
	assert.Error(Te, err)
}

func testSystem() ([][3]float64, []mpole.Multipole) {
	pos := [][3]float64{
		{0.10, 0.20, 0.30},
		{1.50, 0.40, 1.10},
		{0.90, 1.70, 0.20},
		{0.30, 1.10, 1.60},
		{1.20, 1.30, 1.40},
	}
	m := make([]mpole.Multipole, len(pos))
	m[0] = mpole.Multipole{Q: 0.5, D: [3]float64{0.01, 0.02, -0.01}}
	m[1] = mpole.Multipole{Q: -0.7, D: [3]float64{-0.02, 0.0, 0.015}}
	m[2] = mpole.Multipole{Q: 0.3}
	m[3] = mpole.Multipole{Q: -0.4, D: [3]float64{0.0, -0.01, 0.02}}
	m[4] = mpole.Multipole{Q: 0.3, D: [3]float64{0.005, 0.005, 0.005}}
	m[0].Theta = [3][3]float64{{0.002, 0.001, 0}, {0.001, -0.001, 0.0005}, {0, 0.0005, -0.001}}
	m[3].Theta = [3][3]float64{{-0.001, 0, 0.0008}, {0, 0.003, -0.0002}, {0.0008, -0.0002, -0.002}}
	return pos, m
}

//reference reciprocal energy from the explicit structure-factor sum.
func ewaldRecip(box pbc.Box, alpha float64, pos [][3]float64, m []mpole.Multipole, mmax int) float64 {
	R := box.Reciprocal()
	V := box.Volume()
	e := 0.0
	for m0 := -mmax; m0 <= mmax; m0++ {
		for m1 := -mmax; m1 <= mmax; m1++ {
			for m2 := -mmax; m2 <= mmax; m2++ {
				if m0 == 0 && m1 == 0 && m2 == 0 {
					continue
				}
				var k [3]float64
				for c := 0; c < 3; c++ {
					k[c] = float64(m0)*R[0][c] + float64(m1)*R[1][c] + float64(m2)*R[2][c]
				}
				k2 := k[0]*k[0] + k[1]*k[1] + k[2]*k[2]
				var re, im float64
				for j := range pos {
					phase := 2 * math.Pi * (k[0]*pos[j][0] + k[1]*pos[j][1] + k[2]*pos[j][2])
					kqk := 0.0
					for a := 0; a < 3; a++ {
						for b := 0; b < 3; b++ {
							kqk += k[a] * m[j].Theta[a][b] * k[b]
						}
					}
					ar := m[j].Q - 4*math.Pi*math.Pi*kqk/3
					ai := 2 * math.Pi * (k[0]*m[j].D[0] + k[1]*m[j].D[1] + k[2]*m[j].D[2])
					c, s := math.Cos(phase), math.Sin(phase)
					re += ar*c - ai*s
					im += ar*s + ai*c
				}
				e += math.Exp(-math.Pi*math.Pi*k2/(alpha*alpha)) / k2 * (re*re + im*im)
			}
		}
	}
	return e / (2 * math.Pi * V)
}

func TestReciprocalEnergy(Te *testing.T) {
	boxes := []pbc.Box{
		pbc.Orthorhombic(2.0, 2.0, 2.0),
		{{2.0, 0, 0}, {0.3, 1.9, 0}, {-0.4, 0.5, 2.1}},
	}
	pos, m := testSystem()
	const alpha = 3.0
	for i, box := range boxes {
		g, err := New([3]int{40, 40, 42}, 5, alpha, 2)
		require.NoError(Te, err)
		p := g.NewPotential()
		require.NoError(Te, g.Solve(p, box, pos, m))
		e := p.Energy(pos, m)
		ref := ewaldRecip(box, alpha, pos, m, 14)
		fmt.Println("box", i, "pme:", e, "reference:", ref)
		assert.InDelta(Te, ref, e, 5e-4*math.Abs(ref), "box %d", i)
		//the same system shifted by a lattice vector has the same energy
		shifted := make([][3]float64, len(pos))
		for j := range pos {
			for c := 0; c < 3; c++ {
				shifted[j][c] = pos[j][c] + box[1][c]
			}
		}
		require.NoError(Te, g.Solve(p, box, shifted, m))
		assert.InDelta(Te, e, p.Energy(shifted, m), 1e-8*math.Abs(e))
	}
}

//The gathered derivatives have to be consistent with each other.
func TestGatherDerivatives(Te *testing.T) {
	box := pbc.Box{{2.0, 0, 0}, {0.3, 1.9, 0}, {-0.4, 0.5, 2.1}}
	pos, m := testSystem()
	g, err := New([3]int{32, 32, 32}, 6, 3.0, 3)
	require.NoError(Te, err)
	p := g.NewPotential()
	require.NoError(Te, g.Solve(p, box, pos, m))
	probe := [3]float64{0.77, 0.41, 1.23}
	f := make([]mpole.Field, 1)
	p.Gather([][3]float64{probe}, 3, 1, f)
	const h = 1e-5
	for c := 0; c < 3; c++ {
		xp, xm := probe, probe
		xp[c] += h
		xm[c] -= h
		fd := make([]mpole.Field, 2)
		p.Gather([][3]float64{xp, xm}, 3, 1, fd)
		num := (fd[0].V - fd[1].V) / (2 * h)
		assert.InDelta(Te, num, f[0].G[c], 1e-5*math.Max(1, math.Abs(num)), "G %d", c)
		for a := 0; a < 3; a++ {
			num = (fd[0].G[a] - fd[1].G[a]) / (2 * h)
			assert.InDelta(Te, num, f[0].H[a][c], 1e-4*math.Max(1, math.Abs(num)), "H %d %d", a, c)
			for b := 0; b < 3; b++ {
				num = (fd[0].H[a][b] - fd[1].H[a][b]) / (2 * h)
				assert.InDelta(Te, num, f[0].T[a][b][c], 1e-3*math.Max(1, math.Abs(num)), "T %d %d %d", a, b, c)
			}
		}
	}
}
