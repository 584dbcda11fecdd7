/*
 * bspline.go, part of gopolar.
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
	"math"
	"math/cmplx"
)

const (
	MinOrder = 5
	MaxOrder = 10
)

//spline holds, for one coordinate of one point, the first grid index and
//the value of the B-spline and its first three derivatives at each of the
//order grid points it touches. Grid point t is base-t, modulo the grid size.
type spline struct {
	base int
	w    [MaxOrder][4]float64
}

//cardinal fills m so that m[k][t] = M_k(fr+t) for k=1..order and t=0..order-1,
//where M_k is the cardinal B-spline of order k.
func cardinal(fr float64, order int, m *[MaxOrder + 1][MaxOrder]float64) {
	*m = [MaxOrder + 1][MaxOrder]float64{}
	m[1][0] = 1
	for k := 2; k <= order; k++ {
		div := 1 / float64(k-1)
		for t := 0; t < k; t++ {
			x := fr + float64(t)
			v := x * m[k-1][t]
			if t > 0 {
				v += (float64(k) - x) * m[k-1][t-1]
			}
			m[k][t] = v * div
		}
	}
}

//at returns m[k][t], which is zero for t out of range.
func at(m *[MaxOrder + 1][MaxOrder]float64, k, t int) float64 {
	if t < 0 || t >= MaxOrder {
		return 0
	}
	return m[k][t]
}

//fill computes the spline data for the scaled fractional coordinate u.
func (s *spline) fill(u float64, n, order int) {
	fl := math.Floor(u)
	fr := u - fl
	s.base = int(fl) % n
	if s.base < 0 {
		s.base += n
	}
	var m [MaxOrder + 1][MaxOrder]float64
	cardinal(fr, order, &m)
	k1, k2, k3 := order-1, order-2, order-3
	for t := 0; t < order; t++ {
		s.w[t][0] = m[order][t]
		s.w[t][1] = at(&m, k1, t) - at(&m, k1, t-1)
		s.w[t][2] = at(&m, k2, t) - 2*at(&m, k2, t-1) + at(&m, k2, t-2)
		s.w[t][3] = at(&m, k3, t) - 3*at(&m, k3, t-1) + 3*at(&m, k3, t-2) - at(&m, k3, t-3)
	}
}

//moduli returns |sum_k M_n(k+1) exp(2 pi i m k/N)|^2 for each m in 0..N-1.
//Zeros, which appear for odd orders at m=N/2, are replaced by the average
//of their neighbors.
func moduli(n, order int) []float64 {
	var m [MaxOrder + 1][MaxOrder]float64
	cardinal(0, order, &m)
	ret := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum complex128
		for k := 0; k < order-1; k++ {
			arg := 2 * math.Pi * float64(i*k) / float64(n)
			sum += complex(m[order][k+1], 0) * cmplx.Exp(complex(0, arg))
		}
		ret[i] = real(sum)*real(sum) + imag(sum)*imag(sum)
	}
	for i := 0; i < n; i++ {
		if ret[i] < 1e-7 {
			ret[i] = (ret[(i-1+n)%n] + ret[(i+1)%n]) / 2
		}
	}
	return ret
}
