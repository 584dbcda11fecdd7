/*
 * tensor.go, part of gopolar.
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

package mpole

//Tensor holds the Cartesian derivatives of a radial function f(|r|) at a given
//displacement r. Since the derivatives are symmetric in their indexes, each one
//is stored only once, indexed by how many times it derives along x, y and z.
type Tensor struct {
	d   [MaxOrder + 1][MaxOrder + 1][MaxOrder + 1]float64
	max int
}

//Fill computes all the derivatives of the radial function with coefficients
//b, up to order max, at the displacement r.
func (t *Tensor) Fill(r [3]float64, b *Radial, max int) {
	if max > MaxOrder {
		panic(ErrOrder)
	}
	t.max = max
	var idx [MaxOrder]int
	for nx := 0; nx <= max; nx++ {
		for ny := 0; nx+ny <= max; ny++ {
			for nz := 0; nx+ny+nz <= max; nz++ {
				n := 0
				for _, c := range [3][2]int{{0, nx}, {1, ny}, {2, nz}} {
					for k := 0; k < c[1]; k++ {
						idx[n] = c[0]
						n++
					}
				}
				t.d[nx][ny][nz] = pairings(idx[:n], 0, n, &r, b)
			}
		}
	}
}

//Max returns the highest order computed in the last Fill.
func (t *Tensor) Max() int {
	return t.max
}

//At returns the derivative of f along the given indexes (0 for x, 1 for y, 2 for z).
func (t *Tensor) At(idx ...int) float64 {
	var c [3]int
	for _, v := range idx {
		c[v]++
	}
	return t.d[c[0]][c[1]][c[2]]
}

//pairings evaluates a derivative of order n of f(|r|) from its
//radial coefficients. Each term of the derivative is a product of Kronecker
//deltas pairing some of the indexes and components of r for the rest,
//multiplied by (-1)^(n-k) B_(n-k), where k is the number of deltas.
//The first remaining index either goes into a component of r or gets paired
//with one of the indexes after it.
func pairings(idx []int, k, n int, r *[3]float64, b *Radial) float64 {
	if len(idx) == 0 {
		c := b[n-k]
		if (n-k)%2 == 1 {
			return -c
		}
		return c
	}
	first := idx[0]
	rest := idx[1:]
	sum := 0.0
	if r[first] != 0 {
		sum = r[first] * pairings(rest, k, n, r, b)
	}
	var buf [MaxOrder]int
	for j, v := range rest {
		if v != first {
			continue
		}
		m := copy(buf[:], rest[:j])
		m += copy(buf[m:], rest[j+1:])
		sum += pairings(buf[:m], k+1, n, r, b)
	}
	return sum
}
