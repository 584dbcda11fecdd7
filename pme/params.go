/*
 * params.go, part of gopolar.
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

	"github.com/rmera/gopolar/pbc"
)

//Smooth returns true if n has no prime factors other than 2, 3, 5 and 7.
func Smooth(n int) bool {
	if n < 1 {
		return false
	}
	for _, p := range []int{2, 3, 5, 7} {
		for n%p == 0 {
			n /= p
		}
	}
	return n == 1
}

//NextSmooth returns the smallest number >= n with no prime factors
//other than 2, 3, 5 and 7.
func NextSmooth(n int) int {
	if n < 1 {
		n = 1
	}
	for !Smooth(n) {
		n++
	}
	return n
}

//Parameters picks an Ewald coefficient and grid dimensions that give
//a relative error of about tol in the forces, for the given real-space cutoff.
//The grid is never smaller than twice the B-spline order along any dimension.
func Parameters(box pbc.Box, cutoff, tol float64, order int) (float64, [3]int) {
	alpha := math.Sqrt(-math.Log(2*tol)) / cutoff
	var n [3]int
	for i := 0; i < 3; i++ {
		v := int(math.Ceil(2 * alpha * box[i][i] / (3 * math.Pow(tol, 0.2))))
		n[i] = NextSmooth(max(v, 2*order))
	}
	return alpha, n
}
