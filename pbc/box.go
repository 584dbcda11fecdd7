/*
 * box.go, part of gopolar.
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

//Package pbc handles periodic simulation cells.
package pbc

import (
	"fmt"
	"math"
)

//Box is a periodic cell. Each row is one of the box vectors a, b and c, which
//must be in reduced form: a along x, b in the xy plane, and
//ax >= 2|bx|, ax >= 2|cx|, by >= 2|cy|.
type Box [3][3]float64

//Orthorhombic returns a rectangular box with sides x, y and z.
func Orthorhombic(x, y, z float64) Box {
	return Box{{x, 0, 0}, {0, y, 0}, {0, 0, z}}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

//Volume returns the volume of the cell.
func (B *Box) Volume() float64 {
	return dot(B[0], cross(B[1], B[2]))
}

//Reciprocal returns the reciprocal vectors of the cell as rows,
//so that R[i].B[j] is 1 if i==j and 0 otherwise.
func (B *Box) Reciprocal() [3][3]float64 {
	v := B.Volume()
	var R [3][3]float64
	for i := 0; i < 3; i++ {
		c := cross(B[(i+1)%3], B[(i+2)%3])
		for j := 0; j < 3; j++ {
			R[i][j] = c[j] / v
		}
	}
	return R
}

//Widths returns the distances between opposite faces of the cell.
func (B *Box) Widths() [3]float64 {
	v := B.Volume()
	var w [3]float64
	for i := 0; i < 3; i++ {
		c := cross(B[(i+1)%3], B[(i+2)%3])
		w[i] = v / math.Sqrt(dot(c, c))
	}
	return w
}

//MaxCutoff returns the largest cutoff for which the minimum image
//convention holds in B, half of its smallest width.
func (B *Box) MaxCutoff() float64 {
	w := B.Widths()
	return math.Min(w[0], math.Min(w[1], w[2])) / 2
}

//MinImage returns the image of the displacement d that lies closest
//to the origin.
func (B *Box) MinImage(d [3]float64) [3]float64 {
	for i := 2; i >= 0; i-- {
		s := math.Round(d[i] / B[i][i])
		if s == 0 {
			continue
		}
		for j := 0; j <= i; j++ {
			d[j] -= s * B[i][j]
		}
	}
	return d
}

//Check returns an error if B is not a valid reduced cell, or if it is too
//small to be used with the given cutoff.
func (B *Box) Check(cutoff float64) error {
	if B[0][1] != 0 || B[0][2] != 0 || B[1][2] != 0 {
		return fmt.Errorf("box vectors are not in reduced form: %v", *B)
	}
	for i := 0; i < 3; i++ {
		if B[i][i] <= 0 {
			return fmt.Errorf("box vector %d has a non-positive diagonal element: %v", i, B[i])
		}
	}
	if 2*math.Abs(B[1][0]) > B[0][0] || 2*math.Abs(B[2][0]) > B[0][0] || 2*math.Abs(B[2][1]) > B[1][1] {
		return fmt.Errorf("box vectors are not in reduced form: %v", *B)
	}
	if cutoff > B.MaxCutoff() {
		return fmt.Errorf("cutoff %.4f is larger than half the smallest box width, %.4f", cutoff, B.MaxCutoff())
	}
	return nil
}
