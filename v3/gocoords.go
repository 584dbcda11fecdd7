/*
 * gocoords.go, part of gopolar.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//FromVecs builds a new Matrix from a slice of 3D vectors.
func FromVecs(vecs [][3]float64) *Matrix {
	F := Zeros(len(vecs))
	for i, v := range vecs {
		F.SetVec(i, v)
	}
	return F
}

//Vec returns a copy of the ith vector of F.
func (F *Matrix) Vec(i int) [3]float64 {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

//SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

//AddToVec adds v to the ith vector of F, in place.
func (F *Matrix) AddToVec(i int, v [3]float64) {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	F.Set(i, 0, F.At(i, 0)+v[0])
	F.Set(i, 1, F.At(i, 1)+v[1])
	F.Set(i, 2, F.At(i, 2)+v[2])
}

//Vecs copies all the vectors of F into dst, which is allocated if nil or
//too short, and returns it.
func (F *Matrix) Vecs(dst [][3]float64) [][3]float64 {
	n := F.NVecs()
	if len(dst) < n {
		dst = make([][3]float64, n)
	}
	for i := 0; i < n; i++ {
		dst[i] = F.Vec(i)
	}
	return dst[:n]
}

//AddVecs adds, vector by vector, the slice vecs to F. Panics if the lengths
//don't match.
func (F *Matrix) AddVecs(vecs [][3]float64) {
	if len(vecs) != F.NVecs() {
		panic(ErrShape)
	}
	for i, v := range vecs {
		F.AddToVec(i, v)
	}
}

//SumVecs returns the sum of all the vectors in F.
func (F *Matrix) SumVecs() [3]float64 {
	var s [3]float64
	for i := 0; i < F.NVecs(); i++ {
		s[0] += F.At(i, 0)
		s[1] += F.At(i, 1)
		s[2] += F.At(i, 2)
	}
	return s
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, F.Dense)
		if i == r-1 {
			v[i+1] = fmt.Sprintf(" %8.4f %8.4f %8.4f", row[0], row[1], row[2])
			continue
		}
		v[i+1] = fmt.Sprintf(" %8.4f %8.4f %8.4f\n", row[0], row[1], row[2])
	}
	return strings.Join(v, "")
}
