/*
 * v3_test.go, part of gopolar.
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
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	_, err = NewMatrix([]float64{1, 2, 3, 4})
	if err == nil {
		Te.Error("a slice of 4 elements should not make a Matrix")
	}
	fmt.Println(A)
}

func TestVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Error("Changes in a VecView should be reflected in the original Matrix")
	}
	A.AddToVec(2, [3]float64{1, 1, 1})
	if v := A.Vec(2); v != [3]float64{8, 9, 10} {
		Te.Errorf("AddToVec gave %v", v)
	}
	s := A.SumVecs()
	if s != [3]float64{1 + 100 + 8 + 10, 2 + 5 + 9 + 11, 3 + 6 + 10 + 12} {
		Te.Errorf("SumVecs gave %v", s)
	}
	vecs := A.Vecs(nil)
	B := FromVecs(vecs)
	for i := 0; i < 4; i++ {
		if B.Vec(i) != A.Vec(i) {
			Te.Errorf("Vector %d not copied by FromVecs", i)
		}
	}
	B.AddVecs(vecs)
	if B.At(3, 2) != 24 {
		Te.Errorf("AddVecs gave %v", B.Vec(3))
	}
}
