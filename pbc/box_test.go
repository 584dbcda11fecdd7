/*
 * box_test.go, part of gopolar.
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

package pbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReciprocal(Te *testing.T) {
	B := Box{{2, 0, 0}, {0.5, 1.8, 0}, {-0.3, 0.4, 2.2}}
	require.NoError(Te, B.Check(0.8))
	R := B.Reciprocal()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			exp := 0.0
			if i == j {
				exp = 1
			}
			assert.InDelta(Te, exp, dot(R[i], B[j]), 1e-12)
		}
	}
	assert.InDelta(Te, 2*1.8*2.2, B.Volume(), 1e-12)
}

func TestMinImage(Te *testing.T) {
	B := Orthorhombic(2, 3, 4)
	d := B.MinImage([3]float64{1.9, -2.0, 3.9})
	assert.InDeltaSlice(Te, []float64{-0.1, 1.0, -0.1}, d[:], 1e-12)
	T := Box{{2, 0, 0}, {0.5, 1.8, 0}, {-0.3, 0.4, 2.2}}
	//a lattice vector is the same as no displacement.
	lat := [3]float64{T[1][0] + T[2][0], T[1][1] + T[2][1], T[2][2]}
	d = T.MinImage(lat)
	assert.InDeltaSlice(Te, []float64{0, 0, 0}, d[:], 1e-12)
}

func TestCheck(Te *testing.T) {
	B := Orthorhombic(2, 2, 2)
	assert.NoError(Te, B.Check(1))
	assert.Error(Te, B.Check(1.1))
	bad := Box{{2, 0.1, 0}, {0, 2, 0}, {0, 0, 2}}
	assert.Error(Te, bad.Check(0.5))
}
