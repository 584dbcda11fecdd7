/*
 * scale_test.go, part of gopolar.
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

package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//a chain of 7 sites, 0-1-2-3-4-5-6. Sites 0-2 are one group, 3-6 another.
func chain() (int, [][2]int, []int) {
	bonds := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}}
	groups := []int{10, 10, 10, 20, 20, 20, 20}
	return 7, bonds, groups
}

func TestChain(Te *testing.T) {
	n, bonds, groups := chain()
	f := AMOEBA()
	t, err := Build(n, bonds, groups, f)
	require.NoError(Te, err)
	e, ok := t.Get(0, 1) //1-2, same group
	assert.True(Te, ok)
	assert.Equal(Te, Entry{J: 1, M: 0, P: 0, D: 0, U: 1}, e)
	e, _ = t.Get(3, 6) //1-4, same group
	assert.Equal(Te, 0.4, e.M)
	assert.Equal(Te, 0.5, e.P)
	assert.Equal(Te, 0.0, e.D)
	e, _ = t.Get(0, 3) //1-4, neighboring groups
	assert.Equal(Te, 0.4, e.M)
	assert.Equal(Te, 1.0, e.P)
	assert.Equal(Te, 1.0, e.D)
	e, _ = t.Get(0, 4) //1-5
	assert.Equal(Te, 0.8, e.M)
	e, _ = t.Get(0, 5) //1-6: nothing left, and the groups are 1-2.
	assert.Equal(Te, 1.0, e.M)
	assert.Equal(Te, 1.0, e.D)
	//symmetric
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			a, _ := t.Get(i, j)
			b, _ := t.Get(j, i)
			a.J, b.J = 0, 0
			assert.Equal(Te, a, b, "pair %d %d", i, j)
		}
	}
}

func TestNoScaling(Te *testing.T) {
	n, bonds, groups := chain()
	t, err := Build(n, bonds, groups, NoScaling())
	require.NoError(Te, err)
	for i := 0; i < n; i++ {
		assert.Empty(Te, t.Row(i))
	}
	t.Set(2, Entry{J: 5, M: 0.3, P: 1, D: 1, U: 1})
	t.Set(2, Entry{J: 1, M: 0.2, P: 1, D: 1, U: 1})
	e, ok := t.Get(2, 5)
	assert.True(Te, ok)
	assert.Equal(Te, 0.3, e.M)
	assert.Equal(Te, 1, t.Row(2)[0].J)
	_, ok = t.Get(5, 2)
	assert.False(Te, ok)
}

func TestBuildErrors(Te *testing.T) {
	_, err := Build(3, [][2]int{{0, 0}}, []int{0, 0, 0}, AMOEBA())
	assert.Error(Te, err)
	_, err = Build(3, [][2]int{{0, 3}}, []int{0, 0, 0}, AMOEBA())
	assert.Error(Te, err)
	_, err = Build(3, nil, []int{0, 0}, AMOEBA())
	assert.Error(Te, err)
}
