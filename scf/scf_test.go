/*
 * scf_test.go, part of gopolar.
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

package scf

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//two point dipoles on the z axis, at distance r, without damping.
type dimer struct {
	r     float64
	calls int
	fail  bool
}

func (d *dimer) InducedField(name string, mu [][3]float64, dst [][3]float64) error {
	if d.fail {
		return errors.New("no field for you")
	}
	d.calls++
	r3 := d.r * d.r * d.r
	//T = (3zz - I)/r^3
	for i := 0; i < 2; i++ {
		j := 1 - i
		dst[i] = [3]float64{-mu[j][0] / r3, -mu[j][1] / r3, 2 * mu[j][2] / r3}
	}
	return nil
}

func TestDimer(Te *testing.T) {
	const r, aA, aB, q = 0.3, 1e-3, 1.2e-3, 1.0
	s, err := NewSolver([]float64{aA, aB}, 100, 1e-9, 1)
	require.NoError(Te, err)
	assert.Equal(Te, Uninitialized, s.State())
	set := NewSet("direct", 2)
	set.Fixed[1] = [3]float64{0, 0, q / (r * r)}
	d := &dimer{r: r}
	rep, err := s.Solve(d, false, set)
	require.NoError(Te, err)
	assert.Equal(Te, Converged, rep.State)
	assert.Equal(Te, Converged, s.State())
	r6 := r * r * r * r * r * r
	muB := aB * q / (r * r * (1 - 4*aA*aB/r6))
	muA := 2 * aA * muB / (r * r * r)
	assert.InDelta(Te, muB, set.Mu[1][2], 1e-7*muB)
	assert.InDelta(Te, muA, set.Mu[0][2], 1e-7*muB)
	assert.Equal(Te, rep.Iterations, len(rep.History))
	for i := 1; i < len(rep.History); i++ {
		assert.Less(Te, rep.History[i], rep.History[i-1])
	}
	fmt.Println(rep)
}

func TestSOR(Te *testing.T) {
	const r = 0.3
	s, err := NewSolver([]float64{1e-3, 1.2e-3}, 200, 1e-9, 0.55)
	require.NoError(Te, err)
	a := NewSet("direct", 2)
	b := NewSet("polar", 2)
	a.Fixed[1] = [3]float64{0, 0, 10}
	b.Fixed[1] = [3]float64{0, 0, 10}
	b.Fixed[0] = [3]float64{1, 0, 0}
	rep, err := s.Solve(&dimer{r: r}, false, a, b)
	require.NoError(Te, err)
	assert.Equal(Te, Converged, rep.State)
	for i := 1; i < len(rep.History); i++ {
		assert.Less(Te, rep.History[i], rep.History[i-1])
	}
	//a warm start from the converged dipoles needs a single iteration.
	rep, err = s.Solve(&dimer{r: r}, true, a, b)
	require.NoError(Te, err)
	assert.Equal(Te, 1, rep.Iterations)
}

func TestNotConverged(Te *testing.T) {
	s, err := NewSolver([]float64{1e-3, 1.2e-3}, 2, 1e-12, 1)
	require.NoError(Te, err)
	set := NewSet("direct", 2)
	set.Fixed[1] = [3]float64{0, 0, 10}
	rep, err := s.Solve(&dimer{r: 0.3}, false, set)
	require.NoError(Te, err)
	assert.Equal(Te, MaxIterationsExceeded, rep.State)
	assert.Equal(Te, 2, rep.Iterations)
	_, err = s.Solve(&dimer{r: 0.3, fail: true}, false, set)
	assert.Error(Te, err)
	assert.Equal(Te, Uninitialized, s.State())
	s.Reset()
	assert.Equal(Te, 0, s.Report().Iterations)
}

func TestNonPolarizable(Te *testing.T) {
	s, err := NewSolver([]float64{0, 0}, 10, 0.01, 1)
	require.NoError(Te, err)
	set := NewSet("direct", 2)
	set.Fixed[0] = [3]float64{1, 2, 3}
	d := &dimer{r: 0.3}
	rep, err := s.Solve(d, false, set)
	require.NoError(Te, err)
	assert.Equal(Te, Converged, rep.State)
	assert.Equal(Te, 0, rep.Iterations)
	assert.Equal(Te, 0, d.calls)
	assert.Equal(Te, [3]float64{}, set.Mu[0])
}

func TestNewSolverErrors(Te *testing.T) {
	_, err := NewSolver(nil, 0, 0.01, 1)
	assert.Error(Te, err)
	_, err = NewSolver(nil, 10, 0, 1)
	assert.Error(Te, err)
	_, err = NewSolver(nil, 10, 0.01, 1.5)
	assert.Error(Te, err)
	assert.Equal(Te, "MaxIterationsExceeded", MaxIterationsExceeded.String())
}
