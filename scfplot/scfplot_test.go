/*
 * scfplot_test.go, part of gopolar.
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

package scfplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/gopolar/scf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoints(Te *testing.T) {
	r := scf.Report{History: []float64{1, 0.1, 0, 0.001}}
	pts := Points(r)
	require.Len(Te, pts, 1)
	require.Len(Te, pts[0], 3)
	assert.InDelta(Te, -1, pts[0][1].Y, 1e-12)
	assert.Equal(Te, 4.0, pts[0][2].X)
}

func TestPlot(Te *testing.T) {
	dir := Te.TempDir()
	r1 := scf.Report{State: scf.Converged, Iterations: 4, History: []float64{2, 0.3, 0.04, 0.005}}
	r2 := scf.Report{State: scf.Converged, Iterations: 3, History: []float64{1, 0.1, 0.008}}
	name := filepath.Join(dir, "scf")
	err := Plot(name, "Test SCF", 0.01, r1, r2)
	require.NoError(Te, err)
	st, err := os.Stat(name + ".png")
	require.NoError(Te, err)
	assert.Greater(Te, st.Size(), int64(0))
	assert.Error(Te, Plot(name, "nothing", 0.01))
}
