/*
 * options_test.go, part of gopolar.
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

package polar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/gopolar/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsAccessors(Te *testing.T) {
	o := DefaultOptions()
	assert.Equal(Te, PME, o.Method())
	assert.Equal(Te, 1.0, o.Cutoff(0.8))
	assert.Equal(Te, 0.8, o.Cutoff(-1)) //invalid, ignored
	assert.Equal(Te, 0.8, o.Cutoff())
	assert.Equal(Te, 0.55, o.SOR(1.5))
	assert.Equal(Te, 0.55, o.SOR())
	assert.Equal(Te, 60, o.MaxIterations(0))
	assert.Equal(Te, 60, o.MaxIterations())
	assert.False(Te, o.WarmStart(true))
	assert.True(Te, o.WarmStart())
	assert.Equal(Te, scale.AMOEBA(), o.Factors(scale.NoScaling()))
	assert.Equal(Te, scale.NoScaling(), o.Factors())
	assert.Equal(Te, "PME", o.Method(NoCutoff).String())
	assert.Equal(Te, "Method(7)", Method(7).String())
	assert.NoError(Te, o.CheckInit())
	o.Method(Method(7))
	assert.Error(Te, o.CheckInit())
}

func TestReadOptions(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "polar.ini")
	content := `; options for a water box
[ewald]
method = PME
cutoff = 0.9
gridx = 36
gridy = 36
gridz = 40
order = 6

[scf]
maxiterations = 100
epsilon = 1e-5
sor = 0.7
warmstart = true

[scale]
m14 = 0.5

[run]
cpus = 3
`
	require.NoError(Te, os.WriteFile(name, []byte(content), 0644))
	o, err := ReadOptions(name)
	require.NoError(Te, err)
	assert.Equal(Te, PME, o.Method())
	assert.Equal(Te, 0.9, o.Cutoff())
	assert.Equal(Te, [3]int{36, 36, 40}, o.Grid())
	assert.Equal(Te, 6, o.Order())
	assert.Equal(Te, 100, o.MaxIterations())
	assert.Equal(Te, 1e-5, o.Epsilon())
	assert.Equal(Te, 0.7, o.SOR())
	assert.True(Te, o.WarmStart())
	assert.False(Te, o.AllowUnconverged())
	assert.Equal(Te, 3, o.Cpus())
	f := o.Factors()
	assert.Equal(Te, 0.5, f.M[2])
	//not in the file, so the defaults
	assert.Equal(Te, scale.AMOEBA().M[3], f.M[3])
	assert.Equal(Te, scale.AMOEBA().P41, f.P41)
	assert.Equal(Te, 5e-4, o.Tolerance())

	bad := filepath.Join(dir, "bad.ini")
	require.NoError(Te, os.WriteFile(bad, []byte("[ewald]\nmethod = Wolf\n"), 0644))
	_, err = ReadOptions(bad)
	assert.Error(Te, err)
	require.NoError(Te, os.WriteFile(bad, []byte("[ewald]\ngridx = 37\ngridy = 36\ngridz = 36\n"), 0644))
	_, err = ReadOptions(bad)
	assert.Error(Te, err)
	require.NoError(Te, os.WriteFile(bad, []byte("[scf]\nsor = 2\n"), 0644))
	_, err = ReadOptions(bad)
	assert.Error(Te, err)
	_, err = ReadOptions(filepath.Join(dir, "nothere.ini"))
	assert.Error(Te, err)
}
