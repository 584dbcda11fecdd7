/*
 * ckpt_test.go, part of gopolar.
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

package ckpt

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(Te *testing.T) {
	direct := [][3]float64{{1e-3, -2.5e-4, 1.0 / 3.0}, {0, 0, 0}, {-7.25e-5, 3e-9, 1}}
	polar := [][3]float64{{1.1e-3, -2.4e-4, 2.0 / 3.0}, {0, 0, 0}, {-7e-5, 4e-9, -1}}
	name := filepath.Join(Te.TempDir(), "dipoles.ckpt")
	f, err := os.Create(name)
	require.NoError(Te, err)
	err = Write(f, direct, polar, map[string]string{"step": "120", "system": "water dimer"})
	require.NoError(Te, err)
	require.NoError(Te, f.Close())

	f, err = os.Open(name)
	require.NoError(Te, err)
	defer f.Close()
	d, p, h, err := Read(f)
	require.NoError(Te, err)
	fmt.Println("header", h)
	assert.Equal(Te, direct, d)
	assert.Equal(Te, polar, p)
	assert.Equal(Te, "120", h["step"])
	assert.Equal(Te, "water dimer", h["system"])
	_, ok := h["format"]
	assert.False(Te, ok)
}

func TestEmpty(Te *testing.T) {
	var b bytes.Buffer
	require.NoError(Te, Write(&b, nil, nil, nil))
	d, p, _, err := Read(&b)
	require.NoError(Te, err)
	assert.Len(Te, d, 0)
	assert.Len(Te, p, 0)
}

func TestErrors(Te *testing.T) {
	var b bytes.Buffer
	assert.Error(Te, Write(&b, make([][3]float64, 2), make([][3]float64, 1), nil))
	b.Reset()
	assert.Error(Te, Write(&b, nil, nil, map[string]string{"a=b": "c"}))

	//a valid zstd stream that is not a checkpoint
	b.Reset()
	z, err := zstd.NewWriter(&b)
	require.NoError(Te, err)
	z.Write([]byte("format=something else\n** 1\n1 2 3 4 5 6\n"))
	require.NoError(Te, z.Close())
	_, _, _, err = Read(&b)
	assert.Error(Te, err)

	//truncated
	b.Reset()
	z, err = zstd.NewWriter(&b)
	require.NoError(Te, err)
	z.Write([]byte("format=gopolar-ckpt\n** 2\n1 2 3 4 5 6\n"))
	require.NoError(Te, z.Close())
	_, _, _, err = Read(&b)
	assert.Error(Te, err)

	//a site count far beyond what the file holds
	b.Reset()
	z, err = zstd.NewWriter(&b)
	require.NoError(Te, err)
	z.Write([]byte("format=gopolar-ckpt\n** 9000000000000000000\n1 2 3 4 5 6\n"))
	require.NoError(Te, z.Close())
	d, _, _, err := Read(&b)
	assert.Error(Te, err)
	assert.Nil(Te, d)

	_, _, _, err = Read(bytes.NewReader([]byte("not zstd at all")))
	assert.Error(Te, err)
}

func TestErrorTrail(Te *testing.T) {
	var b bytes.Buffer
	err := Write(&b, make([][3]float64, 2), nil, nil)
	require.Error(Te, err)
	var e *Error
	require.True(Te, errors.As(err, &e))
	assert.True(Te, e.Critical())
	trail := e.Decorate("Restart")
	assert.Equal(Te, []string{"Write", "Restart"}, trail)
	assert.Equal(Te, trail, e.Decorate(""))
	fmt.Println(err)
	assert.Contains(Te, err.Error(), "Write <- Restart")
}
