/*
 * ckpt.go, part of gopolar.
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

/*Package ckpt reads and writes checkpoints of the induced dipoles, so a run can
start its first SCF from the dipoles where a previous one stopped.

A checkpoint is a zstd-compressed ASCII file. It starts with a header of "key=value"
lines, which must include "format=gopolar-ckpt", and ends with a line that starts with
the characters "**" followed by a space and the number of sites. Then comes one line per
site with 6 numbers, the direct and the polar induced dipoles, in e nm, written with
as many digits as needed to read back the exact same float64.*/
package ckpt

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const format = "gopolar-ckpt"

//Error is the error type of the package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("ckpt: %s (%s)", err.message, strings.Join(err.deco, " <- "))
}

//Decorate adds dec to the trail of functions the error went through, and returns the trail.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical is always true: a broken checkpoint can't be used.
func (err *Error) Critical() bool { return err.critical }

func newErr(caller, format string, args ...interface{}) *Error {
	return &Error{fmt.Sprintf(format, args...), []string{caller}, true}
}

//Write writes a checkpoint with the direct and polar dipoles to w. The header entries,
//if given, are added to the checkpoint. The keys can't contain "=" or new lines.
func Write(w io.Writer, direct, polar [][3]float64, header map[string]string) error {
	if len(direct) != len(polar) {
		return newErr("Write", "%d direct and %d polar dipoles", len(direct), len(polar))
	}
	z, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return newErr("Write", "can't start compression: %s", err.Error())
	}
	b := bufio.NewWriter(z)
	keys := make([]string, 0, len(header))
	for k := range header {
		if k == "format" {
			continue
		}
		if strings.ContainsAny(k, "=\n") || strings.Contains(header[k], "\n") {
			z.Close()
			return newErr("Write", "invalid header entry %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "format=%s\n", format)
	for _, k := range keys {
		fmt.Fprintf(b, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(b, "** %d\n", len(direct))
	fields := make([]string, 6)
	for i := range direct {
		for c := 0; c < 3; c++ {
			fields[c] = strconv.FormatFloat(direct[i][c], 'g', -1, 64)
			fields[c+3] = strconv.FormatFloat(polar[i][c], 'g', -1, 64)
		}
		b.WriteString(strings.Join(fields, " "))
		b.WriteByte('\n')
	}
	if err := b.Flush(); err != nil {
		z.Close()
		return newErr("Write", "%s", err.Error())
	}
	if err := z.Close(); err != nil {
		return newErr("Write", "%s", err.Error())
	}
	return nil
}

//Read reads a checkpoint from r, and returns the direct and polar dipoles and the header.
func Read(r io.Reader) (direct, polar [][3]float64, header map[string]string, err error) {
	z, err := zstd.NewReader(r)
	if err != nil {
		return nil, nil, nil, newErr("Read", "can't start decompression: %s", err.Error())
	}
	defer z.Close()
	s := bufio.NewScanner(z)
	header = make(map[string]string)
	n := -1
	for s.Scan() {
		line := s.Text()
		if strings.HasPrefix(line, "**") {
			n, err = strconv.Atoi(strings.TrimSpace(line[2:]))
			if err != nil || n < 0 {
				return nil, nil, nil, newErr("Read", "invalid number of sites in %q", line)
			}
			break
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, nil, nil, newErr("Read", "invalid header line %q", line)
		}
		header[k] = v
	}
	if n < 0 {
		return nil, nil, nil, newErr("Read", "no header end found: %v", s.Err())
	}
	if header["format"] != format {
		return nil, nil, nil, newErr("Read", "not a gopolar checkpoint, format %q", header["format"])
	}
	delete(header, "format")
	//n comes from the file, so the slices grow only with the lines actually read.
	direct = make([][3]float64, 0, min(n, 1<<16))
	polar = make([][3]float64, 0, min(n, 1<<16))
	for i := 0; i < n; i++ {
		if !s.Scan() {
			return nil, nil, nil, newErr("Read", "only %d of %d sites found: %v", i, n, s.Err())
		}
		f := strings.Fields(s.Text())
		if len(f) != 6 {
			return nil, nil, nil, newErr("Read", "site %d: 6 numbers expected, got %d", i, len(f))
		}
		var d, p [3]float64
		for c := 0; c < 6; c++ {
			v, err := strconv.ParseFloat(f[c], 64)
			if err != nil {
				return nil, nil, nil, newErr("Read", "site %d: %s", i, err.Error())
			}
			if c < 3 {
				d[c] = v
			} else {
				p[c-3] = v
			}
		}
		direct = append(direct, d)
		polar = append(polar, p)
	}
	return direct, polar, header, nil
}
