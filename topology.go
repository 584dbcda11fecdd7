/*
 * topology.go, part of gopolar.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package polar

import (
	"math"

	"github.com/rmera/gopolar/frame"
	"github.com/rmera/gopolar/pbc"
)

//Box is a periodic cell, with the box vectors as rows, in reduced form.
type Box = pbc.Box

//Site is a particle with its electrostatic parameters. The dipole and the quadrupole
//are given in the local frame defined by Axis, ZAtom and XAtom.
//The quadrupole is expected to be symmetric and traceless.
type Site struct {
	Charge         float64
	Dipole         [3]float64
	Quadrupole     [3][3]float64
	Axis           frame.AxisType
	ZAtom          int //ignored for NoAxisType
	XAtom          int //ignored for ZOnly and NoAxisType
	Polarizability float64
	Thole          float64
	DampingFactor  float64 //if zero, Polarizability^(1/6) is used
	Group          int     //polarization group
}

//Topology is the set of sites and the covalent bonds between them.
type Topology struct {
	Sites []Site
	Bonds [][2]int
}

//Len returns the number of sites.
func (T *Topology) Len() int {
	return len(T.Sites)
}

//Groups returns the polarization group of each site.
func (T *Topology) Groups() []int {
	ret := make([]int, len(T.Sites))
	for i, s := range T.Sites {
		ret[i] = s.Group
	}
	return ret
}

//check returns an error for the first inconsistent site found.
func (T *Topology) check() error {
	n := len(T.Sites)
	if n == 0 {
		return newError(true, "check", "empty topology")
	}
	inrange := func(i, j int) bool { return j >= 0 && j < n && j != i }
	for i, s := range T.Sites {
		if !s.Axis.Valid() {
			return newError(true, "check", "site %d: unsupported axis type %v", i, s.Axis)
		}
		switch s.Axis.Neighbors() {
		case 2:
			if !inrange(i, s.ZAtom) || !inrange(i, s.XAtom) || s.ZAtom == s.XAtom {
				return newError(true, "check", "site %d: invalid frame sites %d and %d for axis type %v", i, s.ZAtom, s.XAtom, s.Axis)
			}
		case 1:
			if !inrange(i, s.ZAtom) {
				return newError(true, "check", "site %d: invalid z-frame site %d", i, s.ZAtom)
			}
		}
		if s.Polarizability < 0 {
			return newError(true, "check", "site %d: negative polarizability %g", i, s.Polarizability)
		}
		if s.Thole < 0 || s.DampingFactor < 0 {
			return newError(true, "check", "site %d: negative Thole damping parameters", i)
		}
	}
	return nil
}

//damping returns the damping factor of s.
func (s *Site) damping() float64 {
	if s.DampingFactor != 0 {
		return s.DampingFactor
	}
	return math.Pow(s.Polarizability, 1.0/6.0)
}
