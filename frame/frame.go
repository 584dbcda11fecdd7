/*
 * frame.go, part of gopolar.
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

package frame

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//AxisType is the rule used to build the local frame of a site from the
//positions of its neighbors. The numbering is the one usually found in
//AMOEBA parameter files.
type AxisType int

const (
	ZThenX     AxisType = 0
	Bisector   AxisType = 1
	ZOnly      AxisType = 4
	NoAxisType AxisType = 5
)

func (a AxisType) String() string {
	switch a {
	case ZThenX:
		return "ZThenX"
	case Bisector:
		return "Bisector"
	case ZOnly:
		return "ZOnly"
	case NoAxisType:
		return "NoAxisType"
	}
	return fmt.Sprintf("AxisType(%d)", int(a))
}

//Valid returns true if a is one of the supported axis types.
func (a AxisType) Valid() bool {
	return a == ZThenX || a == Bisector || a == ZOnly || a == NoAxisType
}

//Neighbors returns how many defining sites (z, then x) the axis type needs.
func (a AxisType) Neighbors() int {
	switch a {
	case ZThenX, Bisector:
		return 2
	case ZOnly:
		return 1
	}
	return 0
}

//Frame is an orthonormal, right-handed local frame. Besides the unit vectors
//it keeps the geometry needed to turn torques into forces.
type Frame struct {
	Kind    AxisType
	X, Y, Z [3]float64
	vz, vx  [3]float64 //raw vectors to the z and x defining sites (or the reference)
	lz, lx  float64
	u, v    [3]float64 //unit vectors along vz and vx
	ls      float64    //norm of u+v, for bisectors
	lw      float64    //norm of vx minus its projection on Z
}

//Identity is the frame for sites without an axis type.
var Identity = Frame{Kind: NoAxisType, X: [3]float64{1, 0, 0}, Y: [3]float64{0, 1, 0}, Z: [3]float64{0, 0, 1}}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func scale(s float64, a [3]float64) [3]float64 {
	return [3]float64{s * a[0], s * a[1], s * a[2]}
}

func add(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func norm(a [3]float64) float64 {
	return math.Sqrt(dot(a, a))
}

//Build returns the frame of a site at ri, with defining sites at rz and rx.
//rx is ignored for ZOnly and both are ignored for NoAxisType. An error is
//returned if the defining sites coincide with the site or are collinear with it.
func Build(kind AxisType, ri, rz, rx [3]float64) (Frame, error) {
	if kind == NoAxisType {
		return Identity, nil
	}
	if !kind.Valid() {
		return Identity, fmt.Errorf("unsupported axis type %v", kind)
	}
	f := Frame{Kind: kind}
	f.vz = sub(rz, ri)
	f.lz = norm(f.vz)
	if f.lz == 0 {
		return f, fmt.Errorf("z-defining site coincides with the site")
	}
	f.u = scale(1/f.lz, f.vz)
	switch kind {
	case ZOnly:
		f.vx = [3]float64{1, 0, 0}
		if math.Abs(f.u[0]) >= 0.866 {
			f.vx = [3]float64{0, 1, 0}
		}
		f.Z = f.u
	case ZThenX:
		f.vx = sub(rx, ri)
		f.Z = f.u
	case Bisector:
		f.vx = sub(rx, ri)
		f.lx = norm(f.vx)
		if f.lx == 0 {
			return f, fmt.Errorf("x-defining site coincides with the site")
		}
		f.v = scale(1/f.lx, f.vx)
		s := add(f.u, f.v)
		f.ls = norm(s)
		if f.ls < 1e-10 {
			return f, fmt.Errorf("bisector frame with opposite defining bonds")
		}
		f.Z = scale(1/f.ls, s)
	}
	f.lx = norm(f.vx)
	w := sub(f.vx, scale(dot(f.vx, f.Z), f.Z))
	f.lw = norm(w)
	if f.lw < 1e-10*f.lx {
		return f, fmt.Errorf("x-defining site is collinear with the z axis")
	}
	f.X = scale(1/f.lw, w)
	f.Y = cross(f.Z, f.X)
	return f, nil
}

//Matrix returns the rotation matrix from the local frame to the lab frame,
//whose columns are X, Y and Z.
func (f *Frame) Matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		f.X[0], f.Y[0], f.Z[0],
		f.X[1], f.Y[1], f.Z[1],
		f.X[2], f.Y[2], f.Z[2],
	})
}

//Rotate takes a dipole and a quadrupole in the local frame and returns
//them in the lab frame, A d and A Theta A^T.
func (f *Frame) Rotate(d [3]float64, theta [3][3]float64) ([3]float64, [3][3]float64) {
	if f.Kind == NoAxisType {
		return d, theta
	}
	A := f.Matrix()
	dl := mat.NewVecDense(3, []float64{d[0], d[1], d[2]})
	var dv mat.VecDense
	dv.MulVec(A, dl)
	q := mat.NewDense(3, 3, []float64{
		theta[0][0], theta[0][1], theta[0][2],
		theta[1][0], theta[1][1], theta[1][2],
		theta[2][0], theta[2][1], theta[2][2],
	})
	var ql mat.Dense
	ql.Product(A, q, A.T())
	var retq [3][3]float64
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			retq[a][b] = ql.At(a, b)
		}
	}
	return [3]float64{dv.AtVec(0), dv.AtVec(1), dv.AtVec(2)}, retq
}

//Scatter turns the torque tau acting on a site's multipoles into forces on
//the site itself (fi) and on its z- and x-defining sites (fz and fx).
//The forces sum to zero. Sites without an axis type give no forces.
func (f *Frame) Scatter(tau [3]float64) (fi, fz, fx [3]float64) {
	if f.Kind == NoAxisType {
		return
	}
	tx := dot(tau, f.X)
	ty := dot(tau, f.Y)
	tz := dot(tau, f.Z)
	cA := tx + tz*dot(f.vx, f.Z)/f.lw
	a := sub(scale(cA, f.Y), scale(ty, f.X))
	var gz, gx [3]float64
	gxw := scale(-tz/f.lw, f.Y)
	switch f.Kind {
	case ZThenX:
		gz = scale(1/f.lz, a)
		gx = gxw
	case ZOnly:
		gz = scale(1/f.lz, a)
	case Bisector:
		pu := sub(a, scale(dot(a, f.u), f.u))
		pv := sub(a, scale(dot(a, f.v), f.v))
		gz = scale(1/(f.ls*f.lz), pu)
		gx = add(scale(1/(f.ls*f.lx), pv), gxw)
	}
	fz = scale(-1, gz)
	fx = scale(-1, gx)
	fi = add(gz, gx)
	return
}
