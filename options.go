/*
 * options.go, part of gopolar.
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
	"fmt"
	"runtime"
	"strings"

	"github.com/rmera/gopolar/pme"
	"github.com/rmera/gopolar/scale"
	"gopkg.in/gcfg.v1"
)

//Method is the way the long-range electrostatics are treated.
type Method int

const (
	NoCutoff Method = iota //all pairs, no periodicity
	PME                    //periodic, smooth particle-mesh Ewald
)

func (m Method) String() string {
	switch m {
	case NoCutoff:
		return "NoCutoff"
	case PME:
		return "PME"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

//Options for the engine.
type Options struct {
	method           Method
	cutoff           float64
	alpha            float64
	grid             [3]int
	order            int
	tolerance        float64
	maxiter          int
	epsilon          float64
	sor              float64
	warm             bool
	allowUnconverged bool
	cpus             int
	verbose          bool
	factors          scale.Factors
}

//DefaultOptions returns an Options with the default options.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.method = PME
	ret.cutoff = 1.0
	ret.order = 5
	ret.tolerance = 5e-4
	ret.maxiter = 60
	ret.epsilon = 0.01
	ret.sor = 0.55
	ret.cpus = runtime.NumCPU()
	ret.factors = scale.AMOEBA()
	return ret
}

//Method returns the current treatment of the long-range electrostatics and sets it,
//if a value is given.
func (o *Options) Method(m ...Method) Method {
	ret := o.method
	if len(m) > 0 {
		o.method = m[0]
	}
	return ret
}

//Cutoff returns the real-space cutoff, in nm, and sets it, if a valid value is given.
//It is ignored with NoCutoff.
func (o *Options) Cutoff(c ...float64) float64 {
	ret := o.cutoff
	if len(c) > 0 && c[0] > 0 {
		o.cutoff = c[0]
	}
	return ret
}

//Alpha returns the Ewald coefficient, in 1/nm, and sets it, if a value >=0 is given.
//Zero means it will be derived from the cutoff and the tolerance.
func (o *Options) Alpha(a ...float64) float64 {
	ret := o.alpha
	if len(a) > 0 && a[0] >= 0 {
		o.alpha = a[0]
	}
	return ret
}

//Grid returns the PME grid dimensions and sets them, if given.
//Zeros mean that they will be derived from the box and the tolerance.
func (o *Options) Grid(g ...[3]int) [3]int {
	ret := o.grid
	if len(g) > 0 {
		o.grid = g[0]
	}
	return ret
}

//Order returns the B-spline order for PME and sets it, if given.
func (o *Options) Order(n ...int) int {
	ret := o.order
	if len(n) > 0 {
		o.order = n[0]
	}
	return ret
}

//Tolerance returns the target relative error of the Ewald sum, used to
//pick alpha and the grid when they are not given, and sets it, if a valid value is given.
func (o *Options) Tolerance(t ...float64) float64 {
	ret := o.tolerance
	if len(t) > 0 && t[0] > 0 && t[0] < 0.5 {
		o.tolerance = t[0]
	}
	return ret
}

//MaxIterations returns the maximum number of SCF iterations and sets it, if a valid value is given.
func (o *Options) MaxIterations(n ...int) int {
	ret := o.maxiter
	if len(n) > 0 && n[0] > 0 {
		o.maxiter = n[0]
	}
	return ret
}

//Epsilon returns the SCF convergence threshold, the RMS change of the
//induced dipoles in Debye, and sets it, if a valid value is given.
func (o *Options) Epsilon(e ...float64) float64 {
	ret := o.epsilon
	if len(e) > 0 && e[0] > 0 {
		o.epsilon = e[0]
	}
	return ret
}

//SOR returns the relaxation factor of the SCF iterations and sets it, if a value in (0,1] is given.
//1 means plain Jacobi iterations.
func (o *Options) SOR(s ...float64) float64 {
	ret := o.sor
	if len(s) > 0 && s[0] > 0 && s[0] <= 1 {
		o.sor = s[0]
	}
	return ret
}

//WarmStart returns whether each SCF starts from the dipoles of the previous one
//and sets it, if a value is given.
func (o *Options) WarmStart(w ...bool) bool {
	ret := o.warm
	if len(w) > 0 {
		o.warm = w[0]
	}
	return ret
}

//AllowUnconverged returns whether results from unconverged dipoles are used (with a warning)
//instead of returning an error, and sets it, if a value is given.
func (o *Options) AllowUnconverged(a ...bool) bool {
	ret := o.allowUnconverged
	if len(a) > 0 {
		o.allowUnconverged = a[0]
	}
	return ret
}

//Returns the current value of the Cpus options (the number of gorutines to
//use on the concurrent calculation) and sets it, if
//a valid value is given
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

//Verbose returns whether a summary of each step is logged, and sets it, if a value is given.
func (o *Options) Verbose(v ...bool) bool {
	ret := o.verbose
	if len(v) > 0 {
		o.verbose = v[0]
	}
	return ret
}

//Factors returns the scale factors for close pairs and sets them, if given.
func (o *Options) Factors(f ...scale.Factors) scale.Factors {
	ret := o.factors
	if len(f) > 0 {
		o.factors = f[0]
	}
	return ret
}

//CheckInit returns an error if the options are not consistent.
func (o *Options) CheckInit() error {
	var errs []string
	if o.method != NoCutoff && o.method != PME {
		errs = append(errs, fmt.Sprintf("unknown method %v", o.method))
	}
	if o.method == PME {
		if o.order < pme.MinOrder || o.order > pme.MaxOrder {
			errs = append(errs, fmt.Sprintf("B-spline order %d out of range [%d,%d]", o.order, pme.MinOrder, pme.MaxOrder))
		}
		auto := o.grid == [3]int{}
		for i, v := range o.grid {
			if auto {
				break
			}
			if v < o.order || !pme.Smooth(v) {
				errs = append(errs, fmt.Sprintf("grid dimension %d (%d) must be at least the B-spline order and have no prime factors but 2, 3, 5 and 7", i, v))
			}
		}
	}
	if o.cutoff <= 0 {
		errs = append(errs, "cutoff must be positive")
	}
	if len(errs) > 0 {
		return newError(true, "CheckInit", "invalid options: %s", strings.Join(errs, "; "))
	}
	return nil
}

//optionsFile is the layout of the INI-style options file.
type optionsFile struct {
	Ewald struct {
		Method                     string
		Cutoff, Alpha, Tolerance   float64
		GridX, GridY, GridZ, Order int
	}
	SCF struct {
		MaxIterations               int
		Epsilon, SOR                float64
		WarmStart, AllowUnconverged bool
	}
	Scale struct {
		M12, M13, M14, M15 float64
		P12, P13, P14, P15 float64
		P41                float64
		D11, D12, D13, D14 float64
		U11, U12, U13, U14 float64
	}
	Run struct {
		Cpus    int
		Verbose bool
	}
}

//ReadOptions reads options from an INI-style file, with the sections
//[ewald], [scf], [scale] and [run]. Anything not in the file keeps its default value.
func ReadOptions(filename string) (*Options, error) {
	o := DefaultOptions()
	var f optionsFile
	f.Ewald.Method = o.method.String()
	f.Ewald.Cutoff = o.cutoff
	f.Ewald.Alpha = o.alpha
	f.Ewald.Tolerance = o.tolerance
	f.Ewald.Order = o.order
	f.SCF.MaxIterations = o.maxiter
	f.SCF.Epsilon = o.epsilon
	f.SCF.SOR = o.sor
	s := &f.Scale
	fa := o.factors
	s.M12, s.M13, s.M14, s.M15 = fa.M[0], fa.M[1], fa.M[2], fa.M[3]
	s.P12, s.P13, s.P14, s.P15 = fa.P[0], fa.P[1], fa.P[2], fa.P[3]
	s.P41 = fa.P41
	s.D11, s.D12, s.D13, s.D14 = fa.D[0], fa.D[1], fa.D[2], fa.D[3]
	s.U11, s.U12, s.U13, s.U14 = fa.U[0], fa.U[1], fa.U[2], fa.U[3]
	f.Run.Cpus = o.cpus
	if err := gcfg.ReadFileInto(&f, filename); err != nil {
		return nil, newError(true, "ReadOptions", "can't read options file %s: %s", filename, err.Error())
	}
	switch strings.ToLower(f.Ewald.Method) {
	case "pme":
		o.method = PME
	case "nocutoff":
		o.method = NoCutoff
	default:
		return nil, newError(true, "ReadOptions", "unknown method %s in %s", f.Ewald.Method, filename)
	}
	o.cutoff = f.Ewald.Cutoff
	o.alpha = f.Ewald.Alpha
	o.tolerance = f.Ewald.Tolerance
	o.grid = [3]int{f.Ewald.GridX, f.Ewald.GridY, f.Ewald.GridZ}
	o.order = f.Ewald.Order
	o.maxiter = f.SCF.MaxIterations
	o.epsilon = f.SCF.Epsilon
	o.sor = f.SCF.SOR
	o.warm = f.SCF.WarmStart
	o.allowUnconverged = f.SCF.AllowUnconverged
	o.factors = scale.Factors{
		M:   [4]float64{s.M12, s.M13, s.M14, s.M15},
		P:   [4]float64{s.P12, s.P13, s.P14, s.P15},
		P41: s.P41,
		D:   [4]float64{s.D11, s.D12, s.D13, s.D14},
		U:   [4]float64{s.U11, s.U12, s.U13, s.U14},
	}
	o.cpus = f.Run.Cpus
	if o.cpus < 1 {
		o.cpus = runtime.NumCPU()
	}
	o.verbose = f.Run.Verbose
	if o.maxiter < 1 || o.epsilon <= 0 || o.sor <= 0 || o.sor > 1 || o.tolerance <= 0 {
		return nil, newError(true, "ReadOptions", "invalid [scf] or [ewald] values in %s", filename)
	}
	if err := o.CheckInit(); err != nil {
		return nil, errDecorate(err, "ReadOptions")
	}
	return o, nil
}
