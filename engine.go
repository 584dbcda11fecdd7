/*
 * engine.go, part of gopolar.
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
	"log"
	"math"
	"sync"

	"github.com/rmera/gopolar/frame"
	"github.com/rmera/gopolar/mpole"
	"github.com/rmera/gopolar/pme"
	"github.com/rmera/gopolar/scale"
	"github.com/rmera/gopolar/scf"
	v3 "github.com/rmera/gopolar/v3"
)

//Coulomb is the electrostatic conversion factor, in kJ nm/(mol e^2).
const Coulomb = 138.935456

//Engine evaluates the polarizable multipole electrostatics of a fixed set of
//sites. All its buffers are allocated at creation, and reused in each step.
//An Engine is not safe for concurrent use.
type Engine struct {
	o      *Options
	sites  []Site
	n      int
	table  *scale.Table
	solver *scf.Solver
	direct *scf.Set //driven by the d-scaled field
	polar  *scf.Set //driven by the p-scaled field
	thole  []float64
	damp   []float64

	grid    *pme.Grid //nil for NoCutoff, and until the first step if it is derived from the box
	alpha   float64
	permPot *pme.Potential
	indPot  *pme.Potential //scratch, for the SCF iterations
	dPot    *pme.Potential
	pPot    *pme.Potential

	//per step
	box     Box
	pos     [][3]float64
	frames  []frame.Frame
	lab     []mpole.Multipole
	permRec []mpole.Field
	recD    []mpole.Field
	recP    []mpole.Field
	scratch []mpole.Field
	dip     []mpole.Multipole
	eperm   []float64
	force   [][3]float64
	torque  [][3]float64
	total   [][3]float64
	report  scf.Report

	executed bool
	induced  bool //there are dipoles from a previous step, for warm starts
}

//New returns an Engine for the sites and bonds in top, with the options o
//(the default ones if o is nil). All the configuration errors are reported here.
func New(top *Topology, o *Options) (*Engine, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if err := o.CheckInit(); err != nil {
		return nil, errDecorate(err, "New")
	}
	if err := top.check(); err != nil {
		return nil, errDecorate(err, "New")
	}
	n := top.Len()
	oc := *o //later changes to the caller's options don't reach the engine
	o = &oc
	E := &Engine{o: o, n: n}
	E.sites = make([]Site, n)
	copy(E.sites, top.Sites)
	var err error
	E.table, err = scale.Build(n, top.Bonds, top.Groups(), o.factors)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	alphas := make([]float64, n)
	E.thole = make([]float64, n)
	E.damp = make([]float64, n)
	for i := range E.sites {
		s := &E.sites[i]
		alphas[i] = s.Polarizability
		E.thole[i] = s.Thole
		E.damp[i] = s.damping()
	}
	E.solver, err = scf.NewSolver(alphas, o.maxiter, o.epsilon, o.sor)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	E.direct = scf.NewSet("direct", n)
	E.polar = scf.NewSet("polar", n)
	if o.method == PME && o.alpha > 0 && o.grid != [3]int{} {
		if err := E.initGrid(o.grid, o.alpha); err != nil {
			return nil, errDecorate(err, "New")
		}
	}
	E.pos = make([][3]float64, n)
	E.frames = make([]frame.Frame, n)
	E.lab = make([]mpole.Multipole, n)
	E.permRec = make([]mpole.Field, n)
	E.recD = make([]mpole.Field, n)
	E.recP = make([]mpole.Field, n)
	E.scratch = make([]mpole.Field, n)
	E.dip = make([]mpole.Multipole, n)
	E.eperm = make([]float64, n)
	E.force = make([][3]float64, n)
	E.torque = make([][3]float64, n)
	E.total = make([][3]float64, n)
	return E, nil
}

func (E *Engine) initGrid(dims [3]int, alpha float64) error {
	var err error
	E.grid, err = pme.New(dims, E.o.order, alpha, E.o.cpus)
	if err != nil {
		return err
	}
	E.alpha = alpha
	E.permPot = E.grid.NewPotential()
	E.indPot = E.grid.NewPotential()
	E.dPot = E.grid.NewPotential()
	E.pPot = E.grid.NewPotential()
	return nil
}

//setupGrid creates the PME grid, on the first step, from the box, if needed.
func (E *Engine) setupGrid() error {
	if E.grid != nil {
		return nil
	}
	alpha, dims := pme.Parameters(E.box, E.o.cutoff, E.o.tolerance, E.o.order)
	if E.o.alpha > 0 {
		alpha = E.o.alpha
	}
	if E.o.grid != [3]int{} {
		dims = E.o.grid
	}
	if E.o.verbose {
		log.Printf("gopolar: PME with alpha %.4f 1/nm and a %dx%dx%d grid", alpha, dims[0], dims[1], dims[2])
	}
	return E.initGrid(dims, alpha)
}

//Len returns the number of sites.
func (E *Engine) Len() int {
	return E.n
}

//periodic is true if the engine uses Ewald sums.
func (E *Engine) periodic() bool {
	return E.o.method == PME
}

//Execute computes the electrostatic energy of the sites at coords (in nm), in the
//periodic box (ignored, and can be nil, for NoCutoff). If includeForces is true, the
//forces on the sites are added to forces. It returns the energy, in kJ/mol, if
//includeEnergy is true, and 0 otherwise. Nothing is added to forces if an error is returned.
func (E *Engine) Execute(coords *v3.Matrix, box *Box, forces *v3.Matrix, includeForces, includeEnergy bool) (float64, error) {
	if coords == nil || coords.NVecs() != E.n {
		return 0, newError(true, "Execute", "coordinates for %d sites expected", E.n)
	}
	if includeForces && (forces == nil || forces.NVecs() != E.n) {
		return 0, newError(true, "Execute", "force buffer for %d sites expected", E.n)
	}
	if E.periodic() {
		if box == nil {
			return 0, newError(true, "Execute", "a box is needed with %v", E.o.method)
		}
		if err := box.Check(E.o.cutoff); err != nil {
			return 0, newError(true, "Execute", "%s", err.Error())
		}
		E.box = *box
		if err := E.setupGrid(); err != nil {
			return 0, errDecorate(err, "Execute")
		}
	}
	E.executed = false
	coords.Vecs(E.pos)
	if err := E.buildFrames(); err != nil {
		return 0, errDecorate(err, "Execute")
	}
	if err := E.permanentReciprocal(); err != nil {
		return 0, errDecorate(err, "Execute")
	}
	E.fixedFields()
	rep, err := E.solver.Solve(E, E.o.warm && E.induced, E.direct, E.polar)
	E.report = rep
	if err != nil {
		return 0, errDecorate(err, "Execute")
	}
	E.induced = true
	if rep.State != scf.Converged {
		if !E.o.allowUnconverged {
			return 0, &NotConvergedError{Iterations: rep.Iterations, Residual: rep.Residual, deco: []string{"Execute"}}
		}
		log.Printf("gopolar: using induced dipoles not converged after %d iterations (RMS change %.3g D)", rep.Iterations, rep.Residual)
	}
	if err := E.inducedReciprocal(includeForces); err != nil {
		return 0, errDecorate(err, "Execute")
	}
	energy := E.assemble(includeForces)
	E.executed = true
	if E.o.verbose {
		log.Printf("gopolar: energy %.6f kJ/mol, %d SCF iterations, RMS change %.3g D", energy, rep.Iterations, rep.Residual)
	}
	if includeForces {
		forces.AddVecs(E.total)
	}
	if !includeEnergy {
		return 0, nil
	}
	return energy, nil
}

//buildFrames builds the local frames and the lab-frame multipoles.
func (E *Engine) buildFrames() error {
	for i := range E.sites {
		s := &E.sites[i]
		var rz, rx [3]float64
		if s.Axis != frame.NoAxisType {
			rz = E.pos[s.ZAtom]
		}
		if s.Axis.Neighbors() == 2 {
			rx = E.pos[s.XAtom]
		}
		f, err := frame.Build(s.Axis, E.pos[i], rz, rx)
		if err != nil {
			return newError(true, "buildFrames", "site %d: %s", i, err.Error())
		}
		E.frames[i] = f
		E.lab[i].Q = s.Charge
		E.lab[i].D, E.lab[i].Theta = f.Rotate(s.Dipole, s.Quadrupole)
	}
	return nil
}

//permanentReciprocal computes the reciprocal potential of the permanent multipoles,
//which is kept for the rest of the step, and its derivatives at each site.
func (E *Engine) permanentReciprocal() error {
	for i := range E.permRec {
		E.permRec[i].Reset()
	}
	if !E.periodic() {
		return nil
	}
	if err := E.grid.Solve(E.permPot, E.box, E.pos, E.lab); err != nil {
		return err
	}
	E.permPot.Gather(E.pos, 3, 1, E.permRec)
	return nil
}

//inducedReciprocal computes the reciprocal potentials of the converged induced dipoles.
//The one of the polar set is only needed for forces.
func (E *Engine) inducedReciprocal(forces bool) error {
	for i := 0; i < E.n; i++ {
		E.recD[i].Reset()
		E.recP[i].Reset()
	}
	if !E.periodic() {
		return nil
	}
	for i, mu := range E.direct.Mu {
		E.dip[i] = mpole.Dipole(mu)
	}
	if err := E.grid.Solve(E.dPot, E.box, E.pos, E.dip); err != nil {
		return err
	}
	if !forces {
		return nil
	}
	E.dPot.Gather(E.pos, 3, 1, E.recD)
	for i, mu := range E.polar.Mu {
		E.dip[i] = mpole.Dipole(mu)
	}
	if err := E.grid.Solve(E.pPot, E.box, E.pos, E.dip); err != nil {
		return err
	}
	E.pPot.Gather(E.pos, 3, 1, E.recP)
	return nil
}

//parallel splits [0,n) in at most cpus pieces and runs f on each in its own goroutine.
func parallel(n, cpus int, f func(lo, hi int)) {
	if cpus > n {
		cpus = n
	}
	if cpus <= 1 {
		f(0, n)
		return
	}
	var wg sync.WaitGroup
	chunk := (n + cpus - 1) / cpus
	for lo := 0; lo < n; lo += chunk {
		hi := int(math.Min(float64(lo+chunk), float64(n)))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
