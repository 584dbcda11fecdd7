/*
 * scf.go, part of gopolar.
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

//Package scf solves the self-consistent induced dipole equations,
//mu = alpha (E_fixed + T mu), by successive over-relaxed Jacobi iterations.
package scf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

//DebyePerENm converts dipoles from e*nm to Debye.
const DebyePerENm = 48.03204

//State is the state of the solver.
type State int

const (
	Uninitialized State = iota
	Iterating
	Converged
	MaxIterationsExceeded
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Iterating:
		return "Iterating"
	case Converged:
		return "Converged"
	case MaxIterationsExceeded:
		return "MaxIterationsExceeded"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

//Set is one set of induced dipoles, with the fixed field that creates it.
type Set struct {
	Name  string
	Fixed [][3]float64 //the field from the permanent multipoles
	Mu    [][3]float64
	field [][3]float64
}

//NewSet returns a set for n sites, with all the buffers allocated.
func NewSet(name string, n int) *Set {
	return &Set{Name: name, Fixed: make([][3]float64, n), Mu: make([][3]float64, n), field: make([][3]float64, n)}
}

//Fielder computes the field that a set of induced dipoles creates on each site,
//using the scale factors of the set named name.
type Fielder interface {
	InducedField(name string, mu [][3]float64, dst [][3]float64) error
}

//Report summarizes a run of the solver.
type Report struct {
	State      State
	Iterations int
	Residual   float64   //the last RMS change of the dipoles, in Debye
	History    []float64 //the residual after each iteration
}

//Solver iterates the induced dipoles until their RMS change, in Debye,
//drops below Epsilon, or MaxIter iterations are done. SOR is the relaxation
//factor: 1 is plain Jacobi.
type Solver struct {
	Alpha   []float64
	MaxIter int
	Epsilon float64
	SOR     float64
	state   State
	report  Report
}

//NewSolver returns a solver for sites with the given polarizabilities.
func NewSolver(alpha []float64, maxiter int, epsilon, sor float64) (*Solver, error) {
	if maxiter < 1 {
		return nil, fmt.Errorf("scf: maximum number of iterations must be positive, got %d", maxiter)
	}
	if epsilon <= 0 {
		return nil, fmt.Errorf("scf: convergence threshold must be positive, got %g", epsilon)
	}
	if sor <= 0 || sor > 1 {
		return nil, fmt.Errorf("scf: relaxation factor must be in (0,1], got %g", sor)
	}
	return &Solver{Alpha: alpha, MaxIter: maxiter, Epsilon: epsilon, SOR: sor}, nil
}

//State returns the state of the solver.
func (s *Solver) State() State {
	return s.state
}

//Report returns the report of the last run.
func (s *Solver) Report() Report {
	return s.report
}

//Reset takes the solver back to Uninitialized.
func (s *Solver) Reset() {
	s.state = Uninitialized
	s.report = Report{}
}

//Direct sets the dipoles of set to alpha times the fixed field.
func (s *Solver) Direct(set *Set) {
	for i, a := range s.Alpha {
		for c := 0; c < 3; c++ {
			set.Mu[i][c] = a * set.Fixed[i][c]
		}
	}
}

//Solve iterates all the sets together until all of them are converged. Unless
//warm is true, the dipoles start from the direct ones, alpha times the fixed field.
//It returns an error only if the Fielder fails. Not converging is reported in
//the returned Report.
func (s *Solver) Solve(f Fielder, warm bool, sets ...*Set) (Report, error) {
	s.report = Report{}
	s.state = Iterating
	polarizable := false
	for _, a := range s.Alpha {
		if a != 0 {
			polarizable = true
			break
		}
	}
	for _, set := range sets {
		if len(set.Mu) != len(s.Alpha) || len(set.Fixed) != len(s.Alpha) {
			s.state = Uninitialized
			return s.report, fmt.Errorf("scf: set %s has %d sites, expected %d", set.Name, len(set.Mu), len(s.Alpha))
		}
		if !warm || !polarizable {
			s.Direct(set)
		}
	}
	if !polarizable || len(sets) == 0 {
		s.state = Converged
		s.report.State = Converged
		return s.report, nil
	}
	n := float64(len(s.Alpha))
	rms := make([]float64, len(sets))
	for it := 1; it <= s.MaxIter; it++ {
		for _, set := range sets {
			if err := f.InducedField(set.Name, set.Mu, set.field); err != nil {
				s.state = Uninitialized
				return s.report, err
			}
		}
		//all the fields are computed with the dipoles of the previous iteration
		for k, set := range sets {
			sq := 0.0
			for i, a := range s.Alpha {
				for c := 0; c < 3; c++ {
					target := a * (set.Fixed[i][c] + set.field[i][c])
					delta := s.SOR * (target - set.Mu[i][c])
					set.Mu[i][c] += delta
					sq += delta * delta
				}
			}
			rms[k] = math.Sqrt(sq/n) * DebyePerENm
		}
		residual := floats.Max(rms)
		s.report.Iterations = it
		s.report.Residual = residual
		s.report.History = append(s.report.History, residual)
		if residual < s.Epsilon {
			s.state = Converged
			s.report.State = Converged
			return s.report, nil
		}
	}
	s.state = MaxIterationsExceeded
	s.report.State = MaxIterationsExceeded
	return s.report, nil
}
