/*
 * errors.go, part of gopolar.
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
	"strings"
)

//These errors do not use the "wrapping" system of the errors package.
//Decorate adds the trail of functions an error went through, without wrapping it.

//Error is the interface for errors that all the packages in gopolar that return
//errors with a trail implement.
type Error interface {
	Error() string
	Decorate(string) []string //adds the caller to the trail and returns the trail. An empty string just returns it.
	Critical() bool
}

//CError is the general error type of the engine. Configuration errors are critical:
//the engine cannot be used until they are fixed.
type CError struct {
	msg      string
	deco     []string
	critical bool
}

func (err CError) Error() string {
	if len(err.deco) == 0 {
		return err.msg
	}
	return fmt.Sprintf("%s (%s)", err.msg, strings.Join(err.deco, " <- "))
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err CError) Critical() bool { return err.critical }

func newError(critical bool, caller string, format string, args ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, args...), deco: []string{caller}, critical: critical}
}

//errDecorate decorates err with the caller's name if it is an Error,
//and turns it into one otherwise.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
		return e
	}
	return &CError{msg: err.Error(), deco: []string{caller}, critical: true}
}

//NotConvergedError is returned by Execute when the induced dipoles didn't converge
//and the engine was not allowed to use unconverged ones. Nothing is added to the
//caller's buffers in that case.
type NotConvergedError struct {
	Iterations int
	Residual   float64 //in Debye
	deco       []string
}

func (err *NotConvergedError) Error() string {
	return fmt.Sprintf("induced dipoles not converged after %d iterations, RMS change %.3g D", err.Iterations, err.Residual)
}

//Decorate adds dec to the trail of the error and returns the trail.
func (err *NotConvergedError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical is false: a new step, or a looser threshold, may be fine.
func (err *NotConvergedError) Critical() bool { return false }
