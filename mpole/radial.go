/*
 * radial.go, part of gopolar.
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

package mpole

import "math"

//MaxOrder is the highest derivative of a radial function that the package handles.
//Third derivatives of the potential of a quadrupole need it.
const MaxOrder = 5

//Radial holds the coefficients B_0..B_5 of a radial interaction function f(r),
//where B_0 = f and B_n+1 = -(1/r) dB_n/dr. All the Cartesian derivatives of
//f(|r|) can be written in terms of these and the components of r.
type Radial [MaxOrder + 1]float64

//Bare returns the coefficients for the undamped Coulomb kernel 1/r,
//B_n = (2n-1)!!/r^(2n+1).
func Bare(r float64) Radial {
	var b Radial
	ir := 1 / r
	ir2 := ir * ir
	b[0] = ir
	for n := 1; n <= MaxOrder; n++ {
		b[n] = float64(2*n-1) * b[n-1] * ir2
	}
	return b
}

//Erfc returns the coefficients for the real-space Ewald kernel erfc(beta r)/r.
func Erfc(r, beta float64) Radial {
	var b Radial
	ir2 := 1 / (r * r)
	b[0] = math.Erfc(beta*r) / r
	alsq2 := 2 * beta * beta
	alsq2n := 1 / (math.SqrtPi * beta)
	e := math.Exp(-beta * beta * r * r)
	for n := 1; n <= MaxOrder; n++ {
		alsq2n *= alsq2
		b[n] = (float64(2*n-1)*b[n-1] + alsq2n*e) * ir2
	}
	return b
}

//Ones is a set of damping multipliers that leaves a kernel untouched.
var Ones = Radial{1, 1, 1, 1, 1, 1}

//Thole returns the multipliers lambda_3, lambda_5, lambda_7 and lambda_9 that the
//Thole exponential damping applies to B_1..B_4 of the bare kernel, for two
//sites at distance r, with damping parameter pgamma (the smallest of the two Thole
//parameters) and damp, the product of the damping factors of both sites.
//A zero damp means no damping. B_0 is never damped (charge-charge terms do not
//involve induced dipoles) and B_5 gets lambda_9; no damped interaction reaches it.
func Thole(r, pgamma, damp float64) Radial {
	l := Ones
	if damp == 0 {
		return l
	}
	ratio := r / damp
	x := pgamma * ratio * ratio * ratio
	if x >= 50 {
		return l
	}
	e := math.Exp(-x)
	x2 := x * x
	l[1] = 1 - e
	l[2] = 1 - (1+x)*e
	l[3] = 1 - (1+x+0.6*x2)*e
	l[4] = 1 - (1+x+(18.0/35.0)*x2+(9.0/35.0)*x2*x)*e
	l[5] = l[4]
	return l
}

//Screened returns, order by order, base - (1 - s*lambda)*bare. This is how exclusions
//and Thole damping are applied on top of the real-space kernel: base is the
//Ewald real-space kernel (or the bare one, without periodicity), s the scale
//factor of the pair and lambda the damping multipliers. A nil lambda means no damping.
func Screened(base, bare *Radial, s float64, lambda *Radial) Radial {
	var ret Radial
	for n := range ret {
		l := 1.0
		if lambda != nil {
			l = lambda[n]
		}
		ret[n] = base[n] - (1-s*l)*bare[n]
	}
	return ret
}

//SelfFieldFactor is the constant c such that c*d is the field that a dipole d gets,
//in the reciprocal part of the Ewald sum, from its own Gaussian screening cloud.
//It has to be added back to the field to remove the self-interaction.
func SelfFieldFactor(beta float64) float64 {
	return 4 * beta * beta * beta / (3 * math.SqrtPi)
}

//SelfEnergy returns the Ewald self-energy correction for the multipole m,
//-(beta/sqrt(pi)) [q^2 + (2 beta^2/3)|d|^2 + (8 beta^4/45) Theta:Theta]
func SelfEnergy(m *Multipole, beta float64) float64 {
	b2 := beta * beta
	dd := m.D[0]*m.D[0] + m.D[1]*m.D[1] + m.D[2]*m.D[2]
	qq := 0.0
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			qq += m.Theta[a][b] * m.Theta[a][b]
		}
	}
	return -(beta / math.SqrtPi) * (m.Q*m.Q + (2*b2/3)*dd + (8*b2*b2/45)*qq)
}
