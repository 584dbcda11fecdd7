/*
 * doc.go, part of gopolar.
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

/*Package mpole contains the pairwise kernels of the multipole engine: the radial
coefficients of the bare, Ewald-screened and Thole-damped Coulomb interaction,
the Cartesian derivative tensors built from them, and the contraction of those
tensors with point multipoles (charge, dipole and traceless quadrupole) to get
potentials, fields, energies, forces and torques.

All the quantities are in "bare" units: the Coulomb constant is applied by the caller.
*/
package mpole
