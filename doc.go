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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package polar computes the electrostatic energy and forces of a set of sites with
permanent multipoles (charges, dipoles and quadrupoles) and isotropic polarizabilities,
the way the AMOEBA force field does.

	**gopolar Capabilities**

    Local frames for the multipoles (Z-then-X, bisector, Z-only, none), with torques
    turned back into forces on the frame-defining sites.

    Covalent (1-2 to 1-5) and polarization group scale factors, built from the bonds.

    Induced dipoles, in the direct and polar sets, solved self-consistently with
    over-relaxed Jacobi iterations, with Thole damping.

    Smooth particle-mesh Ewald for triclinic boxes, or all pairs without periodicity.

    Electrostatic potential at arbitrary points, and the total multipole moments of the system.

    Checkpoints of the induced dipoles (package ckpt) and plots of the SCF convergence (package scfplot).

Units are nm, e and kJ/mol throughout. The typical use is:

	top := &polar.Topology{Sites: sites, Bonds: bonds}
	o := polar.DefaultOptions()
	o.Cutoff(0.9)
	E, err := polar.New(top, o)
	//for each step
	energy, err := E.Execute(coords, &box, forces, true, true)

An Engine keeps all its buffers between steps, and is not safe for concurrent use.
The forces are added to the given matrix only when the whole step succeeded.
*/
package polar
