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

/*Package frame builds the local coordinate frames in which the permanent
multipoles of each site are defined, rotates the multipoles into the lab
frame, and turns the torques on the multipoles into forces on the sites
that define each frame.

The z axis points to the z-defining site (ZThenX, ZOnly) or along the bisector
of the two defining bonds (Bisector). The x axis is the x-defining site's
direction (or a fixed lab vector, for ZOnly) with its z component removed,
and y = z cross x.
*/
package frame
