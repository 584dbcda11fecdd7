/*
 * scale.go, part of gopolar.
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

//Package scale builds the tables of scale factors that reduce or remove
//the electrostatic interactions between sites that are close in the
//covalent structure.
package scale

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

//Factors are the scale factors applied to each kind of interaction.
//M and P are indexed by bonded separation, 1-2 to 1-5. D and U are
//indexed by separation in the graph of polarization groups, from
//the same group (1-1) to 1-4. P41 multiplies P[2] for 1-4 pairs in the same group.
type Factors struct {
	M   [4]float64 //permanent-permanent
	P   [4]float64 //permanent field on the "polar" induced dipoles
	P41 float64
	D   [4]float64 //permanent field on the "direct" induced dipoles
	U   [4]float64 //induced-induced
}

//AMOEBA returns the usual scale factors of the AMOEBA force field.
func AMOEBA() Factors {
	return Factors{
		M:   [4]float64{0, 0, 0.4, 0.8},
		P:   [4]float64{0, 0, 1, 1},
		P41: 0.5,
		D:   [4]float64{0, 1, 1, 1},
		U:   [4]float64{1, 1, 1, 1},
	}
}

//NoScaling returns factors that leave every interaction unchanged.
func NoScaling() Factors {
	o := [4]float64{1, 1, 1, 1}
	return Factors{M: o, P: o, P41: 1, D: o, U: o}
}

//Entry holds the four scale factors of one ordered pair.
type Entry struct {
	J          int
	M, P, D, U float64
}

//One is the entry for a pair without scaling.
var One = Entry{M: 1, P: 1, D: 1, U: 1}

//Table is a sparse set of scale factors, per ordered pair of sites.
//Pairs not in the table have all their factors equal to 1.
type Table struct {
	rows [][]Entry //sorted by J
}

//Get returns the factors for the interaction of source j on target i.
//The second return value is false if the pair is not in the table.
func (t *Table) Get(i, j int) (Entry, bool) {
	row := t.rows[i]
	k := sort.Search(len(row), func(k int) bool { return row[k].J >= j })
	if k < len(row) && row[k].J == j {
		return row[k], true
	}
	e := One
	e.J = j
	return e, false
}

//Set sets the factors of source j on target i, overriding the ones built.
func (t *Table) Set(i int, e Entry) {
	row := t.rows[i]
	k := sort.Search(len(row), func(k int) bool { return row[k].J >= e.J })
	if k < len(row) && row[k].J == e.J {
		row[k] = e
		return
	}
	row = append(row, Entry{})
	copy(row[k+1:], row[k:])
	row[k] = e
	t.rows[i] = row
}

//Row returns the entries with target i, sorted by source index.
func (t *Table) Row(i int) []Entry {
	return t.rows[i]
}

//Len returns the number of sites in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

//maximum separations stored
const (
	maxBonded = 4 //1-5
	maxGroup  = 3 //1-4 in the group graph
)

//distances returns, for each node of g reachable from each other within max bonds, the
//number of bonds between them.
func distances(g *simple.UndirectedGraph, n, max int) []map[int]int {
	ret := make([]map[int]int, n)
	for i := 0; i < n; i++ {
		ret[i] = make(map[int]int)
		var bf traverse.BreadthFirst
		bf.Walk(g, simple.Node(i), func(node graph.Node, d int) bool {
			if d > max {
				return true
			}
			if d > 0 {
				ret[i][int(node.ID())] = d
			}
			return false
		})
	}
	return ret
}

//Build returns the scale table for n sites with the given covalent bonds (pairs of site indexes)
//and polarization group of each site, using the factors f.
func Build(n int, bonds [][2]int, groups []int, f Factors) (*Table, error) {
	if len(groups) != n {
		return nil, fmt.Errorf("%d groups given for %d sites", len(groups), n)
	}
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for _, b := range bonds {
		if b[0] < 0 || b[1] < 0 || b[0] >= n || b[1] >= n {
			return nil, fmt.Errorf("bond %v refers to a site that doesn't exist", b)
		}
		if b[0] == b[1] {
			return nil, fmt.Errorf("site %d bonded to itself", b[0])
		}
		g.SetEdge(g.NewEdge(simple.Node(b[0]), simple.Node(b[1])))
	}
	//the graph of groups: two groups are bonded if any of their sites are.
	gid := make(map[int]int)
	for _, v := range groups {
		if _, ok := gid[v]; !ok {
			gid[v] = len(gid)
		}
	}
	gg := simple.NewUndirectedGraph()
	for i := 0; i < len(gid); i++ {
		gg.AddNode(simple.Node(i))
	}
	for _, b := range bonds {
		g0, g1 := gid[groups[b[0]]], gid[groups[b[1]]]
		if g0 != g1 {
			gg.SetEdge(gg.NewEdge(simple.Node(g0), simple.Node(g1)))
		}
	}
	bonded := distances(g, n, maxBonded)
	grouped := distances(gg, len(gid), maxGroup)
	t := &Table{rows: make([][]Entry, n)}
	for i := 0; i < n; i++ {
		gi := gid[groups[i]]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			gj := gid[groups[j]]
			bd, isbonded := bonded[i][j]
			gd, isgrouped := grouped[gi][gj]
			if gi == gj {
				gd, isgrouped = 0, true
			}
			if !isbonded && !isgrouped {
				continue
			}
			e := One
			e.J = j
			if isbonded {
				e.M = f.M[bd-1]
				e.P = f.P[bd-1]
				if bd == 3 && gi == gj {
					e.P *= f.P41
				}
			}
			if isgrouped {
				e.D = f.D[gd]
				e.U = f.U[gd]
			}
			if e == (Entry{J: j, M: 1, P: 1, D: 1, U: 1}) {
				continue
			}
			t.rows[i] = append(t.rows[i], e)
		}
	}
	return t, nil
}
