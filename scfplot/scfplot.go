/*
 * scfplot.go, part of gopolar.
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

//Package scfplot plots the convergence of the induced dipoles.
package scfplot

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/rmera/gopolar/scf"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "log10(RMS change / D)"
	p.X.Min = 0
	p.Add(plotter.NewGrid())
	return p
}

//Points returns the residual history of the reports as lines of (iteration, log10(residual)).
//Zero residuals are left out.
func Points(reps ...scf.Report) []plotter.XYs {
	ret := make([]plotter.XYs, 0, len(reps))
	for _, r := range reps {
		pts := make(plotter.XYs, 0, len(r.History))
		for i, v := range r.History {
			if v <= 0 {
				continue
			}
			pts = append(pts, plotter.XY{X: float64(i + 1), Y: math.Log10(v)})
		}
		ret = append(ret, pts)
	}
	return ret
}

/*Plot produces a plot, in png format, of the residual of the SCF iterations in each of
the reports given, with the threshold epsilon (not drawn if <= 0) as a dashed line. The ".png"
extension is added to plotname if it is not there. Each report is drawn with
a different color, going from red to blue.*/
func Plot(plotname, title string, epsilon float64, reps ...scf.Report) error {
	if len(reps) == 0 {
		return fmt.Errorf("scfplot: no reports given")
	}
	p := basicPlot(title)
	lines := Points(reps...)
	maxit := 0
	for key, pts := range lines {
		if len(pts) == 0 {
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("scfplot: %w", err)
		}
		b := uint8(0)
		if len(lines) > 1 {
			b = uint8(key * 255 / (len(lines) - 1))
		}
		l.LineStyle.Color = color.RGBA{R: 255 - b, B: b, A: 255}
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		maxit = max(maxit, int(pts[len(pts)-1].X))
	}
	if epsilon > 0 && maxit > 0 {
		th := plotter.XYs{{X: 1, Y: math.Log10(epsilon)}, {X: float64(maxit), Y: math.Log10(epsilon)}}
		l, err := plotter.NewLine(th)
		if err != nil {
			return fmt.Errorf("scfplot: %w", err)
		}
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
	}
	if !strings.HasSuffix(plotname, ".png") {
		plotname += ".png"
	}
	if err := p.Save(5*vg.Inch, 4*vg.Inch, plotname); err != nil {
		return fmt.Errorf("scfplot: %w", err)
	}
	return nil
}
