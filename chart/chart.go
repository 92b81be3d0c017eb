/*
 * chart.go, part of chargerank.
 *
 * Copyright 2025 rmeraaatacademicosdotutadotcl
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
 * chargerank is developed at Universidad de Tarapaca (UTA)
 *
 */

//Package chart draws a ranking as a bar chart, one bar per model, in
//ranking order. Positive and negative net charges keep their sign, so the
//bars go both ways from zero.
package chart

import (
	"fmt"
	"image/color"

	"github.com/rmera/chargerank/rank"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Bar saves a bar chart of the given (already sorted) results as name.png.
func Bar(results []rank.Result, title, name string) error {
	if len(results) == 0 {
		return fmt.Errorf("chart: nothing to plot")
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.Y.Label.Text = "Net charge (e)"
	vals := make(plotter.Values, len(results))
	names := make([]string, len(results))
	for i, r := range results {
		vals[i] = r.Charge
		names[i] = r.Name
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 60, G: 90, B: 180, A: 255}
	p.Add(bars)
	p.Add(plotter.NewGrid())
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.5
	p.X.Tick.Label.XAlign = -0.8
	return p.Save(6*vg.Inch, 4*vg.Inch, name+".png")
}
