/*
 * chart_test.go, part of chargerank.
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

package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/chargerank/rank"
)

func TestBar(Te *testing.T) {
	results := []rank.Result{
		{Name: "model3.pdb", Charge: 12.34, Method: rank.MethodAPBS},
		{Name: "model1.pdb", Charge: -2.0, Method: rank.MethodResidueCount},
		{Name: "model2.cif", Charge: 0.0, Method: rank.MethodResidueCount},
	}
	name := filepath.Join(Te.TempDir(), "ranking")
	if err := Bar(results, "Surface charge ranking", name); err != nil {
		Te.Fatal(err)
	}
	st, err := os.Stat(name + ".png")
	if err != nil {
		Te.Fatal(err)
	}
	if st.Size() == 0 {
		Te.Error("An empty PNG was written")
	}
	if err := Bar(nil, "empty", name); err == nil {
		Te.Error("Expected an error for an empty ranking")
	}
}
