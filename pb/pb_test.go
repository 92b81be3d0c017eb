/*
 * pb_test.go, part of chargerank.
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

package pb

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(Te *testing.T, name, content string) {
	Te.Helper()
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		Te.Fatal(err)
	}
}

func TestSearchBackwards(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "search.txt")
	writeFile(Te, name, "first needle\nsome chatter\nlast needle\ntrailer\n")
	if got := searchBackwards("needle", name); got != "last needle" {
		Te.Errorf("searchBackwards = %q, want %q", got, "last needle")
	}
	if got := searchBackwards("absent", name); got != "" {
		Te.Errorf("searchBackwards should return an empty string, got %q", got)
	}
	//a match on the very first line, with no trailing newline
	writeFile(Te, name, "needle at the start\nnothing else")
	if got := searchBackwards("needle", name); got != "needle at the start" {
		Te.Errorf("searchBackwards = %q, want %q", got, "needle at the start")
	}
	if got := searchBackwards("anything", filepath.Join(Te.TempDir(), "nope")); got != "" {
		Te.Errorf("searchBackwards on a missing file should return an empty string, got %q", got)
	}
}

func TestErrorStrings(Te *testing.T) {
	err := Error{ErrNoCharge, "apbs", "model1", "", []string{"Charge"}, true}
	if err.Message() != ErrNoCharge || err.Program() != "apbs" || !err.Critical() {
		Te.Errorf("Accessors wrong: %+v", err)
	}
	s := err.Error()
	if s != "apbs error in model1: "+ErrNoCharge {
		Te.Errorf("Error() = %q", s)
	}
	deco := err.Decorate("solverCharge")
	if len(deco) != 2 || deco[1] != "solverCharge" {
		Te.Errorf("Decorate trail wrong: %v", deco)
	}
}
