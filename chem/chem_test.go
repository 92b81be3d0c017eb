/*
 * chem_test.go, part of chargerank.
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

package chem

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestPDBIO(Te *testing.T) {
	mol, err := PDBFileRead("test/model1.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 7 {
		Te.Errorf("Expected 7 atoms, got %d", mol.Len())
	}
	if mol.NFrames() != 1 {
		Te.Errorf("Expected 1 model, got %d", mol.NFrames())
	}
	at := mol.Atom(0)
	if at.Name != "N" || at.MolName != "ASP" || at.Chain != "A" || at.MolID != 1 || at.Symbol != "N" {
		Te.Errorf("First atom read wrong: %+v", at)
	}
	if mol.Atom(6).MolName != "HOH" || !mol.Atom(6).Het {
		Te.Errorf("HETATM read wrong: %+v", mol.Atom(6))
	}
	if math.Abs(mol.Coords[0].At(0, 0)-11.104) > 1e-6 {
		Te.Errorf("Wrong first coordinate: %f", mol.Coords[0].At(0, 0))
	}
	if math.Abs(mol.Bfactors[0][0]-10.50) > 1e-6 {
		Te.Errorf("Wrong first b-factor: %f", mol.Bfactors[0][0])
	}
	//Writing and re-reading must preserve the atom records.
	name := filepath.Join(Te.TempDir(), "model1out.pdb")
	if err := PDBFileWrite(name, mol.Coords, mol, mol.Bfactors); err != nil {
		Te.Fatal(err)
	}
	mol2, err := PDBFileRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if mol2.Len() != mol.Len() {
		Te.Fatalf("Roundtrip changed the number of atoms: %d vs %d", mol.Len(), mol2.Len())
	}
	for i := 0; i < mol.Len(); i++ {
		a, b := mol.Atom(i), mol2.Atom(i)
		if a.Name != b.Name || a.MolName != b.MolName || a.Chain != b.Chain ||
			a.MolID != b.MolID || a.Het != b.Het || a.Symbol != b.Symbol {
			Te.Errorf("Atom %d changed in roundtrip: %+v vs %+v", i, a, b)
		}
		for j := 0; j < 3; j++ {
			if math.Abs(mol.Coords[0].At(i, j)-mol2.Coords[0].At(i, j)) > 1e-3 {
				Te.Errorf("Coordinate %d,%d changed in roundtrip", i, j)
			}
		}
	}
}

const multiModelPDB = `MODEL        1
ATOM      1  CA  GLY A   1       1.000   2.000   3.000  1.00  0.00           C
ATOM      2  CA  ALA A   2       4.000   5.000   6.000  1.00  0.00           C
ENDMDL
MODEL        2
ATOM      1  CA  GLY A   1       1.100   2.100   3.100  1.00  0.00           C
ATOM      2  CA  ALA A   2       4.100   5.100   6.100  1.00  0.00           C
ENDMDL
END
`

func TestPDBMultiModel(Te *testing.T) {
	mol, err := PDBRead(strings.NewReader(multiModelPDB))
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 2 {
		Te.Errorf("Atoms must be read from the first model only, got %d", mol.Len())
	}
	if mol.NFrames() != 2 {
		Te.Errorf("Expected 2 models, got %d", mol.NFrames())
	}
	if math.Abs(mol.Coords[1].At(0, 0)-1.1) > 1e-6 {
		Te.Errorf("Wrong coordinate in second model: %f", mol.Coords[1].At(0, 0))
	}
}

func TestPDBGarbage(Te *testing.T) {
	_, err := PDBRead(strings.NewReader("this is not\na PDB file\n"))
	if err == nil {
		Te.Error("Expected an error for a non-PDB input")
	}
}

func TestPDBTruncated(Te *testing.T) {
	//records cut before the b-factor column must error out, not panic
	for _, in := range []string{
		"ATOM  truncated\n",
		"HETATM    7  O\n",
		"ATOM      1  N   ASP A   1      11.104   6.134\n",
		"ATOM      1  N   ASP A   1      11.104   6.134  -6.504  1.00",
	} {
		if _, err := PDBRead(strings.NewReader(in)); err == nil {
			Te.Errorf("Expected an error for the truncated record %q", in)
		}
	}
	//a truncated record in a later model goes through the coords-only reader
	in := multiModelPDB[:strings.LastIndex(multiModelPDB, "ATOM      2")] + "ATOM      2  CA\nENDMDL\nEND\n"
	if _, err := PDBRead(strings.NewReader(in)); err == nil {
		Te.Error("Expected an error for a truncated record in the second model")
	}
}

func TestPDBWriteLongMolName(Te *testing.T) {
	//4-character residue names use the same 17:21 window the reader takes
	//them from, leaving the chain and residue number columns in place
	ats := []*Atom{
		{ID: 1, Name: "CA", MolName: "ABCD", Chain: "A", MolID: 1, Occupancy: 1.0, Symbol: "C"},
		{ID: 2, Name: "CA", MolName: "GLY", Chain: "A", MolID: 2, Occupancy: 1.0, Symbol: "C"},
	}
	top := NewTopology(0, 1, ats)
	coords := []*mat.Dense{mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})}
	var buf strings.Builder
	if err := PDBWrite(&buf, coords, top, nil); err != nil {
		Te.Fatal(err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if !strings.HasPrefix(line, "ATOM") {
			continue
		}
		if line[21] != 'A' {
			Te.Errorf("Chain column shifted in %q", line)
		}
	}
	mol2, err := PDBRead(strings.NewReader(buf.String()))
	if err != nil {
		Te.Fatal(err)
	}
	if mol2.Atom(0).MolName != "ABCD" || mol2.Atom(0).MolID != 1 || mol2.Atom(1).MolName != "GLY" {
		Te.Errorf("Residue names changed in roundtrip: %+v %+v", mol2.Atom(0), mol2.Atom(1))
	}
	ats[0].MolName = "ABCDE"
	if err := PDBWrite(&strings.Builder{}, coords, top, nil); err == nil {
		Te.Error("Expected an error for a 5-character residue name")
	}
}

func TestSymbolFromName(Te *testing.T) {
	cases := map[string]string{
		"CA":   "C",
		"NZ":   "N",
		"OD1":  "O",
		"HD21": "H",
		"CL":   "Cl",
		"SE":   "Se",
		"ZN":   "Zn",
	}
	for name, want := range cases {
		got, err := symbolFromName(name)
		if err != nil {
			Te.Errorf("symbolFromName(%q): %v", name, err)
		}
		if got != want {
			Te.Errorf("symbolFromName(%q) = %q, want %q", name, got, want)
		}
	}
	if _, err := symbolFromName("XX7"); err == nil {
		Te.Error("Expected an error for an unguessable name")
	}
}
