/*
 * pdbx.go, part of chargerank.
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
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var tl func(string) string = strings.ToLower

// The _atom_site tags we care about. Values are the position of each tag in
// the loop header, or -1 when the file doesn't carry that tag.
var atomSiteTags = []string{
	"_atom_site.group_pdb",
	"_atom_site.id",
	"_atom_site.type_symbol",
	"_atom_site.label_alt_id",
	"_atom_site.cartn_x",
	"_atom_site.cartn_y",
	"_atom_site.cartn_z",
	"_atom_site.occupancy",
	"_atom_site.b_iso_or_equiv",
	"_atom_site.pdbx_formal_charge",
	"_atom_site.auth_seq_id",
	"_atom_site.auth_comp_id",
	"_atom_site.auth_asym_id",
	"_atom_site.auth_atom_id",
	"_atom_site.label_seq_id",
	"_atom_site.label_comp_id",
	"_atom_site.label_asym_id",
	"_atom_site.label_atom_id",
	"_atom_site.pdbx_pdb_model_num",
}

type siteMap map[string]int

func newSiteMap() siteMap {
	m := make(siteMap, len(atomSiteTags))
	for _, v := range atomSiteTags {
		m[v] = -1
	}
	return m
}

// add records position i for the tag s, if s is a tag we know about.
func (m siteMap) add(s string, i int) {
	s = tl(strings.TrimSpace(s))
	if _, ok := m[s]; ok {
		m[s] = i
	}
}

// field returns the value for the tag s in the given data row, or an empty
// string when the tag is absent from the file or out of range. The auth_*
// tags fall back to their label_* counterparts, which some files use
// instead.
func (m siteMap) field(s string, data []string) string {
	i, ok := m[s]
	if !ok || i < 0 {
		if alt := strings.Replace(s, "auth_", "label_", 1); alt != s {
			return m.field(alt, data)
		}
		return ""
	}
	if i >= len(data) {
		return ""
	}
	return data[i]
}

// PDBxFileRead reads a PDBx/mmCIF file and returns a Molecule.
func PDBxFileRead(name string) (*Molecule, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errDecorate(err, "PDBxFileRead")
	}
	defer f.Close()
	mol, err := PDBxRead(f)
	return mol, errDecorate(err, "PDBxFileRead "+name)
}

// PDBxRead reads a PDBx/mmCIF-formatted structure from an io.Reader and
// returns a Molecule. Only the _atom_site category is interpreted. As with
// PDB files, atom data is taken from the first model and coordinates from
// every model.
func PDBxRead(r io.Reader) (*Molecule, error) {
	mol, err := pdbxBufIORead(bufio.NewReader(r))
	return mol, errDecorate(err, "PDBxRead")
}

func pdbxFillAtom(m siteMap, data []string) (*Atom, error) {
	at := new(Atom)
	at.Symbol = m.field("_atom_site.type_symbol", data)
	at.Name = m.field("_atom_site.auth_atom_id", data)
	if at.Symbol == "" || at.Symbol == "?" || at.Symbol == "." {
		at.Symbol, _ = symbolFromName(at.Name)
	}
	at.MolName = m.field("_atom_site.auth_comp_id", data)
	at.MolName1 = three2OneLetter[at.MolName]
	at.Chain = m.field("_atom_site.auth_asym_id", data)
	if alt := m.field("_atom_site.label_alt_id", data); alt != "" {
		at.Char16 = alt[0]
	}
	//a missing group_PDB tag means plain ATOM records
	at.Het = m.field("_atom_site.group_pdb", data) == "HETATM"
	var err error
	if s := m.field("_atom_site.id", data); s != "" {
		if at.ID, err = strconv.Atoi(s); err != nil {
			return nil, CError{fmt.Sprintf("Couldn't parse atom id from %q: %s", s, err.Error()), []string{"pdbxFillAtom"}}
		}
	}
	if s := m.field("_atom_site.auth_seq_id", data); s != "" {
		if at.MolID, err = strconv.Atoi(s); err != nil {
			return nil, CError{fmt.Sprintf("Couldn't parse residue id from %q: %s", s, err.Error()), []string{"pdbxFillAtom"}}
		}
	}
	if s := m.field("_atom_site.occupancy", data); s != "" {
		if occ, err2 := strconv.ParseFloat(s, 64); err2 == nil {
			at.Occupancy = occ
		}
	}
	//formal charge is often just "?"; nothing is done when unreadable
	if s := m.field("_atom_site.pdbx_formal_charge", data); s != "" {
		if q, err2 := strconv.ParseFloat(s, 64); err2 == nil {
			at.Charge = q
		}
	}
	return at, nil
}

func pdbxFillCoords(m siteMap, data []string, coord []float64) ([]float64, error) {
	for _, v := range []string{"_atom_site.cartn_x", "_atom_site.cartn_y", "_atom_site.cartn_z"} {
		s := m.field(v, data)
		if s == "" {
			return coord, CError{fmt.Sprintf("Field %s not present in data row %v", v, data), []string{"pdbxFillCoords"}}
		}
		fl, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return coord, CError{fmt.Sprintf("Couldn't parse %s from %q: %s", v, s, err.Error()), []string{"pdbxFillCoords"}}
		}
		coord = append(coord, fl)
	}
	return coord, nil
}

func pdbxBufIORead(r *bufio.Reader) (*Molecule, error) {
	m := newSiteMap()
	molecule := make([]*Atom, 0, 100)
	coords := make([][]float64, 1)
	coords[0] = make([]float64, 0, 300)
	bfactors := make([][]float64, 1)
	bfactors[0] = make([]float64, 0, 100)
	currentmodel := 1
	var reading bool
	var field int
	havebfactors := true
	for {
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || len(line) == 0) {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			if err == io.EOF {
				break
			}
			continue
		}
		if strings.HasPrefix(trimmed, "_") {
			if strings.HasPrefix(tl(trimmed), "_atom_site.") {
				if !reading {
					reading = true
					field = 0
				}
				m.add(trimmed, field)
				field++
			} else {
				reading = false //a different category started
			}
			continue
		}
		if strings.HasPrefix(tl(trimmed), "loop_") || strings.HasPrefix(tl(trimmed), "data_") {
			reading = false
			continue
		}
		if !reading {
			continue
		}
		//a data row of the _atom_site loop
		fields := strings.Fields(trimmed)
		if s := m.field("_atom_site.pdbx_pdb_model_num", fields); s != "" {
			model, err2 := strconv.Atoi(s)
			if err2 != nil {
				return nil, CError{fmt.Sprintf("Couldn't parse model number from %q: %s", s, err2.Error()), []string{"pdbxBufIORead"}}
			}
			if model > currentmodel {
				nats := len(coords[len(coords)-1])
				coords = append(coords, make([]float64, 0, nats))
				bfactors = append(bfactors, make([]float64, 0, nats/3+1))
				currentmodel = model
			}
		}
		//atoms are not read again for models other than the first
		if currentmodel == 1 {
			at, err2 := pdbxFillAtom(m, fields)
			if err2 != nil {
				return nil, errDecorate(err2, fmt.Sprintf("pdbxBufIORead: atom %d", len(molecule)+1))
			}
			molecule = append(molecule, at)
		}
		c := len(coords) - 1
		var err2 error
		coords[c], err2 = pdbxFillCoords(m, fields, coords[c])
		if err2 != nil {
			return nil, errDecorate(err2, fmt.Sprintf("pdbxBufIORead: coordinates %d of model %d", len(coords[c])/3+1, currentmodel))
		}
		if havebfactors {
			if s := m.field("_atom_site.b_iso_or_equiv", fields); s != "" {
				fl, err3 := strconv.ParseFloat(s, 64)
				if err3 != nil {
					//it can very well be that the file just doesn't carry b-factors
					log.Printf("pdbxBufIORead: Couldn't read b-factor %d for model %d: %v", len(bfactors[c])+1, currentmodel, err3)
					havebfactors = false
				} else {
					bfactors[c] = append(bfactors[c], fl)
				}
			} else {
				havebfactors = false
			}
		}
		if err == io.EOF {
			break
		}
	}
	if len(molecule) == 0 {
		return nil, CError{"No _atom_site records found", []string{"pdbxBufIORead"}}
	}
	top := NewTopology(0, 1, molecule)
	mcoords := make([]*mat.Dense, 0, len(coords))
	for i := range coords {
		if len(coords[i]) == 0 {
			continue
		}
		if len(coords[i])/3 != len(molecule) {
			return nil, CError{fmt.Sprintf("Model %d has %d coordinates for %d atoms", i+1, len(coords[i])/3, len(molecule)), []string{"pdbxBufIORead"}}
		}
		mcoords = append(mcoords, mat.NewDense(len(molecule), 3, coords[i]))
	}
	if !havebfactors {
		bfactors = nil
	}
	return NewMolecule(mcoords, top, bfactors)
}
