/*
 * pqr.go, part of chargerank.
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
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// PQRFileRead reads a PQR file, as produced by pdb2pqr, and returns a
// Molecule with the per-atom charge and radius filled in.
func PQRFileRead(name string) (*Molecule, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errDecorate(err, "PQRFileRead")
	}
	defer f.Close()
	mol, err := PQRRead(f)
	return mol, errDecorate(err, "PQRFileRead "+name)
}

// PQRRead reads a PQR-formatted structure from an io.Reader. PQR records are
// whitespace-delimited, not column-delimited: the fields are record name,
// atom serial, atom name, residue name, an optional chain identifier,
// residue number, x, y, z, charge (e) and radius (A). Only a single model is
// expected; pdb2pqr never writes more than one.
func PQRRead(r io.Reader) (*Molecule, error) {
	molecule := make([]*Atom, 0, 100)
	coords := make([]float64, 0, 300)
	buf := bufio.NewReader(r)
	for {
		line, err := buf.ReadString('\n')
		if err != nil && (err != io.EOF || len(line) == 0) {
			break
		}
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			at, c, err2 := readPQRLine(line)
			if err2 != nil {
				return nil, errDecorate(err2, fmt.Sprintf("PQRRead: atom %d", len(molecule)+1))
			}
			molecule = append(molecule, at)
			coords = append(coords, c...)
		}
		if err == io.EOF {
			break
		}
	}
	if len(molecule) == 0 {
		return nil, CError{"No ATOM or HETATM records found", []string{"PQRRead"}}
	}
	top := NewTopology(0, 1, molecule)
	mcoords := []*mat.Dense{mat.NewDense(len(molecule), 3, coords)}
	return NewMolecule(mcoords, top, nil)
}

// readPQRLine parses one PQR record. The chain identifier may be missing;
// the numeric tail (residue number, coordinates, charge, radius) is
// addressed from the end of the record to cope with both layouts.
func readPQRLine(line string) (*Atom, []float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 10 {
		return nil, nil, CError{fmt.Sprintf("Malformed PQR record %q", strings.TrimRight(line, "\n")), []string{"readPQRLine"}}
	}
	at := new(Atom)
	at.Het = fields[0] == "HETATM"
	at.Name = fields[2]
	at.MolName = fields[3]
	at.MolName1 = three2OneLetter[at.MolName]
	if len(fields) >= 11 {
		at.Chain = fields[4]
	}
	n := len(fields)
	err := make([]error, 7)
	at.ID, err[0] = strconv.Atoi(fields[1])
	at.MolID, err[1] = strconv.Atoi(fields[n-6])
	c := make([]float64, 3)
	c[0], err[2] = strconv.ParseFloat(fields[n-5], 64)
	c[1], err[3] = strconv.ParseFloat(fields[n-4], 64)
	c[2], err[4] = strconv.ParseFloat(fields[n-3], 64)
	at.Charge, err[5] = strconv.ParseFloat(fields[n-2], 64)
	at.Vdw, err[6] = strconv.ParseFloat(fields[n-1], 64)
	for i := range err {
		if err[i] != nil {
			return nil, nil, CError{fmt.Sprintf("Failed to parse PQR record %q: %s", strings.TrimRight(line, "\n"), err[i].Error()), []string{"readPQRLine"}}
		}
	}
	at.Symbol, _ = symbolFromName(at.Name)
	return at, c, nil
}
