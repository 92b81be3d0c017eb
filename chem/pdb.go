/*
 * pdb.go, part of chargerank.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

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

// A map between 3-letter names for aminoacidic residues and the
// corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
}

// symbolFromName tries to guess a chemical element symbol from a PDB atom
// name. Mostly based on AMBER names, it only deals with common bio-elements.
func symbolFromName(name string) (string, error) {
	symbol := ""
	if len(name) == 4 || (len(name) > 0 && name[0] == 'H') { //only Hs seem to have 4-char names in amber
		symbol = "H"
	} else if len(name) == 0 {
		return "", CError{"Empty PDB atom name", []string{"symbolFromName"}}
	} else if name[0] == 'C' { //Ca is not considered here
		switch name {
		case "CU":
			symbol = "Cu"
		case "CO":
			symbol = "Co"
		case "CL":
			symbol = "Cl"
		default:
			symbol = "C"
		}
	} else if name[0] == 'N' {
		if name == "NA" {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	} else if name[0] == 'O' {
		symbol = "O"
	} else if name[0] == 'P' {
		symbol = "P"
	} else if name[0] == 'S' {
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	} else if strings.HasPrefix(name, "ZN") {
		symbol = "Zn"
	}
	if symbol == "" {
		return symbol, CError{fmt.Sprintf("Couldn't guess symbol from PDB atom name %q", name), []string{"symbolFromName"}}
	}
	return symbol, nil
}

// readFullPDBLine parses a valid ATOM or HETATM line of a PDB file and
// returns an Atom with everything except the coordinates and the b-factor,
// which are returned separately.
func readFullPDBLine(line string) (*Atom, []float64, float64, error) {
	//everything up to the b-factor is mandatory
	if len(strings.TrimRight(line, "\n")) < 66 {
		return nil, nil, 0, CError{fmt.Sprintf("PDB record %q too short", strings.TrimRight(line, "\n")), []string{"readFullPDBLine"}}
	}
	err := make([]error, 7) //accumulated and checked at the end of the line
	coords := make([]float64, 3)
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err[0] = strconv.Atoi(strings.TrimSpace(line[6:12]))
	atom.Name = strings.TrimSpace(line[12:16])
	atom.Char16 = line[16]
	//PDB says pos. 17 is for something else, but it is used for the
	//residue name in many cases.
	atom.MolName = strings.TrimSpace(line[17:21])
	atom.MolName1 = three2OneLetter[atom.MolName]
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.MolID, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	//TrimSpace should not be needed for the coordinates, but someone may
	//not use the full columns when writing a PDB.
	coords[0], err[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	atom.Occupancy, err[5] = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	var bfactor float64
	bfactor, err[6] = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	//The element columns are only read if present. If something is missing
	//we just omit it and guess the symbol from the atom name.
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
	}
	if atom.Symbol == "" {
		atom.Symbol, _ = symbolFromName(atom.Name)
	}
	for i := range err {
		if err[i] != nil {
			return nil, nil, 0, CError{fmt.Sprintf("Failed to parse PDB line %q: %s", strings.TrimRight(line, "\n"), err[i].Error()), []string{"readFullPDBLine"}}
		}
	}
	return atom, coords, bfactor, nil
}

// readCoordsPDBLine parses an ATOM/HETATM line when only coordinates and
// b-factor are wanted, i.e. for every model after the first one.
func readCoordsPDBLine(line string) ([]float64, float64, error) {
	if len(strings.TrimRight(line, "\n")) < 66 {
		return nil, 0, CError{fmt.Sprintf("PDB record %q too short", strings.TrimRight(line, "\n")), []string{"readCoordsPDBLine"}}
	}
	coords := make([]float64, 3)
	err := make([]error, 4)
	var bfactor float64
	coords[0], err[0] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[1] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[2] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	bfactor, err[3] = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	for i := range err {
		if err[i] != nil {
			return nil, 0, CError{fmt.Sprintf("Failed to parse PDB coordinates from %q: %s", strings.TrimRight(line, "\n"), err[i].Error()), []string{"readCoordsPDBLine"}}
		}
	}
	return coords, bfactor, nil
}

// PDBFileRead reads a PDB file and returns a Molecule. Atom data is taken
// from the first model, coordinates and b-factors from every model.
func PDBFileRead(pdbname string) (*Molecule, error) {
	pdbfile, err := os.Open(pdbname)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead")
	}
	defer pdbfile.Close()
	mol, err := PDBRead(pdbfile)
	return mol, errDecorate(err, "PDBFileRead "+pdbname)
}

// PDBRead reads a PDB-formatted structure from an io.Reader and returns a
// Molecule. If the PDB contains one model the Coords slice will have
// length 1.
func PDBRead(pdb io.Reader) (*Molecule, error) {
	bufiopdb := bufio.NewReader(pdb)
	mol, err := pdbBufIORead(bufiopdb)
	return mol, errDecorate(err, "PDBRead")
}

func pdbBufIORead(pdb *bufio.Reader) (*Molecule, error) {
	molecule := make([]*Atom, 0, 100)
	coords := make([][]float64, 1)
	coords[0] = make([]float64, 0, 300)
	bfactors := make([][]float64, 1)
	bfactors[0] = make([]float64, 0, 100)
	firstmodel := true //in later models only coordinates are read
	for {
		line, err := pdb.ReadString('\n')
		if err != nil && (err != io.EOF || len(line) == 0) {
			break
		}
		if len(line) < 6 {
			continue
		}
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			var c []float64
			var bfac float64
			var at *Atom
			var err2 error
			if firstmodel {
				at, c, bfac, err2 = readFullPDBLine(line)
				if err2 != nil {
					return nil, errDecorate(err2, "pdbBufIORead")
				}
				//atom data other than coords is the same in all models,
				//so it is read only for the first one.
				molecule = append(molecule, at)
			} else {
				c, bfac, err2 = readCoordsPDBLine(line)
				if err2 != nil {
					return nil, errDecorate(err2, "pdbBufIORead")
				}
			}
			coords[len(coords)-1] = append(coords[len(coords)-1], c...)
			bfactors[len(bfactors)-1] = append(bfactors[len(bfactors)-1], bfac)
		} else if strings.HasPrefix(line, "MODEL") {
			modelnumber, _ := strconv.Atoi(strings.TrimSpace(line[6:])) //model count starts from 1
			if modelnumber > 1 {
				firstmodel = false
				coords = append(coords, make([]float64, 0, len(coords[0])))
				bfactors = append(bfactors, make([]float64, 0, len(bfactors[0])))
			}
		}
		if err == io.EOF {
			break
		}
	}
	if len(molecule) == 0 {
		return nil, CError{"No ATOM or HETATM records found", []string{"pdbBufIORead"}}
	}
	top := NewTopology(0, 1, molecule)
	mcoords := make([]*mat.Dense, 0, len(coords))
	for i := range coords {
		if len(coords[i]) == 0 {
			continue //trailing MODEL record with no atoms
		}
		if len(coords[i])%3 != 0 || len(coords[i])/3 != len(molecule) {
			return nil, CError{fmt.Sprintf("Model %d has %d coordinates for %d atoms", i+1, len(coords[i]), len(molecule)), []string{"pdbBufIORead"}}
		}
		mcoords = append(mcoords, mat.NewDense(len(molecule), 3, coords[i]))
	}
	return NewMolecule(mcoords, top, bfactors[:len(mcoords)])
}

// PDBFileWrite writes the molecule mol with the given coordinate blocks and
// b-factors (which may be nil) to a PDB file named pdbname. Any existing
// file is overwritten.
func PDBFileWrite(pdbname string, coords []*mat.Dense, mol Atomer, bfact [][]float64) error {
	out, err := os.Create(pdbname)
	if err != nil {
		return errDecorate(err, "PDBFileWrite")
	}
	defer out.Close()
	return errDecorate(PDBWrite(out, coords, mol, bfact), "PDBFileWrite "+pdbname)
}

// PDBWrite writes mol to out in PDB format. When more than one coordinate
// block is given, each is wrapped in a MODEL/ENDMDL pair. A TER record is
// emitted on every chain change.
func PDBWrite(out io.Writer, coords []*mat.Dense, mol Atomer, bfact [][]float64) error {
	if len(coords) == 0 {
		return CError{"No coordinates to write", []string{"PDBWrite"}}
	}
	if _, err := fmt.Fprint(out, "REMARK     WRITTEN WITH CHARGERANK\n"); err != nil {
		return errDecorate(err, "PDBWrite")
	}
	models := len(coords)
	for j := range coords {
		r, c := coords[j].Dims()
		if r != mol.Len() || c != 3 {
			return CError{fmt.Sprintf("Reference (%d atoms) and coords (%dx%d) don't match in frame %d", mol.Len(), r, c, j), []string{"PDBWrite"}}
		}
		if models > 1 {
			fmt.Fprintf(out, "MODEL %8d\n", j+1)
		}
		chainprev := mol.Atom(0).Chain //to know when the chain changes
		for i := 0; i < mol.Len(); i++ {
			at := mol.Atom(i)
			if at.Chain != chainprev {
				fmt.Fprintln(out, "TER")
				chainprev = at.Chain
			}
			first := "ATOM"
			if at.Het {
				first = "HETATM"
			}
			bfac := 0.0
			if len(bfact) > j && len(bfact[j]) > i {
				bfac = bfact[j][i]
			}
			var err error
			if len(at.MolName) > 4 {
				err = CError{fmt.Sprintf("Can't print PDB line for atom %d: residue name %q too long", i, at.MolName), []string{"PDBWrite"}}
			} else if len(at.Name) < 4 {
				//the residue name occupies the same 4-character window
				//the reader takes it from, so 4-character names survive
				//a conversion without shifting the chain column
				_, err = fmt.Fprintf(out, "%-6s%5d  %-3s %-4s%1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
					first, at.ID, at.Name, at.MolName, at.Chain, at.MolID,
					coords[j].At(i, 0), coords[j].At(i, 1), coords[j].At(i, 2), at.Occupancy, bfac, at.Symbol)
			} else if len(at.Name) == 4 {
				_, err = fmt.Fprintf(out, "%-6s%5d %4s %-4s%1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
					first, at.ID, at.Name, at.MolName, at.Chain, at.MolID,
					coords[j].At(i, 0), coords[j].At(i, 1), coords[j].At(i, 2), at.Occupancy, bfac, at.Symbol)
			} else {
				err = CError{fmt.Sprintf("Can't print PDB line for atom %d: name %q too long", i, at.Name), []string{"PDBWrite"}}
			}
			if err != nil {
				return errDecorate(err, "PDBWrite")
			}
		}
		if models > 1 {
			fmt.Fprint(out, "ENDMDL\n")
		}
	}
	_, err := fmt.Fprint(out, "END\n")
	return errDecorate(err, "PDBWrite")
}
