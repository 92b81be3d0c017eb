/*
 * atoms.go, part of chargerank.
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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*Note: some functions here panic instead of returning errors. They are
"fundamental" functions: if something goes wrong in them the program is
way-most likely wrong anyway and should crash. The panics relate to
using a function on a nil object or accessing out-of-bounds fields.*/

// Atom contains the per-atom data read from a structure file, except for the
// coordinates, which go in a matrix, and the b-factors, which go in a
// separate slice.
type Atom struct {
	ID        int
	Name      string
	Char16    byte //alternate-location indicator
	MolName   string
	MolName1  byte //one-letter name for residues and nucleotides
	MolID     int
	Chain     string
	Occupancy float64
	Charge    float64 //partial charge, in elementary-charge units (PQR)
	Vdw       float64 //radius, in A (PQR)
	Symbol    string
	Het       bool //is this a HETATM record?
}

// Copy returns a copy of the Atom.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("atoms: attempted to copy a nil Atom")
	}
	at := *A
	return &at
}

// Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

// Topology contains information about a molecule which is not expected to
// change in time, i.e. everything except for coordinates and b-factors.
type Topology struct {
	Atoms    []*Atom
	charge   int
	unpaired int
}

// NewTopology returns a topology with the given total charge, unpaired
// electrons and atoms. The atom slice may be empty but not nil.
func NewTopology(charge, unpaired int, ats []*Atom) *Topology {
	if ats == nil {
		panic("atoms: nil atom slice given to NewTopology")
	}
	top := new(Topology)
	top.Atoms = ats
	top.charge = charge
	top.unpaired = unpaired
	return top
}

// Charge returns the total charge of the topology.
func (T *Topology) Charge() int {
	return T.charge
}

// Unpaired returns the number of unpaired electrons in the topology.
func (T *Topology) Unpaired() int {
	return T.unpaired
}

// SetCharge sets the total charge of the topology to i.
func (T *Topology) SetCharge(i int) {
	T.charge = i
}

// SetUnpaired sets the number of unpaired electrons in the topology to i.
func (T *Topology) SetUnpaired(i int) {
	T.unpaired = i
}

// Atom returns the Atom corresponding to the index i. Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("atoms: requested Atom out of bounds")
	}
	return T.Atoms[i]
}

// SetAtom sets the (i+1)th Atom of the topology to at. Panics if out of range.
func (T *Topology) SetAtom(i int, at *Atom) {
	if i >= T.Len() {
		panic("atoms: tried to set Atom out of bounds")
	}
	T.Atoms[i] = at
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

// Molecule contains all the info for a molecule in many states. The info
// expected to change between states, i.e. coordinates and b-factors, is
// stored separately from the atomic data. Each element of Coords is an Nx3
// matrix holding one model/frame.
type Molecule struct {
	*Topology
	Coords   []*mat.Dense
	Bfactors [][]float64
}

// NewMolecule builds a molecule from the given coordinate blocks, topology
// and b-factors. bfactors may be nil, in which case zeroed b-factors are
// generated. It checks that every coordinate block matches the topology.
func NewMolecule(coords []*mat.Dense, top *Topology, bfactors [][]float64) (*Molecule, error) {
	if top == nil {
		return nil, CError{"NewMolecule: nil topology", []string{"NewMolecule"}}
	}
	if coords == nil {
		return nil, CError{"NewMolecule: nil coordinates", []string{"NewMolecule"}}
	}
	mol := new(Molecule)
	mol.Topology = top
	mol.Coords = coords
	mol.Bfactors = bfactors
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return mol, nil
}

// Corrupted checks whether the molecule is corrupted, i.e. the coordinates
// don't match the number of atoms, or a coordinate block doesn't have 3
// columns. Missing or incomplete b-factors are not considered corruption:
// they are filled with zeroes.
func (M *Molecule) Corrupted() error {
	if M.Bfactors == nil {
		M.Bfactors = make([][]float64, 0, len(M.Coords))
	}
	for i := range M.Coords {
		r, c := M.Coords[i].Dims()
		if M.Len() != r || c != 3 {
			return CError{fmt.Sprintf("Inconsistent coordinates/atoms in frame %d: atoms %d, coords %dx%d", i, M.Len(), r, c), []string{"Molecule.Corrupted"}}
		}
		if len(M.Bfactors) <= i {
			M.Bfactors = append(M.Bfactors, make([]float64, M.Len()))
		} else if len(M.Bfactors[i]) < M.Len() {
			M.Bfactors[i] = make([]float64, M.Len())
		}
	}
	return nil
}

// NFrames returns the number of coordinate blocks (models) in the molecule.
func (M *Molecule) NFrames() int {
	return len(M.Coords)
}
