/*
 * charges.go, part of chargerank.
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

// Formal charges for the titratable aminoacidic residues at pH 7.
// HIS sits close to its pKa so it gets a small positive fraction rather
// than 0 or +1. This table is the whole physics of the residue-count
// estimate: no pKa shifts, no local environment, no termini.
var formalCharges = map[string]float64{
	"ARG": 1.0,
	"LYS": 1.0,
	"ASP": -1.0,
	"GLU": -1.0,
	"HIS": 0.1,
}

// ResidueCharge returns the formal charge at pH 7 for a 3-letter residue
// name. Residues not in the table contribute zero.
func ResidueCharge(molname string) float64 {
	return formalCharges[molname]
}

// NetFormalCharge estimates the net charge of mol, in elementary-charge
// units, by summing the formal charge of every residue in the topology.
// Each residue counts once: a new residue starts whenever the chain,
// residue number or residue name changes, which relies on atoms being
// grouped contiguously by residue, as both readers guarantee. HETATM
// records are skipped. Since the topology holds the atoms of the first
// model only, multi-model files contribute each residue once.
func NetFormalCharge(mol Atomer) float64 {
	var total float64
	var prevChain, prevName string
	prevID := -1 << 30
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if at.Het {
			continue
		}
		if at.Chain != prevChain || at.MolID != prevID || at.MolName != prevName {
			total += ResidueCharge(at.MolName)
			prevChain, prevID, prevName = at.Chain, at.MolID, at.MolName
		}
	}
	return total
}
