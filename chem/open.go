/*
 * open.go, part of chargerank.
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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// IsCIF reports whether the file name looks like a PDBx/mmCIF file, possibly
// gzip-compressed.
func IsCIF(name string) bool {
	return baseExt(name) == ".cif"
}

// IsPDB reports whether the file name looks like a PDB file (.pdb or .ent),
// possibly gzip-compressed.
func IsPDB(name string) bool {
	ext := baseExt(name)
	return ext == ".pdb" || ext == ".ent"
}

// baseExt returns the lower-case extension of name with any trailing ".gz"
// stripped first.
func baseExt(name string) string {
	name = tl(strings.TrimSuffix(name, ".gz"))
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i:]
}

// ReadFile reads a structure file, deciding the format from the extension.
// Supported are .pdb, .ent, .cif and .pqr, each optionally compressed as
// .gz. This is the reader used by the fallback estimator: it reads mmCIF
// directly, without going through the PDB conversion.
func ReadFile(name string) (*Molecule, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(tl(name), ".gz") {
		gz, err2 := gzip.NewReader(f)
		if err2 != nil {
			return nil, errDecorate(err2, "ReadFile "+name)
		}
		defer gz.Close()
		r = gz
	}
	var mol *Molecule
	switch baseExt(name) {
	case ".pdb", ".ent":
		mol, err = PDBRead(r)
	case ".cif":
		mol, err = PDBxRead(r)
	case ".pqr":
		mol, err = PQRRead(r)
	default:
		return nil, CError{fmt.Sprintf("Don't know how to read %q", name), []string{"ReadFile"}}
	}
	return mol, errDecorate(err, "ReadFile "+name)
}
