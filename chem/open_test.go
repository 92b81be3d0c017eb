/*
 * open_test.go, part of chargerank.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestExtensions(Te *testing.T) {
	for _, name := range []string{"a.pdb", "A.PDB", "dir/b.ent", "c.pdb.gz"} {
		if !IsPDB(name) {
			Te.Errorf("IsPDB(%q) = false", name)
		}
		if IsCIF(name) {
			Te.Errorf("IsCIF(%q) = true", name)
		}
	}
	for _, name := range []string{"a.cif", "b.cif.gz", "dir/C.CIF"} {
		if !IsCIF(name) {
			Te.Errorf("IsCIF(%q) = false", name)
		}
		if IsPDB(name) {
			Te.Errorf("IsPDB(%q) = true", name)
		}
	}
	for _, name := range []string{"a.xtc", "b", "c.gz"} {
		if IsPDB(name) || IsCIF(name) {
			Te.Errorf("%q shouldn't look like a structure file", name)
		}
	}
}

func gzipFile(Te *testing.T, src, dst string) {
	data, err := os.ReadFile(src)
	if err != nil {
		Te.Fatal(err)
	}
	f, err := os.Create(dst)
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	gz := gzip.NewWriter(f)
	if _, err := gz.Write(data); err != nil {
		Te.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		Te.Fatal(err)
	}
}

func TestReadFile(Te *testing.T) {
	mol, err := ReadFile("test/model1.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 7 {
		Te.Errorf("Expected 7 atoms, got %d", mol.Len())
	}
	mol, err = ReadFile("test/model2.cif")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 4 {
		Te.Errorf("Expected 4 atoms, got %d", mol.Len())
	}
	xyz := filepath.Join(Te.TempDir(), "model1.xyz")
	if err := os.WriteFile(xyz, []byte("2\n\nC 0 0 0\nO 1 0 0\n"), 0644); err != nil {
		Te.Fatal(err)
	}
	if _, err := ReadFile(xyz); err == nil {
		Te.Error("Expected an error for an unsupported extension")
	}
}

func TestReadFileGzip(Te *testing.T) {
	dir := Te.TempDir()
	pdbgz := filepath.Join(dir, "model1.pdb.gz")
	gzipFile(Te, "test/model1.pdb", pdbgz)
	mol, err := ReadFile(pdbgz)
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 7 {
		Te.Errorf("Expected 7 atoms from the gzipped PDB, got %d", mol.Len())
	}
	cifgz := filepath.Join(dir, "model2.cif.gz")
	gzipFile(Te, "test/model2.cif", cifgz)
	mol, err = ReadFile(cifgz)
	if err != nil {
		Te.Fatal(err)
	}
	if mol.NFrames() != 2 {
		Te.Errorf("Expected 2 models from the gzipped mmCIF, got %d", mol.NFrames())
	}
}
