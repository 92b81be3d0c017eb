/*
 * pdb2pqr_test.go, part of chargerank.
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
	"os/exec"
	"path/filepath"
	"testing"
)

func TestPQRHandleMissing(Te *testing.T) {
	dir := Te.TempDir()
	h := NewPQRHandle()
	if h.Command() != "pdb2pqr" {
		Te.Errorf("Default command is %q", h.Command())
	}
	h.SetCommand(filepath.Join(dir, "no-such-pdb2pqr"))
	err := h.Run(filepath.Join(dir, "in.pdb"), filepath.Join(dir, "out.pqr"))
	perr, ok := err.(Error)
	if !ok || perr.Message() != ErrNotRunning {
		Te.Errorf("Expected an ErrNotRunning Error, got %v", err)
	}
}

func TestPQRHandleNoOutput(Te *testing.T) {
	//a command that exits cleanly without writing the PQR must still fail
	if _, err := exec.LookPath("true"); err != nil {
		Te.Skip("no 'true' in PATH")
	}
	dir := Te.TempDir()
	h := NewPQRHandle()
	h.SetCommand("true")
	err := h.Run(filepath.Join(dir, "in.pdb"), filepath.Join(dir, "out.pqr"))
	perr, ok := err.(Error)
	if !ok || perr.Message() != ErrNoOutput {
		Te.Errorf("Expected an ErrNoOutput Error, got %v", err)
	}
}
