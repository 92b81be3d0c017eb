/*
 * pdb2pqr.go, part of chargerank.
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
	"context"
	"io"
	"os/exec"
	"time"
)

// PQRHandle prepares PDB structures for electrostatics by running pdb2pqr,
// which picks protonation states and assigns per-atom charges and radii
// from a force field.
type PQRHandle struct {
	command    string
	forcefield string
	timeout    time.Duration
}

// NewPQRHandle returns a handle with the default command and force field.
func NewPQRHandle() *PQRHandle {
	run := new(PQRHandle)
	run.SetDefaults()
	return run
}

// SetDefaults sets the command to plain "pdb2pqr", to be found in PATH, and
// the force field to PARSE, the usual choice for Poisson-Boltzmann runs.
func (O *PQRHandle) SetDefaults() {
	O.command = "pdb2pqr"
	O.forcefield = "PARSE"
}

// Command returns the command used to invoke pdb2pqr.
func (O *PQRHandle) Command() string {
	return O.command
}

// SetCommand sets the name or full path of the pdb2pqr executable.
func (O *PQRHandle) SetCommand(name string) {
	O.command = name
}

// SetForceField sets the force field passed to pdb2pqr (PARSE, AMBER,
// CHARMM...). No validation is done here; pdb2pqr itself will complain.
func (O *PQRHandle) SetForceField(ff string) {
	O.forcefield = ff
}

// SetTimeout bounds the wall-clock time of a pdb2pqr run. Zero means no
// limit.
func (O *PQRHandle) SetTimeout(d time.Duration) {
	O.timeout = d
}

// Run invokes pdb2pqr on pdbname, writing the charge/radius-annotated
// structure to pqrname. It demands a zero exit status and an existing,
// non-empty output file; anything else is an Error. pdb2pqr's own chatter
// is discarded.
func (O *PQRHandle) Run(pdbname, pqrname string) error {
	ctx := context.Background()
	if O.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, O.timeout)
		defer cancel()
	}
	command := exec.CommandContext(ctx, O.command, pdbname, pqrname, "--ff="+O.forcefield)
	command.Stdout = io.Discard
	command.Stderr = io.Discard
	err := command.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return Error{ErrTimedOut, "pdb2pqr", pdbname, O.timeout.String(), []string{"Run"}, true}
	}
	if err != nil {
		return Error{ErrNotRunning, "pdb2pqr", pdbname, err.Error(), []string{"Run"}, true}
	}
	if !usableFile(pqrname) {
		return Error{ErrNoOutput, "pdb2pqr", pdbname, pqrname + " missing or empty", []string{"Run"}, true}
	}
	return nil
}
