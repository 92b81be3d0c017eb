/*
 * pb.go, part of chargerank.
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
//In order to use this package you need the pdb2pqr and apbs programs,
//which must be obtained from their respective distributors. Please cite
//the PDB2PQR and APBS references if you use them.

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package pb drives the external Poisson-Boltzmann toolchain: pdb2pqr, which
assigns charges and radii to a PDB structure, and APBS, which solves the
electrostatics and reports the net charge of the system. Both are invoked as
subprocesses; every failure mode (program not installed, non-zero exit,
missing or unparsable output, timeout) is reported as a pb.Error so callers
can fall back to a simpler estimate.*/
package pb

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Message codes for pb errors.
const (
	ErrNotRunning = "Couldn't run or finish the external program"
	ErrTimedOut   = "The external program exceeded the allowed time"
	ErrNoOutput   = "The external program produced no usable output file"
	ErrNoCharge   = "No net charge found in the program's output"
	ErrCantInput  = "Can't build or write the input file"
)

// Error is the general error type for the pb package. It implements
// chem.Error.
type Error struct {
	message   string //one of the Err* constants
	program   string
	inputname string
	extra     string //any extra information
	deco      []string
	critical  bool
}

func (err Error) Error() string {
	if err.extra != "" {
		return fmt.Sprintf("%s error in %s: %s (%s)", err.program, err.inputname, err.message, err.extra)
	}
	return fmt.Sprintf("%s error in %s: %s", err.program, err.inputname, err.message)
}

// Decorate adds the caller's name to the error's decoration trail and
// returns the trail. An empty string only returns the current value.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Message returns the error's message code, one of the Err* constants.
func (err Error) Message() string { return err.message }

// Program returns the name of the external program involved.
func (err Error) Program() string { return err.program }

func (err Error) Critical() bool { return err.critical }

// searchBackwards scans filename from the end and returns the last line that
// contains str, or an empty string. Solver outputs can be large and the
// lines of interest sit near the end, hence the backwards scan.
func searchBackwards(str, filename string) string {
	f, err := os.Open(filename)
	if err != nil {
		return ""
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return ""
	}
	size := info.Size()
	end := size
	buf := make([]byte, 1)
	for i := int64(1); i <= size; i++ {
		if _, err := f.Seek(-i, io.SeekEnd); err != nil {
			return ""
		}
		if _, err := f.Read(buf); err != nil {
			return ""
		}
		if buf[0] != '\n' {
			continue
		}
		start := size - i + 1
		if start >= end {
			end = start - 1
			continue
		}
		line := make([]byte, end-start)
		if _, err := f.ReadAt(line, start); err != nil && err != io.EOF {
			return ""
		}
		if strings.Contains(string(line), str) {
			return string(line)
		}
		end = start - 1
	}
	if end <= 0 {
		return ""
	}
	line := make([]byte, end)
	if _, err := f.ReadAt(line, 0); err != nil && err != io.EOF {
		return ""
	}
	if strings.Contains(string(line), str) {
		return string(line)
	}
	return ""
}
