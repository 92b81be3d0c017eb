/*
 * apbs.go, part of chargerank.
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
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// APBSHandle runs the APBS Poisson-Boltzmann solver on a prepared PQR
// structure. BuildInput derives the multigrid dimensions from the structure
// extent and writes <name>.in, Run executes the solver with its output
// captured in <name>.out, and Charge parses the net charge back from that
// output.
type APBSHandle struct {
	command   string
	inputname string
	timeout   time.Duration
	//physical settings
	pdie      float64 //solute (interior) dielectric
	sdie      float64 //solvent dielectric
	ionConc   float64 //concentration of the symmetric ion pair, M
	ionRadius float64 //A
	temp      float64 //K
	//grid settings
	cfac  float64 //coarse-grid lengths are cfac times the molecule lengths
	fadd  float64 //fine-grid lengths are the molecule lengths plus fadd, A
	space float64 //target fine-grid spacing, A
}

// NewAPBSHandle returns a handle with the default command and settings:
// dielectrics 2.0/78.54, a 0.150 M symmetric monovalent ion pair, 298.15 K,
// and the customary mg-auto grid factors (coarse 1.7x, fine padding 20 A,
// 0.50 A target spacing).
func NewAPBSHandle() *APBSHandle {
	run := new(APBSHandle)
	run.SetDefaults()
	return run
}

func (O *APBSHandle) SetDefaults() {
	O.command = "apbs"
	O.inputname = "chargerank"
	O.pdie = 2.0
	O.sdie = 78.54
	O.ionConc = 0.150
	O.ionRadius = 2.0
	O.temp = 298.15
	O.cfac = 1.7
	O.fadd = 20.0
	O.space = 0.50
}

// SetName sets the job name. The input and output files will be <name>.in
// and <name>.out; name may include a directory.
func (O *APBSHandle) SetName(name string) {
	O.inputname = name
}

// Command returns the command used to invoke APBS.
func (O *APBSHandle) Command() string {
	return O.command
}

// SetCommand sets the name or full path of the APBS executable.
func (O *APBSHandle) SetCommand(name string) {
	O.command = name
}

// SetTimeout bounds the wall-clock time of an APBS run. Zero means no
// limit.
func (O *APBSHandle) SetTimeout(d time.Duration) {
	O.timeout = d
}

// Legal mg-auto grid sizes, i.e. c*2^l + 1 values the multigrid solver
// accepts. The largest keeps the memory footprint of a charge-only run
// reasonable.
var dimeSizes = [...]int{33, 65, 97, 129, 161}

// gridShape derives the coarse and fine grid lengths and the grid points
// per axis from an Nx3 coordinate block.
func gridShape(coords *mat.Dense, cfac, fadd, space float64) (cglen, fglen [3]float64, dime [3]int) {
	for j := 0; j < 3; j++ {
		col := mat.Col(nil, j, coords)
		length := floats.Max(col) - floats.Min(col)
		if length < 1.0 { //degenerate extents still need a box
			length = 1.0
		}
		cglen[j] = cfac * length
		fglen[j] = length + fadd
		if fglen[j] > cglen[j] {
			cglen[j] = fglen[j]
		}
		want := int(fglen[j]/space) + 1
		dime[j] = dimeSizes[len(dimeSizes)-1]
		for _, d := range dimeSizes {
			if d >= want {
				dime[j] = d
				break
			}
		}
	}
	return cglen, fglen, dime
}

// BuildInput writes the APBS input file for a net-charge calculation on the
// given PQR file, with grid dimensions derived from the coordinates. The
// file is written as <name>.in.
func (O *APBSHandle) BuildInput(coords *mat.Dense, pqrname string) error {
	if coords == nil {
		return Error{ErrCantInput, "apbs", O.inputname, "nil coordinates", []string{"BuildInput"}, true}
	}
	cglen, fglen, dime := gridShape(coords, O.cfac, O.fadd, O.space)
	in, err := os.Create(O.inputname + ".in")
	if err != nil {
		return Error{ErrCantInput, "apbs", O.inputname, err.Error(), []string{"BuildInput"}, true}
	}
	defer in.Close()
	fmt.Fprintf(in, "read\n    mol pqr %s\nend\n", pqrname)
	fmt.Fprintf(in, "elec\n    mg-auto\n")
	fmt.Fprintf(in, "    dime %d %d %d\n", dime[0], dime[1], dime[2])
	fmt.Fprintf(in, "    cglen %.4f %.4f %.4f\n", cglen[0], cglen[1], cglen[2])
	fmt.Fprintf(in, "    fglen %.4f %.4f %.4f\n", fglen[0], fglen[1], fglen[2])
	fmt.Fprintf(in, "    cgcent mol 1\n    fgcent mol 1\n    mol 1\n")
	fmt.Fprintf(in, "    lpbe\n    bcfl sdh\n")
	fmt.Fprintf(in, "    pdie %.4f\n    sdie %.4f\n", O.pdie, O.sdie)
	fmt.Fprintf(in, "    srfm smol\n    chgm spl2\n    sdens 10.0\n    srad 1.4\n    swin 0.3\n")
	fmt.Fprintf(in, "    ion charge 1 conc %.3f radius %.1f\n", O.ionConc, O.ionRadius)
	fmt.Fprintf(in, "    ion charge -1 conc %.3f radius %.1f\n", O.ionConc, O.ionRadius)
	fmt.Fprintf(in, "    temp %.2f\n", O.temp)
	fmt.Fprintf(in, "    calcenergy total\n    calcforce no\nend\n")
	fmt.Fprintf(in, "print elecEnergy 1 end\nquit\n")
	return nil
}

// Run executes APBS on the previously built input. Standard output and
// standard error go to <name>.out, which Charge parses afterwards.
func (O *APBSHandle) Run() error {
	out, err := os.Create(O.inputname + ".out")
	if err != nil {
		return Error{ErrNotRunning, "apbs", O.inputname, err.Error(), []string{"Run"}, true}
	}
	defer out.Close()
	ctx := context.Background()
	if O.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, O.timeout)
		defer cancel()
	}
	command := exec.CommandContext(ctx, O.command, O.inputname+".in")
	command.Stdout = out
	command.Stderr = out
	err = command.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return Error{ErrTimedOut, "apbs", O.inputname, O.timeout.String(), []string{"Run"}, true}
	}
	if err != nil {
		return Error{ErrNotRunning, "apbs", O.inputname, err.Error(), []string{"Run"}, true}
	}
	return nil
}

// Charge parses the net charge, in elementary-charge units, from the output
// of a previous APBS run. APBS reports it during problem setup in a line
// like "Net charge -1.3000E+01 e"; the second-to-last field is the value,
// used as-is. Returns an Error if no such line exists, e.g. because the run
// died early.
func (O *APBSHandle) Charge() (float64, error) {
	if !usableFile(O.inputname + ".out") {
		return 0, Error{ErrNoOutput, "apbs", O.inputname, O.inputname + ".out missing or empty", []string{"Charge"}, true}
	}
	line := searchBackwards("Net charge", O.inputname+".out")
	if line == "" {
		return 0, Error{ErrNoCharge, "apbs", O.inputname, "", []string{"searchBackwards", "Charge"}, true}
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, Error{ErrNoCharge, "apbs", O.inputname, line, []string{"Charge"}, true}
	}
	charge, err := strconv.ParseFloat(fields[len(fields)-2], 64)
	if err != nil {
		return 0, Error{ErrNoCharge, "apbs", O.inputname, err.Error(), []string{"strconv.ParseFloat", "Charge"}, true}
	}
	return charge, nil
}

// usableFile reports whether name exists and is non-empty.
func usableFile(name string) bool {
	st, err := os.Stat(name)
	return err == nil && st.Size() > 0
}
