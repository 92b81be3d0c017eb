/*
 * rank.go, part of chargerank.
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

/*Package rank ranks protein structural models by their estimated absolute
net charge. Each input file goes through mmCIF-to-PDB normalization when
needed, charge assignment with pdb2pqr and electrostatics with APBS; if any
of those steps fails the file falls back to a residue-count estimate read
directly from the original input. Files are processed one at a time and
intermediate files use fixed names derived from the input, so two
concurrent runs over the same directory will clobber each other's
intermediates.*/
package rank

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rmera/chargerank/chem"
	"github.com/rmera/chargerank/pb"
)

// Method tags for a Result. Exactly one of them applies per file.
const (
	MethodAPBS         = "APBS"
	MethodResidueCount = "residue-count"
)

// A Result is the estimated net charge for one input file, in
// elementary-charge units, together with the method that produced it.
type Result struct {
	Name   string
	Charge float64
	Method string
}

// A Failure is an input file for which even the residue-count fallback
// failed, i.e. the file could not be parsed as a structure at all.
type Failure struct {
	Name string
	Err  error
}

// Options control a ranking run.
type Options struct {
	Dir          string        //directory holding the input files
	ConvertedDir string        //where PDB files converted from mmCIF go
	ForceField   string        //force field passed to pdb2pqr
	PQRCommand   string        //pdb2pqr executable
	APBSCommand  string        //apbs executable
	Timeout      time.Duration //per-invocation bound for both tools, 0 for none
	KeepFiles    bool          //keep the per-file .pqr/.in/.out intermediates
}

// DefaultOptions returns the options used by the chargerank command when no
// flags are given. Intermediate files are kept: they are the only way to
// debug a misbehaving solver run.
func DefaultOptions() *Options {
	return &Options{
		Dir:          ".",
		ConvertedDir: "converted_pdb",
		ForceField:   "PARSE",
		PQRCommand:   "pdb2pqr",
		APBSCommand:  "apbs",
		Timeout:      10 * time.Minute,
		KeepFiles:    true,
	}
}

// Discover returns the candidate input files in dir: anything ending in
// .pdb, .ent or .cif, optionally gzip-compressed, in lexicographic order.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if chem.IsPDB(e.Name()) || chem.IsCIF(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run processes every candidate file in opts.Dir and returns the sorted
// results plus the files that failed entirely. The only error returned is a
// failure to list the directory itself; per-file problems never abort the
// run.
func Run(opts *Options) ([]Result, []Failure, error) {
	files, err := Discover(opts.Dir)
	if err != nil {
		return nil, nil, err
	}
	results := make([]Result, 0, len(files))
	var failed []Failure
	for _, f := range files {
		log.Printf("Processing %s", f)
		res, err := processFile(opts, f)
		if err != nil {
			log.Printf("%s failed: %v", f, err)
			failed = append(failed, Failure{filepath.Base(f), err})
			continue
		}
		results = append(results, res)
	}
	Sort(results)
	return results, failed, nil
}

// processFile runs the solver pipeline for one file and, when any stage of
// it fails, the residue-count fallback on the original input. It only
// returns an error when the fallback also fails.
func processFile(opts *Options, path string) (Result, error) {
	name := filepath.Base(path)
	charge, err := solverCharge(opts, path)
	if err == nil {
		return Result{name, charge, MethodAPBS}, nil
	}
	log.Printf("Using residue-count estimate for %s: %v", name, err)
	mol, err2 := chem.ReadFile(path)
	if err2 != nil {
		return Result{}, err2
	}
	return Result{name, chem.NetFormalCharge(mol), MethodResidueCount}, nil
}

// solverCharge is the pdb2pqr+APBS path. Every failure demotes the file to
// the fallback estimate; the returned error says why.
func solverCharge(opts *Options, path string) (float64, error) {
	pdbpath, err := normalize(opts, path)
	if err != nil {
		return 0, err
	}
	job := filepath.Join(opts.Dir, jobName(path))
	pqrname := job + ".pqr"
	prep := pb.NewPQRHandle()
	prep.SetCommand(opts.PQRCommand)
	prep.SetForceField(opts.ForceField)
	prep.SetTimeout(opts.Timeout)
	if err := prep.Run(pdbpath, pqrname); err != nil {
		return 0, err
	}
	if !opts.KeepFiles {
		defer os.Remove(pqrname)
		defer os.Remove(job + ".in")
		defer os.Remove(job + ".out")
	}
	mol, err := chem.PQRFileRead(pqrname)
	if err != nil {
		return 0, err
	}
	solver := pb.NewAPBSHandle()
	solver.SetCommand(opts.APBSCommand)
	solver.SetName(job)
	solver.SetTimeout(opts.Timeout)
	if err := solver.BuildInput(mol.Coords[0], pqrname); err != nil {
		return 0, err
	}
	if err := solver.Run(); err != nil {
		return 0, err
	}
	return solver.Charge()
}

// normalize returns a plain-PDB path for the input: PDB files pass through
// untouched, while mmCIF and gzip-compressed inputs are read and rewritten
// as <ConvertedDir>/<base>.pdb, since the external tools read neither.
func normalize(opts *Options, path string) (string, error) {
	if chem.IsPDB(path) && !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return path, nil
	}
	mol, err := chem.ReadFile(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(opts.ConvertedDir, 0755); err != nil {
		return "", err
	}
	out := filepath.Join(opts.ConvertedDir, jobName(path)+".pdb")
	if err := chem.PDBFileWrite(out, mol.Coords, mol, mol.Bfactors); err != nil {
		return "", err
	}
	return out, nil
}

// jobName strips the directory, any .gz and the format extension from an
// input path, leaving the stem used to name the per-file intermediates.
func jobName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Sort orders results by descending absolute charge; ties break by name in
// ascending lexicographic order, so the final report is deterministic.
func Sort(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		ai, aj := math.Abs(results[i].Charge), math.Abs(results[j].Charge)
		if ai != aj {
			return ai > aj
		}
		return results[i].Name < results[j].Name
	})
}

// Report writes the ranking to w, one line per result, followed by a
// trailing section for the files that failed entirely, if any.
func Report(w io.Writer, results []Result, failed []Failure) {
	for i, r := range results {
		fmt.Fprintf(w, "%d. %s    Charge: %+.2f  (%s)\n", i+1, r.Name, r.Charge, r.Method)
	}
	if len(failed) > 0 {
		fmt.Fprintf(w, "\nFailed:\n")
		for _, f := range failed {
			fmt.Fprintf(w, "  %s: %v\n", f.Name, f.Err)
		}
	}
}

// WriteTable writes the ranking to name as a tab-separated table with a
// header row.
func WriteTable(name string, results []Result) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprint(f, "Rank\tModel\tCharge\tMethod\n")
	for i, r := range results {
		fmt.Fprintf(f, "%d\t%s\t%.2f\t%s\n", i+1, r.Name, r.Charge, r.Method)
	}
	return nil
}
