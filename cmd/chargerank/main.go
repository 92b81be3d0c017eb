/*
 * main.go, part of chargerank.
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

//chargerank ranks the protein structural models found in a directory by
//their estimated absolute net charge, using pdb2pqr and APBS when they are
//available and a residue-count estimate otherwise.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rmera/chargerank/chart"
	"github.com/rmera/chargerank/rank"
)

func main() {
	dir := flag.String("dir", ".", "directory holding the .pdb/.cif input files")
	ff := flag.String("ff", "PARSE", "force field passed to pdb2pqr")
	pqrcmd := flag.String("pdb2pqr", "pdb2pqr", "name or path of the pdb2pqr executable")
	apbscmd := flag.String("apbs", "apbs", "name or path of the apbs executable")
	timeout := flag.Duration("timeout", 10*time.Minute, "wall-clock bound per external tool invocation, 0 for none")
	keep := flag.Bool("keep", true, "keep the per-file .pqr/.in/.out intermediate files")
	table := flag.String("table", "surface_charge_ranking.txt", "file for the tab-separated ranking, empty to disable")
	plotname := flag.String("plot", "", "write a bar chart of the ranking as <name>.png")
	toolpath := flag.String("path", "", "extra directory prepended to PATH, where pdb2pqr and apbs live")
	flag.Parse()
	if *toolpath != "" {
		os.Setenv("PATH", *toolpath+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
	opts := rank.DefaultOptions()
	opts.Dir = *dir
	opts.ForceField = *ff
	opts.PQRCommand = *pqrcmd
	opts.APBSCommand = *apbscmd
	opts.Timeout = *timeout
	opts.KeepFiles = *keep
	results, failed, err := rank.Run(opts)
	if err != nil {
		log.Fatalf("chargerank: %v", err)
	}
	if len(results) == 0 && len(failed) == 0 {
		fmt.Fprintf(os.Stderr, "No .cif or .pdb files found in %s\n", *dir)
		os.Exit(2)
	}
	rank.Report(os.Stdout, results, failed)
	if *table != "" && len(results) > 0 {
		if err := rank.WriteTable(*table, results); err != nil {
			log.Printf("Couldn't write %s: %v", *table, err)
		}
	}
	if *plotname != "" && len(results) > 0 {
		if err := chart.Bar(results, "Models by net charge", *plotname); err != nil {
			log.Printf("Couldn't plot %s.png: %v", *plotname, err)
		}
	}
	if len(failed) > 0 {
		os.Exit(1)
	}
}
