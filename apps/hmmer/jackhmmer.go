/*
Package hmmer provides a wrapper for running jackhmmer from HMMER 3 against a
sequence database.

Unlike hhsuite databases, HMMER databases are plain FASTA files and are passed
as file paths.
*/
package hmmer

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"runtime"

	"github.com/TuftsBCB/complexfeat/apps"
)

type JackhmmerConfig struct {
	Exec       string
	CPUs       int
	Iterations int
	EValue     float64
	IncE       float64

	// Filter thresholds for the MSV, Viterbi and Forward stages.
	F1, F2, F3 float64

	// When true, the 'jackhmmer' command line and output will be echoed to
	// stderr.
	Verbose bool
}

var JackhmmerDefault = JackhmmerConfig{
	Exec:       "jackhmmer",
	CPUs:       runtime.NumCPU(),
	Iterations: 1,
	EValue:     0.0001,
	IncE:       0.0001,
	F1:         0.0005,
	F2:         0.00005,
	F3:         0.0000005,
	Verbose:    false,
}

// Run will execute jackhmmer with a single sequence FASTA query against the
// database at the given path, and return the Stockholm alignment of the hits.
func (conf JackhmmerConfig) Run(db, query string) ([]byte, error) {
	if _, err := os.Stat(db); err != nil {
		return nil, fmt.Errorf("Could not find jackhmmer database: %s", err)
	}
	tmpDir, err := ioutil.TempDir("", "complexfeat-jackhmmer")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)
	stoPath := path.Join(tmpDir, "output.sto")

	args := []string{
		"-o", os.DevNull,
		"-A", stoPath,
		"--noali",
		"--F1", fmt.Sprintf("%g", conf.F1),
		"--F2", fmt.Sprintf("%g", conf.F2),
		"--F3", fmt.Sprintf("%g", conf.F3),
		"--incE", fmt.Sprintf("%g", conf.IncE),
		"-E", fmt.Sprintf("%g", conf.EValue),
		"--cpu", fmt.Sprintf("%d", conf.CPUs),
		"-N", fmt.Sprintf("%d", conf.Iterations),
		query, db,
	}

	c := apps.New(conf.Exec, args...)
	c.Verbose = conf.Verbose
	if err := c.Run(); err != nil {
		return nil, err
	}
	return ioutil.ReadFile(stoPath)
}
