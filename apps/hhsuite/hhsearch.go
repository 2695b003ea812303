package hhsuite

import (
	"fmt"
	"io/ioutil"
	"os"
	"runtime"

	"github.com/TuftsBCB/complexfeat/apps"
)

type HHSearchConfig struct {
	Exec   string
	CPUs   int
	MaxSeq int

	// When true, the 'hhsearch' stdout and stderr will be mapped to the
	// current processes' stderr.
	Verbose bool
}

var HHSearchDefault = HHSearchConfig{
	Exec:    "hhsearch",
	CPUs:    runtime.NumCPU(),
	MaxSeq:  1000000,
	Verbose: false,
}

// Run will execute HHsearch using the given configuration, database and query
// file path, and return the contents of the hhr file it writes. The query can
// be a path to a fasta file, A3M file or HHM file. (As per the '-i' flag for
// hhsearch.)
//
// Use github.com/TuftsBCB/io/hhr to read the hits.
func (conf HHSearchConfig) Run(db Database, query string) ([]byte, error) {
	hhrFile, err := ioutil.TempFile("", "complexfeat-hhr")
	if err != nil {
		return nil, err
	}
	defer os.Remove(hhrFile.Name())
	defer hhrFile.Close()

	args := []string{
		"-cpu", fmt.Sprintf("%d", conf.CPUs),
		"-i", query,
		"-d", db.Resolve(),
		"-o", hhrFile.Name(),
		"-maxseq", fmt.Sprintf("%d", conf.MaxSeq),
	}

	c := apps.New(conf.Exec, args...)
	c.Verbose = conf.Verbose
	if err := c.Run(); err != nil {
		return nil, err
	}
	return ioutil.ReadAll(hhrFile)
}
