package hhsuite

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"runtime"

	"github.com/TuftsBCB/complexfeat/apps"
)

type HHBlitsConfig struct {
	Exec             string
	CPUs             int
	Iterations       int
	EValue           float64
	MaxSeq           int
	RealignMax       int
	MaxFilt          int
	MinPrefilterHits int

	// When true, the 'hhblits' command line and output will be echoed to
	// stderr.
	Verbose bool
}

var HHBlitsDefault = HHBlitsConfig{
	Exec:             "hhblits",
	CPUs:             runtime.NumCPU(),
	Iterations:       3,
	EValue:           0.001,
	MaxSeq:           1000000,
	RealignMax:       100000,
	MaxFilt:          100000,
	MinPrefilterHits: 1000,
	Verbose:          false,
}

// Run will execute HHblits using the given configuration against every
// database given, and return the resulting A3M alignment. The query can be a
// path to a fasta file, A3M file or HHM file. (As per the '-i' flag for
// hhblits.)
func (conf HHBlitsConfig) Run(query string, dbs ...Database) ([]byte, error) {
	if len(dbs) == 0 {
		return nil, fmt.Errorf("hhblits needs at least one database.")
	}
	tmpDir, err := ioutil.TempDir("", "complexfeat-hhblits")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)
	a3mPath := path.Join(tmpDir, "output.a3m")

	args := []string{
		"-i", query,
		"-cpu", fmt.Sprintf("%d", conf.CPUs),
		"-oa3m", a3mPath,
		"-o", os.DevNull,
		"-n", fmt.Sprintf("%d", conf.Iterations),
		"-e", fmt.Sprintf("%g", conf.EValue),
		"-maxseq", fmt.Sprintf("%d", conf.MaxSeq),
		"-realign_max", fmt.Sprintf("%d", conf.RealignMax),
		"-maxfilt", fmt.Sprintf("%d", conf.MaxFilt),
		"-min_prefilter_hits", fmt.Sprintf("%d", conf.MinPrefilterHits),
	}
	for _, db := range dbs {
		if db.isOldStyle() {
			return nil, fmt.Errorf("hhblits cannot search old style "+
				"database '%s'.", db)
		}
		args = append(args, "-d", db.Resolve())
	}

	c := apps.New(conf.Exec, args...)
	c.Verbose = conf.Verbose
	if err := c.Run(); err != nil {
		return nil, err
	}
	return ioutil.ReadFile(a3mPath)
}
