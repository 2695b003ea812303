package pipeline

import (
	"bytes"
	"fmt"

	"github.com/TuftsBCB/complexfeat/apps/hhsuite"
	"github.com/TuftsBCB/complexfeat/apps/hmmer"
	"github.com/TuftsBCB/complexfeat/msa"
)

// Alignment formats, also used as file extensions in the cache.
const (
	Stockholm = "sto"
	A3M       = "a3m"
	HHR       = "hhr"
)

// Source names. Every one of them is a key of msa_depth, with 0 for the
// sources that were not searched.
const (
	Uniref90    = "Uniref90"
	MGnify      = "MGnify"
	SmallBFD    = "Small BFD"
	BFDUniclust = "BFD-Uniclust"
)

var depthNames = []string{Uniref90, MGnify, SmallBFD, BFDUniclust}

// A Searcher searches a sequence database with the single sequence FASTA
// file at queryPath and returns the alignment it produced.
type Searcher interface {
	Search(queryPath string) ([]byte, error)
}

// A Source is one database searched for every chain.
type Source struct {
	// Name labels the source in the msa_depth summary.
	Name string

	// Tag and Format name the source's results in the cache.
	Tag    string
	Format string

	// MaxHits limits the number of rows used per chain. All rows are used
	// when it is not positive.
	MaxHits int

	Searcher Searcher
}

// parse reads a search result in the source's format.
func (src Source) parse(content []byte) (msa.Alignment, error) {
	switch src.Format {
	case Stockholm:
		return msa.ReadStockholm(bytes.NewReader(content))
	case A3M:
		return msa.ReadA3M(bytes.NewReader(content))
	}
	return msa.Alignment{}, fmt.Errorf("Unknown alignment format '%s'.",
		src.Format)
}

// Jackhmmer searches a FASTA database with jackhmmer.
type Jackhmmer struct {
	Conf hmmer.JackhmmerConfig
	DB   string
}

func (s Jackhmmer) Search(queryPath string) ([]byte, error) {
	return s.Conf.Run(s.DB, queryPath)
}

// HHBlits searches one or more hhsuite databases with hhblits.
type HHBlits struct {
	Conf hhsuite.HHBlitsConfig
	DBs  []hhsuite.Database
}

func (s HHBlits) Search(queryPath string) ([]byte, error) {
	return s.Conf.Run(queryPath, s.DBs...)
}
