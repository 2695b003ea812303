package msa

import (
	"fmt"
	"io"

	"github.com/TuftsBCB/io/fasta"
	"github.com/TuftsBCB/seq"
)

// ReadA3M reads an A3M alignment as written by hhblits.
//
// Upper case residues and '-' are aligned to query columns. Lower case
// residues are insertions relative to the query: they are removed from the
// row and counted as deletions on the next aligned column. '.' is ignored.
// Records without residues (like the empty ">ss_dssp" entries some hhsuite
// tools leave behind) are skipped.
func ReadA3M(r io.Reader) (Alignment, error) {
	reader := fasta.NewReader(r)
	reader.TrustSequences = true
	seqs, err := reader.ReadAll()
	if err != nil {
		return Alignment{}, err
	}

	var aln Alignment
	for _, s := range seqs {
		if s.Len() == 0 {
			continue
		}
		row, dels := a3mRow(s)
		if aln.Len() > 0 && len(row) != aln.Width() {
			return Alignment{}, fmt.Errorf("Sequence '%s' has %d aligned "+
				"columns, but the query has %d.", s.Name, len(row), aln.Width())
		}
		aln.add(row, dels)
	}
	return aln, nil
}

func a3mRow(s seq.Sequence) ([]byte, []int) {
	row := make([]byte, 0, s.Len())
	dels := make([]int, 0, s.Len())
	count := 0
	for _, r := range s.Residues {
		b := byte(r)
		switch {
		case isLower(b):
			count++
		case b == '.':
		default:
			row = append(row, b)
			dels = append(dels, count)
			count = 0
		}
	}
	return row, dels
}
