package features

import (
	"errors"
	"fmt"

	"github.com/TuftsBCB/complexfeat/msa"
)

var (
	// ErrNoAlignments is returned when MSA features are requested without any
	// alignment source.
	ErrNoAlignments = errors.New("At least one MSA must be provided.")

	// ErrEmptyAlignment is returned when an alignment source has no rows.
	ErrEmptyAlignment = errors.New("MSA must contain at least one sequence.")
)

// MSA builds the alignment features from consolidated alignments, one per
// source, whose rows span all numRes columns of the complex.
//
// Rows are taken in source order and exact duplicates are dropped; the first
// occurrence of a row wins, along with its deletion vector.
func MSA(msas []msa.Alignment, numRes int) (Dict, error) {
	if len(msas) == 0 {
		return nil, ErrNoAlignments
	}

	var (
		intMSA    [][]int32
		deletions [][]int32
		seen      = make(map[string]bool)
	)
	for i, aln := range msas {
		if aln.Len() == 0 {
			return nil, fmt.Errorf("MSA %d: %w", i, ErrEmptyAlignment)
		}
		if err := aln.Validate(); err != nil {
			return nil, fmt.Errorf("MSA %d: %s", i, err)
		}
		if w := aln.Width(); w != numRes {
			return nil, fmt.Errorf("MSA %d has width %d, but the complex "+
				"has %d residues.", i, w, numRes)
		}
		for j, row := range aln.Rows {
			if seen[row] {
				continue
			}
			seen[row] = true

			encoded := make([]int32, len(row))
			for k := 0; k < len(row); k++ {
				encoded[k] = int32(hhblitsEncoder.encode(row[k]))
			}
			intMSA = append(intMSA, encoded)
			deletions = append(deletions, int32s(aln.Deletions[j]))
		}
	}
	return Dict{
		KeyDeletionMatrix: deletions,
		KeyMSA:            intMSA,
		KeyNumAlignments:  broadcast(len(intMSA), numRes),
	}, nil
}
