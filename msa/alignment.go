/*
Package msa reads the alignments produced by homology search tools into a
flat, query-anchored representation: every row has exactly one column per
query residue, and residues the row inserts between two query columns are
recorded only as a deletion count on the following column.

A3M records are read with github.com/TuftsBCB/io/fasta. Stockholm is read
here, since search tools write it in interleaved blocks.
*/
package msa

import (
	"fmt"
	"strings"
)

// An Alignment is a set of aligned rows with per-column deletion counts.
// Deletions[i] is parallel to Rows[i].
type Alignment struct {
	Rows      []string
	Deletions [][]int
}

// Len returns the number of rows.
func (a Alignment) Len() int {
	return len(a.Rows)
}

// Width returns the number of columns, or 0 for an alignment without rows.
func (a Alignment) Width() int {
	if len(a.Rows) == 0 {
		return 0
	}
	return len(a.Rows[0])
}

// Validate checks that rows and deletion vectors are parallel and share one
// width.
func (a Alignment) Validate() error {
	if len(a.Rows) != len(a.Deletions) {
		return fmt.Errorf("Alignment has %d rows but %d deletion vectors.",
			len(a.Rows), len(a.Deletions))
	}
	w := a.Width()
	for i, row := range a.Rows {
		if len(row) != w {
			return fmt.Errorf("Row %d has width %d, but row 0 has width %d.",
				i, len(row), w)
		}
		if len(a.Deletions[i]) != w {
			return fmt.Errorf("Deletion vector %d has width %d, but row 0 "+
				"has width %d.", i, len(a.Deletions[i]), w)
		}
	}
	return nil
}

// Truncate returns the first n rows of the alignment. A non-positive n, or
// one larger than the alignment, returns the alignment unchanged.
func (a Alignment) Truncate(n int) Alignment {
	if n <= 0 || n >= len(a.Rows) {
		return a
	}
	return Alignment{
		Rows:      a.Rows[:n],
		Deletions: a.Deletions[:n],
	}
}

// Query returns the first row with gaps removed, which for alignments read
// from search output is the searched sequence itself.
func (a Alignment) Query() string {
	if len(a.Rows) == 0 {
		return ""
	}
	return strings.Replace(a.Rows[0], "-", "", -1)
}

func (a *Alignment) add(row []byte, deletions []int) {
	a.Rows = append(a.Rows, string(row))
	a.Deletions = append(a.Deletions, deletions)
}

func isGap(b byte) bool {
	return b == '-' || b == '.'
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func upper(b byte) byte {
	if isLower(b) {
		return b - ('a' - 'A')
	}
	return b
}
