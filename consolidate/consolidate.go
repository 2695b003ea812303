/*
Package consolidate turns alignments searched independently per heteromer
into alignments that span every column of a complex.

Consolidation happens in two steps. Pad places each heteromer's rows into the
columns of the unique-sequence concatenation, adding a header row when the
complex has more than one heteromer. Expand then replicates every row once per
homooligomer copy of the heteromer that produced it, giving rows as wide as
the full complex sequence. Duplicate rows are left for the feature builder to
remove.

Both steps take their column arithmetic from the complex's Layout.
*/
package consolidate

import (
	"fmt"
	"strings"

	"github.com/TuftsBCB/complexfeat/complex"
	"github.com/TuftsBCB/complexfeat/msa"
)

// Header is the origin of a header row, which spans every heteromer.
const Header = -1

// A Row is one padded alignment row in unique-sequence coordinates.
type Row struct {
	// Origin is the index of the heteromer whose search produced the row, or
	// Header.
	Origin int

	Residues  string
	Deletions []int
}

// A Chain holds the alignments of one searched heteromer, one per source, in
// source order.
type Chain struct {
	Heteromer int
	Sources   []msa.Alignment
}

// Pad builds one padded row set per source from the alignments of the
// searched chains.
//
// When the complex has a single heteromer its rows are used as they are.
// Otherwise every source starts with a header row holding the unique
// sequence and no deletions, followed by each chain's rows in chain order,
// with gaps and zero deletions in the columns of every other heteromer.
//
// Every chain must carry the same number of sources, and every alignment must
// be exactly as wide as its heteromer. An empty chain list returns no row
// sets.
func Pad(c complex.Complex, chains []Chain) ([][]Row, error) {
	if len(chains) == 0 {
		return nil, nil
	}
	nsources := len(chains[0].Sources)
	for _, ch := range chains {
		if ch.Heteromer < 0 || ch.Heteromer >= len(c.Layout) {
			return nil, fmt.Errorf("Chain refers to heteromer %d, but the "+
				"complex has %d heteromers.", ch.Heteromer, len(c.Layout))
		}
		id := c.Heteromers[ch.Heteromer].ID
		if len(ch.Sources) != nsources {
			return nil, fmt.Errorf("Chain %s has %d alignment sources, but "+
				"chain %s has %d.", id, len(ch.Sources),
				c.Heteromers[chains[0].Heteromer].ID, nsources)
		}
		length := c.Layout[ch.Heteromer].Length
		for i, aln := range ch.Sources {
			if err := aln.Validate(); err != nil {
				return nil, fmt.Errorf("Source %d of chain %s: %s", i, id, err)
			}
			if aln.Len() > 0 && aln.Width() != length {
				return nil, fmt.Errorf("Source %d of chain %s has width %d, "+
					"but the chain has %d residues.", i, id, aln.Width(), length)
			}
		}
	}

	single := len(c.Heteromers) == 1
	width := c.Layout.UniqueLen()
	padded := make([][]Row, nsources)
	for s := range padded {
		var rows []Row
		if !single {
			rows = append(rows, Row{
				Origin:    Header,
				Residues:  c.UniqueSequence(),
				Deletions: make([]int, width),
			})
		}
		for _, ch := range chains {
			p := c.Layout[ch.Heteromer]
			aln := ch.Sources[s]
			for i, residues := range aln.Rows {
				if single {
					rows = append(rows, Row{
						Origin:    ch.Heteromer,
						Residues:  residues,
						Deletions: aln.Deletions[i],
					})
					continue
				}
				rows = append(rows, Row{
					Origin:    ch.Heteromer,
					Residues:  place(residues, width, p.UniqueOffset),
					Deletions: placeInts(aln.Deletions[i], width, p.UniqueOffset),
				})
			}
		}
		padded[s] = rows
	}
	return padded, nil
}

// Expand turns padded row sets into alignments over the full complex
// sequence, one per source.
//
// A header row becomes the full sequence. A row from a heteromer with
// multiplicity m becomes m rows, the q-th carrying the heteromer's segment in
// the columns of copy q and gaps everywhere else. The copies of a row are
// adjacent and rows keep their order. When every multiplicity is 1 the
// alignments hold exactly the padded rows.
func Expand(c complex.Complex, padded [][]Row) []msa.Alignment {
	width := c.Layout.Len()
	alns := make([]msa.Alignment, len(padded))
	for s, rows := range padded {
		var aln msa.Alignment
		for _, row := range rows {
			if row.Origin == Header {
				aln.Rows = append(aln.Rows, c.Sequence)
				aln.Deletions = append(aln.Deletions, make([]int, width))
				continue
			}
			p := c.Layout[row.Origin]
			end := p.UniqueOffset + p.Length
			residues := row.Residues[p.UniqueOffset:end]
			dels := row.Deletions[p.UniqueOffset:end]
			for q := 0; q < p.Multiplicity; q++ {
				start := p.CopyStart(q)
				aln.Rows = append(aln.Rows, place(residues, width, start))
				aln.Deletions = append(aln.Deletions,
					placeInts(dels, width, start))
			}
		}
		alns[s] = aln
	}
	return alns
}

// place returns a gap-filled row of the given width with segment starting at
// column at.
func place(segment string, width, at int) string {
	var b strings.Builder
	b.Grow(width)
	b.WriteString(strings.Repeat("-", at))
	b.WriteString(segment)
	b.WriteString(strings.Repeat("-", width-at-len(segment)))
	return b.String()
}

func placeInts(segment []int, width, at int) []int {
	xs := make([]int, width)
	copy(xs[at:], segment)
	return xs
}
