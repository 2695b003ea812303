/*
Package complex decomposes the chains of a protein complex into unique
heteromers.

A complex is read from a multi-record FASTA file. Chains with identical
sequences are collapsed into one heteromer whose multiplicity counts the
copies (the homooligomer state). The order in which heteromers were first
seen fixes the column layout of every feature built downstream, so that layout
is computed exactly once, here, and handed to the other packages as a Layout.
*/
package complex

import (
	"fmt"
	"strings"
)

// Kind classifies a heteromer as something to search for homologs or a
// linker that is carried through the features without any search.
type Kind int

const (
	Searchable Kind = iota
	Linker
)

func (k Kind) String() string {
	switch k {
	case Searchable:
		return "searchable"
	case Linker:
		return "linker"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Heteromer is one unique chain of a complex.
type Heteromer struct {
	ID           string
	Sequence     string
	Multiplicity int
	Kind         Kind
}

// Len returns the number of residues in one copy of the chain.
func (h Heteromer) Len() int {
	return len(h.Sequence)
}

// A Placement locates one heteromer in the columns of a complex.
//
// UniqueOffset is the first column of the heteromer in the concatenation of
// unique sequences. Offset is the first column of its first copy in the full
// sequence; copy q starts at Offset + q*Length.
type Placement struct {
	Heteromer    int
	Length       int
	Multiplicity int
	UniqueOffset int
	Offset       int
}

// CopyStart returns the first column of copy q in the full sequence.
func (p Placement) CopyStart(q int) int {
	return p.Offset + q*p.Length
}

// Layout is the ordered list of placements, one per heteromer, in heteromer
// order.
type Layout []Placement

// UniqueLen returns the width of the concatenation of unique sequences.
func (l Layout) UniqueLen() int {
	if len(l) == 0 {
		return 0
	}
	last := l[len(l)-1]
	return last.UniqueOffset + last.Length
}

// Len returns the width of the full sequence.
func (l Layout) Len() int {
	if len(l) == 0 {
		return 0
	}
	last := l[len(l)-1]
	return last.Offset + last.Length*last.Multiplicity
}

// A Complex is the full assembly. It is built once by Decompose and is
// read-only afterwards.
type Complex struct {
	// Name identifies the complex in the output features (domain_name).
	Name string

	// Description joins the identifiers of every input record with '+'.
	Description string

	Heteromers []Heteromer
	Layout     Layout

	// Sequence is every heteromer's sequence repeated by its multiplicity,
	// in heteromer order, with homooligomer copies adjacent.
	Sequence string
}

// Len returns the number of residues in the full sequence.
func (c Complex) Len() int {
	return len(c.Sequence)
}

// ComponentLengths returns one length per chain copy, in the order the copies
// appear in the full sequence.
func (c Complex) ComponentLengths() []int {
	lens := make([]int, 0, len(c.Heteromers))
	for _, p := range c.Layout {
		for q := 0; q < p.Multiplicity; q++ {
			lens = append(lens, p.Length)
		}
	}
	return lens
}

// UniqueSequence returns the concatenation of each heteromer's sequence,
// once per heteromer.
func (c Complex) UniqueSequence() string {
	var b strings.Builder
	for _, h := range c.Heteromers {
		b.WriteString(h.Sequence)
	}
	return b.String()
}

// Searchable returns the indices of the heteromers that should be searched.
func (c Complex) Searchable() []int {
	var idx []int
	for i, h := range c.Heteromers {
		if h.Kind == Searchable {
			idx = append(idx, i)
		}
	}
	return idx
}

func (c Complex) String() string {
	parts := make([]string, len(c.Heteromers))
	for i, h := range c.Heteromers {
		parts[i] = fmt.Sprintf("%s(x%d, %d res, %s)",
			h.ID, h.Multiplicity, h.Len(), h.Kind)
	}
	return fmt.Sprintf("%s: %s", c.Name, strings.Join(parts, " "))
}
