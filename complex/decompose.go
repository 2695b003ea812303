package complex

import (
	"fmt"
	"io"
	"strings"

	"github.com/TuftsBCB/io/fasta"
	"github.com/TuftsBCB/seq"
)

// DefaultLinkers are the identifiers treated as linkers when no other list is
// configured.
var DefaultLinkers = []string{"Peptide"}

// Options controls how records are classified during decomposition.
type Options struct {
	// Linkers lists the chain identifiers that are never searched.
	Linkers []string
}

// ReadFasta reads every record of a multi-record FASTA file. Residues are
// validated and upper cased. An input without any records, or a record
// without residues, is an error.
func ReadFasta(r io.Reader) ([]seq.Sequence, error) {
	seqs, err := fasta.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Could not read FASTA input: %s", err)
	}
	if len(seqs) == 0 {
		return nil, fmt.Errorf("No sequences found in FASTA input.")
	}
	for _, s := range seqs {
		if s.Len() == 0 {
			return nil, fmt.Errorf("Sequence '%s' has no residues.", s.Name)
		}
	}
	return seqs, nil
}

// chainID returns the first whitespace delimited token of a record name.
func chainID(name string, i int) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return fmt.Sprintf("chain%d", i+1)
	}
	return fields[0]
}

// fileSafe replaces path separators, since identifiers name the query and
// cache files of a chain.
func fileSafe(id string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, id)
}

// Decompose builds a Complex from FASTA records.
//
// Records with a sequence identical to an earlier record only increase the
// earlier heteromer's multiplicity; their names are dropped. Distinct
// sequences that share an identifier get the first numeric suffix ("_2",
// "_3", ...) that no other chain uses, so identifiers stay unique within the
// complex. Path separators in identifiers are replaced with '_'.
func Decompose(name string, records []seq.Sequence, opts Options) Complex {
	linkers := opts.Linkers
	if linkers == nil {
		linkers = DefaultLinkers
	}
	isLinker := make(map[string]bool, len(linkers))
	for _, l := range linkers {
		isLinker[l] = true
	}

	// First pass: group by sequence, keeping first-seen order.
	type group struct {
		id, sequence string
		count        int
	}
	var groups []*group
	bySeq := make(map[string]*group)
	ids := make([]string, len(records))
	for i, r := range records {
		id := chainID(r.Name, i)
		ids[i] = id
		s := string(r.Bytes())
		if g, ok := bySeq[s]; ok {
			g.count++
			continue
		}
		g := &group{id: id, sequence: s, count: 1}
		bySeq[s] = g
		groups = append(groups, g)
	}

	// Second pass: materialize heteromers and the layout.
	c := Complex{
		Name:        name,
		Description: strings.Join(ids, "+"),
		Heteromers:  make([]Heteromer, len(groups)),
		Layout:      make(Layout, len(groups)),
	}
	reserved := make(map[string]bool, len(groups))
	for _, g := range groups {
		reserved[fileSafe(g.id)] = true
	}
	assigned := make(map[string]bool, len(groups))
	var full strings.Builder
	uniqueOff, off := 0, 0
	for i, g := range groups {
		base := fileSafe(g.id)
		id := base
		for n := 2; assigned[id]; n++ {
			id = fmt.Sprintf("%s_%d", base, n)
			if reserved[id] {
				id = base
			}
		}
		assigned[id] = true

		kind := Searchable
		if isLinker[g.id] {
			kind = Linker
		}
		c.Heteromers[i] = Heteromer{
			ID:           id,
			Sequence:     g.sequence,
			Multiplicity: g.count,
			Kind:         kind,
		}
		c.Layout[i] = Placement{
			Heteromer:    i,
			Length:       len(g.sequence),
			Multiplicity: g.count,
			UniqueOffset: uniqueOff,
			Offset:       off,
		}
		for q := 0; q < g.count; q++ {
			full.WriteString(g.sequence)
		}
		uniqueOff += len(g.sequence)
		off += len(g.sequence) * g.count
	}
	c.Sequence = full.String()
	return c
}
