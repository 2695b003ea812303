package msa

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/TuftsBCB/io/fasta"
	"github.com/TuftsBCB/seq"
)

// ReadStockholm reads the first alignment of a Stockholm file, as written by
// jackhmmer's -A flag.
//
// The first sequence is the query. Columns where the query has a gap are
// insertions: residues other sequences have in them are removed and counted
// as deletions on the next query column. Annotation lines are ignored.
func ReadStockholm(r io.Reader) (Alignment, error) {
	seqs, err := readStockholmSeqs(r)
	if err != nil {
		return Alignment{}, err
	}
	if len(seqs) == 0 {
		return Alignment{}, nil
	}

	query := seqs[0].Residues
	var aln Alignment
	for _, s := range seqs {
		row := make([]byte, 0, len(query))
		dels := make([]int, 0, len(query))
		count := 0
		for i, r := range s.Residues {
			b := byte(r)
			if isGap(byte(query[i])) {
				if !isGap(b) {
					count++
				}
				continue
			}
			if b == '.' {
				b = '-'
			}
			row = append(row, upper(b))
			dels = append(dels, count)
			count = 0
		}
		aln.add(row, dels)
	}
	return aln, nil
}

// StockholmToA3M converts a Stockholm alignment to A3M, keeping at most
// maxSeqs sequences (all of them when maxSeqs <= 0). Residues in columns where
// the query has a gap become lower case insertions, and gaps in those columns
// are dropped.
func StockholmToA3M(r io.Reader, w io.Writer, maxSeqs int) error {
	seqs, err := readStockholmSeqs(r)
	if err != nil {
		return err
	}
	if maxSeqs > 0 && len(seqs) > maxSeqs {
		seqs = seqs[:maxSeqs]
	}

	fw := fasta.NewWriter(w)
	fw.Columns = 0
	if len(seqs) == 0 {
		return fw.Flush()
	}
	query := seqs[0].Residues
	for _, s := range seqs {
		a3m := seq.Sequence{
			Name:     s.Name,
			Residues: make([]seq.Residue, 0, len(query)),
		}
		for i, r := range s.Residues {
			b := byte(r)
			switch {
			case !isGap(byte(query[i])):
				if b == '.' {
					b = '-'
				}
				a3m.Residues = append(a3m.Residues, seq.Residue(upper(b)))
			case !isGap(b):
				a3m.Residues = append(a3m.Residues, seq.Residue(b|0x20))
			}
		}
		if err := fw.Write(a3m); err != nil {
			return err
		}
	}
	return fw.Flush()
}

// readStockholmSeqs returns the sequences of the first alignment in r, with
// interleaved blocks concatenated by sequence name, in first-seen order.
func readStockholmSeqs(r io.Reader) ([]seq.Sequence, error) {
	var (
		seqs   []seq.Sequence
		byName = make(map[string]int)
		header = false
		lineno = 0
	)
	buf := bufio.NewReader(r)
	for {
		line, err := buf.ReadBytes('\n')
		if err == io.EOF && len(line) == 0 {
			break
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("Error reading Stockholm: %s", err)
		}
		lineno++
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		if !header {
			first := bytes.ToLower(bytes.Trim(line, " #"))
			if !bytes.HasPrefix(first, []byte("stockholm")) {
				return nil, fmt.Errorf(
					"First line does not contain 'STOCKHOLM 1.0'.")
			}
			header = true
			continue
		}
		if bytes.HasPrefix(line, []byte("//")) {
			break
		}
		if line[0] == '#' {
			continue
		}

		fields := bytes.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("Malformed Stockholm sequence line %d.",
				lineno)
		}
		name := string(fields[0])
		i, ok := byName[name]
		if !ok {
			i = len(seqs)
			byName[name] = i
			seqs = append(seqs, seq.Sequence{Name: name})
		}
		for _, b := range fields[1] {
			seqs[i].Residues = append(seqs[i].Residues, seq.Residue(b))
		}
	}
	if !header {
		return nil, fmt.Errorf("First line does not contain 'STOCKHOLM 1.0'.")
	}
	for _, s := range seqs[min(1, len(seqs)):] {
		if s.Len() != seqs[0].Len() {
			return nil, fmt.Errorf("Sequence '%s' has length %d, but other "+
				"sequences have length %d.", s.Name, s.Len(), seqs[0].Len())
		}
	}
	return seqs, nil
}
