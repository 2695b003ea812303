package features

import (
	"github.com/TuftsBCB/seq"
)

// AlphaResidues is the residue-identity alphabet used for the one-hot aatype
// feature. The last residue, 'X', is the class for anything unknown.
var AlphaResidues = seq.NewAlphabet(
	'A', 'R', 'N', 'D', 'C', 'Q', 'E', 'G', 'H', 'I',
	'L', 'K', 'M', 'F', 'P', 'S', 'T', 'W', 'Y', 'V', 'X',
)

// AlphaHHblits is the alphabet used to encode MSA rows, in HHblits order.
// The last two residues are the unknown class and the gap.
var AlphaHHblits = seq.NewAlphabet(
	'A', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'K', 'L',
	'M', 'N', 'P', 'Q', 'R', 'S', 'T', 'V', 'W', 'Y', 'X', '-',
)

// Ambiguity codes that HHblits folds into a standard residue.
var hhblitsAliases = map[seq.Residue]seq.Residue{
	'B': 'D',
	'Z': 'E',
	'U': 'C',
	'J': 'X',
	'O': 'X',
}

// An encoder maps ASCII residues to alphabet indices in constant time.
// Residues outside the alphabet map to unknown.
type encoder struct {
	index   [256]int
	known   [256]bool
	unknown int
}

func newEncoder(alpha seq.Alphabet, unknown seq.Residue) *encoder {
	e := &encoder{index: alpha.Index()}
	for _, r := range alpha {
		e.known[r] = true
	}
	e.unknown = e.index[unknown]
	return e
}

func (e *encoder) alias(from, to seq.Residue) {
	e.index[from] = e.index[to]
	e.known[from] = true
}

func (e *encoder) encode(r byte) int {
	if !e.known[r] {
		return e.unknown
	}
	return e.index[r]
}

var (
	residueEncoder = newEncoder(AlphaResidues, 'X')
	hhblitsEncoder = newHHblitsEncoder()
)

func newHHblitsEncoder() *encoder {
	e := newEncoder(AlphaHHblits, 'X')
	for from, to := range hhblitsAliases {
		e.alias(from, to)
	}
	return e
}

// GapID is the HHblits index of the gap residue.
func GapID() int {
	return hhblitsEncoder.encode('-')
}
