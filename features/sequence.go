package features

// DefaultBreakLength is the residue index gap inserted between consecutive
// chain copies.
const DefaultBreakLength = 200

// Sequence builds the per-residue sequence features of a complex.
//
// The residue index counts up from zero and jumps by breakLength at the start
// of every segment after the first, so that chain boundaries do not look
// covalently continuous. componentLengths must sum to len(sequence).
func Sequence(
	sequence, description string,
	componentLengths []int,
	breakLength int,
) Dict {
	n := len(sequence)

	aatype := make([][]int32, n)
	for i := 0; i < n; i++ {
		aatype[i] = make([]int32, len(AlphaResidues))
		aatype[i][residueEncoder.encode(sequence[i])] = 1
	}

	residueIndex := make([]int32, n)
	for i := range residueIndex {
		residueIndex[i] = int32(i)
	}
	start := 0
	for _, length := range exceptLast(componentLengths) {
		start += length
		for i := start; i < n; i++ {
			residueIndex[i] += int32(breakLength)
		}
	}

	return Dict{
		KeyAatype:                 aatype,
		KeyBetweenSegmentResidues: make([]int32, n),
		KeyDomainName:             [][]byte{[]byte(description)},
		KeyResidueIndex:           residueIndex,
		KeySeqLength:              broadcast(n, n),
		KeySequence:               [][]byte{[]byte(sequence)},
		KeyComponentLengths:       int32s(componentLengths),
	}
}

func exceptLast(xs []int) []int {
	if len(xs) == 0 {
		return nil
	}
	return xs[:len(xs)-1]
}
