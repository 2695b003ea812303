/*
Package features builds the numeric feature dictionary consumed by a
structure prediction model from a decomposed complex and its consolidated
alignments.

Values in a Dict are always one of []int32, [][]int32, []float32, [][]byte or
map[string]int, so that a Dict can be gob encoded without further
registration by callers.
*/
package features

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Feature keys.
const (
	KeyAatype                 = "aatype"
	KeyBetweenSegmentResidues = "between_segment_residues"
	KeyDomainName             = "domain_name"
	KeyResidueIndex           = "residue_index"
	KeySeqLength              = "seq_length"
	KeySequence               = "sequence"
	KeyComponentLengths       = "component_lengths"
	KeyDeletionMatrix         = "deletion_matrix_int"
	KeyMSA                    = "msa"
	KeyNumAlignments          = "num_alignments"
	KeyMSADepth               = "msa_depth"
)

// DepthTotal is the msa_depth entry holding the deduplicated row count.
const DepthTotal = "Total unique"

// A Dict maps feature names to arrays.
type Dict map[string]interface{}

func init() {
	gob.Register([]int32{})
	gob.Register([][]int32{})
	gob.Register([]float32{})
	gob.Register([][]byte{})
	gob.Register(map[string]int{})
}

// Merge copies every key of each of the given dicts into d. Later dicts win
// on key collisions.
func (d Dict) Merge(others ...Dict) Dict {
	for _, o := range others {
		for k, v := range o {
			d[k] = v
		}
	}
	return d
}

// Keys returns the keys of d in sorted order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Ints returns the []int32 stored under key.
func (d Dict) Ints(key string) ([]int32, error) {
	v, ok := d[key].([]int32)
	if !ok {
		return nil, fmt.Errorf("Feature '%s' is not a []int32 (%T).", key, d[key])
	}
	return v, nil
}

// Matrix returns the [][]int32 stored under key.
func (d Dict) Matrix(key string) ([][]int32, error) {
	v, ok := d[key].([][]int32)
	if !ok {
		return nil, fmt.Errorf("Feature '%s' is not a [][]int32 (%T).", key, d[key])
	}
	return v, nil
}

// Depth returns the msa_depth summary, if present.
func (d Dict) Depth() map[string]int {
	v, _ := d[KeyMSADepth].(map[string]int)
	return v
}

// Write gob encodes d to w.
func Write(w io.Writer, d Dict) error {
	return gob.NewEncoder(w).Encode(d)
}

// Read decodes a Dict written by Write.
func Read(r io.Reader) (Dict, error) {
	var d Dict
	if err := gob.NewDecoder(r).Decode(&d); err != nil {
		return nil, err
	}
	return d, nil
}

// WriteDepth writes the msa_depth summary of d as indented JSON.
func WriteDepth(w io.Writer, d Dict) error {
	bs, err := json.MarshalIndent(d.Depth(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", bs)
	return err
}

func broadcast(v, n int) []int32 {
	xs := make([]int32, n)
	for i := range xs {
		xs[i] = int32(v)
	}
	return xs
}

func int32s(xs []int) []int32 {
	ys := make([]int32, len(xs))
	for i, x := range xs {
		ys[i] = int32(x)
	}
	return ys
}
