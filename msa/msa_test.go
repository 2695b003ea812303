package msa

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func testEqualAlign(t *testing.T, got Alignment, rows []string, dels [][]int) {
	if !reflect.DeepEqual(got.Rows, rows) {
		t.Fatalf("Rows differ.\nExpected:\n%s\nGot:\n%s",
			strings.Join(rows, "\n"), strings.Join(got.Rows, "\n"))
	}
	if !reflect.DeepEqual(got.Deletions, dels) {
		t.Fatalf("Deletions differ. Expected %v but got %v.", dels, got.Deletions)
	}
	if err := got.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestReadA3M(t *testing.T) {
	a3m := `>query
MKVLA
>hit1 some description
MK-ab.LA
>ss_dssp
>hit2
cMKVLAd
`
	aln, err := ReadA3M(strings.NewReader(a3m))
	if err != nil {
		t.Fatal(err)
	}
	testEqualAlign(t, aln,
		[]string{"MKVLA", "MK-LA", "MKVLA"},
		[][]int{{0, 0, 0, 0, 0}, {0, 0, 0, 2, 0}, {1, 0, 0, 0, 0}})
	if q := aln.Query(); q != "MKVLA" {
		t.Fatalf("Expected query 'MKVLA' but got '%s'.", q)
	}
}

func TestReadA3MWidth(t *testing.T) {
	a3m := ">query\nMKVLA\n>bad\nMKV\n"
	if _, err := ReadA3M(strings.NewReader(a3m)); err == nil {
		t.Fatal("Expected an error for a row with the wrong width.")
	}
}

const stockholm = `# STOCKHOLM 1.0

#=GF ID query-i1
#=GS hit1/1-6 DE some protein

query    MK--VL
hit1/1-6 MKaaV.
hit2     mK-.vL
#=GR hit1/1-6 PP 99..99
#=GC RF  xx..xx

query    A
hit1/1-6 -
hit2     a
//
`

func TestReadStockholm(t *testing.T) {
	aln, err := ReadStockholm(strings.NewReader(stockholm))
	if err != nil {
		t.Fatal(err)
	}
	testEqualAlign(t, aln,
		[]string{"MKVLA", "MKV--", "MKVLA"},
		[][]int{{0, 0, 0, 0, 0}, {0, 0, 2, 0, 0}, {0, 0, 0, 0, 0}})
}

func TestReadStockholmHeader(t *testing.T) {
	_, err := ReadStockholm(strings.NewReader("query MKV\n//\n"))
	if err == nil {
		t.Fatal("Expected an error for a missing STOCKHOLM header.")
	}
}

func TestReadStockholmLengths(t *testing.T) {
	sto := "# STOCKHOLM 1.0\nquery MKV\nhit MK\n//\n"
	if _, err := ReadStockholm(strings.NewReader(sto)); err == nil {
		t.Fatal("Expected an error for sequences of different lengths.")
	}
}

func TestStockholmToA3M(t *testing.T) {
	var buf bytes.Buffer
	if err := StockholmToA3M(strings.NewReader(stockholm), &buf, 0); err != nil {
		t.Fatal(err)
	}
	expected := ">query\nMKVLA\n>hit1/1-6\nMKaaV--\n>hit2\nMKVLA\n"
	if got := buf.String(); got != expected {
		t.Fatalf("Expected:\n%s\nGot:\n%s", expected, got)
	}

	// The converted alignment reads back to the same rows.
	aln, err := ReadA3M(&buf)
	if err != nil {
		t.Fatal(err)
	}
	testEqualAlign(t, aln,
		[]string{"MKVLA", "MKV--", "MKVLA"},
		[][]int{{0, 0, 0, 0, 0}, {0, 0, 2, 0, 0}, {0, 0, 0, 0, 0}})
}

func TestStockholmToA3MLimit(t *testing.T) {
	var buf bytes.Buffer
	if err := StockholmToA3M(strings.NewReader(stockholm), &buf, 2); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), ">"); n != 2 {
		t.Fatalf("Expected 2 sequences but got %d.", n)
	}
}

func TestTruncate(t *testing.T) {
	aln := Alignment{
		Rows:      []string{"AA", "AC", "AD"},
		Deletions: [][]int{{0, 0}, {0, 1}, {0, 2}},
	}
	if got := aln.Truncate(2); got.Len() != 2 || got.Rows[1] != "AC" {
		t.Fatalf("Expected 2 rows but got %v.", got.Rows)
	}
	if got := aln.Truncate(0); got.Len() != 3 {
		t.Fatalf("Expected no truncation but got %v.", got.Rows)
	}
	if got := aln.Truncate(10); got.Len() != 3 {
		t.Fatalf("Expected no truncation but got %v.", got.Rows)
	}
}
