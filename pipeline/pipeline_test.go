package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"path"
	"reflect"
	"strings"
	"testing"

	"github.com/TuftsBCB/seq"

	"github.com/TuftsBCB/complexfeat/complex"
	"github.com/TuftsBCB/complexfeat/config"
	"github.com/TuftsBCB/complexfeat/features"
	"github.com/TuftsBCB/complexfeat/library"
	"github.com/TuftsBCB/complexfeat/template"
)

// fakeSearcher answers every query with the query itself and one homolog
// whose first residue is replaced by mutate.
type fakeSearcher struct {
	format  string
	mutate  byte
	queries []string
	err     error
}

func (s *fakeSearcher) Search(queryPath string) ([]byte, error) {
	content, err := ioutil.ReadFile(queryPath)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	name, residues := strings.TrimPrefix(lines[0], ">"), lines[1]
	s.queries = append(s.queries, name)
	if s.err != nil {
		return nil, s.err
	}
	return alignment(s.format, residues, string(s.mutate)+residues[1:]), nil
}

func alignment(format, query, hit string) []byte {
	if format == A3M {
		return []byte(fmt.Sprintf(">query\n%s\n>hit\n%s\n", query, hit))
	}
	return []byte(fmt.Sprintf(
		"# STOCKHOLM 1.0\n\nquery %s\nhit   %s\n//\n", query, hit))
}

type fakeTemplates struct {
	queries []string
}

func (s *fakeTemplates) Search(a3mPath string) ([]byte, error) {
	s.queries = append(s.queries, a3mPath)
	return []byte(hhrOutput), nil
}

const hhrOutput = `Query         query
Match_columns 4
No_of_seqs    2 out of 2
Neff          1.0
Searched_HMMs 100
Date          Wed Nov 14 18:04:50 2012
Command       hhsearch

 No Hit                             Prob E-value P-value  Score    SS Cols Query HMM  Template HMM
  1 1p4xA                           81.6   0.026 1.1E-05   42.1   0.0    4    1-4      32-35  (250)

`

func newComplex(namesAndSeqs ...string) complex.Complex {
	var records []seq.Sequence
	for i := 0; i+1 < len(namesAndSeqs); i += 2 {
		records = append(records,
			seq.NewSequenceString(namesAndSeqs[i], namesAndSeqs[i+1]))
	}
	return complex.Decompose("test", records, complex.Options{})
}

func newPipeline(t *testing.T, sources ...Source) (*Pipeline, *library.Memory) {
	cache := library.NewMemory()
	return &Pipeline{
		Sources:         sources,
		UnirefMaxHits:   10000,
		TemplateMaxHits: template.DefaultMaxHits,
		BreakLength:     features.DefaultBreakLength,
		Cache:           cache,
		Scratch:         t.TempDir(),
	}, cache
}

func TestProcess(t *testing.T) {
	uniref := &fakeSearcher{format: Stockholm, mutate: 'A'}
	mgnify := &fakeSearcher{format: Stockholm, mutate: 'A'}
	p, cache := newPipeline(t,
		Source{Uniref90, "uniref90", Stockholm, 0, uniref},
		Source{MGnify, "mgnify", Stockholm, 501, mgnify},
	)
	c := newComplex("A", "MKVL", "B", "GSTW", "A2", "MKVL")

	d, err := p.Process(c)
	if err != nil {
		t.Fatal(err)
	}

	rows, err := d.Matrix(features.KeyMSA)
	if err != nil {
		t.Fatal(err)
	}
	// header, 2x2 rows for the dimer, 2 rows for B; MGnify adds nothing new.
	if len(rows) != 7 {
		t.Fatalf("Expected 7 unique rows but got %d.", len(rows))
	}
	for i, row := range rows {
		if len(row) != 12 {
			t.Fatalf("Row %d has width %d, expected 12.", i, len(row))
		}
	}

	depth := d.Depth()
	expected := map[string]int{
		Uniref90: 4, MGnify: 4, SmallBFD: 0, BFDUniclust: 0,
		features.DepthTotal: 7,
	}
	if !reflect.DeepEqual(depth, expected) {
		t.Fatalf("Expected depth %v but got %v.", expected, depth)
	}
	num, _ := d.Ints(features.KeyNumAlignments)
	if int(num[0]) != depth[features.DepthTotal] {
		t.Fatalf("Total unique %d differs from num_alignments %d.",
			depth[features.DepthTotal], num[0])
	}

	idx, _ := d.Ints(features.KeyResidueIndex)
	if idx[4] != 204 || idx[8] != 408 {
		t.Fatalf("Unexpected residue index %v.", idx)
	}
	if !reflect.DeepEqual(uniref.queries, []string{"A", "B"}) {
		t.Fatalf("Unexpected queries %v.", uniref.queries)
	}
	if cache.Stores != 4 {
		t.Fatalf("Expected 4 stored results but got %d.", cache.Stores)
	}
	if _, ok := d[template.KeyDomainNames]; !ok {
		t.Fatal("Expected (empty) template features.")
	}
}

// manyHits answers every query with the query and one homolog per residue
// in firsts, each with its first residue replaced.
type manyHits struct {
	firsts string
}

func (s manyHits) Search(queryPath string) ([]byte, error) {
	content, err := ioutil.ReadFile(queryPath)
	if err != nil {
		return nil, err
	}
	query := strings.Split(strings.TrimSpace(string(content)), "\n")[1]
	var sto bytes.Buffer
	fmt.Fprintf(&sto, "# STOCKHOLM 1.0\n\nquery %s\n", query)
	for i := 0; i < len(s.firsts); i++ {
		fmt.Fprintf(&sto, "hit%d  %c%s\n", i, s.firsts[i], query[1:])
	}
	sto.WriteString("//\n")
	return sto.Bytes(), nil
}

func TestProcessMaxHits(t *testing.T) {
	uniref := &fakeSearcher{format: Stockholm, mutate: 'A'}
	p, cache := newPipeline(t,
		Source{Uniref90, "uniref90", Stockholm, 0, uniref},
		Source{MGnify, "mgnify", Stockholm, 3, manyHits{"CDEFG"}},
	)
	d, err := p.Process(newComplex("A", "MKVL"))
	if err != nil {
		t.Fatal(err)
	}

	depth := d.Depth()
	if depth[MGnify] != 3 || depth[Uniref90] != 2 {
		t.Fatalf("Expected 3 MGnify and 2 Uniref90 rows, got %v.", depth)
	}
	// MKVL, AKVL from Uniref90; CKVL, DKVL survive the MGnify limit.
	rows, _ := d.Matrix(features.KeyMSA)
	if len(rows) != 4 || depth[features.DepthTotal] != 4 {
		t.Fatalf("Expected 4 unique rows, got %d (depth %v).", len(rows), depth)
	}

	// The full result is kept in the cache; only the features are limited.
	key := fingerprintKey(complex.Heteromer{ID: "A", Sequence: "MKVL"},
		"mgnify", Stockholm)
	raw, ok, err := cache.Lookup(key)
	if err != nil || !ok {
		t.Fatalf("Expected the MGnify result to be stored (%v).", err)
	}
	if n := bytes.Count(raw, []byte("hit")); n != 5 {
		t.Fatalf("Expected 5 stored hits but got %d.", n)
	}
}

func TestProcessPathID(t *testing.T) {
	uniref := &fakeSearcher{format: Stockholm, mutate: 'A'}
	p, _ := newPipeline(t,
		Source{Uniref90, "uniref90", Stockholm, 0, uniref})
	if _, err := p.Process(newComplex("sp|P1|X/1", "MKVL")); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(uniref.queries, []string{"sp|P1|X_1"}) {
		t.Fatalf("Unexpected queries %v.", uniref.queries)
	}
	if _, err := ioutil.ReadFile(path.Join(p.Scratch, "sp|P1|X_1.fa")); err != nil {
		t.Fatalf("Expected the query in the scratch directory: %s", err)
	}
}

func TestProcessCacheHit(t *testing.T) {
	uniref := &fakeSearcher{format: Stockholm, mutate: 'A'}
	p, cache := newPipeline(t,
		Source{"Uniref90", "uniref90", Stockholm, 0, uniref})
	c := newComplex("A", "MKVL", "B", "GSTW")

	key := fingerprintKey(c.Heteromers[0], "uniref90", Stockholm)
	cache.Store(key, alignment(Stockholm, "MKVL", "MRVL"))
	if _, err := p.Process(c); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(uniref.queries, []string{"B"}) {
		t.Fatalf("Expected only chain B to be searched, got %v.",
			uniref.queries)
	}
}

func TestProcessStaleCache(t *testing.T) {
	uniref := &fakeSearcher{format: Stockholm, mutate: 'A'}
	p, cache := newPipeline(t,
		Source{"Uniref90", "uniref90", Stockholm, 0, uniref})
	c := newComplex("A", "MKVL")

	key := fingerprintKey(c.Heteromers[0], "uniref90", Stockholm)
	cache.Store(key, alignment(Stockholm, "GSTW", "GSTA"))
	d, err := p.Process(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(uniref.queries) != 1 {
		t.Fatalf("Expected a stale result to be searched again.")
	}
	rows, _ := d.Matrix(features.KeyMSA)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows but got %d.", len(rows))
	}
}

func TestProcessLinker(t *testing.T) {
	uniref := &fakeSearcher{format: A3M, mutate: 'A'}
	p, _ := newPipeline(t, Source{"BFD", "bfd_uniclust", A3M, 0, uniref})
	c := newComplex("A", "MKVL", "Peptide", "GGS")

	d, err := p.Process(c)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(uniref.queries, []string{"A"}) {
		t.Fatalf("Expected only chain A to be searched, got %v.",
			uniref.queries)
	}
	rows, _ := d.Matrix(features.KeyMSA)
	for i, row := range rows[1:] {
		for j := 4; j < 7; j++ {
			if int(row[j]) != features.GapID() {
				t.Fatalf("Row %d has a residue in linker column %d.", i+1, j)
			}
		}
	}
}

func TestProcessNoSearchable(t *testing.T) {
	uniref := &fakeSearcher{format: Stockholm, mutate: 'A'}
	p, _ := newPipeline(t,
		Source{"Uniref90", "uniref90", Stockholm, 0, uniref})
	_, err := p.Process(newComplex("Peptide", "GGS"))
	if !errors.Is(err, features.ErrNoAlignments) {
		t.Fatalf("Expected ErrNoAlignments but got %v.", err)
	}

	p.Sources = nil
	_, err = p.Process(newComplex("A", "MKVL"))
	if !errors.Is(err, features.ErrNoAlignments) {
		t.Fatalf("Expected ErrNoAlignments but got %v.", err)
	}
}

func TestProcessSearchError(t *testing.T) {
	failure := errors.New("database missing")
	uniref := &fakeSearcher{format: Stockholm, mutate: 'A'}
	mgnify := &fakeSearcher{format: Stockholm, err: failure}
	p, _ := newPipeline(t,
		Source{"Uniref90", "uniref90", Stockholm, 0, uniref},
		Source{"MGnify", "mgnify", Stockholm, 501, mgnify},
	)
	_, err := p.Process(newComplex("A", "MKVL", "B", "GSTW"))
	if !errors.Is(err, failure) {
		t.Fatalf("Expected the search error but got %v.", err)
	}
	if len(uniref.queries) != 1 {
		t.Fatalf("Expected processing to stop at chain A, got %v.",
			uniref.queries)
	}
}

type wrongQuery struct{}

func (wrongQuery) Search(queryPath string) ([]byte, error) {
	return alignment(Stockholm, "GSTW", "GSTA"), nil
}

func TestProcessQueryMismatch(t *testing.T) {
	p, cache := newPipeline(t,
		Source{"Uniref90", "uniref90", Stockholm, 0, wrongQuery{}})
	if _, err := p.Process(newComplex("A", "MKVL")); err == nil {
		t.Fatal("Expected an error for a result of another sequence.")
	}
	if cache.Stores != 0 {
		t.Fatal("Expected a mismatched result not to be stored.")
	}
}

func TestProcessTemplates(t *testing.T) {
	uniref := &fakeSearcher{format: Stockholm, mutate: 'A'}
	p, cache := newPipeline(t,
		Source{"Uniref90", "uniref90", Stockholm, 0, uniref})
	templates := &fakeTemplates{}
	p.Templates = templates

	c := newComplex("A", "MKVL")
	d, err := p.Process(c)
	if err != nil {
		t.Fatal(err)
	}
	a3mPath := path.Join(p.Scratch, "A_template_query.a3m")
	if !reflect.DeepEqual(templates.queries, []string{a3mPath}) {
		t.Fatalf("Unexpected template queries %v.", templates.queries)
	}
	a3m, err := ioutil.ReadFile(a3mPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(a3m, []byte(">query\nMKVL\n")) {
		t.Fatalf("Unexpected template query:\n%s", a3m)
	}
	names := d[template.KeyDomainNames].([][]byte)
	if len(names) != 1 || string(names[0]) != "A:1p4xA" {
		t.Fatalf("Unexpected templates %q.", names)
	}

	// A second run takes the templates from the cache.
	key := fingerprintKey(c.Heteromers[0], TemplateTag, HHR)
	if _, ok, _ := cache.Lookup(key); !ok {
		t.Fatal("Expected the template hits to be stored.")
	}
	if _, err := p.Process(c); err != nil {
		t.Fatal(err)
	}
	if len(templates.queries) != 1 {
		t.Fatal("Expected cached templates to skip the template search.")
	}
}

func TestProcessFile(t *testing.T) {
	uniref := &fakeSearcher{format: Stockholm, mutate: 'A'}
	p, _ := newPipeline(t,
		Source{"Uniref90", "uniref90", Stockholm, 0, uniref})
	fastaPath := path.Join(t.TempDir(), "dimer.fasta")
	err := ioutil.WriteFile(fastaPath, []byte(">A\nMKVL\n>B\nMKVL\n"), 0666)
	if err != nil {
		t.Fatal(err)
	}
	d, err := p.ProcessFile(fastaPath)
	if err != nil {
		t.Fatal(err)
	}
	name := d[features.KeyDomainName].([][]byte)
	if string(name[0]) != "dimer" {
		t.Fatalf("Expected domain name 'dimer' but got '%s'.", name[0])
	}
	lens, _ := d.Ints(features.KeyComponentLengths)
	if !reflect.DeepEqual(lens, []int32{4, 4}) {
		t.Fatalf("Unexpected component lengths %v.", lens)
	}
}

func TestSources(t *testing.T) {
	conf := config.Config{MSA: config.MSAConfig{MGnifyMaxHits: 501}}
	var tags []string
	for _, src := range Sources(conf) {
		tags = append(tags, src.Tag+"."+src.Format)
	}
	expected := []string{"uniref90.sto", "mgnify.sto", "bfd_uniclust.a3m"}
	if !reflect.DeepEqual(tags, expected) {
		t.Fatalf("Expected sources %v but got %v.", expected, tags)
	}

	conf.MSA.UseSmallBFD = true
	srcs := Sources(conf)
	if last := srcs[len(srcs)-1]; last.Tag != "small_bfd" || last.Format != Stockholm {
		t.Fatalf("Unexpected small BFD source %+v.", last)
	}
	if srcs[1].MaxHits != 501 {
		t.Fatalf("Expected MGnify to keep 501 rows, got %d.", srcs[1].MaxHits)
	}
}
