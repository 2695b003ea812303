/*
Package pipeline builds the features of a complex from per-chain searches.

Chains are processed one at a time, in heteromer order. For every searchable
chain, each configured source is looked up in the cache and searched only on a
miss. After the first source, its alignment is also used to search for
templates. Once every chain is done, the alignments are consolidated across
the complex, encoded and merged with the sequence and template features.

Nothing here runs concurrently, and a failure on any chain aborts the whole
complex.
*/
package pipeline

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path"
	"strings"

	"github.com/TuftsBCB/complexfeat/complex"
	"github.com/TuftsBCB/complexfeat/consolidate"
	"github.com/TuftsBCB/complexfeat/features"
	"github.com/TuftsBCB/complexfeat/library"
	"github.com/TuftsBCB/complexfeat/msa"
	"github.com/TuftsBCB/complexfeat/template"
)

// TemplateTag names template search results in the cache.
const TemplateTag = "pdb70"

// A Pipeline turns complexes into features.
type Pipeline struct {
	// Sources are searched for every chain, in order. The first one is the
	// primary source whose alignment seeds the template search.
	Sources []Source

	// Templates searches for templates. Template search is skipped when it
	// is nil.
	Templates template.Searcher

	// UnirefMaxHits limits the rows of the primary alignment given to the
	// template search.
	UnirefMaxHits int

	// TemplateMaxHits limits the templates kept per chain.
	TemplateMaxHits int

	BreakLength int
	Linkers     []string

	Cache library.Cache

	// Scratch receives the query files given to the search tools.
	Scratch string
}

// ProcessFile decomposes the complex in a FASTA file and processes it. The
// complex is named after the file, without its extension.
func (p *Pipeline) ProcessFile(fastaPath string) (features.Dict, error) {
	f, err := os.Open(fastaPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := complex.ReadFasta(f)
	if err != nil {
		return nil, fmt.Errorf("Could not read '%s': %w", fastaPath, err)
	}
	base := path.Base(fastaPath)
	name := strings.TrimSuffix(base, path.Ext(base))
	c := complex.Decompose(name, records, complex.Options{Linkers: p.Linkers})
	log.Printf("Decomposed %s", c)
	return p.Process(c)
}

// Process builds the features of a complex.
func (p *Pipeline) Process(c complex.Complex) (features.Dict, error) {
	if len(p.Sources) == 0 {
		return nil, features.ErrNoAlignments
	}

	depth := make(map[string]int)
	for _, name := range depthNames {
		depth[name] = 0
	}
	for _, src := range p.Sources {
		depth[src.Name] = 0
	}
	templates := template.NewCollector(p.TemplateMaxHits)

	var chains []consolidate.Chain
	for i, h := range c.Heteromers {
		if h.Kind == complex.Linker {
			log.Printf("Skip MSAs and templates for linker %s.", h.ID)
			continue
		}
		log.Printf("Get MSAs and templates for: %s", h.ID)

		queryPath, err := p.writeQuery(h)
		if err != nil {
			return nil, err
		}
		chain := consolidate.Chain{Heteromer: i}
		for s, src := range p.Sources {
			raw, aln, err := p.search(h, src, queryPath)
			if err != nil {
				return nil, fmt.Errorf("%s search for chain %s: %w",
					src.Name, h.ID, err)
			}
			aln = aln.Truncate(src.MaxHits)
			depth[src.Name] += aln.Len()
			chain.Sources = append(chain.Sources, aln)

			if s == 0 && p.Templates != nil {
				if err := p.searchTemplates(h, src, raw, templates); err != nil {
					return nil, fmt.Errorf("Template search for chain %s: %w",
						h.ID, err)
				}
			}
		}
		chains = append(chains, chain)
	}

	padded, err := consolidate.Pad(c, chains)
	if err != nil {
		return nil, err
	}
	msaFeats, err := features.MSA(consolidate.Expand(c, padded), c.Len())
	if err != nil {
		if len(chains) == 0 {
			return nil, fmt.Errorf("Complex %s has no searchable chains: %w",
				c.Name, err)
		}
		return nil, err
	}
	seqFeats := features.Sequence(
		c.Sequence, c.Name, c.ComponentLengths(), p.BreakLength)

	num, err := msaFeats.Ints(features.KeyNumAlignments)
	if err != nil {
		return nil, err
	}
	depth[features.DepthTotal] = int(num[0])
	for _, src := range p.Sources {
		log.Printf("%s MSA size: %d sequences.", src.Name, depth[src.Name])
	}
	log.Printf("Final (deduplicated) MSA size: %d sequences.", num[0])
	log.Printf("Total number of templates: %d.", templates.Len())

	d := features.Dict{}.Merge(seqFeats, msaFeats, templates.Features())
	d[features.KeyMSADepth] = depth
	return d, nil
}

// writeQuery writes the chain's sequence to '<scratch>/<id>.fa'.
func (p *Pipeline) writeQuery(h complex.Heteromer) (string, error) {
	queryPath := path.Join(p.Scratch, h.ID+".fa")
	content := fmt.Sprintf(">%s\n%s\n", h.ID, h.Sequence)
	if err := ioutil.WriteFile(queryPath, []byte(content), 0666); err != nil {
		return "", fmt.Errorf("Could not write query for chain %s: %w",
			h.ID, err)
	}
	return queryPath, nil
}

func fingerprintKey(h complex.Heteromer, tag, format string) library.Key {
	return library.Key{
		Chain:       h.ID,
		Source:      tag,
		Format:      format,
		Fingerprint: library.Fingerprint(h.Sequence),
	}
}

// search returns the raw and parsed result of searching src for a chain,
// from the cache when it holds a result for the chain's sequence.
//
// A cached result whose query row is not the chain's sequence is stale: it
// is reported and searched again. A fresh result whose query row is not the
// chain's sequence is an error.
func (p *Pipeline) search(
	h complex.Heteromer,
	src Source,
	queryPath string,
) ([]byte, msa.Alignment, error) {
	key := fingerprintKey(h, src.Tag, src.Format)
	content, ok, err := p.Cache.Lookup(key)
	if err != nil {
		return nil, msa.Alignment{}, err
	}
	if ok {
		aln, err := src.parse(content)
		switch {
		case err != nil:
			log.Printf("WARNING: Could not read library MSA %s (%s), "+
				"searching again.", key, err)
		case aln.Query() != h.Sequence:
			log.Printf("WARNING: Library MSA %s was built for a different "+
				"sequence, searching again.", key)
		default:
			log.Printf("Skip %s search and take library MSA: %s", src.Name, key)
			return content, aln, nil
		}
	}

	content, err = src.Searcher.Search(queryPath)
	if err != nil {
		return nil, msa.Alignment{}, err
	}
	aln, err := src.parse(content)
	if err != nil {
		return nil, msa.Alignment{}, err
	}
	if q := aln.Query(); q != h.Sequence {
		return nil, msa.Alignment{}, fmt.Errorf("The query row of the "+
			"alignment does not match the chain sequence: '%s' != '%s'.",
			q, h.Sequence)
	}
	if err := p.Cache.Store(key, content); err != nil {
		return nil, msa.Alignment{}, err
	}
	return content, aln, nil
}

// searchTemplates searches for the chain's templates with its primary
// alignment and adds the hits to the collector.
func (p *Pipeline) searchTemplates(
	h complex.Heteromer,
	primary Source,
	raw []byte,
	collector *template.Collector,
) error {
	key := fingerprintKey(h, TemplateTag, HHR)
	content, ok, err := p.Cache.Lookup(key)
	if err != nil {
		return err
	}
	if ok {
		log.Printf("Skip HHsearch and take library templates: %s", key)
	} else {
		a3mPath := path.Join(p.Scratch, h.ID+"_template_query.a3m")
		if err := p.writeTemplateQuery(a3mPath, primary, raw); err != nil {
			return err
		}
		content, err = p.Templates.Search(a3mPath)
		if err != nil {
			return err
		}
		if err := p.Cache.Store(key, content); err != nil {
			return err
		}
	}

	hits, err := template.ReadHits(content)
	if err != nil {
		return err
	}
	collector.Add(h.ID, hits)
	return nil
}

// writeTemplateQuery writes the primary alignment as A3M, limited to
// UnirefMaxHits sequences.
func (p *Pipeline) writeTemplateQuery(
	a3mPath string,
	primary Source,
	raw []byte,
) error {
	f, err := os.Create(a3mPath)
	if err != nil {
		return err
	}
	defer f.Close()

	switch primary.Format {
	case Stockholm:
		err = msa.StockholmToA3M(bytes.NewReader(raw), f, p.UnirefMaxHits)
	default:
		_, err = f.Write(raw)
	}
	if err != nil {
		return fmt.Errorf("Could not write template query '%s': %w",
			a3mPath, err)
	}
	return f.Close()
}
