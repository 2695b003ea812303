/*
Package template collects the hits of template searches for the chains of a
complex.

Only the hit list of an hhsearch result is used: template structures are not
read, so the features produced here describe which templates were found and
where they align, not their coordinates.
*/
package template

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/TuftsBCB/io/hhr"

	"github.com/TuftsBCB/complexfeat/apps/hhsuite"
	"github.com/TuftsBCB/complexfeat/features"
)

// Template feature keys.
const (
	KeyDomainNames = "template_domain_names"
	KeySumProbs    = "template_sum_probs"
	KeyQueryRanges = "template_query_ranges"
)

// DefaultMaxHits is the number of templates kept per chain.
const DefaultMaxHits = 20

// A Searcher searches a template database with an A3M alignment and returns
// the hhr output.
type Searcher interface {
	Search(a3mPath string) ([]byte, error)
}

// HHSearch is a Searcher that runs hhsearch against one database.
type HHSearch struct {
	Conf hhsuite.HHSearchConfig
	DB   hhsuite.Database
}

func (s HHSearch) Search(a3mPath string) ([]byte, error) {
	return s.Conf.Run(s.DB, a3mPath)
}

// ReadHits parses the hit list of an hhr file.
func ReadHits(content []byte) ([]hhr.Hit, error) {
	results, err := hhr.Read(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	return results.Hits, nil
}

type chainHit struct {
	chain string
	hit   hhr.Hit
}

// A Collector accumulates the template hits of every chain of a complex.
type Collector struct {
	// MaxHits is the number of hits kept per chain, best first. All hits are
	// kept when it is not positive.
	MaxHits int

	hits []chainHit
}

// NewCollector returns an empty Collector keeping maxHits hits per chain.
func NewCollector(maxHits int) *Collector {
	return &Collector{MaxHits: maxHits}
}

// Add records the hits found for a chain. Hits are ranked by probability,
// ties keeping their order in the hit list.
func (c *Collector) Add(chain string, hits []hhr.Hit) {
	ranked := make([]hhr.Hit, len(hits))
	copy(ranked, hits)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Prob > ranked[j].Prob
	})
	if c.MaxHits > 0 && len(ranked) > c.MaxHits {
		ranked = ranked[:c.MaxHits]
	}
	for _, hit := range ranked {
		c.hits = append(c.hits, chainHit{chain, hit})
	}
}

// Len returns the number of templates collected.
func (c *Collector) Len() int {
	return len(c.hits)
}

// Features returns the template features, one entry per template in the
// order chains were added. Query ranges are 0-based and half-open, in the
// residue coordinates of the chain that was searched.
func (c *Collector) Features() features.Dict {
	names := make([][]byte, len(c.hits))
	probs := make([]float32, len(c.hits))
	ranges := make([][]int32, len(c.hits))
	for i, ch := range c.hits {
		names[i] = []byte(fmt.Sprintf("%s:%s", ch.chain, ch.hit.Name))
		probs[i] = float32(ch.hit.Prob)
		ranges[i] = []int32{
			int32(ch.hit.QueryStart - 1), int32(ch.hit.QueryEnd),
		}
	}
	return features.Dict{
		KeyDomainNames: names,
		KeySumProbs:    probs,
		KeyQueryRanges: ranges,
	}
}
