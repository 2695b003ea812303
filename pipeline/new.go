package pipeline

import (
	"fmt"
	"os"

	"github.com/TuftsBCB/complexfeat/apps/hhsuite"
	"github.com/TuftsBCB/complexfeat/apps/hmmer"
	"github.com/TuftsBCB/complexfeat/config"
	"github.com/TuftsBCB/complexfeat/library"
	"github.com/TuftsBCB/complexfeat/template"
)

// Sources returns the alignment sources named by the configuration, in
// search order: Uniref90, MGnify, then either small BFD or BFD with
// Uniclust30.
func Sources(conf config.Config) []Source {
	jackhmmer := hmmer.JackhmmerDefault
	jackhmmer.Exec = conf.Tools.Jackhmmer
	jackhmmer.CPUs = conf.Tools.CPUs
	jackhmmer.Verbose = conf.Verbose

	sources := []Source{
		{
			Name:     Uniref90,
			Tag:      "uniref90",
			Format:   Stockholm,
			Searcher: Jackhmmer{jackhmmer, conf.Databases.Uniref90},
		},
		{
			Name:     MGnify,
			Tag:      "mgnify",
			Format:   Stockholm,
			MaxHits:  conf.MSA.MGnifyMaxHits,
			Searcher: Jackhmmer{jackhmmer, conf.Databases.MGnify},
		},
	}
	if conf.MSA.UseSmallBFD {
		return append(sources, Source{
			Name:     SmallBFD,
			Tag:      "small_bfd",
			Format:   Stockholm,
			Searcher: Jackhmmer{jackhmmer, conf.Databases.SmallBFD},
		})
	}

	hhblits := hhsuite.HHBlitsDefault
	hhblits.Exec = conf.Tools.HHblits
	hhblits.CPUs = conf.Tools.CPUs
	hhblits.Verbose = conf.Verbose
	return append(sources, Source{
		Name:   BFDUniclust,
		Tag:    "bfd_uniclust",
		Format: A3M,
		Searcher: HHBlits{hhblits, hhsuite.Databases([]string{
			conf.Databases.BFD, conf.Databases.Uniclust30,
		})},
	})
}

// New creates a Pipeline from the configuration. Search results are cached
// in the output directory, after looking in the library directory.
func New(conf config.Config) (*Pipeline, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	cache, err := library.NewDir(conf.Library, conf.Output)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(conf.Scratch, 0777); err != nil {
		return nil, fmt.Errorf("Could not create scratch directory '%s': %s",
			conf.Scratch, err)
	}

	p := &Pipeline{
		Sources:         Sources(conf),
		UnirefMaxHits:   conf.MSA.UnirefMaxHits,
		TemplateMaxHits: conf.MSA.TemplateMaxHits,
		BreakLength:     conf.BreakLength,
		Linkers:         conf.Linkers,
		Cache:           cache,
		Scratch:         conf.Scratch,
	}
	if len(conf.Databases.PDB70) > 0 {
		hhsearch := hhsuite.HHSearchDefault
		hhsearch.Exec = conf.Tools.HHsearch
		hhsearch.CPUs = conf.Tools.CPUs
		hhsearch.Verbose = conf.Verbose
		p.Templates = template.HHSearch{
			Conf: hhsearch,
			DB:   hhsuite.Database(conf.Databases.PDB70),
		}
	}
	return p, nil
}
