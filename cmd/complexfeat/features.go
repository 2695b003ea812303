package main

import (
	"log"
	"path"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TuftsBCB/complexfeat/cmd/util"
	"github.com/TuftsBCB/complexfeat/config"
	"github.com/TuftsBCB/complexfeat/pipeline"
)

// featuresCmd represents the features command
var featuresCmd = &cobra.Command{
	Use:   "features in-fasta-file",
	Short: "Search every chain of a complex and write its features",
	Long: `Search every chain of a complex and write its features.

Each unique chain is searched against Uniref90 and MGnify with jackhmmer, and
against BFD and Uniclust30 with hhblits (or small BFD with jackhmmer when
--use-small-bfd is set). When a PDB70 database is configured, the Uniref90
alignment is also used to search for templates with hhsearch.

A search is skipped when the library or output directory already holds its
result, in a file named '{chain}_{source}_hits.{sto,a3m,hhr}'.

The features are written to 'features.gob' in the output directory, and the
number of alignment rows per source to 'msa_depth.json'.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		conf := loadConfig()
		if len(conf.Library) > 0 {
			util.AssertIsDir(conf.Library)
		}

		p, err := pipeline.New(conf)
		util.Assert(err, "Could not set up the pipeline")

		d, err := p.ProcessFile(args[0])
		util.Assert(err, "Could not build features for '%s'", args[0])

		util.FeaturesWrite(conf.Output, d)
		log.Printf("Wrote %s", path.Join(conf.Output, util.FeaturesFile))
	},
}

func init() {
	rootCmd.AddCommand(featuresCmd)

	flags := featuresCmd.Flags()
	flags.Int("cpu", 0, "number of CPUs given to each search "+
		"(defaults to all of them)")
	flags.Int("break-length", 200,
		"residue index gap inserted between chains")

	flags.String("jackhmmer", "jackhmmer", "path to the jackhmmer executable")
	flags.String("hhblits", "hhblits", "path to the hhblits executable")
	flags.String("hhsearch", "hhsearch", "path to the hhsearch executable")

	flags.String("uniref90", "", "path to the Uniref90 FASTA database")
	flags.String("mgnify", "", "path to the MGnify FASTA database")
	flags.String("small-bfd", "", "path to the small BFD FASTA database")
	flags.String("bfd", "", "name or path of the BFD hhsuite database")
	flags.String("uniclust30", "",
		"name or path of the Uniclust30 hhsuite database")
	flags.String("pdb70", "", "name or path of the PDB70 hhsuite database "+
		"(template search is skipped when empty)")

	flags.Bool("use-small-bfd", false,
		"search small BFD with jackhmmer instead of BFD and Uniclust30")
	flags.Int("mgnify-max-hits", 501,
		"maximum number of MGnify rows used per chain")
	flags.Int("uniref-max-hits", 10000,
		"maximum number of Uniref90 rows given to the template search")
	flags.Int("template-max-hits", 20,
		"maximum number of templates kept per chain")

	// Bind the parameters to viper
	for key, name := range map[string]string{
		config.KeyCPUs:            "cpu",
		config.KeyBreakLength:     "break-length",
		config.KeyJackhmmer:       "jackhmmer",
		config.KeyHHblits:         "hhblits",
		config.KeyHHsearch:        "hhsearch",
		config.KeyUniref90:        "uniref90",
		config.KeyMGnify:          "mgnify",
		config.KeySmallBFD:        "small-bfd",
		config.KeyBFD:             "bfd",
		config.KeyUniclust30:      "uniclust30",
		config.KeyPDB70:           "pdb70",
		config.KeyUseSmallBFD:     "use-small-bfd",
		config.KeyMGnifyMaxHits:   "mgnify-max-hits",
		config.KeyUnirefMaxHits:   "uniref-max-hits",
		config.KeyTemplateMaxHits: "template-max-hits",
	} {
		viper.BindPFlag(key, flags.Lookup(name))
	}
}
