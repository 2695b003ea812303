// Command complexfeat builds the input features of a structure prediction
// model for a protein complex given as a multi-record FASTA file.
package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TuftsBCB/complexfeat/cmd/util"
	"github.com/TuftsBCB/complexfeat/config"
)

var flagSettings = ""

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "complexfeat",
	Short: "Build alignment and sequence features for protein complexes",
	Long: `Build alignment and sequence features for protein complexes.

Chains with identical sequences are collapsed into one heteromer, each
heteromer is searched against the configured sequence databases (or its
results are taken from a library of earlier searches), and the per-chain
alignments are padded and expanded into one alignment over the whole complex.`,
	Version:      "0.1.0",
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagSettings, "settings", "s", flagSettings,
		"path to a settings file (YAML, TOML or JSON)")
	flags.StringP("output", "o", "",
		"directory receiving the features and new search results")
	flags.StringP("library", "l", "",
		"directory with search results of earlier runs")
	flags.String("scratch", "",
		"directory for query files (defaults to the output directory)")
	flags.BoolP("verbose", "v", false,
		"echo search commands and their output")
	flags.StringSlice("linkers", nil,
		"chain identifiers that are never searched (default [Peptide])")

	// Bind the parameters to viper
	viper.BindPFlag(config.KeyOutput, flags.Lookup("output"))
	viper.BindPFlag(config.KeyLibrary, flags.Lookup("library"))
	viper.BindPFlag(config.KeyScratch, flags.Lookup("scratch"))
	viper.BindPFlag(config.KeyVerbose, flags.Lookup("verbose"))
	viper.BindPFlag(config.KeyLinkers, flags.Lookup("linkers"))
}

// loadConfig reads the settings file, if any, and the bound flags.
func loadConfig() config.Config {
	conf, err := config.New(viper.GetViper(), flagSettings)
	util.Assert(err, "Could not load settings")
	return conf
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
