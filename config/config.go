// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd/complexfeat)
package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

// Setting keys, as used in settings files and to bind command line flags.
const (
	KeyOutput      = "output"
	KeyLibrary     = "library"
	KeyScratch     = "scratch"
	KeyBreakLength = "break-length"
	KeyLinkers     = "linkers"
	KeyVerbose     = "verbose"

	KeyCPUs      = "tools.cpus"
	KeyJackhmmer = "tools.jackhmmer"
	KeyHHblits   = "tools.hhblits"
	KeyHHsearch  = "tools.hhsearch"

	KeyUniref90   = "databases.uniref90"
	KeyMGnify     = "databases.mgnify"
	KeySmallBFD   = "databases.small-bfd"
	KeyBFD        = "databases.bfd"
	KeyUniclust30 = "databases.uniclust30"
	KeyPDB70      = "databases.pdb70"

	KeyUseSmallBFD     = "msa.use-small-bfd"
	KeyMGnifyMaxHits   = "msa.mgnify-max-hits"
	KeyUnirefMaxHits   = "msa.uniref-max-hits"
	KeyTemplateMaxHits = "msa.template-max-hits"
)

// ToolsConfig locates the search programs
type ToolsConfig struct {
	// number of CPUs given to each search
	CPUs int `mapstructure:"cpus"`

	// executables, looked up in PATH unless absolute
	Jackhmmer string `mapstructure:"jackhmmer"`
	HHblits   string `mapstructure:"hhblits"`
	HHsearch  string `mapstructure:"hhsearch"`
}

// DatabaseConfig holds the paths of the sequence databases
type DatabaseConfig struct {
	// FASTA databases searched with jackhmmer
	Uniref90 string `mapstructure:"uniref90"`
	MGnify   string `mapstructure:"mgnify"`
	SmallBFD string `mapstructure:"small-bfd"`

	// hhsuite databases searched with hhblits
	BFD        string `mapstructure:"bfd"`
	Uniclust30 string `mapstructure:"uniclust30"`

	// hhsuite database searched with hhsearch for templates. Template
	// search is skipped when it is empty.
	PDB70 string `mapstructure:"pdb70"`
}

// MSAConfig is settings for the alignment sources
type MSAConfig struct {
	// search small BFD with jackhmmer instead of BFD and Uniclust30 with
	// hhblits
	UseSmallBFD bool `mapstructure:"use-small-bfd"`

	// the maximum number of MGnify rows used per chain
	MGnifyMaxHits int `mapstructure:"mgnify-max-hits"`

	// the maximum number of Uniref90 rows given to the template search
	UnirefMaxHits int `mapstructure:"uniref-max-hits"`

	// the maximum number of templates kept per chain
	TemplateMaxHits int `mapstructure:"template-max-hits"`
}

// Config is the root-level settings struct and is a mix
// of settings available in a settings file and those
// available from the command line
type Config struct {
	// directory with search results from earlier runs. Never written to.
	Library string `mapstructure:"library"`

	// directory receiving features and new search results
	Output string `mapstructure:"output"`

	// directory for per-chain query files. Defaults to Output.
	Scratch string `mapstructure:"scratch"`

	// residue index gap between consecutive chains
	BreakLength int `mapstructure:"break-length"`

	// chain identifiers that are never searched
	Linkers []string `mapstructure:"linkers"`

	// echo search commands and their output
	Verbose bool `mapstructure:"verbose"`

	Tools     ToolsConfig    `mapstructure:"tools"`
	Databases DatabaseConfig `mapstructure:"databases"`
	MSA       MSAConfig      `mapstructure:"msa"`
}

// SetDefaults registers the default value of every setting with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBreakLength, 200)
	v.SetDefault(KeyLinkers, []string{"Peptide"})
	v.SetDefault(KeyVerbose, false)

	v.SetDefault(KeyCPUs, runtime.NumCPU())
	v.SetDefault(KeyJackhmmer, "jackhmmer")
	v.SetDefault(KeyHHblits, "hhblits")
	v.SetDefault(KeyHHsearch, "hhsearch")

	v.SetDefault(KeyUseSmallBFD, false)
	v.SetDefault(KeyMGnifyMaxHits, 501)
	v.SetDefault(KeyUnirefMaxHits, 10000)
	v.SetDefault(KeyTemplateMaxHits, 20)
}

// New returns a Config populated by the settings in v, reading the settings
// file first when one is given.
func New(v *viper.Viper, settingsFile string) (Config, error) {
	var c Config

	SetDefaults(v)
	if len(settingsFile) > 0 {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("Could not read settings file '%s': %s",
				settingsFile, err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("Unable to decode settings: %s", err)
	}
	if len(c.Scratch) == 0 {
		c.Scratch = c.Output
	}
	return c, nil
}

// Validate checks that every database needed by the configured sources is
// set.
func (c Config) Validate() error {
	if len(c.Output) == 0 {
		return fmt.Errorf("An output directory must be set.")
	}
	if c.BreakLength < 0 {
		return fmt.Errorf("The break length must not be negative, got %d.",
			c.BreakLength)
	}
	required := map[string]string{
		KeyUniref90: c.Databases.Uniref90,
		KeyMGnify:   c.Databases.MGnify,
	}
	if c.MSA.UseSmallBFD {
		required[KeySmallBFD] = c.Databases.SmallBFD
	} else {
		required[KeyBFD] = c.Databases.BFD
		required[KeyUniclust30] = c.Databases.Uniclust30
	}
	for _, key := range []string{
		KeyUniref90, KeyMGnify, KeySmallBFD, KeyBFD, KeyUniclust30,
	} {
		if path, ok := required[key]; ok && len(path) == 0 {
			return fmt.Errorf("The database '%s' must be set.", key)
		}
	}
	return nil
}
