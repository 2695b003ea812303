package main

import (
	"fmt"
	"os"
	"path"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TuftsBCB/complexfeat/cmd/util"
	"github.com/TuftsBCB/complexfeat/complex"
	"github.com/TuftsBCB/complexfeat/features"
)

var flagSequenceFeatures = ""

// decomposeCmd represents the decompose command
var decomposeCmd = &cobra.Command{
	Use:   "decompose in-fasta-file",
	Short: "Show the heteromers of a complex and their column layout",
	Long: `Show the heteromers of a complex and their column layout.

No searches are run. With --sequence-features, the sequence features of the
complex are written as a GOB encoded feature file.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		conf := loadConfig()

		f := util.OpenFile(args[0])
		records, err := complex.ReadFasta(f)
		util.Assert(err, "Could not read '%s'", args[0])
		f.Close()

		base := path.Base(args[0])
		name := strings.TrimSuffix(base, path.Ext(base))
		c := complex.Decompose(name, records,
			complex.Options{Linkers: conf.Linkers})

		fmt.Printf("%s (%d residues, %s)\n", c.Name, c.Len(), c.Description)
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tKIND\tLENGTH\tCOPIES\tUNIQUE OFFSET\tOFFSET")
		for _, p := range c.Layout {
			h := c.Heteromers[p.Heteromer]
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n",
				h.ID, h.Kind, p.Length, p.Multiplicity, p.UniqueOffset, p.Offset)
		}
		util.Assert(tw.Flush(), "Could not write layout")

		if len(flagSequenceFeatures) > 0 {
			d := features.Sequence(c.Sequence, c.Name, c.ComponentLengths(),
				conf.BreakLength)
			out := util.CreateFile(flagSequenceFeatures)
			util.Assert(features.Write(out, d),
				"Could not GOB encode sequence features")
			util.Assert(out.Close(), "Could not write '%s'",
				flagSequenceFeatures)
		}
	},
}

func init() {
	rootCmd.AddCommand(decomposeCmd)

	decomposeCmd.Flags().StringVar(&flagSequenceFeatures,
		"sequence-features", flagSequenceFeatures,
		"write the sequence features to this file")
}
