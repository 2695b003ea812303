package main

import (
	"github.com/spf13/cobra"

	"github.com/TuftsBCB/complexfeat/cmd/util"
	"github.com/TuftsBCB/complexfeat/msa"
)

var flagMaxSeqs = 0

// sto2a3mCmd represents the sto2a3m command
var sto2a3mCmd = &cobra.Command{
	Use:   "sto2a3m sto-file a3m-file",
	Short: "Convert a jackhmmer Stockholm alignment to A3M",
	Long: `Convert a jackhmmer Stockholm alignment to A3M.

Columns where the query has a gap become lower case insertions, which is the
form hhsearch expects for its query alignment.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		in := util.OpenFile(args[0])
		defer in.Close()

		out := util.CreateFile(args[1])
		util.Assert(msa.StockholmToA3M(in, out, flagMaxSeqs),
			"Could not convert '%s'", args[0])
		util.Assert(out.Close(), "Could not write '%s'", args[1])
	},
}

func init() {
	rootCmd.AddCommand(sto2a3mCmd)

	sto2a3mCmd.Flags().IntVar(&flagMaxSeqs, "max-seqs", flagMaxSeqs,
		"keep at most this many sequences (0 keeps all of them)")
}
