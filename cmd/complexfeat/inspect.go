package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TuftsBCB/complexfeat/cmd/util"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect features-file",
	Short: "Print the keys and shapes of a feature file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := util.FeaturesRead(args[0])

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTYPE\tSHAPE")
		for _, key := range d.Keys() {
			fmt.Fprintf(tw, "%s\t%T\t%s\n", key, d[key], shape(d[key]))
		}
		util.Assert(tw.Flush(), "Could not write features")

		if depth := d.Depth(); len(depth) > 0 {
			names := make([]string, 0, len(depth))
			for name := range depth {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Println()
			for _, name := range names {
				fmt.Printf("%s: %d\n", name, depth[name])
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func shape(v interface{}) string {
	switch v := v.(type) {
	case []int32:
		return fmt.Sprintf("[%d]", len(v))
	case []float32:
		return fmt.Sprintf("[%d]", len(v))
	case [][]int32:
		if len(v) == 0 {
			return "[0]"
		}
		return fmt.Sprintf("[%d %d]", len(v), len(v[0]))
	case [][]byte:
		return fmt.Sprintf("[%d]", len(v))
	case map[string]int:
		return fmt.Sprintf("{%d}", len(v))
	}
	return "?"
}
