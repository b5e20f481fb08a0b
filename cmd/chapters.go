package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/classify"
)

var flagAllModes bool

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List the canonical chapter names of a mode",
	Long: `Chapters prints the canonical chapter names records are classified into,
in table order. The fallback chapter is printed last.

Examples:
  qbformat chapters --mode ict
  qbformat chapters --every`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomies := []core.Taxonomy{cfg.Taxonomy()}
		if flagAllModes {
			taxonomies = core.Taxonomies
		}

		out := cmd.OutOrStdout()
		for i, t := range taxonomies {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "[%s]\n", t.Label())
			for n, name := range classify.Chapters(t) {
				fmt.Fprintf(out, "%2d. %s\n", n+1, name)
			}
			fmt.Fprintf(out, "    %s\n", classify.OtherChapter)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chaptersCmd)
	chaptersCmd.Flags().BoolVar(&flagAllModes, "every", false, "List the chapters of every mode")
}
