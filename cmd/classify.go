package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/qbformat/core/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <label>...",
	Short: "Show the canonical chapter for raw chapter labels",
	Long: `Classify runs each raw label through the chapter classifier of the
selected mode and prints the result. Labels that match no rule are
marked, since they pass through unchanged.

Examples:
  qbformat classify --mode physics "Chapter 04: নিউটনিয়ান বলবিদ্যা"
  qbformat classify --mode ict "অধ্যায় 3" "Chapter 5"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomy := cfg.Taxonomy()
		out := cmd.OutOrStdout()
		for _, label := range args {
			name, matched := classify.Match(label, taxonomy)
			marker := "✓"
			if !matched {
				marker = "?"
			}
			fmt.Fprintf(out, "%s %s → %s\n", marker, label, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
