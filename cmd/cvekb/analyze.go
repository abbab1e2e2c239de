package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recon-agent/cvekb/internal/corpus"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		inputDir  string
		startYear int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Show corpus statistics without processing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := corpus.Analyze(inputDir, startYear)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d CVE files across %d years\n", stats.TotalFiles, stats.TotalYears)
			fmt.Fprintf(out, "Current flags would process %d files from %d years (starting from %d)\n",
				stats.FilesToProcess, stats.YearsToProcess, startYear)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "./cvelistV5", "root of the CVE record corpus")
	cmd.Flags().IntVar(&startYear, "start-year", 2020, "only count CVEs from this year onwards")

	return cmd
}
