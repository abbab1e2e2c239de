package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recon-agent/cvekb/internal/split"
)

func newSplitCommand() *cobra.Command {
	opts := split.Options{}

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split an output CSV into ingestion-sized chunks",
		Long: `Split re-chunks a processed CSV into files of at most --rows-per-chunk
data rows each, repeating the header row in every chunk, so each piece
stays under the ingestion service's per-file size limit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := split.File(opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Split %d rows into %d chunks\n", result.Rows, len(result.Chunks))
			for _, chunk := range result.Chunks {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", chunk)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.InputFile, "input-file", "processed_cves_for_bedrock.csv", "CSV file to split")
	cmd.Flags().StringVar(&opts.OutputPrefix, "prefix", "processed_cves_part", "output file name prefix")
	cmd.Flags().IntVar(&opts.RowsPerChunk, "rows-per-chunk", 1000, "maximum data rows per chunk")

	return cmd
}
