package main

import (
	"github.com/spf13/cobra"

	"github.com/recon-agent/cvekb/internal/classify"
	"github.com/recon-agent/cvekb/internal/pipeline"
)

func newProcessCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Filter the CVE corpus into a knowledge-base CSV",
		Example: `  # Process CVEs from 2020 onwards
  cvekb process

  # Cap the run at 100 relevant CVEs from a custom checkout
  cvekb process --input-dir /data/cvelistV5 --max-relevant 100

  # Scan at most 1000 files from 2023, mirroring into a local catalog
  cvekb process --start-year 2023 --max-files 1000 --db-path ./data/cve.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cls := classify.New(classify.Keywords{
				WebProducts:      cfg.Keywords.WebProducts,
				VulnClasses:      cfg.Keywords.VulnClasses,
				GatedVulnClasses: cfg.Keywords.GatedVulnClasses,
				WebHints:         cfg.Keywords.WebHints,
				WebCWEs:          cfg.Keywords.WebCWEs,
			})
			_, err := pipeline.Run(opts, cls, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVar(&opts.InputDir, "input-dir", "./cvelistV5", "root of the CVE record corpus")
	cmd.Flags().StringVar(&opts.OutputFile, "output-file", "processed_cves_for_bedrock.csv", "destination CSV file")
	cmd.Flags().IntVar(&opts.StartYear, "start-year", 2020, "only process CVEs from this year onwards")
	cmd.Flags().IntVar(&opts.MaxFiles, "max-files", 0, "maximum number of files to scan (0 = unlimited)")
	cmd.Flags().IntVar(&opts.MaxRelevant, "max-relevant", 0, "maximum number of rows to emit (0 = unlimited)")
	cmd.Flags().StringVar(&opts.DBPath, "db-path", "", "optional sqlite catalog to mirror accepted CVEs into")

	return cmd
}
