package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recon-agent/cvekb/internal/export"
	"github.com/recon-agent/cvekb/internal/store/sqlite"
	"github.com/recon-agent/cvekb/pkg/logger"
)

func newLoadCommand() *cobra.Command {
	var (
		inputFile string
		dbPath    string
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a processed CSV into the local CVE catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := export.ReadRows(inputFile)
			if err != nil {
				return err
			}

			catalog, err := sqlite.Open(dbPath)
			if err != nil {
				return err
			}
			defer catalog.Close()

			loaded := 0
			for _, row := range rows {
				if err := catalog.Upsert(entryFromRow(row)); err != nil {
					logger.Warn("skipping row", zap.String("cve_id", row.CVEID), zap.Error(err))
					continue
				}
				loaded++
			}

			total, err := catalog.Count()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d of %d rows; catalog now holds %d CVEs\n",
				loaded, len(rows), total)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputFile, "input-file", "processed_cves_for_bedrock.csv", "processed CSV file to load")
	cmd.Flags().StringVar(&dbPath, "db-path", "./data/cve.db", "sqlite catalog path")

	return cmd
}

// entryFromRow rebuilds a catalog entry from an exported row. The CSV
// keeps the synthesized content rather than the bare description, so
// that is what the catalog stores on this path.
func entryFromRow(row export.Row) sqlite.Entry {
	e := sqlite.Entry{
		CVEID:            row.CVEID,
		Description:      row.Content,
		Severity:         row.Severity,
		AttackVector:     row.AttackVector,
		ExploitAvailable: row.ExploitAvailable == "true",
		PatchAvailable:   row.PatchAvailable == "true",
		PublishedDate:    row.PublishedDate,
	}
	if score, err := strconv.ParseFloat(row.BaseScore, 64); err == nil {
		e.BaseScore = &score
	}
	return e
}
