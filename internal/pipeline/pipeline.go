// Package pipeline drives the walker -> parser -> classifier -> writer
// sequence over a CVE corpus.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recon-agent/cvekb/internal/classify"
	"github.com/recon-agent/cvekb/internal/corpus"
	"github.com/recon-agent/cvekb/internal/cvejson"
	"github.com/recon-agent/cvekb/internal/export"
	"github.com/recon-agent/cvekb/internal/metrics"
	"github.com/recon-agent/cvekb/internal/store/sqlite"
	"github.com/recon-agent/cvekb/pkg/logger"
)

const progressEvery = 10

type Options struct {
	InputDir    string
	OutputFile  string
	StartYear   int
	MaxFiles    int // 0 means unlimited
	MaxRelevant int // 0 means unlimited
	// DBPath, when set, mirrors accepted records into the local sqlite
	// catalog.
	DBPath string
}

// Stats is the run accumulator, threaded explicitly through the single
// processing loop. There is no other run-scoped state.
type Stats struct {
	RunID         string
	FilesScanned  int
	ParseFailures int
	StateExcluded int
	Accepted      int
	Elapsed       time.Duration
}

// RelevanceRate is accepted records over files scanned, as a
// percentage.
func (s *Stats) RelevanceRate() float64 {
	if s.FilesScanned == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.FilesScanned) * 100
}

// Run executes one pass over the corpus. Per-record failures are logged
// and skipped; only the inability to produce output is returned as an
// error. The summary is printed to out (stdout in the CLI) so it is
// visible even when logging goes elsewhere.
func Run(opts Options, cls *classify.Classifier, out io.Writer) (*Stats, error) {
	metrics.Init()
	start := time.Now()
	stats := &Stats{RunID: uuid.NewString()}

	cstats, err := corpus.Analyze(opts.InputDir, opts.StartYear)
	if err != nil {
		return nil, err
	}
	logger.Info("corpus analyzed",
		zap.String("run_id", stats.RunID),
		zap.String("input_dir", opts.InputDir),
		zap.Int("total_files", cstats.TotalFiles),
		zap.Int("total_years", cstats.TotalYears),
		zap.Int("files_to_process", cstats.FilesToProcess),
		zap.Int("years_to_process", cstats.YearsToProcess),
		zap.Int("start_year", opts.StartYear),
	)

	writer, err := export.NewWriter(opts.OutputFile, opts.MaxRelevant)
	if err != nil {
		return nil, err
	}

	var catalog *sqlite.Catalog
	if opts.DBPath != "" {
		catalog, err = sqlite.Open(opts.DBPath)
		if err != nil {
			writer.Close()
			return nil, err
		}
		defer catalog.Close()
	}

	var writeErr error
	walker := corpus.NewWalker(opts.InputDir, opts.StartYear, opts.MaxFiles)
	walkErr := walker.Walk(func(path string) bool {
		if writer.Full() {
			return false
		}

		stats.FilesScanned++
		metrics.FilesProcessed.Inc()

		doc, err := cvejson.ParseFile(path)
		if err != nil {
			stats.ParseFailures++
			metrics.ParseFailures.Inc()
			logger.Warn("skipping unparseable record", zap.String("path", path), zap.Error(err))
			return true
		}

		if !doc.Published() {
			stats.StateExcluded++
			metrics.RecordsExcluded.WithLabelValues("state").Inc()
			return true
		}

		record := doc.Normalize()
		if !cls.WebRelevant(record) {
			metrics.RecordsExcluded.WithLabelValues("not_relevant").Inc()
			return true
		}

		if err := writer.Write(record); err != nil {
			writeErr = err
			return false
		}
		stats.Accepted++
		metrics.RecordsAccepted.Inc()
		metrics.RowsWritten.Inc()

		if catalog != nil {
			if err := catalog.Upsert(sqlite.EntryFromRecord(record)); err != nil {
				logger.Warn("catalog upsert failed", zap.String("cve_id", record.ID), zap.Error(err))
			}
		}

		if stats.Accepted%progressEvery == 0 {
			logger.Info("progress",
				zap.Int("accepted", stats.Accepted),
				zap.Int("files_scanned", stats.FilesScanned),
			)
		}
		return true
	})

	closeErr := writer.Close()
	stats.Elapsed = time.Since(start)

	if writeErr != nil {
		return stats, writeErr
	}
	if walkErr != nil {
		return stats, walkErr
	}
	if closeErr != nil {
		return stats, fmt.Errorf("cannot finalize output file: %w", closeErr)
	}

	fmt.Fprintf(out, "Completed: %d web-relevant CVEs extracted from %d files in %s (run %s)\n",
		stats.Accepted, stats.FilesScanned, stats.Elapsed.Round(time.Millisecond), stats.RunID)
	if stats.FilesScanned > 0 {
		fmt.Fprintf(out, "Web relevance rate: %.1f%%\n", stats.RelevanceRate())
	} else {
		fmt.Fprintln(out, "No files processed")
	}

	return stats, nil
}
