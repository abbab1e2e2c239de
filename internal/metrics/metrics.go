// Package metrics holds the pipeline's prometheus collectors. The
// counters are incremented by the driver; exposition is left to
// whatever embeds the pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	FilesProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cvekb_files_processed_total",
			Help: "Total CVE record files scanned",
		},
	)

	ParseFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cvekb_parse_failures_total",
			Help: "Total record files skipped as unparseable",
		},
	)

	RecordsExcluded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvekb_records_excluded_total",
			Help: "Total parsed records excluded before output",
		},
		[]string{"reason"},
	)

	RecordsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cvekb_records_accepted_total",
			Help: "Total web-relevant records accepted",
		},
	)

	RowsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cvekb_rows_written_total",
			Help: "Total rows written to the output file",
		},
	)
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(FilesProcessed)
		prometheus.MustRegister(ParseFailures)
		prometheus.MustRegister(RecordsExcluded)
		prometheus.MustRegister(RecordsAccepted)
		prometheus.MustRegister(RowsWritten)
	})
}
