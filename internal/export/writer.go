package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/recon-agent/cvekb/internal/cvejson"
)

// Columns is the fixed output schema. id and cve_id are equal by
// construction; both exist because the ingestion service treats the
// first as the document key and the rest as metadata.
var Columns = []string{
	"id",
	"content",
	"cve_id",
	"severity",
	"base_score",
	"attack_vector",
	"exploit_available",
	"patch_available",
	"published_date",
}

// UnknownScore is emitted when a record carries no numeric CVSS base
// score. A fabricated 0.0 would be indistinguishable from a real one.
const UnknownScore = "UNKNOWN"

// Writer emits accepted records as CSV rows, enforcing the overall row
// cap. The destination is truncated on open and the header is always
// written, even for an empty result.
type Writer struct {
	file    *os.File
	csv     *csv.Writer
	maxRows int // 0 means unlimited
	rows    int
}

func NewWriter(path string, maxRows int) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create output file %s: %w", path, err)
	}
	w := &Writer{file: file, csv: csv.NewWriter(file), maxRows: maxRows}
	if err := w.csv.Write(Columns); err != nil {
		file.Close()
		return nil, fmt.Errorf("cannot write header to %s: %w", path, err)
	}
	return w, nil
}

// Full reports whether the row cap has been reached. The pipeline
// checks this before doing any further work on a record.
func (w *Writer) Full() bool {
	return w.maxRows > 0 && w.rows >= w.maxRows
}

func (w *Writer) Rows() int {
	return w.rows
}

// Write emits one record. Writing past the cap is a no-op, not an
// error.
func (w *Writer) Write(r *cvejson.Record) error {
	if w.Full() {
		return nil
	}
	row := []string{
		r.ID,
		BuildContent(r),
		r.ID,
		r.Severity.String(),
		FormatScore(r.BaseScore),
		r.AttackVector.String(),
		strconv.FormatBool(r.ExploitAvailable),
		strconv.FormatBool(r.PatchAvailable),
		r.PublishedDate,
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("cannot write row for %s: %w", r.ID, err)
	}
	w.rows++
	return nil
}

func (w *Writer) Close() error {
	w.csv.Flush()
	flushErr := w.csv.Error()
	closeErr := w.file.Close()
	if flushErr != nil {
		return fmt.Errorf("cannot flush output: %w", flushErr)
	}
	return closeErr
}

// FormatScore renders a base score without trailing zeros, or
// UnknownScore when no metric was present.
func FormatScore(score *float64) string {
	if score == nil {
		return UnknownScore
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}
