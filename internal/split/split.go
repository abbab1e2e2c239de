// Package split re-chunks a pipeline output file so each piece stays
// under the ingestion service's per-file size limit.
package split

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

type Options struct {
	InputFile    string
	OutputPrefix string
	RowsPerChunk int
}

type Result struct {
	Rows   int
	Chunks []string
}

// File splits the input into files of at most RowsPerChunk data rows,
// repeating the header in every chunk. Chunk names are
// <prefix>_001.csv, <prefix>_002.csv, ...
func File(opts Options) (*Result, error) {
	if opts.RowsPerChunk < 1 {
		return nil, fmt.Errorf("rows per chunk must be at least 1, got %d", opts.RowsPerChunk)
	}

	in, err := os.Open(opts.InputFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", opts.InputFile, err)
	}
	defer in.Close()

	reader := csv.NewReader(in)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header of %s: %w", opts.InputFile, err)
	}

	result := &Result{}
	var (
		out     *os.File
		writer  *csv.Writer
		inChunk int
	)

	closeChunk := func() error {
		if out == nil {
			return nil
		}
		writer.Flush()
		flushErr := writer.Error()
		closeErr := out.Close()
		out, writer = nil, nil
		if flushErr != nil {
			return flushErr
		}
		return closeErr
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			closeChunk()
			return nil, fmt.Errorf("cannot read %s: %w", opts.InputFile, err)
		}

		if out == nil {
			name := fmt.Sprintf("%s_%03d.csv", opts.OutputPrefix, len(result.Chunks)+1)
			out, err = os.Create(name)
			if err != nil {
				return nil, fmt.Errorf("cannot create chunk %s: %w", name, err)
			}
			writer = csv.NewWriter(out)
			if err := writer.Write(header); err != nil {
				closeChunk()
				return nil, fmt.Errorf("cannot write header to %s: %w", name, err)
			}
			result.Chunks = append(result.Chunks, name)
			inChunk = 0
		}

		if err := writer.Write(row); err != nil {
			closeChunk()
			return nil, fmt.Errorf("cannot write row to chunk: %w", err)
		}
		result.Rows++
		inChunk++

		if inChunk == opts.RowsPerChunk {
			if err := closeChunk(); err != nil {
				return nil, fmt.Errorf("cannot finalize chunk: %w", err)
			}
		}
	}

	if err := closeChunk(); err != nil {
		return nil, fmt.Errorf("cannot finalize chunk: %w", err)
	}
	return result, nil
}
