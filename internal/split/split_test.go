package split

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir string, dataRows int) string {
	t.Helper()
	path := filepath.Join(dir, "input.csv")
	var b strings.Builder
	b.WriteString("id,content,cve_id\n")
	for i := 1; i <= dataRows; i++ {
		fmt.Fprintf(&b, "CVE-%04d,\"some, quoted\ncontent\",CVE-%04d\n", i, i)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestSplitRepeatsHeaderPerChunk(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, 5)

	result, err := File(Options{
		InputFile:    input,
		OutputPrefix: filepath.Join(dir, "chunk"),
		RowsPerChunk: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Rows)
	require.Len(t, result.Chunks, 3)

	total := 0
	for i, chunk := range result.Chunks {
		rows := readAll(t, chunk)
		assert.Equal(t, []string{"id", "content", "cve_id"}, rows[0], "chunk %d header", i)
		assert.LessOrEqual(t, len(rows)-1, 2)
		total += len(rows) - 1
	}
	assert.Equal(t, 5, total)

	// Order is preserved across chunk boundaries.
	first := readAll(t, result.Chunks[0])
	assert.Equal(t, "CVE-0001", first[1][0])
	last := readAll(t, result.Chunks[2])
	assert.Equal(t, "CVE-0005", last[1][0])
}

func TestSplitSingleChunkWhenUnderLimit(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, 2)

	result, err := File(Options{
		InputFile:    input,
		OutputPrefix: filepath.Join(dir, "chunk"),
		RowsPerChunk: 100,
	})
	require.NoError(t, err)
	assert.Len(t, result.Chunks, 1)
	assert.Equal(t, 2, result.Rows)
}

func TestSplitEmptyInputProducesNoChunks(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, 0)

	result, err := File(Options{
		InputFile:    input,
		OutputPrefix: filepath.Join(dir, "chunk"),
		RowsPerChunk: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Chunks)
	assert.Zero(t, result.Rows)
}

func TestSplitRejectsBadChunkSize(t *testing.T) {
	_, err := File(Options{InputFile: "x.csv", OutputPrefix: "y", RowsPerChunk: 0})
	assert.Error(t, err)
}

func TestSplitMissingInput(t *testing.T) {
	_, err := File(Options{
		InputFile:    filepath.Join(t.TempDir(), "nope.csv"),
		OutputPrefix: "y",
		RowsPerChunk: 10,
	})
	assert.Error(t, err)
}
