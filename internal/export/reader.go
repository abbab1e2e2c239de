package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Row is one parsed output row, used when loading a previously produced
// file into the local catalog.
type Row struct {
	ID               string
	Content          string
	CVEID            string
	Severity         string
	BaseScore        string
	AttackVector     string
	ExploitAvailable string
	PatchAvailable   string
	PublishedDate    string
}

// ReadRows parses a pipeline output file, validating the header against
// the fixed schema.
func ReadRows(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(Columns)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header of %s: %w", path, err)
	}
	for i, name := range Columns {
		if header[i] != name {
			return nil, fmt.Errorf("%s: unexpected column %q at position %d (want %q)", path, header[i], i, name)
		}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
		rows = append(rows, Row{
			ID:               record[0],
			Content:          record[1],
			CVEID:            record[2],
			Severity:         record[3],
			BaseScore:        record[4],
			AttackVector:     record[5],
			ExploitAvailable: record[6],
			PatchAvailable:   record[7],
			PublishedDate:    record[8],
		})
	}
	return rows, nil
}
