package cvejson

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMissingID marks a file that decoded but has no cveId, so it is not
// a recognizable CVE record.
var ErrMissingID = errors.New("record has no cveId")

// ParseError wraps any per-file failure with the offending path. Parse
// errors are local: the caller logs and skips the file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseFile reads and decodes one CVE record file. A record in a
// non-published state is a valid parse; filtering on state is the
// caller's decision.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if doc.Metadata.ID == "" {
		return nil, &ParseError{Path: path, Err: ErrMissingID}
	}
	return &doc, nil
}
