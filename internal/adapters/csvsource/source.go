// Package csvsource reads raw tabular input rows from CSV files.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/moviedq/internal/ports/primary"
)

const utf8BOM = "\ufeff"

// ReadFile reads every row of the CSV file at path.
func ReadFile(path string) ([]primary.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &primary.IngestionError{Reason: fmt.Sprintf("cannot open %s", path), Err: err}
	}
	defer f.Close()

	return Read(f)
}

// Read parses CSV with a header row into rows keyed by column name.
// Values stay as strings; short records simply miss their trailing columns.
func Read(r io.Reader) ([]primary.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &primary.IngestionError{Reason: "input is empty"}
	}
	if err != nil {
		return nil, &primary.IngestionError{Reason: "cannot read header", Err: err}
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
	}

	var rows []primary.RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &primary.IngestionError{Reason: "cannot read row", Err: err}
		}

		row := make(primary.RawRow, len(header))
		for i, value := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = value
		}
		rows = append(rows, row)
	}

	return rows, nil
}
