package core

// reader.go turns one export file into typed records.
//
// The file is decoded as UTF-8 with an optional byte order mark stripped,
// so Windows-saved exports keep an exact first header name. Invalid byte
// sequences become U+FFFD rather than failing the read.

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// HeaderIndex maps exact column names to their position in the CSV row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Names are kept verbatim; the first occurrence of a duplicate wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

// Missing returns the columns absent from the index, in the given order.
func (h HeaderIndex) Missing(columns []string) []string {
	var missing []string
	for _, c := range columns {
		if _, ok := h[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// cell returns the raw value of column in row, or "" when the column is
// absent from the header or the row is short.
func (h HeaderIndex) cell(row []string, column string) string {
	pos, ok := h[column]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// NewCSVReader wraps r in a UTF-8 decoding csv.Reader.
// Rows may be shorter or longer than the header; quoting errors are reported.
func NewCSVReader(r io.Reader) *csv.Reader {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

// BuildRecord applies every mapping of def to one raw row.
func BuildRecord(def EntityDefinition, idx HeaderIndex, row []string) Record {
	rec := make(Record, len(def.Fields))
	for _, f := range def.Fields {
		rec[f.Field] = f.Coerce(idx.cell(row, f.Column))
	}
	return rec
}

// ReadRecords reads the export at path and builds one record per data row,
// in file order. The file is closed before ReadRecords returns.
//
// Any error aborts the whole file: a missing file or column, or a row the
// CSV parser rejects. There is no per-row skipping.
func ReadRecords(def EntityDefinition, path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, inputError(def.Key, "open", err)
	}
	defer f.Close()

	return readRecords(def, path, f)
}

func readRecords(def EntityDefinition, path string, r io.Reader) ([]Record, error) {
	cr := NewCSVReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		// No header and no rows: nothing to import.
		return []Record{}, nil
	}
	if err != nil {
		return nil, inputError(def.Key, "read header", err)
	}

	idx := MakeHeaderIndex(append([]string(nil), header...))
	if missing := idx.Missing(def.RequiredColumns()); len(missing) > 0 {
		return nil, &MissingColumnError{Entity: def.Key, File: path, Columns: missing}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, inputError(def.Key, "read row", err)
		}
		records = append(records, BuildRecord(def, idx, row))
	}

	return records, nil
}
