// Package dataset holds the tabular form of corpora, legislator lists, gold
// annotations, and match output, with CSV I/O and typed converters.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pplmatch/internal/faults"
)

// Table is a header plus string rows. Rows may be shorter than the header;
// missing cells read as empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of column, or -1.
func (t Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Has reports whether column exists.
func (t Table) Has(column string) bool {
	return t.Index(column) >= 0
}

// Value returns the cell at (row, column index), or "" when absent.
func (t Table) Value(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Require fails with faults.ErrConfiguration naming every missing column.
func (t Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return faults.Wrap(faults.ErrConfiguration, "dataset", "require columns",
		fmt.Sprintf("missing column(s): %s", strings.Join(missing, ", ")), nil)
}

// Clone returns a deep copy.
func (t Table) Clone() Table {
	out := Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}

// SetColumn writes values into column, replacing it in place when it exists
// and appending it otherwise. values must have one entry per row.
func (t *Table) SetColumn(column string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("set column %q: %d values for %d rows", column, len(values), len(t.Rows))
	}
	idx := t.Index(column)
	if idx < 0 {
		t.Columns = append(t.Columns, column)
		idx = len(t.Columns) - 1
	}
	for i := range t.Rows {
		for len(t.Rows[i]) <= idx {
			t.Rows[i] = append(t.Rows[i], "")
		}
		t.Rows[i][idx] = values[i]
	}
	return nil
}

// ReadCSV parses a CSV document whose first record is the header.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, faults.Wrap(faults.ErrConfiguration, "dataset", "read csv", "missing header row", nil)
	}
	if err != nil {
		return Table{}, faults.Wrap(faults.ErrConfiguration, "dataset", "read csv", "", err)
	}
	t := Table{Columns: make([]string, len(header))}
	for i, col := range header {
		col = strings.TrimSpace(col)
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		t.Columns[i] = col
	}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, faults.Wrap(faults.ErrConfiguration, "dataset", "read csv", "", err)
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// ReadCSVFile reads a CSV table from path.
func ReadCSVFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, faults.Wrap(faults.ErrConfiguration, "dataset", "open csv", path, err)
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteCSV writes the header and rows. Short rows are padded.
func WriteCSV(w io.Writer, t Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range t.Rows {
		if len(r) < len(t.Columns) {
			padded := make([]string, len(t.Columns))
			copy(padded, r)
			r = padded
		}
		if err := writer.Write(r); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes t to path, replacing any existing file and creating
// missing parent directories.
func WriteCSVFile(path string, t Table) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
