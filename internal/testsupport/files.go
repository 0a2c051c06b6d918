package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"pplmatch/internal/dataset"
)

// WriteCSV writes table under dir/name and returns the path.
func WriteCSV(t testing.TB, dir, name string, table dataset.Table) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := dataset.WriteCSVFile(path, table); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadCSV reads a CSV table or fails the test.
func ReadCSV(t testing.TB, path string) dataset.Table {
	t.Helper()

	table, err := dataset.ReadCSVFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return table
}
