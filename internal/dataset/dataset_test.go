package dataset

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"pplmatch/internal/faults"
)

func TestReadCSV(t *testing.T) {
	doc := "\ufeffspeaker, event_date ,extra\n" +
		"M. Legault,2019-02-05,a\n" +
		"\"Picard, Chauveau\",2019-02-06\n"
	table, err := ReadCSV(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !reflect.DeepEqual(table.Columns, []string{"speaker", "event_date", "extra"}) {
		t.Fatalf("columns = %q", table.Columns)
	}
	if table.Len() != 2 {
		t.Fatalf("rows = %d", table.Len())
	}
	if got := table.Value(1, table.Index("speaker")); got != "Picard, Chauveau" {
		t.Fatalf("quoted cell = %q", got)
	}
	if got := table.Value(1, table.Index("extra")); got != "" {
		t.Fatalf("short row cell = %q", got)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRequireNamesMissingColumns(t *testing.T) {
	table := Table{Columns: []string{"speaker"}}
	err := table.Require("speaker", "event_date", "correct_name")
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "event_date, correct_name") {
		t.Fatalf("error does not name columns: %v", err)
	}
	if err := table.Require("speaker"); err != nil {
		t.Fatalf("Require(present) = %v", err)
	}
}

func TestSetColumnReplacesInPlace(t *testing.T) {
	table := Table{
		Columns: []string{"speaker", "match_level"},
		Rows:    [][]string{{"a", "old"}, {"b"}},
	}
	if err := table.SetColumn("match_level", []string{"x", "y"}); err != nil {
		t.Fatalf("SetColumn: %v", err)
	}
	if err := table.SetColumn("matched_name", []string{"1", "2"}); err != nil {
		t.Fatalf("SetColumn: %v", err)
	}
	want := Table{
		Columns: []string{"speaker", "match_level", "matched_name"},
		Rows:    [][]string{{"a", "x", "1"}, {"b", "y", "2"}},
	}
	if !reflect.DeepEqual(table, want) {
		t.Fatalf("table = %+v", table)
	}
	if err := table.SetColumn("bad", []string{"only one"}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	table := Table{
		Columns: []string{"speaker", "event_date", "note"},
		Rows:    [][]string{{"Picard, Chauveau", "2019-02-05", "x"}, {"M. Roy", "2019-02-06"}},
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSVFile(path, table); err != nil {
		t.Fatalf("WriteCSVFile: %v", err)
	}
	loaded, err := ReadCSVFile(path)
	if err != nil {
		t.Fatalf("ReadCSVFile: %v", err)
	}
	if loaded.Value(0, 0) != "Picard, Chauveau" || loaded.Value(1, 2) != "" || len(loaded.Rows[1]) != 3 {
		t.Fatalf("round trip = %+v", loaded)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, Table{Columns: []string{"a"}}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if buf.String() != "a\n" {
		t.Fatalf("header only = %q", buf.String())
	}
}

func TestWriteCSVFileCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "2019", "matched.csv")
	table := Table{Columns: []string{"speaker"}, Rows: [][]string{{"M. Legault"}}}
	if err := WriteCSVFile(path, table); err != nil {
		t.Fatalf("WriteCSVFile: %v", err)
	}
	loaded, err := ReadCSVFile(path)
	if err != nil {
		t.Fatalf("ReadCSVFile: %v", err)
	}
	if loaded.Len() != 1 || loaded.Value(0, 0) != "M. Legault" {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestLegislators(t *testing.T) {
	table := Table{
		Columns: []string{"full_name", "party_id", "gender", "legislature_id", "other_names", "district_id"},
		Rows: [][]string{
			{"Catherine Dorion", "QS", "F", "42", "Catherine Dorion-Pelletier; C. Dorion ;", "Taschereau"},
			{"Pascal Bérubé", "PQ", "M", "41.0", "", ""},
		},
	}
	legs, err := table.Legislators()
	if err != nil {
		t.Fatalf("Legislators: %v", err)
	}
	if legs[0].LegislatureID != 42 || legs[1].LegislatureID != 41 {
		t.Fatalf("legislature ids = %d, %d", legs[0].LegislatureID, legs[1].LegislatureID)
	}
	if !reflect.DeepEqual(legs[0].OtherNames, []string{"Catherine Dorion-Pelletier", "C. Dorion"}) {
		t.Fatalf("other names = %q", legs[0].OtherNames)
	}
	if legs[1].OtherNames != nil || legs[1].DistrictID != "" {
		t.Fatalf("optional fields = %+v", legs[1])
	}

	table.Rows[1][3] = "forty-one"
	if _, err := table.Legislators(); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error for bad id, got %v", err)
	}

	optional := Table{Columns: []string{"full_name", "party_id", "gender", "legislature_id"}, Rows: [][]string{{"A", "B", "C", "43"}}}
	if _, err := optional.Legislators(); err != nil {
		t.Fatalf("optional columns should not be required: %v", err)
	}
}

func TestGoldAndPredictions(t *testing.T) {
	gold := Table{
		Columns: []string{"speaker", "event_date", "correct_name"},
		Rows:    [][]string{{"M. Roy", "2019-02-05", "Sylvain Roy"}, {"Des voix", "2019-02-05", "NA"}},
	}
	annotations, err := gold.Annotations()
	if err != nil {
		t.Fatalf("Annotations: %v", err)
	}
	if annotations[0].CorrectName != "Sylvain Roy" || annotations[1].CorrectName != "" {
		t.Fatalf("annotations = %+v", annotations)
	}

	malformed := Table{Columns: []string{"speaker", "event_date"}}
	if _, err := malformed.Annotations(); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := malformed.Predictions(); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := (Table{Columns: []string{"speaker"}}).Utterances(); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
