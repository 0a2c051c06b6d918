package api

import (
	"context"
	"fmt"
	"strings"

	"pplmatch/internal/dataset"
	"pplmatch/internal/faults"
	"pplmatch/internal/store"
)

// SourceKind says where a table comes from.
type SourceKind string

const (
	SourceFile  SourceKind = "file"
	SourceTable SourceKind = "table"
	SourceRun   SourceKind = "run"
)

const (
	tablePrefix = "db:"
	runPrefix   = "run:"
)

// Source is a parsed table reference: a CSV path, db:<table>, or run:<id>.
type Source struct {
	Kind  SourceKind
	Value string
}

// ParseSource parses a table reference.
func ParseSource(ref string) (Source, error) {
	ref = strings.TrimSpace(ref)
	var src Source
	switch {
	case strings.HasPrefix(ref, tablePrefix):
		src = Source{Kind: SourceTable, Value: strings.TrimSpace(ref[len(tablePrefix):])}
	case strings.HasPrefix(ref, runPrefix):
		src = Source{Kind: SourceRun, Value: strings.TrimSpace(ref[len(runPrefix):])}
	default:
		src = Source{Kind: SourceFile, Value: ref}
	}
	if src.Value == "" {
		return Source{}, faults.Wrap(faults.ErrConfiguration, "api", "parse source",
			fmt.Sprintf("empty table reference %q", ref), nil)
	}
	return src, nil
}

// String returns the reference in the form ParseSource accepts.
func (s Source) String() string {
	switch s.Kind {
	case SourceTable:
		return tablePrefix + s.Value
	case SourceRun:
		return runPrefix + s.Value
	default:
		return s.Value
	}
}

// NeedsStore reports whether loading the source requires the database.
func (s Source) NeedsStore() bool {
	return s.Kind == SourceTable || s.Kind == SourceRun
}

// LoadSource reads the table a source points to. st may be nil for file
// sources.
func LoadSource(ctx context.Context, st *store.Store, src Source) (dataset.Table, error) {
	if src.NeedsStore() && st == nil {
		return dataset.Table{}, faults.Wrap(faults.ErrConfiguration, "api", "load source",
			fmt.Sprintf("%s requires a database", src), nil)
	}
	switch src.Kind {
	case SourceTable:
		return st.ReadTable(ctx, src.Value)
	case SourceRun:
		_, table, err := st.LoadRun(ctx, src.Value)
		return table, err
	default:
		return dataset.ReadCSVFile(src.Value)
	}
}
