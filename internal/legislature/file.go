package legislature

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"pplmatch/internal/faults"
)

//go:embed periods.schema.json
var periodsSchemaJSON string

//go:embed legislatures_qc.json
var quebecPeriodsJSON []byte

type periodRecord struct {
	Legislature int    `json:"legislature"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error

	defaultOnce  sync.Once
	defaultIndex *Index
	defaultErr   error
)

// Default returns the bundled Quebec National Assembly table (legislatures
// 35 through 43).
func Default() (*Index, error) {
	defaultOnce.Do(func() {
		defaultIndex, defaultErr = Decode(bytes.NewReader(quebecPeriodsJSON))
	})
	return defaultIndex, defaultErr
}

// LoadFile reads a JSON period table from disk.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "open period table", path, err)
	}
	defer f.Close()
	idx, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// Decode validates a JSON period table against the embedded schema and builds
// an Index from it.
func Decode(r io.Reader) (*Index, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "read period table", "", err)
	}
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "decode period table", "", err)
	}
	schema, err := loadSchema()
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "load schema", "", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "validate period table", "", err)
	}

	var records []periodRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "decode period table", "", err)
	}
	periods := make([]Period, 0, len(records))
	for _, rec := range records {
		start, err := time.Parse(DateLayout, rec.StartDate)
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "decode period table",
				fmt.Sprintf("legislature %d start_date", rec.Legislature), err)
		}
		end, err := time.Parse(DateLayout, rec.EndDate)
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "decode period table",
				fmt.Sprintf("legislature %d end_date", rec.Legislature), err)
		}
		periods = append(periods, Period{Legislature: rec.Legislature, Start: start, End: end})
	}
	return Load(periods)
}

// Encode writes periods in the JSON table format accepted by Decode.
func Encode(w io.Writer, periods []Period) error {
	records := make([]periodRecord, 0, len(periods))
	for _, p := range periods {
		records = append(records, periodRecord{
			Legislature: p.Legislature,
			StartDate:   formatDay(p.Start),
			EndDate:     formatDay(p.End),
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true

		if err := compiler.AddResource("periods.schema.json", strings.NewReader(periodsSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, err := compiler.Compile("periods.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}
		compiledSchema = schema
	})
	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("period table is empty")
	}
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("period table contains trailing content")
	}
	return value, nil
}
