package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/specialistvlad/dvcheck/internal/ctxlog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultNullValues are the field values read as missing cells. They match
// the markers survey exports commonly use for "no answer".
var DefaultNullValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

// Options controls how delimited text is turned into a Dataset.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// IDColumn names the row identifier column. Empty means DefaultIDColumn.
	IDColumn string
	// NullValues lists field values read as missing. Nil means DefaultNullValues.
	NullValues []string
}

// LoadFile opens path and loads it with LoadCSV.
func LoadFile(ctx context.Context, path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := LoadCSV(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return ds, nil
}

// LoadCSV reads a header row followed by data rows. A leading byte order mark
// is dropped. Rows whose field count differs from the header, and rows the
// CSV reader cannot parse, are skipped and logged.
func LoadCSV(ctx context.Context, r io.Reader, opts Options) (*Dataset, error) {
	logger := ctxlog.FromContext(ctx)

	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	nulls := opts.NullValues
	if nulls == nil {
		nulls = DefaultNullValues
	}
	isNull := make(map[string]struct{}, len(nulls))
	for _, v := range nulls {
		isNull[v] = struct{}{}
	}

	rawHeader, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset is empty: missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header := dedupeHeader(rawHeader)

	var rows [][]Cell
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				logger.Warn("Skipping unparseable dataset row.", "line", parseErr.Line, "error", parseErr.Err)
				skipped++
				continue
			}
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}

		if len(record) != len(header) {
			line, _ := reader.FieldPos(0)
			logger.Warn("Skipping malformed dataset row.", "line", line, "fields", len(record), "expected", len(header))
			skipped++
			continue
		}

		row := make([]Cell, len(record))
		for i, field := range record {
			if _, ok := isNull[field]; ok {
				row[i] = Missing()
			} else {
				row[i] = Text(field)
			}
		}
		rows = append(rows, row)
	}

	ds, err := New(header, rows, opts.IDColumn)
	if err != nil {
		return nil, err
	}

	logger.Debug("Dataset loaded.", "rows", ds.Len(), "columns", len(header), "skipped_rows", skipped)
	return ds, nil
}

// dedupeHeader renames repeated column names to name.1, name.2, ...
func dedupeHeader(raw []string) []string {
	taken := make(map[string]struct{}, len(raw))
	for _, name := range raw {
		taken[name] = struct{}{}
	}

	counts := make(map[string]int, len(raw))
	out := make([]string, len(raw))
	for i, name := range raw {
		if counts[name] == 0 {
			counts[name] = 1
			out[i] = name
			continue
		}
		for {
			candidate := name + "." + strconv.Itoa(counts[name])
			counts[name]++
			if _, clash := taken[candidate]; !clash {
				taken[candidate] = struct{}{}
				out[i] = candidate
				break
			}
		}
	}
	return out
}
