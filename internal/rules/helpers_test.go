package rules

import (
	"strconv"
	"testing"

	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/stretchr/testify/require"
)

// cell converts a fixture value, where nil means a missing cell.
func cell(v any) dataset.Cell {
	if v == nil {
		return dataset.Missing()
	}
	return dataset.Text(v.(string))
}

// newDataset builds a dataset whose id column "record" is numbered from 1.
func newDataset(t *testing.T, columns map[string][]any) *dataset.Dataset {
	t.Helper()

	header := []string{dataset.DefaultIDColumn}
	n := -1
	for name, values := range columns {
		header = append(header, name)
		if n == -1 {
			n = len(values)
		}
		require.Len(t, values, n, "fixture column %q has a different length", name)
	}
	if n < 0 {
		n = 0
	}

	rows := make([][]dataset.Cell, n)
	for r := range rows {
		row := []dataset.Cell{dataset.Text(strconv.Itoa(r + 1))}
		for _, name := range header[1:] {
			row = append(row, cell(columns[name][r]))
		}
		rows[r] = row
	}

	ds, err := dataset.New(header, rows, dataset.DefaultIDColumn)
	require.NoError(t, err)
	return ds
}
