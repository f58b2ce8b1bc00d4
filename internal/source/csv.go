// Package source loads telemetry datasets from external origins into
// tables the pipeline can analyze.
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"
)

// CSVAdapter loads comma-separated files. The first record is the
// header row; every later record becomes one table row.
type CSVAdapter struct{}

var _ contract.SourceAdapter = &CSVAdapter{} // Compile-time check

// NewCSVAdapter creates a CSV source adapter.
func NewCSVAdapter() *CSVAdapter {
	return &CSVAdapter{}
}

// Load implements the SourceAdapter interface.
func (a *CSVAdapter) Load(ctx context.Context, location string) (*schema.Table, error) {
	file, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %q: %w", location, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // short records are null-padded below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %q: %w", location, err)
	}
	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}

	var rows []schema.Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record from %q: %w", location, err)
		}
		row := make(schema.Row, len(columns))
		for i, col := range columns {
			if i >= len(record) {
				row[col] = nil
				continue
			}
			row[col] = parseValue(record[i])
		}
		rows = append(rows, row)
	}

	table, err := schema.NewTable(columns, rows, location)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset %q: %w", location, err)
	}
	return table, nil
}

// parseValue converts a CSV cell into its natural Go type. Whitespace
// is preserved so the cleaning stage can detect and repair it.
func parseValue(s string) any {
	if s == "" {
		return nil
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil && trimmed == s {
		return n
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
