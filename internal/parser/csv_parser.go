package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParsedMotions holds specified motions read from CSV.
type ParsedMotions struct {
	Rows        [][]float64
	ParseErrors []string // non-fatal findings
}

// ParseMotionFile reads specified motions from a CSV file, one
// [axis(3), reference(3), pitch] row per line.
func ParseMotionFile(path string) (*ParsedMotions, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open motion CSV file: %w", err)
	}
	defer file.Close()

	parsed, err := ParseMotions(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

// ParseMotions reads specified motions from CSV. Lines starting with '#'
// and blank lines are skipped, and a first row that is not numeric is taken
// as a header. Pitch accepts "inf" for pure translations. Any row that is not
// exactly seven numbers fails with ErrMalformedRow.
func ParseMotions(r io.Reader) (*ParsedMotions, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}

	parsed := &ParsedMotions{ParseErrors: make([]string, 0)}
	seenData := false
	for rowIdx, row := range allRows {
		row = trimTrailingEmpty(row)
		if len(row) == 0 {
			continue
		}
		if !seenData && !isNumeric(row[0]) {
			parsed.ParseErrors = append(parsed.ParseErrors, fmt.Sprintf("Info: CSV row %d treated as header.", rowIdx+1))
			seenData = true
			continue
		}
		seenData = true

		if len(row) != MotionColumns {
			return nil, fmt.Errorf("CSV row %d has %d values, want %d: %w", rowIdx+1, len(row), MotionColumns, ErrMalformedRow)
		}
		values := make([]float64, MotionColumns)
		for i, item := range row {
			val, err := strconv.ParseFloat(strings.TrimSpace(item), 64)
			if err != nil {
				return nil, fmt.Errorf("CSV row %d column %d: %v: %w", rowIdx+1, i+1, err, ErrMalformedRow)
			}
			values[i] = val
		}
		parsed.Rows = append(parsed.Rows, values)
	}

	if len(parsed.Rows) == 0 {
		parsed.ParseErrors = append(parsed.ParseErrors, "Warning: no motion rows found.")
	}
	return parsed, nil
}

func trimTrailingEmpty(row []string) []string {
	for len(row) > 0 && strings.TrimSpace(row[len(row)-1]) == "" {
		row = row[:len(row)-1]
	}
	return row
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}
