package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// parseDirectoryCSV splits directory CSV text into rows, one line at a time.
// Blank lines are dropped and a line that cannot be parsed is skipped
// without affecting the lines after it.
func parseDirectoryCSV(text string) [][]string {
	text = strings.TrimPrefix(text, "\ufeff")

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parseDirectoryLine(line)
		if err != nil {
			continue
		}
		rows = append(rows, rec)
	}
	return rows
}

func parseDirectoryLine(line string) ([]string, error) {
	// Each reader sees a single line, so an unterminated quote cannot run
	// past the end of it.
	reader := csv.NewReader(strings.NewReader(line))
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.Read()
}

// ParseDirectoryXLSX reads rows from the first sheet of an xlsx workbook.
func ParseDirectoryXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return rows, nil
}

// isDirectoryHeader reports whether row is the Name,CardNo,... header.
func isDirectoryHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[0]), DirectoryHeader[0]) &&
		strings.EqualFold(strings.TrimSpace(row[1]), DirectoryHeader[1])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseDefaultRate reads the optional fourth column; anything non-numeric
// is 0.
func parseDefaultRate(s string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return int(math.Round(v))
}

// parseDirectoryRows converts raw rows to employees without IDs.
func parseDirectoryRows(rows [][]string) []Employee {
	var out []Employee
	seenFirst := false

	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if !seenFirst {
			seenFirst = true
			if isDirectoryHeader(row) {
				continue
			}
		}
		if len(row) < 3 {
			continue
		}

		e := Employee{
			Name:        strings.TrimSpace(row[0]),
			CardNo:      strings.TrimSpace(row[1]),
			Designation: strings.TrimSpace(row[2]),
		}
		if e.CardNo == "" {
			continue
		}
		if len(row) >= 4 {
			e.DefaultRate = parseDefaultRate(row[3])
		}
		out = append(out, e)
	}
	return out
}
