// Package importer reads idea batches from JSON, CSV and XLSX files.
package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

// Format is a supported input file type.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported file type: %s (want .json, .csv or .xlsx)", path)
}

// ReadFile loads ideas from path. Ideas are returned as read; callers
// validate them.
func ReadFile(path string) ([]idea.Idea, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ideas, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ideas, nil
}

// Read decodes ideas from r in the given format.
func Read(r io.Reader, format Format) ([]idea.Idea, error) {
	switch format {
	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return ParseJSON(data)
	case FormatCSV:
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		return parseRows(rows)
	case FormatXLSX:
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening workbook: %w", err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
		}
		return parseRows(rows)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// ParseJSON accepts a bare array of ideas or an object with an "ideas"
// array. Surrounding Markdown code fences are stripped, so ideas pasted
// from a chat or a README can be read directly.
func ParseJSON(data []byte) ([]idea.Idea, error) {
	data = bytes.TrimSpace(stripFences(data))
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON input")
	}

	var ideas []idea.Idea
	if data[0] == '[' {
		if err := json.Unmarshal(data, &ideas); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		return ideas, nil
	}

	var wrapped struct {
		Ideas []idea.Idea `json:"ideas"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if wrapped.Ideas == nil {
		return nil, fmt.Errorf("parsing JSON: no ideas array")
	}
	return wrapped.Ideas, nil
}

func stripFences(data []byte) []byte {
	text := strings.TrimSpace(string(data))
	if !strings.HasPrefix(text, "```") {
		return data
	}
	lines := strings.Split(text, "\n")
	end := len(lines)
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			end = i
			break
		}
	}
	return []byte(strings.Join(lines[1:end], "\n"))
}

type column int

const (
	colID column = iota
	colTitle
	colDescription
	colImpact
	colEffort
	colRisk
	colDataReadiness
)

var columnNames = map[string]column{
	"id":            colID,
	"title":         colTitle,
	"description":   colDescription,
	"impact":        colImpact,
	"effort":        colEffort,
	"risk":          colRisk,
	"datareadiness": colDataReadiness,
}

var requiredColumns = []string{"title", "description", "impact", "effort", "risk", "datareadiness"}

func headerKey(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer("_", "", " ", "", "-", "").Replace(h)
}

// parseRows reads a header row followed by one idea per row. Row numbers in
// errors are 1-based, counting the header.
func parseRows(rows [][]string) ([]idea.Idea, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	index := make(map[column]int)
	for i, h := range rows[0] {
		if c, ok := columnNames[headerKey(h)]; ok {
			index[c] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := index[columnNames[name]]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	ideas := []idea.Idea{}
	for n, row := range rows[1:] {
		rowNum := n + 2
		if blank(row) {
			continue
		}

		cell := func(c column) string {
			i, ok := index[c]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		number := func(c column, name string) (float64, error) {
			v := cell(c)
			if v == "" {
				return 0, nil
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return 0, fmt.Errorf("row %d: %s: %q is not a number", rowNum, name, v)
			}
			return f, nil
		}

		it := idea.Idea{
			ID:          cell(colID),
			Title:       cell(colTitle),
			Description: cell(colDescription),
		}
		var err error
		if it.Impact, err = number(colImpact, "impact"); err != nil {
			return nil, err
		}
		if it.Effort, err = number(colEffort, "effort"); err != nil {
			return nil, err
		}
		if it.Risk, err = number(colRisk, "risk"); err != nil {
			return nil, err
		}
		if it.DataReadiness, err = number(colDataReadiness, "dataReadiness"); err != nil {
			return nil, err
		}
		ideas = append(ideas, it)
	}

	return ideas, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
