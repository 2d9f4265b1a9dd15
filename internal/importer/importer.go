// Package importer builds drawings from external files: DXF drawings and
// coordinate tables in CSV or Excel form. CSV input gets automatic delimiter
// detection and case-insensitive header recognition.
//
// Importers never fail hard on bad rows or entities. Problems are collected
// in ImportResult.Errors and ImportResult.Warnings and the rest of the file
// is still imported.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Drawing  model.Drawing
	Errors   []string
	Warnings []string
}

// Import dispatches on the file extension.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dxf":
		return ImportDXF(path)
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportResult{
			Drawing: model.NewDrawing(drawingName(path)),
			Errors:  []string{fmt.Sprintf("Unsupported file type %q", filepath.Ext(path))},
		}
	}
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Shape parameters occupy every column from Params onwards.
type ColumnMapping struct {
	Layer  int
	Type   int
	Params int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"layer": {"layer", "group", "layer name"},
	"type":  {"type", "shape", "entity", "kind", "shape type"},
}

// paramCounts lists the accepted numeric parameter counts per shape type.
// Polylines take any even count of at least four.
var paramCounts = map[string][]int{
	"line":      {4},
	"arc":       {5, 6},
	"circle":    {3},
	"ellipse":   {5, 7},
	"quadratic": {6},
	"cubic":     {8},
	"polyline":  nil,
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (layer, type, params...) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Layer: -1, Type: -1, Params: -1}

	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				switch role {
				case "layer":
					if mapping.Layer == -1 {
						mapping.Layer = i
					}
				case "type":
					if mapping.Type == -1 {
						mapping.Type = i
					}
				}
			}
		}
	}

	if mapping.Type == -1 {
		return ColumnMapping{Layer: 0, Type: 1, Params: 2}, false
	}

	mapping.Params = mapping.Type + 1
	if mapping.Layer > mapping.Type {
		mapping.Params = mapping.Layer + 1
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseParams reads the numeric parameter cells of a row. A trailing
// direction word ("cw"/"ccw") is returned separately for arcs.
func parseParams(row []string, from int) ([]float64, string, error) {
	var params []float64
	direction := ""
	for i := from; i < len(row); i++ {
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		switch strings.ToLower(cell) {
		case "cw", "ccw":
			direction = strings.ToLower(cell)
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, "", fmt.Errorf("invalid number '%s'", cell)
		}
		params = append(params, v)
	}
	return params, direction, nil
}

func validCount(kind string, n int) bool {
	if kind == "polyline" {
		return n >= 4 && n%2 == 0
	}
	for _, c := range paramCounts[kind] {
		if c == n {
			return true
		}
	}
	return false
}

// parseRow extracts shapes from a row using the given column mapping.
// Returns the layer, the shapes, and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (string, []geom.Shape, string) {
	layer := getCell(row, mapping.Layer)
	if layer == "" {
		layer = defaultLayer
	}

	kind := strings.ToLower(getCell(row, mapping.Type))
	if kind == "" {
		return "", nil, fmt.Sprintf("%s: Missing shape type", rowLabel)
	}
	if _, ok := paramCounts[kind]; !ok {
		return "", nil, fmt.Sprintf("%s: Unknown shape type '%s'", rowLabel, kind)
	}

	p, direction, err := parseParams(row, mapping.Params)
	if err != nil {
		return "", nil, fmt.Sprintf("%s: %v", rowLabel, err)
	}
	if !validCount(kind, len(p)) {
		return "", nil, fmt.Sprintf("%s: Wrong number of parameters for %s (%d)", rowLabel, kind, len(p))
	}

	switch kind {
	case "line":
		return layer, []geom.Shape{geom.NewLine(geom.Point{X: p[0], Y: p[1]}, geom.Point{X: p[2], Y: p[3]})}, ""

	case "arc":
		if p[2] <= 0 {
			return "", nil, fmt.Sprintf("%s: Radius must be positive", rowLabel)
		}
		orientation := geom.CounterClockwise
		if direction == "cw" || (len(p) == 6 && p[5] != 0) {
			orientation = geom.Clockwise
		}
		arc := geom.NewArc(geom.Point{X: p[0], Y: p[1]}, p[2], degToRad(p[3]), degToRad(p[4]), orientation)
		return layer, []geom.Shape{arc}, ""

	case "circle":
		if p[2] <= 0 {
			return "", nil, fmt.Sprintf("%s: Radius must be positive", rowLabel)
		}
		return layer, []geom.Shape{geom.NewCircle(geom.Point{X: p[0], Y: p[1]}, p[2])}, ""

	case "ellipse":
		if p[4] <= 0 || p[4] > 1 {
			return "", nil, fmt.Sprintf("%s: Axis ratio must be in (0, 1]", rowLabel)
		}
		start, end := 0.0, 2*math.Pi
		if len(p) == 7 {
			start, end = p[5], p[6]
		}
		e := geom.NewEllipse(geom.Point{X: p[0], Y: p[1]}, geom.Point{X: p[2], Y: p[3]}, p[4], start, end)
		return layer, []geom.Shape{e}, ""

	case "quadratic":
		q := geom.NewQuadraticCurve(
			geom.Point{X: p[0], Y: p[1]},
			geom.Point{X: p[2], Y: p[3]},
			geom.Point{X: p[4], Y: p[5]},
		)
		return layer, []geom.Shape{q}, ""

	case "cubic":
		c := geom.NewCubicCurve(
			geom.Point{X: p[0], Y: p[1]},
			geom.Point{X: p[2], Y: p[3]},
			geom.Point{X: p[4], Y: p[5]},
			geom.Point{X: p[6], Y: p[7]},
		)
		return layer, []geom.Shape{c}, ""

	default: // polyline
		var shapes []geom.Shape
		for i := 0; i+3 < len(p); i += 2 {
			a := geom.Point{X: p[i], Y: p[i+1]}
			b := geom.Point{X: p[i+2], Y: p[i+3]}
			if a.Coincident(b, geom.DefaultTolerance) {
				continue
			}
			shapes = append(shapes, geom.NewLine(a, b))
		}
		if len(shapes) == 0 {
			return "", nil, fmt.Sprintf("%s: Polyline has no distinct vertices", rowLabel)
		}
		return layer, shapes, ""
	}
}

// ImportCSV imports shapes from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{Drawing: model.NewDrawing(drawingName(path))}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(result.Drawing.Name, records, "Line", result.Warnings)
}

// ImportCSVFromReader imports shapes from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{Drawing: model.NewDrawing("table")}

	records, err := readCSV(reader, delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(result.Drawing.Name, records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'
	return csvReader.ReadAll()
}

// ImportExcel imports shapes from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{Drawing: model.NewDrawing(drawingName(path))}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(result.Drawing.Name, rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into shapes.
func importFromRows(name string, rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Drawing:  model.NewDrawing(name),
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	} else if _, known := paramCounts[strings.ToLower(getCell(rows[0], mapping.Type))]; !known {
		// Unrecognized header: skip it but keep the positional mapping.
		if _, err := strconv.ParseFloat(getCell(rows[0], mapping.Params), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		layer, shapes, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Drawing.Add(layer, shapes...)
	}

	if result.Drawing.ShapeCount() == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No shapes found")
	}
	return result
}
