// Package importer reads beam parameter files into the raw parameter map
// accepted by validate.Validate. CSV and Excel files hold one key/value
// pair per row; YAML and JSON files hold a flat mapping. It also summarizes
// DXF drawings for read-back checks.
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
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/BeamDetail/internal/validate"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Params   map[string]any
	Errors   []string
	Warnings []string
}

// Err joins the import errors into one error, or returns nil.
func (r ImportResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(r.Errors, "; "))
}

// headerKeys are first-row cells that mark a header row.
var headerKeys = map[string]bool{
	"key": true, "parameter": true, "param": true, "name": true, "field": true,
}

// headerValues are second-column cells that mark a header row.
var headerValues = map[string]bool{
	"value": true, "val": true, "wert": true, "wartosc": true, "wartość": true,
}

// ruleIndex maps every accepted parameter key to its rule.
func ruleIndex() map[string]validate.Rule {
	idx := map[string]validate.Rule{}
	for _, r := range validate.Rules() {
		idx[r.Key] = r
	}
	return idx
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

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ImportParamsCSV imports parameters from a CSV file with key,value rows.
// The delimiter is detected automatically.
func ImportParamsCSV(path string) ImportResult {
	result := ImportResult{}

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
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	res := ImportParamsCSVFromReader(bytes.NewReader(data), delimiter)
	res.Warnings = append(warnings, res.Warnings...)
	return res
}

// ImportParamsCSVFromReader imports parameters from a CSV reader with a
// known delimiter.
func ImportParamsCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return paramsFromRows(records, "Line")
}

// ImportParamsXLSX imports parameters from the first sheet of an Excel
// workbook, one key | value pair per row.
func ImportParamsXLSX(path string) ImportResult {
	result := ImportResult{}

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

	return paramsFromRows(rows, "Row")
}

// ImportParamsYAML imports a flat YAML mapping of parameters.
func ImportParamsYAML(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read YAML: %v", err)}}
	}
	return paramsFromMap(raw)
}

// ImportParamsJSON imports a flat JSON object of parameters. Numbers are
// kept as json.Number so whole numbers stay exact.
func ImportParamsJSON(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read JSON: %v", err)}}
	}
	return paramsFromMap(raw)
}

// ImportParams picks the importer from the file extension.
func ImportParams(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ImportParamsCSV(path)
	case ".xlsx", ".xlsm":
		return ImportParamsXLSX(path)
	case ".yaml", ".yml":
		return ImportParamsYAML(path)
	case ".json":
		return ImportParamsJSON(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported parameter file type %q", filepath.Ext(path))}}
	}
}

// paramsFromMap checks the keys of a decoded mapping and converts names
// that the decoder typed as numbers back to strings.
func paramsFromMap(raw map[string]any) ImportResult {
	result := ImportResult{Params: map[string]any{}}
	if len(raw) == 0 {
		result.Errors = append(result.Errors, "No parameters found")
		return result
	}
	rules := ruleIndex()
	for k, v := range raw {
		key := normalizeKey(k)
		rule, ok := rules[key]
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Unknown parameter '%s', ignored", k))
			continue
		}
		if rule.Kind == validate.KindName {
			if _, isString := v.(string); !isString && v != nil {
				v = fmt.Sprint(v)
			}
		}
		result.Params[key] = v
	}
	return result
}

// paramsFromRows is the shared import logic for CSV and Excel data.
func paramsFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{Params: map[string]any{}}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	startRow := 0
	if headerKeys[normalizeKey(getCell(rows[0], 0))] && headerValues[normalizeKey(getCell(rows[0], 1))] {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	rules := ruleIndex()
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		key := normalizeKey(getCell(row, 0))
		rule, ok := rules[key]
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Unknown parameter '%s', ignored", rowLabel, getCell(row, 0)))
			continue
		}

		value := getCell(row, 1)
		if value == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing value for %s", rowLabel, key))
			continue
		}
		if _, dup := result.Params[key]; dup {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate parameter %s, using the last value", rowLabel, key))
		}

		if rule.Kind == validate.KindName {
			result.Params[key] = value
			continue
		}
		num, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Invalid number '%s' for %s", rowLabel, value, key))
			continue
		}
		result.Params[key] = num
	}

	if len(result.Params) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No parameters found")
	}
	return result
}
