// Package importer reads cut lists and stock lists from CSV, Excel and DXF
// files. It supports automatic delimiter detection, flexible column mapping,
// case-insensitive header recognition and fractional inch dimensions.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Only one of Cuts
// or Stocks is filled, depending on what was imported.
type ImportResult struct {
	Cuts     []model.Cut
	Stocks   []model.Stock
	Errors   []string
	Warnings []string
}

// OK reports whether the import produced no errors.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0
}

// kind selects what a row describes.
type kind int

const (
	kindCut kind = iota
	kindStock
)

func (k kind) defaultLabel(n int) string {
	if k == kindStock {
		return fmt.Sprintf("Stock %d", n)
	}
	return fmt.Sprintf("Part %d", n)
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Length   int
	Width    int
	Quantity int
	Material int
}

// positional is used when the first row is not a header.
var positional = ColumnMapping{Label: 0, Length: 1, Width: 2, Quantity: 3, Material: 4}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "part", "part name", "description", "desc", "piece", "item", "stock"},
	"length":   {"length", "len", "l", "height", "h"},
	"width":    {"width", "w"},
	"quantity": {"quantity", "qty", "count", "num", "pcs", "pieces"},
	"material": {"material", "mat", "type"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter. It tries
// comma, semicolon, tab and pipe; the delimiter that produces the most
// consistent multi-column rows wins.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0

	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := readCSV(bytes.NewReader(data), delim)
		if err != nil || len(records) == 0 {
			continue
		}
		cols := len(records[0])
		if cols < 2 {
			continue
		}

		consistent := 0
		for _, row := range records {
			if len(row) == cols {
				consistent++
			}
		}
		if score := consistent*10 + cols; score > bestScore {
			best, bestScore = delim, score
		}
	}

	return best
}

// DetectColumns examines a header row and returns a ColumnMapping and true,
// or the positional mapping and false when the row is not a header.
func DetectColumns(row []string) (ColumnMapping, bool) {
	m := ColumnMapping{Label: -1, Length: -1, Width: -1, Quantity: -1, Material: -1}
	slots := map[string]*int{
		"label":    &m.Label,
		"length":   &m.Length,
		"width":    &m.Width,
		"quantity": &m.Quantity,
		"material": &m.Material,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if *slots[role] == -1 {
					*slots[role] = i
				}
			}
		}
	}

	if !isHeader {
		return positional, false
	}
	return m, true
}

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

// record is one parsed row before it becomes a Cut or a Stock.
type record struct {
	label    string
	length   float64
	width    float64
	quantity int
	material string
}

// parseRow extracts a record from row. It returns the record, an error
// message and a warning message.
func parseRow(row []string, m ColumnMapping, k kind, rowLabel string, n int) (record, string, string) {
	rec := record{label: getCell(row, m.Label), material: getCell(row, m.Material)}
	if rec.label == "" {
		rec.label = k.defaultLabel(n + 1)
	}

	var err error
	lengthStr := getCell(row, m.Length)
	if lengthStr == "" {
		return record{}, fmt.Sprintf("%s: Missing length value", rowLabel), ""
	}
	if rec.length, err = model.ParseFraction(lengthStr); err != nil {
		return record{}, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), ""
	}

	widthStr := getCell(row, m.Width)
	if widthStr == "" {
		return record{}, fmt.Sprintf("%s: Missing width value", rowLabel), ""
	}
	if rec.width, err = model.ParseFraction(widthStr); err != nil {
		return record{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}

	var warning string
	qtyStr := getCell(row, m.Quantity)
	if qtyStr == "" {
		rec.quantity = 1
		warning = fmt.Sprintf("%s: Missing quantity, defaulting to 1", rowLabel)
	} else if rec.quantity, err = strconv.Atoi(qtyStr); err != nil {
		return record{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}

	if rec.length <= 0 || rec.width <= 0 || rec.quantity <= 0 {
		return record{}, fmt.Sprintf("%s: Length, width, and quantity must be positive", rowLabel), ""
	}

	return rec, "", warning
}

// importRows is the shared import logic for CSV and Excel data.
func importRows(rows [][]string, k kind, rowPrefix string, warnings []string) ImportResult {
	result := ImportResult{Warnings: warnings}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-numeric length column.
		if _, err := model.ParseFraction(getCell(rows[0], positional.Length)); err != nil {
			start = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	count := 0
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		rec, errMsg, warning := parseRow(row, mapping, k, rowLabel, count)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		count++
		switch k {
		case kindStock:
			result.Stocks = append(result.Stocks, model.NewStock(rec.label, rec.length, rec.width, rec.quantity, rec.material))
		default:
			result.Cuts = append(result.Cuts, model.NewCut(rec.label, rec.length, rec.width, rec.quantity, rec.material))
		}
	}

	return result
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'
	return reader.ReadAll()
}

func importCSVFile(path string, k kind) ImportResult {
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
	if delimiter != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", name))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	return importRows(records, k, "Line", result.Warnings)
}

func importCSVReader(r io.Reader, delimiter rune, k kind) ImportResult {
	records, err := readCSV(r, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importRows(records, k, "Line", nil)
}

func importExcelFile(path string, k kind) ImportResult {
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
	return importRows(rows, k, "Row", nil)
}

// ImportCutsCSV imports cuts from a CSV file with any supported delimiter.
func ImportCutsCSV(path string) ImportResult {
	return importCSVFile(path, kindCut)
}

// ImportCutsCSVFromReader imports cuts from r using a known delimiter.
func ImportCutsCSVFromReader(r io.Reader, delimiter rune) ImportResult {
	return importCSVReader(r, delimiter, kindCut)
}

// ImportCutsExcel imports cuts from the first sheet of an Excel workbook.
func ImportCutsExcel(path string) ImportResult {
	return importExcelFile(path, kindCut)
}

// ImportStocksCSV imports stock sheets from a CSV file.
func ImportStocksCSV(path string) ImportResult {
	return importCSVFile(path, kindStock)
}

// ImportStocksCSVFromReader imports stock sheets from r using a known delimiter.
func ImportStocksCSVFromReader(r io.Reader, delimiter rune) ImportResult {
	return importCSVReader(r, delimiter, kindStock)
}

// ImportStocksExcel imports stock sheets from the first sheet of a workbook.
func ImportStocksExcel(path string) ImportResult {
	return importExcelFile(path, kindStock)
}

// ImportCuts picks an importer by file extension: .csv, .tsv and .txt are
// read as delimited text, .xlsx and .xlsm as Excel, .dxf as drawings.
func ImportCuts(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportCutsExcel(path)
	case ".dxf":
		return ImportDXF(path)
	case ".csv", ".tsv", ".txt":
		return ImportCutsCSV(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type '%s'", filepath.Ext(path))}}
	}
}

// ImportStocks picks a stock importer by file extension.
func ImportStocks(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportStocksExcel(path)
	case ".csv", ".tsv", ".txt":
		return ImportStocksCSV(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type '%s'", filepath.Ext(path))}}
	}
}
