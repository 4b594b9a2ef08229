package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/kerfcut/internal/importer"
	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestExportCSV(t *testing.T) {
	result := buildTestResult()
	result.Unplaced = []model.Cut{{Label: "Too Big", Length: 120, Width: 60, Quantity: 1}}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, result); err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("expected header + 4 placed + 1 unplaced rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(cutListHeader, ",") {
		t.Errorf("unexpected header: %v", records[0])
	}
	top := records[2]
	if top[2] != "Top" || top[6] != "20.125" || top[8] != "24" || top[9] != "12" || top[10] != "true" {
		t.Errorf("unexpected row for rotated cut: %v", top)
	}
	last := records[5]
	if last[0] != "" || last[2] != "Too Big" {
		t.Errorf("unexpected unplaced row: %v", last)
	}
}

func TestExportCSV_ReimportsAsCuts(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, buildTestResult()); err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}

	imported := importer.ImportCutsCSVFromReader(&buf, ',')
	if !imported.OK() {
		t.Fatalf("re-import failed: %v", imported.Errors)
	}
	if len(imported.Cuts) != 4 {
		t.Fatalf("expected 4 cuts, got %d", len(imported.Cuts))
	}
	if c := imported.Cuts[0]; c.Label != "Side Panel" || c.Length != 30 || c.Width != 20 {
		t.Errorf("unexpected first cut: %+v", c)
	}
}

func TestExportSVG(t *testing.T) {
	result := buildTestResult()
	result.Sheets[0].Cuts[0].Label = "Side <A&B>"

	var buf bytes.Buffer
	if err := ExportSVG(&buf, result.Sheets[0]); err != nil {
		t.Fatalf("ExportSVG returned error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Fatalf("output is not an SVG document:\n%s", out)
	}
	if !strings.Contains(out, `viewBox="0 0 48 96"`) {
		t.Error("expected a viewBox in inches")
	}
	if got := strings.Count(out, `class="cut"`); got != 3 {
		t.Errorf("expected 3 cut rects, got %d", got)
	}
	if !strings.Contains(out, "Side &lt;A&amp;B&gt;") {
		t.Error("labels must be escaped")
	}
	if !strings.Contains(out, `x="20.125" y="0" width="24" height="12"`) {
		t.Error("rotated cut should use its placed dimensions")
	}
}

func TestExportSVG_NoArea(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportSVG(&buf, model.Sheet{Stock: model.Stock{Name: "Empty"}}); err == nil {
		t.Fatal("expected error for a sheet without area")
	}
}

func TestExportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cutlist.xlsx")
	if err := ExportExcel(path, buildTestResult()); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != cutListSheet || sheets[1] != summarySheet {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	rows, err := f.GetRows(cutListSheet)
	if err != nil {
		t.Fatalf("failed to read cut list: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header + 4 rows, got %d", len(rows))
	}
	if rows[1][2] != "Side Panel" || rows[1][4] != "30" {
		t.Errorf("unexpected first row: %v", rows[1])
	}

	summary, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("failed to read summary: %v", err)
	}
	found := false
	for _, row := range summary {
		if len(row) >= 2 && row[0] == "Sheets" && row[1] == "2" {
			found = true
		}
	}
	if !found {
		t.Errorf("summary is missing the sheet count: %v", summary)
	}
}

func TestExportDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	if err := ExportDXF(path, buildTestResult()); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)

	// Every outline is a rectangle, so the drawing imports back.
	imported := importer.ImportDXF(path)
	if !imported.OK() {
		t.Fatalf("re-import failed: %v", imported.Errors)
	}
	found := false
	for _, c := range imported.Cuts {
		if c.Length == 30 && c.Width == 20 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the 30x20 side panel among %+v", imported.Cuts)
	}
}

func TestExportDXF_EmptyResult(t *testing.T) {
	if err := ExportDXF(filepath.Join(t.TempDir(), "empty.dxf"), model.OptimizationResult{}); err != ErrNoSheets {
		t.Fatalf("expected ErrNoSheets, got %v", err)
	}
}

func TestExportChart(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportChart(&buf, buildTestResult()); err != nil {
		t.Fatalf("ExportChart returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"<html", "echarts", "Sheet utilization", "1: 4x8 Plywood", "2: 4x4 MDF"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart output missing %q", want)
		}
	}
}

func TestExportChart_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportChart(&buf, model.OptimizationResult{}); err != ErrNoSheets {
		t.Fatalf("expected ErrNoSheets, got %v", err)
	}
}
