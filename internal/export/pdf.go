// Package export renders optimization results as PDF reports, part labels,
// CSV and Excel cut lists, SVG and DXF drawings and HTML charts.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/kerfcut/internal/engine"
	"github.com/piwi3910/kerfcut/internal/model"
)

// ErrNoSheets is returned when a result has nothing to draw.
var ErrNoSheets = errors.New("no sheets to export")

// partColor represents an RGB color for a placed cut.
type partColor struct {
	R, G, B int
}

// partColors is shared by the PDF, SVG and chart renderers.
var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func (c partColor) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// inches formats a length as a fractional inch string, e.g. 23 1/2".
func inches(v float64) string {
	return model.ToFraction(v) + `"`
}

// Page layout constants (US Letter landscape in mm).
const (
	pageWidth    = 279.4
	pageHeight   = 215.9
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a PDF with one page per sheet, each with a scaled layout
// diagram and its reusable offcuts, followed by a summary page.
func ExportPDF(path string, result model.OptimizationResult, kerf float64) error {
	if len(result.Sheets) == 0 {
		return ErrNoSheets
	}

	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, sheet := range result.Sheets {
		pdf.AddPage()
		renderSheetPage(pdf, sheet, model.DetectOffcuts(sheet, i, kerf), i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, kerf)

	return pdf.OutputFileAndClose(path)
}

func renderSheetPage(pdf *fpdf.Fpdf, sheet model.Sheet, offcuts []model.Offcut, sheetNum int) {
	stock := sheet.Stock

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %s (%s x %s)", sheetNum, stock.Name, inches(stock.Length), inches(stock.Width))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Cuts: %d | Used area: %.1f sq in | Total area: %.1f sq in | Efficiency: %.1f%%",
		len(sheet.Cuts), sheet.UsedArea(), sheet.TotalArea(), sheet.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/stock.Width, drawHeight/stock.Length)

	canvasW := stock.Width * scale
	canvasH := stock.Length * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background (wood color).
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, o := range offcuts {
		ox, oy := offsetX+o.X*scale, offsetY+o.Y*scale
		ow, oh := o.Width*scale, o.Length*scale
		pdf.SetFillColor(235, 245, 235)
		pdf.SetDrawColor(60, 140, 60)
		pdf.SetLineWidth(0.3)
		pdf.Rect(ox, oy, ow, oh, "FD")
		drawHatchPattern(pdf, ox, oy, ow, oh)
	}

	for i, p := range sheet.Cuts {
		col := partColors[i%len(partColors)]
		pw, ph := p.PW*scale, p.PH*scale
		px, py := offsetX+p.X*scale, offsetY+p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw <= 15 || ph <= 8 {
			continue
		}
		pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
		pdf.SetTextColor(0, 0, 0)

		label := p.Label
		dims := fmt.Sprintf("%s x %s", model.ToFraction(p.Length), model.ToFraction(p.Width))
		labelW := pdf.GetStringWidth(label)
		dimsW := pdf.GetStringWidth(dims)

		if labelW < pw-2 {
			pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
		if ph > 14 && dimsW < pw-2 {
			pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
			pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
		}
	}

	drawDimensionAnnotations(pdf, stock, offsetX, offsetY, canvasW, canvasH)
	drawCutLegend(pdf, sheet, offsetY+canvasH+5)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark offcuts.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(60, 140, 60)
	pdf.SetLineWidth(0.15)

	const spacing = 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations labels the sheet width below and its length to
// the left, rotated.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, stock model.Stock, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := inches(stock.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	lengthLabel := inches(stock.Length)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX-3-lLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func drawCutLegend(pdf *fpdf.Fpdf, sheet model.Sheet, startY float64) {
	if len(sheet.Cuts) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Cuts placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range sheet.Cuts {
		col := partColors[i%len(partColors)]
		label := fmt.Sprintf("%s (%s x %s)", p.Label, model.ToFraction(p.Length), model.ToFraction(p.Width))
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, result model.OptimizationResult, kerf float64) {
	stats := engine.CalculateStats(result)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Optimization Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	algorithm := string(result.Algorithm)
	if algorithm == "" {
		algorithm = "-"
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Algorithm", algorithm},
		{"Kerf", inches(kerf)},
		{"Sheets Used", fmt.Sprintf("%d", stats.Sheets)},
		{"Cuts Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Unplaced Cuts", fmt.Sprintf("%d", stats.Unplaced)},
		{"Waste", stats.Waste.StringFixed(1) + "%"},
		{"Reusable Offcut Area", fmt.Sprintf("%.1f sq in", model.TotalOffcutArea(model.DetectAllOffcuts(result, kerf)))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 50, 30, 35, 50}
	headers := []string{"Sheet", "Stock", "Dimensions", "Cuts", "Efficiency", "Used / Total sq in"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, sheet := range result.Sheets {
		// Continue the table on a new page once the page is full.
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			sheet.Stock.Name,
			fmt.Sprintf("%s x %s", inches(sheet.Stock.Length), inches(sheet.Stock.Width)),
			fmt.Sprintf("%d", len(sheet.Cuts)),
			fmt.Sprintf("%.1f%%", sheet.Efficiency()),
			fmt.Sprintf("%.0f / %.0f", sheet.UsedArea(), sheet.TotalArea()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Cuts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, c := range result.Unplaced {
			if y > pageHeight-marginBottom-5 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %s x %s", c.Label, inches(c.Length), inches(c.Width))
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by kerfcut", "", 0, "C", false, 0, "")
}

// labelFontSize returns a font size that fits a w x h rectangle.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
