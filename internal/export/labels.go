package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/kerfcut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each cut label's QR code.
type LabelInfo struct {
	ID        string  `json:"id,omitempty"`
	Label     string  `json:"label"`
	Length    float64 `json:"length_in"`
	Width     float64 `json:"width_in"`
	Material  string  `json:"material,omitempty"`
	Sheet     int     `json:"sheet"`
	SheetName string  `json:"sheet_name"`
	Rotated   bool    `json:"rotated"`
	X         float64 `json:"x_in"`
	Y         float64 `json:"y_in"`
}

// Avery 5160 compatible layout: 3 columns by 10 rows on US Letter.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ErrNoCuts is returned when there are no placed cuts to label.
var ErrNoCuts = errors.New("no cuts placed to generate labels for")

// CollectLabelInfos lists one LabelInfo per placed cut, sheet by sheet.
func CollectLabelInfos(result model.OptimizationResult) []LabelInfo {
	var labels []LabelInfo
	for i, sheet := range result.Sheets {
		for _, p := range sheet.Cuts {
			labels = append(labels, LabelInfo{
				ID:        p.ID,
				Label:     p.Label,
				Length:    p.Length,
				Width:     p.Width,
				Material:  p.Material,
				Sheet:     i + 1,
				SheetName: sheet.Stock.Name,
				Rotated:   p.Rotated,
				X:         p.X,
				Y:         p.Y,
			})
		}
	}
	return labels
}

// ExportLabels writes a PDF of QR-coded labels for all placed cuts. Each
// QR code carries the LabelInfo as JSON.
func ExportLabels(path string, result model.OptimizationResult) error {
	if len(result.Sheets) == 0 {
		return ErrNoSheets
	}
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return ErrNoCuts
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, n int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", n)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, info.Label, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%s x %s", inches(info.Length), inches(info.Width))
	if info.Material != "" {
		dims += " " + info.Material
	}
	pdf.CellFormat(textW, 3.5, truncate(pdf, dims, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	where := fmt.Sprintf("Sheet %d @ (%s, %s)", info.Sheet, model.ToFraction(info.X), model.ToFraction(info.Y))
	pdf.CellFormat(textW, 3, where, "", 1, "L", false, 0, "")

	if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits in width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
