package export

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"

	"github.com/piwi3910/kerfcut/internal/model"
)

// svgPixelsPerInch sets the rendered size; the viewBox stays in inches.
const svgPixelsPerInch = 8.0

// ExportSVG writes a single sheet layout as a standalone SVG document.
// Coordinates are in inches with the origin at the top-left corner.
func ExportSVG(w io.Writer, sheet model.Sheet) error {
	stock := sheet.Stock
	if stock.Width <= 0 || stock.Length <= 0 {
		return fmt.Errorf("sheet %q has no area", stock.Name)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%g" height="%g">`+"\n",
		stock.Width, stock.Length, stock.Width*svgPixelsPerInch, stock.Length*svgPixelsPerInch)
	fmt.Fprintf(bw, "<title>%s</title>\n", html.EscapeString(stock.Name))
	fmt.Fprintf(bw, `<rect class="sheet" x="0" y="0" width="%g" height="%g" fill="#d2b48c" stroke="#646464" stroke-width="0.2"/>`+"\n",
		stock.Width, stock.Length)

	for i, p := range sheet.Cuts {
		col := partColors[i%len(partColors)]
		fmt.Fprintf(bw, `<rect class="cut" x="%g" y="%g" width="%g" height="%g" fill="%s" stroke="#1e1e1e" stroke-width="0.1"/>`+"\n",
			p.X, p.Y, p.PW, p.PH, col.hex())

		size := math.Min(p.PW, p.PH) / 5
		if size < 0.5 {
			continue
		}
		fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="%g" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			p.X+p.PW/2, p.Y+p.PH/2, math.Min(size, 3), html.EscapeString(p.Label))
	}

	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}
