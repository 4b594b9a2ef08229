package engine

import (
	"sort"

	"github.com/piwi3910/kerfcut/internal/model"
)

// shelf tracks the open row while shelf-packing a sheet.
type shelf struct {
	y, x, height float64
	count        int
}

// optimizeShelf packs rows left to right, opening a new row below when a
// piece no longer fits the current one.
func optimizeShelf(stocks []model.Stock, cuts []model.Cut, kerf float64, tr Tracer) model.OptimizationResult {
	const algo = model.AlgorithmShelf

	remaining := model.ExpandCuts(cuts)
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].LongSide() > remaining[j].LongSide()
	})

	result := model.OptimizationResult{Algorithm: algo}
	usage := stockUsage{}

	for len(remaining) > 0 && len(result.Sheets) < maxSheets {
		stock, ok := selectBestStock(stocks, remaining, usage)
		if !ok {
			break
		}
		tr.Trace(Event{Kind: EventStockSelected, Algorithm: algo, Sheet: len(result.Sheets) + 1, Stock: stock.Name})
		usage.open(stock)

		sheet, left := packShelves(stock, remaining, kerf)
		if len(sheet.Cuts) > 0 {
			result.Sheets = append(result.Sheets, sheet)
			traceSheet(tr, algo, len(result.Sheets), sheet, left)
		}

		remaining = left
		if len(sheet.Cuts) == 0 {
			break
		}
	}

	result.Unplaced = remaining
	traceUnplaced(tr, algo, remaining)
	return result
}

// packShelves fills one sheet row by row.
func packShelves(stock model.Stock, cuts []model.Cut, kerf float64) (model.Sheet, []model.Cut) {
	sheet := model.Sheet{Stock: stock}
	sheetW, sheetH := stock.Width, stock.Length

	var row shelf
	var left []model.Cut

	for _, c := range cuts {
		if !model.MaterialCompatible(c.Material, stock.Material) {
			left = append(left, c)
			continue
		}

		// Longer side vertical; square cuts count as rotated.
		rotated := c.Length <= c.Width
		pw, ph := c.Width, c.Length
		if rotated {
			pw, ph = c.Length, c.Width
		}
		if row.x+pw > sheetW && row.x+ph <= sheetW {
			pw, ph = ph, pw
			rotated = !rotated
		}

		if x, y, ok := row.fit(pw, ph, sheetW, sheetH, kerf); ok {
			row.place(x, pw, ph)
			sheet.Cuts = append(sheet.Cuts, model.Place(c, x, y, rotated))
			continue
		}

		if row.count > 0 {
			next := shelf{y: row.y + row.height + kerf}
			if x, y, ok := next.fit(pw, ph, sheetW, sheetH, kerf); ok {
				row = next
				row.place(x, pw, ph)
				sheet.Cuts = append(sheet.Cuts, model.Place(c, x, y, rotated))
				continue
			}
		}

		left = append(left, c)
	}

	return sheet, left
}

// fit returns where a pw x ph piece would go in the row, with kerf between
// neighbours.
func (s shelf) fit(pw, ph, sheetW, sheetH, kerf float64) (x, y float64, ok bool) {
	x = s.x
	if s.count > 0 {
		x += kerf
	}
	y = s.y
	return x, y, x+pw <= sheetW && y+ph <= sheetH
}

func (s *shelf) place(x, pw, ph float64) {
	s.x = x + pw
	if ph > s.height {
		s.height = ph
	}
	s.count++
}
