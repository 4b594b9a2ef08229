package engine

import (
	"sort"

	"github.com/piwi3910/kerfcut/internal/model"
)

// maxSheets bounds every multi-sheet loop.
const maxSheets = 50

// sortByArea orders unit cuts by area, then longer side, both descending.
func sortByArea(cuts []model.Cut) {
	sort.SliceStable(cuts, func(i, j int) bool {
		ai, aj := cuts[i].Area(), cuts[j].Area()
		if ai != aj {
			return ai > aj
		}
		return cuts[i].LongSide() > cuts[j].LongSide()
	})
}

// optimizeGuillotine packs sheet by sheet with the best-fit scorer. Each
// sheet is packed twice: once freely and once with the first cut turned the
// other way. The second pass wins only if it places more cuts, or the same
// number with more area.
func optimizeGuillotine(stocks []model.Stock, cuts []model.Cut, kerf float64, tr Tracer) model.OptimizationResult {
	const algo = model.AlgorithmGuillotine

	remaining := model.ExpandCuts(cuts)
	sortByArea(remaining)

	result := model.OptimizationResult{Algorithm: algo}
	usage := stockUsage{}

	for len(remaining) > 0 && len(result.Sheets) < maxSheets {
		stock, ok := selectBestStock(stocks, remaining, usage)
		if !ok {
			break
		}
		tr.Trace(Event{Kind: EventStockSelected, Algorithm: algo, Sheet: len(result.Sheets) + 1, Stock: stock.Name})

		best := packSheet(stock, remaining, kerf, nil)
		if best.firstRotated != nil {
			flipped := !*best.firstRotated
			alt := packSheet(stock, remaining, kerf, &flipped)
			if betterPack(alt, best) {
				best = alt
			}
		}

		usage.open(stock)

		if len(best.sheet.Cuts) > 0 {
			best.sheet.Rects = nil
			result.Sheets = append(result.Sheets, best.sheet)
			traceSheet(tr, algo, len(result.Sheets), best.sheet, best.unplaced)
		}

		remaining = best.unplaced
		if len(best.sheet.Cuts) == 0 {
			break
		}
	}

	result.Unplaced = remaining
	traceUnplaced(tr, algo, remaining)
	return result
}

// betterPack reports whether a beats b strictly.
func betterPack(a, b packResult) bool {
	if len(a.placed) != len(b.placed) {
		return len(a.placed) > len(b.placed)
	}
	return a.sheet.UsedArea() > b.sheet.UsedArea()
}
