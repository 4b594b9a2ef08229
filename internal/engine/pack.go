package engine

import (
	"sort"

	"github.com/piwi3910/kerfcut/internal/model"
)

// placement is a candidate position for one cut.
type placement struct {
	rectIndex int
	rotated   bool
	score     float64
}

// packResult is the outcome of packing one sheet.
type packResult struct {
	sheet    model.Sheet
	placed   []model.Cut
	unplaced []model.Cut
	// firstRotated is set when the first cut of the pass was placed.
	firstRotated *bool
}

// preferredRotation returns the rotation of the first cut on the sheet that
// shares label, or nil.
func preferredRotation(label string, placed []model.PlacedCut) *bool {
	for i := range placed {
		if placed[i].Label == label {
			return &placed[i].Rotated
		}
	}
	return nil
}

// findBestPlacement scans every free rect in both orientations and keeps the
// lowest score. Earlier candidates win ties.
func findBestPlacement(c model.Cut, rects []model.Rect, kerf float64, remaining []model.Cut, placed []model.PlacedCut) (placement, bool) {
	pref := preferredRotation(c.Label, placed)

	var best placement
	found := false
	consider := func(i int, rotated bool, w, h float64) {
		if !fitsInRect(w, h, rects[i], kerf) {
			return
		}
		score := scorePlacement(w, h, rects[i], kerf, remaining)
		if pref != nil && *pref != rotated {
			score += orientationPenalty
		}
		if !found || score < best.score {
			best = placement{rectIndex: i, rotated: rotated, score: score}
			found = true
		}
	}

	for i := range rects {
		consider(i, false, c.Width, c.Length)
		consider(i, true, c.Length, c.Width)
	}
	return best, found
}

// scoringPool is what a cut's placement should leave room for: the cuts
// after it plus those already rejected from this sheet.
func scoringPool(after, unplaced []model.Cut) []model.Cut {
	pool := make([]model.Cut, 0, len(after)+len(unplaced))
	pool = append(pool, after...)
	return append(pool, unplaced...)
}

func sortRects(rects []model.Rect) {
	sort.SliceStable(rects, func(i, j int) bool {
		if rects[i].Y != rects[j].Y {
			return rects[i].Y < rects[j].Y
		}
		return rects[i].X < rects[j].X
	})
}

// packSheet fills one sheet of stock from cuts in order. When force is set
// the first cut takes that orientation if it still fits the chosen rect.
// cuts is never modified.
func packSheet(stock model.Stock, cuts []model.Cut, kerf float64, force *bool) packResult {
	res := packResult{sheet: model.NewSheet(stock)}
	sheet := &res.sheet

	for i, c := range cuts {
		if !model.MaterialCompatible(c.Material, stock.Material) {
			res.unplaced = append(res.unplaced, c)
			continue
		}

		pool := scoringPool(cuts[i+1:], res.unplaced)
		p, ok := findBestPlacement(c, sheet.Rects, kerf, pool, sheet.Cuts)
		if !ok {
			res.unplaced = append(res.unplaced, c)
			continue
		}

		r := sheet.Rects[p.rectIndex]
		if i == 0 && force != nil {
			w, h := c.Width, c.Length
			if *force {
				w, h = c.Length, c.Width
			}
			if fitsInRect(w, h, r, kerf) {
				p.rotated = *force
			}
		}

		pc := model.Place(c, r.X, r.Y, p.rotated)
		sheet.Cuts = append(sheet.Cuts, pc)
		res.placed = append(res.placed, c)
		if i == 0 {
			rot := p.rotated
			res.firstRotated = &rot
		}

		horizontal, vertical := splitRectangle(r, pc.PW, pc.PH, kerf)
		next := horizontal
		if scoreRectangles(vertical, pool, kerf) > scoreRectangles(horizontal, pool, kerf) {
			next = vertical
		}
		sheet.Rects = replaceRect(sheet.Rects, p.rectIndex, next)
		sortRects(sheet.Rects)
	}

	return res
}
