package engine

import "github.com/piwi3910/kerfcut/internal/model"

// fitsInRect reports whether a cutW x cutH piece fits rect. Kerf is charged
// on a side only when the piece leaves material to saw off on that side.
func fitsInRect(cutW, cutH float64, r model.Rect, kerf float64) bool {
	requiredW := cutW
	if cutW < r.W {
		requiredW += kerf
	}
	requiredH := cutH
	if cutH < r.H {
		requiredH += kerf
	}
	return requiredW <= r.W && requiredH <= r.H
}

// fitsEitherWay reports whether a cut fits rect in some orientation.
func fitsEitherWay(c model.Cut, r model.Rect, kerf float64) bool {
	return fitsInRect(c.Width, c.Length, r, kerf) || fitsInRect(c.Length, c.Width, r, kerf)
}

// splitRectangle returns both guillotine splits of r after a cutW x cutH
// piece is placed at its origin. Pieces with no more than kerf of slack are
// dropped.
func splitRectangle(r model.Rect, cutW, cutH, kerf float64) (horizontal, vertical []model.Rect) {
	rightSpace := r.W - cutW
	bottomSpace := r.H - cutH

	if rightSpace > kerf {
		horizontal = append(horizontal, model.Rect{X: r.X + cutW + kerf, Y: r.Y, W: rightSpace - kerf, H: cutH})
	}
	if bottomSpace > kerf {
		horizontal = append(horizontal, model.Rect{X: r.X, Y: r.Y + cutH + kerf, W: r.W, H: bottomSpace - kerf})
	}

	if rightSpace > kerf {
		vertical = append(vertical, model.Rect{X: r.X + cutW + kerf, Y: r.Y, W: rightSpace - kerf, H: r.H})
	}
	if bottomSpace > kerf {
		vertical = append(vertical, model.Rect{X: r.X, Y: r.Y + cutH + kerf, W: cutW, H: bottomSpace - kerf})
	}

	return horizontal, vertical
}

// replaceRect returns a new slice with rects[i] replaced by repl. The input
// is left untouched so speculative packings never share backing arrays.
func replaceRect(rects []model.Rect, i int, repl []model.Rect) []model.Rect {
	out := make([]model.Rect, 0, len(rects)-1+len(repl))
	out = append(out, rects[:i]...)
	out = append(out, repl...)
	out = append(out, rects[i+1:]...)
	return out
}

// stockCanFitCut ignores kerf: a cut as large as the sheet needs no saw pass.
func stockCanFitCut(s model.Stock, c model.Cut) bool {
	return (c.Width <= s.Width && c.Length <= s.Length) ||
		(c.Length <= s.Width && c.Width <= s.Length)
}
