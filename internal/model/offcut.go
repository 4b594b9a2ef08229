package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left over after cutting.
type Offcut struct {
	ID         string  `json:"id" yaml:"id"`
	SheetName  string  `json:"sheet_name" yaml:"sheet_name"`
	SheetIndex int     `json:"sheet_index" yaml:"sheet_index"`
	Material   string  `json:"material,omitempty" yaml:"material,omitempty"`
	X          float64 `json:"x" yaml:"x"`
	Y          float64 `json:"y" yaml:"y"`
	Width      float64 `json:"width" yaml:"width"`   // horizontal extent
	Length     float64 `json:"length" yaml:"length"` // vertical extent
}

// Area returns the offcut area in square inches.
func (o Offcut) Area() float64 {
	return o.Width * o.Length
}

// ToStock converts an offcut into a single stock sheet for reuse.
func (o Offcut) ToStock() Stock {
	return NewStock("Offcut "+o.SheetName, o.Length, o.Width, 1, o.Material)
}

// MinOffcutDimension is the smallest side (inches) worth keeping.
const MinOffcutDimension = 6.0

// MinOffcutArea is the smallest area (sq in) worth keeping.
const MinOffcutArea = 144.0

// DetectOffcuts finds the strips to the right of and below the placed cuts
// that are large enough to be reused.
func DetectOffcuts(s Sheet, sheetIndex int, kerf float64) []Offcut {
	sheetW := s.Stock.Width
	sheetH := s.Stock.Length

	newOffcut := func(x, y, w, h float64) Offcut {
		return Offcut{
			ID:         uuid.New().String()[:8],
			SheetName:  s.Stock.Name,
			SheetIndex: sheetIndex,
			Material:   s.Stock.Material,
			X:          x,
			Y:          y,
			Width:      w,
			Length:     h,
		}
	}

	if len(s.Cuts) == 0 {
		return []Offcut{newOffcut(0, 0, sheetW, sheetH)}
	}

	var maxRight, maxBottom float64
	for _, c := range s.Cuts {
		maxRight = math.Max(maxRight, c.X+c.PW+kerf)
		maxBottom = math.Max(maxBottom, c.Y+c.PH+kerf)
	}

	usable := func(w, h float64) bool {
		return w >= MinOffcutDimension && h >= MinOffcutDimension && w*h >= MinOffcutArea
	}

	var offcuts []Offcut

	rightW := sheetW - maxRight
	if usable(rightW, sheetH) {
		offcuts = append(offcuts, newOffcut(maxRight, 0, rightW, sheetH))
	}

	// Bottom strip stops at the parts' right edge so it never overlaps the right strip.
	bottomH := sheetH - maxBottom
	bottomW := math.Min(maxRight, sheetW)
	if usable(bottomW, bottomH) {
		offcuts = append(offcuts, newOffcut(0, maxBottom, bottomW, bottomH))
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// DetectAllOffcuts finds offcuts across all sheets in a result.
func DetectAllOffcuts(result OptimizationResult, kerf float64) []Offcut {
	var all []Offcut
	for i, s := range result.Sheets {
		all = append(all, DetectOffcuts(s, i, kerf)...)
	}
	return all
}

// TotalOffcutArea returns the combined area of the offcuts.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
