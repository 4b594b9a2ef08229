package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock represents an available sheet type to cut from.
type Stock struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Length   float64 `json:"length" yaml:"length"` // inches
	Width    float64 `json:"width" yaml:"width"`   // inches
	Quantity int     `json:"quantity" yaml:"quantity"`
	Material string  `json:"material,omitempty" yaml:"material,omitempty"` // empty = any
}

func NewStock(name string, length, width float64, qty int, material string) Stock {
	return Stock{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Width:    width,
		Quantity: qty,
		Material: material,
	}
}

// Area returns the sheet area in square inches.
func (s Stock) Area() float64 {
	return s.Length * s.Width
}

// Cut represents a required part.
type Cut struct {
	ID       string  `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	Length   float64 `json:"length" yaml:"length"` // inches
	Width    float64 `json:"width" yaml:"width"`   // inches
	Quantity int     `json:"quantity" yaml:"quantity"`
	Material string  `json:"material,omitempty" yaml:"material,omitempty"`
}

func NewCut(label string, length, width float64, qty int, material string) Cut {
	return Cut{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Length:   length,
		Width:    width,
		Quantity: qty,
		Material: material,
	}
}

// Area returns the part area in square inches.
func (c Cut) Area() float64 {
	return c.Length * c.Width
}

// LongSide returns the larger of the two dimensions.
func (c Cut) LongSide() float64 {
	if c.Length > c.Width {
		return c.Length
	}
	return c.Width
}

// FillMissingIDs gives every stock and cut that has no ID a generated one.
func FillMissingIDs(stocks []Stock, cuts []Cut) {
	for i := range stocks {
		if stocks[i].ID == "" {
			stocks[i].ID = uuid.New().String()[:8]
		}
	}
	for i := range cuts {
		if cuts[i].ID == "" {
			cuts[i].ID = uuid.New().String()[:8]
		}
	}
}

// MaterialCompatible reports whether a cut may go on a stock. An empty
// material on either side matches anything.
func MaterialCompatible(cutMaterial, stockMaterial string) bool {
	return cutMaterial == "" || stockMaterial == "" || cutMaterial == stockMaterial
}

// ExpandCuts turns every cut of quantity N into N cuts of quantity 1.
func ExpandCuts(cuts []Cut) []Cut {
	var expanded []Cut
	for _, c := range cuts {
		for i := 0; i < c.Quantity; i++ {
			cp := c
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	return expanded
}

// TotalQuantity sums the requested quantity of all cuts.
func TotalQuantity(cuts []Cut) int {
	n := 0
	for _, c := range cuts {
		n += c.Quantity
	}
	return n
}

// Rect is a free region of a sheet.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Area returns w*h.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// PlacedCut is a cut with its resolved position on a sheet.
type PlacedCut struct {
	Cut     `yaml:",inline"`
	X       float64 `json:"x" yaml:"x"`   // from left edge
	Y       float64 `json:"y" yaml:"y"`   // from top edge
	PW      float64 `json:"pw" yaml:"pw"` // placed width
	PH      float64 `json:"ph" yaml:"ph"` // placed height
	Rotated bool    `json:"rotated" yaml:"rotated"`
}

// Place builds a PlacedCut at (x, y). A normal placement spans the cut's
// width horizontally and its length vertically.
func Place(c Cut, x, y float64, rotated bool) PlacedCut {
	pw, ph := c.Width, c.Length
	if rotated {
		pw, ph = c.Length, c.Width
	}
	return PlacedCut{Cut: c, X: x, Y: y, PW: pw, PH: ph, Rotated: rotated}
}

// Area returns the placed area.
func (p PlacedCut) Area() float64 {
	return p.PW * p.PH
}

// Sheet is one opened instance of a stock.
type Sheet struct {
	Stock Stock       `json:"stock" yaml:"stock"`
	Cuts  []PlacedCut `json:"cuts" yaml:"cuts"`
	Rects []Rect      `json:"rects,omitempty" yaml:"rects,omitempty"`
}

// NewSheet opens a sheet whose free space is the whole stock.
func NewSheet(stock Stock) Sheet {
	return Sheet{
		Stock: stock,
		Rects: []Rect{{X: 0, Y: 0, W: stock.Width, H: stock.Length}},
	}
}

// UsedArea returns the total area covered by placed cuts.
func (s Sheet) UsedArea() float64 {
	var total float64
	for _, c := range s.Cuts {
		total += c.Area()
	}
	return total
}

// TotalArea returns the stock sheet area.
func (s Sheet) TotalArea() float64 {
	return s.Stock.Area()
}

// Efficiency returns the usage percentage.
func (s Sheet) Efficiency() float64 {
	ta := s.TotalArea()
	if ta == 0 {
		return 0
	}
	return (s.UsedArea() / ta) * 100.0
}

// Algorithm names an optimization strategy.
type Algorithm string

const (
	AlgorithmGuillotine Algorithm = "guillotine" // Guillotine best-fit with dual first-cut pass
	AlgorithmShelf      Algorithm = "shelf"      // Row-by-row shelf packing
	AlgorithmOptimal    Algorithm = "optimal"    // Time-bounded branch-and-bound
	AlgorithmBest       Algorithm = "best"       // Run all and keep the winner
)

// Algorithms lists every selectable strategy.
var Algorithms = []Algorithm{AlgorithmGuillotine, AlgorithmShelf, AlgorithmOptimal, AlgorithmBest}

// OptimizationResult is the output of one optimizer run.
type OptimizationResult struct {
	Sheets    []Sheet   `json:"sheets" yaml:"sheets"`
	Unplaced  []Cut     `json:"unplaced" yaml:"unplaced"`
	Algorithm Algorithm `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
}

// PlacedCount returns the number of cuts placed across all sheets.
func (r OptimizationResult) PlacedCount() int {
	n := 0
	for _, s := range r.Sheets {
		n += len(s.Cuts)
	}
	return n
}

// OptimizationStats summarizes a result.
type OptimizationStats struct {
	Sheets   int             `json:"sheets"`
	Used     float64         `json:"used"`
	Total    float64         `json:"total"`
	Waste    decimal.Decimal `json:"waste"` // percent, one decimal
	Unplaced int             `json:"unplaced"`
}

// CutSettings holds optimizer configuration.
type CutSettings struct {
	Algorithm       Algorithm     `json:"algorithm" yaml:"algorithm"`
	Kerf            float64       `json:"kerf" yaml:"kerf"`                           // blade width in inches
	SearchTimeLimit time.Duration `json:"search_time_limit" yaml:"search_time_limit"` // 0 = tiered by cut count
}

func DefaultSettings() CutSettings {
	return CutSettings{
		Algorithm: AlgorithmBest,
		Kerf:      0.125,
	}
}

// Project ties everything together for save/load.
type Project struct {
	Name     string              `json:"name" yaml:"name"`
	Cuts     []Cut               `json:"cuts" yaml:"cuts"`
	Stocks   []Stock             `json:"stocks" yaml:"stocks"`
	Settings CutSettings         `json:"settings" yaml:"settings"`
	Result   *OptimizationResult `json:"result,omitempty" yaml:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Cuts:     []Cut{},
		Stocks:   []Stock{},
		Settings: DefaultSettings(),
	}
}
