package model

import "github.com/google/uuid"

// StockPreset represents a reusable stock sheet definition.
type StockPreset struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Length   float64 `json:"length" yaml:"length"`
	Width    float64 `json:"width" yaml:"width"`
	Material string  `json:"material" yaml:"material"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, length, width float64, material string) StockPreset {
	return StockPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Width:    width,
		Material: material,
	}
}

// ToStock converts a StockPreset into a Stock with the given quantity.
func (sp StockPreset) ToStock(qty int) Stock {
	return NewStock(sp.Name, sp.Length, sp.Width, qty, sp.Material)
}

// KerfPreset is a common blade width.
type KerfPreset struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// Materials lists the material tags offered for stocks and cuts.
var Materials = []string{"Plywood", "Baltic Birch", "MDF", "Melamine", "Hardwood", "Softwood", "Other"}

// KerfPresets are typical saw blade widths.
var KerfPresets = []KerfPreset{
	{Label: `1/16"`, Value: 0.0625},
	{Label: `1/8"`, Value: 0.125},
	{Label: `5/32"`, Value: 0.15625},
}

// Inventory holds the user's saved stock presets.
type Inventory struct {
	Stocks []StockPreset `json:"stocks" yaml:"stocks"`
}

// DefaultInventory returns an inventory populated with common sheet goods.
func DefaultInventory() Inventory {
	return Inventory{
		Stocks: []StockPreset{
			NewStockPreset(`4x8 Plywood`, 96, 48, "Plywood"),
			NewStockPreset(`4x4 Plywood`, 48, 48, "Plywood"),
			NewStockPreset(`5x5 Baltic Birch`, 60, 60, "Baltic Birch"),
			NewStockPreset(`4x8 MDF`, 96, 48, "MDF"),
		},
	}
}

// FindStockByID returns a pointer to the stock preset with the given ID, or nil.
func (inv *Inventory) FindStockByID(id string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == id {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// FindStockByName returns a pointer to the first stock preset with the given name, or nil.
func (inv *Inventory) FindStockByName(name string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].Name == name {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// StockNames returns the preset names in order.
func (inv *Inventory) StockNames() []string {
	names := make([]string, len(inv.Stocks))
	for i, s := range inv.Stocks {
		names[i] = s.Name
	}
	return names
}

// AddOffcuts appends reusable offcuts as presets so they show up in later projects.
func (inv *Inventory) AddOffcuts(offcuts []Offcut) {
	for _, o := range offcuts {
		inv.Stocks = append(inv.Stocks, StockPreset{
			ID:       o.ID,
			Name:     "Offcut " + o.SheetName,
			Length:   o.Length,
			Width:    o.Width,
			Material: o.Material,
		})
	}
}
