package model

import (
	"testing"
)

func TestExpandCuts(t *testing.T) {
	cuts := []Cut{
		NewCut("Side", 30, 12, 2, ""),
		NewCut("Top", 24, 12, 1, "MDF"),
	}

	expanded := ExpandCuts(cuts)
	if len(expanded) != 3 {
		t.Fatalf("expected 3 unit cuts, got %d", len(expanded))
	}
	for _, c := range expanded {
		if c.Quantity != 1 {
			t.Errorf("expected unit quantity for %s, got %d", c.Label, c.Quantity)
		}
	}
	if expanded[0].ID != cuts[0].ID || expanded[1].ID != cuts[0].ID {
		t.Error("expanded copies should keep the source ID")
	}
	if cuts[0].Quantity != 2 {
		t.Error("ExpandCuts must not mutate its input")
	}
}

func TestTotalQuantity(t *testing.T) {
	cuts := []Cut{{Quantity: 3}, {Quantity: 4}}
	if got := TotalQuantity(cuts); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestFillMissingIDs(t *testing.T) {
	stocks := []Stock{{ID: "keep"}, {}, {}}
	cuts := []Cut{{}, {ID: "c1"}}
	FillMissingIDs(stocks, cuts)

	if stocks[0].ID != "keep" || cuts[1].ID != "c1" {
		t.Errorf("existing IDs must be kept, got %q and %q", stocks[0].ID, cuts[1].ID)
	}
	if stocks[1].ID == "" || stocks[2].ID == "" || cuts[0].ID == "" {
		t.Fatal("expected generated IDs")
	}
	if stocks[1].ID == stocks[2].ID {
		t.Errorf("generated IDs must differ, both are %q", stocks[1].ID)
	}
}

func TestMaterialCompatible(t *testing.T) {
	tests := []struct {
		cut, stock string
		want       bool
	}{
		{"", "", true},
		{"MDF", "", true},
		{"", "Plywood", true},
		{"MDF", "MDF", true},
		{"MDF", "Plywood", false},
	}
	for _, tt := range tests {
		if got := MaterialCompatible(tt.cut, tt.stock); got != tt.want {
			t.Errorf("MaterialCompatible(%q, %q) = %v, want %v", tt.cut, tt.stock, got, tt.want)
		}
	}
}

func TestPlaceSwapsDimensionsWhenRotated(t *testing.T) {
	c := NewCut("Door", 30, 15, 1, "")

	normal := Place(c, 1, 2, false)
	if normal.PW != 15 || normal.PH != 30 {
		t.Errorf("normal placement should be 15x30, got %gx%g", normal.PW, normal.PH)
	}

	rotated := Place(c, 0, 0, true)
	if rotated.PW != 30 || rotated.PH != 15 || !rotated.Rotated {
		t.Errorf("rotated placement should be 30x15, got %gx%g", rotated.PW, rotated.PH)
	}
	if normal.Label != "Door" || normal.X != 1 || normal.Y != 2 {
		t.Error("placement should carry the cut and position")
	}
}

func TestNewSheetStartsWithWholeStockRect(t *testing.T) {
	s := NewSheet(Stock{Name: "4x8", Length: 96, Width: 48, Quantity: 1})
	if len(s.Rects) != 1 {
		t.Fatalf("expected one free rect, got %d", len(s.Rects))
	}
	r := s.Rects[0]
	if r.X != 0 || r.Y != 0 || r.W != 48 || r.H != 96 {
		t.Errorf("unexpected initial rect %+v", r)
	}
}

func TestSheetAreasAndEfficiency(t *testing.T) {
	s := Sheet{
		Stock: Stock{Length: 48, Width: 48},
		Cuts: []PlacedCut{
			Place(Cut{Length: 24, Width: 24}, 0, 0, false),
			Place(Cut{Length: 24, Width: 24}, 24, 0, false),
		},
	}
	if s.TotalArea() != 2304 {
		t.Errorf("expected total 2304, got %g", s.TotalArea())
	}
	if s.UsedArea() != 1152 {
		t.Errorf("expected used 1152, got %g", s.UsedArea())
	}
	if s.Efficiency() != 50 {
		t.Errorf("expected 50%% efficiency, got %g", s.Efficiency())
	}
	if (Sheet{}).Efficiency() != 0 {
		t.Error("empty stock should report zero efficiency")
	}
}

func TestPlacedCount(t *testing.T) {
	r := OptimizationResult{Sheets: []Sheet{
		{Cuts: make([]PlacedCut, 2)},
		{Cuts: make([]PlacedCut, 3)},
	}}
	if r.PlacedCount() != 5 {
		t.Errorf("expected 5, got %d", r.PlacedCount())
	}
}

func TestNewProjectDefaults(t *testing.T) {
	p := NewProject()
	if p.Name != "Untitled" {
		t.Errorf("expected Untitled, got %s", p.Name)
	}
	if p.Settings.Algorithm != AlgorithmBest || p.Settings.Kerf != 0.125 {
		t.Errorf("unexpected default settings %+v", p.Settings)
	}
}

func TestValidateCuts(t *testing.T) {
	if err := ValidateCuts([]Cut{NewCut("A", 10, 5, 1, "")}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	err := ValidateCuts([]Cut{{Label: "Bad", Length: 0, Width: 5, Quantity: 0}})
	if err == nil {
		t.Fatal("expected error for zero length and quantity")
	}
}

func TestValidateStocksAndKerf(t *testing.T) {
	if err := ValidateStocks([]Stock{{Name: "S", Length: -1, Width: 48, Quantity: 1}}); err == nil {
		t.Error("expected error for negative length")
	}
	if err := ValidateKerf(-0.1); err == nil {
		t.Error("expected error for negative kerf")
	}
	if err := ValidateKerf(0); err != nil {
		t.Errorf("zero kerf should be valid, got %v", err)
	}
}

func TestToFraction(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{23.5, "23 1/2"},
		{0.75, "3/4"},
		{0.125, "1/8"},
		{5.15625, "5 5/32"},
		{12, "12"},
		{-0.5, "-1/2"},
		{0.999, "1"},
	}
	for _, tt := range tests {
		if got := ToFraction(tt.in); got != tt.want {
			t.Errorf("ToFraction(%g) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFraction(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"23 1/2", 23.5},
		{"23-1/2", 23.5},
		{"3/4", 0.75},
		{"1.25", 1.25},
		{`48"`, 48},
		{"-1/2", -0.5},
	}
	for _, tt := range tests {
		got, err := ParseFraction(tt.in)
		if err != nil {
			t.Errorf("ParseFraction(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFraction(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "abc", "1/0", "x/2"} {
		if _, err := ParseFraction(bad); err == nil {
			t.Errorf("ParseFraction(%q) should fail", bad)
		}
	}
}
