package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/kerfcut/internal/model"
)

func TestInventoryPath(t *testing.T) {
	path := InventoryPath("/data/kerfcut")
	if path != filepath.Join("/data/kerfcut", "inventory.json") {
		t.Errorf("unexpected inventory path %s", path)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inventory.json")

	inv := model.Inventory{Stocks: []model.StockPreset{
		model.NewStockPreset("Test Plywood", 96, 48, "Plywood"),
	}}
	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Stocks) != 1 {
		t.Fatalf("expected 1 stock, got %d", len(loaded.Stocks))
	}
	if loaded.Stocks[0] != inv.Stocks[0] {
		t.Errorf("stock mismatch: got %+v, want %+v", loaded.Stocks[0], inv.Stocks[0])
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Stocks) != len(model.DefaultInventory().Stocks) {
		t.Errorf("expected default stocks, got %d", len(inv.Stocks))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default inventory should be saved: %v", err)
	}
}

func TestLoadInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadOrCreateInventory(t *testing.T) {
	dir := t.TempDir()
	inv, path, err := LoadOrCreateInventory(dir)
	if err != nil {
		t.Fatalf("LoadOrCreateInventory failed: %v", err)
	}
	if path != InventoryPath(dir) {
		t.Errorf("unexpected path %s", path)
	}
	if len(inv.Stocks) == 0 {
		t.Error("expected default stocks")
	}
}

func TestMergeInventory(t *testing.T) {
	a := model.NewStockPreset("A", 10, 10, "")
	b := model.NewStockPreset("B", 20, 20, "")
	c := model.NewStockPreset("C", 30, 30, "")

	merged := MergeInventory(
		model.Inventory{Stocks: []model.StockPreset{a, b}},
		model.Inventory{Stocks: []model.StockPreset{b, c, c}},
	)
	if len(merged.Stocks) != 3 {
		t.Fatalf("expected 3 stocks, got %d", len(merged.Stocks))
	}
	if merged.Stocks[2].ID != c.ID {
		t.Errorf("expected C appended last, got %+v", merged.Stocks[2])
	}
}
