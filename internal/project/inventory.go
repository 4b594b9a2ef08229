package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/kerfcut/internal/model"
)

// InventoryPath returns the inventory file inside dataDir.
func InventoryPath(dataDir string) string {
	return filepath.Join(dataDir, "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
func SaveInventory(path string, inv model.Inventory) error {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// LoadInventory reads the inventory from path. If the file does not exist,
// it saves and returns the default inventory.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			return inv, SaveInventory(path, inv)
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory kept in dataDir and returns it
// with its path.
func LoadOrCreateInventory(dataDir string) (model.Inventory, string, error) {
	path := InventoryPath(dataDir)
	inv, err := LoadInventory(path)
	return inv, path, err
}

// MergeInventory adds the stocks of imported whose IDs are not in existing.
func MergeInventory(existing, imported model.Inventory) model.Inventory {
	seen := make(map[string]bool, len(existing.Stocks))
	for _, s := range existing.Stocks {
		seen[s.ID] = true
	}
	for _, s := range imported.Stocks {
		if !seen[s.ID] {
			existing.Stocks = append(existing.Stocks, s)
			seen[s.ID] = true
		}
	}
	return existing
}
