// Package project persists projects, the stock inventory and project
// backups on disk.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/kerfcut/internal/model"
	"gopkg.in/yaml.v3"
)

// isYAML reports whether path has a .yaml or .yml extension.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// normalize replaces nil slices so saved files show empty lists.
func normalize(p *model.Project) {
	if p.Cuts == nil {
		p.Cuts = []model.Cut{}
	}
	if p.Stocks == nil {
		p.Stocks = []model.Stock{}
	}
}

// SaveProject writes a project as indented JSON.
func SaveProject(path string, p model.Project) error {
	normalize(&p)
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// LoadProject reads a JSON project. Stocks and cuts written without an ID
// are given one.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	normalize(&p)
	model.FillMissingIDs(p.Stocks, p.Cuts)
	return p, nil
}

// SaveProjectYAML writes a project as YAML.
func SaveProjectYAML(path string, p model.Project) error {
	normalize(&p)
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// LoadProjectYAML reads a YAML project.
func LoadProjectYAML(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	var p model.Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	normalize(&p)
	model.FillMissingIDs(p.Stocks, p.Cuts)
	return p, nil
}

// Save picks YAML or JSON by extension.
func Save(path string, p model.Project) error {
	if isYAML(path) {
		return SaveProjectYAML(path, p)
	}
	return SaveProject(path, p)
}

// Load picks YAML or JSON by extension.
func Load(path string) (model.Project, error) {
	if isYAML(path) {
		return LoadProjectYAML(path)
	}
	return LoadProject(path)
}
