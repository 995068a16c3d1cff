package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"property-dcf/internal/model"

	"gopkg.in/yaml.v3"
)

// Preset is a named, reusable input record stored as YAML.
type Preset struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description" json:"description,omitempty"`
	Input       model.Input `yaml:"input" json:"input"`
}

// PresetInfo describes a preset file on disk.
type PresetInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	File        string `json:"file"`
}

func LoadPreset(path string) (Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, err
	}
	var p Preset
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Preset{}, fmt.Errorf("parse preset %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = presetID(path)
	}
	return p, nil
}

// ListPresets returns the presets in dir sorted by ID. Files that fail to
// parse are skipped.
func ListPresets(dir string) ([]PresetInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []PresetInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		p, err := LoadPreset(path)
		if err != nil {
			continue
		}
		out = append(out, PresetInfo{
			ID:          presetID(path),
			Name:        p.Name,
			Description: p.Description,
			File:        e.Name(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// PresetPath resolves a preset ID to a file in dir.
func PresetPath(dir, id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid preset id %q", id)
	}
	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(dir, id+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("preset %q not found", id)
}

func presetID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
