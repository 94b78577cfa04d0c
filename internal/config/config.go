// ABOUTME: Settings loading with global + project YAML config, project overriding global.
// ABOUTME: Tolerant of missing files; every field carries a sane zero-value default.

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds foldview's display and editing preferences.
type Settings struct {
	// TabWidth is the configured tab width in columns. Zero means use the
	// built-in default (4). foldview's renderer does not read it; tabs are
	// drawn as-is.
	TabWidth int `yaml:"tabWidth,omitempty"`

	// FoldGlyph is the configured placeholder for folded ranges. Empty
	// means the package default ellipsis (U+2026). foldview's renderer does
	// not read it; folds always show the foldmap package's ellipsis.
	FoldGlyph string `yaml:"foldGlyph,omitempty"`

	// Theme selects a named lipgloss color theme ("dark", "light", ...).
	// Empty means the built-in default theme.
	Theme string `yaml:"theme,omitempty"`

	// ScrollOff is the configured number of display rows of context around
	// the cursor, after vim's scrolloff. foldview's renderer does not read
	// it and does not scroll.
	ScrollOff int `yaml:"scrollOff,omitempty"`
}

const (
	defaultTabWidth  = 4
	defaultFoldGlyph = "…"
	defaultTheme     = "dark"
	defaultScrollOff = 2
)

// EffectiveTabWidth returns TabWidth or the default (4).
func (s *Settings) EffectiveTabWidth() int {
	if s == nil || s.TabWidth <= 0 {
		return defaultTabWidth
	}
	return s.TabWidth
}

// EffectiveFoldGlyph returns FoldGlyph or the default ("…").
func (s *Settings) EffectiveFoldGlyph() string {
	if s == nil || s.FoldGlyph == "" {
		return defaultFoldGlyph
	}
	return s.FoldGlyph
}

// EffectiveTheme returns Theme or the default ("dark").
func (s *Settings) EffectiveTheme() string {
	if s == nil || s.Theme == "" {
		return defaultTheme
	}
	return s.Theme
}

// EffectiveScrollOff returns ScrollOff or the default (2).
func (s *Settings) EffectiveScrollOff() int {
	if s == nil || s.ScrollOff < 0 {
		return defaultScrollOff
	}
	if s.ScrollOff == 0 {
		return defaultScrollOff
	}
	return s.ScrollOff
}

// Load reads and merges global and project-local settings. Project
// settings override global settings field by field; a missing file at
// either level is not an error.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}
	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	return merge(global, project), nil
}

// loadFile reads Settings from a YAML file, returning zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project onto global, field by field.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}
	result := *global
	if project.TabWidth != 0 {
		result.TabWidth = project.TabWidth
	}
	if project.FoldGlyph != "" {
		result.FoldGlyph = project.FoldGlyph
	}
	if project.Theme != "" {
		result.Theme = project.Theme
	}
	if project.ScrollOff != 0 {
		result.ScrollOff = project.ScrollOff
	}
	return &result
}
