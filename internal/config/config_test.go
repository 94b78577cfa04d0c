// ABOUTME: Tests for settings loading, merging, and effective-value defaults.
// ABOUTME: Uses temp directories for isolated file-based tests.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{TabWidth: 4, Theme: "dark"}
	project := &Settings{Theme: "light"}

	result := merge(global, project)

	if result.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", result.TabWidth)
	}
	if result.Theme != "light" {
		t.Errorf("Theme = %q, want %q", result.Theme, "light")
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	result := merge(nil, nil)
	if result == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestEffectiveDefaults(t *testing.T) {
	t.Parallel()

	var s *Settings
	if got := s.EffectiveTabWidth(); got != defaultTabWidth {
		t.Errorf("EffectiveTabWidth() = %d, want %d", got, defaultTabWidth)
	}
	if got := s.EffectiveFoldGlyph(); got != defaultFoldGlyph {
		t.Errorf("EffectiveFoldGlyph() = %q, want %q", got, defaultFoldGlyph)
	}
	if got := s.EffectiveTheme(); got != defaultTheme {
		t.Errorf("EffectiveTheme() = %q, want %q", got, defaultTheme)
	}
	if got := s.EffectiveScrollOff(); got != defaultScrollOff {
		t.Errorf("EffectiveScrollOff() = %d, want %d", got, defaultScrollOff)
	}
}

func TestLoadMissingFilesReturnsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	old := os.Getenv("HOME")
	os.Setenv("HOME", filepath.Join(dir, "nonexistent-home"))
	defer os.Setenv("HOME", old)

	s, err := Load(filepath.Join(dir, "project"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.EffectiveTabWidth() != defaultTabWidth {
		t.Errorf("TabWidth = %d, want default", s.TabWidth)
	}
}

func TestLoadProjectOverridesGlobal(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	old := os.Getenv("HOME")
	os.Setenv("HOME", home)
	defer os.Setenv("HOME", old)

	if err := EnsureDir(GlobalDir()); err != nil {
		t.Fatalf("EnsureDir(global): %v", err)
	}
	if err := os.WriteFile(GlobalConfigFile(), []byte("tabWidth: 8\ntheme: dark\n"), 0o644); err != nil {
		t.Fatalf("write global config: %v", err)
	}

	project := t.TempDir()
	if err := EnsureDir(ProjectDir(project)); err != nil {
		t.Fatalf("EnsureDir(project): %v", err)
	}
	if err := os.WriteFile(ProjectConfigFile(project), []byte("theme: light\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	s, err := Load(project)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want 8 (from global)", s.TabWidth)
	}
	if s.Theme != "light" {
		t.Errorf("Theme = %q, want %q (from project)", s.Theme, "light")
	}
}
