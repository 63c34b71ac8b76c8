package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Complexity.LowThreshold != DefaultLowComplexityThreshold {
		t.Errorf("Expected low threshold %d, got %d", DefaultLowComplexityThreshold, cfg.Complexity.LowThreshold)
	}
	if cfg.Complexity.MediumThreshold != DefaultMediumComplexityThreshold {
		t.Errorf("Expected medium threshold %d, got %d", DefaultMediumComplexityThreshold, cfg.Complexity.MediumThreshold)
	}
	if !cfg.Complexity.Enabled {
		t.Error("Complexity analysis should be enabled by default")
	}
	if cfg.Smells.LongMethodLines != 50 {
		t.Errorf("Expected long method threshold 50, got %d", cfg.Smells.LongMethodLines)
	}
	if cfg.Smells.MaxParameters != 5 {
		t.Errorf("Expected max parameters 5, got %d", cfg.Smells.MaxParameters)
	}
	if cfg.Smells.DuplicateMinCount != 3 {
		t.Errorf("Expected duplicate min count 3, got %d", cfg.Smells.DuplicateMinCount)
	}
	if cfg.Quality.MaxLineLength != 120 {
		t.Errorf("Expected max line length 120, got %d", cfg.Quality.MaxLineLength)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Expected default format 'text', got '%s'", cfg.Output.Format)
	}
	if !cfg.Analysis.Recursive {
		t.Error("Recursive analysis should be enabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"low threshold below one", func(c *Config) { c.Complexity.LowThreshold = 0 }},
		{"medium not above low", func(c *Config) { c.Complexity.MediumThreshold = c.Complexity.LowThreshold }},
		{"negative max complexity", func(c *Config) { c.Complexity.MaxComplexity = -1 }},
		{"unknown output format", func(c *Config) { c.Output.Format = "xml" }},
		{"unknown sort criteria", func(c *Config) { c.Output.SortBy = "entropy" }},
		{"min complexity below one", func(c *Config) { c.Output.MinComplexity = 0 }},
		{"empty include patterns", func(c *Config) { c.Analysis.IncludePatterns = nil }},
		{"unknown min severity", func(c *Config) { c.Smells.MinSeverity = "critical" }},
		{"long method below one", func(c *Config) { c.Smells.LongMethodLines = 0 }},
		{"duplicate count below two", func(c *Config) { c.Smells.DuplicateMinCount = 1 }},
		{"line length below one", func(c *Config) { c.Quality.MaxLineLength = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestAssessRiskLevel(t *testing.T) {
	cfg := ComplexityConfig{LowThreshold: 9, MediumThreshold: 19}

	tests := []struct {
		complexity int
		want       string
	}{
		{1, "low"},
		{9, "low"},
		{10, "medium"},
		{19, "medium"},
		{20, "high"},
		{100, "high"},
	}

	for _, tt := range tests {
		if got := cfg.AssessRiskLevel(tt.complexity); got != tt.want {
			t.Errorf("AssessRiskLevel(%d) = %s, expected %s", tt.complexity, got, tt.want)
		}
	}
}

func TestExceedsMaxComplexity(t *testing.T) {
	unlimited := ComplexityConfig{MaxComplexity: 0}
	if unlimited.ExceedsMaxComplexity(1000) {
		t.Error("MaxComplexity 0 should mean no limit")
	}

	limited := ComplexityConfig{MaxComplexity: 15}
	if limited.ExceedsMaxComplexity(15) {
		t.Error("Complexity equal to the limit should pass")
	}
	if !limited.ExceedsMaxComplexity(16) {
		t.Error("Complexity above the limit should fail")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfigFromFile("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Complexity.LowThreshold != DefaultLowComplexityThreshold {
		t.Error("Empty path should return the default config")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qscan.yaml")
	content := `
complexity:
  low_threshold: 5
  medium_threshold: 12
smells:
  long_method_lines: 30
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Complexity.LowThreshold != 5 {
		t.Errorf("Expected low threshold 5, got %d", cfg.Complexity.LowThreshold)
	}
	if cfg.Complexity.MediumThreshold != 12 {
		t.Errorf("Expected medium threshold 12, got %d", cfg.Complexity.MediumThreshold)
	}
	if cfg.Smells.LongMethodLines != 30 {
		t.Errorf("Expected long method threshold 30, got %d", cfg.Smells.LongMethodLines)
	}
	// Untouched sections keep their defaults
	if cfg.Smells.MaxParameters != DefaultMaxParameters {
		t.Errorf("Expected max parameters %d, got %d", DefaultMaxParameters, cfg.Smells.MaxParameters)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qscan.yaml")
	content := `
output:
  format: xml
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for invalid output format")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/qscan.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestProjectPresets(t *testing.T) {
	presets := GetProjectPresets()

	for _, projectType := range []ProjectType{ProjectTypeGeneric, ProjectTypeWeb, ProjectTypePython, ProjectTypeGo, ProjectTypePolyglot} {
		preset, ok := presets[projectType]
		if !ok {
			t.Errorf("Missing preset for project type %s", projectType)
			continue
		}
		if len(preset.IncludePatterns) == 0 {
			t.Errorf("Preset %s should have include patterns", projectType)
		}
	}
}

func TestStrictnessPresets(t *testing.T) {
	presets := GetStrictnessPresets()

	standard := presets[StrictnessStandard]
	if standard.LowThreshold != DefaultLowComplexityThreshold {
		t.Errorf("Standard preset should use the default low threshold, got %d", standard.LowThreshold)
	}

	strict := presets[StrictnessStrict]
	relaxed := presets[StrictnessRelaxed]
	if strict.LowThreshold >= relaxed.LowThreshold {
		t.Error("Strict thresholds should be tighter than relaxed ones")
	}
}

func TestFullConfigTemplate(t *testing.T) {
	template := GetFullConfigTemplate(ProjectTypeWeb, StrictnessStandard)

	for _, section := range []string{"complexity:", "smells:", "quality:", "output:", "analysis:"} {
		if !strings.Contains(template, section) {
			t.Errorf("Template missing section %q", section)
		}
	}
	if !strings.Contains(template, "low_threshold: 9") {
		t.Error("Template should carry the standard low threshold")
	}
	if !strings.Contains(template, "**/node_modules/**") {
		t.Error("Web template should exclude node_modules")
	}
}

func TestMinimalConfigTemplate(t *testing.T) {
	template := GetMinimalConfigTemplate()
	if !strings.Contains(template, "complexity:") {
		t.Error("Minimal template should contain a complexity section")
	}
}
