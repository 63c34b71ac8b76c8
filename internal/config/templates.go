package config

import "strconv"

// ProjectType represents the kind of codebase being scanned
type ProjectType string

const (
	ProjectTypeGeneric  ProjectType = "generic"
	ProjectTypeWeb      ProjectType = "web"
	ProjectTypePython   ProjectType = "python"
	ProjectTypeGo       ProjectType = "go"
	ProjectTypePolyglot ProjectType = "polyglot"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds file patterns for different project types
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// StrictnessPreset holds threshold values for different strictness levels
type StrictnessPreset struct {
	LowThreshold    int
	MediumThreshold int
	LongMethodLines int
	MaxParameters   int
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.py", "**/*.go", "**/*.java",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/vendor/**",
				"**/dist/**",
				"**/build/**",
				"**/*.min.js",
			},
		},
		ProjectTypeWeb: {
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx",
				"**/*.mjs", "**/*.cjs",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/dist/**",
				"**/build/**",
				"**/.next/**",
				"**/coverage/**",
				"**/*.min.js",
				"**/*.bundle.js",
			},
		},
		ProjectTypePython: {
			IncludePatterns: []string{"**/*.py"},
			ExcludePatterns: []string{
				"**/.venv/**",
				"**/venv/**",
				"**/__pycache__/**",
				"**/build/**",
				"**/dist/**",
			},
		},
		ProjectTypeGo: {
			IncludePatterns: []string{"**/*.go"},
			ExcludePatterns: []string{
				"**/vendor/**",
				"**/testdata/**",
			},
		},
		ProjectTypePolyglot: {
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx",
				"**/*.py", "**/*.go", "**/*.java",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/vendor/**",
				"**/.venv/**",
				"**/dist/**",
				"**/build/**",
				"**/*.min.js",
			},
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			LowThreshold:    15,
			MediumThreshold: 30,
			LongMethodLines: 80,
			MaxParameters:   7,
		},
		StrictnessStandard: {
			LowThreshold:    DefaultLowComplexityThreshold,
			MediumThreshold: DefaultMediumComplexityThreshold,
			LongMethodLines: DefaultLongMethodLines,
			MaxParameters:   DefaultMaxParameters,
		},
		StrictnessStrict: {
			LowThreshold:    5,
			MediumThreshold: 10,
			LongMethodLines: 30,
			MaxParameters:   4,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	preset := GetProjectPresets()[projectType]
	strict := GetStrictnessPresets()[strictness]

	includePatterns := formatYAMLList(preset.IncludePatterns)
	excludePatterns := formatYAMLList(preset.ExcludePatterns)

	return `# qscan configuration
# Documentation: https://github.com/qscan-dev/qscan

# Complexity analysis: cyclomatic, cognitive, Halstead, maintainability
complexity:
  enabled: true

  # Cyclomatic complexity <= low_threshold is considered low risk
  low_threshold: ` + strconv.Itoa(strict.LowThreshold) + `

  # Above low_threshold but <= medium_threshold needs attention;
  # anything above is high risk
  medium_threshold: ` + strconv.Itoa(strict.MediumThreshold) + `

  # Maximum allowed complexity (0 = no limit); set for CI enforcement
  max_complexity: 0

# Code smell detection thresholds
smells:
  enabled: true
  long_method_lines: ` + strconv.Itoa(strict.LongMethodLines) + `
  max_parameters: ` + strconv.Itoa(strict.MaxParameters) + `
  duplicate_min_length: 20
  duplicate_min_count: 3
  magic_number_cap: 10
  nested_loop_depth: 3
  god_class_methods: 20
  large_class_lines: 500
  primitive_param_limit: 3
  switch_case_limit: 7

  # Minimum severity to report: high, medium, low
  min_severity: low

# Quality scoring
quality:
  enabled: true
  max_line_length: 120

# Output settings
output:
  # text, json, or yaml
  format: text
  show_details: false

  # name, complexity, score, severity, location
  sort_by: name

# Analysis scope
analysis:
  include_patterns:
` + includePatterns + `
  exclude_patterns:
` + excludePatterns + `
  recursive: true
  respect_gitignore: true
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# qscan configuration (minimal)
# See full options: https://github.com/qscan-dev/qscan

complexity:
  enabled: true
  low_threshold: 9
  medium_threshold: 19

smells:
  enabled: true
  min_severity: low

analysis:
  include_patterns:
    - "**/*.js"
    - "**/*.ts"
    - "**/*.py"
  exclude_patterns:
    - "**/node_modules/**"
    - "**/dist/**"
`
}

// formatYAMLList formats a string slice as an indented YAML list
func formatYAMLList(items []string) string {
	result := ""
	for _, item := range items {
		result += `    - "` + item + `"` + "\n"
	}
	if result == "" {
		return "    []\n"
	}
	return result
}
