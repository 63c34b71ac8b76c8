package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default complexity thresholds based on McCabe complexity standards
const (
	// DefaultLowComplexityThreshold defines the upper bound for low complexity functions
	DefaultLowComplexityThreshold = 9

	// DefaultMediumComplexityThreshold defines the upper bound for medium complexity functions
	DefaultMediumComplexityThreshold = 19

	// DefaultMinComplexityFilter defines the minimum complexity to report
	DefaultMinComplexityFilter = 1

	// DefaultMaxComplexityLimit defines no upper limit for complexity analysis
	DefaultMaxComplexityLimit = 0
)

// Default smell detection thresholds
const (
	DefaultLongMethodLines     = 50
	DefaultMaxParameters       = 5
	DefaultDuplicateMinLength  = 20
	DefaultDuplicateMinCount   = 3
	DefaultMagicNumberCap      = 10
	DefaultNestedLoopDepth     = 3
	DefaultGodClassMethods     = 20
	DefaultLargeClassLines     = 500
	DefaultPrimitiveParamLimit = 3
	DefaultSwitchCaseLimit     = 7
)

// DefaultMaxLineLength defines the longest line that passes the quality scan
const DefaultMaxLineLength = 120

// Config represents the main configuration structure
type Config struct {
	// Complexity holds complexity analysis configuration
	Complexity ComplexityConfig `json:"complexity" mapstructure:"complexity" yaml:"complexity"`

	// Smells holds code smell detection configuration
	Smells SmellConfig `json:"smells" mapstructure:"smells" yaml:"smells"`

	// Quality holds quality scoring configuration
	Quality QualityConfig `json:"quality" mapstructure:"quality" yaml:"quality"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds general analysis configuration
	Analysis AnalysisConfig `json:"analysis,omitempty" mapstructure:"analysis" yaml:"analysis"`
}

// ComplexityConfig holds configuration for complexity analysis
type ComplexityConfig struct {
	// LowThreshold is the upper bound for low complexity (inclusive)
	LowThreshold int `json:"lowThreshold" mapstructure:"low_threshold" yaml:"low_threshold"`

	// MediumThreshold is the upper bound for medium complexity (inclusive)
	// Values above this are considered high complexity
	MediumThreshold int `json:"mediumThreshold" mapstructure:"medium_threshold" yaml:"medium_threshold"`

	// Enabled controls whether complexity analysis is performed
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// MaxComplexity is the maximum allowed complexity before failing analysis
	// 0 means no limit
	MaxComplexity int `json:"maxComplexity" mapstructure:"max_complexity" yaml:"max_complexity"`
}

// SmellConfig holds configuration for code smell detection
type SmellConfig struct {
	// Enabled controls whether smell detection is performed
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// LongMethodLines is the function span above which long method fires
	LongMethodLines int `json:"long_method_lines" mapstructure:"long_method_lines" yaml:"long_method_lines"`

	// MaxParameters is the parameter count above which long parameter list fires
	MaxParameters int `json:"max_parameters" mapstructure:"max_parameters" yaml:"max_parameters"`

	// DuplicateMinLength is the trimmed line length a duplicate must exceed
	DuplicateMinLength int `json:"duplicate_min_length" mapstructure:"duplicate_min_length" yaml:"duplicate_min_length"`

	// DuplicateMinCount is the occurrence count at which duplication fires
	DuplicateMinCount int `json:"duplicate_min_count" mapstructure:"duplicate_min_count" yaml:"duplicate_min_count"`

	// MagicNumberCap limits how many magic number findings are reported
	MagicNumberCap int `json:"magic_number_cap" mapstructure:"magic_number_cap" yaml:"magic_number_cap"`

	// NestedLoopDepth is the loop nesting level at which the finding fires
	NestedLoopDepth int `json:"nested_loop_depth" mapstructure:"nested_loop_depth" yaml:"nested_loop_depth"`

	// GodClassMethods is the declaration count above which god class fires
	GodClassMethods int `json:"god_class_methods" mapstructure:"god_class_methods" yaml:"god_class_methods"`

	// LargeClassLines is the file length above which large class fires
	LargeClassLines int `json:"large_class_lines" mapstructure:"large_class_lines" yaml:"large_class_lines"`

	// PrimitiveParamLimit is the primitive parameter count above which the finding fires
	PrimitiveParamLimit int `json:"primitive_param_limit" mapstructure:"primitive_param_limit" yaml:"primitive_param_limit"`

	// SwitchCaseLimit is the case count above which long switch fires
	SwitchCaseLimit int `json:"switch_case_limit" mapstructure:"switch_case_limit" yaml:"switch_case_limit"`

	// MinSeverity is the minimum severity level to report
	MinSeverity string `json:"min_severity" mapstructure:"min_severity" yaml:"min_severity"`
}

// QualityConfig holds configuration for the quality score
type QualityConfig struct {
	// Enabled controls whether quality scoring is performed
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// MaxLineLength is the longest line that passes the issue scan
	MaxLineLength int `json:"max_line_length" mapstructure:"max_line_length" yaml:"max_line_length"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether to show detailed breakdown
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`

	// SortBy specifies how to sort results: name, complexity, score, severity, location
	SortBy string `json:"sort_by" mapstructure:"sort_by" yaml:"sort_by"`

	// MinComplexity is the minimum complexity to report (filters low values)
	MinComplexity int `json:"min_complexity" mapstructure:"min_complexity" yaml:"min_complexity"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// Language forces a language tag; empty means detect per file extension
	Language string `json:"language" mapstructure:"language" yaml:"language"`

	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether to analyze directories recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// RespectGitignore controls whether .gitignore rules filter collected files
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Complexity: ComplexityConfig{
			LowThreshold:    DefaultLowComplexityThreshold,
			MediumThreshold: DefaultMediumComplexityThreshold,
			Enabled:         true,
			MaxComplexity:   DefaultMaxComplexityLimit,
		},
		Smells: SmellConfig{
			Enabled:             true,
			LongMethodLines:     DefaultLongMethodLines,
			MaxParameters:       DefaultMaxParameters,
			DuplicateMinLength:  DefaultDuplicateMinLength,
			DuplicateMinCount:   DefaultDuplicateMinCount,
			MagicNumberCap:      DefaultMagicNumberCap,
			NestedLoopDepth:     DefaultNestedLoopDepth,
			GodClassMethods:     DefaultGodClassMethods,
			LargeClassLines:     DefaultLargeClassLines,
			PrimitiveParamLimit: DefaultPrimitiveParamLimit,
			SwitchCaseLimit:     DefaultSwitchCaseLimit,
			MinSeverity:         "low",
		},
		Quality: QualityConfig{
			Enabled:       true,
			MaxLineLength: DefaultMaxLineLength,
		},
		Output: OutputConfig{
			Format:        "text",
			ShowDetails:   false,
			SortBy:        "name",
			MinComplexity: DefaultMinComplexityFilter,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx",
				"**/*.mjs", "**/*.cjs", "**/*.py", "**/*.go", "**/*.java",
			},
			ExcludePatterns: []string{
				"node_modules",
				"vendor",
				"dist",
				"build",
				"coverage",
				".git",
				"*.min.js",
				"*.bundle.js",
				"*.map",
			},
			Recursive:        true,
			RespectGitignore: true,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the path being analyzed (a source file or directory).
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"qscan.yaml",
		"qscan.yml",
		".qscan.yaml",
		".qscan.yml",
		"qscan.json",
		".qscan.json",
	}

	// If targetPath is provided, search from there upward
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "qscan"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "qscan")
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}

		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	// Check QSCAN_CONFIG environment variable as fallback
	if envConfig := os.Getenv("QSCAN_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Complexity.LowThreshold < 1 {
		return fmt.Errorf("complexity.low_threshold must be >= 1, got %d", c.Complexity.LowThreshold)
	}

	if c.Complexity.MediumThreshold <= c.Complexity.LowThreshold {
		return fmt.Errorf("complexity.medium_threshold (%d) must be > low_threshold (%d)",
			c.Complexity.MediumThreshold, c.Complexity.LowThreshold)
	}

	if c.Complexity.MaxComplexity < 0 {
		return fmt.Errorf("complexity.max_complexity must be >= 0, got %d", c.Complexity.MaxComplexity)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml", c.Output.Format)
	}

	validSortBy := map[string]bool{
		"name":       true,
		"complexity": true,
		"score":      true,
		"severity":   true,
		"location":   true,
	}
	if !validSortBy[c.Output.SortBy] {
		return fmt.Errorf("invalid output.sort_by '%s', must be one of: name, complexity, score, severity, location", c.Output.SortBy)
	}

	if c.Output.MinComplexity < 1 {
		return fmt.Errorf("output.min_complexity must be >= 1, got %d", c.Output.MinComplexity)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	return c.validateSmellConfig()
}

// validateSmellConfig validates the smell detection configuration
func (c *Config) validateSmellConfig() error {
	validSeverities := map[string]bool{
		"high":   true,
		"medium": true,
		"low":    true,
	}
	if !validSeverities[c.Smells.MinSeverity] {
		return fmt.Errorf("invalid smells.min_severity '%s', must be one of: high, medium, low", c.Smells.MinSeverity)
	}

	if c.Smells.LongMethodLines < 1 {
		return fmt.Errorf("smells.long_method_lines must be >= 1, got %d", c.Smells.LongMethodLines)
	}

	if c.Smells.MaxParameters < 1 {
		return fmt.Errorf("smells.max_parameters must be >= 1, got %d", c.Smells.MaxParameters)
	}

	if c.Smells.DuplicateMinCount < 2 {
		return fmt.Errorf("smells.duplicate_min_count must be >= 2, got %d", c.Smells.DuplicateMinCount)
	}

	if c.Quality.MaxLineLength < 1 {
		return fmt.Errorf("quality.max_line_length must be >= 1, got %d", c.Quality.MaxLineLength)
	}

	return nil
}

// AssessRiskLevel determines risk level based on complexity and thresholds
func (c *ComplexityConfig) AssessRiskLevel(complexity int) string {
	if complexity <= c.LowThreshold {
		return "low"
	} else if complexity <= c.MediumThreshold {
		return "medium"
	}
	return "high"
}

// ExceedsMaxComplexity checks if complexity exceeds the maximum allowed
func (c *ComplexityConfig) ExceedsMaxComplexity(complexity int) bool {
	return c.MaxComplexity > 0 && complexity > c.MaxComplexity
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("complexity", config.Complexity)
	v.Set("smells", config.Smells)
	v.Set("quality", config.Quality)
	v.Set("output", config.Output)
	v.Set("analysis", config.Analysis)

	return v.WriteConfig()
}
