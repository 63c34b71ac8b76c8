package domain

import (
	"context"
	"io"
)

// RiskLevel represents the complexity risk level
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// ComplexityRequest represents a request for complexity analysis
type ComplexityRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	ShowDetails  bool

	// Filtering and sorting
	MinComplexity int
	MaxComplexity int // 0 means no limit
	SortBy        SortCriteria

	// Risk thresholds on cyclomatic complexity
	LowThreshold    int
	MediumThreshold int

	// Language tag for line classification; empty means detect per file
	Language string

	// Configuration
	ConfigPath string

	// Analysis options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// HalsteadMetrics represents the Halstead software science measures
type HalsteadMetrics struct {
	DistinctOperators int     `json:"distinct_operators" yaml:"distinct_operators"`
	DistinctOperands  int     `json:"distinct_operands" yaml:"distinct_operands"`
	TotalOperators    int     `json:"total_operators" yaml:"total_operators"`
	TotalOperands     int     `json:"total_operands" yaml:"total_operands"`
	Vocabulary        int     `json:"vocabulary" yaml:"vocabulary"`
	Length            int     `json:"length" yaml:"length"`
	Volume            float64 `json:"volume" yaml:"volume"`
	Difficulty        float64 `json:"difficulty" yaml:"difficulty"`
	Effort            float64 `json:"effort" yaml:"effort"`
	TimeSeconds       float64 `json:"time_seconds" yaml:"time_seconds"`
	DeliveredBugs     float64 `json:"delivered_bugs" yaml:"delivered_bugs"`
}

// FileComplexity represents complexity analysis for a single file
type FileComplexity struct {
	FilePath        string          `json:"file_path" yaml:"file_path"`
	Cyclomatic      int             `json:"cyclomatic" yaml:"cyclomatic"`
	Cognitive       int             `json:"cognitive" yaml:"cognitive"`
	NestingDepth    int             `json:"nesting_depth" yaml:"nesting_depth"`
	Halstead        HalsteadMetrics `json:"halstead" yaml:"halstead"`
	Maintainability float64         `json:"maintainability" yaml:"maintainability"`
	RiskLevel       RiskLevel       `json:"risk_level" yaml:"risk_level"`
	Recommendations []string        `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

// FunctionComplexity represents complexity analysis for a single function
type FunctionComplexity struct {
	Name       string    `json:"name" yaml:"name"`
	FilePath   string    `json:"file_path" yaml:"file_path"`
	StartLine  int       `json:"start_line" yaml:"start_line"`
	EndLine    int       `json:"end_line" yaml:"end_line"`
	Complexity int       `json:"complexity" yaml:"complexity"`
	RiskLevel  RiskLevel `json:"risk_level" yaml:"risk_level"`
}

// ComplexitySummary represents aggregate statistics
type ComplexitySummary struct {
	FilesAnalyzed          int     `json:"files_analyzed" yaml:"files_analyzed"`
	TotalFunctions         int     `json:"total_functions" yaml:"total_functions"`
	AverageComplexity      float64 `json:"average_complexity" yaml:"average_complexity"`
	MaxComplexity          int     `json:"max_complexity" yaml:"max_complexity"`
	AverageMaintainability float64 `json:"average_maintainability" yaml:"average_maintainability"`

	// Risk distribution
	LowRiskFunctions    int `json:"low_risk_functions" yaml:"low_risk_functions"`
	MediumRiskFunctions int `json:"medium_risk_functions" yaml:"medium_risk_functions"`
	HighRiskFunctions   int `json:"high_risk_functions" yaml:"high_risk_functions"`
}

// ComplexityResponse represents the complete analysis result
type ComplexityResponse struct {
	Files     []FileComplexity     `json:"files" yaml:"files"`
	Functions []FunctionComplexity `json:"functions" yaml:"functions"`
	Summary   ComplexitySummary    `json:"summary" yaml:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// ComplexityService defines the core business logic for complexity analysis
type ComplexityService interface {
	// Analyze performs complexity analysis on the given request
	Analyze(ctx context.Context, req ComplexityRequest) (*ComplexityResponse, error)
}

// ComplexityOutputFormatter defines the interface for formatting complexity results
type ComplexityOutputFormatter interface {
	Format(response *ComplexityResponse, format OutputFormat) (string, error)
	Write(response *ComplexityResponse, format OutputFormat, writer io.Writer) error
}
