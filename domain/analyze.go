package domain

import (
	"context"
	"io"
)

// AnalyzeRequest represents a request for full file analysis
type AnalyzeRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	ShowDetails  bool
	SortBy       SortCriteria

	// Section selection; all false means everything
	IncludeSmells     bool
	IncludeRefactors  bool
	IncludeComplexity bool

	// Language tag for line classification; empty means detect per file
	Language string

	// Configuration
	ConfigPath string

	// Analysis options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// FileMetrics represents the per-file line totals
type FileMetrics struct {
	TotalLines   int `json:"total_lines" yaml:"total_lines"`
	CodeLines    int `json:"code_lines" yaml:"code_lines"`
	CommentLines int `json:"comment_lines" yaml:"comment_lines"`
	BlankLines   int `json:"blank_lines" yaml:"blank_lines"`
}

// FunctionInfo describes one extracted function
type FunctionInfo struct {
	Name       string `json:"name" yaml:"name"`
	StartLine  int    `json:"start_line" yaml:"start_line"`
	EndLine    int    `json:"end_line" yaml:"end_line"`
	LineCount  int    `json:"line_count" yaml:"line_count"`
	ParamCount int    `json:"param_count" yaml:"param_count"`
	Complexity int    `json:"complexity" yaml:"complexity"`
}

// VariableInfo records a variable declaration site
type VariableInfo struct {
	Name string `json:"name" yaml:"name"`
	Line int    `json:"line" yaml:"line"`
}

// Issue is one line-oriented quality problem
type Issue struct {
	Type     string `json:"type" yaml:"type"`
	Severity string `json:"severity" yaml:"severity"`
	Message  string `json:"message" yaml:"message"`
	Line     int    `json:"line" yaml:"line"`
}

// QualityFactor is one 0-10 sub-score of the overall rating
type QualityFactor struct {
	Name        string `json:"name" yaml:"name"`
	Score       int    `json:"score" yaml:"score"`
	Description string `json:"description" yaml:"description"`
}

// QualityReport is the aggregated 0-100 score with its letter grade
type QualityReport struct {
	Score   int             `json:"score" yaml:"score"`
	Grade   string          `json:"grade" yaml:"grade"`
	Factors []QualityFactor `json:"factors" yaml:"factors"`
}

// FileAnalysis represents the complete analysis result for one file
type FileAnalysis struct {
	FilePath  string         `json:"file_path" yaml:"file_path"`
	Metrics   FileMetrics    `json:"metrics" yaml:"metrics"`
	Functions []FunctionInfo `json:"functions" yaml:"functions"`
	Variables []VariableInfo `json:"variables,omitempty" yaml:"variables,omitempty"`
	Issues    []Issue        `json:"issues,omitempty" yaml:"issues,omitempty"`
	Quality   QualityReport  `json:"quality" yaml:"quality"`
}

// AnalyzeSummary represents aggregate statistics across all files
type AnalyzeSummary struct {
	FilesAnalyzed     int            `json:"files_analyzed" yaml:"files_analyzed"`
	TotalLines        int            `json:"total_lines" yaml:"total_lines"`
	TotalFunctions    int            `json:"total_functions" yaml:"total_functions"`
	TotalIssues       int            `json:"total_issues" yaml:"total_issues"`
	AverageScore      float64        `json:"average_score" yaml:"average_score"`
	GradeDistribution map[string]int `json:"grade_distribution,omitempty" yaml:"grade_distribution,omitempty"`
}

// AnalyzeResponse represents the complete analysis result
type AnalyzeResponse struct {
	Files   []FileAnalysis `json:"files" yaml:"files"`
	Summary AnalyzeSummary `json:"summary" yaml:"summary"`

	// Optional sections filled in when selected
	Smells     *SmellResponse      `json:"smells,omitempty" yaml:"smells,omitempty"`
	Refactors  *RefactorResponse   `json:"refactors,omitempty" yaml:"refactors,omitempty"`
	Complexity *ComplexityResponse `json:"complexity,omitempty" yaml:"complexity,omitempty"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// AnalyzeService defines the core business logic for file analysis
type AnalyzeService interface {
	// Analyze performs full analysis on the given request
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)
}

// SourceFileReader defines the interface for reading and collecting
// source files
type SourceFileReader interface {
	// CollectSourceFiles recursively finds all supported source files in the given paths
	CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidSourceFile checks if a file has a supported extension
	IsValidSourceFile(path string) bool

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// AnalyzeOutputFormatter defines the interface for formatting analysis results
type AnalyzeOutputFormatter interface {
	// Format formats the analysis response according to the specified format
	Format(response *AnalyzeResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *AnalyzeResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*AnalyzeRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *AnalyzeRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *AnalyzeRequest, override *AnalyzeRequest) *AnalyzeRequest
}
