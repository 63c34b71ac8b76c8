package domain

import (
	"context"
	"io"
)

// SmellRequest represents a request for code smell detection
type SmellRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	ShowDetails  bool

	// Filtering and sorting
	MinSeverity Severity
	SortBy      SortCriteria

	// Language tag for line classification; empty means detect per file
	Language string

	// Configuration
	ConfigPath string

	// Analysis options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// SmellFinding represents a single detected code smell
type SmellFinding struct {
	Type        string   `json:"type" yaml:"type"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	Remediation string   `json:"remediation" yaml:"remediation"`
	FilePath    string   `json:"file_path" yaml:"file_path"`
	Line        int      `json:"line" yaml:"line"` // 0 means whole file
}

// SmellSummary represents aggregate statistics
type SmellSummary struct {
	FilesAnalyzed    int            `json:"files_analyzed" yaml:"files_analyzed"`
	TotalCount       int            `json:"total_count" yaml:"total_count"`
	CountsByType     map[string]int `json:"counts_by_type,omitempty" yaml:"counts_by_type,omitempty"`
	CountsBySeverity map[string]int `json:"counts_by_severity,omitempty" yaml:"counts_by_severity,omitempty"`
}

// SmellResponse represents the complete detection result
type SmellResponse struct {
	Findings []SmellFinding `json:"findings" yaml:"findings"`
	Summary  SmellSummary   `json:"summary" yaml:"summary"`

	// SummaryText is the natural-language severity breakdown
	SummaryText string `json:"summary_text" yaml:"summary_text"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// SmellService defines the core business logic for smell detection
type SmellService interface {
	// Detect runs all smell detectors on the given request
	Detect(ctx context.Context, req SmellRequest) (*SmellResponse, error)
}

// SmellOutputFormatter defines the interface for formatting smell results
type SmellOutputFormatter interface {
	Format(response *SmellResponse, format OutputFormat) (string, error)
	Write(response *SmellResponse, format OutputFormat, writer io.Writer) error
}
