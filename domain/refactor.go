package domain

import (
	"context"
	"io"
)

// RefactorRequest represents a request for refactoring suggestions
type RefactorRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	ShowDetails  bool

	// Filtering and sorting
	MinPriority Priority
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

// CodeExample is an optional before/after pair attached to a suggestion
type CodeExample struct {
	Before string `json:"before" yaml:"before"`
	After  string `json:"after" yaml:"after"`
}

// RefactorSuggestion represents a single prioritized refactoring opportunity
type RefactorSuggestion struct {
	Type        string       `json:"type" yaml:"type"`
	Priority    Priority     `json:"priority" yaml:"priority"`
	Description string       `json:"description" yaml:"description"`
	Rationale   string       `json:"rationale" yaml:"rationale"`
	FilePath    string       `json:"file_path" yaml:"file_path"`
	Line        int          `json:"line" yaml:"line"`
	Effort      EffortLevel  `json:"effort" yaml:"effort"`
	Example     *CodeExample `json:"example,omitempty" yaml:"example,omitempty"`
}

// RefactorSummary represents aggregate statistics
type RefactorSummary struct {
	FilesAnalyzed    int            `json:"files_analyzed" yaml:"files_analyzed"`
	TotalCount       int            `json:"total_count" yaml:"total_count"`
	CountsByType     map[string]int `json:"counts_by_type,omitempty" yaml:"counts_by_type,omitempty"`
	CountsByPriority map[string]int `json:"counts_by_priority,omitempty" yaml:"counts_by_priority,omitempty"`
}

// RefactorResponse represents the complete suggestion result
type RefactorResponse struct {
	Suggestions []RefactorSuggestion `json:"suggestions" yaml:"suggestions"`
	Summary     RefactorSummary      `json:"summary" yaml:"summary"`

	// SummaryText is the natural-language priority breakdown
	SummaryText string `json:"summary_text" yaml:"summary_text"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// RefactorService defines the core business logic for refactoring suggestions
type RefactorService interface {
	// Suggest runs all suggesters on the given request
	Suggest(ctx context.Context, req RefactorRequest) (*RefactorResponse, error)
}

// RefactorOutputFormatter defines the interface for formatting suggestion results
type RefactorOutputFormatter interface {
	Format(response *RefactorResponse, format OutputFormat) (string, error)
	Write(response *RefactorResponse, format OutputFormat, writer io.Writer) error
}
