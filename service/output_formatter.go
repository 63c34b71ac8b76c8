package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/qscan-dev/qscan/domain"
)

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// AnalyzeFormatterImpl implements the AnalyzeOutputFormatter interface
type AnalyzeFormatterImpl struct{}

// NewAnalyzeFormatter creates a new analyze output formatter
func NewAnalyzeFormatter() *AnalyzeFormatterImpl {
	return &AnalyzeFormatterImpl{}
}

// Format formats the analysis response according to the specified format
func (f *AnalyzeFormatterImpl) Format(response *domain.AnalyzeResponse, format domain.OutputFormat) (string, error) {
	var buf bytes.Buffer
	if err := f.Write(response, format, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write writes the formatted output to the writer
func (f *AnalyzeFormatterImpl) Write(response *domain.AnalyzeResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *AnalyzeFormatterImpl) writeText(response *domain.AnalyzeResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== qscan Analysis Report ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	// Summary
	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files analyzed: %d\n", response.Summary.FilesAnalyzed)
	fmt.Fprintf(writer, "  Total lines: %d\n", response.Summary.TotalLines)
	fmt.Fprintf(writer, "  Total functions: %d\n", response.Summary.TotalFunctions)
	fmt.Fprintf(writer, "  Total issues: %d\n", response.Summary.TotalIssues)
	fmt.Fprintf(writer, "  Average score: %.1f\n", response.Summary.AverageScore)
	fmt.Fprintf(writer, "\n")

	// File details
	for _, file := range response.Files {
		fmt.Fprintf(writer, "%s: %d/100 (%s)\n", file.FilePath, file.Quality.Score, file.Quality.Grade)
		fmt.Fprintf(writer, "  Lines: %d total, %d code, %d comment, %d blank\n",
			file.Metrics.TotalLines, file.Metrics.CodeLines,
			file.Metrics.CommentLines, file.Metrics.BlankLines)
		if len(file.Functions) > 0 {
			fmt.Fprintf(writer, "  Functions:\n")
			for _, fn := range file.Functions {
				fmt.Fprintf(writer, "    %s (lines %d-%d, complexity %d)\n",
					fn.Name, fn.StartLine, fn.EndLine, fn.Complexity)
			}
		}
		for _, issue := range file.Issues {
			fmt.Fprintf(writer, "  Line %d: %s [%s]\n", issue.Line, issue.Message, issue.Severity)
		}
		for _, factor := range file.Quality.Factors {
			fmt.Fprintf(writer, "  %s: %d/10\n", factor.Name, factor.Score)
		}
		fmt.Fprintf(writer, "\n")
	}

	// Optional sections
	if response.Smells != nil {
		if err := NewSmellFormatter().Write(response.Smells, domain.OutputFormatText, writer); err != nil {
			return err
		}
	}
	if response.Refactors != nil {
		if err := NewRefactorFormatter().Write(response.Refactors, domain.OutputFormatText, writer); err != nil {
			return err
		}
	}
	if response.Complexity != nil {
		if err := NewComplexityFormatter().Write(response.Complexity, domain.OutputFormatText, writer); err != nil {
			return err
		}
	}

	writeDiagnostics(writer, response.Warnings, response.Errors)
	return nil
}

// SmellFormatterImpl implements the SmellOutputFormatter interface
type SmellFormatterImpl struct{}

// NewSmellFormatter creates a new smell output formatter
func NewSmellFormatter() *SmellFormatterImpl {
	return &SmellFormatterImpl{}
}

// Format formats the smell response according to the specified format
func (f *SmellFormatterImpl) Format(response *domain.SmellResponse, format domain.OutputFormat) (string, error) {
	var buf bytes.Buffer
	if err := f.Write(response, format, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write writes the formatted output to the writer
func (f *SmellFormatterImpl) Write(response *domain.SmellResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *SmellFormatterImpl) writeText(response *domain.SmellResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Code Smell Analysis ===\n\n")
	fmt.Fprintf(writer, "%s\n\n", response.SummaryText)

	// Severity distribution
	if response.Summary.TotalCount > 0 {
		fmt.Fprintf(writer, "Severity Distribution:\n")
		fmt.Fprintf(writer, "  High: %d\n", response.Summary.CountsBySeverity[string(domain.SeverityHigh)])
		fmt.Fprintf(writer, "  Medium: %d\n", response.Summary.CountsBySeverity[string(domain.SeverityMedium)])
		fmt.Fprintf(writer, "  Low: %d\n", response.Summary.CountsBySeverity[string(domain.SeverityLow)])
		fmt.Fprintf(writer, "\n")
	}

	for _, finding := range response.Findings {
		location := finding.FilePath
		if finding.Line > 0 {
			location = fmt.Sprintf("%s:%d", finding.FilePath, finding.Line)
		}
		fmt.Fprintf(writer, "  [%s] %s (%s)\n", finding.Severity, finding.Type, location)
		fmt.Fprintf(writer, "    %s\n", finding.Description)
		if finding.Remediation != "" {
			fmt.Fprintf(writer, "    Remediation: %s\n", finding.Remediation)
		}
	}

	writeDiagnostics(writer, response.Warnings, response.Errors)
	return nil
}

// RefactorFormatterImpl implements the RefactorOutputFormatter interface
type RefactorFormatterImpl struct{}

// NewRefactorFormatter creates a new refactoring output formatter
func NewRefactorFormatter() *RefactorFormatterImpl {
	return &RefactorFormatterImpl{}
}

// Format formats the refactoring response according to the specified format
func (f *RefactorFormatterImpl) Format(response *domain.RefactorResponse, format domain.OutputFormat) (string, error) {
	var buf bytes.Buffer
	if err := f.Write(response, format, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write writes the formatted output to the writer
func (f *RefactorFormatterImpl) Write(response *domain.RefactorResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *RefactorFormatterImpl) writeText(response *domain.RefactorResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Refactoring Suggestions ===\n\n")
	fmt.Fprintf(writer, "%s\n\n", response.SummaryText)

	for _, suggestion := range response.Suggestions {
		location := suggestion.FilePath
		if suggestion.Line > 0 {
			location = fmt.Sprintf("%s:%d", suggestion.FilePath, suggestion.Line)
		}
		fmt.Fprintf(writer, "  [%s] %s (%s, effort: %s)\n",
			suggestion.Priority, suggestion.Type, location, suggestion.Effort)
		fmt.Fprintf(writer, "    %s\n", suggestion.Description)
		if suggestion.Rationale != "" {
			fmt.Fprintf(writer, "    Rationale: %s\n", suggestion.Rationale)
		}
		if suggestion.Example != nil {
			fmt.Fprintf(writer, "    Before: %s\n", suggestion.Example.Before)
			fmt.Fprintf(writer, "    After:  %s\n", suggestion.Example.After)
		}
	}

	writeDiagnostics(writer, response.Warnings, response.Errors)
	return nil
}

// ComplexityFormatterImpl implements the ComplexityOutputFormatter interface
type ComplexityFormatterImpl struct{}

// NewComplexityFormatter creates a new complexity output formatter
func NewComplexityFormatter() *ComplexityFormatterImpl {
	return &ComplexityFormatterImpl{}
}

// Format formats the complexity response according to the specified format
func (f *ComplexityFormatterImpl) Format(response *domain.ComplexityResponse, format domain.OutputFormat) (string, error) {
	var buf bytes.Buffer
	if err := f.Write(response, format, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write writes the formatted output to the writer
func (f *ComplexityFormatterImpl) Write(response *domain.ComplexityResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *ComplexityFormatterImpl) writeText(response *domain.ComplexityResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Complexity Analysis ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	// Summary
	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files analyzed: %d\n", response.Summary.FilesAnalyzed)
	fmt.Fprintf(writer, "  Total functions: %d\n", response.Summary.TotalFunctions)
	fmt.Fprintf(writer, "  Average complexity: %.2f\n", response.Summary.AverageComplexity)
	fmt.Fprintf(writer, "  Max complexity: %d\n", response.Summary.MaxComplexity)
	fmt.Fprintf(writer, "  Average maintainability: %.1f\n", response.Summary.AverageMaintainability)
	fmt.Fprintf(writer, "\n")

	// Risk distribution
	fmt.Fprintf(writer, "Risk Distribution:\n")
	fmt.Fprintf(writer, "  High risk: %d\n", response.Summary.HighRiskFunctions)
	fmt.Fprintf(writer, "  Medium risk: %d\n", response.Summary.MediumRiskFunctions)
	fmt.Fprintf(writer, "  Low risk: %d\n", response.Summary.LowRiskFunctions)
	fmt.Fprintf(writer, "\n")

	// File details
	for _, file := range response.Files {
		fmt.Fprintf(writer, "%s:\n", file.FilePath)
		fmt.Fprintf(writer, "  Cyclomatic: %d\n", file.Cyclomatic)
		fmt.Fprintf(writer, "  Cognitive: %d\n", file.Cognitive)
		fmt.Fprintf(writer, "  Nesting depth: %d\n", file.NestingDepth)
		fmt.Fprintf(writer, "  Maintainability: %.0f [%s]\n", file.Maintainability, file.RiskLevel)
		fmt.Fprintf(writer, "  Halstead volume: %.2f, difficulty: %.2f, effort: %.2f\n",
			file.Halstead.Volume, file.Halstead.Difficulty, file.Halstead.Effort)
		for _, rec := range file.Recommendations {
			fmt.Fprintf(writer, "  - %s\n", rec)
		}
	}

	// Function details
	if len(response.Functions) > 0 {
		fmt.Fprintf(writer, "\nFunctions:\n")
		for _, fn := range response.Functions {
			riskIndicator := ""
			switch fn.RiskLevel {
			case domain.RiskLevelHigh:
				riskIndicator = " [HIGH]"
			case domain.RiskLevelMedium:
				riskIndicator = " [MEDIUM]"
			}
			fmt.Fprintf(writer, "  %s: %d%s\n", fn.Name, fn.Complexity, riskIndicator)
			fmt.Fprintf(writer, "    File: %s:%d-%d\n", fn.FilePath, fn.StartLine, fn.EndLine)
		}
	}

	writeDiagnostics(writer, response.Warnings, response.Errors)
	return nil
}

// writeDiagnostics appends the warning and error lists shared by every
// text report.
func writeDiagnostics(writer io.Writer, warnings, errors []string) {
	if len(warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}
	if len(errors) > 0 {
		fmt.Fprintf(writer, "\nErrors:\n")
		for _, e := range errors {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
	}
}
