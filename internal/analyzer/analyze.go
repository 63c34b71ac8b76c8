package analyzer

import (
	"github.com/qscan-dev/qscan/internal/source"
)

// FileMetrics are the per-file line totals.
type FileMetrics struct {
	TotalLines   int
	CodeLines    int
	CommentLines int
	BlankLines   int
}

// FunctionInfo describes one extracted function span.
type FunctionInfo struct {
	Name       string
	StartLine  int
	EndLine    int
	LineCount  int
	ParamCount int
	Complexity int
}

// VariableInfo records a variable declaration site.
type VariableInfo struct {
	Name string
	Line int
}

// FileAnalysis is the unified result of the analyze operation: line
// metrics, extracted functions and variables, line-level issues, and
// the overall quality report.
type FileAnalysis struct {
	Name      string
	Metrics   FileMetrics
	Functions []FunctionInfo
	Variables []VariableInfo
	Issues    []Issue
	Quality   QualityReport
}

// AnalyzeConfig tunes Analyze. The zero value keeps the default line
// limit and runs the issue scan.
type AnalyzeConfig struct {
	MaxLineLength int
	SkipIssueScan bool
}

// Analyze runs the full per-file analysis. Like every engine
// operation it is total: empty input produces zeroed metrics, never an
// error.
func Analyze(src *source.Source, displayName string) FileAnalysis {
	return AnalyzeWith(src, displayName, AnalyzeConfig{})
}

// AnalyzeWith is Analyze with caller-supplied tuning.
func AnalyzeWith(src *source.Source, displayName string, cfg AnalyzeConfig) FileAnalysis {
	counts := src.CountLines()
	spans := src.Functions()

	var issues []Issue
	if !cfg.SkipIssueScan {
		issues = ScanIssuesWith(src, cfg.MaxLineLength)
	}

	functions := make([]FunctionInfo, 0, len(spans))
	for _, fn := range spans {
		functions = append(functions, FunctionInfo{
			Name:       fn.Name,
			StartLine:  fn.StartLine,
			EndLine:    fn.EndLine,
			LineCount:  fn.LineCount,
			ParamCount: fn.ParamCount,
			Complexity: fn.Complexity,
		})
	}

	return FileAnalysis{
		Name: displayName,
		Metrics: FileMetrics{
			TotalLines:   counts.Total,
			CodeLines:    counts.Code,
			CommentLines: counts.Comment,
			BlankLines:   counts.Blank,
		},
		Functions: functions,
		Variables: scanVariables(src),
		Issues:    issues,
		Quality:   ScoreQuality(counts, spans, issues),
	}
}

func scanVariables(src *source.Source) []VariableInfo {
	var variables []VariableInfo
	for i, line := range src.Lines {
		groups := src.Lang.VarDeclPattern.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		for _, name := range groups[1:] {
			if name != "" {
				variables = append(variables, VariableInfo{Name: name, Line: i + 1})
				break
			}
		}
	}
	return variables
}
