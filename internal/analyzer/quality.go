package analyzer

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/qscan-dev/qscan/internal/source"
)

// IssueSeverity classifies line-level issues on the error/warning/info
// axis, separate from the smell severity tiers.
type IssueSeverity string

const (
	IssueError   IssueSeverity = "error"
	IssueWarning IssueSeverity = "warning"
	IssueInfo    IssueSeverity = "info"
)

// Issue type tags.
const (
	IssueLineTooLong        = "line_too_long"
	IssueDebugStatement     = "debug_statement"
	IssueTodoMarker         = "todo_marker"
	IssueMultipleStatements = "multiple_statements"
)

// Issue is one line-oriented quality problem.
type Issue struct {
	Type     string
	Severity IssueSeverity
	Message  string
	Line     int
}

// QualityFactor is one 0-10 sub-score of the overall rating.
type QualityFactor struct {
	Name        string
	Score       int
	Description string
}

// QualityReport is the aggregated 0-100 score with its letter grade
// and the four contributing factors.
type QualityReport struct {
	Score   int
	Grade   string
	Factors []QualityFactor
}

// maxLineLength is the default overlong-line limit; callers override
// it per run through ScanIssuesWith.
const maxLineLength = 120

var todoPattern = regexp.MustCompile(`\b(TODO|FIXME|HACK)\b`)

// ScanIssues runs the simple line-oriented issue checks: overlong
// lines, leftover debug statements, work markers, and statement
// pile-ups.
func ScanIssues(src *source.Source) []Issue {
	return ScanIssuesWith(src, maxLineLength)
}

// ScanIssuesWith is ScanIssues with a caller-supplied line-length
// limit.
func ScanIssuesWith(src *source.Source, lineLimit int) []Issue {
	if lineLimit <= 0 {
		lineLimit = maxLineLength
	}

	var issues []Issue

	for i, line := range src.Lines {
		lineNo := i + 1

		if len(line) > lineLimit {
			issues = append(issues, Issue{
				Type:     IssueLineTooLong,
				Severity: IssueWarning,
				Message:  fmt.Sprintf("Line is %d characters (limit %d)", len(line), lineLimit),
				Line:     lineNo,
			})
		}

		if src.Lang.DebugPattern != nil && src.Lang.DebugPattern.MatchString(line) {
			issues = append(issues, Issue{
				Type:     IssueDebugStatement,
				Severity: IssueWarning,
				Message:  "Debug output statement left in code",
				Line:     lineNo,
			})
		}

		if todoPattern.MatchString(line) {
			issues = append(issues, Issue{
				Type:     IssueTodoMarker,
				Severity: IssueInfo,
				Message:  "Unresolved TODO/FIXME/HACK marker",
				Line:     lineNo,
			})
		}

		if strings.Count(line, ";") > 1 {
			issues = append(issues, Issue{
				Type:     IssueMultipleStatements,
				Severity: IssueWarning,
				Message:  "Multiple statements on one line",
				Line:     lineNo,
			})
		}
	}

	return issues
}

// ScoreQuality combines line metrics, function spans, and detected
// issues into four 0-10 factors, rescaled to a 0-100 score and letter
// grade.
func ScoreQuality(counts source.LineCounts, functions []source.FunctionSpan, issues []Issue) QualityReport {
	factors := []QualityFactor{
		documentationFactor(counts),
		complexityFactor(functions),
		issueFactor(issues),
		functionSizeFactor(functions),
	}

	raw := 0
	for _, f := range factors {
		raw += f.Score
	}
	score := int(math.Round(float64(raw) * 2.5))

	return QualityReport{
		Score:   score,
		Grade:   gradeFor(score),
		Factors: factors,
	}
}

func documentationFactor(counts source.LineCounts) QualityFactor {
	comments := counts.Comment
	if comments < 1 {
		comments = 1
	}
	ratio := float64(counts.Code) / float64(comments)

	score := 10
	switch {
	case ratio > 10:
		score = 5
	case ratio > 5:
		score = 7
	}
	return QualityFactor{
		Name:        "documentation",
		Score:       score,
		Description: fmt.Sprintf("Code-to-comment ratio %.1f", ratio),
	}
}

func complexityFactor(functions []source.FunctionSpan) QualityFactor {
	mean := 1.0
	if len(functions) > 0 {
		total := 0
		for _, fn := range functions {
			total += fn.Complexity
		}
		mean = float64(total) / float64(len(functions))
	}

	score := 10
	switch {
	case mean > 10:
		score = 3
	case mean > 5:
		score = 7
	}
	return QualityFactor{
		Name:        "complexity",
		Score:       score,
		Description: fmt.Sprintf("Average function complexity %.1f", mean),
	}
}

func issueFactor(issues []Issue) QualityFactor {
	errors := 0
	warnings := 0
	for _, issue := range issues {
		switch issue.Severity {
		case IssueError:
			errors++
		case IssueWarning:
			warnings++
		}
	}

	score := 10
	switch {
	case errors > 0:
		score = 2
	case warnings > 5:
		score = 5
	case warnings > 0:
		score = 8
	}
	return QualityFactor{
		Name:        "code quality",
		Score:       score,
		Description: fmt.Sprintf("%d errors, %d warnings detected", errors, warnings),
	}
}

func functionSizeFactor(functions []source.FunctionSpan) QualityFactor {
	mean := 0.0
	if len(functions) > 0 {
		total := 0
		for _, fn := range functions {
			total += fn.LineCount
		}
		mean = float64(total) / float64(len(functions))
	}

	score := 10
	switch {
	case mean > 50:
		score = 5
	case mean > 20:
		score = 8
	}
	return QualityFactor{
		Name:        "function size",
		Score:       score,
		Description: fmt.Sprintf("Average function length %.1f lines", mean),
	}
}

func gradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
