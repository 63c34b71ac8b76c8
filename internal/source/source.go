// Package source implements the shared line-scanning foundation the
// analyzers are built on: line classification, brace-depth tracking,
// and heuristic function-span extraction. It never parses; everything
// here is a per-line approximation and is documented as such.
package source

import (
	"strings"

	"github.com/qscan-dev/qscan/internal/lang"
)

// LineClass is the classification of a single physical line. Every
// line has exactly one class; blank wins over comment, comment over
// code.
type LineClass int

const (
	// ClassCode is any line that is neither blank nor a comment
	ClassCode LineClass = iota

	// ClassComment is a line whose trimmed text starts with one of the
	// language's comment prefixes
	ClassComment

	// ClassBlank is a line that is empty after trimming whitespace
	ClassBlank
)

// Source is an immutable view of one input text: its lines and the
// language spec selected for it. Line numbers are 1-indexed
// throughout.
type Source struct {
	Lines []string
	Lang  *lang.Spec
}

// New splits text into lines and resolves the language tag. Unknown
// tags fall back to the C-family default spec.
func New(text, languageTag string) *Source {
	return &Source{
		Lines: SplitLines(text),
		Lang:  lang.Lookup(languageTag),
	}
}

// SplitLines splits on \n, tolerating \r\n input. An empty text yields
// a single empty line, matching the behavior of strings.Split.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Classify returns the per-line classification in input order.
func (s *Source) Classify() []LineClass {
	classes := make([]LineClass, len(s.Lines))
	for i, line := range s.Lines {
		classes[i] = s.ClassifyLine(line)
	}
	return classes
}

// ClassifyLine classifies a single line: blank first, then comment
// prefix, otherwise code. Block comments are detected line by line via
// prefix matching only; an interior block-comment line without its own
// prefix token counts as code. That is a deliberate simplification of
// the scanner, not an oversight.
func (s *Source) ClassifyLine(line string) LineClass {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ClassBlank
	}
	if s.Lang.IsCommentLine(trimmed) {
		return ClassComment
	}
	return ClassCode
}

// LineCounts aggregates the classification into totals.
type LineCounts struct {
	Total   int
	Code    int
	Comment int
	Blank   int
}

// CountLines tallies line classes over the whole source.
func (s *Source) CountLines() LineCounts {
	counts := LineCounts{Total: len(s.Lines)}
	for _, class := range s.Classify() {
		switch class {
		case ClassBlank:
			counts.Blank++
		case ClassComment:
			counts.Comment++
		default:
			counts.Code++
		}
	}
	return counts
}

// NonBlankLines returns the count of lines that are not blank,
// including comment lines.
func (s *Source) NonBlankLines() int {
	counts := s.CountLines()
	return counts.Total - counts.Blank
}

// BraceDelta applies a line's brace occurrences to depth, clamping at
// zero so unbalanced or truncated snippets never drive the counter
// negative.
func BraceDelta(depth int, line string) int {
	depth += strings.Count(line, "{")
	depth -= strings.Count(line, "}")
	if depth < 0 {
		depth = 0
	}
	return depth
}

// MaxBraceDepth scans every brace character in the text and returns
// the running maximum depth. Purely character-driven: object literals
// count the same as blocks.
func MaxBraceDepth(text string) int {
	depth := 0
	maxDepth := 0
	for _, ch := range text {
		switch ch {
		case '{':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case '}':
			depth--
			if depth < 0 {
				depth = 0
			}
		}
	}
	return maxDepth
}
