package source

import (
	"strings"

	"github.com/qscan-dev/qscan/internal/lang"
)

// FunctionSpan is the brace-delimited line range heuristically
// attributed to one function or method declaration. Lines are
// 1-indexed and inclusive.
type FunctionSpan struct {
	Name       string
	StartLine  int
	EndLine    int
	ParamCount int
	LineCount  int
	Complexity int
}

// span scanner states. The scanner is a small explicit state machine
// so that the "span never closes" case is a terminal condition rather
// than accidental fallthrough.
type spanState int

const (
	stateSearching spanState = iota
	stateInBody
)

// Functions extracts every function span that opens at a declaration
// pattern match and closes when its brace depth returns to zero. A
// span still open at end of input (truncated text) is dropped, not
// reported.
func (s *Source) Functions() []FunctionSpan {
	var spans []FunctionSpan

	state := stateSearching
	var current FunctionSpan
	depth := 0
	opened := false

	for i, line := range s.Lines {
		lineNo := i + 1

		// Until a brace opens the body, a fresh declaration supersedes
		// the pending one: a brace-less match (concise arrow body) must
		// not absorb the next brace-bearing function. Opening braces on
		// a later line (hanging-brace style) still attach to the
		// pending declaration because they match no pattern themselves.
		if state == stateSearching || !opened {
			if match := matchDecl(s.Lang, line); match != nil {
				current = FunctionSpan{
					Name:       match.name,
					StartLine:  lineNo,
					ParamCount: match.paramCount,
				}
				state = stateInBody
				depth = 0
				opened = false
			} else if state == stateSearching {
				continue
			}
		}

		closed := false
		for _, ch := range line {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				if depth > 0 {
					depth--
				}
				if opened && depth == 0 {
					closed = true
				}
			}
		}

		if closed {
			current.EndLine = lineNo
			current.LineCount = current.EndLine - current.StartLine + 1
			current.Complexity = spanComplexity(s.Lines[current.StartLine-1 : current.EndLine])
			spans = append(spans, current)
			state = stateSearching
		}
	}

	// stateInBody at end of input: truncated span, silently dropped
	return spans
}

type declMatch struct {
	name       string
	paramCount int
}

// matchDecl tries each declaration pattern in order; the first capture
// group, when non-empty, names the function.
func matchDecl(spec *lang.Spec, line string) *declMatch {
	for _, pattern := range spec.DeclPatterns {
		groups := pattern.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		name := "anonymous"
		for _, g := range groups[1:] {
			if g != "" {
				name = g
				break
			}
		}
		return &declMatch{
			name:       name,
			paramCount: len(ParamList(line)),
		}
	}
	return nil
}

// ParamList returns the non-empty comma-separated entries of the first
// parenthesized group on the line. No group or an empty group yields
// nil.
func ParamList(line string) []string {
	open := strings.Index(line, "(")
	if open < 0 {
		return nil
	}
	end := strings.Index(line[open:], ")")
	if end < 0 {
		return nil
	}
	inner := line[open+1 : open+end]

	var params []string
	for _, part := range strings.Split(inner, ",") {
		if strings.TrimSpace(part) != "" {
			params = append(params, strings.TrimSpace(part))
		}
	}
	return params
}

// spanComplexity is the local cyclomatic estimate for the span body:
// base 1 plus one per decision-pattern occurrence.
func spanComplexity(body []string) int {
	complexity := 1
	text := strings.Join(body, "\n")
	for _, pattern := range lang.DecisionPatterns {
		complexity += len(pattern.FindAllStringIndex(text, -1))
	}
	return complexity
}
