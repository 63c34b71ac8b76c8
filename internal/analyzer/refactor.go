package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/qscan-dev/qscan/internal/source"
)

// Priority mirrors Severity for suggestions.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// EffortLevel estimates how invasive a suggested refactoring is.
type EffortLevel string

const (
	EffortSmall  EffortLevel = "small"
	EffortMedium EffortLevel = "medium"
	EffortLarge  EffortLevel = "large"
)

// Suggestion type tags.
const (
	RefactorExtractMethod      = "extract_method"
	RefactorRenameVariable     = "rename_variable"
	RefactorIntroduceParameter = "introduce_parameter"
	RefactorReplaceConditional = "replace_conditional"
	RefactorSimplifyExpression = "simplify_expression"
	RefactorEncapsulateField   = "encapsulate_field"
	RefactorRemoveDuplication  = "remove_duplication"
	RefactorModernizeSyntax    = "modernize_syntax"
)

// CodeExample is an optional before/after pair attached to a
// suggestion.
type CodeExample struct {
	Before string
	After  string
}

// Suggestion is one prioritized refactoring opportunity.
type Suggestion struct {
	Type        string
	Priority    Priority
	Description string
	Rationale   string
	Line        int
	Effort      EffortLevel
	Example     *CodeExample
}

// RefactorReport aggregates all suggester output for one input.
type RefactorReport struct {
	TotalCount       int
	CountsByPriority map[string]int
	Suggestions      []Suggestion
	Summary          string
}

// Per-suggester result caps keep a messy file from flooding the
// output.
const (
	extractMethodLines = 30
	extractMethodCap   = 3
	renameCap          = 5
	introduceParamCap  = 3
	replaceCondCap     = 3
	simplifyCap        = 5
	encapsulateCap     = 3
	removeDupMinCount  = 2
	removeDupCap       = 5
	modernizeCap       = 5
)

type suggester func(*source.Source, SmellThresholds) []Suggestion

var suggesters = []suggester{
	suggestExtractMethod,
	suggestRenameVariable,
	suggestIntroduceParameter,
	suggestReplaceConditional,
	suggestSimplifyExpression,
	suggestEncapsulateField,
	suggestRemoveDuplication,
	suggestModernizeSyntax,
}

// SuggestRefactorings runs every registered suggester and groups the
// combined suggestions by priority.
func SuggestRefactorings(src *source.Source) RefactorReport {
	return SuggestRefactoringsWith(src, DefaultSmellThresholds())
}

// SuggestRefactoringsWith is SuggestRefactorings with caller-supplied
// thresholds.
func SuggestRefactoringsWith(src *source.Source, th SmellThresholds) RefactorReport {
	report := RefactorReport{CountsByPriority: make(map[string]int)}

	for _, suggest := range suggesters {
		for _, s := range suggest(src, th) {
			report.Suggestions = append(report.Suggestions, s)
			report.CountsByPriority[string(s.Priority)]++
		}
	}
	report.TotalCount = len(report.Suggestions)
	report.Summary = summarizePriorities(report)

	return report
}

func summarizePriorities(report RefactorReport) string {
	if report.TotalCount == 0 {
		return "No refactoring suggestions. The code looks clean."
	}
	noun := "refactoring suggestions"
	if report.TotalCount == 1 {
		noun = "refactoring suggestion"
	}
	return fmt.Sprintf("Found %d %s: %d high, %d medium, %d low priority.",
		report.TotalCount, noun,
		report.CountsByPriority[string(PriorityHigh)],
		report.CountsByPriority[string(PriorityMedium)],
		report.CountsByPriority[string(PriorityLow)])
}

func suggestExtractMethod(src *source.Source, _ SmellThresholds) []Suggestion {
	var suggestions []Suggestion
	for _, fn := range src.Functions() {
		if len(suggestions) >= extractMethodCap {
			break
		}
		if fn.LineCount > extractMethodLines {
			suggestions = append(suggestions, Suggestion{
				Type:        RefactorExtractMethod,
				Priority:    PriorityHigh,
				Description: fmt.Sprintf("Function '%s' spans %d lines", fn.Name, fn.LineCount),
				Rationale:   "Long functions hide multiple responsibilities; extract cohesive blocks into named helpers",
				Line:        fn.StartLine,
				Effort:      EffortLarge,
			})
		}
	}
	return suggestions
}

var (
	singleLetterPattern = regexp.MustCompile(`\b[a-z]\b`)
	loopHeaderPattern   = regexp.MustCompile(`^\s*(for|while)\b`)
	genericNames        = map[string]bool{"temp": true, "tmp": true, "data": true, "val": true, "obj": true}
)

func suggestRenameVariable(src *source.Source, _ SmellThresholds) []Suggestion {
	var suggestions []Suggestion

	for i, line := range src.Lines {
		if len(suggestions) >= renameCap {
			return suggestions
		}

		// Bare single-letter names outside loop headers; i, j, k are
		// conventional counters and exempt
		if !loopHeaderPattern.MatchString(line) {
			for _, letter := range singleLetterPattern.FindAllString(line, -1) {
				if letter == "i" || letter == "j" || letter == "k" {
					continue
				}
				suggestions = append(suggestions, Suggestion{
					Type:        RefactorRenameVariable,
					Priority:    PriorityLow,
					Description: fmt.Sprintf("Single-letter identifier '%s'", letter),
					Rationale:   "Descriptive names make intent readable without tracing the code",
					Line:        i + 1,
					Effort:      EffortSmall,
				})
				break // one suggestion per line is enough
			}
		}
		if len(suggestions) >= renameCap {
			return suggestions
		}

		// Generic names on declaration lines
		if groups := src.Lang.VarDeclPattern.FindStringSubmatch(line); groups != nil {
			for _, name := range groups[1:] {
				if genericNames[name] {
					suggestions = append(suggestions, Suggestion{
						Type:        RefactorRenameVariable,
						Priority:    PriorityMedium,
						Description: fmt.Sprintf("Generic variable name '%s'", name),
						Rationale:   "Name the variable after what it holds, not its shape",
						Line:        i + 1,
						Effort:      EffortSmall,
					})
					break
				}
			}
		}
	}
	return suggestions
}

var numericArgCallPattern = regexp.MustCompile(`\w+\s*\([^)]*\b\d+\b[^)]*\)`)

func suggestIntroduceParameter(src *source.Source, _ SmellThresholds) []Suggestion {
	var suggestions []Suggestion
	for i, line := range src.Lines {
		if len(suggestions) >= introduceParamCap {
			break
		}
		if loopHeaderPattern.MatchString(line) {
			continue
		}
		if numericArgCallPattern.MatchString(line) {
			suggestions = append(suggestions, Suggestion{
				Type:        RefactorIntroduceParameter,
				Priority:    PriorityLow,
				Description: "Call site passes an inline numeric literal",
				Rationale:   "Hoist the literal into a named parameter or constant so the call explains itself",
				Line:        i + 1,
				Effort:      EffortSmall,
			})
		}
	}
	return suggestions
}

var ternaryExample = &CodeExample{
	Before: "const label = a ? (b ? 'both' : 'first') : (b ? 'second' : 'none');",
	After:  "function labelFor(a, b) {\n  if (a && b) return 'both';\n  if (a) return 'first';\n  if (b) return 'second';\n  return 'none';\n}",
}

func suggestReplaceConditional(src *source.Source, _ SmellThresholds) []Suggestion {
	var suggestions []Suggestion
	for i, line := range src.Lines {
		if len(suggestions) >= replaceCondCap {
			break
		}
		if strings.Count(line, "?") >= 2 {
			suggestions = append(suggestions, Suggestion{
				Type:        RefactorReplaceConditional,
				Priority:    PriorityHigh,
				Description: "Nested ternary expressions on one line",
				Rationale:   "Nested ternaries are hard to scan; an if/else chain or lookup reads clearer",
				Line:        i + 1,
				Effort:      EffortMedium,
				Example:     ternaryExample,
			})
			continue
		}
		if strings.Count(line, "&&")+strings.Count(line, "||") >= 4 {
			suggestions = append(suggestions, Suggestion{
				Type:        RefactorReplaceConditional,
				Priority:    PriorityMedium,
				Description: "Complex boolean expression with 4+ logical operators",
				Rationale:   "Extract the condition into a well-named predicate function",
				Line:        i + 1,
				Effort:      EffortMedium,
			})
		}
	}
	return suggestions
}

var (
	boolCompareExample = &CodeExample{
		Before: "if (isReady === true) {",
		After:  "if (isReady) {",
	}
	doubleNegationExample = &CodeExample{
		Before: "const present = !!value;",
		After:  "const present = Boolean(value);",
	}
)

func suggestSimplifyExpression(src *source.Source, _ SmellThresholds) []Suggestion {
	var suggestions []Suggestion
	for i, line := range src.Lines {
		if len(suggestions) >= simplifyCap {
			break
		}
		if strings.Contains(line, "=== true") || strings.Contains(line, "=== false") {
			suggestions = append(suggestions, Suggestion{
				Type:        RefactorSimplifyExpression,
				Priority:    PriorityLow,
				Description: "Explicit comparison against a boolean literal",
				Rationale:   "Booleans are already conditions; the comparison adds noise",
				Line:        i + 1,
				Effort:      EffortSmall,
				Example:     boolCompareExample,
			})
			continue
		}
		if strings.Contains(line, "!!") {
			suggestions = append(suggestions, Suggestion{
				Type:        RefactorSimplifyExpression,
				Priority:    PriorityLow,
				Description: "Double negation used for boolean coercion",
				Rationale:   "An explicit conversion states the intent directly",
				Line:        i + 1,
				Effort:      EffortSmall,
				Example:     doubleNegationExample,
			})
		}
	}
	return suggestions
}

var (
	fieldAssignPattern = regexp.MustCompile(`this\.(\w+)\s*=`)
	constructorPattern = regexp.MustCompile(`\bconstructor\s*\(`)
)

func suggestEncapsulateField(src *source.Source, _ SmellThresholds) []Suggestion {
	if !src.Lang.CFamily {
		return nil
	}

	var suggestions []Suggestion
	inConstructor := false
	constructorDepth := 0
	for i, line := range src.Lines {
		if len(suggestions) >= encapsulateCap {
			break
		}
		if inConstructor {
			constructorDepth = source.BraceDelta(constructorDepth, line)
			if constructorDepth == 0 {
				inConstructor = false
			}
			continue
		}
		if constructorPattern.MatchString(line) {
			inConstructor = true
			constructorDepth = source.BraceDelta(0, line)
			continue
		}
		if groups := fieldAssignPattern.FindStringSubmatch(line); groups != nil {
			suggestions = append(suggestions, Suggestion{
				Type:        RefactorEncapsulateField,
				Priority:    PriorityMedium,
				Description: fmt.Sprintf("Direct assignment to field '%s' outside the constructor", groups[1]),
				Rationale:   "Route mutations through a setter or method so invariants live in one place",
				Line:        i + 1,
				Effort:      EffortMedium,
			})
		}
	}
	return suggestions
}

func suggestRemoveDuplication(src *source.Source, th SmellThresholds) []Suggestion {
	idx := indexDuplicateLines(src, th.DuplicateMinLength)

	var suggestions []Suggestion
	reported := make(map[uint64]bool)
	for i, line := range src.Lines {
		if len(suggestions) >= removeDupCap {
			break
		}
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= th.DuplicateMinLength {
			continue
		}
		key := xxhash.Sum64String(trimmed)
		if idx.counts[key] < removeDupMinCount || reported[key] {
			continue
		}
		reported[key] = true
		suggestions = append(suggestions, Suggestion{
			Type:        RefactorRemoveDuplication,
			Priority:    PriorityMedium,
			Description: fmt.Sprintf("Line appears %d times: %q", idx.counts[key], truncate(trimmed, 60)),
			Rationale:   "Shared logic belongs in one place; duplicates drift apart over time",
			Line:        i + 1,
			Effort:      EffortMedium,
		})
	}
	return suggestions
}

var (
	anonymousCallbackPattern = regexp.MustCompile(`\.(map|filter|forEach)\s*\(\s*function\s*\(`)

	legacyVarExample = &CodeExample{
		Before: "var total = 0;",
		After:  "let total = 0; // or const when never reassigned",
	}
	arrowExample = &CodeExample{
		Before: "items.map(function (item) { return item.id; });",
		After:  "items.map((item) => item.id);",
	}
)

func suggestModernizeSyntax(src *source.Source, _ SmellThresholds) []Suggestion {
	if src.Lang.LegacyVarKeyword == "" {
		return nil
	}
	legacyPattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(src.Lang.LegacyVarKeyword) + `\s+\w`)

	var suggestions []Suggestion
	for i, line := range src.Lines {
		if len(suggestions) >= modernizeCap {
			break
		}
		if legacyPattern.MatchString(line) {
			suggestions = append(suggestions, Suggestion{
				Type:        RefactorModernizeSyntax,
				Priority:    PriorityLow,
				Description: fmt.Sprintf("Legacy '%s' declaration", src.Lang.LegacyVarKeyword),
				Rationale:   "Block-scoped declarations avoid hoisting surprises",
				Line:        i + 1,
				Effort:      EffortSmall,
				Example:     legacyVarExample,
			})
			continue
		}
		if anonymousCallbackPattern.MatchString(line) {
			suggestions = append(suggestions, Suggestion{
				Type:        RefactorModernizeSyntax,
				Priority:    PriorityLow,
				Description: "Anonymous function literal passed as a callback",
				Rationale:   "An arrow function is shorter and keeps the lexical this",
				Line:        i + 1,
				Effort:      EffortSmall,
				Example:     arrowExample,
			})
		}
	}
	return suggestions
}
