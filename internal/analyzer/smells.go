package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/qscan-dev/qscan/internal/lang"
	"github.com/qscan-dev/qscan/internal/source"
)

// Severity is the three-level finding tier.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Smell type tags.
const (
	SmellLongMethod         = "long_method"
	SmellLongParameterList  = "long_parameter_list"
	SmellDuplicateCode      = "duplicate_code"
	SmellDeadCode           = "dead_code"
	SmellMagicNumber        = "magic_number"
	SmellNestedLoops        = "nested_loops"
	SmellGodClass           = "god_class"
	SmellLargeClass         = "large_class"
	SmellPrimitiveObsession = "primitive_obsession"
	SmellLongSwitch         = "long_switch"
)

// Finding is one structural smell occurrence. Line is 1-indexed; zero
// means the finding applies to the whole input.
type Finding struct {
	Type        string
	Severity    Severity
	Description string
	Remediation string
	Line        int
}

// SmellReport aggregates all detector output for one input.
type SmellReport struct {
	TotalCount   int
	CountsByType map[string]int
	Findings     []Finding
	Summary      string
}

// Default detector thresholds. The boundary semantics (strictly
// greater-than, at-least for occurrence counts) are part of the
// contract.
const (
	longMethodLines    = 50
	maxParameters      = 5
	duplicateMinLength = 20
	duplicateMinCount  = 3
	magicNumberCap     = 10
	nestedLoopDepth    = 3
	godClassMethods    = 20
	largeClassLines    = 500
	primitiveParamMax  = 3
	switchCaseMax      = 7
)

// SmellThresholds carries the tunable detector limits. Callers start
// from DefaultSmellThresholds and override individual fields; the zero
// value would make every greater-than comparison fire on trivial input.
type SmellThresholds struct {
	LongMethodLines     int
	MaxParameters       int
	DuplicateMinLength  int
	DuplicateMinCount   int
	MagicNumberCap      int
	NestedLoopDepth     int
	GodClassMethods     int
	LargeClassLines     int
	PrimitiveParamLimit int
	SwitchCaseLimit     int
}

// DefaultSmellThresholds returns the built-in detector limits.
func DefaultSmellThresholds() SmellThresholds {
	return SmellThresholds{
		LongMethodLines:     longMethodLines,
		MaxParameters:       maxParameters,
		DuplicateMinLength:  duplicateMinLength,
		DuplicateMinCount:   duplicateMinCount,
		MagicNumberCap:      magicNumberCap,
		NestedLoopDepth:     nestedLoopDepth,
		GodClassMethods:     godClassMethods,
		LargeClassLines:     largeClassLines,
		PrimitiveParamLimit: primitiveParamMax,
		SwitchCaseLimit:     switchCaseMax,
	}
}

// smellDetector is a pure pass over the source. Detectors run
// independently; their results are concatenated without deduplication.
type smellDetector func(*source.Source, SmellThresholds) []Finding

var smellDetectors = []smellDetector{
	detectLongMethods,
	detectLongParameterLists,
	detectDuplicateLines,
	detectDeadCode,
	detectMagicNumbers,
	detectNestedLoops,
	detectGodClass,
	detectLargeClass,
	detectPrimitiveObsession,
	detectLongSwitches,
}

// DetectSmells runs every registered detector with the default
// thresholds and groups the combined findings by type.
func DetectSmells(src *source.Source) SmellReport {
	return DetectSmellsWith(src, DefaultSmellThresholds())
}

// DetectSmellsWith is DetectSmells with caller-supplied thresholds.
func DetectSmellsWith(src *source.Source, th SmellThresholds) SmellReport {
	report := SmellReport{CountsByType: make(map[string]int)}

	for _, detect := range smellDetectors {
		for _, finding := range detect(src, th) {
			report.Findings = append(report.Findings, finding)
			report.CountsByType[finding.Type]++
		}
	}
	report.TotalCount = len(report.Findings)
	high, medium, low := severityCounts(report.Findings)
	report.Summary = summarizeSeverities("code smell", report.TotalCount, high, medium, low)

	return report
}

func severityCounts(findings []Finding) (high, medium, low int) {
	for _, f := range findings {
		switch f.Severity {
		case SeverityHigh:
			high++
		case SeverityMedium:
			medium++
		case SeverityLow:
			low++
		}
	}
	return
}

func summarizeSeverities(noun string, total int, high, medium, low int) string {
	if total == 0 {
		return fmt.Sprintf("No %ss detected. The code looks clean.", noun)
	}
	plural := noun + "s"
	if total == 1 {
		plural = noun
	}
	return fmt.Sprintf("Found %d %s: %d high, %d medium, %d low severity.",
		total, plural, high, medium, low)
}

func detectLongMethods(src *source.Source, th SmellThresholds) []Finding {
	var findings []Finding
	for _, fn := range src.Functions() {
		if fn.LineCount > th.LongMethodLines {
			findings = append(findings, Finding{
				Type:        SmellLongMethod,
				Severity:    SeverityHigh,
				Description: fmt.Sprintf("Function '%s' is %d lines long", fn.Name, fn.LineCount),
				Remediation: "Split the function into smaller, single-purpose functions",
				Line:        fn.StartLine,
			})
		}
	}
	return findings
}

func detectLongParameterLists(src *source.Source, th SmellThresholds) []Finding {
	var findings []Finding
	for i, line := range src.Lines {
		if !isDeclLine(src.Lang, line) {
			continue
		}
		params := source.ParamList(line)
		if len(params) > th.MaxParameters {
			findings = append(findings, Finding{
				Type:        SmellLongParameterList,
				Severity:    SeverityMedium,
				Description: fmt.Sprintf("Declaration has %d parameters", len(params)),
				Remediation: "Group related parameters into an object or struct",
				Line:        i + 1,
			})
		}
	}
	return findings
}

func isDeclLine(spec *lang.Spec, line string) bool {
	for _, pattern := range spec.DeclPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// duplicateLineIndex counts occurrences of substantial trimmed lines,
// keyed by content hash to keep the map compact on large inputs.
type duplicateLineIndex struct {
	counts     map[uint64]int
	firstLines map[uint64]int
}

func indexDuplicateLines(src *source.Source, minLength int) duplicateLineIndex {
	idx := duplicateLineIndex{
		counts:     make(map[uint64]int),
		firstLines: make(map[uint64]int),
	}
	for i, line := range src.Lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= minLength {
			continue
		}
		key := xxhash.Sum64String(trimmed)
		idx.counts[key]++
		if _, seen := idx.firstLines[key]; !seen {
			idx.firstLines[key] = i + 1
		}
	}
	return idx
}

func detectDuplicateLines(src *source.Source, th SmellThresholds) []Finding {
	idx := indexDuplicateLines(src, th.DuplicateMinLength)

	var findings []Finding
	reported := make(map[uint64]bool)
	for i, line := range src.Lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= th.DuplicateMinLength {
			continue
		}
		key := xxhash.Sum64String(trimmed)
		if idx.counts[key] < th.DuplicateMinCount || reported[key] {
			continue
		}
		reported[key] = true
		findings = append(findings, Finding{
			Type:        SmellDuplicateCode,
			Severity:    SeverityMedium,
			Description: fmt.Sprintf("Line repeated %d times: %q", idx.counts[key], truncate(trimmed, 60)),
			Remediation: "Extract the repeated logic into a shared function or constant",
			Line:        i + 1,
		})
	}
	return findings
}

var commentedCodeChars = []string{"{", "}", ";", "(", ")"}

func detectDeadCode(src *source.Source, _ SmellThresholds) []Finding {
	var findings []Finding

	for i, line := range src.Lines {
		// Unreachable statement after a return
		if lang.ReturnPattern.MatchString(line) && i+1 < len(src.Lines) {
			next := strings.TrimSpace(src.Lines[i+1])
			if next != "" && next != "}" && src.ClassifyLine(src.Lines[i+1]) != source.ClassComment {
				findings = append(findings, Finding{
					Type:        SmellDeadCode,
					Severity:    SeverityHigh,
					Description: "Unreachable code after return statement",
					Remediation: "Remove the unreachable statements or restructure the control flow",
					Line:        i + 2,
				})
			}
		}

		// Commented-out code
		if src.ClassifyLine(line) == source.ClassComment && containsAny(line, commentedCodeChars) {
			findings = append(findings, Finding{
				Type:        SmellDeadCode,
				Severity:    SeverityLow,
				Description: "Commented-out code",
				Remediation: "Delete commented-out code; version control preserves history",
				Line:        i + 1,
			})
		}
	}
	return findings
}

var magicNumberPattern = regexp.MustCompile(`\b\d{2,}\b`)

func detectMagicNumbers(src *source.Source, th SmellThresholds) []Finding {
	var findings []Finding
	for i, line := range src.Lines {
		for _, match := range magicNumberPattern.FindAllString(line, -1) {
			if len(findings) >= th.MagicNumberCap {
				return findings
			}
			if value, err := strconv.Atoi(match); err == nil && (value == 0 || value == 1) {
				continue
			}
			findings = append(findings, Finding{
				Type:        SmellMagicNumber,
				Severity:    SeverityLow,
				Description: fmt.Sprintf("Magic number %s", match),
				Remediation: "Replace the literal with a named constant",
				Line:        i + 1,
			})
		}
	}
	return findings
}

func detectNestedLoops(src *source.Source, th SmellThresholds) []Finding {
	var findings []Finding
	depth := 0

	for i, line := range src.Lines {
		if lang.LoopKeywordPattern.MatchString(line) {
			depth++
			if depth >= th.NestedLoopDepth {
				findings = append(findings, Finding{
					Type:        SmellNestedLoops,
					Severity:    SeverityHigh,
					Description: fmt.Sprintf("Loop nested %d levels deep", depth),
					Remediation: "Extract inner loops into functions or flatten the iteration",
					Line:        i + 1,
				})
			}
		}
		if strings.Contains(line, "}") && depth > 0 {
			depth--
		}
	}
	return findings
}

func detectGodClass(src *source.Source, th SmellThresholds) []Finding {
	text := strings.Join(src.Lines, "\n")
	methods := 0
	for _, pattern := range src.Lang.DeclPatterns {
		methods += len(pattern.FindAllStringIndex(text, -1))
	}
	if methods <= th.GodClassMethods {
		return nil
	}
	return []Finding{{
		Type:        SmellGodClass,
		Severity:    SeverityHigh,
		Description: fmt.Sprintf("File defines %d functions/methods", methods),
		Remediation: "Split responsibilities across multiple classes or modules",
	}}
}

func detectLargeClass(src *source.Source, th SmellThresholds) []Finding {
	if len(src.Lines) <= th.LargeClassLines {
		return nil
	}
	return []Finding{{
		Type:        SmellLargeClass,
		Severity:    SeverityMedium,
		Description: fmt.Sprintf("File is %d lines long", len(src.Lines)),
		Remediation: "Break the file into smaller, cohesive modules",
	}}
}

func detectPrimitiveObsession(src *source.Source, th SmellThresholds) []Finding {
	var findings []Finding
	for i, line := range src.Lines {
		params := source.ParamList(line)
		if len(params) == 0 {
			continue
		}
		primitives := 0
		for _, param := range params {
			for _, prim := range src.Lang.PrimitiveTypes {
				if strings.Contains(param, prim) {
					primitives++
					break
				}
			}
		}
		if primitives > th.PrimitiveParamLimit {
			findings = append(findings, Finding{
				Type:        SmellPrimitiveObsession,
				Severity:    SeverityMedium,
				Description: fmt.Sprintf("%d primitive-typed parameters in one signature", primitives),
				Remediation: "Introduce a domain type that groups the related values",
				Line:        i + 1,
			})
		}
	}
	return findings
}

var (
	switchOpenPattern = regexp.MustCompile(`\bswitch\s*\(`)
	casePattern       = regexp.MustCompile(`\bcase\b`)
)

func detectLongSwitches(src *source.Source, th SmellThresholds) []Finding {
	var findings []Finding

	tracking := false
	caseCount := 0
	openLine := 0

	flush := func() {
		if tracking && caseCount > th.SwitchCaseLimit {
			findings = append(findings, Finding{
				Type:        SmellLongSwitch,
				Severity:    SeverityMedium,
				Description: fmt.Sprintf("Switch statement has %d cases", caseCount),
				Remediation: "Replace the switch with polymorphism or a lookup table",
				Line:        openLine,
			})
		}
		tracking = false
		caseCount = 0
	}

	for i, line := range src.Lines {
		if !tracking && switchOpenPattern.MatchString(line) {
			tracking = true
			caseCount = 0
			openLine = i + 1
		}
		if tracking {
			caseCount += len(casePattern.FindAllString(line, -1))
		}
		if tracking && strings.TrimSpace(line) == "}" {
			flush()
		}
	}
	// A switch still open at end of input (single-line or truncated)
	// is evaluated with the cases seen so far.
	flush()

	return findings
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
