// Package analyzer implements the four heuristic analyses: complexity
// metrics, code smell detection, refactoring suggestions, and quality
// scoring. Every pass is a pure function over an immutable Source; no
// pass ever fails, and every formula is pre-guarded against zero
// denominators and log domains.
package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/qscan-dev/qscan/internal/lang"
	"github.com/qscan-dev/qscan/internal/source"
)

// HalsteadMetrics holds the counts and derived size/effort estimates.
// All four base counts are floored at 1 so the derived values stay in
// a sane domain for any input, including the empty string.
type HalsteadMetrics struct {
	DistinctOperators int     // n1
	DistinctOperands  int     // n2
	TotalOperators    int     // N1
	TotalOperands     int     // N2
	Vocabulary        int     // n1 + n2
	Length            int     // N1 + N2
	Volume            float64 // length * log2(vocabulary)
	Difficulty        float64 // (n1/2) * (N2/n2)
	Effort            float64 // difficulty * volume
	TimeSeconds       float64 // effort / 18
	DeliveredBugs     float64 // effort^(2/3) / 3000
}

// ComplexityReport is the full complexity analysis for one input.
type ComplexityReport struct {
	Cyclomatic           int
	Cognitive            int
	NestingDepth         int
	Halstead             HalsteadMetrics
	MaintainabilityIndex int
	Summary              string
	Recommendations      []string
}

// Advisory thresholds. These four are the whole recommendation
// contract; nothing else triggers a message.
const (
	cyclomaticThreshold      = 10
	cognitiveThreshold       = 15
	nestingThreshold         = 4
	maintainabilityThreshold = 65
)

// AnalyzeComplexity runs all complexity metrics over the source.
func AnalyzeComplexity(src *source.Source) ComplexityReport {
	text := strings.Join(src.Lines, "\n")

	report := ComplexityReport{
		Cyclomatic:   CyclomaticComplexity(text),
		Cognitive:    CognitiveComplexity(src),
		NestingDepth: source.MaxBraceDepth(text),
		Halstead:     HalsteadAnalysis(src),
	}
	report.MaintainabilityIndex = maintainabilityIndex(report.Halstead, report.Cyclomatic, src.NonBlankLines())
	report.Recommendations = recommendations(report)
	report.Summary = fmt.Sprintf(
		"Cyclomatic complexity %d, cognitive complexity %d, max nesting %d, maintainability index %d",
		report.Cyclomatic, report.Cognitive, report.NestingDepth, report.MaintainabilityIndex)

	return report
}

// CyclomaticComplexity counts decision-construct pattern occurrences
// over the whole text and adds the base path. Pattern categories are
// counted independently and summed; a construct whose lexeme appears
// in more than one category contributes to each. The over-count is
// part of the contract.
func CyclomaticComplexity(text string) int {
	complexity := 1
	for _, pattern := range lang.DecisionPatterns {
		complexity += len(pattern.FindAllStringIndex(text, -1))
	}
	return complexity
}

// CognitiveComplexity scores readability cost line by line. A line
// that both opens a brace and carries a control keyword raises the
// nesting level before its own score is taken; control-keyword lines
// score 1 plus the nesting level; each logical operator adds a flat 1;
// any line containing a closing brace lowers nesting, floored at zero.
// Scoring is per physical line, so multi-statement lines under-count.
func CognitiveComplexity(src *source.Source) int {
	score := 0
	nesting := 0

	for _, line := range src.Lines {
		isControl := lang.ControlKeywordPattern.MatchString(line)

		if strings.Contains(line, "{") && isControl {
			nesting++
		}
		if isControl {
			score += 1 + nesting
		}
		score += len(lang.LogicalOpPattern.FindAllString(line, -1))

		if strings.Contains(line, "}") {
			nesting--
			if nesting < 0 {
				nesting = 0
			}
		}
	}

	return score
}

// HalsteadAnalysis derives the Halstead metrics from the token
// multisets.
func HalsteadAnalysis(src *source.Source) HalsteadMetrics {
	tokens := src.ExtractTokens()

	n1 := atLeastOne(tokens.DistinctOperators())
	n2 := atLeastOne(tokens.DistinctOperands())
	total1 := atLeastOne(tokens.TotalOperators())
	total2 := atLeastOne(tokens.TotalOperands())

	vocabulary := n1 + n2
	length := total1 + total2
	volume := float64(length) * math.Log2(float64(vocabulary))
	difficulty := float64(n1) / 2 * float64(total2) / float64(n2)
	effort := difficulty * volume

	return HalsteadMetrics{
		DistinctOperators: n1,
		DistinctOperands:  n2,
		TotalOperators:    total1,
		TotalOperands:     total2,
		Vocabulary:        vocabulary,
		Length:            length,
		Volume:            round2(volume),
		Difficulty:        round2(difficulty),
		Effort:            round2(effort),
		TimeSeconds:       round2(effort / 18),
		DeliveredBugs:     round3(math.Pow(effort, 2.0/3.0) / 3000),
	}
}

// maintainabilityIndex combines volume, cyclomatic complexity, and
// size into the classic 0-100 composite. loc counts every non-blank
// line, comments included.
func maintainabilityIndex(h HalsteadMetrics, cyclomatic, loc int) int {
	volume := math.Log(math.Max(1, float64(h.Vocabulary))) * math.Max(1, float64(h.Length))
	mi := 171 -
		5.2*math.Log(math.Max(1, volume)) -
		0.23*float64(cyclomatic) -
		16.2*math.Log(math.Max(1, float64(loc)))

	if mi < 0 {
		mi = 0
	}
	if mi > 100 {
		mi = 100
	}
	return int(math.Round(mi))
}

func recommendations(report ComplexityReport) []string {
	var recs []string
	if report.Cyclomatic > cyclomaticThreshold {
		recs = append(recs, "Cyclomatic complexity is high; break the logic into smaller functions")
	}
	if report.Cognitive > cognitiveThreshold {
		recs = append(recs, "Cognitive complexity is high; reduce nesting and simplify control flow")
	}
	if report.NestingDepth > nestingThreshold {
		recs = append(recs, "Nesting is deep; use early returns or extract nested blocks")
	}
	if report.MaintainabilityIndex < maintainabilityThreshold {
		recs = append(recs, "Maintainability index is low; consider refactoring before adding features")
	}
	if len(recs) == 0 {
		recs = append(recs, "All complexity metrics are within acceptable ranges")
	}
	return recs
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
