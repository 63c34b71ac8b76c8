package analyzer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/qscan-dev/qscan/internal/source"
)

func TestCyclomaticComplexityBaseCase(t *testing.T) {
	// No decision constructs: the single linear path
	if got := CyclomaticComplexity("function add(a,b){return a+b;}"); got != 1 {
		t.Errorf("Cyclomatic = %d, expected 1", got)
	}
	if got := CyclomaticComplexity(""); got != 1 {
		t.Errorf("Cyclomatic of empty input = %d, expected 1", got)
	}
}

func TestCyclomaticComplexityCountsAllCategories(t *testing.T) {
	// Pattern categories are additive, not mutually exclusive:
	// "else if" contributes to both the if category and the else-if
	// category.
	tests := []struct {
		text string
		want int
	}{
		{"if (a) { }", 2},                   // if
		{"if (a) { } else if (b) { }", 4},   // if x2 + else-if
		{"while (a && b) { }", 3},           // while + &&
		{"x = a ? b : c", 2},                // ternary
		{"for (i = 0; i < n; i++) { }", 2},  // for
		{"try { } catch (e) { }", 2},        // catch
		{"switch (x) { case 1: break; }", 2}, // switch itself is not a decision pattern, case is
	}

	for _, tc := range tests {
		if got := CyclomaticComplexity(tc.text); got != tc.want {
			t.Errorf("CyclomaticComplexity(%q) = %d, expected %d", tc.text, got, tc.want)
		}
	}
}

func TestCognitiveComplexityNesting(t *testing.T) {
	text := `if (a) {
  if (b) {
    work();
  }
}`
	src := source.New(text, "javascript")
	// Line 1: nesting->1, score 1+1=2. Line 2: nesting->2, score 1+2=3.
	if got := CognitiveComplexity(src); got != 5 {
		t.Errorf("Cognitive = %d, expected 5", got)
	}
}

func TestCognitiveComplexityLogicalOperators(t *testing.T) {
	src := source.New("flag = a && b || c;", "javascript")
	// Two logical operators, no control keywords
	if got := CognitiveComplexity(src); got != 2 {
		t.Errorf("Cognitive = %d, expected 2", got)
	}
}

func TestCognitiveComplexityFloorsNesting(t *testing.T) {
	src := source.New("}\n}\nif (a) {\n}", "javascript")
	// Closing braces before any opening must not push nesting negative
	if got := CognitiveComplexity(src); got != 2 {
		t.Errorf("Cognitive = %d, expected 2", got)
	}
}

func TestNestingDepthBounds(t *testing.T) {
	samples := []string{
		"",
		"function f() { if (a) { while (b) { g(); } } }",
		strings.Repeat("{", 8),
		"}}}",
	}
	for _, text := range samples {
		src := source.New(text, "javascript")
		report := AnalyzeComplexity(src)
		opens := strings.Count(text, "{")
		if report.NestingDepth < 0 || report.NestingDepth > opens {
			t.Errorf("NestingDepth(%q) = %d, expected within [0, %d]", text, report.NestingDepth, opens)
		}
	}
}

func TestHalsteadEmptyInput(t *testing.T) {
	h := HalsteadAnalysis(source.New("", "javascript"))

	// All counts clamp to 1: deterministic minimal metrics, never NaN
	if h.DistinctOperators != 1 || h.DistinctOperands != 1 {
		t.Errorf("n1=%d n2=%d, expected 1/1", h.DistinctOperators, h.DistinctOperands)
	}
	if h.Vocabulary != 2 || h.Length != 2 {
		t.Errorf("vocabulary=%d length=%d, expected 2/2", h.Vocabulary, h.Length)
	}
	if h.Volume != 2 {
		t.Errorf("Volume = %v, expected 2 (2*log2(2))", h.Volume)
	}
	if h.Difficulty != 0.5 {
		t.Errorf("Difficulty = %v, expected 0.5", h.Difficulty)
	}
	if h.Effort != 1 {
		t.Errorf("Effort = %v, expected 1", h.Effort)
	}
	for name, v := range map[string]float64{
		"Volume": h.Volume, "Difficulty": h.Difficulty,
		"Effort": h.Effort, "TimeSeconds": h.TimeSeconds, "DeliveredBugs": h.DeliveredBugs,
	} {
		if v < 0 {
			t.Errorf("%s = %v, expected >= 0", name, v)
		}
	}
}

func TestHalsteadNonNegative(t *testing.T) {
	samples := []string{
		"x",
		"a = b + c * d;",
		"function f() { return 42; }",
		"!!!???",
	}
	for _, text := range samples {
		h := HalsteadAnalysis(source.New(text, "javascript"))
		if h.Vocabulary < 0 || h.Length < 0 || h.Difficulty < 0 || h.Effort < 0 {
			t.Errorf("Halstead(%q) produced negative values: %+v", text, h)
		}
	}
}

func TestMaintainabilityIndexRange(t *testing.T) {
	samples := []string{
		"",
		"let x = 1;",
		strings.Repeat("if (a && b || c) { x = y ? 1 : 2; }\n", 200),
	}
	for _, text := range samples {
		report := AnalyzeComplexity(source.New(text, "javascript"))
		if report.MaintainabilityIndex < 0 || report.MaintainabilityIndex > 100 {
			t.Errorf("MI = %d, expected within [0,100]", report.MaintainabilityIndex)
		}
	}
}

func TestMaintainabilityIndexEmptyInputIsHigh(t *testing.T) {
	report := AnalyzeComplexity(source.New("", "javascript"))
	if report.MaintainabilityIndex != 100 {
		t.Errorf("MI of empty input = %d, expected 100 after clamping", report.MaintainabilityIndex)
	}
}

func TestRecommendationsThresholds(t *testing.T) {
	tests := []struct {
		name   string
		report ComplexityReport
		want   int
	}{
		{"all healthy", ComplexityReport{Cyclomatic: 5, Cognitive: 5, NestingDepth: 2, MaintainabilityIndex: 80}, 1},
		{"high cyclomatic", ComplexityReport{Cyclomatic: 11, Cognitive: 5, NestingDepth: 2, MaintainabilityIndex: 80}, 1},
		{"boundary cyclomatic not flagged", ComplexityReport{Cyclomatic: 10, Cognitive: 5, NestingDepth: 2, MaintainabilityIndex: 80}, 1},
		{"everything over", ComplexityReport{Cyclomatic: 20, Cognitive: 30, NestingDepth: 6, MaintainabilityIndex: 40}, 4},
	}

	for _, tc := range tests {
		recs := recommendations(tc.report)
		if len(recs) != tc.want {
			t.Errorf("%s: got %d recommendations, expected %d", tc.name, len(recs), tc.want)
		}
	}

	healthy := recommendations(ComplexityReport{Cyclomatic: 1, Cognitive: 0, NestingDepth: 0, MaintainabilityIndex: 100})
	if !strings.Contains(healthy[0], "within acceptable ranges") {
		t.Errorf("Healthy recommendation = %q, expected acceptable-ranges message", healthy[0])
	}
}

func TestAnalyzeComplexityIdempotent(t *testing.T) {
	text := `function busy(a, b) {
  if (a && b) {
    for (let i = 0; i < a; i++) {
      work(i);
    }
  }
  return a ? b : 0;
}`
	first := AnalyzeComplexity(source.New(text, "javascript"))
	second := AnalyzeComplexity(source.New(text, "javascript"))

	if !reflect.DeepEqual(first, second) {
		t.Error("AnalyzeComplexity should yield identical output for identical input")
	}
}
