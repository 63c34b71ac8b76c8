package analyzer

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/qscan-dev/qscan/internal/source"
)

func findingsOfType(findings []Finding, smellType string) []Finding {
	var matched []Finding
	for _, f := range findings {
		if f.Type == smellType {
			matched = append(matched, f)
		}
	}
	return matched
}

// buildFunction returns a function whose span covers exactly
// bodyLines+2 lines (declaration, body, closing brace).
func buildFunction(name string, bodyLines int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "function %s(a) {\n", name)
	for i := 0; i < bodyLines; i++ {
		fmt.Fprintf(&sb, "  work%d();\n", i)
	}
	sb.WriteString("}")
	return sb.String()
}

func TestLongMethodBoundary(t *testing.T) {
	// 50-line span: not a smell. 51-line span: smell.
	atLimit := source.New(buildFunction("fits", 48), "javascript")
	if got := findingsOfType(DetectSmells(atLimit).Findings, SmellLongMethod); len(got) != 0 {
		t.Errorf("50-line function flagged as long method: %+v", got)
	}

	overLimit := source.New(buildFunction("sprawls", 49), "javascript")
	got := findingsOfType(DetectSmells(overLimit).Findings, SmellLongMethod)
	if len(got) != 1 {
		t.Fatalf("51-line function: got %d long-method findings, expected 1", len(got))
	}
	if got[0].Severity != SeverityHigh {
		t.Errorf("Severity = %s, expected high", got[0].Severity)
	}
	if got[0].Line != 1 {
		t.Errorf("Line = %d, expected 1", got[0].Line)
	}
}

func TestLongParameterListBoundary(t *testing.T) {
	five := source.New("function f(a, b, c, d, e) {\n}", "javascript")
	if got := findingsOfType(DetectSmells(five).Findings, SmellLongParameterList); len(got) != 0 {
		t.Errorf("5 parameters flagged: %+v", got)
	}

	six := source.New("function f(a, b, c, d, e, f) {\n}", "javascript")
	got := findingsOfType(DetectSmells(six).Findings, SmellLongParameterList)
	if len(got) != 1 {
		t.Fatalf("6 parameters: got %d findings, expected 1", len(got))
	}
	if got[0].Severity != SeverityMedium {
		t.Errorf("Severity = %s, expected medium", got[0].Severity)
	}
}

func TestDuplicateCodeFirstOccurrence(t *testing.T) {
	dup := "total = total + compute(x);"
	text := strings.Join([]string{
		"let a = 1;",
		dup,
		"let b = 2;",
		dup,
		"let c = 3;",
		dup,
	}, "\n")

	got := findingsOfType(DetectSmells(source.New(text, "javascript")).Findings, SmellDuplicateCode)
	if len(got) != 1 {
		t.Fatalf("Got %d duplicate findings, expected exactly 1", len(got))
	}
	if got[0].Line != 2 {
		t.Errorf("Line = %d, expected first occurrence at 2", got[0].Line)
	}
	if !strings.Contains(got[0].Description, "3 times") {
		t.Errorf("Description = %q, expected occurrence count", got[0].Description)
	}
}

func TestDuplicateCodeIgnoresShortAndRareLines(t *testing.T) {
	text := strings.Repeat("x++;\n", 5) + // short line, never flagged
		strings.Repeat("const somewhatLongerLine = 1;\n", 2) // only 2 occurrences
	got := findingsOfType(DetectSmells(source.New(text, "javascript")).Findings, SmellDuplicateCode)
	if len(got) != 0 {
		t.Errorf("Got %d duplicate findings, expected 0: %+v", len(got), got)
	}
}

func TestDeadCodeUnreachable(t *testing.T) {
	text := `function f() {
  return 1;
  doMore();
}`
	got := findingsOfType(DetectSmells(source.New(text, "javascript")).Findings, SmellDeadCode)
	if len(got) != 1 {
		t.Fatalf("Got %d dead-code findings, expected 1", len(got))
	}
	if got[0].Severity != SeverityHigh {
		t.Errorf("Severity = %s, expected high", got[0].Severity)
	}
	if got[0].Line != 3 {
		t.Errorf("Line = %d, expected 3 (the unreachable statement)", got[0].Line)
	}
}

func TestDeadCodeReturnBeforeCloseIsFine(t *testing.T) {
	text := `function f() {
  return 1;
}`
	got := findingsOfType(DetectSmells(source.New(text, "javascript")).Findings, SmellDeadCode)
	if len(got) != 0 {
		t.Errorf("Got %d dead-code findings, expected 0: %+v", len(got), got)
	}
}

func TestDeadCodeCommentedCode(t *testing.T) {
	text := "// oldHelper(a, b);\n// just words, no punctuation"
	got := findingsOfType(DetectSmells(source.New(text, "javascript")).Findings, SmellDeadCode)
	if len(got) != 1 {
		t.Fatalf("Got %d commented-code findings, expected 1", len(got))
	}
	if got[0].Severity != SeverityLow {
		t.Errorf("Severity = %s, expected low", got[0].Severity)
	}
	if got[0].Line != 1 {
		t.Errorf("Line = %d, expected 1", got[0].Line)
	}
}

func TestMagicNumbers(t *testing.T) {
	text := "amount = quantity * 99 + 15\nbase = 0\nunit = 1"
	got := findingsOfType(DetectSmells(source.New(text, "javascript")).Findings, SmellMagicNumber)
	if len(got) != 2 {
		t.Fatalf("Got %d magic-number findings, expected 2 (99, 15)", len(got))
	}
	if !strings.Contains(got[0].Description, "99") || !strings.Contains(got[1].Description, "15") {
		t.Errorf("Descriptions = %q / %q, expected 99 and 15", got[0].Description, got[1].Description)
	}
}

func TestMagicNumbersCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, "x = %d;\n", 100+i)
	}
	got := findingsOfType(DetectSmells(source.New(sb.String(), "javascript")).Findings, SmellMagicNumber)
	if len(got) != magicNumberCap {
		t.Errorf("Got %d magic-number findings, expected cap of %d", len(got), magicNumberCap)
	}
}

func TestNestedLoops(t *testing.T) {
	text := `for (let i = 0; i < n; i++) {
  for (let j = 0; j < n; j++) {
    for (let k = 0; k < n; k++) {
      sum += grid[i][j][k];
    }
  }
}`
	got := findingsOfType(DetectSmells(source.New(text, "javascript")).Findings, SmellNestedLoops)
	if len(got) != 1 {
		t.Fatalf("Got %d nested-loop findings, expected 1", len(got))
	}
	if got[0].Line != 3 {
		t.Errorf("Line = %d, expected 3 (third loop)", got[0].Line)
	}
	if got[0].Severity != SeverityHigh {
		t.Errorf("Severity = %s, expected high", got[0].Severity)
	}
}

func TestGodClass(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 21; i++ {
		fmt.Fprintf(&sb, "function helper%d(a) { return a; }\n", i)
	}
	got := findingsOfType(DetectSmells(source.New(sb.String(), "javascript")).Findings, SmellGodClass)
	if len(got) != 1 {
		t.Fatalf("Got %d god-class findings, expected 1", len(got))
	}
	if got[0].Line != 0 {
		t.Errorf("Line = %d, expected 0 (whole-file finding)", got[0].Line)
	}
}

func TestLargeClass(t *testing.T) {
	within := source.New(strings.Repeat("x();\n", 499), "javascript")
	if got := findingsOfType(DetectSmells(within).Findings, SmellLargeClass); len(got) != 0 {
		t.Errorf("500 lines flagged as large class")
	}

	over := source.New(strings.Repeat("x();\n", 501), "javascript")
	if got := findingsOfType(DetectSmells(over).Findings, SmellLargeClass); len(got) != 1 {
		t.Errorf("Got %d large-class findings, expected 1", len(got))
	}
}

func TestPrimitiveObsession(t *testing.T) {
	text := "function configure(int a, int b, string c, bool d) {\n}"
	got := findingsOfType(DetectSmells(source.New(text, "javascript")).Findings, SmellPrimitiveObsession)
	if len(got) != 1 {
		t.Fatalf("Got %d primitive-obsession findings, expected 1", len(got))
	}

	three := "function ok(int a, int b, string c) {\n}"
	if got := findingsOfType(DetectSmells(source.New(three, "javascript")).Findings, SmellPrimitiveObsession); len(got) != 0 {
		t.Errorf("3 primitive parameters flagged: %+v", got)
	}
}

func TestLongSwitchSingleLine(t *testing.T) {
	text := "switch(x){case 1: case 2: case 3: case 4: case 5: case 6: case 7: case 8: break;}"
	got := findingsOfType(DetectSmells(source.New(text, "javascript")).Findings, SmellLongSwitch)
	if len(got) != 1 {
		t.Fatalf("Got %d long-switch findings, expected 1", len(got))
	}
	if !strings.Contains(got[0].Description, "8 cases") {
		t.Errorf("Description = %q, expected mention of 8 cases", got[0].Description)
	}
	if got[0].Line != 1 {
		t.Errorf("Line = %d, expected the switch opening line", got[0].Line)
	}
}

func TestLongSwitchMultiLineBoundary(t *testing.T) {
	build := func(cases int) string {
		var sb strings.Builder
		sb.WriteString("switch (x) {\n")
		for i := 0; i < cases; i++ {
			fmt.Fprintf(&sb, "case %d:\n  break;\n", i)
		}
		sb.WriteString("}")
		return sb.String()
	}

	seven := findingsOfType(DetectSmells(source.New(build(7), "javascript")).Findings, SmellLongSwitch)
	if len(seven) != 0 {
		t.Errorf("7 cases flagged: %+v", seven)
	}

	eight := findingsOfType(DetectSmells(source.New(build(8), "javascript")).Findings, SmellLongSwitch)
	if len(eight) != 1 {
		t.Errorf("Got %d findings for 8 cases, expected 1", len(eight))
	}
}

func TestDetectSmellsWithCustomThresholds(t *testing.T) {
	// 10-line span: clean under the default limit, a smell at 5.
	text := buildFunction("compact", 8)
	src := source.New(text, "javascript")

	if got := findingsOfType(DetectSmells(src).Findings, SmellLongMethod); len(got) != 0 {
		t.Fatalf("10-line function flagged under default thresholds: %+v", got)
	}

	th := DefaultSmellThresholds()
	th.LongMethodLines = 5
	got := findingsOfType(DetectSmellsWith(src, th).Findings, SmellLongMethod)
	if len(got) != 1 {
		t.Fatalf("long_method_lines=5: got %d findings for a 10-line function, expected 1", len(got))
	}
	if !strings.Contains(got[0].Description, "10 lines long") {
		t.Errorf("Description = %q, expected the measured span", got[0].Description)
	}
}

func TestDetectSmellsWithLoweredSwitchLimit(t *testing.T) {
	text := "switch(x){case 1: case 2: case 3: break;}"
	src := source.New(text, "javascript")

	if got := findingsOfType(DetectSmells(src).Findings, SmellLongSwitch); len(got) != 0 {
		t.Fatalf("3 cases flagged under default thresholds: %+v", got)
	}

	th := DefaultSmellThresholds()
	th.SwitchCaseLimit = 2
	if got := findingsOfType(DetectSmellsWith(src, th).Findings, SmellLongSwitch); len(got) != 1 {
		t.Errorf("switch_case_limit=2: got %d findings for 3 cases, expected 1", len(got))
	}
}

func TestDetectSmellsEmptyInput(t *testing.T) {
	report := DetectSmells(source.New("", "javascript"))
	if report.TotalCount != 0 {
		t.Errorf("TotalCount = %d, expected 0", report.TotalCount)
	}
	if !strings.Contains(report.Summary, "clean") {
		t.Errorf("Summary = %q, expected clean-code message", report.Summary)
	}
}

func TestDetectSmellsCountsByType(t *testing.T) {
	text := "amount = price * 99;\namount2 = price * 88;"
	report := DetectSmells(source.New(text, "javascript"))

	if report.CountsByType[SmellMagicNumber] != 2 {
		t.Errorf("magic_number count = %d, expected 2", report.CountsByType[SmellMagicNumber])
	}
	if report.TotalCount != len(report.Findings) {
		t.Errorf("TotalCount = %d, expected %d", report.TotalCount, len(report.Findings))
	}
}

func TestDetectSmellsIdempotent(t *testing.T) {
	text := buildFunction("sprawls", 60) + "\nswitch(x){case 1: break;}\n"
	first := DetectSmells(source.New(text, "javascript"))
	second := DetectSmells(source.New(text, "javascript"))

	if !reflect.DeepEqual(first, second) {
		t.Error("DetectSmells should yield identical output for identical input")
	}
}
