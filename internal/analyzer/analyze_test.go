package analyzer

import (
	"testing"

	"github.com/qscan-dev/qscan/internal/source"
)

func TestAnalyzeCollectsEverything(t *testing.T) {
	text := `// order helpers

function total(items, taxRate) {
  let sum = 0;
  console.log(items);
  return sum * taxRate;
}`
	result := Analyze(source.New(text, "javascript"), "order.js")

	if result.Name != "order.js" {
		t.Errorf("Name = %q, expected order.js", result.Name)
	}
	if result.Metrics.TotalLines != 7 {
		t.Errorf("TotalLines = %d, expected 7", result.Metrics.TotalLines)
	}
	if result.Metrics.CommentLines != 1 {
		t.Errorf("CommentLines = %d, expected 1", result.Metrics.CommentLines)
	}
	if result.Metrics.BlankLines != 1 {
		t.Errorf("BlankLines = %d, expected 1", result.Metrics.BlankLines)
	}
	if result.Metrics.CodeLines != 5 {
		t.Errorf("CodeLines = %d, expected 5", result.Metrics.CodeLines)
	}

	if len(result.Functions) != 1 {
		t.Fatalf("Got %d functions, expected 1", len(result.Functions))
	}
	fn := result.Functions[0]
	if fn.Name != "total" {
		t.Errorf("Function name = %q, expected total", fn.Name)
	}
	if fn.ParamCount != 2 {
		t.Errorf("ParamCount = %d, expected 2", fn.ParamCount)
	}
	if fn.StartLine != 3 || fn.EndLine != 7 {
		t.Errorf("Span = [%d, %d], expected [3, 7]", fn.StartLine, fn.EndLine)
	}

	if len(result.Variables) != 1 || result.Variables[0].Name != "sum" {
		t.Errorf("Variables = %+v, expected one entry named sum", result.Variables)
	}

	debug := issuesOfType(result.Issues, IssueDebugStatement)
	if len(debug) != 1 || debug[0].Line != 5 {
		t.Errorf("Debug issues = %+v, expected one at line 5", debug)
	}

	if result.Quality.Score < 0 || result.Quality.Score > 100 {
		t.Errorf("Quality score %d out of range", result.Quality.Score)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	result := Analyze(source.New("", "javascript"), "empty.js")

	if result.Metrics.CodeLines != 0 {
		t.Errorf("CodeLines = %d, expected 0", result.Metrics.CodeLines)
	}
	if len(result.Functions) != 0 {
		t.Errorf("Got %d functions, expected 0", len(result.Functions))
	}
	if len(result.Issues) != 0 {
		t.Errorf("Got %d issues, expected 0", len(result.Issues))
	}
	if result.Quality.Grade == "" {
		t.Error("Empty input should still receive a grade")
	}
}
