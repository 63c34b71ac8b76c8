package source

import (
	"strings"
	"testing"
)

func TestClassifyLineOrder(t *testing.T) {
	src := New("", "javascript")

	tests := []struct {
		line string
		want LineClass
	}{
		{"", ClassBlank},
		{"   \t  ", ClassBlank},
		{"// comment", ClassComment},
		{"   /* indented block open", ClassComment},
		{"* doc continuation", ClassComment},
		{"let x = 1;", ClassCode},
		{"let x = 1; // trailing comment is still code", ClassCode},
	}

	for _, tc := range tests {
		if got := src.ClassifyLine(tc.line); got != tc.want {
			t.Errorf("ClassifyLine(%q) = %v, expected %v", tc.line, got, tc.want)
		}
	}
}

func TestBlockCommentInteriorIsCode(t *testing.T) {
	// The classifier is line-local: an interior block-comment line
	// without its own prefix token classifies as code.
	src := New("/* start\nplain interior text\n*/", "javascript")
	classes := src.Classify()

	if classes[0] != ClassComment {
		t.Errorf("Line 1 = %v, expected comment", classes[0])
	}
	if classes[1] != ClassCode {
		t.Errorf("Line 2 = %v, expected code (line-local classification)", classes[1])
	}
}

func TestCountLines(t *testing.T) {
	text := "// header\n\nlet a = 1;\nlet b = 2;\n\n// footer"
	counts := New(text, "javascript").CountLines()

	if counts.Total != 6 {
		t.Errorf("Total = %d, expected 6", counts.Total)
	}
	if counts.Code != 2 {
		t.Errorf("Code = %d, expected 2", counts.Code)
	}
	if counts.Comment != 2 {
		t.Errorf("Comment = %d, expected 2", counts.Comment)
	}
	if counts.Blank != 2 {
		t.Errorf("Blank = %d, expected 2", counts.Blank)
	}
}

func TestNonBlankLinesIncludesComments(t *testing.T) {
	src := New("// comment\n\ncode();", "javascript")
	if got := src.NonBlankLines(); got != 2 {
		t.Errorf("NonBlankLines = %d, expected 2", got)
	}
}

func TestSplitLinesHandlesCRLF(t *testing.T) {
	lines := SplitLines("a\r\nb\r\nc")
	if len(lines) != 3 || lines[0] != "a" || lines[1] != "b" || lines[2] != "c" {
		t.Errorf("SplitLines CRLF = %q", lines)
	}
}

func TestBraceDeltaClampsAtZero(t *testing.T) {
	tests := []struct {
		depth int
		line  string
		want  int
	}{
		{0, "{", 1},
		{1, "}", 0},
		{0, "}", 0},
		{0, "}}}", 0},
		{2, "{ } }", 1},
	}

	for _, tc := range tests {
		if got := BraceDelta(tc.depth, tc.line); got != tc.want {
			t.Errorf("BraceDelta(%d, %q) = %d, expected %d", tc.depth, tc.line, got, tc.want)
		}
	}
}

func TestMaxBraceDepth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"no braces", 0},
		{"{ }", 1},
		{"{ { { } } }", 3},
		{"} } {", 1}, // unbalanced close never goes negative
	}

	for _, tc := range tests {
		if got := MaxBraceDepth(tc.text); got != tc.want {
			t.Errorf("MaxBraceDepth(%q) = %d, expected %d", tc.text, got, tc.want)
		}
	}
}

func TestMaxBraceDepthNeverExceedsOpenCount(t *testing.T) {
	samples := []string{
		"function f() { if (a) { b(); } }",
		"}}}{{{",
		strings.Repeat("{", 10) + strings.Repeat("}", 4),
	}
	for _, text := range samples {
		depth := MaxBraceDepth(text)
		opens := strings.Count(text, "{")
		if depth < 0 || depth > opens {
			t.Errorf("MaxBraceDepth(%q) = %d, expected within [0, %d]", text, depth, opens)
		}
	}
}
