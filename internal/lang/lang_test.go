package lang

import (
	"testing"
)

func TestLookupKnownTags(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"javascript", "javascript"},
		{"typescript", "typescript"},
		{"python", "python"},
		{"go", "go"},
		{"java", "java"},
		{"JavaScript", "javascript"},
		{"  python  ", "python"},
	}

	for _, tc := range tests {
		spec := Lookup(tc.tag)
		if spec.Name != tc.want {
			t.Errorf("Lookup(%q).Name = %q, expected %q", tc.tag, spec.Name, tc.want)
		}
	}
}

func TestLookupUnknownTagFallsBack(t *testing.T) {
	for _, tag := range []string{"", "cobol", "brainfuck", "klingon"} {
		spec := Lookup(tag)
		if spec.Name != "default" {
			t.Errorf("Lookup(%q).Name = %q, expected default spec", tag, spec.Name)
		}
		// The default set is C-family
		if !spec.IsCommentLine("// hello") {
			t.Errorf("default spec should treat // as a comment prefix")
		}
	}
}

func TestIsCommentLine(t *testing.T) {
	js := Lookup("javascript")
	py := Lookup("python")

	tests := []struct {
		spec    *Spec
		trimmed string
		want    bool
	}{
		{js, "// line comment", true},
		{js, "/* block open", true},
		{js, "* block interior", true},
		{js, "let x = 1; // trailing", false},
		{py, "# python comment", true},
		{py, `"""docstring`, true},
		{py, "x = 1", false},
	}

	for _, tc := range tests {
		if got := tc.spec.IsCommentLine(tc.trimmed); got != tc.want {
			t.Errorf("IsCommentLine(%q) on %s = %v, expected %v", tc.trimmed, tc.spec.Name, got, tc.want)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	js := Lookup("javascript")
	if !js.IsKeyword("function") {
		t.Error("'function' should be a javascript keyword")
	}
	if js.IsKeyword("widget") {
		t.Error("'widget' should not be a javascript keyword")
	}

	goSpec := Lookup("go")
	if !goSpec.IsKeyword("defer") {
		t.Error("'defer' should be a go keyword")
	}
}

func TestSymbolPatternsDescendingLength(t *testing.T) {
	patterns := SymbolPatterns()
	if len(patterns) != len(OperatorSymbols) {
		t.Fatalf("Expected %d patterns, got %d", len(OperatorSymbols), len(patterns))
	}

	prev := 1 << 30
	for _, op := range patterns {
		if len(op.Lexeme) > prev {
			t.Fatalf("Patterns not in descending length order near %q", op.Lexeme)
		}
		prev = len(op.Lexeme)
	}
}

func TestSupportedIsSorted(t *testing.T) {
	tags := Supported()
	if len(tags) == 0 {
		t.Fatal("Expected at least one supported language")
	}
	for i := 1; i < len(tags); i++ {
		if tags[i-1] > tags[i] {
			t.Errorf("Supported() not sorted: %q before %q", tags[i-1], tags[i])
		}
	}
}
