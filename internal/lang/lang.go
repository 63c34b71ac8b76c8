package lang

import (
	"regexp"
	"sort"
	"strings"
)

// Spec holds the line-level syntax knowledge qscan has about a language.
// It deliberately stops short of a grammar: comment prefixes, declaration
// patterns, and keyword sets are enough for the heuristic passes.
type Spec struct {
	// Name is the canonical language tag
	Name string

	// CommentPrefixes are matched against the trimmed start of a line
	CommentPrefixes []string

	// DeclPatterns match function/method declaration lines. The first
	// capture group, when present, is the function name.
	DeclPatterns []*regexp.Regexp

	// VarDeclPattern matches variable declaration lines; the first
	// capture group is the variable name.
	VarDeclPattern *regexp.Regexp

	// Keywords is the reserved-word set, used both to exclude
	// identifiers from Halstead operands and as keyword operators
	Keywords map[string]bool

	// PrimitiveTypes are type-name substrings for the primitive
	// obsession detector
	PrimitiveTypes []string

	// DebugPattern matches leftover debug output statements
	DebugPattern *regexp.Regexp

	// LegacyVarKeyword is a mutable-declaration keyword the modernize
	// pass flags (empty disables that check)
	LegacyVarKeyword string

	// CFamily gates checks that only make sense for brace languages
	// with this-style fields (encapsulate field, console debugging)
	CFamily bool
}

// IsKeyword reports whether tok is reserved in this language.
func (s *Spec) IsKeyword(tok string) bool {
	return s.Keywords[tok]
}

// IsCommentLine reports whether a trimmed line starts with one of the
// language's comment prefixes. Block comments are matched line by line
// via their prefix tokens; interior lines that carry no prefix are
// treated as code.
func (s *Spec) IsCommentLine(trimmed string) bool {
	for _, prefix := range s.CommentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// Shared pattern tables. Decision constructs are counted per category
// and summed; categories are not mutually exclusive, so a construct
// sharing lexemes with another category contributes to both.
var (
	// DecisionPatterns drive cyclomatic complexity
	DecisionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bif\b`),
		regexp.MustCompile(`\belse\s+if\b`),
		regexp.MustCompile(`\bfor\b`),
		regexp.MustCompile(`\bwhile\b`),
		regexp.MustCompile(`\bcase\b`),
		regexp.MustCompile(`\bcatch\b`),
		regexp.MustCompile(`&&`),
		regexp.MustCompile(`\|\|`),
		regexp.MustCompile(`\?`),
	}

	// ControlKeywordPattern drives cognitive complexity scoring; bare
	// else is intentionally absent
	ControlKeywordPattern = regexp.MustCompile(`\b(if|for|while|catch|switch)\b`)

	// LoopKeywordPattern drives the nested-loop detector
	LoopKeywordPattern = regexp.MustCompile(`\b(for|while|forEach)\b`)

	// LogicalOpPattern matches logical AND/OR occurrences
	LogicalOpPattern = regexp.MustCompile(`&&|\|\|`)

	// ReturnPattern matches a return statement for dead-code detection
	ReturnPattern = regexp.MustCompile(`^\s*return\b`)
)

// OperatorSymbols lists the operator lexemes recognized by the Halstead
// extractor. SymbolPatterns applies them longest-first so that multi
// character operators are never split by their prefixes.
var OperatorSymbols = []string{
	"===", "!==", "<<=", ">>=",
	"==", "!=", "<=", ">=", "&&", "||", "=>", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "<<", ">>",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "&", "|", "^", "~", "?", ":",
}

// OperatorPattern pairs an operator lexeme with its compiled pattern.
type OperatorPattern struct {
	Lexeme  string
	Pattern *regexp.Regexp
}

// SymbolPatterns returns compiled operator patterns in descending
// lexeme-length order.
func SymbolPatterns() []OperatorPattern {
	symbols := make([]string, len(OperatorSymbols))
	copy(symbols, OperatorSymbols)
	sort.SliceStable(symbols, func(i, j int) bool {
		return len(symbols[i]) > len(symbols[j])
	})

	patterns := make([]OperatorPattern, 0, len(symbols))
	for _, sym := range symbols {
		patterns = append(patterns, OperatorPattern{
			Lexeme:  sym,
			Pattern: regexp.MustCompile(regexp.QuoteMeta(sym)),
		})
	}
	return patterns
}

func keywordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

var cFamilyPrimitives = []string{"int", "string", "bool", "float", "double", "char", "byte", "long", "short", "number", "boolean"}

var jsKeywords = keywordSet(
	"if", "else", "for", "while", "do", "switch", "case", "default",
	"break", "continue", "return", "function", "var", "let", "const",
	"class", "new", "delete", "typeof", "instanceof", "void", "this",
	"try", "catch", "finally", "throw", "in", "of", "import", "export",
	"extends", "super", "static", "get", "set", "async", "await",
	"yield", "null", "undefined", "true", "false",
)

func cFamilySpec(name string) *Spec {
	return &Spec{
		Name:            name,
		CommentPrefixes: []string{"//", "/*", "*"},
		DeclPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\bfunction\s+(\w+)\s*\(`),
			regexp.MustCompile(`(\w+)\s*[:=]\s*(?:async\s+)?function\s*\(`),
			regexp.MustCompile(`(\w+)\s*[:=]\s*(?:async\s+)?\([^)]*\)\s*=>`),
		},
		VarDeclPattern:   regexp.MustCompile(`\b(?:var|let|const)\s+(\w+)`),
		Keywords:         jsKeywords,
		PrimitiveTypes:   cFamilyPrimitives,
		DebugPattern:     regexp.MustCompile(`console\.(log|debug|info|warn|error)\s*\(`),
		LegacyVarKeyword: "var",
		CFamily:          true,
	}
}

// defaultSpec is the C-family fallback used for unrecognized tags.
var defaultSpec = cFamilySpec("default")

var specs = map[string]*Spec{
	"javascript": cFamilySpec("javascript"),
	"typescript": {
		Name:            "typescript",
		CommentPrefixes: []string{"//", "/*", "*"},
		DeclPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\bfunction\s+(\w+)\s*\(`),
			regexp.MustCompile(`(\w+)\s*[:=]\s*(?:async\s+)?function\s*\(`),
			regexp.MustCompile(`(\w+)\s*[:=]\s*(?:async\s+)?\([^)]*\)\s*(?::\s*\w+\s*)?=>`),
		},
		VarDeclPattern: regexp.MustCompile(`\b(?:var|let|const)\s+(\w+)`),
		Keywords: keywordSet(
			"if", "else", "for", "while", "do", "switch", "case", "default",
			"break", "continue", "return", "function", "var", "let", "const",
			"class", "new", "delete", "typeof", "instanceof", "void", "this",
			"try", "catch", "finally", "throw", "in", "of", "import", "export",
			"extends", "super", "static", "get", "set", "async", "await",
			"yield", "null", "undefined", "true", "false", "interface", "type",
			"enum", "implements", "namespace", "readonly", "public", "private",
			"protected", "abstract", "declare", "as", "any", "unknown", "never",
		),
		PrimitiveTypes:   cFamilyPrimitives,
		DebugPattern:     regexp.MustCompile(`console\.(log|debug|info|warn|error)\s*\(`),
		LegacyVarKeyword: "var",
		CFamily:          true,
	},
	"python": {
		Name:            "python",
		CommentPrefixes: []string{"#", `"""`, "'''"},
		DeclPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)\s*\(`),
		},
		VarDeclPattern: regexp.MustCompile(`^\s*(\w+)\s*=[^=]`),
		Keywords: keywordSet(
			"def", "class", "if", "elif", "else", "for", "while", "try",
			"except", "finally", "with", "as", "import", "from", "return",
			"yield", "lambda", "pass", "break", "continue", "global",
			"nonlocal", "del", "raise", "assert", "in", "is", "not", "and",
			"or", "async", "await", "None", "True", "False", "self",
		),
		PrimitiveTypes: []string{"int", "str", "bool", "float", "bytes"},
		DebugPattern:   regexp.MustCompile(`\bprint\s*\(`),
	},
	"go": {
		Name:            "go",
		CommentPrefixes: []string{"//", "/*", "*"},
		DeclPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*func\s+(?:\([^)]+\)\s+)?(\w+)\s*\(`),
		},
		VarDeclPattern: regexp.MustCompile(`\b(?:var\s+(\w+)|(\w+)\s*:=)`),
		Keywords: keywordSet(
			"func", "var", "const", "type", "struct", "interface", "map",
			"chan", "if", "else", "for", "range", "switch", "case", "default",
			"break", "continue", "return", "go", "defer", "select", "package",
			"import", "fallthrough", "goto", "nil", "true", "false",
		),
		PrimitiveTypes: []string{"int", "string", "bool", "float64", "float32", "byte", "rune", "uint", "int64", "int32"},
		DebugPattern:   regexp.MustCompile(`fmt\.Print(ln|f)?\s*\(`),
		CFamily:        true,
	},
	"java": {
		Name:            "java",
		CommentPrefixes: []string{"//", "/*", "*"},
		DeclPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?:public|private|protected)\s+(?:static\s+)?[\w<>\[\]]+\s+(\w+)\s*\([^)]*\)\s*\{?`),
		},
		VarDeclPattern: regexp.MustCompile(`\b(?:int|long|double|float|boolean|char|byte|short|String|var)\s+(\w+)\s*[=;]`),
		Keywords: keywordSet(
			"public", "private", "protected", "static", "final", "void",
			"int", "long", "double", "float", "boolean", "char", "byte",
			"short", "class", "interface", "extends", "implements", "new",
			"return", "if", "else", "for", "while", "do", "switch", "case",
			"default", "break", "continue", "try", "catch", "finally",
			"throw", "throws", "this", "super", "import", "package", "null",
			"true", "false", "abstract", "synchronized", "volatile",
			"transient", "instanceof", "enum",
		),
		PrimitiveTypes: []string{"int", "long", "double", "float", "boolean", "char", "byte", "short", "String"},
		DebugPattern:   regexp.MustCompile(`System\.(out|err)\.print`),
		CFamily:        true,
	},
}

// Lookup resolves a language tag to its Spec. Unknown or empty tags
// fall back to the C-family default; lookup never fails.
func Lookup(tag string) *Spec {
	if spec, ok := specs[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return spec
	}
	return defaultSpec
}

// Supported returns the tags with dedicated specs, sorted.
func Supported() []string {
	tags := make([]string, 0, len(specs))
	for tag := range specs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
