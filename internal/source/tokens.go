package source

import (
	"regexp"
	"strings"

	"github.com/qscan-dev/qscan/internal/lang"
)

// TokenMultiset holds operator and operand occurrence counts for one
// input text. Distinct() and Total() give the n/N values the Halstead
// formulas consume.
type TokenMultiset struct {
	Operators map[string]int
	Operands  map[string]int
}

var (
	identPattern  = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	numberPattern = regexp.MustCompile(`\b\d+(\.\d+)?\b`)
	stringPattern = regexp.MustCompile(`"[^"]*"|'[^']*'|` + "`[^`]*`")
)

// ExtractTokens classifies the text into operator and operand
// multisets.
//
// Operators come from two passes. First the fixed symbol patterns are
// applied longest-first against a working copy, and every matched
// region is blanked out before the next pattern runs, so "===" is
// never also counted as "==" or "=". Second, language keywords are
// counted against the original text without removal; a keyword
// overlapping a symbol match therefore counts in both passes. That
// double-count is accepted behavior, not a bug.
//
// Operands are identifiers minus the keyword set, numeric literals,
// and quoted or backtick string literals.
func (s *Source) ExtractTokens() TokenMultiset {
	text := strings.Join(s.Lines, "\n")
	tokens := TokenMultiset{
		Operators: make(map[string]int),
		Operands:  make(map[string]int),
	}

	// Symbol pass with removal: descending lexeme length
	working := []byte(text)
	for _, op := range lang.SymbolPatterns() {
		matches := op.Pattern.FindAllIndex(working, -1)
		if len(matches) == 0 {
			continue
		}
		tokens.Operators[op.Lexeme] += len(matches)
		for _, m := range matches {
			for i := m[0]; i < m[1]; i++ {
				working[i] = ' '
			}
		}
	}

	// Keyword pass without removal
	for _, word := range identPattern.FindAllString(text, -1) {
		if s.Lang.IsKeyword(word) {
			tokens.Operators[word]++
		}
	}

	// Operands: identifiers excluding keywords
	for _, ident := range identPattern.FindAllString(text, -1) {
		if !s.Lang.IsKeyword(ident) {
			tokens.Operands[ident]++
		}
	}

	// Numeric literals
	for _, num := range numberPattern.FindAllString(text, -1) {
		tokens.Operands[num]++
	}

	// String literals
	for _, str := range stringPattern.FindAllString(text, -1) {
		tokens.Operands[str]++
	}

	return tokens
}

// DistinctOperators returns n1.
func (t TokenMultiset) DistinctOperators() int { return len(t.Operators) }

// DistinctOperands returns n2.
func (t TokenMultiset) DistinctOperands() int { return len(t.Operands) }

// TotalOperators returns N1.
func (t TokenMultiset) TotalOperators() int { return total(t.Operators) }

// TotalOperands returns N2.
func (t TokenMultiset) TotalOperands() int { return total(t.Operands) }

func total(m map[string]int) int {
	sum := 0
	for _, count := range m {
		sum += count
	}
	return sum
}
