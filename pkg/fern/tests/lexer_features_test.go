package tests

import (
	"strings"
	"testing"

	"github.com/sambeau/fern/pkg/fern/fern"
	"github.com/sambeau/fern/pkg/fern/lexer"
)

func kindsOf(tokens []lexer.Token) []lexer.TokenKind {
	kinds := make([]lexer.TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestFullProgram(t *testing.T) {
	source := `#!/usr/bin/env fern
// A whole small program
class Counter {
	construct new() {
		_value = 0
	}

	increment() {
		_value = _value + 1
		return "now at %(_value)"
	}
}

var c = Counter.new()
var limit = 0x10
while (c.value < limit) {
	c.increment()
}
`
	tokens, lexErrors := fern.Tokenize(source)
	if len(lexErrors) != 0 {
		t.Fatalf("expected a clean scan, got %v", lexErrors)
	}

	// Spot-check a few load-bearing tokens
	var sawClass, sawField, sawInterpolation, sawHex bool
	for _, tok := range tokens {
		switch {
		case tok.Kind == lexer.CLASS:
			sawClass = true
		case tok.Kind == lexer.FIELD && tok.Lexeme == "_value":
			sawField = true
		case tok.Kind == lexer.INTERPOLATION:
			sawInterpolation = true
		case tok.Kind == lexer.NUMBER && tok.Value == 16:
			sawHex = true
		}
	}
	if !sawClass || !sawField || !sawInterpolation || !sawHex {
		t.Fatalf("missing expected tokens: class=%v field=%v interpolation=%v hex=%v",
			sawClass, sawField, sawInterpolation, sawHex)
	}
}

func TestDeeplyNestedInterpolationStress(t *testing.T) {
	// Exactly at the nesting limit: eight levels scan cleanly
	source := strings.Repeat(`"%(`, 8) + "0" + strings.Repeat(`)"`, 8)
	tokens, lexErrors := fern.Tokenize(source)
	if len(lexErrors) != 0 {
		t.Fatalf("eight levels should scan cleanly, got %v", lexErrors)
	}

	var interpolations int
	for _, tok := range tokens {
		if tok.Kind == lexer.INTERPOLATION {
			interpolations++
		}
	}
	if interpolations != 8 {
		t.Fatalf("expected 8 INTERPOLATION tokens, got %d", interpolations)
	}
}

func TestMultipleErrorsDoNotStopTheScan(t *testing.T) {
	source := "var $ = @ 2e\n\"ok\""
	tokens, lexErrors := fern.Tokenize(source)

	if len(lexErrors) != 3 {
		t.Fatalf("expected three errors, got %v", lexErrors)
	}

	// The scan still reaches and correctly lexes the final string
	kinds := kindsOf(tokens)
	if kinds[len(kinds)-1] != lexer.EOF {
		t.Fatalf("missing EOF")
	}
	if kinds[len(kinds)-2] != lexer.STRING {
		t.Fatalf("expected trailing STRING, got %v", kinds)
	}
	if text := tokens[len(tokens)-2].Text; text != "ok" {
		t.Fatalf("trailing string text = %q, want ok", text)
	}
}

func TestErrorsCarryLineNumbers(t *testing.T) {
	source := "fine\n\"unterminated"
	_, lexErrors := fern.Tokenize(source)

	if len(lexErrors) != 1 {
		t.Fatalf("expected one error, got %v", lexErrors)
	}
	if lexErrors[0].Line != 2 {
		t.Fatalf("error line = %d, want 2", lexErrors[0].Line)
	}
}
