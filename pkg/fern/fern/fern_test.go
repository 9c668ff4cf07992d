package fern

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sambeau/fern/pkg/fern/lexer"
)

func TestTokenize(t *testing.T) {
	tokens, lexErrors := Tokenize("var x = 1")

	if len(lexErrors) != 0 {
		t.Fatalf("expected no errors, got %v", lexErrors)
	}
	kinds := []lexer.TokenKind{lexer.VAR, lexer.NAME, lexer.EQ, lexer.NUMBER, lexer.EOF}
	if len(tokens) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d", len(kinds), len(tokens))
	}
	for i, kind := range kinds {
		if tokens[i].Kind != kind {
			t.Errorf("tokens[%d] = %s, want %s", i, tokens[i].Kind, kind)
		}
	}
}

func TestTokenizeAlwaysEndsWithEOF(t *testing.T) {
	for _, input := range []string{"", `"broken`, "@@@", "/*"} {
		tokens, _ := Tokenize(input)
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.EOF {
			t.Errorf("%q: token stream must end with EOF", input)
		}
	}
}

func TestTokenizeStringFilenameInErrors(t *testing.T) {
	_, lexErrors := TokenizeString(`"unterminated`, "broken.fn")
	if len(lexErrors) != 1 {
		t.Fatalf("expected one error, got %v", lexErrors)
	}
	if lexErrors[0].File != "broken.fn" {
		t.Errorf("File = %q, want broken.fn", lexErrors[0].File)
	}
}

func TestTokenizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.fn")
	if err := os.WriteFile(path, []byte("var greeting = \"hi\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tokens, lexErrors, err := TokenizeFile(path)
	if err != nil {
		t.Fatalf("TokenizeFile failed: %v", err)
	}
	if len(lexErrors) != 0 {
		t.Fatalf("expected no errors, got %v", lexErrors)
	}
	if tokens[0].Kind != lexer.VAR {
		t.Errorf("tokens[0] = %s, want VAR", tokens[0].Kind)
	}
}

func TestTokenizeFileMissing(t *testing.T) {
	_, _, err := TokenizeFile(filepath.Join(t.TempDir(), "nope.fn"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestBufferedLogger(t *testing.T) {
	logger := NewBufferedLogger()
	logger.Log("partial")
	logger.LogLine(" line")
	logger.LogLine("second")

	lines := logger.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if lines[0] != "partial line" {
		t.Errorf("lines[0] = %q", lines[0])
	}

	logger.Reset()
	if len(logger.Lines()) != 0 {
		t.Errorf("Reset should clear captured lines")
	}
}
