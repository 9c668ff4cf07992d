// Package fern provides a public API for embedding the Fern scanner.
package fern

import (
	"os"

	"github.com/sambeau/fern/pkg/fern/errors"
	"github.com/sambeau/fern/pkg/fern/lexer"
)

// Tokenize scans source and returns the complete token stream, including
// the final EOF token, along with any lexical errors. Lexical errors never
// stop the scan, so the token slice is always complete.
func Tokenize(source string) ([]lexer.Token, []*errors.FernError) {
	return tokenize(lexer.New(source))
}

// TokenizeString scans source under the given filename, which shows up in
// reported errors.
func TokenizeString(source, filename string) ([]lexer.Token, []*errors.FernError) {
	return tokenize(lexer.NewWithFilename(source, filename))
}

// TokenizeFile reads and scans a source file.
func TokenizeFile(filename string) ([]lexer.Token, []*errors.FernError, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	tokens, lexErrors := TokenizeString(string(data), filename)
	return tokens, lexErrors, nil
}

func tokenize(l *lexer.Lexer) ([]lexer.Token, []*errors.FernError) {
	var tokens []lexer.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == lexer.EOF {
			return tokens, l.Errors()
		}
	}
}
