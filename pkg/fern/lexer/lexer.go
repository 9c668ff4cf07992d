package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/sambeau/fern/pkg/fern/errors"
)

// MaxInterpolationNesting is how deeply "%( ... )" interpolations may nest
// inside string literals.
const MaxInterpolationNesting = 8

// Reporter receives lexical errors as they are found. Errors never abort the
// scan; the reporter only observes them.
type Reporter func(line int, message string)

// Lexer represents the lexical analyzer.
//
// It scans raw bytes. Multi-byte UTF-8 sequences are never lexically
// significant, so the lexer does not decode them; this keeps error positions
// stable for non-ASCII input.
type Lexer struct {
	filename   string
	input      string
	tokenStart int // offset of the first byte of the token being scanned
	cursor     int // offset of the next unconsumed byte
	line       int // current line number, counts consumed '\n' bytes

	previous Token // last token handed to the consumer
	current  Token // most recently produced token

	// One entry per open interpolation, counting unmatched '(' inside it.
	parens    [MaxInterpolationNesting]int
	numParens int

	reporter Reporter
	errors   []*errors.FernError
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return &Lexer{
		filename: "<input>",
		input:    input,
		line:     1,
	}
}

// NewWithFilename creates a new lexer instance with a specific filename
func NewWithFilename(input string, filename string) *Lexer {
	l := New(input)
	l.filename = filename
	return l
}

// SetReporter installs a sink for lexical errors. Errors are still collected
// on the lexer either way.
func (l *Lexer) SetReporter(r Reporter) {
	l.reporter = r
}

// Errors returns all lexical errors found so far
func (l *Lexer) Errors() []*errors.FernError {
	return l.errors
}

// Previous returns the token most recently consumed via NextToken
func (l *Lexer) Previous() Token {
	return l.previous
}

// Current returns the most recently produced token
func (l *Lexer) Current() Token {
	return l.current
}

// InterpolationDepth returns how many interpolations are currently open
func (l *Lexer) InterpolationDepth() int {
	return l.numParens
}

// NextToken scans the input and returns the next token.
//
// The previous/current pair tracks the one-token-lookahead window a parser
// needs. Once EOF has been produced, further calls keep returning EOF
// without touching the cursor.
func (l *Lexer) NextToken() Token {
	l.previous = l.current
	if l.current.Kind == EOF {
		return l.current
	}
	l.current = l.scanToken()
	return l.current
}

// scanToken scans forward from the cursor and produces exactly one token
func (l *Lexer) scanToken() Token {
	for l.cursor < len(l.input) {
		l.tokenStart = l.cursor
		c := l.nextChar()

		switch c {
		case '(':
			// Inside an interpolation every '(' must be matched before the
			// ')' that closes the interpolation itself.
			if l.numParens > 0 {
				l.parens[l.numParens-1]++
			}
			return l.makeToken(LEFT_PAREN)
		case ')':
			if l.numParens > 0 {
				l.parens[l.numParens-1]--
				if l.parens[l.numParens-1] == 0 {
					// This ')' closes the interpolation. Resume scanning the
					// string body that follows it.
					l.numParens--
					return l.readString()
				}
			}
			return l.makeToken(RIGHT_PAREN)
		case '[':
			return l.makeToken(LEFT_BRACKET)
		case ']':
			return l.makeToken(RIGHT_BRACKET)
		case '{':
			return l.makeToken(LEFT_BRACE)
		case '}':
			return l.makeToken(RIGHT_BRACE)
		case ':':
			return l.makeToken(COLON)
		case ',':
			return l.makeToken(COMMA)
		case '*':
			return l.makeToken(STAR)
		case '%':
			return l.makeToken(PERCENT)
		case '^':
			return l.makeToken(CARET)
		case '+':
			return l.makeToken(PLUS)
		case '-':
			return l.makeToken(MINUS)
		case '~':
			return l.makeToken(TILDE)
		case '?':
			return l.makeToken(QUESTION)
		case '|':
			return l.twoCharToken('|', PIPEPIPE, PIPE)
		case '&':
			return l.twoCharToken('&', AMPAMP, AMP)
		case '=':
			return l.twoCharToken('=', EQEQ, EQ)
		case '!':
			return l.twoCharToken('=', BANGEQ, BANG)
		case '<':
			if l.matchChar('<') {
				return l.makeToken(LTLT)
			}
			return l.twoCharToken('=', LTEQ, LT)
		case '>':
			if l.matchChar('>') {
				return l.makeToken(GTGT)
			}
			return l.twoCharToken('=', GTEQ, GT)
		case '.':
			if l.matchChar('.') {
				if l.matchChar('.') {
					return l.makeToken(DOTDOTDOT)
				}
				return l.makeToken(DOTDOT)
			}
			return l.makeToken(DOT)
		case '/':
			if l.matchChar('/') {
				l.skipLineComment()
				continue
			}
			if l.matchChar('*') {
				l.skipBlockComment()
				continue
			}
			return l.makeToken(SLASH)
		case '"':
			return l.readString()
		case '\n':
			// nextChar already counted the newline, so step the reported
			// line back onto the line the newline terminates.
			return Token{Kind: LINE, Lexeme: l.lexeme(), Line: l.line - 1}
		case ' ', '\t', '\r':
			continue
		case '#':
			// Shebang tolerance: "#!" at the very start of the file reads
			// as a line comment.
			if l.tokenStart == 0 && l.peekChar() == '!' {
				l.skipLineComment()
				continue
			}
			l.invalidChar(c)
			return l.errorToken()
		case '_':
			kind := FIELD
			if l.peekChar() == '_' {
				kind = STATIC_FIELD
			}
			return l.readName(kind)
		case '0':
			if l.peekChar() == 'x' {
				return l.readHexNumber()
			}
			return l.readNumber()
		default:
			if isNameStart(c) {
				return l.readName(NAME)
			}
			if isDigit(c) {
				return l.readNumber()
			}
			l.invalidChar(c)
			return l.errorToken()
		}
	}

	l.tokenStart = l.cursor
	return Token{Kind: EOF, Lexeme: "", Line: l.line}
}

// nextChar consumes and returns the byte under the cursor. At end of input
// it returns 0 without advancing, so the cursor never passes len(input).
func (l *Lexer) nextChar() byte {
	if l.cursor >= len(l.input) {
		return 0
	}
	c := l.input[l.cursor]
	l.cursor++
	if c == '\n' {
		l.line++
	}
	return c
}

// peekChar returns the byte under the cursor without consuming it
func (l *Lexer) peekChar() byte {
	if l.cursor >= len(l.input) {
		return 0
	}
	return l.input[l.cursor]
}

// peekNextChar returns the byte one past the cursor without consuming it
func (l *Lexer) peekNextChar() byte {
	if l.cursor+1 >= len(l.input) {
		return 0
	}
	return l.input[l.cursor+1]
}

// matchChar consumes the next byte only if it equals want
func (l *Lexer) matchChar(want byte) bool {
	if l.peekChar() != want {
		return false
	}
	l.nextChar()
	return true
}

// twoCharToken consumes a trailing second character if present, producing
// two, otherwise one
func (l *Lexer) twoCharToken(second byte, two, one TokenKind) Token {
	if l.matchChar(second) {
		return l.makeToken(two)
	}
	return l.makeToken(one)
}

func (l *Lexer) lexeme() string {
	return l.input[l.tokenStart:l.cursor]
}

func (l *Lexer) makeToken(kind TokenKind) Token {
	return Token{Kind: kind, Lexeme: l.lexeme(), Line: l.line}
}

// errorToken produces the zero-length ERROR sentinel emitted for bytes that
// belong to no recognized construct. The offending byte stays consumed so
// the scan always advances.
func (l *Lexer) errorToken() Token {
	return Token{Kind: ERROR, Lexeme: "", Line: l.line}
}

// skipLineComment consumes up to, but not including, the next newline. The
// newline itself still becomes a LINE token.
func (l *Lexer) skipLineComment() {
	for l.peekChar() != '\n' && l.cursor < len(l.input) {
		l.nextChar()
	}
}

// skipBlockComment consumes a /* */ comment, which may nest arbitrarily
func (l *Lexer) skipBlockComment() {
	nesting := 1
	for nesting > 0 {
		if l.cursor >= len(l.input) {
			l.lexError("LEX-0009", nil)
			return
		}
		if l.peekChar() == '/' && l.peekNextChar() == '*' {
			l.nextChar()
			l.nextChar()
			nesting++
			continue
		}
		if l.peekChar() == '*' && l.peekNextChar() == '/' {
			l.nextChar()
			l.nextChar()
			nesting--
			continue
		}
		l.nextChar()
	}
}

// readName scans an identifier and reclassifies it as a keyword on an exact
// match. kind is FIELD or STATIC_FIELD when the name began with underscores.
func (l *Lexer) readName(kind TokenKind) Token {
	for isNameStart(l.peekChar()) || isDigit(l.peekChar()) {
		l.nextChar()
	}
	if kind == NAME {
		kind = LookupName(l.lexeme())
	}
	return l.makeToken(kind)
}

// readNumber scans a decimal literal: digits, an optional fraction (only
// when the '.' is followed by a digit, so "1.toString" stays a method call),
// and an optional scientific-notation suffix.
func (l *Lexer) readNumber() Token {
	for isDigit(l.peekChar()) {
		l.nextChar()
	}
	if l.peekChar() == '.' && isDigit(l.peekNextChar()) {
		l.nextChar()
		for isDigit(l.peekChar()) {
			l.nextChar()
		}
	}
	digitsEnd := l.cursor
	if l.matchChar('e') || l.matchChar('E') {
		l.matchChar('-')
		if !isDigit(l.peekChar()) {
			// The lexeme keeps the dangling marker; the value does not.
			l.lexError("LEX-0007", nil)
			return l.makeNumber(l.input[l.tokenStart:digitsEnd], 10)
		}
		for isDigit(l.peekChar()) {
			l.nextChar()
		}
	}
	return l.makeNumber(l.lexeme(), 10)
}

// readHexNumber scans a 0x literal. A non-hex digit simply stops the scan;
// whatever follows is left for the next token.
func (l *Lexer) readHexNumber() Token {
	l.nextChar() // consume 'x'
	for isHexDigit(l.peekChar()) {
		l.nextChar()
	}
	return l.makeNumber(l.lexeme(), 16)
}

// makeNumber computes the numeric value from the digits of the raw lexeme
func (l *Lexer) makeNumber(digits string, base int) Token {
	var value float64
	var err error
	if base == 16 {
		digits = digits[2:] // strip "0x"
		if digits != "" {
			var v uint64
			v, err = strconv.ParseUint(digits, 16, 64)
			value = float64(v)
		}
	} else {
		value, err = strconv.ParseFloat(digits, 64)
	}
	if err != nil {
		l.lexError("LEX-0008", nil)
		value = 0
	}
	tok := l.makeToken(NUMBER)
	tok.Value = value
	return tok
}

// readString scans a string body: from an opening '"', or from the ')' that
// just closed an interpolation. It produces STRING when the body runs to a
// closing quote and INTERPOLATION when it is cut short by "%(".
func (l *Lexer) readString() Token {
	startLine := l.line
	kind := STRING
	var text []byte

	for {
		if l.cursor >= len(l.input) {
			// Report once and emit the fragment anyway so the consumer can
			// recover.
			l.lexError("LEX-0001", nil)
			break
		}
		c := l.nextChar()
		if c == '"' {
			break
		}

		if c == '%' {
			if l.numParens < MaxInterpolationNesting {
				if l.nextChar() != '(' {
					l.lexError("LEX-0002", nil)
				}
				l.parens[l.numParens] = 1
				l.numParens++
				kind = INTERPOLATION
				break
			}
			l.lexError("LEX-0003", map[string]any{"Max": MaxInterpolationNesting})
			// Too deep: the '%' degrades to a literal character and the
			// string scan continues.
			text = append(text, c)
			continue
		}

		if c == '\\' {
			text = l.readEscape(text)
			continue
		}

		text = append(text, c)
	}

	tok := Token{Kind: kind, Lexeme: l.lexeme(), Line: startLine}
	tok.Text = string(text)
	return tok
}

// readEscape handles the character after a backslash in a string body
func (l *Lexer) readEscape(text []byte) []byte {
	c := l.nextChar()
	switch c {
	case '"':
		return append(text, '"')
	case '\\':
		return append(text, '\\')
	case '%':
		return append(text, '%')
	case '0':
		return append(text, 0)
	case 'a':
		return append(text, '\a')
	case 'b':
		return append(text, '\b')
	case 'e':
		return append(text, 0x1b)
	case 'f':
		return append(text, '\f')
	case 'n':
		return append(text, '\n')
	case 'r':
		return append(text, '\r')
	case 't':
		return append(text, '\t')
	case 'v':
		return append(text, '\v')
	case 'x':
		return append(text, byte(l.readHexEscape(2, "byte")))
	case 'u':
		return l.readUnicodeEscape(text, 4)
	case 'U':
		return l.readUnicodeEscape(text, 8)
	default:
		l.lexError("LEX-0004", map[string]any{"Char": string(c)})
		return text
	}
}

// readHexEscape reads up to digits hex digits and returns their value. It
// stops early, with an error, on a bad digit or when the string or input
// ends first.
func (l *Lexer) readHexEscape(digits int, kind string) int {
	value := 0
	for i := 0; i < digits; i++ {
		if l.peekChar() == '"' || l.cursor >= len(l.input) {
			l.lexError("LEX-0005", map[string]any{"Kind": kind})
			break
		}
		digit := hexDigitValue(l.peekChar())
		if digit == -1 {
			// Leave the bad byte for the string scan to pick up.
			l.lexError("LEX-0006", map[string]any{"Kind": kind})
			break
		}
		l.nextChar()
		value = value*16 | digit
	}
	return value
}

// readUnicodeEscape reads a \u or \U escape and appends its UTF-8 encoding
func (l *Lexer) readUnicodeEscape(text []byte, digits int) []byte {
	value := l.readHexEscape(digits, "Unicode")
	if utf8.ValidRune(rune(value)) {
		text = utf8.AppendRune(text, rune(value))
	}
	return text
}

func (l *Lexer) invalidChar(c byte) {
	if c >= 32 && c <= 126 {
		l.lexError("LEX-0010", map[string]any{"Char": string(c)})
		return
	}
	l.lexError("LEX-0011", map[string]any{"Byte": fmt.Sprintf("%02x", c)})
}

// lexError records a lexical error and notifies the reporter. Lexical
// errors are never fatal to the scan.
func (l *Lexer) lexError(code string, data map[string]any) {
	err := errors.New(code, data).WithPosition(l.line, 0).WithFile(l.filename)
	l.errors = append(l.errors, err)
	if l.reporter != nil {
		l.reporter(err.Line, err.Message)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func hexDigitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}
