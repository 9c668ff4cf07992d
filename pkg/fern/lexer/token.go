package lexer

import "fmt"

// TokenKind represents different kinds of tokens
type TokenKind int

const (
	// Special tokens
	ERROR TokenKind = iota // recoverable lexical defect (zero-length lexeme)
	EOF
	LINE // \n statement terminator

	// Identifiers and literals
	NAME          // add, foobar, x, y, ...
	FIELD         // _field
	STATIC_FIELD  // __staticField
	NUMBER        // 1343456, 3.14159, 0x1A, 2e-3
	STRING        // "foobar"
	INTERPOLATION // "a %( ... string fragment ending at an interpolation

	// Operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	CARET    // ^
	TILDE    // ~
	QUESTION // ?
	BANG     // !
	BANGEQ   // !=
	EQ       // =
	EQEQ     // ==
	LT       // <
	GT       // >
	LTEQ     // <=
	GTEQ     // >=
	LTLT     // <<
	GTGT     // >>
	PIPE     // |
	PIPEPIPE // ||
	AMP      // &
	AMPAMP   // &&

	// Delimiters
	LEFT_PAREN    // (
	RIGHT_PAREN   // )
	LEFT_BRACKET  // [
	RIGHT_BRACKET // ]
	LEFT_BRACE    // {
	RIGHT_BRACE   // }
	COLON         // :
	COMMA         // ,
	DOT           // .
	DOTDOT        // ..
	DOTDOTDOT     // ...

	// Keywords
	BREAK     // "break"
	CLASS     // "class"
	CONSTRUCT // "construct"
	ELSE      // "else"
	FALSE     // "false"
	FOR       // "for"
	FOREIGN   // "foreign"
	IF        // "if"
	IMPORT    // "import"
	IN        // "in"
	IS        // "is"
	NULL      // "null"
	RETURN    // "return"
	STATIC    // "static"
	SUPER     // "super"
	THIS      // "this"
	TRUE      // "true"
	VAR       // "var"
	WHILE     // "while"
)

// Token represents a single token
type Token struct {
	Kind   TokenKind
	Lexeme string  // the exact source text the token spans
	Line   int     // 1-based line of the token's content
	Value  float64 // numeric value, NUMBER only
	Text   string  // decoded content, STRING and INTERPOLATION only
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Kind: %s, Lexeme: %q, Line: %d}", t.Kind.String(), t.Lexeme, t.Line)
}

// String returns the stable name of the token kind
func (tk TokenKind) String() string {
	switch tk {
	case ERROR:
		return "ERROR"
	case EOF:
		return "EOF"
	case LINE:
		return "LINE"
	case NAME:
		return "NAME"
	case FIELD:
		return "FIELD"
	case STATIC_FIELD:
		return "STATIC_FIELD"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case INTERPOLATION:
		return "INTERPOLATION"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case STAR:
		return "STAR"
	case SLASH:
		return "SLASH"
	case PERCENT:
		return "PERCENT"
	case CARET:
		return "CARET"
	case TILDE:
		return "TILDE"
	case QUESTION:
		return "QUESTION"
	case BANG:
		return "BANG"
	case BANGEQ:
		return "BANGEQ"
	case EQ:
		return "EQ"
	case EQEQ:
		return "EQEQ"
	case LT:
		return "LT"
	case GT:
		return "GT"
	case LTEQ:
		return "LTEQ"
	case GTEQ:
		return "GTEQ"
	case LTLT:
		return "LTLT"
	case GTGT:
		return "GTGT"
	case PIPE:
		return "PIPE"
	case PIPEPIPE:
		return "PIPEPIPE"
	case AMP:
		return "AMP"
	case AMPAMP:
		return "AMPAMP"
	case LEFT_PAREN:
		return "LEFT_PAREN"
	case RIGHT_PAREN:
		return "RIGHT_PAREN"
	case LEFT_BRACKET:
		return "LEFT_BRACKET"
	case RIGHT_BRACKET:
		return "RIGHT_BRACKET"
	case LEFT_BRACE:
		return "LEFT_BRACE"
	case RIGHT_BRACE:
		return "RIGHT_BRACE"
	case COLON:
		return "COLON"
	case COMMA:
		return "COMMA"
	case DOT:
		return "DOT"
	case DOTDOT:
		return "DOTDOT"
	case DOTDOTDOT:
		return "DOTDOTDOT"
	case BREAK:
		return "BREAK"
	case CLASS:
		return "CLASS"
	case CONSTRUCT:
		return "CONSTRUCT"
	case ELSE:
		return "ELSE"
	case FALSE:
		return "FALSE"
	case FOR:
		return "FOR"
	case FOREIGN:
		return "FOREIGN"
	case IF:
		return "IF"
	case IMPORT:
		return "IMPORT"
	case IN:
		return "IN"
	case IS:
		return "IS"
	case NULL:
		return "NULL"
	case RETURN:
		return "RETURN"
	case STATIC:
		return "STATIC"
	case SUPER:
		return "SUPER"
	case THIS:
		return "THIS"
	case TRUE:
		return "TRUE"
	case VAR:
		return "VAR"
	case WHILE:
		return "WHILE"
	default:
		return "UNKNOWN"
	}
}

// Keywords map for identifying language keywords
var keywords = map[string]TokenKind{
	"break":     BREAK,
	"class":     CLASS,
	"construct": CONSTRUCT,
	"else":      ELSE,
	"false":     FALSE,
	"for":       FOR,
	"foreign":   FOREIGN,
	"if":        IF,
	"import":    IMPORT,
	"in":        IN,
	"is":        IS,
	"null":      NULL,
	"return":    RETURN,
	"static":    STATIC,
	"super":     SUPER,
	"this":      THIS,
	"true":      TRUE,
	"var":       VAR,
	"while":     WHILE,
}

// LookupName checks if a scanned name is a keyword
func LookupName(name string) TokenKind {
	if kind, ok := keywords[name]; ok {
		return kind
	}
	return NAME
}
