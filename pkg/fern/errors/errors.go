// Package errors provides structured error types for the Fern language.
//
// This package defines FernError, the error type produced by the lexer.
// Lexical errors are never fatal: the scanner reports them through a sink
// and keeps producing tokens, so a FernError is a diagnostic record first
// and a Go error second.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// ErrorClass categorizes errors for filtering and templating.
type ErrorClass string

const (
	ClassUnterminated  ErrorClass = "unterminated"  // Unterminated string/block comment
	ClassEscape        ErrorClass = "escape"        // Malformed escape sequence
	ClassNumber        ErrorClass = "number"        // Malformed numeric literal
	ClassInterpolation ErrorClass = "interpolation" // Bad interpolation syntax or nesting
	ClassByte          ErrorClass = "byte"          // Unrecognized character/byte
)

// FernError represents a lexical error.
type FernError struct {
	Class   ErrorClass     `json:"class"`          // Error category
	Code    string         `json:"code"`           // Error code (e.g., "LEX-0001")
	Message string         `json:"message"`        // Human-readable message
	Line    int            `json:"line"`           // 1-based line (0 if unknown)
	Column  int            `json:"column"`         // 1-based column (0 if unknown)
	File    string         `json:"file,omitempty"` // File path (if known)
	Data    map[string]any `json:"data,omitempty"` // Template variables
}

// Error implements the error interface.
func (e *FernError) Error() string {
	return e.String()
}

// String returns a formatted string representation of the error.
func (e *FernError) String() string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(": ")
	}
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d: ", e.Line))
	}
	sb.WriteString(e.Message)

	return sb.String()
}

// PrettyString returns a multi-line formatted string for display.
func (e *FernError) PrettyString() string {
	var sb strings.Builder

	sb.WriteString("Lex error")
	if e.File != "" {
		sb.WriteString(":\n  in: ")
		sb.WriteString(e.File)
		if e.Line > 0 {
			sb.WriteString(fmt.Sprintf("\n  at: line %d", e.Line))
		}
		sb.WriteString("\n  ")
	} else if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(": line %d\n  ", e.Line))
	} else {
		sb.WriteString(":\n  ")
	}
	sb.WriteString(e.Message)

	return sb.String()
}

// ToJSON returns the error as JSON bytes.
func (e *FernError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ToJSONIndent returns the error as indented JSON bytes.
func (e *FernError) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// WithFile returns a copy of the error with the file path set.
func (e *FernError) WithFile(file string) *FernError {
	copy := *e
	copy.File = file
	return &copy
}

// WithPosition returns a copy of the error with line and column set.
func (e *FernError) WithPosition(line, column int) *FernError {
	copy := *e
	copy.Line = line
	copy.Column = column
	return &copy
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Class    ErrorClass // Error category
	Template string     // Message template with {{.placeholders}}
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	"LEX-0001": {
		Class:    ClassUnterminated,
		Template: "Unterminated string.",
	},
	"LEX-0002": {
		Class:    ClassInterpolation,
		Template: "Expect '(' after '%'.",
	},
	"LEX-0003": {
		Class:    ClassInterpolation,
		Template: "Interpolation may only nest {{.Max}} levels deep.",
	},
	"LEX-0004": {
		Class:    ClassEscape,
		Template: "Invalid escape character '{{.Char}}'.",
	},
	"LEX-0005": {
		Class:    ClassEscape,
		Template: "Incomplete {{.Kind}} escape sequence.",
	},
	"LEX-0006": {
		Class:    ClassEscape,
		Template: "Invalid {{.Kind}} escape sequence.",
	},
	"LEX-0007": {
		Class:    ClassNumber,
		Template: "Unterminated scientific notation.",
	},
	"LEX-0008": {
		Class:    ClassNumber,
		Template: "Number literal was too large.",
	},
	"LEX-0009": {
		Class:    ClassUnterminated,
		Template: "Unterminated block comment.",
	},
	"LEX-0010": {
		Class:    ClassByte,
		Template: "Invalid character '{{.Char}}'.",
	},
	"LEX-0011": {
		Class:    ClassByte,
		Template: "Invalid byte 0x{{.Byte}}.",
	},
}

// New creates a FernError from the catalog, rendering its message template.
func New(code string, data map[string]any) *FernError {
	def, ok := ErrorCatalog[code]
	if !ok {
		// Unknown code - create a generic error
		msg := code
		if data != nil {
			if m, ok := data["message"].(string); ok {
				msg = m
			}
		}
		return &FernError{
			Class:   ClassByte,
			Code:    code,
			Message: msg,
			Data:    data,
		}
	}

	return &FernError{
		Class:   def.Class,
		Code:    code,
		Message: renderTemplate(def.Template, data),
		Data:    data,
	}
}

// NewWithPosition creates a FernError with position information.
func NewWithPosition(code string, line, column int, data map[string]any) *FernError {
	err := New(code, data)
	err.Line = line
	err.Column = column
	return err
}

// NewSimple creates a simple error without using the catalog.
func NewSimple(class ErrorClass, message string) *FernError {
	return &FernError{
		Class:   class,
		Message: message,
	}
}

// renderTemplate renders a Go template with the given data.
func renderTemplate(tmplStr string, data map[string]any) string {
	if data == nil {
		return tmplStr
	}

	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}

	return buf.String()
}
