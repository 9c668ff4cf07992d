// Package repl implements the interactive token console for Fern.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/sambeau/fern/pkg/fern/errors"
	"github.com/sambeau/fern/pkg/fern/fern"
	"github.com/sambeau/fern/pkg/fern/lexer"
)

const PROMPT = ">> "

const FERN_LOGO = `
█▀▀ █▀▀ █▀█ █▄░█
█▀░ ██▄ █▀▄ █░▀█ `

// Fern keywords plus REPL commands for tab completion
var completionWords = []string{
	// Keywords
	"break", "class", "construct", "else", "false", "for", "foreign", "if",
	"import", "in", "is", "null", "return", "static", "super", "this",
	"true", "var", "while",
	// REPL commands
	":help", ":lexemes", ":tokens", ":quit",
}

// Start starts the REPL with line editing, history, and tab completion.
// Each line is scanned and its token stream printed.
func Start(in io.Reader, out io.Writer, version string) {
	line := liner.NewLiner()
	defer line.Close()

	// Enable Ctrl+C to abort current line
	line.SetCtrlCAborts(true)

	line.SetCompleter(func(line string) []string {
		return filterCompletions(line)
	})

	// Load command history from file
	historyFile := filepath.Join(os.TempDir(), ".fern_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	// Save history on exit
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(out, "%s", FERN_LOGO)
	fmt.Fprintln(out, "v", version)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out, "Use Tab for completion, ↑↓ for history")
	fmt.Fprintln(out, "Type ':help' for REPL commands")
	fmt.Fprintln(out, "")

	lexemesOnly := false

	for {
		input, err := line.Prompt(PROMPT)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(out, "^C")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "exit" || trimmed == "quit" {
			fmt.Fprintln(out, "Goodbye!")
			return
		}
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			newLexemesOnly, handled := handleReplCommand(trimmed, out, lexemesOnly)
			if handled {
				lexemesOnly = newLexemesOnly
				continue
			}
			fmt.Fprintf(out, "Unknown command %s (try :help)\n", trimmed)
			continue
		}

		line.AppendHistory(input)

		tokens, lexErrors := fern.Tokenize(input)
		printTokens(out, tokens, lexemesOnly)
		printLexErrors(out, lexErrors)
	}
}

func handleReplCommand(cmd string, out io.Writer, lexemesOnly bool) (bool, bool) {
	switch cmd {
	case ":help":
		fmt.Fprintln(out, "REPL commands:")
		fmt.Fprintln(out, "  :help      Show this help")
		fmt.Fprintln(out, "  :tokens    Print full tokens (kind, lexeme, line)")
		fmt.Fprintln(out, "  :lexemes   Print token kinds and lexemes only")
		fmt.Fprintln(out, "  :quit      Exit the REPL")
		return lexemesOnly, true
	case ":tokens":
		fmt.Fprintln(out, "Printing full tokens")
		return false, true
	case ":lexemes":
		fmt.Fprintln(out, "Printing kinds and lexemes only")
		return true, true
	case ":quit":
		fmt.Fprintln(out, "Goodbye!")
		os.Exit(0)
	}
	return lexemesOnly, false
}

func printTokens(out io.Writer, tokens []lexer.Token, lexemesOnly bool) {
	for _, tok := range tokens {
		if tok.Kind == lexer.EOF {
			continue
		}
		if lexemesOnly {
			fmt.Fprintf(out, "%s(%q)\n", tok.Kind, tok.Lexeme)
			continue
		}
		switch tok.Kind {
		case lexer.NUMBER:
			fmt.Fprintf(out, "%-14s %-12q line %d  value %v\n", tok.Kind, tok.Lexeme, tok.Line, tok.Value)
		case lexer.STRING, lexer.INTERPOLATION:
			fmt.Fprintf(out, "%-14s %-12q line %d  text %q\n", tok.Kind, tok.Lexeme, tok.Line, tok.Text)
		default:
			fmt.Fprintf(out, "%-14s %-12q line %d\n", tok.Kind, tok.Lexeme, tok.Line)
		}
	}
}

func printLexErrors(out io.Writer, lexErrors []*errors.FernError) {
	for _, err := range lexErrors {
		fmt.Fprintln(out, err.PrettyString())
	}
}

// filterCompletions returns completion words matching the trailing word of
// the input line
func filterCompletions(input string) []string {
	fields := strings.Fields(input)
	prefix := input
	base := ""
	if len(fields) > 0 && !strings.HasSuffix(input, " ") {
		prefix = fields[len(fields)-1]
		base = input[:len(input)-len(prefix)]
	}

	var matches []string
	for _, word := range completionWords {
		if strings.HasPrefix(word, prefix) {
			matches = append(matches, base+word)
		}
	}
	sort.Strings(matches)
	return matches
}
