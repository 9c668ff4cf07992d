package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sambeau/fern/config"
	"github.com/sambeau/fern/pkg/fern/errors"
	"github.com/sambeau/fern/pkg/fern/fern"
	"github.com/sambeau/fern/pkg/fern/lexer"
	"github.com/sambeau/fern/pkg/fern/repl"
)

// Version is set at compile time via -ldflags
var Version = "0.3.1"

var (
	// Display flags
	helpFlag        = flag.Bool("h", false, "Show help message")
	helpLongFlag    = flag.Bool("help", false, "Show help message")
	versionFlag     = flag.Bool("V", false, "Show version information")
	versionLongFlag = flag.Bool("version", false, "Show version information")
	jsonFlag        = flag.Bool("json", false, "Print tokens as JSON lines")

	// Scanning flags
	evalFlag     = flag.String("e", "", "Tokenize a code string")
	evalLongFlag = flag.String("eval", "", "Tokenize a code string")
	checkFlag    = flag.Bool("check", false, "Report lexical errors only, no token dump")

	// Watch flags
	watchFlag     = flag.Bool("w", false, "Watch files and re-check on change")
	watchLongFlag = flag.Bool("watch", false, "Watch files and re-check on change")

	// Config flag
	configFlag = flag.String("config", "", "Path to fern.yaml (default: discover in cwd)")
)

func main() {
	flag.Usage = printHelp
	flag.Parse()

	if *helpFlag || *helpLongFlag {
		printHelp()
		os.Exit(0)
	}

	if *versionFlag || *versionLongFlag {
		fmt.Printf("fern version %s\n", Version)
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
	if *jsonFlag {
		cfg.Output.Format = "json"
	}

	// Get code string (prefer -e over --eval if both set)
	evalCode := *evalFlag
	if evalCode == "" {
		evalCode = *evalLongFlag
	}

	watch := *watchFlag || *watchLongFlag

	// Mode dispatch
	switch {
	case evalCode != "":
		tokens, lexErrors := fern.Tokenize(evalCode)
		if !*checkFlag {
			printTokens(tokens, cfg)
		}
		printErrors(lexErrors, cfg)
		if len(lexErrors) > 0 {
			os.Exit(1)
		}
	case watch:
		files := flag.Args()
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --watch requires at least one file or directory")
			os.Exit(2)
		}
		if err := watchFiles(files, cfg); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
	case *checkFlag:
		files := flag.Args()
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --check requires at least one file")
			os.Exit(2)
		}
		os.Exit(checkFiles(files, cfg))
	case len(flag.Args()) > 0:
		failed := false
		for _, filename := range flag.Args() {
			tokens, lexErrors, err := fern.TokenizeFile(filename)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				os.Exit(2)
			}
			printTokens(tokens, cfg)
			printErrors(lexErrors, cfg)
			failed = failed || len(lexErrors) > 0
		}
		if failed {
			os.Exit(1)
		}
	default:
		repl.Start(os.Stdin, os.Stdout, Version)
	}
}

func loadConfig() (*config.Config, error) {
	if *configFlag != "" {
		return config.Load(*configFlag)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Discover(cwd)
}

// checkFiles lexes each file and reports diagnostics without dumping tokens.
// Returns the exit code: 0 when every file is clean.
func checkFiles(files []string, cfg *config.Config) int {
	exitCode := 0
	for _, filename := range files {
		_, lexErrors, err := fern.TokenizeFile(filename)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			exitCode = 2
			continue
		}
		if len(lexErrors) > 0 {
			printErrors(lexErrors, cfg)
			if exitCode == 0 {
				exitCode = 1
			}
			continue
		}
		fmt.Printf("%s: OK\n", filename)
	}
	return exitCode
}

// tokenJSON is the JSON-lines shape of a token
type tokenJSON struct {
	Kind   string   `json:"kind"`
	Lexeme string   `json:"lexeme"`
	Line   int      `json:"line"`
	Value  *float64 `json:"value,omitempty"`
	Text   *string  `json:"text,omitempty"`
}

func printTokens(tokens []lexer.Token, cfg *config.Config) {
	logger := fern.DefaultLogger
	for _, tok := range tokens {
		if tok.Kind == lexer.EOF {
			continue
		}
		if cfg.Output.Format == "json" {
			rec := tokenJSON{Kind: tok.Kind.String(), Lexeme: tok.Lexeme, Line: tok.Line}
			if cfg.Output.Values {
				if tok.Kind == lexer.NUMBER {
					v := tok.Value
					rec.Value = &v
				}
				if tok.Kind == lexer.STRING || tok.Kind == lexer.INTERPOLATION {
					s := tok.Text
					rec.Text = &s
				}
			}
			data, err := json.Marshal(rec)
			if err != nil {
				continue
			}
			logger.LogLine(string(data))
			continue
		}
		switch {
		case tok.Kind == lexer.NUMBER && cfg.Output.Values:
			logger.LogLine(fmt.Sprintf("%-14s %-12q line %d  value %v", tok.Kind, tok.Lexeme, tok.Line, tok.Value))
		case (tok.Kind == lexer.STRING || tok.Kind == lexer.INTERPOLATION) && cfg.Output.Values:
			logger.LogLine(fmt.Sprintf("%-14s %-12q line %d  text %q", tok.Kind, tok.Lexeme, tok.Line, tok.Text))
		default:
			logger.LogLine(fmt.Sprintf("%-14s %-12q line %d", tok.Kind, tok.Lexeme, tok.Line))
		}
	}
}

func printErrors(lexErrors []*errors.FernError, cfg *config.Config) {
	logger := fern.WriterLogger(os.Stderr)
	for i, err := range lexErrors {
		if cfg.Errors.Limit > 0 && i >= cfg.Errors.Limit {
			logger.LogLine(fmt.Sprintf("... and %d more errors", len(lexErrors)-i))
			return
		}
		if cfg.Errors.Pretty {
			logger.LogLine(err.PrettyString())
		} else {
			logger.LogLine(err.String())
		}
	}
}

func printHelp() {
	fmt.Printf(`fern - Fern language scanner version %s

Usage:
  fern [options] [file] [args...]
  fern -e "code"
  fern --check <file>...
  fern -w <file-or-dir>...

Display Options:
  -h, --help            Show this help message
  -V, --version         Show version information
  --json                Print tokens as JSON lines

Scanning Options:
  -e, --eval <code>     Tokenize a code string and print the token stream
  --check               Report lexical errors only (exit 1 when any found)
  -w, --watch           Watch files/directories and re-check on change
  --config <path>       Use a specific fern.yaml

With no file arguments, fern starts an interactive token console.

Exit codes: 0 clean, 1 lexical errors found, 2 usage or I/O error.
`, Version)
}
