package lexer

import (
	"testing"
)

// Realistic Fern code samples of varying complexity
var (
	simpleCode = `var x = 1 + 2 * 3`

	mediumCode = `
class Greeter {
	construct new(name) {
		_name = name
	}

	greet() {
		return "Hello, %(_name)!"
	}
}
`

	complexCode = `// Directory walker
import "io" for File

class Walker {
	static walk(dir, depth) {
		if (depth > 8) return []
		var found = []
		for (entry in File.list(dir)) {
			if (entry.isDir && !(entry.name == "..")) {
				found = found + Walker.walk("%(dir)/%(entry.name)", depth + 1)
			} else {
				found = found + [entry]
			}
		}
		return found
	}
}

var sizes = Walker.walk(".", 0)
var total = 0
for (f in sizes) {
	total = total + f.size
}
`

	numericCode = `
var a = 0x1A2B3C
var b = 3.14159
var c = 2e-3
var d = 1024
var e = a + b * c - d / 2
`
)

func benchmarkLexer(b *testing.B, input string) {
	b.SetBytes(int64(len(input)))
	for i := 0; i < b.N; i++ {
		l := New(input)
		for l.NextToken().Kind != EOF {
		}
	}
}

func BenchmarkLexer_Simple(b *testing.B) {
	benchmarkLexer(b, simpleCode)
}

func BenchmarkLexer_Medium(b *testing.B) {
	benchmarkLexer(b, mediumCode)
}

func BenchmarkLexer_Complex(b *testing.B) {
	benchmarkLexer(b, complexCode)
}

func BenchmarkLexer_Numeric(b *testing.B) {
	benchmarkLexer(b, numericCode)
}
