package repl

import (
	"testing"
)

func TestFilterCompletions(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"fo", []string{"for", "foreign"}},
		{"wh", []string{"while"}},
		{"var x = tr", []string{"var x = true"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		got := filterCompletions(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: got %v, want %v", tt.input, got, tt.want)
				break
			}
		}
	}
}

func TestFilterCompletionsCommands(t *testing.T) {
	got := filterCompletions(":t")
	if len(got) != 1 || got[0] != ":tokens" {
		t.Errorf("got %v, want [:tokens]", got)
	}
}
