package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple lowercase", "hello world", []string{"hello", "world"}},
		{"uppercase is folded", "HELLO World", []string{"hello", "world"}},
		{"with punctuation", "hello, world!", []string{"hello", "world"}},
		{"row separator", "AB007 | Bolt | Steel", []string{"ab007", "bolt", "steel"}},
		{"single characters dropped", "a b cd 7 42", []string{"cd", "42"}},
		{"underscore is a word character", "part_no", []string{"part_no"}},
		{"hyphen splits", "state-of-the-art", []string{"state", "of", "the", "art"}},
		{"decimal number splits", "12.50", []string{"12", "50"}},
		{"unicode letters", "Schraube Größe", []string{"schraube", "größe"}},
		{"only symbols", "!@#$%^", []string{}},
		{"repeated terms kept", "bolt bolt", []string{"bolt", "bolt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTermCounts(t *testing.T) {
	got := TermCounts("Bolt | bolt long | NUT")
	want := map[string]int{"bolt": 2, "long": 1, "nut": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TermCounts() = %v, want %v", got, want)
	}

	if empty := TermCounts(""); len(empty) != 0 {
		t.Errorf("TermCounts(\"\") = %v, want empty map", empty)
	}
}
