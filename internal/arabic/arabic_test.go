package arabic_test

import (
	"testing"

	"github.com/matjarly/matjar/internal/arabic"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain latin untouched", input: "headphones", want: "headphones"},
		{name: "trims whitespace", input: "  ثلاجة  ", want: "ثلاجه"},
		{name: "hamza alef variants", input: "أإآٱ", want: "اااا"},
		{name: "taa marbuta", input: "برادة", want: "براده"},
		{name: "alef maqsura", input: "مقهى", want: "مقهي"},
		{name: "hamza seats", input: "مؤمن رئيس", want: "مومن رييس"},
		{name: "tatweel removed", input: "كــتــاب", want: "كتاب"},
		{name: "dialect gaf", input: "گرسون", want: "كرسون"},
		{name: "dialect cheh", input: "چاي", want: "جاي"},
		{name: "dialect peh", input: "پيتزا", want: "بيتزا"},
		{name: "dialect veh", input: "ڤيلا", want: "فيلا"},
		{name: "maghrebi qaf", input: "ڨهوة", want: "قهوه"},
		{name: "diacritics stripped", input: "مُحَمَّد", want: "محمد"},
		{name: "mixed sentence", input: "ثلاجة كهربائية", want: "ثلاجه كهرباييه"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := arabic.Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"headphones",
		"ثلاجة كهربائية",
		"أبجد هوز مُنَوَّن",
		"ڨهوة و چاي",
		"  مقهى  ",
	}

	for _, in := range inputs {
		once := arabic.Normalize(in)
		twice := arabic.Normalize(once)

		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalize_CanonicalInputUnchanged(t *testing.T) {
	// Already-canonical text only gets trimmed.
	in := " براده كتاب قهوه "
	if got := arabic.Normalize(in); got != "براده كتاب قهوه" {
		t.Errorf("Normalize(%q) = %q, want trim only", in, got)
	}
}
