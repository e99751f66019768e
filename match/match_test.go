package match

import (
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"tailwindcss", "tailwindcss", 1.0},
		{"", "", 1.0},
		{"abc", "abd", 1.0 - 1.0/3.0},
		{"a", "z", 0.0},
	}

	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSuggest_TopMatch(t *testing.T) {
	candidates := []string{"tailwindcss", "alpinejs"}

	got := Suggest("tailwnd", candidates, DefaultThreshold, DefaultMax)
	if len(got) == 0 || got[0] != "tailwindcss" {
		t.Fatalf("Suggest(tailwnd) = %v, want [tailwindcss ...]", got)
	}
}

func TestSuggest_NoMatchBelowThreshold(t *testing.T) {
	candidates := []string{"tailwindcss", "alpinejs"}

	got := Suggest("zzz", candidates, DefaultThreshold, DefaultMax)
	if len(got) != 0 {
		t.Errorf("Suggest(zzz) = %v, want empty", got)
	}
}

func TestSuggest_TypoTableShortCircuit(t *testing.T) {
	candidates := []string{"react", "typescript", "tailwindcss"}

	got := Suggest("typescipt", candidates, DefaultThreshold, DefaultMax)
	if len(got) != 1 || got[0] != "typescript" {
		t.Errorf("Suggest(typescipt) = %v, want [typescript]", got)
	}
}

func TestSuggest_Deterministic(t *testing.T) {
	candidates := []string{"react", "preact", "redact"}

	first := Suggest("reactt", candidates, 0.5, 5)
	for i := 0; i < 10; i++ {
		again := Suggest("reactt", candidates, 0.5, 5)
		if len(again) != len(first) {
			t.Fatalf("run %d returned %v, want %v", i, again, first)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d returned %v, want %v", i, again, first)
			}
		}
	}
}

func TestSuggest_TruncatesToMax(t *testing.T) {
	candidates := []string{"mod-a", "mod-b", "mod-c", "mod-d", "mod-e", "mod-f"}

	got := Suggest("mod-x", candidates, 0.5, 3)
	if len(got) != 3 {
		t.Errorf("Suggest returned %d results, want 3", len(got))
	}
}

func TestSuggest_EmptyInput(t *testing.T) {
	if got := Suggest("", []string{"a"}, DefaultThreshold, DefaultMax); got != nil {
		t.Errorf("Suggest(empty) = %v, want nil", got)
	}
	if got := Suggest("a", nil, DefaultThreshold, DefaultMax); got != nil {
		t.Errorf("Suggest(nil candidates) = %v, want nil", got)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"tailwnd", "tailwindcss", 4},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
