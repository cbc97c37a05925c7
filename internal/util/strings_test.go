package util

import (
	"regexp"
	"testing"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "hello world", "hello world"},
		{"collapse runs", "hello   world", "hello world"},
		{"trim ends", "  hello world  ", "hello world"},
		{"tabs and newlines", "hello\t\nworld", "hello world"},
		{"non-breaking space", "hello world", "hello world"},
		{"empty", "", ""},
		{"only whitespace", " \t   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeWhitespace(tt.input); got != tt.expected {
				t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", true},
		{"  ", true},
		{"-", true},
		{" - ", true},
		{"n/a", true},
		{"N/A", true},
		{"N/a", true},
		{"value", false},
		{"--", false},
		{"0", false},
	}

	for _, tt := range tests {
		if got := IsPlaceholder(tt.input); got != tt.expected {
			t.Errorf("IsPlaceholder(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestHasAlphanumeric(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"abc", true},
		{"123", true},
		{"a-b", true},
		{"-", false},
		{"·", false},
		{"", false},
		{"!?.", false},
	}

	for _, tt := range tests {
		if got := HasAlphanumeric(tt.input); got != tt.expected {
			t.Errorf("HasAlphanumeric(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestSearchForAndRemove(t *testing.T) {
	yearRe := regexp.MustCompile(`\b(\d{4})\b`)
	parenRe := regexp.MustCompile(`\((\d{4})\)`)

	tests := []struct {
		name          string
		input         string
		patterns      []*regexp.Regexp
		wantMatch     string
		wantRemainder string
	}{
		{
			name:          "first pattern wins",
			input:         "Faber (1999)",
			patterns:      []*regexp.Regexp{parenRe, yearRe},
			wantMatch:     "1999",
			wantRemainder: "Faber ",
		},
		{
			name:          "falls through to second pattern",
			input:         "Faber 1999",
			patterns:      []*regexp.Regexp{parenRe, yearRe},
			wantMatch:     "1999",
			wantRemainder: "Faber ",
		},
		{
			name:          "no match leaves input intact",
			input:         "Faber and Faber",
			patterns:      []*regexp.Regexp{parenRe, yearRe},
			wantMatch:     "",
			wantRemainder: "Faber and Faber",
		},
		{
			name:          "only first occurrence removed",
			input:         "1999 then 2001",
			patterns:      []*regexp.Regexp{yearRe},
			wantMatch:     "1999",
			wantRemainder: " then 2001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, remainder := SearchForAndRemove(tt.input, tt.patterns)
			if match != tt.wantMatch {
				t.Errorf("match = %q, want %q", match, tt.wantMatch)
			}
			if remainder != tt.wantRemainder {
				t.Errorf("remainder = %q, want %q", remainder, tt.wantRemainder)
			}
		})
	}
}

func TestRemoveDisambiguationSuffix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SMITH John (2)", "SMITH John"},
		{"SMITH John (12)", "SMITH John"},
		{"SMITH John", "SMITH John"},
		{"SMITH John (123)", "SMITH John (123)"},
		{"(2)", ""},
	}

	for _, tt := range tests {
		if got := RemoveDisambiguationSuffix(tt.input); got != tt.expected {
			t.Errorf("RemoveDisambiguationSuffix(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsAllCaps(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"ROYAL COURT THEATRE", true},
		{"SMITH", true},
		{"Smith", false},
		{"SMITH-JONES", true},
		{"7:84 THEATRE CO", true},
		{"123", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsAllCaps(tt.input); got != tt.expected {
			t.Errorf("IsAllCaps(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestFoldEqual(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{"Smith", "SMITH", true},
		{"smith", "Smith", true},
		{"Müller", "MÜLLER", true},
		{"Smith", "Smyth", false},
		{"", "", true},
	}

	for _, tt := range tests {
		if got := FoldEqual(tt.a, tt.b); got != tt.expected {
			t.Errorf("FoldEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestSlicesFoldEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected bool
	}{
		{"equal ignoring case", []string{"John", "SMITH"}, []string{"JOHN", "smith"}, true},
		{"different length", []string{"John"}, []string{"John", "Smith"}, false},
		{"different element", []string{"John", "Smith"}, []string{"John", "Smyth"}, false},
		{"both empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlicesFoldEqual(tt.a, tt.b); got != tt.expected {
				t.Errorf("SlicesFoldEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestToTitleCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"JOHN SMITH", "John Smith"},
		{"john smith", "John Smith"},
		{"mcCartney", "McCartney"},
		{"McDONALD", "McDONALD"},
		{"o'neill", "O'neill"},
		{"  spaced   out  ", "Spaced Out"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ToTitleCase(tt.input); got != tt.expected {
			t.Errorf("ToTitleCase(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"basic", "The Birthday Party", 0, "the-birthday-party"},
		{"truncated before slugging", "A Very Long Play Title Indeed", 16, "a-very-long-play"},
		{"punctuation dropped", "What's Next?!", 0, "whats-next"},
		{"digits kept", "Play 42", 0, "play-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("Slugify(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}
