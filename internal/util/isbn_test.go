package util

import "testing"

func TestExtractISBN(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantNumeric  string
		wantOriginal string
	}{
		{
			name:         "hyphenated isbn-13",
			input:        "Faber and Faber, 2004. ISBN 978-0-571-22521-6",
			wantNumeric:  "9780571225216",
			wantOriginal: "978-0-571-22521-6",
		},
		{
			name:         "bare isbn-13",
			input:        "published 9780571225216 paperback",
			wantNumeric:  "9780571225216",
			wantOriginal: "9780571225216",
		},
		{
			name:         "isbn-10",
			input:        "Methuen 0-413-30290-9 (1985)",
			wantNumeric:  "0413302909",
			wantOriginal: "0-413-30290-9",
		},
		{
			name:         "isbn-13 preferred over isbn-10",
			input:        "0-413-30290-9 also as 978-0-571-22521-6",
			wantNumeric:  "9780571225216",
			wantOriginal: "978-0-571-22521-6",
		},
		{
			name:         "13 digits without book prefix ignored",
			input:        "catalogue no 1234567890123",
			wantNumeric:  "",
			wantOriginal: "",
		},
		{
			name:         "multiple isbn-13 takes first",
			input:        "978-0-571-22521-6 and 978-0-571-22522-3",
			wantNumeric:  "9780571225216",
			wantOriginal: "978-0-571-22521-6",
		},
		{
			name:         "no candidates",
			input:        "I don't think it has been published.",
			wantNumeric:  "",
			wantOriginal: "",
		},
		{
			name:         "short digit runs ignored",
			input:        "first staged 1987, revived 2004",
			wantNumeric:  "",
			wantOriginal: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractISBN(tt.input)
			if got.Numeric != tt.wantNumeric {
				t.Errorf("Numeric = %q, want %q", got.Numeric, tt.wantNumeric)
			}
			if got.Original != tt.wantOriginal {
				t.Errorf("Original = %q, want %q", got.Original, tt.wantOriginal)
			}
		})
	}
}
