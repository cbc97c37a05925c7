package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParts(t *testing.T) {
	t.Run("all dashes omitted", func(t *testing.T) {
		parts, err := ParseParts("Male: - Female: - Other: -")
		require.NoError(t, err)
		assert.Nil(t, parts)
	})

	t.Run("round trip", func(t *testing.T) {
		parts, err := ParseParts("Male: 3 Female: 2 Other: 0")
		require.NoError(t, err)
		require.NotNil(t, parts)
		assert.Equal(t, 3, parts.CountMale)
		assert.Equal(t, 2, parts.CountFemale)
		assert.Equal(t, 0, parts.CountOther)
		assert.Equal(t, 5, parts.Total())
		assert.Equal(t, "3", parts.TextMale)
		assert.Equal(t, "2", parts.TextFemale)
		assert.Equal(t, "0", parts.TextOther)
	})

	t.Run("dash counts as zero", func(t *testing.T) {
		parts, err := ParseParts("Male: 2 Female: - Other: -")
		require.NoError(t, err)
		require.NotNil(t, parts)
		assert.Equal(t, 2, parts.CountMale)
		assert.Equal(t, 0, parts.CountFemale)
		assert.Equal(t, "-", parts.TextFemale)
	})

	t.Run("non-breaking spaces tolerated", func(t *testing.T) {
		parts, err := ParseParts("Male: 1 Female: 2 Other: -")
		require.NoError(t, err)
		require.NotNil(t, parts)
		assert.Equal(t, 1, parts.CountMale)
		assert.Equal(t, 2, parts.CountFemale)
	})

	t.Run("range counts its leading number and keeps the text", func(t *testing.T) {
		parts, err := ParseParts("Male: 2-4 Female: 1 Other: -")
		require.NoError(t, err)
		require.NotNil(t, parts)
		assert.Equal(t, 2, parts.CountMale)
		assert.Equal(t, "2-4", parts.TextMale)
		assert.Equal(t, 1, parts.CountFemale)
		assert.Equal(t, 3, parts.Total())
	})

	t.Run("empty text is absent not error", func(t *testing.T) {
		parts, err := ParseParts("")
		require.NoError(t, err)
		assert.Nil(t, parts)
	})

	t.Run("malformed text with digits errors", func(t *testing.T) {
		_, err := ParseParts("Cast of 12")
		assert.Error(t, err)
	})
}

func TestParseProduction(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantLocation string
		wantYear     string
	}{
		{"full date preferred", "Royal Court Theatre, London 12 Mar 1999", "Royal Court Theatre, London", "12 Mar 1999"},
		{"bare year", "Royal Court Theatre, London 1999", "Royal Court Theatre, London", "1999"},
		{"parenthesized year", "Almeida Theatre (2003)", "Almeida Theatre", "2003"},
		{"no date", "Royal Court Theatre", "Royal Court Theatre", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseProduction(tt.input)
			assert.Equal(t, tt.wantLocation, got.Location)
			assert.Equal(t, tt.wantYear, got.Year)
		})
	}
}

func TestParsePublication(t *testing.T) {
	t.Run("not yet published sentinel", func(t *testing.T) {
		got := ParsePublication("I don't think it has been published.")
		assert.Empty(t, got.Publisher)
		assert.Empty(t, got.Year)
		assert.Empty(t, got.ISBN)
	})

	t.Run("publisher year and isbn", func(t *testing.T) {
		got := ParsePublication("Faber and Faber 2004 ISBN 978-0-571-22521-6")
		assert.Equal(t, "9780571225216", got.ISBN)
		assert.Equal(t, "978-0-571-22521-6", got.ISBNOriginal)
		assert.Equal(t, "2004", got.Year)
		assert.Equal(t, "Faber and Faber", got.Publisher, "orphaned ISBN label is stripped")
	})

	t.Run("isbn label with colon stripped", func(t *testing.T) {
		got := ParsePublication("Nick Hern Books 2010 ISBN: 978-1-84842-123-7")
		assert.Equal(t, "9781848421237", got.ISBN)
		assert.Equal(t, "Nick Hern Books", got.Publisher)
		assert.Equal(t, "2010", got.Year)
	})

	t.Run("isbn removed before year extraction", func(t *testing.T) {
		// without prior ISBN removal the 1985 inside the ISBN would be lost
		// along with the publication year
		got := ParsePublication("Methuen 0-413-30290-9")
		assert.Equal(t, "0413302909", got.ISBN)
		assert.Equal(t, "Methuen", got.Publisher)
		assert.Empty(t, got.Year)
	})

	t.Run("publisher only", func(t *testing.T) {
		got := ParsePublication("Samuel French")
		assert.Equal(t, "Samuel French", got.Publisher)
		assert.Empty(t, got.Year)
	})
}

func TestParseOriginalAuthor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Original Playwright: Anton Chekhov", "Anton Chekhov"},
		{"terminated by semicolon", "Original Playwright: Anton Chekhov; first staged 1896", "Anton Chekhov"},
		{"case insensitive", "original playwright: Henrik Ibsen", "Henrik Ibsen"},
		{"absent", "First staged at the Royal Court", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseOriginalAuthor(tt.input))
		})
	}
}

func TestParseSingleCount(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"3", 3},
		{"-", 0},
		{"", -1},
		{"ensemble", -1},
		{"12", 12},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseSingleCount(tt.input), "input %q", tt.input)
	}
}
