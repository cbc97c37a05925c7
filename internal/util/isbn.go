package util

import (
	"regexp"
	"strings"
)

var isbnCandidateRe = regexp.MustCompile(`\b\d[\d-]{9,}`)

var isbn13Prefixes = []string{"978", "979"}

// ISBN holds both renderings of an extracted ISBN: the digits-only value for
// storage and the original hyphenated form for reference.
type ISBN struct {
	Numeric  string
	Original string
}

// ExtractISBN broadly matches ISBN-10 and ISBN-13 shaped substrings inside
// free text (typically publisher details) and selects the best candidate.
// ISBN-13 values are preferred over ISBN-10 because their 978/979 prefix
// makes a false positive much less likely. Returns a zero ISBN when nothing
// plausible is found.
func ExtractISBN(text string) ISBN {
	matches := isbnCandidateRe.FindAllString(text, -1)
	if matches == nil {
		return ISBN{}
	}

	var isbn10s, isbn13s []ISBN
	for _, raw := range matches {
		raw = strings.TrimRight(raw, "-")
		numeric := strings.ReplaceAll(raw, "-", "")

		switch len(numeric) {
		case 13:
			for _, prefix := range isbn13Prefixes {
				if strings.HasPrefix(numeric, prefix) {
					isbn13s = append(isbn13s, ISBN{Numeric: numeric, Original: raw})
					break
				}
			}
		case 10:
			isbn10s = append(isbn10s, ISBN{Numeric: numeric, Original: raw})
		}
	}

	if len(isbn13s) > 0 {
		if len(isbn13s) > 1 {
			WarnLog("multiple ISBN-13 candidates found; selecting the first of %s", joinOriginals(isbn13s))
		}
		return isbn13s[0]
	}
	if len(isbn10s) > 0 {
		if len(isbn10s) > 1 {
			WarnLog("multiple ISBN-10 candidates found; selecting the first of %s", joinOriginals(isbn10s))
		}
		return isbn10s[0]
	}
	return ISBN{}
}

func joinOriginals(candidates []ISBN) string {
	originals := make([]string, len(candidates))
	for i, c := range candidates {
		originals[i] = c.Original
	}
	return strings.Join(originals, ", ")
}
