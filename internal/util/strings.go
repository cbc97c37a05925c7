package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe     = regexp.MustCompile(`\s+`)
	alphanumericRe   = regexp.MustCompile(`[a-zA-Z0-9]`)
	disambiguationRe = regexp.MustCompile(`\s*\(\d{1,2}\)\s*$`)
)

// HasAlphanumeric reports whether the string contains at least one ASCII
// letter or digit. Scraped cells frequently hold bare punctuation ("-", "·")
// standing in for missing data.
func HasAlphanumeric(s string) bool {
	return alphanumericRe.MatchString(s)
}

// NormalizeWhitespace collapses all whitespace runs (including non-breaking
// spaces) to single spaces and trims the ends.
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// IsPlaceholder reports whether a scraped value is one of the site's
// stand-ins for missing data once trimmed: empty, "-", or "n/a" in any case.
func IsPlaceholder(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || t == "-" || strings.EqualFold(t, "n/a")
}

// RemoveAndNormalize deletes every occurrence of removal from s and
// normalizes the remaining whitespace.
func RemoveAndNormalize(s, removal string) string {
	return NormalizeWhitespace(strings.ReplaceAll(s, removal, ""))
}

// SearchForAndRemove tries each pattern in order against the input. On the
// first match it returns the first capture group and the input with the full
// match removed. Ex: "(2020)" yields "2020" and strips "(2020)".
func SearchForAndRemove(input string, patterns []*regexp.Regexp) (matched, remainder string) {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatchIndex(input)
		if m == nil {
			continue
		}
		full := input[m[0]:m[1]]
		group := ""
		if len(m) >= 4 && m[2] >= 0 {
			group = input[m[2]:m[3]]
		}
		return group, strings.Replace(input, full, "", 1)
	}
	return "", input
}

// RemoveDisambiguationSuffix strips a trailing parenthesized 1-2 digit
// counter like "(2)" that the site appends to repeated listing names.
func RemoveDisambiguationSuffix(s string) string {
	return strings.TrimSpace(disambiguationRe.ReplaceAllString(s, ""))
}

// IsAllCaps reports whether every cased letter in the string is upper case.
// Strings with no letters at all are not considered all-caps.
func IsAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if unicode.IsLower(r) {
			return false
		}
	}
	return hasLetter
}

// FoldEqual compares two strings case-insensitively after NFC normalization.
func FoldEqual(a, b string) bool {
	return strings.EqualFold(norm.NFC.String(a), norm.NFC.String(b))
}

// SlicesFoldEqual compares two string slices element-wise with FoldEqual.
func SlicesFoldEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !FoldEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ToTitleCase title-cases each whitespace-separated word: first letter upper,
// remainder lower. Mixed-case words keep their interior casing so names like
// "McCartney" survive; fully-cased words are folded.
func ToTitleCase(s string) string {
	words := strings.Fields(norm.NFC.String(s))
	for i, word := range words {
		words[i] = capitalizeWord(word)
	}
	return strings.Join(words, " ")
}

func capitalizeWord(word string) string {
	if word == "" {
		return ""
	}

	runes := []rune(word)

	hasLower := false
	hasUpper := false
	for _, r := range runes {
		if unicode.IsLetter(r) {
			if unicode.IsLower(r) {
				hasLower = true
			}
			if unicode.IsUpper(r) {
				hasUpper = true
			}
		}
	}

	if (hasUpper && !hasLower) || (hasLower && !hasUpper) {
		runes[0] = unicode.ToUpper(runes[0])
		for i := 1; i < len(runes); i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	} else {
		// mixed case: only ensure the leading letter is upper
		runes[0] = unicode.ToUpper(runes[0])
	}

	return string(runes)
}

var slugUnsafeRe = regexp.MustCompile(`[^a-z0-9-]`)

// Slugify lowercases the first maxLen characters of s, converts whitespace
// runs to hyphens and drops anything outside [a-z0-9-].
func Slugify(s string, maxLen int) string {
	if maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
	}
	s = strings.ToLower(s)
	s = whitespaceRe.ReplaceAllString(s, "-")
	return slugUnsafeRe.ReplaceAllString(s, "")
}
