package page

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/franz/play-archivist/internal/record"
	"github.com/franz/play-archivist/internal/util"
)

// notPublishedSentinel is the site's phrase for works without a publisher.
const notPublishedSentinel = "I don't think it has been published."

var (
	partsRe          = regexp.MustCompile(`Male:\s*(.+?)\s+Female:\s*(.+?)\s+Other:\s*(.+)$`)
	fullDateRe       = regexp.MustCompile(`\b(\d{1,2}\s+[A-Za-z]{3,9}\.?\s+[12]\d{3})\b`)
	bareYearRe       = regexp.MustCompile(`\(?\b([12]\d{3})\b\)?`)
	originalAuthorRe = regexp.MustCompile(`(?i)Original Playwright:\s*(.+?)(;|$)`)
	digitRe          = regexp.MustCompile(`[0-9]+`)
	leadingDigitsRe  = regexp.MustCompile(`^[0-9]+`)
	isbnLabelRe      = regexp.MustCompile(`(?i)\bISBN\b[:.]?`)
)

// ParseParts interprets a compact cast-size cell like "Male: 3 Female: 2
// Other: -". A dash or blank field counts as zero; when every field is zero
// or absent the whole structure is omitted (nil, nil) rather than stored as
// zeros. Text that contains digits but does not fit the format is an error so
// the caller can log it without losing the rest of the entry.
func ParseParts(text string) (*record.Parts, error) {
	if !digitRe.MatchString(text) {
		return nil, nil
	}

	normalized := util.NormalizeWhitespace(text)
	match := partsRe.FindStringSubmatch(normalized)
	if match == nil {
		return nil, fmt.Errorf("cast-size text does not match expected format: %q", text)
	}

	male, female, other := strings.TrimSpace(match[1]), strings.TrimSpace(match[2]), strings.TrimSpace(match[3])
	parts := &record.Parts{
		CountMale:   parseCount(male),
		CountFemale: parseCount(female),
		CountOther:  parseCount(other),
		TextMale:    male,
		TextFemale:  female,
		TextOther:   other,
	}
	if parts.Total() == 0 && male == "-" && female == "-" && other == "-" {
		return nil, nil
	}
	return parts, nil
}

// parseCount reads the leading number out of a cast field, so a range like
// "2-4" counts its lower bound while the verbatim text survives alongside.
func parseCount(text string) int {
	if m := leadingDigitsRe.FindString(text); m != "" {
		n, _ := strconv.Atoi(m)
		return n
	}
	return 0
}

// ParseSingleCount handles the table layout's one-number-per-cell cast
// fields. Returns -1 when the cell holds neither a number nor a dash.
func ParseSingleCount(text string) int {
	text = strings.TrimSpace(text)
	if m := digitRe.FindString(text); m != "" {
		n, _ := strconv.Atoi(m)
		return n
	}
	if text == "-" {
		return 0
	}
	return -1
}

// ParseProduction splits a combined staging line into location and date. The
// full "DD MMM YYYY" form is preferred over a bare year; the matched date is
// removed from the remainder to yield the location.
func ParseProduction(text string) record.Production {
	text = util.NormalizeWhitespace(text)
	if text == "" {
		return record.Production{}
	}
	date, remainder := util.SearchForAndRemove(text, []*regexp.Regexp{fullDateRe, bareYearRe})
	return record.Production{
		Location: strings.Trim(util.NormalizeWhitespace(remainder), " ,;()"),
		Year:     date,
	}
}

// ParsePublication splits a combined publisher line into publisher, year and
// ISBN. The ISBN is extracted first because its digit runs would otherwise be
// mistaken for nothing by the year patterns. The "not yet published" sentinel
// short-circuits to an empty publication.
func ParsePublication(text string) record.Publication {
	text = util.NormalizeWhitespace(text)
	if text == "" || strings.Contains(text, notPublishedSentinel) {
		return record.Publication{}
	}

	isbn := util.ExtractISBN(text)
	remainder := text
	if isbn.Original != "" {
		remainder = util.RemoveAndNormalize(remainder, isbn.Original)
		// the label is orphaned once its digits are gone
		remainder = util.NormalizeWhitespace(isbnLabelRe.ReplaceAllString(remainder, " "))
	}

	year, remainder := util.SearchForAndRemove(remainder, []*regexp.Regexp{fullDateRe, bareYearRe})

	return record.Publication{
		Publisher:    strings.Trim(util.NormalizeWhitespace(remainder), " ,;()"),
		Year:         year,
		ISBN:         isbn.Numeric,
		ISBNOriginal: isbn.Original,
	}
}

// ParseOriginalAuthor pulls the "Original Playwright: X" attribution out of
// an adaptation's free-text notes.
func ParseOriginalAuthor(notes string) string {
	match := originalAuthorRe.FindStringSubmatch(notes)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
