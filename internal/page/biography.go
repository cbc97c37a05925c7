package page

import (
	"regexp"
	"strings"

	"github.com/franz/play-archivist/internal/util"
)

// blankImagePath marks the site's placeholder portrait; its alt text is
// boilerplate, not a name.
const blankImagePath = "/Images-playwrights/Blank"

// biographyLabels is the fixed vocabulary of bold-labeled fields found in
// profile sections.
var biographyLabels = []string{
	"Nationality",
	"Email",
	"Website",
	"Literary Agent",
	"Research",
	"Address",
	"Telephone",
}

// narrativePlaceholders are boilerplate texts the site substitutes for a
// missing biography; a narrative matching any of them is discarded.
var narrativePlaceholders = []string{
	"including biography, theatres, agent, synopses, cast sizes, production and published dates",
	"please send me a biography and information about this playwright",
	"i do not have a biography of this playwright",
	"please help doollee to become even more complete",
}

var (
	// labeledFieldRe finds a bold label from the vocabulary followed by its
	// value, tolerating an optional anchor wrapper around the value.
	labeledFieldRe = regexp.MustCompile(
		`(?i)<strong>(` + strings.Join(biographyLabels, "|") + `)[^<]*</strong>\s*(?:<a[^>]*>)?([^<]+)`)

	// lastLabelRe matches every bold label run, used to locate the start of
	// the trailing narrative.
	lastLabelRe = regexp.MustCompile(`(?s)<strong[^>]*>.*?</strong>(?:\s*<a[^>]*>.*?</a>)?`)

	// dateRangeRe matches a trailing parenthesized birth-death range like
	// "(1856 - 1950)" or "(c.400 BC - ?)".
	dateRangeRe = regexp.MustCompile(`\s*\(([^-]+?)\s*-\s*([^)]+?)\)\s*$`)

	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	nbspEntityRe = regexp.MustCompile(`&nbsp;`)
)

// harvestLabeledFields scans a section's raw inner HTML for bold-labeled
// values and writes them onto the biography. The labels lack structural
// markup, so regex over the HTML is the only reliable harvest. Values
// normalizing to "n/a" or empty are treated as absent.
func harvestLabeledFields(html string, bio *Biography) {
	for _, match := range labeledFieldRe.FindAllStringSubmatch(html, -1) {
		label := strings.ToLower(match[1])
		value := normalizeLabeledValue(match[2])

		switch label {
		case "nationality":
			bio.Nationality = value
		case "email":
			bio.Email = value
		case "website":
			bio.Website = value
		case "literary agent":
			bio.LiteraryAgent = value
		case "research":
			bio.Research = value
		case "address":
			bio.Address = value
		case "telephone":
			bio.Telephone = value
		}
	}
}

func normalizeLabeledValue(raw string) string {
	collapsed := strings.ToLower(nbspEntityRe.ReplaceAllString(raw, ""))
	collapsed = strings.Join(strings.Fields(collapsed), "")
	if collapsed == "" || collapsed == "n/a" {
		return ""
	}
	return util.NormalizeWhitespace(nbspEntityRe.ReplaceAllString(raw, " "))
}

// trailingNarrative returns the normalized text following the last bold
// label in the section HTML.
func trailingNarrative(html string) string {
	locs := lastLabelRe.FindAllStringIndex(html, -1)
	if len(locs) == 0 {
		return ""
	}
	last := locs[len(locs)-1]
	return normalizeNarrative(html[last[1]:])
}

// normalizeNarrative strips markup and entities, collapses whitespace and
// discards known placeholder boilerplate.
func normalizeNarrative(text string) string {
	text = htmlTagRe.ReplaceAllString(text, "")
	text = nbspEntityRe.ReplaceAllString(text, " ")
	text = util.NormalizeWhitespace(text)

	lower := strings.ToLower(text)
	for _, placeholder := range narrativePlaceholders {
		if strings.Contains(lower, placeholder) {
			return ""
		}
	}
	return text
}

// splitDateRange strips a trailing parenthesized birth-death range from a
// heading, returning the remaining text and the two year strings. Both years
// may be absent.
func splitDateRange(text string) (name, born, died string) {
	text = strings.TrimSpace(text)
	match := dateRangeRe.FindStringSubmatch(text)
	if match == nil {
		return text, "", ""
	}
	name = strings.TrimSpace(dateRangeRe.ReplaceAllString(text, ""))
	return name, strings.TrimSpace(match[1]), strings.TrimSpace(match[2])
}

// imageAltName returns an image's alt text as a candidate alternate name,
// suppressing it when the image is missing or the blank-placeholder
// sentinel.
func imageAltName(src, alt string) string {
	if src == "" || strings.Contains(src, blankImagePath) {
		return ""
	}
	return strings.TrimSpace(alt)
}
