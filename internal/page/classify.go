package page

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Template identifies which of the site's two profile layouts a page uses.
type Template int

const (
	// TemplateStandard is the narrative single-section layout.
	TemplateStandard Template = iota
	// TemplateAdaptations is the tabular layout used for adaptation-heavy
	// profiles.
	TemplateAdaptations
)

func (t Template) String() string {
	switch t {
	case TemplateStandard:
		return "standard"
	case TemplateAdaptations:
		return "adaptations"
	default:
		return "unknown"
	}
}

const (
	standardMarker = "#osborne"
	tableMarker    = ".content > #table > table"
)

// Classify determines the page template from its two mutually-exclusive
// marker elements. Seeing both or neither violates a structural assumption
// about the site and fails classification; the caller treats that as a
// scraping error for the author, not a fatal condition.
func Classify(doc *goquery.Document) (Template, error) {
	hasSection := doc.Find(standardMarker).Length() > 0
	hasTable := doc.Find(tableMarker).Length() > 0

	switch {
	case hasSection && hasTable:
		return 0, fmt.Errorf("profile page matches both section and table layouts")
	case !hasSection && !hasTable:
		return 0, fmt.Errorf("profile page matches neither section nor table layout")
	case hasSection:
		return TemplateStandard, nil
	default:
		return TemplateAdaptations, nil
	}
}
