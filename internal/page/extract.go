package page

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/franz/play-archivist/internal/record"
)

// Biography is the raw biographical harvest from one profile page.
type Biography struct {
	HeadingName string
	AltName     string
	Born        string
	Died        string

	Nationality   string
	Email         string
	Website       string
	LiteraryAgent string
	Research      string
	Address       string
	Telephone     string

	Narrative string
}

// Work is one parsed entry from a profile page's works list.
type Work struct {
	PlayID         string
	Title          string
	AltTitle       string
	AdaptingAuthor string
	OriginalAuthor string

	Synopsis      string
	Notes         string
	Organizations string
	Music         string
	Genres        string
	Reference     string

	ProductionText string
	PublishingText string

	Parts       *record.Parts
	Production  record.Production
	Publication record.Publication
}

// Extractor is one template family's biography/works extraction pair. A
// failed field leaves its zero value behind rather than aborting the page;
// partial data is expected.
type Extractor interface {
	Biography() Biography
	Works() []Work
	Template() Template
}

// NewExtractor classifies the document and returns the matching extractor.
func NewExtractor(doc *goquery.Document) (Extractor, error) {
	template, err := Classify(doc)
	if err != nil {
		return nil, err
	}
	switch template {
	case TemplateAdaptations:
		return &tableExtractor{doc: doc}, nil
	default:
		return &standardExtractor{doc: doc}, nil
	}
}
