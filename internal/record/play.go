package record

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/franz/play-archivist/internal/util"
)

// DefaultPlayID is the sentinel used when a work entry carries no anchor id.
const DefaultPlayID = "0000000"

// Parts holds cast-size counts alongside the original textual cells; sources
// sometimes render non-numeric counts like "2-4" that must survive verbatim.
type Parts struct {
	CountMale   int
	CountFemale int
	CountOther  int
	TextMale    string
	TextFemale  string
	TextOther   string
}

// Total sums the three numeric counts.
func (p Parts) Total() int {
	return p.CountMale + p.CountFemale + p.CountOther
}

// Production is a parsed staging location and date.
type Production struct {
	Location string
	Year     string
}

// Publication is a parsed publisher line.
type Publication struct {
	Publisher    string
	Year         string
	ISBN         string
	ISBNOriginal string
}

// PlayInput is one work entry as extracted from a profile page, already
// field-parsed by the extractor layer.
type PlayInput struct {
	PlayID         string
	Title          string
	AltTitle       string
	Author         string
	AuthorID       primitive.ObjectID
	AdaptingAuthor string
	Genres         string

	Parts       *Parts
	Production  Production
	Publication Publication

	Synopsis      string
	Notes         string
	Organizations string
	Music         string
	Reference     string

	PublishingText string
	ProductionText string

	ScrapedAt time.Time
	SourceURL string
}

// Play is the canonical persisted record for one stage work.
type Play struct {
	ID     primitive.ObjectID
	PlayID string

	Title          string
	AltTitle       string
	Author         string
	AuthorID       primitive.ObjectID
	AdaptingAuthor string
	IsAdaptation   bool
	Genres         string

	Parts       *Parts
	Production  Production
	Publication Publication

	Synopsis      string
	Notes         string
	Organizations string
	Music         string
	Reference     string

	PublishingText string
	ProductionText string

	ScrapedAt   time.Time
	SourceURL   string
	NeedsReview bool
}

// NewPlay validates the extracted work entry and builds the record. A play is
// an adaptation exactly when an adapting author is attributed; that routes it
// into the owning author's adaptation list instead of the play list.
func NewPlay(input PlayInput) (*Play, error) {
	title := util.NormalizeWhitespace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("play input has no title (source %s)", input.SourceURL)
	}

	playID := strings.TrimSpace(input.PlayID)
	if playID == "" {
		playID = DefaultPlayID
	}

	adapting := util.NormalizeWhitespace(input.AdaptingAuthor)

	return &Play{
		ID:             primitive.NewObjectID(),
		PlayID:         playID,
		Title:          title,
		AltTitle:       util.NormalizeWhitespace(input.AltTitle),
		Author:         util.NormalizeWhitespace(input.Author),
		AuthorID:       input.AuthorID,
		AdaptingAuthor: adapting,
		IsAdaptation:   adapting != "",
		Genres:         input.Genres,
		Parts:          input.Parts,
		Production:     input.Production,
		Publication:    input.Publication,
		Synopsis:       input.Synopsis,
		Notes:          input.Notes,
		Organizations:  input.Organizations,
		Music:          input.Music,
		Reference:      input.Reference,
		PublishingText: input.PublishingText,
		ProductionText: input.ProductionText,
		ScrapedAt:      input.ScrapedAt,
		SourceURL:      input.SourceURL,
	}, nil
}

// Document renders the play as a pruned persistence document. createdAt is
// absent by design; the store sets it on insert only.
func (p *Play) Document() bson.M {
	metadata := bson.M{
		"scrapedAt": p.ScrapedAt,
		"sourceUrl": p.SourceURL,
	}
	if p.NeedsReview {
		metadata["needsReview"] = true
	}

	doc := bson.M{
		"playId":   p.PlayID,
		"metadata": metadata,
		"rawFields": bson.M{
			"altTitle":       p.AltTitle,
			"publishingInfo": p.PublishingText,
			"productionInfo": p.ProductionText,
		},
		"title":           p.Title,
		"author":          p.Author,
		"adaptingAuthor":  p.AdaptingAuthor,
		"genres":          p.Genres,
		"publisher":       p.Publication.Publisher,
		"publicationYear": p.Publication.Year,
		"isbn":            p.Publication.ISBN,
		"isbnOriginal":    p.Publication.ISBNOriginal,
		"details": bson.M{
			"synopsis":      p.Synopsis,
			"notes":         p.Notes,
			"organizations": p.Organizations,
			"music":         p.Music,
			"reference":     p.Reference,
			"production": bson.M{
				"productionLocation": p.Production.Location,
				"productionYear":     p.Production.Year,
			},
		},
	}
	if !p.AuthorID.IsZero() {
		doc["authorId"] = p.AuthorID
	}
	if p.IsAdaptation {
		doc["isAdaptation"] = true
	}
	if p.Parts != nil {
		details := doc["details"].(bson.M)
		details["partsCountMale"] = p.Parts.CountMale
		details["partsCountFemale"] = p.Parts.CountFemale
		details["partsCountOther"] = p.Parts.CountOther
		details["partsCountTotal"] = p.Parts.Total()
		details["partsTextMale"] = p.Parts.TextMale
		details["partsTextFemale"] = p.Parts.TextFemale
		details["partsTextOther"] = p.Parts.TextOther
	}
	return RemoveEmptyFields(doc)
}
