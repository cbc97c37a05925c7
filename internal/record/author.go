package record

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/franz/play-archivist/internal/util"
)

// FieldDiff captures one disagreement between the profile heading and the
// index listing for a name component.
type FieldDiff struct {
	Heading string `bson:"heading" json:"heading"`
	Listing string `bson:"listing" json:"listing"`
}

// AuthorInput is the raw scrape of one profile page's biography section plus
// the listing name the index provided for it.
type AuthorInput struct {
	ListingName string
	HeadingName string
	AltName     string

	YearBorn      string
	YearDied      string
	Nationality   string
	Email         string
	Website       string
	LiteraryAgent string
	Biography     string
	Research      string
	Address       string
	Telephone     string

	ScrapedAt time.Time
	SourceURL string
}

// ReviewPolicy holds the heuristics that decide when an author needs manual
// review. The defaults reproduce the observed site quirks; both are judgment
// calls, so callers may swap them out.
type ReviewPolicy struct {
	// SingleWordOrganization flags organization names that could be personal
	// mononyms.
	SingleWordOrganization func(listingName string) bool
	// NameConflict decides whether a non-empty heading/listing diff warrants
	// review.
	NameConflict func(diff map[string]FieldDiff) bool
}

// DefaultReviewPolicy returns the stock heuristics.
func DefaultReviewPolicy() ReviewPolicy {
	return ReviewPolicy{
		SingleWordOrganization: func(listingName string) bool {
			return len(strings.Fields(listingName)) == 1
		},
		NameConflict: func(diff map[string]FieldDiff) bool {
			return len(diff) > 0
		},
	}
}

// Author is the canonical persisted record for one playwright or organization.
type Author struct {
	ID primitive.ObjectID

	Name           string
	DisplayName    string
	FirstName      string
	LastName       string
	MiddleNames    []string
	Suffixes       []string
	IsOrganization bool

	YearBorn      string
	YearDied      string
	Nationality   string
	Email         string
	Website       string
	LiteraryAgent string
	Biography     string
	Research      string
	Address       string
	Telephone     string

	ListingName string
	HeadingName string
	AltName     string

	PlayIDs       []primitive.ObjectID
	AdaptationIDs []primitive.ObjectID
	SourcePlayIDs []string

	ScrapedAt         time.Time
	SourceURL         string
	NeedsReview       bool
	NeedsReviewReason string
	NeedsReviewData   map[string]FieldDiff
}

// NewAuthor reconciles the scraped name fields into one canonical identity
// and assembles the author record. The listing name arrives ordered
// "Last [Suffix...] First [Middle...]" while the heading reads
// "First [Middle...] Last [Suffix...]"; disagreement between the two
// decompositions flags the record for review rather than guessing.
func NewAuthor(input AuthorInput, policy ReviewPolicy) (*Author, error) {
	if strings.TrimSpace(input.HeadingName) == "" {
		return nil, fmt.Errorf("author input has no heading name (source %s)", input.SourceURL)
	}
	listing := util.RemoveDisambiguationSuffix(util.NormalizeWhitespace(input.ListingName))
	heading := util.RemoveDisambiguationSuffix(util.NormalizeWhitespace(input.HeadingName))
	alt := util.RemoveDisambiguationSuffix(util.NormalizeWhitespace(input.AltName))
	if listing == "" {
		listing = heading
	}

	a := &Author{
		ID:            primitive.NewObjectID(),
		YearBorn:      input.YearBorn,
		YearDied:      input.YearDied,
		Nationality:   input.Nationality,
		Email:         input.Email,
		Website:       input.Website,
		LiteraryAgent: input.LiteraryAgent,
		Biography:     input.Biography,
		Research:      input.Research,
		Address:       input.Address,
		Telephone:     input.Telephone,
		ListingName:   listing,
		HeadingName:   heading,
		AltName:       alt,
		ScrapedAt:     input.ScrapedAt,
		SourceURL:     input.SourceURL,
	}

	if isOrganizationName(listing, heading, alt) {
		a.IsOrganization = true
		if alt != "" {
			a.Name = alt
		} else {
			a.Name = util.ToTitleCase(listing)
		}
		a.DisplayName = a.Name
		if policy.SingleWordOrganization != nil && policy.SingleWordOrganization(listing) {
			a.NeedsReview = true
			a.NeedsReviewReason = "single-word organization name may be a personal mononym"
		}
		return a, nil
	}

	parseName(a, listing, heading, alt, policy)
	return a, nil
}

// isOrganizationName applies the organization test: the listing must be all
// caps, equal the heading ignoring case, and equal the alt name too when one
// is present.
func isOrganizationName(listing, heading, alt string) bool {
	if !util.IsAllCaps(listing) {
		return false
	}
	if !util.FoldEqual(listing, heading) {
		return false
	}
	if alt != "" && !util.FoldEqual(listing, alt) {
		return false
	}
	return true
}

// parseName splits both raw orderings into first/middle/last/suffix groups,
// diffs them and builds the canonical name from the heading decomposition.
func parseName(a *Author, listing, heading, alt string, policy ReviewPolicy) {
	listingWords := strings.Fields(listing)
	headingWords := strings.Fields(heading)

	headingFirst := headingWords[0]
	listingLast := listingWords[0]

	lastInHeading := indexFold(headingWords, listingLast)
	firstInListing := indexFold(listingWords, headingFirst)

	// Derived decompositions. When the pivot token cannot be located in the
	// other ordering, fall back to the positional endpoint; the resulting
	// field diff is exactly what flags the record for review.
	headingLast := headingWords[len(headingWords)-1]
	var headingSuffixes, headingMiddles []string
	if lastInHeading >= 0 {
		headingLast = headingWords[lastInHeading]
		headingSuffixes = headingWords[lastInHeading+1:]
		if lastInHeading >= 1 {
			headingMiddles = headingWords[1:lastInHeading]
		}
	}
	listingFirst := listingWords[len(listingWords)-1]
	var listingSuffixes, listingMiddles []string
	if firstInListing >= 0 {
		listingFirst = listingWords[firstInListing]
		listingMiddles = listingWords[firstInListing+1:]
		if firstInListing >= 1 {
			listingSuffixes = listingWords[1:firstInListing]
		}
	}

	diff := map[string]FieldDiff{}
	if !util.FoldEqual(headingFirst, listingFirst) {
		diff["First Name"] = FieldDiff{Heading: headingFirst, Listing: listingFirst}
	}
	if !util.FoldEqual(headingLast, listingLast) {
		diff["Last Name"] = FieldDiff{Heading: headingLast, Listing: listingLast}
	}
	if !util.SlicesFoldEqual(headingMiddles, listingMiddles) {
		diff["Middle Names"] = FieldDiff{
			Heading: strings.Join(headingMiddles, " "),
			Listing: strings.Join(listingMiddles, " "),
		}
	}
	if !util.SlicesFoldEqual(headingSuffixes, listingSuffixes) {
		diff["Suffixes"] = FieldDiff{
			Heading: strings.Join(headingSuffixes, " "),
			Listing: strings.Join(listingSuffixes, " "),
		}
	}

	a.FirstName = util.ToTitleCase(headingFirst)
	a.LastName = util.ToTitleCase(listingLast)
	for _, m := range headingMiddles {
		a.MiddleNames = append(a.MiddleNames, util.ToTitleCase(m))
	}
	for _, s := range headingSuffixes {
		a.Suffixes = append(a.Suffixes, util.ToTitleCase(s))
	}

	parts := make([]string, 0, 2+len(a.MiddleNames)+len(a.Suffixes))
	parts = append(parts, a.FirstName)
	parts = append(parts, a.MiddleNames...)
	parts = append(parts, a.LastName)
	parts = append(parts, a.Suffixes...)
	a.Name = strings.Join(parts, " ")

	if alt != "" {
		a.DisplayName = alt
	} else {
		a.DisplayName = a.Name
	}

	if len(diff) > 0 && policy.NameConflict != nil && policy.NameConflict(diff) {
		a.NeedsReview = true
		a.NeedsReviewReason = "listing and heading name decompositions disagree"
		a.NeedsReviewData = diff
	}
}

func indexFold(words []string, target string) int {
	for i, w := range words {
		if util.FoldEqual(w, target) {
			return i
		}
	}
	return -1
}

// AddPlay appends an original play reference.
func (a *Author) AddPlay(id primitive.ObjectID) {
	a.PlayIDs = append(a.PlayIDs, id)
}

// AddAdaptation appends an adaptation reference.
func (a *Author) AddAdaptation(id primitive.ObjectID) {
	a.AdaptationIDs = append(a.AdaptationIDs, id)
}

// AddSourcePlayID appends a source-site play identifier.
func (a *Author) AddSourcePlayID(id string) {
	a.SourcePlayIDs = append(a.SourcePlayIDs, id)
}

// Document renders the author as a pruned persistence document. createdAt is
// intentionally absent; the store contract sets it on insert only.
func (a *Author) Document() bson.M {
	metadata := bson.M{
		"scrapedAt": a.ScrapedAt,
		"sourceUrl": a.SourceURL,
	}
	if a.NeedsReview {
		metadata["needsReview"] = true
		metadata["needsReviewReason"] = a.NeedsReviewReason
		if len(a.NeedsReviewData) > 0 {
			data := bson.M{}
			for label, d := range a.NeedsReviewData {
				data[label] = bson.M{"heading": d.Heading, "listing": d.Listing}
			}
			metadata["needsReviewData"] = data
		}
	}

	doc := bson.M{
		"metadata": metadata,
		"rawFields": bson.M{
			"listingName": a.ListingName,
			"headingName": a.HeadingName,
			"altName":     a.AltName,
		},
		"name":          a.Name,
		"displayName":   a.DisplayName,
		"firstName":     a.FirstName,
		"lastName":      a.LastName,
		"middleNames":   toInterfaceSlice(a.MiddleNames),
		"suffixes":      toInterfaceSlice(a.Suffixes),
		"yearBorn":      a.YearBorn,
		"yearDied":      a.YearDied,
		"nationality":   a.Nationality,
		"email":         a.Email,
		"website":       a.Website,
		"literaryAgent": a.LiteraryAgent,
		"biography":     a.Biography,
		"research":      a.Research,
		"address":       a.Address,
		"telephone":     a.Telephone,
		"playIds":       objectIDSlice(a.PlayIDs),
		"adaptationIds": objectIDSlice(a.AdaptationIDs),
		"sourcePlayIds": toInterfaceSlice(a.SourcePlayIDs),
	}
	if a.IsOrganization {
		doc["isOrganization"] = true
	}
	return RemoveEmptyFields(doc)
}

func toInterfaceSlice(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func objectIDSlice(ids []primitive.ObjectID) []interface{} {
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
