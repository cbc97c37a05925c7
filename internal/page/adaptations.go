package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/franz/play-archivist/internal/record"
	"github.com/franz/play-archivist/internal/util"
)

// tableExtractor handles the tabular layout used for adaptation-heavy
// profiles. Each entry spans a header table and a body table; the tables
// repeat in groups of three under the section heading.
type tableExtractor struct {
	doc *goquery.Document
}

func (t *tableExtractor) Template() Template { return TemplateAdaptations }

const (
	adaptBioTableSel = "#table table:first-child"
	adaptBioNameSel  = "td:nth-child(2) > h1"
	adaptBioImgSel   = "td:nth-child(1) p > a > img"
	adaptBioTextSel  = "#table > p"
)

func (t *tableExtractor) Biography() Biography {
	var bio Biography
	table := t.doc.Find(adaptBioTableSel).First()
	firstRow := table.Find("tr").First()

	heading := util.NormalizeWhitespace(firstRow.Find(adaptBioNameSel).First().Text())
	bio.HeadingName, bio.Born, bio.Died = splitDateRange(heading)

	img := firstRow.Find(adaptBioImgSel).First()
	bio.AltName = imageAltName(img.AttrOr("src", ""), img.AttrOr("alt", ""))

	if html, err := table.Html(); err == nil {
		harvestLabeledFields(html, &bio)
	}
	bio.Narrative = normalizeNarrative(t.doc.Find(adaptBioTextSel).First().Text())
	return bio
}

// Header/body table selectors. Every adaptation contributes three sibling
// tables after the h2; the first holds identity, the second the details.
const (
	adaptContainerSel = "#table"
	adaptHeaderSel    = "h2 ~ table:nth-of-type(3n-2)"
	adaptBodySel      = "h2 ~ table:nth-of-type(3n-1)"
)

func (t *tableExtractor) Works() []Work {
	container := t.doc.Find(adaptContainerSel).First()
	if container.Length() == 0 {
		return nil
	}

	headers := container.Find(adaptHeaderSel)
	bodies := container.Find(adaptBodySel)
	count := headers.Length()
	works := make([]Work, 0, count)

	for i := 0; i < count; i++ {
		header := headers.Eq(i)
		body := bodies.Eq(i)

		anchors := header.Find("tr:nth-of-type(1) > td:nth-of-type(1) p > strong > a")
		work := Work{
			PlayID:         strings.TrimSpace(anchors.First().Text()),
			AdaptingAuthor: util.NormalizeWhitespace(anchors.Eq(1).Text()),
			Title:          util.NormalizeWhitespace(header.Find("tr:nth-of-type(1) > td:nth-of-type(2)").First().Text()),
			Synopsis:       bodyCell(body, 11, 2),
			Notes:          bodyCell(body, 10, 2),
			Organizations:  bodyCell(body, 2, 2),
			Music:          bodyCell(body, 4, 2),
			Genres:         bodyCell(body, 7, 2),
			Reference:      bodyCell(body, 12, 2),
			ProductionText: strings.TrimSpace(bodyCell(body, 1, 2) + " " + bodyCell(body, 1, 3)),
			PublishingText: bodyCell(body, 3, 2),
		}

		work.OriginalAuthor = ParseOriginalAuthor(work.Notes)

		work.Production = record.Production{
			Location: bodyCell(body, 1, 2),
			Year:     bodyCell(body, 1, 3),
		}
		if work.Production.Year == "" {
			work.Production = ParseProduction(work.ProductionText)
		}

		work.Publication = ParsePublication(work.PublishingText)
		if isbnCell := bodyCell(body, 3, 4); isbnCell != "" {
			if isbn := util.ExtractISBN(isbnCell); isbn.Numeric != "" {
				work.Publication.ISBN = isbn.Numeric
				work.Publication.ISBNOriginal = isbn.Original
			}
		}

		work.Parts = tableParts(
			bodyCell(body, 8, 3),
			bodyCell(body, 8, 5),
			bodyCell(body, 9, 2),
		)

		works = append(works, work)
	}
	return works
}

// bodyCell addresses one cell of an entry's body table by row and column.
// Cells holding only dashes or other punctuation are absent.
func bodyCell(body *goquery.Selection, row, col int) string {
	sel := body.Find("tr").Eq(row - 1).ChildrenFiltered("td").Eq(col - 1)
	text := util.NormalizeWhitespace(sel.Text())
	if !util.HasAlphanumeric(text) {
		return ""
	}
	return text
}

// tableParts assembles cast counts from the layout's three separate cells.
// The dash cells arrive already blanked by bodyCell; an entry with no
// numeric count at all is omitted entirely.
func tableParts(male, female, other string) *record.Parts {
	if ParseSingleCount(male) < 0 && ParseSingleCount(female) < 0 && ParseSingleCount(other) < 0 {
		return nil
	}
	counts := [3]int{}
	for i, text := range []string{male, female, other} {
		if n := ParseSingleCount(text); n > 0 {
			counts[i] = n
		}
	}
	if counts[0] == 0 && counts[1] == 0 && counts[2] == 0 {
		return nil
	}
	return &record.Parts{
		CountMale:   counts[0],
		CountFemale: counts[1],
		CountOther:  counts[2],
		TextMale:    male,
		TextFemale:  female,
		TextOther:   other,
	}
}
