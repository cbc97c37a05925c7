package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/franz/play-archivist/internal/util"
)

// standardExtractor handles the narrative single-section layout. Works are
// rendered as a flat run of repeated element ids, so every field is selected
// by list position rather than by a per-entry container.
type standardExtractor struct {
	doc *goquery.Document
}

func (e *standardExtractor) Template() Template { return TemplateStandard }

func (e *standardExtractor) Biography() Biography {
	var bio Biography
	section := e.doc.Find(standardMarker).First()

	img := section.ChildrenFiltered("img").First()
	bio.AltName = imageAltName(img.AttrOr("src", ""), img.AttrOr("alt", ""))

	bio.HeadingName = util.NormalizeWhitespace(section.Find(".welcome > h1").First().Text())
	welcome := util.NormalizeWhitespace(section.ChildrenFiltered(".welcome").First().Text())
	_, bio.Born, bio.Died = splitDateRange(welcome)

	if html, err := section.Html(); err == nil {
		harvestLabeledFields(html, &bio)
		bio.Narrative = trailingNarrative(html)
	}
	return bio
}

// Selector table for the flat works list. Ids repeat per entry, so each is
// resolved positionally.
const (
	worksContainerSel = ".gridContainer > strong"
	workIDSel         = "#playwrightTable"
	workTitleSel      = "#playTable"
	workImageSel      = "#synopsisTitle"
	workSynopsisSel   = "#synopsisName"
	workNotesSel      = "#notesName"
	workProductionSel = "#producedPlace"
	workOrgsSel       = "#companyName"
	workPublisherSel  = "#publishedName"
	workMusicSel      = "#musicName"
	workGenreSel      = "#genreName"
	workPartsSel      = "#partsMaletitle"
	workReferenceSel  = "#refname"
)

func (e *standardExtractor) Works() []Work {
	container := e.doc.Find(worksContainerSel).First()
	if container.Length() == 0 {
		return nil
	}

	ids := container.Find(workIDSel)
	count := ids.Length()
	works := make([]Work, 0, count)

	for i := 0; i < count; i++ {
		work := Work{
			PlayID:         strings.TrimSpace(ids.Eq(i).Find("a").First().AttrOr("name", "")),
			Title:          e.cellText(container, workTitleSel, i),
			AltTitle:       strings.TrimSpace(container.Find(workImageSel).Eq(i).Find("center > img").AttrOr("title", "")),
			Synopsis:       e.cellText(container, workSynopsisSel, i),
			Notes:          e.cellText(container, workNotesSel, i),
			Organizations:  e.cellText(container, workOrgsSel, i),
			Music:          e.cellText(container, workMusicSel, i),
			Genres:         e.cellText(container, workGenreSel, i),
			Reference:      e.cellText(container, workReferenceSel, i),
			ProductionText: e.cellText(container, workProductionSel, i),
			PublishingText: e.cellText(container, workPublisherSel, i),
		}

		work.Production = ParseProduction(work.ProductionText)
		work.Publication = ParsePublication(work.PublishingText)

		// A malformed cast-size cell must not cost the rest of the entry.
		parts, err := ParseParts(e.cellText(container, workPartsSel, i))
		if err != nil {
			util.WarnLog("cast-size parse failed for play %q: %v", work.Title, err)
		} else {
			work.Parts = parts
		}

		works = append(works, work)
	}
	return works
}

// cellText resolves the i-th occurrence of a repeated field id. Cells holding
// only dashes or other punctuation are absent.
func (e *standardExtractor) cellText(container *goquery.Selection, selector string, i int) string {
	text := util.NormalizeWhitespace(container.Find(selector).Eq(i).Text())
	if !util.HasAlphanumeric(text) {
		return ""
	}
	return text
}
