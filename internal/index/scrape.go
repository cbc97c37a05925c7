package index

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/schollz/progressbar/v3"

	"github.com/franz/play-archivist/internal/util"
)

// Fetcher is the rate-limited document source the index scraper walks the
// site with.
type Fetcher interface {
	GetDocumentRateLimited(ctx context.Context, path string) (*goquery.Document, error)
}

// Sub-index link text looks like "A Playwrights (aa - af)".
var subindexRangeRe = regexp.MustCompile(`\(([a-z]{2}) - ([a-z]{2})\)`)

const (
	letterIndexLinkSel = ".content a"
	subindexRowSel     = "#table > table tr"
	subindexLinkSel    = "td > p > a"
)

// ScrapeAll walks every letter's index page and each sub-index it links to,
// building the full author index. Individual letter failures are logged and
// skipped so one broken index page does not lose the other 25 letters.
func ScrapeAll(ctx context.Context, fetcher Fetcher) (AuthorIndex, error) {
	idx := AuthorIndex{}
	opts := []progressbar.Option{
		progressbar.OptionSetDescription("scraping author index"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
	}
	if util.IsQuiet() {
		opts = append(opts, progressbar.OptionSetWriter(io.Discard))
	}
	bar := progressbar.NewOptions(26, opts...)

	for letter := 'A'; letter <= 'Z'; letter++ {
		if err := ctx.Err(); err != nil {
			return idx, err
		}
		l := string(letter)
		if err := scrapeLetter(ctx, fetcher, idx, l); err != nil {
			util.WarnLog("index scrape failed for letter %s: %v", l, err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if idx.Len() == 0 {
		return nil, fmt.Errorf("author index scrape produced no entries")
	}
	return idx, nil
}

func scrapeLetter(ctx context.Context, fetcher Fetcher, idx AuthorIndex, letter string) error {
	indexPath := fmt.Sprintf("/Playwrights%s/3Playwrights%sdata.php", letter, letter)
	doc, err := fetcher.GetDocumentRateLimited(ctx, indexPath)
	if err != nil {
		return err
	}

	var subPaths []string
	doc.Find(letterIndexLinkSel).Each(func(_ int, link *goquery.Selection) {
		if !subindexRangeRe.MatchString(link.Text()) {
			return
		}
		if href, ok := link.Attr("href"); ok && href != "" {
			subPaths = append(subPaths, normalizeSitePath(href, letter))
		}
	})
	if len(subPaths) == 0 {
		return fmt.Errorf("no sub-index links found at %s", indexPath)
	}

	for _, subPath := range subPaths {
		if err := scrapeSubindex(ctx, fetcher, idx, letter, subPath); err != nil {
			util.WarnLog("sub-index scrape failed for %s: %v", subPath, err)
		}
	}
	return nil
}

// scrapeSubindex harvests the listing-name → slug pairs from one range page.
func scrapeSubindex(ctx context.Context, fetcher Fetcher, idx AuthorIndex, letter, path string) error {
	doc, err := fetcher.GetDocumentRateLimited(ctx, path)
	if err != nil {
		return err
	}

	found := 0
	doc.Find(subindexRowSel).Each(func(_ int, row *goquery.Selection) {
		link := row.Find(subindexLinkSel).First()
		name := util.NormalizeWhitespace(link.Text())
		href, _ := link.Attr("href")
		slug := slugFromHref(href)
		if name == "" || slug == "" {
			return // presentation row or navigation link
		}
		idx.Add(letter, name, slug)
		found++
	})
	if found == 0 {
		return fmt.Errorf("no author rows found at %s", path)
	}
	return nil
}

// slugFromHref strips the directory and .php extension from a profile link.
func slugFromHref(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || !strings.HasSuffix(href, ".php") {
		return ""
	}
	href = strings.TrimSuffix(href, ".php")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		href = href[i+1:]
	}
	return href
}

// normalizeSitePath turns absolute or relative sub-index hrefs into
// site-rooted paths.
func normalizeSitePath(href, letter string) string {
	if i := strings.Index(href, "://"); i >= 0 {
		if j := strings.Index(href[i+3:], "/"); j >= 0 {
			return href[i+3+j:]
		}
		return "/"
	}
	if strings.HasPrefix(href, "/") {
		return href
	}
	return fmt.Sprintf("/Playwrights%s/%s", letter, href)
}
