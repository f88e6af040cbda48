package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// block-level elements that end a line of text
const blockSelector = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, section, article, ul, ol"

// ExtractHTMLText parses an HTML job posting and returns its main body text.
// Noise elements are removed; the first matching content selector wins, else the body.
func ExtractHTMLText(html string, contentSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &IngestError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("nav, footer, header, script, style, noscript, form, .ad, .advertisement, .cookie-banner, .sidebar").Remove()

	if len(contentSelectors) == 0 {
		contentSelectors = JobPostingSelectors()
	}
	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	// list items keep their bullet so the section splitter still sees them
	main.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("• ")
	})
	main.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text := main.Text()
	if strings.TrimSpace(text) == "" {
		return "", &IngestError{Message: fmt.Sprintf("no text content found (%d bytes of HTML)", len(html))}
	}
	return CleanText(text), nil
}

// LooksLikeHTML reports whether content appears to be an HTML document or fragment
func LooksLikeHTML(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<body") || strings.Contains(head, "<div") || strings.Contains(head, "<p>")
}

// JobPostingSelectors returns selectors that usually wrap the posting on job boards
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		"#job-description",
		".job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
	}
}
