package extract

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// Document is a parsed HTML page handle. It carries the page URL and a
// request-scoped metadata bag (used by crawlers to pass values like
// source_domain between requests).
type Document struct {
	URL  string
	Meta map[string]string

	doc *goquery.Document
}

// NewDocument parses HTML from r into a Document for the given URL.
func NewDocument(pageURL string, r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: parse document %s", pageURL)
	}
	return &Document{
		URL:  pageURL,
		Meta: make(map[string]string),
		doc:  doc,
	}, nil
}

// NewDocumentFromString parses an HTML string. Mostly useful in tests.
func NewDocumentFromString(pageURL, html string) (*Document, error) {
	return NewDocument(pageURL, strings.NewReader(html))
}

// first returns the value of the first node matching spec, or "" if none.
func (d *Document) first(spec *selectorSpec) string {
	sel := d.doc.FindMatcher(spec.matcher).First()
	if sel.Length() == 0 {
		return ""
	}
	return spec.value(sel)
}

// all returns the values of every node matching spec.
func (d *Document) all(spec *selectorSpec) []string {
	var out []string
	d.doc.FindMatcher(spec.matcher).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, spec.value(sel))
	})
	return out
}
