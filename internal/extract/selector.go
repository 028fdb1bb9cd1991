package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/rotisserie/eris"
)

// selectorSpec is a parsed selector expression: a compiled CSS selector
// plus an optional ::text or ::attr(name) suffix in the style scraping
// frameworks use. Without a suffix the element's text content is taken.
type selectorSpec struct {
	matcher cascadia.Selector
	attr    string // empty means text content
}

var attrSuffix = regexp.MustCompile(`::attr\(([^)]+)\)$`)

// parseSelector compiles expr into a selectorSpec. Compilation happens via
// cascadia directly so a malformed expression surfaces as an error rather
// than a panic inside goquery.
func parseSelector(expr string) (*selectorSpec, error) {
	css := expr
	attr := ""

	if m := attrSuffix.FindStringSubmatch(expr); m != nil {
		attr = strings.TrimSpace(m[1])
		css = strings.TrimSuffix(expr, m[0])
	} else {
		css = strings.TrimSuffix(expr, "::text")
	}

	css = strings.TrimSpace(css)
	if css == "" {
		return nil, eris.Errorf("extract: empty css in selector %q", expr)
	}

	matcher, err := cascadia.Compile(css)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: compile selector %q", expr)
	}

	return &selectorSpec{matcher: matcher, attr: attr}, nil
}

func (s *selectorSpec) value(sel *goquery.Selection) string {
	if s.attr != "" {
		v, _ := sel.Attr(s.attr)
		return v
	}
	return sel.Text()
}
