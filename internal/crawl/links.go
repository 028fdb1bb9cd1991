package crawl

import (
	"net/url"
	"regexp"
	"strings"
)

// skipPatterns match links that never lead to scholarship content:
// binary documents, account pages, boilerplate, and non-HTTP schemes.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\.pdf$`),
	regexp.MustCompile(`(?i)\.docx?$`),
	regexp.MustCompile(`(?i)\.xlsx?$`),
	regexp.MustCompile(`(?i)/login`),
	regexp.MustCompile(`(?i)/register`),
	regexp.MustCompile(`(?i)/contact`),
	regexp.MustCompile(`(?i)/privacy`),
	regexp.MustCompile(`(?i)/terms`),
	regexp.MustCompile(`(?i)^javascript:`),
	regexp.MustCompile(`(?i)^mailto:`),
	regexp.MustCompile(`(?i)^tel:`),
}

// ShouldFollow reports whether a link is worth crawling.
func ShouldFollow(link string) bool {
	if link == "" {
		return false
	}
	for _, p := range skipPatterns {
		if p.MatchString(link) {
			return false
		}
	}
	return true
}

// CleanURL trims a link and resolves it against the page it was found
// on. Unparseable links come back empty.
func CleanURL(link, pageURL string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}

	ref, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// host extracts the hostname of a URL, or "" when it cannot be parsed.
func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
