// Package sites holds the per-site crawl profiles: where a crawl
// starts, which domains it may touch, and how scholarship fields are
// pulled out of that site's markup. Built-in profiles cover the
// supported sources; a YAML file can override or extend them.
package sites

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/scholarhub/scholarship-crawler/internal/classify"
)

// Profile describes one scholarship source.
type Profile struct {
	Name     string `yaml:"name"`
	Provider string `yaml:"provider"`

	// ProviderByDomain resolves the provider per detail-page domain for
	// umbrella profiles that span several organizations.
	ProviderByDomain map[string]string `yaml:"provider_by_domain"`

	AllowedDomains []string `yaml:"allowed_domains"`
	StartURLs      []string `yaml:"start_urls"`

	// ListingSelectors find detail-page links on a listing page, tried
	// in order until one matches.
	ListingSelectors []string `yaml:"listing_selectors"`

	// PaginationSelectors find the next listing page. Only the first
	// link of the first matching selector is followed.
	PaginationSelectors []string `yaml:"pagination_selectors"`

	// Selectors override the shared field selector chains per field.
	Selectors map[string][]string `yaml:"selectors"`

	// DefaultFields fill in fields the site never exposes in markup,
	// applied only when extraction came up empty.
	DefaultFields map[string]string `yaml:"default_fields"`

	// ApplyFallback is used as the application URL when no apply link
	// is found on the page.
	ApplyFallback string `yaml:"apply_fallback"`

	Keywords    []classify.Entry `yaml:"keywords"`
	DefaultTags []string         `yaml:"default_tags"`

	DownloadDelay time.Duration `yaml:"download_delay"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	MaxPages      int           `yaml:"max_pages"`
}

// ProviderFor resolves the provider for a detail page host, falling
// back to the profile-wide provider.
func (p *Profile) ProviderFor(host string) string {
	for domain, provider := range p.ProviderByDomain {
		if strings.Contains(host, domain) {
			return provider
		}
	}
	return p.Provider
}

// Allows reports whether host belongs to one of the profile's allowed
// domains. An empty allow-list permits everything.
func (p *Profile) Allows(host string) bool {
	if len(p.AllowedDomains) == 0 {
		return true
	}
	for _, d := range p.AllowedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Validate checks the fields a crawl cannot run without.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return eris.New("sites: profile missing name")
	}
	if len(p.StartURLs) == 0 {
		return eris.Errorf("sites: profile %s has no start urls", p.Name)
	}
	if p.Provider == "" && len(p.ProviderByDomain) == 0 {
		return eris.Errorf("sites: profile %s has no provider", p.Name)
	}
	return nil
}
