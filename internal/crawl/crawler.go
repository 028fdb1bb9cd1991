// Package crawl drives a site crawl end to end: listing pages are
// walked breadth-first, detail pages are fetched with bounded
// concurrency, and every extracted record is run through the
// processing pipeline.
package crawl

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scholarhub/scholarship-crawler/internal/classify"
	"github.com/scholarhub/scholarship-crawler/internal/extract"
	"github.com/scholarhub/scholarship-crawler/internal/model"
	"github.com/scholarhub/scholarship-crawler/internal/normalize"
	"github.com/scholarhub/scholarship-crawler/internal/pipeline"
	"github.com/scholarhub/scholarship-crawler/internal/sites"
)

// defaultPagination finds the next listing page when a profile does
// not bring its own selectors.
var defaultPagination = []string{
	`a[href*="page"]::attr(href)`,
	`.pagination a::attr(href)`,
	`.pager a::attr(href)`,
}

const defaultMaxPages = 50

// Fetcher fetches one page. Implemented by fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, pageURL string) ([]byte, error)
}

// Crawler walks one site profile.
type Crawler struct {
	profile    *sites.Profile
	fetcher    Fetcher
	pipe       *pipeline.Pipeline
	extractor  *extract.Extractor
	classifier *classify.Classifier
	builder    *model.Builder

	mu           sync.Mutex
	visited      map[string]struct{}
	pagesVisited int
}

// New creates a crawler for profile. The pipeline receives every
// record built from a detail page.
func New(profile *sites.Profile, fetcher Fetcher, pipe *pipeline.Pipeline) *Crawler {
	classifier := classify.Default()
	if len(profile.Keywords) > 0 {
		classifier = classify.New(profile.Keywords)
	}
	return &Crawler{
		profile:    profile,
		fetcher:    fetcher,
		pipe:       pipe,
		extractor:  extract.NewWithOverrides(profile.Selectors),
		classifier: classifier,
		builder:    model.NewBuilder(),
		visited:    make(map[string]struct{}),
	}
}

// Run crawls the profile's start URLs until the page budget is spent
// or the listing frontier is exhausted. The returned stats cover this
// crawl only; pipeline counters are merged in.
func (c *Crawler) Run(ctx context.Context) (*model.RunStats, error) {
	maxPages := c.profile.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	frontier := make([]string, 0, len(c.profile.StartURLs))
	for _, u := range c.profile.StartURLs {
		frontier = append(frontier, u)
	}

	for len(frontier) > 0 && c.pageCount() < maxPages {
		if err := ctx.Err(); err != nil {
			zap.L().Info("crawl: run cancelled",
				zap.String("site", c.profile.Name),
				zap.Int("pages_visited", c.pageCount()),
			)
			break
		}

		pageURL := frontier[0]
		frontier = frontier[1:]
		if !c.markVisited(pageURL) {
			continue
		}

		next, err := c.crawlListing(ctx, pageURL)
		if err != nil {
			zap.L().Warn("crawl: listing page failed",
				zap.String("site", c.profile.Name),
				zap.String("url", pageURL),
				zap.Error(err),
			)
			continue
		}
		frontier = append(frontier, next...)
	}

	stats := &model.RunStats{
		PagesVisited: c.pageCount(),
		RecordsBuilt: c.builder.Built(),
		Dropped:      make(map[string]int),
		Exported:     make(map[string]int),
	}
	for k, v := range c.pipe.Summary() {
		switch {
		case k == "processed":
			stats.Processed = v
		case strings.HasPrefix(k, "dropped_"):
			stats.Dropped[strings.TrimPrefix(k, "dropped_")] = v
		case k == "dedup_duplicates":
			stats.Duplicates = v
		case strings.HasPrefix(k, "export_") && strings.HasSuffix(k, "_exported"):
			name := strings.TrimSuffix(strings.TrimPrefix(k, "export_"), "_exported")
			stats.Exported[name] = v
		case strings.HasPrefix(k, "export_") && strings.HasSuffix(k, "_errors"):
			stats.ExportErrors += v
		}
	}

	zap.L().Info("crawl: run finished",
		zap.String("site", c.profile.Name),
		zap.Int("pages_visited", stats.PagesVisited),
		zap.Int("records_built", stats.RecordsBuilt),
		zap.Int("processed", stats.Processed),
	)
	return stats, nil
}

// crawlListing fetches one listing page, crawls the detail links it
// exposes, and returns follow-up listing pages (pagination).
func (c *Crawler) crawlListing(ctx context.Context, pageURL string) ([]string, error) {
	body, err := c.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	c.countPage()

	doc, err := extract.NewDocument(pageURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	details := c.detailLinks(doc)
	zap.L().Debug("crawl: listing parsed",
		zap.String("site", c.profile.Name),
		zap.String("url", pageURL),
		zap.Int("detail_links", len(details)),
	)

	maxConcurrent := c.profile.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for _, link := range details {
		link := link
		g.Go(func() error {
			c.crawlDetail(gctx, link)
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	return c.pagination(doc), nil
}

// detailLinks resolves the listing selectors to absolute, in-scope,
// unvisited detail URLs.
func (c *Crawler) detailLinks(doc *extract.Document) []string {
	raw := c.extractor.ExtractAll(doc, "listing", c.profile.ListingSelectors...)

	var out []string
	seen := make(map[string]struct{})
	for _, link := range raw {
		if !ShouldFollow(link) {
			continue
		}
		u := CleanURL(link, doc.URL)
		if u == "" || u == doc.URL || !c.profile.Allows(host(u)) {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// pagination returns the first working next-page link, if any.
func (c *Crawler) pagination(doc *extract.Document) []string {
	selectors := c.profile.PaginationSelectors
	if len(selectors) == 0 {
		selectors = defaultPagination
	}
	for _, link := range c.extractor.ExtractAll(doc, "pagination", selectors...) {
		if !ShouldFollow(link) {
			continue
		}
		u := CleanURL(link, doc.URL)
		if u == "" || !c.profile.Allows(host(u)) || c.seen(u) {
			continue
		}
		// Only the first working pagination link is followed.
		return []string{u}
	}
	return nil
}

// crawlDetail fetches a detail page, builds a record from it, and runs
// it through the pipeline. Failures are logged and swallowed so one
// bad page cannot take down the listing.
func (c *Crawler) crawlDetail(ctx context.Context, pageURL string) {
	if !c.markVisited(pageURL) {
		return
	}

	body, err := c.fetcher.Get(ctx, pageURL)
	if err != nil {
		zap.L().Warn("crawl: detail page failed",
			zap.String("site", c.profile.Name),
			zap.String("url", pageURL),
			zap.Error(err),
		)
		return
	}
	c.countPage()

	doc, err := extract.NewDocument(pageURL, bytes.NewReader(body))
	if err != nil {
		zap.L().Warn("crawl: detail page unparseable",
			zap.String("url", pageURL),
			zap.Error(err),
		)
		return
	}

	fields := c.extractFields(doc)
	if fields["title"] == "" {
		zap.L().Warn("crawl: no title found, skipping page", zap.String("url", pageURL))
		return
	}

	r := c.builder.Build(model.SourceMeta{
		Source:    c.profile.Name,
		SourceURL: pageURL,
	}, fields)

	c.pipe.Run(ctx, r)
}

// extractFields pulls every scholarship field out of a detail page,
// applying the profile's defaults where the markup yields nothing.
func (c *Crawler) extractFields(doc *extract.Document) map[string]any {
	title := c.extractor.Extract(doc, "title")
	description := normalize.Text(strings.Join(c.extractor.ExtractAll(doc, "description"), " "))

	applicationURL := CleanURL(c.extractor.Extract(doc, "application_url"), doc.URL)
	if applicationURL == "" {
		applicationURL = c.profile.ApplyFallback
	}
	if applicationURL == "" {
		applicationURL = doc.URL
	}

	provider := c.extractor.Extract(doc, "provider")
	if provider == "" {
		provider = c.profile.ProviderFor(host(doc.URL))
	}

	fields := map[string]any{
		"title":           title,
		"description":     description,
		"amount":          normalize.Amount(c.extractor.Extract(doc, "amount")),
		"deadline":        normalize.Deadline(c.extractor.Extract(doc, "deadline")),
		"eligibility":     strings.Join(c.extractor.ExtractAll(doc, "eligibility"), " | "),
		"requirements":    strings.Join(c.extractor.ExtractAll(doc, "requirements"), " | "),
		"application_url": applicationURL,
		"provider":        provider,
		"category":        c.classifier.Classify(title, description, doc.URL),
	}

	tags := c.extractor.ExtractAll(doc, "tags")
	if len(tags) == 0 {
		tags = c.profile.DefaultTags
	}
	fields["tags"] = tags

	for field, fallback := range c.profile.DefaultFields {
		if v, ok := fields[field].(string); ok && v == "" {
			fields[field] = fallback
		}
	}
	return fields
}

func (c *Crawler) markVisited(u string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.visited[u]; ok {
		return false
	}
	c.visited[u] = struct{}{}
	return true
}

func (c *Crawler) seen(u string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.visited[u]
	return ok
}

func (c *Crawler) countPage() {
	c.mu.Lock()
	c.pagesVisited++
	c.mu.Unlock()
}

func (c *Crawler) pageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagesVisited
}
