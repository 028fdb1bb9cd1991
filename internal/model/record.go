package model

import "time"

// SourceMeta identifies where a record was scraped from.
type SourceMeta struct {
	Source    string `json:"source"`
	SourceURL string `json:"source_url"`
}

// Record is the canonical scholarship entity. It is created by a Builder
// without identity or lifecycle metadata; the pipeline stages fill those in
// (deduplication assigns ItemID, cleaning stamps the timestamps and
// normalizes Category and Tags).
type Record struct {
	// ItemID is a content hash over (title, provider, application_url),
	// assigned by the deduplication stage. Empty before that stage runs.
	ItemID string `json:"item_id,omitempty"`

	// Required content fields. Presence is enforced by validation.
	Title          string `json:"title"`
	Description    string `json:"description"`
	Amount         string `json:"amount"`
	Deadline       string `json:"deadline"`
	ApplicationURL string `json:"application_url"`

	// Descriptive fields.
	Eligibility  string `json:"eligibility,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Category     string `json:"category,omitempty"`

	// Tags holds the normalized tag list. It is only guaranteed to be set
	// after the cleaning stage runs; the raw scraped value (a string, a
	// list, or anything else a site hands back) travels in RawTags.
	Tags    []string `json:"tags"`
	RawTags any      `json:"-"`

	// Provenance.
	Source    string `json:"source"`
	SourceURL string `json:"source_url"`

	// Lifecycle metadata, stamped by the cleaning stage.
	ScrapedDate time.Time `json:"scraped_date"`
	LastUpdated time.Time `json:"last_updated"`
	IsActive    bool      `json:"is_active"`
}
