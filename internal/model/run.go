package model

import "time"

// RunStatus represents the current state of a crawl run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// CrawlRun records one execution of a site crawl.
type CrawlRun struct {
	ID         string     `json:"id"`
	Site       string     `json:"site"`
	Status     RunStatus  `json:"status"`
	Stats      *RunStats  `json:"stats,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// RunStats is the end-of-run summary. Besides logs, these counters are
// the only externally visible failure signal a crawl produces.
type RunStats struct {
	PagesVisited int            `json:"pages_visited"`
	RecordsBuilt int            `json:"records_built"`
	Processed    int            `json:"processed"`
	Dropped      map[string]int `json:"dropped,omitempty"`
	Duplicates   int            `json:"duplicates"`
	Exported     map[string]int `json:"exported,omitempty"`
	ExportErrors int            `json:"export_errors,omitempty"`
}
