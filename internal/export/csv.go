package export

import (
	"context"
	"encoding/csv"
	"os"
	"strings"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/scholarhub/scholarship-crawler/internal/model"
)

// CSVAdapter writes scholarship records to a flat CSV feed, one file
// per run. Unlike the workbook adapter it truncates on Open, so the
// feed always reflects the latest crawl.
type CSVAdapter struct {
	path string

	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSV creates a CSV feed adapter writing to path. An empty path
// disables the adapter at Open.
func NewCSV(path string) *CSVAdapter {
	return &CSVAdapter{path: path}
}

func (a *CSVAdapter) Name() string { return "csv" }

func (a *CSVAdapter) Open(_ context.Context) (bool, error) {
	if a.path == "" {
		return false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.Create(a.path)
	if err != nil {
		return false, eris.Wrap(err, "export: create csv feed")
	}
	a.file = f
	a.writer = csv.NewWriter(f)

	if err := a.writer.Write(sheetColumns); err != nil {
		return false, eris.Wrap(err, "export: write csv header")
	}
	return true, nil
}

func (a *CSVAdapter) Export(_ context.Context, r *model.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	row := []string{
		r.ItemID, r.Title, r.Provider, r.Amount, r.Deadline, r.Category,
		strings.Join(r.Tags, ", "), r.ApplicationURL, r.Eligibility, r.Source,
		r.ScrapedDate.Format("2006-01-02 15:04:05"),
	}
	if err := a.writer.Write(row); err != nil {
		return eris.Wrap(err, "export: write csv row")
	}
	return nil
}

func (a *CSVAdapter) Close(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	a.writer.Flush()
	flushErr := a.writer.Error()

	// Release the handle even when the flush failed.
	closeErr := a.file.Close()
	a.file = nil

	if flushErr != nil {
		return eris.Wrap(flushErr, "export: flush csv feed")
	}
	if closeErr != nil {
		return eris.Wrap(closeErr, "export: close csv feed")
	}
	return nil
}
