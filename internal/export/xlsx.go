package export

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/scholarhub/scholarship-crawler/internal/model"
)

var sheetColumns = []string{
	"Item ID", "Title", "Provider", "Amount", "Deadline", "Category",
	"Tags", "Application URL", "Eligibility", "Source", "Scraped",
}

// XLSXAdapter appends scholarship records to a workbook sheet. Rows are
// buffered in the workbook and flushed to disk on Close. When the file
// already exists new rows land under the existing ones, so repeated runs
// accumulate rather than overwrite.
type XLSXAdapter struct {
	path      string
	sheetName string

	mu    sync.Mutex
	file  *xlsx.File
	sheet *xlsx.Sheet
}

// NewXLSX creates a workbook export adapter writing to path. An empty
// path disables the adapter at Open. sheetName defaults to
// "scholarships".
func NewXLSX(path, sheetName string) *XLSXAdapter {
	if sheetName == "" {
		sheetName = "scholarships"
	}
	return &XLSXAdapter{path: path, sheetName: sheetName}
}

func (a *XLSXAdapter) Name() string { return "xlsx" }

func (a *XLSXAdapter) Open(_ context.Context) (bool, error) {
	if a.path == "" {
		return false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := os.Stat(a.path); err == nil {
		file, err := xlsx.OpenFile(a.path)
		if err != nil {
			return false, eris.Wrap(err, "export: open workbook")
		}
		a.file = file
		a.sheet = file.Sheet[a.sheetName]
	} else {
		a.file = xlsx.NewFile()
	}

	if a.sheet == nil {
		sheet, err := a.file.AddSheet(a.sheetName)
		if err != nil {
			return false, eris.Wrap(err, "export: add sheet")
		}
		a.sheet = sheet
		header := sheet.AddRow()
		for _, col := range sheetColumns {
			header.AddCell().SetString(col)
		}
	}
	return true, nil
}

func (a *XLSXAdapter) Export(_ context.Context, r *model.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	row := a.sheet.AddRow()
	for _, v := range []string{
		r.ItemID, r.Title, r.Provider, r.Amount, r.Deadline, r.Category,
		strings.Join(r.Tags, ", "), r.ApplicationURL, r.Eligibility, r.Source,
		r.ScrapedDate.Format("2006-01-02 15:04:05"),
	} {
		row.AddCell().SetString(v)
	}
	return nil
}

func (a *XLSXAdapter) Close(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	if err := a.file.Save(a.path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}
