package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestXLSXAdapter_DisabledWithoutPath(t *testing.T) {
	enabled, err := NewXLSX("", "").Open(context.Background())
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestXLSXAdapter_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scholarships.xlsx")
	ctx := context.Background()

	a := NewXLSX(path, "")
	enabled, err := a.Open(ctx)
	require.NoError(t, err)
	require.True(t, enabled)

	require.NoError(t, a.Export(ctx, notionRecord()))
	require.NoError(t, a.Close(ctx))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	sheet := file.Sheet["scholarships"]
	require.NotNil(t, sheet)
	require.Len(t, sheet.Rows, 2)

	assert.Equal(t, "Item ID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "fp-abc", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "STEM Excellence Scholarship", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "stem, undergraduate", sheet.Rows[1].Cells[6].String())
}

func TestXLSXAdapter_AppendsToExistingWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scholarships.xlsx")
	ctx := context.Background()

	first := NewXLSX(path, "")
	_, err := first.Open(ctx)
	require.NoError(t, err)
	require.NoError(t, first.Export(ctx, notionRecord()))
	require.NoError(t, first.Close(ctx))

	second := NewXLSX(path, "")
	_, err = second.Open(ctx)
	require.NoError(t, err)
	r := notionRecord()
	r.ItemID = "fp-def"
	require.NoError(t, second.Export(ctx, r))
	require.NoError(t, second.Close(ctx))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	sheet := file.Sheet["scholarships"]
	require.NotNil(t, sheet)
	// Header plus one row per run: no second header.
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "fp-abc", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "fp-def", sheet.Rows[2].Cells[0].String())
}

func TestXLSXAdapter_CustomSheetName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	ctx := context.Background()

	a := NewXLSX(path, "awards")
	_, err := a.Open(ctx)
	require.NoError(t, err)
	require.NoError(t, a.Close(ctx))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.NotNil(t, file.Sheet["awards"])
}
