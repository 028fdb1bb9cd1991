package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVAdapter_DisabledWithoutPath(t *testing.T) {
	enabled, err := NewCSV("").Open(context.Background())
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestCSVAdapter_WritesFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.csv")
	ctx := context.Background()

	a := NewCSV(path)
	enabled, err := a.Open(ctx)
	require.NoError(t, err)
	require.True(t, enabled)

	require.NoError(t, a.Export(ctx, notionRecord()))
	require.NoError(t, a.Close(ctx))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, sheetColumns, rows[0])
	assert.Equal(t, "fp-abc", rows[1][0])
	assert.Equal(t, "STEM Excellence Scholarship", rows[1][1])
}

func TestCSVAdapter_CloseReleasesFileOnFlushError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.csv")
	ctx := context.Background()

	a := NewCSV(path)
	_, err := a.Open(ctx)
	require.NoError(t, err)

	// Rows sit in the csv writer's buffer until Close flushes them, so
	// closing the descriptor out from under the writer makes that flush
	// fail.
	require.NoError(t, a.file.Close())
	require.NoError(t, a.Export(ctx, notionRecord()))

	require.Error(t, a.Close(ctx))
	assert.Nil(t, a.file, "close must release the file even when the flush fails")
}

func TestCSVAdapter_TruncatesOnReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.csv")
	ctx := context.Background()

	first := NewCSV(path)
	_, err := first.Open(ctx)
	require.NoError(t, err)
	require.NoError(t, first.Export(ctx, notionRecord()))
	require.NoError(t, first.Close(ctx))

	second := NewCSV(path)
	_, err = second.Open(ctx)
	require.NoError(t, err)
	r := notionRecord()
	r.ItemID = "fp-def"
	require.NoError(t, second.Export(ctx, r))
	require.NoError(t, second.Close(ctx))

	rows := readCSV(t, path)
	// Header plus the latest run only.
	require.Len(t, rows, 2)
	assert.Equal(t, "fp-def", rows[1][0])
}
