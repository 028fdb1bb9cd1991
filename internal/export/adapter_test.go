package export

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarhub/scholarship-crawler/internal/model"
)

type fakeAdapter struct {
	enabled  bool
	openErr  error
	exports  int
	fail     error
	closed   bool
	closeErr error
}

func (f *fakeAdapter) Name() string { return "fake" }

func (f *fakeAdapter) Open(_ context.Context) (bool, error) {
	return f.enabled, f.openErr
}

func (f *fakeAdapter) Export(_ context.Context, _ *model.Record) error {
	f.exports++
	return f.fail
}

func (f *fakeAdapter) Close(_ context.Context) error {
	f.closed = true
	return f.closeErr
}

func exportRecord() *model.Record {
	return &model.Record{
		ItemID:   "fp-1",
		Title:    "STEM Excellence Scholarship",
		Provider: "STEM Foundation",
	}
}

func TestStage_ExportsWhenEnabled(t *testing.T) {
	a := &fakeAdapter{enabled: true}
	s := NewStage(a, 400)

	require.NoError(t, s.Process(context.Background(), exportRecord()))
	require.NoError(t, s.Process(context.Background(), exportRecord()))

	assert.Equal(t, 2, a.exports)
	assert.Equal(t, 2, s.Report()["exported"])
	assert.Equal(t, 0, s.Report()["errors"])
}

func TestStage_DisabledAdapterIsANoOp(t *testing.T) {
	a := &fakeAdapter{enabled: false}
	s := NewStage(a, 400)

	require.NoError(t, s.Process(context.Background(), exportRecord()))
	assert.Zero(t, a.exports)
}

func TestStage_OpenFailureDisablesForRun(t *testing.T) {
	a := &fakeAdapter{enabled: true, openErr: assert.AnError}
	s := NewStage(a, 400)

	// Open failure is absorbed; the record still passes.
	require.NoError(t, s.Process(context.Background(), exportRecord()))
	require.NoError(t, s.Process(context.Background(), exportRecord()))

	assert.Zero(t, a.exports, "adapter stays disabled after a failed open")
	assert.Equal(t, 1, s.Report()["errors"])
}

func TestStage_ExportErrorNeverPropagates(t *testing.T) {
	a := &fakeAdapter{enabled: true, fail: assert.AnError}
	s := NewStage(a, 400)

	require.NoError(t, s.Process(context.Background(), exportRecord()))

	rep := s.Report()
	assert.Equal(t, 0, rep["exported"])
	assert.Equal(t, 1, rep["errors"])
}

func TestStage_CloseOnlyWhenOpened(t *testing.T) {
	a := &fakeAdapter{enabled: true}
	s := NewStage(a, 400)

	// Never processed a record: nothing to close.
	require.NoError(t, s.Close(context.Background()))
	assert.False(t, a.closed)

	require.NoError(t, s.Process(context.Background(), exportRecord()))
	require.NoError(t, s.Close(context.Background()))
	assert.True(t, a.closed)
}

func TestStage_NameAndPriority(t *testing.T) {
	s := NewStage(&fakeAdapter{}, 410)
	assert.Equal(t, "export_fake", s.Name())
	assert.Equal(t, 410, s.Priority())
}
