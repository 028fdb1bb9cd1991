package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "scholarship-crawler.db", cfg.Store.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "scholarships", cfg.Sheet.SheetName)
	assert.Equal(t, 50, cfg.Crawl.MaxPages)
	assert.Equal(t, 2, cfg.Crawl.MaxConcurrent)
	assert.Equal(t, 2, cfg.Crawl.DownloadDelaySecs)
	assert.Equal(t, 30, cfg.Crawl.TimeoutSecs)
	assert.Equal(t, 3, cfg.Crawl.Retries)
	assert.Equal(t, 500, cfg.Crawl.RetryBackoffMs)
	assert.Equal(t, 5, cfg.Crawl.BreakerThreshold)
	assert.Equal(t, 60, cfg.Crawl.BreakerResetSecs)
	assert.Equal(t, "0 2 * * *", cfg.Schedule.CrawlSpec)
	assert.Equal(t, "0 1 * * 0", cfg.Schedule.CleanupSpec)
	assert.Equal(t, 7, cfg.Schedule.KeepRunsDays)
	assert.Empty(t, cfg.Notion.Token)
	assert.Empty(t, cfg.Sheet.Path)
	assert.Empty(t, cfg.Feed.Path)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: postgres
  dsn: postgres://localhost/scholar
log:
  level: debug
  format: console
server:
  port: 9090
notion:
  token: ntn_token
  database_id: db-id
sheet:
  path: out/scholarships.xlsx
crawl:
  max_concurrent: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/scholar", cfg.Store.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "ntn_token", cfg.Notion.Token)
	assert.Equal(t, "db-id", cfg.Notion.DatabaseID)
	assert.Equal(t, "out/scholarships.xlsx", cfg.Sheet.Path)
	assert.Equal(t, 4, cfg.Crawl.MaxConcurrent)
	// Defaults still apply for unset values
	assert.Equal(t, 50, cfg.Crawl.MaxPages)
	assert.Equal(t, "scholarships", cfg.Sheet.SheetName)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("SCHOLAR_STORE_DRIVER", "postgres")
	t.Setenv("SCHOLAR_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("SCHOLAR_SERVER_PORT", "3000")
	t.Setenv("SCHOLAR_NOTION_TOKEN", "ntn_from_env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "ntn_from_env", cfg.Notion.Token)
}

func TestCrawlConfigDurations(t *testing.T) {
	c := CrawlConfig{DownloadDelaySecs: 3, TimeoutSecs: 45}
	assert.Equal(t, 3*time.Second, c.DownloadDelay())
	assert.Equal(t, 45*time.Second, c.Timeout())
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
