// Package store persists crawl run history. Two drivers are provided:
// sqlite for single-machine deployments and postgres for shared ones.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/scholarhub/scholarship-crawler/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Site   string          `json:"site,omitempty"`
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for crawl run history.
type Store interface {
	CreateRun(ctx context.Context, site string) (*model.CrawlRun, error)
	CompleteRun(ctx context.Context, runID string, status model.RunStatus, stats *model.RunStats) error
	GetRun(ctx context.Context, runID string) (*model.CrawlRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.CrawlRun, error)

	// DeleteRunsBefore removes runs started before cutoff, returning the
	// number deleted. Used by the weekly cleanup job.
	DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Config selects and configures the storage driver.
type Config struct {
	Driver string      `yaml:"driver" mapstructure:"driver"`
	DSN    string      `yaml:"dsn" mapstructure:"dsn"`
	Pool   *PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// Open creates a Store for the configured driver and runs migrations.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case "", "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "scholarship-crawler.db"
		}
		s, err = NewSQLite(dsn)
	case "postgres":
		s, err = NewPostgres(ctx, cfg.DSN, cfg.Pool)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}
