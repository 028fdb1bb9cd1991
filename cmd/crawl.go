package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scholarhub/scholarship-crawler/internal/crawl"
	"github.com/scholarhub/scholarship-crawler/internal/export"
	"github.com/scholarhub/scholarship-crawler/internal/fetch"
	"github.com/scholarhub/scholarship-crawler/internal/model"
	"github.com/scholarhub/scholarship-crawler/internal/pipeline"
	"github.com/scholarhub/scholarship-crawler/internal/resilience"
	"github.com/scholarhub/scholarship-crawler/internal/sites"
	"github.com/scholarhub/scholarship-crawler/internal/store"
	"github.com/scholarhub/scholarship-crawler/pkg/notion"
)

var crawlAll bool

var crawlCmd = &cobra.Command{
	Use:   "crawl [site...]",
	Short: "Crawl one or more scholarship sites",
	Long:  "Runs the full crawl for the named sites: fetch listing and detail pages, build records, clean and deduplicate them, and export the survivors.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		reg, err := sites.NewRegistry(cfg.Sites.File)
		if err != nil {
			return err
		}

		names := args
		if crawlAll {
			names = reg.Names()
		}
		if len(names) == 0 {
			return eris.New("crawl: no sites given (name sites or pass --all)")
		}

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		multi := len(names) > 1
		results := make(map[string]*model.RunStats, len(names))
		for _, name := range names {
			profile, err := reg.Get(name)
			if err != nil {
				return err
			}
			stats, err := crawlSite(ctx, st, profile, multi)
			if err != nil {
				zap.L().Error("crawl: site failed",
					zap.String("site", name),
					zap.Error(err),
				)
			}
			if stats != nil {
				results[name] = stats
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	crawlCmd.Flags().BoolVar(&crawlAll, "all", false, "crawl every registered site")
	rootCmd.AddCommand(crawlCmd)
}

// crawlSite runs one site end to end and records the run in the store.
// Zero-valued profile limits fall back to the global crawl config.
func crawlSite(ctx context.Context, st store.Store, p *sites.Profile, multi bool) (*model.RunStats, error) {
	run, err := st.CreateRun(ctx, p.Name)
	if err != nil {
		return nil, err
	}

	prof := *p
	if prof.DownloadDelay <= 0 {
		prof.DownloadDelay = cfg.Crawl.DownloadDelay()
	}
	if prof.MaxConcurrent <= 0 {
		prof.MaxConcurrent = cfg.Crawl.MaxConcurrent
	}
	if prof.MaxPages <= 0 {
		prof.MaxPages = cfg.Crawl.MaxPages
	}

	fetcher := fetch.New(fetch.Options{
		UserAgents:     cfg.Crawl.UserAgents,
		Delay:          prof.DownloadDelay,
		Timeout:        cfg.Crawl.Timeout(),
		Retries:        cfg.Crawl.Retries,
		RetryBackoffMs: cfg.Crawl.RetryBackoffMs,
		Breaker:        resilience.FromCircuitConfig(cfg.Crawl.BreakerThreshold, cfg.Crawl.BreakerResetSecs),
	})

	pipe, exporters := buildPipeline(prof.Name, multi)

	stats, runErr := crawl.New(&prof, fetcher, pipe).Run(ctx)

	// Flush exports and record the run even when the context was
	// cancelled mid-crawl.
	closeCtx := context.WithoutCancel(ctx)
	for _, ex := range exporters {
		if err := ex.Close(closeCtx); err != nil {
			zap.L().Error("crawl: export close failed",
				zap.String("stage", ex.Name()),
				zap.Error(err),
			)
			if stats != nil {
				stats.ExportErrors++
			}
		}
	}

	status := model.RunStatusComplete
	if runErr != nil {
		status = model.RunStatusFailed
	}
	if err := st.CompleteRun(closeCtx, run.ID, status, stats); err != nil {
		zap.L().Error("crawl: record run failed",
			zap.String("run_id", run.ID),
			zap.Error(err),
		)
	}
	return stats, runErr
}

// buildPipeline assembles the stage chain for one site crawl. Export
// adapters disable themselves when their destination is unconfigured.
func buildPipeline(site string, multi bool) (*pipeline.Pipeline, []*export.Stage) {
	var nc notion.Client
	if cfg.Notion.Token != "" {
		nc = notion.NewClient(cfg.Notion.Token)
	}

	feed := cfg.Feed.Path
	if multi {
		feed = sitePath(feed, site)
	}

	exporters := []*export.Stage{
		export.NewStage(export.NewNotion(nc, cfg.Notion.DatabaseID), 400),
		export.NewStage(export.NewXLSX(cfg.Sheet.Path, cfg.Sheet.SheetName), 410),
		export.NewStage(export.NewCSV(feed), 420),
	}

	stages := []pipeline.Stage{
		pipeline.NewValidation(),
		pipeline.NewDedup(),
		pipeline.NewClean(site),
	}
	for _, ex := range exporters {
		stages = append(stages, ex)
	}
	return pipeline.New(stages...), exporters
}

// sitePath inserts the site name before the extension. The CSV feed
// truncates on open, so concurrent site feeds must not share a file.
func sitePath(path, site string) string {
	if path == "" {
		return ""
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + site + ext
}
