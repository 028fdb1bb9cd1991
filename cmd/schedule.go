package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scholarhub/scholarship-crawler/internal/sites"
	"github.com/scholarhub/scholarship-crawler/internal/store"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run crawls and run-history cleanup on a cron schedule",
	Long:  "Stays resident and crawls every registered site on schedule.crawl_spec, pruning old runs on schedule.cleanup_spec.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reg, err := sites.NewRegistry(cfg.Sites.File)
		if err != nil {
			return err
		}

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		c := cron.New()

		if _, err := c.AddFunc(cfg.Schedule.CrawlSpec, func() {
			names := reg.Names()
			zap.L().Info("schedule: crawl tick", zap.Int("sites", len(names)))
			for _, name := range names {
				profile, err := reg.Get(name)
				if err != nil {
					continue
				}
				if _, err := crawlSite(ctx, st, profile, len(names) > 1); err != nil {
					zap.L().Error("schedule: site crawl failed",
						zap.String("site", name),
						zap.Error(err),
					)
				}
			}
		}); err != nil {
			return eris.Wrapf(err, "schedule: parse crawl spec %q", cfg.Schedule.CrawlSpec)
		}

		if _, err := c.AddFunc(cfg.Schedule.CleanupSpec, func() {
			cutoff := time.Now().AddDate(0, 0, -cfg.Schedule.KeepRunsDays)
			n, err := st.DeleteRunsBefore(ctx, cutoff)
			if err != nil {
				zap.L().Error("schedule: cleanup failed", zap.Error(err))
				return
			}
			zap.L().Info("schedule: old runs pruned",
				zap.Int("deleted", n),
				zap.Int("keep_days", cfg.Schedule.KeepRunsDays),
			)
		}); err != nil {
			return eris.Wrapf(err, "schedule: parse cleanup spec %q", cfg.Schedule.CleanupSpec)
		}

		zap.L().Info("schedule: started",
			zap.String("crawl_spec", cfg.Schedule.CrawlSpec),
			zap.String("cleanup_spec", cfg.Schedule.CleanupSpec),
		)
		c.Start()

		<-ctx.Done()
		zap.L().Info("schedule: shutting down")
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
