package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scholarhub/scholarship-crawler/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store    store.Config   `yaml:"store" mapstructure:"store"`
	Notion   NotionConfig   `yaml:"notion" mapstructure:"notion"`
	Sheet    SheetConfig    `yaml:"sheet" mapstructure:"sheet"`
	Feed     FeedConfig     `yaml:"feed" mapstructure:"feed"`
	Crawl    CrawlConfig    `yaml:"crawl" mapstructure:"crawl"`
	Sites    SitesConfig    `yaml:"sites" mapstructure:"sites"`
	Schedule ScheduleConfig `yaml:"schedule" mapstructure:"schedule"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// NotionConfig holds Notion API credentials and the target database.
// Both must be set for the Notion export adapter to be enabled.
type NotionConfig struct {
	Token      string `yaml:"token" mapstructure:"token"`
	DatabaseID string `yaml:"database_id" mapstructure:"database_id"`
}

// SheetConfig configures the workbook export adapter.
type SheetConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	SheetName string `yaml:"sheet_name" mapstructure:"sheet_name"`
}

// FeedConfig configures the CSV feed export adapter.
type FeedConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CrawlConfig configures fetch behavior shared by all sites.
type CrawlConfig struct {
	MaxPages          int      `yaml:"max_pages" mapstructure:"max_pages"`
	MaxConcurrent     int      `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	DownloadDelaySecs int      `yaml:"download_delay_secs" mapstructure:"download_delay_secs"`
	TimeoutSecs       int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Retries           int      `yaml:"retries" mapstructure:"retries"`
	RetryBackoffMs    int      `yaml:"retry_backoff_ms" mapstructure:"retry_backoff_ms"`
	BreakerThreshold  int      `yaml:"breaker_threshold" mapstructure:"breaker_threshold"`
	BreakerResetSecs  int      `yaml:"breaker_reset_secs" mapstructure:"breaker_reset_secs"`
	UserAgents        []string `yaml:"user_agents" mapstructure:"user_agents"`
}

// Timeout returns the per-request timeout as a duration.
func (c CrawlConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// DownloadDelay returns the per-host delay as a duration.
func (c CrawlConfig) DownloadDelay() time.Duration {
	return time.Duration(c.DownloadDelaySecs) * time.Second
}

// SitesConfig points at an optional YAML profile overlay file.
type SitesConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// ScheduleConfig holds the cron expressions for the scheduler command.
type ScheduleConfig struct {
	CrawlSpec    string `yaml:"crawl_spec" mapstructure:"crawl_spec"`
	CleanupSpec  string `yaml:"cleanup_spec" mapstructure:"cleanup_spec"`
	KeepRunsDays int    `yaml:"keep_runs_days" mapstructure:"keep_runs_days"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCHOLAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "scholarship-crawler.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("sheet.sheet_name", "scholarships")
	v.SetDefault("crawl.max_pages", 50)
	v.SetDefault("crawl.max_concurrent", 2)
	v.SetDefault("crawl.download_delay_secs", 2)
	v.SetDefault("crawl.timeout_secs", 30)
	v.SetDefault("crawl.retries", 3)
	v.SetDefault("crawl.retry_backoff_ms", 500)
	v.SetDefault("crawl.breaker_threshold", 5)
	v.SetDefault("crawl.breaker_reset_secs", 60)
	// Daily crawl at 02:00, weekly cleanup Sunday 01:00.
	v.SetDefault("schedule.crawl_spec", "0 2 * * *")
	v.SetDefault("schedule.cleanup_spec", "0 1 * * 0")
	v.SetDefault("schedule.keep_runs_days", 7)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
