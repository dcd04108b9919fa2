package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/divscout/divscout/internal/config"
	"github.com/divscout/divscout/internal/database"
	"github.com/divscout/divscout/internal/edgar"
	"github.com/divscout/divscout/internal/store"
	"github.com/divscout/divscout/internal/version"
	"github.com/divscout/divscout/internal/xbrl"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "divscout",
	Short: "DivScout - dividend history from SEC XBRL filings",
	Long: `DivScout builds per-share dividend histories straight from
SEC EDGAR company-facts data.

It fetches XBRL facts for each company, extracts dividend declarations,
removes duplicate and annual-total records, and scores every surviving
record with a confidence value so doubtful data is flagged for review
instead of silently trusted.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("divscout " + version.String())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "configs/divscout.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger. Verbose switches on debug
// lines from the pipeline stages.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig reads and validates the YAML config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadAndValidate(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openStore connects to Postgres and ensures the schema exists.
// Callers must Close the returned pool.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store.Store, *pgxpool.Pool, error) {
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	st := store.New(pool, logger)
	if err := st.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return st, pool, nil
}

// newEdgarClient builds the EDGAR client from config.
func newEdgarClient(cfg *config.Config, logger *slog.Logger) *edgar.Client {
	return edgar.NewClient(cfg.Edgar.BaseURL, cfg.Edgar.UserAgent,
		edgar.WithTimeout(cfg.Edgar.Timeout),
		edgar.WithRetries(cfg.Edgar.MaxRetries, cfg.Edgar.RetryBackoff),
		edgar.WithRateLimit(cfg.Edgar.RequestsPerSec),
		edgar.WithCacheTTL(cfg.Edgar.CacheTTL),
		edgar.WithLogger(logger),
	)
}

// parserConfig maps the YAML parser section onto pipeline settings.
func parserConfig(cfg *config.Config) xbrl.Config {
	return xbrl.Config{
		MaxReasonable:   cfg.Parser.MaxReasonable,
		MinReasonable:   cfg.Parser.MinReasonable,
		ReviewThreshold: cfg.Parser.ReviewThreshold,
		DedupTolerance:  cfg.Parser.DedupTolerance,
		AnnualRatioLow:  cfg.Parser.AnnualRatioLow,
		AnnualRatioHigh: cfg.Parser.AnnualRatioHigh,
		ExtremeRatio:    cfg.Parser.ExtremeRatio,
		Overrides:       cfg.Parser.Overrides,
	}
}
