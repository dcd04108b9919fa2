package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/divscout/divscout/internal/config"
	"github.com/divscout/divscout/internal/fetcher"
	"github.com/divscout/divscout/internal/store"
	"github.com/divscout/divscout/internal/xbrl"
)

var (
	fetchByCIK bool
	fetchFile  string
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <ticker>...",
	Short: "Collect dividend history for one or more companies",
	Long: `Fetch pulls XBRL company facts from SEC EDGAR, runs the
dividend pipeline, and stores the results.

Arguments are tickers by default; pass --cik to supply zero-padded
CIK numbers instead, or --file to read tickers from a file (one per
line, # starts a comment).

Example:
  divscout fetch AAPL MSFT KO
  divscout fetch --cik 0000320193
  divscout fetch --file sp500.txt`,
	Args: cobra.ArbitraryArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchByCIK, "cik", false, "treat arguments as CIK numbers")
	fetchCmd.Flags().StringVar(&fetchFile, "file", "", "file with one ticker per line")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	st, pool, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if fetchFile != "" {
		fromFile, err := readTickerFile(fetchFile)
		if err != nil {
			return err
		}
		args = append(args, fromFile...)
	}
	if len(args) == 0 {
		return fmt.Errorf("no companies given: pass tickers or --file")
	}

	targets := make([]fetcher.Target, 0, len(args))
	for _, arg := range args {
		if fetchByCIK {
			targets = append(targets, fetcher.Target{CIK: arg})
		} else {
			targets = append(targets, fetcher.Target{Ticker: strings.ToUpper(arg)})
		}
	}

	return collect(ctx, cfg, logger, st, targets)
}

func collect(ctx context.Context, cfg *config.Config, logger *slog.Logger, st *store.Store, targets []fetcher.Target) error {
	client := newEdgarClient(cfg, logger)
	parser := xbrl.New(parserConfig(cfg), logger)
	f := fetcher.New(fetcher.Config{Concurrency: cfg.Fetcher.Concurrency}, client, parser, st, logger)

	results, err := f.Collect(ctx, targets)
	if err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		label := r.Target.Ticker
		if label == "" {
			label = r.Target.CIK
		}
		if r.Err != nil {
			failed++
			fmt.Printf("✗ %-8s %v\n", label, r.Err)
			continue
		}
		fmt.Printf("✓ %-8s %-30s %3d dividends (%d flagged for review)\n",
			label, truncate(r.Name, 30), r.Records, r.Summary.NeedsReviewCount)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d companies failed", failed, len(targets))
	}
	return nil
}

// readTickerFile parses a ticker list: one per line, blank lines and
// # comments ignored.
func readTickerFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ticker file: %w", err)
	}
	defer f.Close()

	var tickers []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		tickers = append(tickers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ticker file: %w", err)
	}
	return tickers, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
