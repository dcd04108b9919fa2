package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/divscout/divscout/internal/fetcher"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-collect dividend history for every stored company",
	Long: `Refresh runs the collection pipeline again for all companies
already in the database, picking up new filings since the last run.`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
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

	companies, err := st.ListCompanies(ctx)
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		fmt.Println("No companies stored yet; run fetch first.")
		return nil
	}

	targets := make([]fetcher.Target, 0, len(companies))
	for _, c := range companies {
		targets = append(targets, fetcher.Target{Ticker: c.Ticker, CIK: c.CIK})
	}

	fmt.Printf("Refreshing %d companies...\n", len(targets))
	return collect(ctx, cfg, logger, st, targets)
}
