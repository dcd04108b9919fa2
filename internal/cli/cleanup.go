package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/divscout/divscout/internal/admin"
)

var (
	cleanupApply bool
	cleanupRatio float64
)

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Report data-quality problems, optionally deleting annual totals",
	Long: `Cleanup scans for near-duplicate records, implausible amounts,
and inconsistent dates, then reports suspected annual-total records
(amount near 4x the company median among labeled quarterlies).

Nothing is deleted without --apply.

Example:
  divscout cleanup
  divscout cleanup --apply`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().BoolVar(&cleanupApply, "apply", false, "delete suspected annual totals")
	cleanupCmd.Flags().Float64Var(&cleanupRatio, "ratio", 3.5, "median multiple above which a record counts as an annual total")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	a := admin.New(pool, logger)
	report, err := a.Report(ctx, cfg.Parser.MaxReasonable, cfg.Parser.MinReasonable)
	if err != nil {
		return err
	}

	if report.Total() == 0 {
		fmt.Println("No data-quality findings.")
	} else {
		printReport(report)
	}

	n, err := st.DeleteAnnualTotals(ctx, cleanupRatio, !cleanupApply)
	if err != nil {
		return err
	}
	if cleanupApply {
		fmt.Printf("\nDeleted %d suspected annual totals.\n", n)
	} else if n > 0 {
		fmt.Printf("\n%d suspected annual totals; rerun with --apply to delete.\n", n)
	}
	return nil
}

func printReport(r admin.CleanupReport) {
	if len(r.NearDuplicates) > 0 {
		fmt.Printf("Near-duplicate ex-dates (%d):\n", len(r.NearDuplicates))
		for _, d := range r.NearDuplicates {
			fmt.Printf("  %-8s #%d $%.4f %s  vs  #%d $%.4f %s\n",
				d.Ticker, d.ID1, d.Amount1, d.Date1.Format("2006-01-02"),
				d.ID2, d.Amount2, d.Date2.Format("2006-01-02"))
		}
	}
	if len(r.AnomalousAmounts) > 0 {
		fmt.Printf("\nAnomalous amounts (%d):\n", len(r.AnomalousAmounts))
		for _, an := range r.AnomalousAmounts {
			fmt.Printf("  %-8s #%d $%.4f (median $%.4f) %s: %s\n",
				an.Ticker, an.ID, an.Amount, an.Median,
				an.ExDate.Format("2006-01-02"), an.Description)
		}
	}
	if len(r.FutureDates) > 0 {
		fmt.Printf("\nFar-future ex-dates (%d):\n", len(r.FutureDates))
		for _, f := range r.FutureDates {
			fmt.Printf("  %-8s #%d $%.4f %s\n", f.Ticker, f.ID, f.Amount, f.ExDate.Format("2006-01-02"))
		}
	}
	if len(r.StaleDates) > 0 {
		fmt.Printf("\nImplausibly old ex-dates (%d):\n", len(r.StaleDates))
		for _, f := range r.StaleDates {
			fmt.Printf("  %-8s #%d $%.4f %s\n", f.Ticker, f.ID, f.Amount, f.ExDate.Format("2006-01-02"))
		}
	}
}
