package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/divscout/divscout/internal/admin"
)

var (
	statsTop  int
	statsDays int
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats [ticker]",
	Short: "Show database statistics, or details for one company",
	Long: `Stats without arguments prints whole-database aggregates, the
top payers ranking, and recent collection activity. With a ticker it
prints that company's profile and latest dividends.

Example:
  divscout stats
  divscout stats KO`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntVar(&statsTop, "top", 10, "size of the top payers ranking")
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "window for recent activity")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	_, pool, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	a := admin.New(pool, logger)
	if len(args) == 1 {
		return printCompanyDetail(ctx, a, args[0])
	}
	return printOverview(ctx, a)
}

func printOverview(ctx context.Context, a *admin.Admin) error {
	o, err := a.Overview(ctx)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("DATABASE OVERVIEW")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Companies:            %d\n", o.Companies)
	fmt.Printf("  with dividends:     %d\n", o.CompaniesWithDividends)
	fmt.Printf("Dividend records:     %d\n", o.DividendCount)
	fmt.Printf("  needing review:     %d\n", o.NeedsReview)
	if o.DividendCount > 0 {
		fmt.Printf("  date range:         %s to %s\n",
			o.FirstExDate.Format("2006-01-02"), o.LastExDate.Format("2006-01-02"))
		fmt.Printf("  amounts:            $%.4f min / $%.4f avg / $%.4f max\n",
			o.AmountMin, o.AmountAvg, o.AmountMax)
	}
	fmt.Printf("Collection runs:      %d (%d failed)\n", o.CollectionRuns, o.CollectionFailures)
	if o.CollectionRuns > 0 {
		fmt.Printf("  last run:           %s\n", o.LastCollection.Format("2006-01-02 15:04:05"))
	}

	payers, err := a.TopPayers(ctx, statsTop)
	if err != nil {
		return err
	}
	if len(payers) > 0 {
		fmt.Printf("\nTOP %d PAYERS (by average amount, 4+ records)\n", statsTop)
		fmt.Printf("  %-8s %-28s %5s %10s %10s\n", "TICKER", "NAME", "COUNT", "AVG", "MAX")
		for _, p := range payers {
			fmt.Printf("  %-8s %-28s %5d %10.4f %10.4f\n",
				p.Ticker, truncate(p.Name, 28), p.DividendCount, p.AmountAvg, p.AmountMax)
		}
	}

	activity, err := a.RecentActivity(ctx, statsDays)
	if err != nil {
		return err
	}
	if len(activity) > 0 {
		fmt.Printf("\nRECENT ACTIVITY (last %d days)\n", statsDays)
		fmt.Printf("  %-20s %-8s %-8s %6s\n", "FINISHED", "TICKER", "STATUS", "FOUND")
		for _, e := range activity {
			fmt.Printf("  %-20s %-8s %-8s %6d\n",
				e.FinishedAt.Format("2006-01-02 15:04:05"), e.Ticker, e.Status, e.Records)
		}
	}
	return nil
}

func printCompanyDetail(ctx context.Context, a *admin.Admin, ticker string) error {
	d, err := a.CompanyDetail(ctx, ticker)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("COMPANY: %s\n", d.Company.Ticker)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Name:    %s\n", d.Company.Name)
	fmt.Printf("CIK:     %s\n", d.Company.CIK)
	if d.Company.Website != "" {
		fmt.Printf("Website: %s\n", d.Company.Website)
	}
	if d.Company.Description != "" {
		fmt.Printf("About:   %s\n", d.Company.Description)
	}

	fmt.Printf("\nDividend records: %d\n", d.DividendCount)
	if d.DividendCount > 0 {
		fmt.Printf("  date range: %s to %s\n",
			d.FirstExDate.Format("2006-01-02"), d.LastExDate.Format("2006-01-02"))
		fmt.Printf("  amounts:    $%.4f min / $%.4f avg / $%.4f max\n",
			d.AmountMin, d.AmountAvg, d.AmountMax)
	}

	if len(d.Recent) > 0 {
		fmt.Println("\nRecent dividends:")
		fmt.Printf("  %-12s %10s %4s %3s %-12s %10s %s\n",
			"EX-DATE", "AMOUNT", "FY", "Q", "FREQUENCY", "CONFIDENCE", "")
		for _, div := range d.Recent {
			flag := ""
			if div.NeedsReview {
				flag = "review"
			}
			fmt.Printf("  %-12s %10.4f %4d %3d %-12s %10.3f %s\n",
				div.ExDate.Format("2006-01-02"), div.Amount, div.FiscalYear,
				div.FiscalQuarter, div.Frequency, div.Confidence, flag)
		}
	}
	return nil
}
