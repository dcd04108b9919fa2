package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history <ticker>",
	Short: "Print the full dividend timeline for one company",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	c, err := st.CompanyByTicker(ctx, strings.ToUpper(args[0]))
	if err != nil {
		return err
	}

	divs, err := st.DividendsForCompany(ctx, c.ID)
	if err != nil {
		return err
	}
	if len(divs) == 0 {
		fmt.Printf("No dividends stored for %s.\n", c.Ticker)
		return nil
	}

	fmt.Printf("%s (%s) - %d dividends\n\n", c.Name, c.Ticker, len(divs))
	fmt.Printf("%-12s %10s %4s %2s %-12s %-10s %10s %s\n",
		"EX-DATE", "AMOUNT", "FY", "Q", "PERIOD", "FORM", "CONFIDENCE", "")
	for _, d := range divs {
		flag := ""
		if d.NeedsReview {
			flag = "review"
		}
		fmt.Printf("%-12s %10.4f %4d %2d %-12s %-10s %10.3f %s\n",
			d.ExDate.Format("2006-01-02"), d.Amount, d.FiscalYear, d.FiscalQuarter,
			d.PeriodType, d.SourceForm, d.Confidence, flag)
	}
	return nil
}
