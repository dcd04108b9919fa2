package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// companiesCmd represents the companies command
var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List stored companies",
	Args:  cobra.NoArgs,
	RunE:  runCompanies,
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}

func runCompanies(cmd *cobra.Command, args []string) error {
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

	companies, err := st.ListCompanies(ctx)
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		fmt.Println("No companies stored yet.")
		return nil
	}

	fmt.Printf("%-8s %-12s %-35s %s\n", "TICKER", "CIK", "NAME", "WEBSITE")
	for _, c := range companies {
		fmt.Printf("%-8s %-12s %-35s %s\n", c.Ticker, c.CIK, truncate(c.Name, 35), c.Website)
	}
	fmt.Printf("\n%d companies\n", len(companies))
	return nil
}
