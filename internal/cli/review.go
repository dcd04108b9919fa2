package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	reviewTicker   string
	reviewMarkID   int64
	reviewAction   string
	reviewNotes    string
	reviewReviewer string
	approveMin     float64
)

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List or resolve dividends flagged for review",
	Long: `Review without flags lists unreviewed records below the
confidence threshold, lowest first. With --mark it records a decision
for one dividend.

Example:
  divscout review
  divscout review --ticker KO
  divscout review --mark 42 --action keep --notes "verified against 10-Q"`,
	Args: cobra.NoArgs,
	RunE: runReview,
}

// approveCmd represents the approve command
var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Bulk-approve flagged dividends at or above a confidence floor",
	Long: `Approve marks every unreviewed flagged record with confidence
at or above --min-confidence and an amount inside the plausible
per-share band as kept. Use after spot-checking that a penalty band is
producing false positives for your universe.`,
	Args: cobra.NoArgs,
	RunE: runApprove,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(approveCmd)

	reviewCmd.Flags().StringVar(&reviewTicker, "ticker", "", "limit to one company")
	reviewCmd.Flags().Int64Var(&reviewMarkID, "mark", 0, "dividend id to resolve")
	reviewCmd.Flags().StringVar(&reviewAction, "action", "keep", "decision: keep or remove")
	reviewCmd.Flags().StringVar(&reviewNotes, "notes", "", "review notes")
	reviewCmd.Flags().StringVar(&reviewReviewer, "by", "", "reviewer name")

	approveCmd.Flags().Float64Var(&approveMin, "min-confidence", 0.7, "confidence floor for bulk approval")
}

func runReview(cmd *cobra.Command, args []string) error {
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

	if reviewMarkID != 0 {
		if reviewAction != "keep" && reviewAction != "remove" {
			return fmt.Errorf("invalid --action %q: must be keep or remove", reviewAction)
		}
		if err := st.MarkReviewed(ctx, reviewMarkID, reviewAction, reviewNotes, reviewReviewer); err != nil {
			return err
		}
		fmt.Printf("Dividend %d marked %s.\n", reviewMarkID, reviewAction)
		return nil
	}

	var companyID int64
	if reviewTicker != "" {
		c, err := st.CompanyByTicker(ctx, reviewTicker)
		if err != nil {
			return err
		}
		companyID = c.ID
	}

	items, err := st.NeedingReview(ctx, companyID, cfg.Parser.ReviewThreshold)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Nothing needs review.")
		return nil
	}

	fmt.Printf("%-6s %-8s %10s %-12s %10s %s\n", "ID", "TICKER", "AMOUNT", "EX-DATE", "CONFIDENCE", "REASONS")
	for _, it := range items {
		fmt.Printf("%-6d %-8s %10.4f %-12s %10.3f %s\n",
			it.ID, it.Ticker, it.Amount, it.ExDate.Format("2006-01-02"),
			it.Confidence, string(it.Reasons))
	}
	fmt.Printf("\n%d records need review\n", len(items))
	return nil
}

func runApprove(cmd *cobra.Command, args []string) error {
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

	n, err := st.AutoApprove(ctx, approveMin, cfg.Parser.MinReasonable, cfg.Parser.MaxReasonable)
	if err != nil {
		return err
	}
	fmt.Printf("Approved %d dividends at confidence >= %.2f.\n", n, approveMin)
	return nil
}
