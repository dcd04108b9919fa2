package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/divscout/divscout/internal/enrich"
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill in company websites and descriptions",
	Long: `Enrich fetches official websites from the SEC submissions API
and short descriptions from Wikipedia for every stored company that is
missing them. Wikipedia text is CC BY-SA 3.0.`,
	Args: cobra.NoArgs,
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Enrich.Enabled {
		return fmt.Errorf("enrichment disabled in config (enrich.enabled: false)")
	}
	logger := newLogger()

	st, pool, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	client := newEdgarClient(cfg, logger)
	wiki := enrich.NewWikiClient(cfg.Enrich.WikipediaURL, cfg.Edgar.UserAgent)

	e := enrich.New(wiki, client, st, logger)
	updated, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Enriched %d companies.\n", updated)
	return nil
}
