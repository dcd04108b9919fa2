package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/divscout/divscout/internal/database"
	"github.com/divscout/divscout/internal/store"
)

var wipeForce bool

// wipeCmd represents the wipe command
var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Drop all DivScout tables",
	Long: `Wipe drops every table: companies, dividends, and the
collection log. All data is lost. The command asks for confirmation
unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runWipe,
}

func init() {
	rootCmd.AddCommand(wipeCmd)

	wipeCmd.Flags().BoolVar(&wipeForce, "force", false, "skip the confirmation prompt")
}

func runWipe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	if !wipeForce {
		fmt.Printf("This will drop ALL tables in database %q. Type 'yes' to continue: ", cfg.Database.Name)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	st := store.New(pool, logger)
	if err := st.Wipe(ctx); err != nil {
		return err
	}
	fmt.Println("All tables dropped.")
	return nil
}
