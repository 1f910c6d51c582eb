package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"adpace/internal/model"
	"adpace/internal/store"

	"github.com/spf13/cobra"
)

var flagSeedDays int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the usage store with a deterministic demo portfolio",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&flagSeedDays, "days", 30, "Days of hourly usage to generate")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = st.Close() }()

	w, ok := st.(store.Writer)
	if !ok {
		return errors.New("configured store is not writable")
	}

	today := model.DateOnly(time.Now().UTC())
	if err := store.Seed(cmd.Context(), w, today, flagSeedDays); err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Seeded %d days of demo usage.\n", flagSeedDays)
	}
	return nil
}
