package cmd

import (
	"fmt"
	"strconv"

	"adpace/internal/config"
	"adpace/internal/timezone"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	tz := cfg.Engine.Timezone
	weeks := strconv.Itoa(cfg.Engine.WeeksFuture)
	pgAddr := cfg.Postgres.Address
	logFormat := cfg.Log.Format

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reporting timezone").
				Description("UTC, an IANA name like America/New_York, or PST/EST style").
				Value(&tz).
				Validate(func(s string) error {
					_, err := timezone.Resolve(s)
					return err
				}),
			huh.NewInput().
				Title("Allocation horizon (weeks)").
				Value(&weeks).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return fmt.Errorf("want a positive integer")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Postgres address (optional)").
				Description("Leave empty to use the local SQLite store").
				Value(&pgAddr),
			huh.NewSelect[string]().
				Title("Log format").
				Options(
					huh.NewOption("text", "text"),
					huh.NewOption("json", "json"),
				).
				Value(&logFormat),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Engine.Timezone = tz
	cfg.Engine.WeeksFuture, _ = strconv.Atoi(weeks)
	cfg.Postgres.Address = pgAddr
	cfg.Log.Format = logFormat

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `adpace setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
