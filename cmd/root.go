// Package cmd implements the adpace command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"adpace/internal/config"
	"adpace/internal/engine"
	"adpace/internal/model"
	"adpace/internal/report"
	"adpace/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagTimezone  string
	flagFrom      string
	flagTo        string
	flagCampaigns []string
	flagWeeks     int
	flagBudget    float64
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "adpace",
	Short: "Ad spend rollups and budget pacing",
	Long:  "Timezone-correct spend rollups, budget-pacing snapshots, and forward weekly budget allocations for ad campaigns.",
	RunE:  runPacing,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default XDG location)")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "Reporting timezone (UTC, IANA name, or PST/EST style abbreviation)")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Report start date, local (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "Report end date, local (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringSliceVarP(&flagCampaigns, "campaign", "c", nil, "Campaign UUID filter (repeatable)")
	rootCmd.PersistentFlags().IntVarP(&flagWeeks, "weeks", "w", 0, "Allocation horizon in weeks")
	rootCmd.PersistentFlags().Float64VarP(&flagBudget, "budget", "b", 0, "Budget override for pacing")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads the TOML config, honoring --config.
func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.LoadFrom(flagConfig)
	}
	return config.Load()
}

// engineConfig merges the file config with command-line overrides.
func engineConfig(cfg config.Config) engine.Config {
	ec := engine.Config{
		Timezone:       cfg.Engine.Timezone,
		WeeksFuture:    cfg.Engine.WeeksFuture,
		BudgetOverride: cfg.Engine.BudgetOverride,
	}
	if flagTimezone != "" {
		ec.Timezone = flagTimezone
	}
	if flagWeeks > 0 {
		ec.WeeksFuture = flagWeeks
	}
	if flagBudget > 0 {
		ec.BudgetOverride = &flagBudget
	}
	return ec
}

// openStore picks Postgres when an address is configured, SQLite otherwise.
func openStore(ctx context.Context, cfg config.Config) (store.UsageStore, error) {
	if cfg.Postgres.Address != "" {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Connecting to Postgres...\n")
		}
		return store.OpenPostgres(ctx, cfg.Postgres.Address)
	}
	return store.OpenSQLite(cfg.SQLite.Path)
}

// newService is the shared load path used by the report commands.
func newService(ctx context.Context) (*report.Service, store.UsageStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return report.NewService(st, engineConfig(cfg)), st, nil
}

// reportOptions builds the run options from the date and campaign flags.
func reportOptions() (report.Options, error) {
	var opts report.Options
	var err error

	if flagFrom != "" {
		if opts.From, err = parseDate(flagFrom); err != nil {
			return opts, err
		}
	}
	if flagTo != "" {
		if opts.To, err = parseDate(flagTo); err != nil {
			return opts, err
		}
	}
	for _, c := range flagCampaigns {
		id, err := uuid.Parse(c)
		if err != nil {
			return opts, model.NewInputError("campaign", "invalid UUID %q", c)
		}
		opts.CampaignIDs = append(opts.CampaignIDs, id)
	}
	return opts, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, model.NewInputError("date", "invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// runReport runs one engine invocation behind a command.
func runReport(ctx context.Context) (*engine.Result, *report.Service, error) {
	svc, st, err := newService(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = st.Close() }()

	opts, err := reportOptions()
	if err != nil {
		return nil, nil, err
	}

	res, err := svc.Run(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	return res, svc, nil
}
