// Package engine runs one full batch computation: timezone-correct the hourly
// records, roll them up, then derive the pacing snapshot and the forward
// weekly allocations. Each call gets a complete input snapshot and returns
// immutable result tables; there is no state between invocations.
package engine

import (
	"context"
	"sync"
	"time"

	"adpace/internal/allocate"
	"adpace/internal/model"
	"adpace/internal/pacing"
	"adpace/internal/rollup"
	"adpace/internal/timezone"
)

// Config is the per-call configuration, passed by value. There is no
// process-wide config singleton to reload.
type Config struct {
	// Timezone is the reporting zone: "UTC", an IANA name, or a US
	// abbreviation like "PST".
	Timezone string
	// WeeksFuture is the allocation horizon in weeks (default 6).
	WeeksFuture int
	// BudgetOverride, when set, replaces the portfolio budget entirely,
	// display and pacing math both.
	BudgetOverride *float64
}

// Input is the snapshot one run computes over. Acquisition of records and
// metadata is the caller's job; nothing here blocks on I/O.
type Input struct {
	Records   []model.HourlyUsageRecord
	Campaigns []model.CampaignMeta
	Today     time.Time
}

// Result bundles everything one run produces.
type Result struct {
	Tables      model.RollupTables
	Pacing      model.PacingSnapshot
	Allocations []model.WeeklyAllocationRow
}

// Run validates the input, then computes the rollup tables followed by the
// pacing snapshot and weekly allocations, the latter two concurrently. On
// context cancellation no partial result is returned: one table missing
// means all tables missing.
func Run(ctx context.Context, cfg Config, in Input) (*Result, error) {
	loc, err := timezone.Resolve(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg, in); err != nil {
		return nil, err
	}

	today := in.Today
	if today.IsZero() {
		today = time.Now().UTC()
	}

	localized := timezone.Localize(in.Records, loc)
	tables := rollup.Aggregate(localized, in.Campaigns)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	budget := portfolioBudget(cfg, in.Campaigns)
	tl, hasTimeline := portfolioTimeline(in.Campaigns)

	res := &Result{Tables: tables}

	var wg sync.WaitGroup
	var pacingErr error

	if hasTimeline {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res.Pacing, pacingErr = pacing.Calculate(tables.PortfolioTotal.TotalSpend, tl, budget, today)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		res.Allocations = allocate.Allocate(in.Campaigns, cfg.WeeksFuture, today)
	}()

	wg.Wait()

	if pacingErr != nil {
		return nil, pacingErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func validate(cfg Config, in Input) error {
	if cfg.BudgetOverride != nil && *cfg.BudgetOverride < 0 {
		return model.NewInputError("budget_override", "negative budget %.2f", *cfg.BudgetOverride)
	}
	for _, c := range in.Campaigns {
		if c.Budget < 0 {
			return model.NewInputError("campaign_budget",
				"campaign %s has negative budget %.2f", c.Name, c.Budget)
		}
		if model.DateOnly(c.EndDate).Before(model.DateOnly(c.StartDate)) {
			return model.NewInputError("campaign_dates",
				"campaign %s ends %s before it starts %s",
				c.Name, model.DayKey(c.EndDate), model.DayKey(c.StartDate))
		}
	}
	return nil
}

// portfolioBudget is the override when present, else the sum of campaign
// budgets.
func portfolioBudget(cfg Config, campaigns []model.CampaignMeta) float64 {
	if cfg.BudgetOverride != nil {
		return *cfg.BudgetOverride
	}
	var sum float64
	for _, c := range campaigns {
		sum += c.Budget
	}
	return sum
}

// portfolioTimeline spans the earliest start to the latest end across all
// campaigns. With no campaigns there is nothing to pace against.
func portfolioTimeline(campaigns []model.CampaignMeta) (model.CampaignTimeline, bool) {
	if len(campaigns) == 0 {
		return model.CampaignTimeline{}, false
	}
	tl := model.CampaignTimeline{
		StartDate: campaigns[0].StartDate,
		EndDate:   campaigns[0].EndDate,
	}
	for _, c := range campaigns[1:] {
		if c.StartDate.Before(tl.StartDate) {
			tl.StartDate = c.StartDate
		}
		if c.EndDate.After(tl.EndDate) {
			tl.EndDate = c.EndDate
		}
	}
	return tl, true
}

// NeedsHourGrain reports whether the configured zone requires hour-grain
// records. UTC reporting can aggregate day-grain rows directly; any other
// zone must redistribute hours across local day boundaries first.
func NeedsHourGrain(tz string) (bool, error) {
	loc, err := timezone.Resolve(tz)
	if err != nil {
		return false, err
	}
	return loc != time.UTC, nil
}
