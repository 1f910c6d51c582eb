// Package report wires the stores to the engine: it picks the query grain for
// the configured timezone, fetches the input snapshot, and runs one batch
// computation.
package report

import (
	"context"
	"fmt"
	"time"

	"adpace/internal/engine"
	"adpace/internal/model"
	"adpace/internal/store"
	"adpace/internal/timezone"

	"github.com/google/uuid"
)

// Options selects what one report run covers. From/To are local calendar
// dates in the reporting timezone.
type Options struct {
	From        time.Time
	To          time.Time
	CampaignIDs []uuid.UUID
	Today       time.Time
}

// Service runs engine computations over a usage store.
type Service struct {
	store store.UsageStore
	cfg   engine.Config
}

// NewService returns a report service bound to a store and engine config.
func NewService(st store.UsageStore, cfg engine.Config) *Service {
	return &Service{store: st, cfg: cfg}
}

// Config exposes the engine configuration the service runs with.
func (s *Service) Config() engine.Config {
	return s.cfg
}

// Run fetches the input snapshot and executes one engine run. UTC reporting
// queries day-grain rows; any other timezone needs hour-grain records so
// spend can be redistributed across local day boundaries before aggregation.
func (s *Service) Run(ctx context.Context, opts Options) (*engine.Result, error) {
	loc, err := timezone.Resolve(s.cfg.Timezone)
	if err != nil {
		return nil, err
	}

	today := opts.Today
	if today.IsZero() {
		today = model.DateOnly(time.Now().In(loc))
	}
	from, to := opts.From, opts.To
	if to.IsZero() {
		to = today
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -29)
	}

	fromDate, toDate, err := timezone.QueryBounds(from, to, loc)
	if err != nil {
		return nil, err
	}

	hourGrain, err := engine.NeedsHourGrain(s.cfg.Timezone)
	if err != nil {
		return nil, err
	}

	var records []model.HourlyUsageRecord
	if hourGrain {
		records, err = s.store.HourlyUsage(ctx, opts.CampaignIDs, fromDate, toDate)
	} else {
		records, err = s.store.DailyUsage(ctx, opts.CampaignIDs, fromDate, toDate)
	}
	if err != nil {
		return nil, fmt.Errorf("querying usage: %w", err)
	}

	campaigns, err := s.store.Campaigns(ctx, opts.CampaignIDs)
	if err != nil {
		return nil, fmt.Errorf("querying campaigns: %w", err)
	}

	return engine.Run(ctx, s.cfg, engine.Input{
		Records:   records,
		Campaigns: campaigns,
		Today:     today,
	})
}
