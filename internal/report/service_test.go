package report

import (
	"context"
	"testing"
	"time"

	"adpace/internal/engine"
	"adpace/internal/model"

	"github.com/google/uuid"
)

// grainStore records which query grain the service picked and the bounds it
// asked for.
type grainStore struct {
	hourlyCalls int
	dailyCalls  int
	from, to    int
}

func (g *grainStore) HourlyUsage(_ context.Context, _ []uuid.UUID, from, to int) ([]model.HourlyUsageRecord, error) {
	g.hourlyCalls++
	g.from, g.to = from, to
	return nil, nil
}

func (g *grainStore) DailyUsage(_ context.Context, _ []uuid.UUID, from, to int) ([]model.HourlyUsageRecord, error) {
	g.dailyCalls++
	g.from, g.to = from, to
	return nil, nil
}

func (g *grainStore) Campaigns(context.Context, []uuid.UUID) ([]model.CampaignMeta, error) {
	return nil, nil
}

func (g *grainStore) Close() error { return nil }

func d(y, m, day int) time.Time {
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC)
}

func TestRun_UTCUsesDayGrain(t *testing.T) {
	st := &grainStore{}
	svc := NewService(st, engine.Config{Timezone: "UTC"})

	_, err := svc.Run(context.Background(), Options{
		From: d(2025, 6, 1), To: d(2025, 6, 30), Today: d(2025, 6, 30),
	})
	if err != nil {
		t.Fatal(err)
	}
	if st.dailyCalls != 1 || st.hourlyCalls != 0 {
		t.Errorf("daily=%d hourly=%d, want day grain only", st.dailyCalls, st.hourlyCalls)
	}
	if st.from != 20250601 || st.to != 20250630 {
		t.Errorf("bounds = %d..%d, want 20250601..20250630", st.from, st.to)
	}
}

func TestRun_NonUTCUsesHourGrain(t *testing.T) {
	st := &grainStore{}
	svc := NewService(st, engine.Config{Timezone: "America/Los_Angeles"})

	_, err := svc.Run(context.Background(), Options{
		From: d(2025, 6, 1), To: d(2025, 6, 30), Today: d(2025, 6, 30),
	})
	if err != nil {
		t.Fatal(err)
	}
	if st.hourlyCalls != 1 || st.dailyCalls != 0 {
		t.Errorf("daily=%d hourly=%d, want hour grain only", st.dailyCalls, st.hourlyCalls)
	}
	// Local June 30 runs to 06:59:59 UTC on July 1, so the UTC bound widens.
	if st.to != 20250701 {
		t.Errorf("to bound = %d, want 20250701", st.to)
	}
}

func TestRun_DefaultWindowEndsToday(t *testing.T) {
	st := &grainStore{}
	svc := NewService(st, engine.Config{Timezone: "UTC"})

	_, err := svc.Run(context.Background(), Options{Today: d(2025, 6, 30)})
	if err != nil {
		t.Fatal(err)
	}
	if st.from != 20250601 || st.to != 20250630 {
		t.Errorf("bounds = %d..%d, want the 30 days ending 20250630", st.from, st.to)
	}
}

func TestRun_UnknownTimezone(t *testing.T) {
	svc := NewService(&grainStore{}, engine.Config{Timezone: "Nope/Nowhere"})
	_, err := svc.Run(context.Background(), Options{Today: d(2025, 6, 30)})
	if !model.IsInputError(err) {
		t.Fatalf("want input error, got %v", err)
	}
}
