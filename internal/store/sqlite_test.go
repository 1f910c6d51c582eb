package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"adpace/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testMeta(name string) model.CampaignMeta {
	return model.CampaignMeta{
		ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		Name:      name,
		Budget:    5000,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		LineItems: []model.LineItem{
			{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(name+"/li")), Name: name + " Video"},
		},
	}
}

func TestSQLite_CampaignRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	meta := testMeta("Alpha")
	require.NoError(t, st.UpsertCampaign(ctx, meta))

	got, err := st.Campaigns(ctx, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, meta.ID, c.ID)
	assert.Equal(t, "Alpha", c.Name)
	assert.Equal(t, 5000.0, c.Budget)
	assert.Equal(t, "2025-06-01", model.DayKey(c.StartDate))
	assert.Equal(t, "2025-06-30", model.DayKey(c.EndDate))
	require.Len(t, c.LineItems, 1)
	assert.Equal(t, "Alpha Video", c.LineItems[0].Name)
}

func TestSQLite_UpsertIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	meta := testMeta("Alpha")
	require.NoError(t, st.UpsertCampaign(ctx, meta))
	meta.Budget = 9000
	require.NoError(t, st.UpsertCampaign(ctx, meta))

	got, err := st.Campaigns(ctx, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 9000.0, got[0].Budget)
}

func TestSQLite_HourlyUsageDateBounds(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	meta := testMeta("Alpha")
	require.NoError(t, st.UpsertCampaign(ctx, meta))

	li := meta.LineItems[0].ID
	records := []model.HourlyUsageRecord{
		{CampaignID: meta.ID, LineItemID: li, Year: 2025, Month: 5, Day: 31, Hour: 23, Spend: 1, Impressions: 10},
		{CampaignID: meta.ID, LineItemID: li, Year: 2025, Month: 6, Day: 1, Hour: 0, Spend: 2, Impressions: 20},
		{CampaignID: meta.ID, LineItemID: li, Year: 2025, Month: 6, Day: 2, Hour: 5, Spend: 4, Impressions: 40},
		{CampaignID: meta.ID, LineItemID: li, Year: 2025, Month: 6, Day: 3, Hour: 0, Spend: 8, Impressions: 80},
	}
	require.NoError(t, st.InsertHourlyUsage(ctx, records))

	got, err := st.HourlyUsage(ctx, nil, 20250601, 20250602)
	require.NoError(t, err)
	require.Len(t, got, 2, "bounds are inclusive and exclude surrounding days")

	var spend float64
	for _, r := range got {
		spend += r.Spend
	}
	assert.Equal(t, 6.0, spend)
}

func TestSQLite_DailyUsageSumsHours(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	meta := testMeta("Alpha")
	li := meta.LineItems[0].ID
	require.NoError(t, st.InsertHourlyUsage(ctx, []model.HourlyUsageRecord{
		{CampaignID: meta.ID, LineItemID: li, Year: 2025, Month: 6, Day: 1, Hour: 1, Spend: 10, Impressions: 100},
		{CampaignID: meta.ID, LineItemID: li, Year: 2025, Month: 6, Day: 1, Hour: 13, Spend: 15, Impressions: 200},
	}))

	got, err := st.DailyUsage(ctx, nil, 20250601, 20250601)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 0, got[0].Hour)
	assert.Equal(t, 25.0, got[0].Spend)
	assert.Equal(t, int64(300), got[0].Impressions)
}

func TestSQLite_CampaignFilter(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	alpha, beta := testMeta("Alpha"), testMeta("Beta")
	require.NoError(t, st.UpsertCampaign(ctx, alpha))
	require.NoError(t, st.UpsertCampaign(ctx, beta))

	require.NoError(t, st.InsertHourlyUsage(ctx, []model.HourlyUsageRecord{
		{CampaignID: alpha.ID, LineItemID: alpha.LineItems[0].ID, Year: 2025, Month: 6, Day: 1, Spend: 1},
		{CampaignID: beta.ID, LineItemID: beta.LineItems[0].ID, Year: 2025, Month: 6, Day: 1, Spend: 2},
	}))

	got, err := st.HourlyUsage(ctx, []uuid.UUID{beta.ID}, 20250601, 20250601)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, beta.ID, got[0].CampaignID)

	metas, err := st.Campaigns(ctx, []uuid.UUID{alpha.ID})
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "Alpha", metas[0].Name)
}

func TestSQLite_SpentToDate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	meta := testMeta("Alpha")
	require.NoError(t, st.UpsertCampaign(ctx, meta))
	require.NoError(t, st.InsertHourlyUsage(ctx, []model.HourlyUsageRecord{
		{CampaignID: meta.ID, LineItemID: meta.LineItems[0].ID, Year: 2025, Month: 6, Day: 1, Spend: 12.5},
		{CampaignID: meta.ID, LineItemID: meta.LineItems[0].ID, Year: 2025, Month: 6, Day: 2, Spend: 7.5},
	}))

	got, err := st.Campaigns(ctx, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 20.0, got[0].SpentToDate)
}

func TestSeed_ProducesReadableData(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, Seed(ctx, st, today, 14))

	campaigns, err := st.Campaigns(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, campaigns, 3)
	for _, c := range campaigns {
		assert.Positive(t, c.Budget, "campaign %s", c.Name)
		assert.Positive(t, c.SpentToDate, "campaign %s", c.Name)
		assert.NotEmpty(t, c.LineItems, "campaign %s", c.Name)
	}

	records, err := st.HourlyUsage(ctx, nil, 20250601, 20250615)
	require.NoError(t, err)
	assert.NotEmpty(t, records)

	// Reseeding must not duplicate rows.
	require.NoError(t, Seed(ctx, st, today, 14))
	again, err := st.HourlyUsage(ctx, nil, 20250601, 20250615)
	require.NoError(t, err)
	assert.Len(t, again, len(records))
}
