// Package rollup turns timezone-corrected hourly records into the six
// aggregate views: line-item daily/total, campaign daily/total, and portfolio
// daily/total, each with its derived ratios.
package rollup

import (
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"adpace/internal/model"

	"github.com/google/uuid"
)

// Round2 rounds a monetary value to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds percentage/ratio metrics to four decimal places.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// bucket accumulates spend and impressions for one grouping key.
type bucket struct {
	spend       float64
	impressions int64
}

// campaignRollup is the per-campaign intermediate produced by one worker.
type campaignRollup struct {
	meta model.CampaignMeta

	// keyed by line item, then by day key
	lineDaily map[uuid.UUID]map[string]*bucket
	// keyed by day key
	daily map[string]*bucket
	// day key -> date for re-materializing sorted series
	dates map[string]time.Time

	totalSpend       float64
	totalImpressions int64
}

// Aggregate computes all six views from local-dated records plus campaign
// metadata. Records referencing campaigns missing from the metadata are kept,
// with the campaign ID standing in for its name and a zero budget.
//
// Aggregation is summation only, so records group hourly->daily first and the
// daily series sum again into the *_total views. Per-campaign grouping has no
// cross-key dependency and fans out over a bounded worker pool.
func Aggregate(records []model.LocalDatedRecord, campaigns []model.CampaignMeta) model.RollupTables {
	var tables model.RollupTables
	if len(records) == 0 {
		return tables
	}

	metaByID := make(map[uuid.UUID]model.CampaignMeta, len(campaigns))
	for _, c := range campaigns {
		metaByID[c.ID] = c
	}

	// Partition records by campaign.
	partitions := make(map[uuid.UUID][]model.LocalDatedRecord)
	for _, r := range records {
		partitions[r.CampaignID] = append(partitions[r.CampaignID], r)
	}

	ids := make([]uuid.UUID, 0, len(partitions))
	for id := range partitions {
		ids = append(ids, id)
	}

	// Bounded worker pool, one campaign per task.
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(ids) {
		numWorkers = len(ids)
	}

	work := make(chan int, len(ids))
	results := make([]*campaignRollup, len(ids))
	var wg sync.WaitGroup

	for i := range ids {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				id := ids[idx]
				results[idx] = rollupCampaign(id, partitions[id], metaByID[id])
			}
		}()
	}
	wg.Wait()

	// Deterministic order: campaign name, then ID as tiebreak.
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.meta.Name != b.meta.Name {
			return a.meta.Name < b.meta.Name
		}
		return a.meta.ID.String() < b.meta.ID.String()
	})

	tables.LineItemsDaily, tables.LineItemsTotal = buildLineItemViews(results)
	tables.CampaignsDaily, tables.CampaignsTotal = buildCampaignViews(results)
	tables.PortfolioDaily = buildPortfolioDaily(results)
	tables.PortfolioTotal = buildPortfolioTotal(results, campaigns, tables.PortfolioDaily)
	tables.HasPortfolioRow = true
	return tables
}

func rollupCampaign(id uuid.UUID, records []model.LocalDatedRecord, meta model.CampaignMeta) *campaignRollup {
	if meta.ID == uuid.Nil {
		meta = model.CampaignMeta{ID: id, Name: id.String()}
	}
	cr := &campaignRollup{
		meta:      meta,
		lineDaily: make(map[uuid.UUID]map[string]*bucket),
		daily:     make(map[string]*bucket),
		dates:     make(map[string]time.Time),
	}
	for _, r := range records {
		key := model.DayKey(r.LocalDate)
		cr.dates[key] = r.LocalDate

		li, ok := cr.lineDaily[r.LineItemID]
		if !ok {
			li = make(map[string]*bucket)
			cr.lineDaily[r.LineItemID] = li
		}
		lb, ok := li[key]
		if !ok {
			lb = &bucket{}
			li[key] = lb
		}
		lb.spend += r.Spend
		lb.impressions += r.Impressions

		db, ok := cr.daily[key]
		if !ok {
			db = &bucket{}
			cr.daily[key] = db
		}
		db.spend += r.Spend
		db.impressions += r.Impressions

		cr.totalSpend += r.Spend
		cr.totalImpressions += r.Impressions
	}
	return cr
}

// sortedDays returns the day keys of a series in ascending date order.
func sortedDays(m map[string]*bucket) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// prevDayRatio derives spend[date] / spend[date-1] within one series. It is
// undefined (nil) when the prior calendar day has no spend in the series.
func prevDayRatio(series map[string]*bucket, date time.Time) *float64 {
	prev, ok := series[model.DayKey(date.AddDate(0, 0, -1))]
	if !ok || prev.spend == 0 {
		return nil
	}
	cur := series[model.DayKey(date)]
	return model.Float(Round4(cur.spend / prev.spend))
}

// spendPercentage derives spend/budget*100, undefined when budget is zero.
func spendPercentage(spend, budget float64) *float64 {
	if budget <= 0 {
		return nil
	}
	return model.Float(Round4(spend / budget * 100))
}

func buildLineItemViews(results []*campaignRollup) ([]model.LineItemDailyRow, []model.LineItemTotalRow) {
	var daily []model.LineItemDailyRow
	var totals []model.LineItemTotalRow

	for _, cr := range results {
		liIDs := make([]uuid.UUID, 0, len(cr.lineDaily))
		for id := range cr.lineDaily {
			liIDs = append(liIDs, id)
		}
		sort.Slice(liIDs, func(i, j int) bool {
			a, b := cr.meta.LineItemName(liIDs[i]), cr.meta.LineItemName(liIDs[j])
			if a != b {
				return a < b
			}
			return liIDs[i].String() < liIDs[j].String()
		})

		for _, liID := range liIDs {
			series := cr.lineDaily[liID]
			name := cr.meta.LineItemName(liID)

			var liSpend float64
			var liImpr int64
			for _, key := range sortedDays(series) {
				b := series[key]
				date := cr.dates[key]
				daily = append(daily, model.LineItemDailyRow{
					Date:              date,
					CampaignID:        cr.meta.ID,
					CampaignName:      cr.meta.Name,
					LineItemID:        liID,
					LineItemName:      name,
					Impressions:       b.impressions,
					Spend:             Round2(b.spend),
					PrevDaySpendRatio: prevDayRatio(series, date),
				})
				liSpend += b.spend
				liImpr += b.impressions
			}

			totals = append(totals, model.LineItemTotalRow{
				CampaignID:       cr.meta.ID,
				CampaignName:     cr.meta.Name,
				LineItemID:       liID,
				LineItemName:     name,
				TotalSpend:       Round2(liSpend),
				TotalImpressions: liImpr,
				SpendPercentage:  spendPercentage(liSpend, cr.meta.Budget),
			})
		}
	}
	return daily, totals
}

func buildCampaignViews(results []*campaignRollup) ([]model.CampaignDailyRow, []model.CampaignTotalRow) {
	var daily []model.CampaignDailyRow
	var totals []model.CampaignTotalRow

	for _, cr := range results {
		for _, key := range sortedDays(cr.daily) {
			b := cr.daily[key]
			date := cr.dates[key]
			daily = append(daily, model.CampaignDailyRow{
				Date:              date,
				CampaignID:        cr.meta.ID,
				CampaignName:      cr.meta.Name,
				Impressions:       b.impressions,
				Spend:             Round2(b.spend),
				PrevDaySpendRatio: prevDayRatio(cr.daily, date),
			})
		}
		totals = append(totals, model.CampaignTotalRow{
			CampaignID:       cr.meta.ID,
			CampaignName:     cr.meta.Name,
			CampaignBudget:   Round2(cr.meta.Budget),
			TotalSpend:       Round2(cr.totalSpend),
			TotalImpressions: cr.totalImpressions,
			SpendPercentage:  spendPercentage(cr.totalSpend, cr.meta.Budget),
		})
	}
	return daily, totals
}

func buildPortfolioDaily(results []*campaignRollup) []model.PortfolioDailyRow {
	merged := make(map[string]*bucket)
	dates := make(map[string]time.Time)
	activeCampaigns := make(map[string]int)

	for _, cr := range results {
		for key, b := range cr.daily {
			dates[key] = cr.dates[key]
			mb, ok := merged[key]
			if !ok {
				mb = &bucket{}
				merged[key] = mb
			}
			mb.spend += b.spend
			mb.impressions += b.impressions
			if b.spend != 0 {
				activeCampaigns[key]++
			}
		}
	}

	rows := make([]model.PortfolioDailyRow, 0, len(merged))
	for _, key := range sortedDays(merged) {
		b := merged[key]
		date := dates[key]
		rows = append(rows, model.PortfolioDailyRow{
			Date:              date,
			TotalCampaigns:    activeCampaigns[key],
			Impressions:       b.impressions,
			Spend:             Round2(b.spend),
			PrevDaySpendRatio: prevDayRatio(merged, date),
		})
	}
	return rows
}

func buildPortfolioTotal(results []*campaignRollup, campaigns []model.CampaignMeta, daily []model.PortfolioDailyRow) model.PortfolioTotalRow {
	var row model.PortfolioTotalRow

	var spend float64
	var impressions int64
	for _, cr := range results {
		spend += cr.totalSpend
		impressions += cr.totalImpressions
	}

	// The portfolio budget sums every campaign the caller supplied, spend or
	// not: an unstarted campaign still dilutes the portfolio percentage.
	var budget float64
	for _, c := range campaigns {
		budget += c.Budget
	}

	row.TotalBudget = Round2(budget)
	row.TotalSpend = Round2(spend)
	row.TotalImpressions = impressions
	row.SpendPercentage = spendPercentage(spend, budget)

	if n := len(daily); n > 0 {
		row.DateRange = model.DateRange{Start: daily[0].Date, End: daily[n-1].Date}
		row.AvgDailySpend = model.Float(Round2(spend / float64(n)))
		row.AvgDailyImpressions = model.Float(Round2(float64(impressions) / float64(n)))
	}
	return row
}
