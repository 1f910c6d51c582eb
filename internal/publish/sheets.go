// Package publish shapes engine results into header+rows sheets for the
// publishing sink and writes them as CSV. Column order per view is fixed;
// numeric cells stay numeric except spend_percentage, which is published as a
// fixed 4-decimal string; undefined values become empty cells, never 0.
package publish

import (
	"fmt"
	"time"

	"adpace/internal/model"
)

// Sheet is one result table: a name, a header row, and value rows. Cells are
// string, int64, int, float64, or nil (blank).
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

func dateCell(t time.Time) any { return model.DayKey(t) }

// ratioCell keeps an optional ratio numeric, blank when undefined.
func ratioCell(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// pctCell formats spend_percentage as a fixed 4-decimal string.
func pctCell(p *float64) any {
	if p == nil {
		return nil
	}
	return fmt.Sprintf("%.4f", *p)
}

// FromRollup builds the six rollup sheets.
func FromRollup(t model.RollupTables) []Sheet {
	liDaily := Sheet{
		Name: "line_items_daily",
		Header: []string{"date", "campaign_id", "campaign_name", "line_item_id",
			"line_item_name", "impressions", "spend", "prev_day_spend_ratio"},
	}
	for _, r := range t.LineItemsDaily {
		liDaily.Rows = append(liDaily.Rows, []any{
			dateCell(r.Date), r.CampaignID.String(), r.CampaignName,
			r.LineItemID.String(), r.LineItemName,
			r.Impressions, r.Spend, ratioCell(r.PrevDaySpendRatio),
		})
	}

	liTotal := Sheet{
		Name: "line_items_total",
		Header: []string{"campaign_id", "campaign_name", "line_item_id",
			"line_item_name", "total_spend", "total_impressions", "spend_percentage"},
	}
	for _, r := range t.LineItemsTotal {
		liTotal.Rows = append(liTotal.Rows, []any{
			r.CampaignID.String(), r.CampaignName,
			r.LineItemID.String(), r.LineItemName,
			r.TotalSpend, r.TotalImpressions, pctCell(r.SpendPercentage),
		})
	}

	campDaily := Sheet{
		Name: "campaigns_daily",
		Header: []string{"date", "campaign_id", "campaign_name",
			"impressions", "spend", "prev_day_spend_ratio"},
	}
	for _, r := range t.CampaignsDaily {
		campDaily.Rows = append(campDaily.Rows, []any{
			dateCell(r.Date), r.CampaignID.String(), r.CampaignName,
			r.Impressions, r.Spend, ratioCell(r.PrevDaySpendRatio),
		})
	}

	campTotal := Sheet{
		Name: "campaigns_total",
		Header: []string{"campaign_id", "campaign_name", "campaign_budget",
			"total_spend", "total_impressions", "spend_percentage"},
	}
	for _, r := range t.CampaignsTotal {
		campTotal.Rows = append(campTotal.Rows, []any{
			r.CampaignID.String(), r.CampaignName, r.CampaignBudget,
			r.TotalSpend, r.TotalImpressions, pctCell(r.SpendPercentage),
		})
	}

	portDaily := Sheet{
		Name: "portfolio_daily",
		Header: []string{"date", "total_campaigns", "impressions",
			"spend", "prev_day_spend_ratio"},
	}
	for _, r := range t.PortfolioDaily {
		portDaily.Rows = append(portDaily.Rows, []any{
			dateCell(r.Date), r.TotalCampaigns, r.Impressions,
			r.Spend, ratioCell(r.PrevDaySpendRatio),
		})
	}

	portTotal := Sheet{
		Name: "portfolio_total",
		Header: []string{"total_budget", "total_spend", "total_impressions",
			"date_range", "spend_percentage", "avg_daily_spend", "avg_daily_impressions"},
	}
	if t.HasPortfolioRow {
		r := t.PortfolioTotal
		dateRange := ""
		if !r.DateRange.Start.IsZero() {
			dateRange = model.DayKey(r.DateRange.Start) + " - " + model.DayKey(r.DateRange.End)
		}
		portTotal.Rows = append(portTotal.Rows, []any{
			r.TotalBudget, r.TotalSpend, r.TotalImpressions, dateRange,
			pctCell(r.SpendPercentage), ratioCell(r.AvgDailySpend), ratioCell(r.AvgDailyImpressions),
		})
	}

	return []Sheet{liDaily, liTotal, campDaily, campTotal, portDaily, portTotal}
}

// AllocationsSheet builds the weekly allocation sheet.
func AllocationsSheet(rows []model.WeeklyAllocationRow) Sheet {
	s := Sheet{
		Name:   "weekly_allocations",
		Header: []string{"week_start", "week_end", "campaign_id", "campaign_name", "weekly_budget"},
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []any{
			dateCell(r.WeekStart), dateCell(r.WeekEnd),
			r.CampaignID.String(), r.CampaignName, r.WeeklyBudget,
		})
	}
	return s
}
