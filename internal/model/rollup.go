package model

import (
	"time"

	"github.com/google/uuid"
)

// The six rollup views. Optional derived metrics are *float64: nil means the
// value is undefined (zero denominator or first element of a series) and is
// published as a blank cell, never as 0.

// LineItemDailyRow is one local date of one line item within one campaign.
type LineItemDailyRow struct {
	Date              time.Time
	CampaignID        uuid.UUID
	CampaignName      string
	LineItemID        uuid.UUID
	LineItemName      string
	Impressions       int64
	Spend             float64
	PrevDaySpendRatio *float64
}

// LineItemTotalRow is the full-range total for one line item.
type LineItemTotalRow struct {
	CampaignID       uuid.UUID
	CampaignName     string
	LineItemID       uuid.UUID
	LineItemName     string
	TotalSpend       float64
	TotalImpressions int64
	SpendPercentage  *float64
}

// CampaignDailyRow is one local date of one campaign, all line items summed.
type CampaignDailyRow struct {
	Date              time.Time
	CampaignID        uuid.UUID
	CampaignName      string
	Impressions       int64
	Spend             float64
	PrevDaySpendRatio *float64
}

// CampaignTotalRow is the full-range total for one campaign.
type CampaignTotalRow struct {
	CampaignID       uuid.UUID
	CampaignName     string
	CampaignBudget   float64
	TotalSpend       float64
	TotalImpressions int64
	SpendPercentage  *float64
}

// PortfolioDailyRow is one local date across all campaigns.
type PortfolioDailyRow struct {
	Date              time.Time
	TotalCampaigns    int // campaigns with non-zero spend on this date
	Impressions       int64
	Spend             float64
	PrevDaySpendRatio *float64
}

// PortfolioTotalRow is the single top-level aggregate row.
type PortfolioTotalRow struct {
	TotalBudget         float64
	TotalSpend          float64
	TotalImpressions    int64
	DateRange           DateRange
	SpendPercentage     *float64
	AvgDailySpend       *float64
	AvgDailyImpressions *float64
}

// RollupTables bundles all six views produced by one aggregation run.
type RollupTables struct {
	LineItemsDaily  []LineItemDailyRow
	LineItemsTotal  []LineItemTotalRow
	CampaignsDaily  []CampaignDailyRow
	CampaignsTotal  []CampaignTotalRow
	PortfolioDaily  []PortfolioDailyRow
	PortfolioTotal  PortfolioTotalRow
	HasPortfolioRow bool // false when the record set was empty
}
