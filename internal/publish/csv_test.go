package publish

import (
	"strings"
	"testing"
	"time"

	"adpace/internal/model"

	"github.com/google/uuid"
)

var (
	campID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	lineID = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
)

func d(day int) time.Time {
	return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
}

func sampleTables() model.RollupTables {
	return model.RollupTables{
		LineItemsDaily: []model.LineItemDailyRow{{
			Date: d(1), CampaignID: campID, CampaignName: "Alpha",
			LineItemID: lineID, LineItemName: "Video",
			Impressions: 100, Spend: 12.34, PrevDaySpendRatio: nil,
		}},
		LineItemsTotal: []model.LineItemTotalRow{{
			CampaignID: campID, CampaignName: "Alpha",
			LineItemID: lineID, LineItemName: "Video",
			TotalSpend: 12.34, TotalImpressions: 100,
			SpendPercentage: model.Float(1.234),
		}},
		CampaignsDaily: []model.CampaignDailyRow{{
			Date: d(1), CampaignID: campID, CampaignName: "Alpha",
			Impressions: 100, Spend: 12.34,
			PrevDaySpendRatio: model.Float(1.5),
		}},
		CampaignsTotal: []model.CampaignTotalRow{{
			CampaignID: campID, CampaignName: "Alpha", CampaignBudget: 1000,
			TotalSpend: 12.34, TotalImpressions: 100,
			SpendPercentage: nil,
		}},
		PortfolioDaily: []model.PortfolioDailyRow{{
			Date: d(1), TotalCampaigns: 1, Impressions: 100, Spend: 12.34,
		}},
		PortfolioTotal: model.PortfolioTotalRow{
			TotalBudget: 1000, TotalSpend: 12.34, TotalImpressions: 100,
			DateRange:       model.DateRange{Start: d(1), End: d(2)},
			SpendPercentage: model.Float(1.234),
			AvgDailySpend:   model.Float(6.17),
		},
		HasPortfolioRow: true,
	}
}

func sheetByName(t *testing.T, sheets []Sheet, name string) Sheet {
	t.Helper()
	for _, s := range sheets {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no sheet named %q", name)
	return Sheet{}
}

func TestFromRollup_SheetNamesAndHeaders(t *testing.T) {
	sheets := FromRollup(sampleTables())
	if len(sheets) != 6 {
		t.Fatalf("sheets = %d, want 6", len(sheets))
	}

	li := sheetByName(t, sheets, "line_items_daily")
	wantHeader := "date,campaign_id,campaign_name,line_item_id,line_item_name,impressions,spend,prev_day_spend_ratio"
	if got := strings.Join(li.Header, ","); got != wantHeader {
		t.Errorf("line_items_daily header = %s", got)
	}

	pt := sheetByName(t, sheets, "portfolio_total")
	wantHeader = "total_budget,total_spend,total_impressions,date_range,spend_percentage,avg_daily_spend,avg_daily_impressions"
	if got := strings.Join(pt.Header, ","); got != wantHeader {
		t.Errorf("portfolio_total header = %s", got)
	}
}

func TestFromRollup_SpendPercentageFixedDecimals(t *testing.T) {
	sheets := FromRollup(sampleTables())

	liTotal := sheetByName(t, sheets, "line_items_total")
	if got := liTotal.Rows[0][6]; got != "1.2340" {
		t.Errorf("spend_percentage cell = %v, want the string \"1.2340\"", got)
	}
}

func TestFromRollup_UndefinedValuesBlank(t *testing.T) {
	sheets := FromRollup(sampleTables())

	liDaily := sheetByName(t, sheets, "line_items_daily")
	if liDaily.Rows[0][7] != nil {
		t.Errorf("undefined ratio cell = %v, want nil", liDaily.Rows[0][7])
	}

	campTotal := sheetByName(t, sheets, "campaigns_total")
	if campTotal.Rows[0][5] != nil {
		t.Errorf("undefined percentage cell = %v, want nil", campTotal.Rows[0][5])
	}
}

func TestFromRollup_DateRangeString(t *testing.T) {
	sheets := FromRollup(sampleTables())
	pt := sheetByName(t, sheets, "portfolio_total")
	if got := pt.Rows[0][3]; got != "2025-06-01 - 2025-06-02" {
		t.Errorf("date_range = %v", got)
	}
}

func TestFromRollup_NoPortfolioRow(t *testing.T) {
	tables := sampleTables()
	tables.HasPortfolioRow = false
	sheets := FromRollup(tables)
	pt := sheetByName(t, sheets, "portfolio_total")
	if len(pt.Rows) != 0 {
		t.Errorf("portfolio_total rows = %d, want 0", len(pt.Rows))
	}
}

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	s := Sheet{
		Name:   "test",
		Header: []string{"date", "spend", "ratio"},
		Rows: [][]any{
			{"2025-06-01", 12.34, nil},
			{"2025-06-02", 8.1, 0.6564},
		},
	}
	if err := WriteCSV(&b, s); err != nil {
		t.Fatal(err)
	}

	want := "date,spend,ratio\n2025-06-01,12.34,\n2025-06-02,8.1,0.6564\n"
	if b.String() != want {
		t.Errorf("csv = %q, want %q", b.String(), want)
	}
}

func TestCellString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{12.34, "12.34"},
		{0.6564, "0.6564"},
		{int64(42), "42"},
		{7, "7"},
	}
	for _, tc := range cases {
		if got := CellString(tc.in); got != tc.want {
			t.Errorf("CellString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAllocationsSheet(t *testing.T) {
	rows := []model.WeeklyAllocationRow{{
		WeekStart: d(2), WeekEnd: d(8),
		CampaignID: campID, CampaignName: "Alpha", WeeklyBudget: 700,
	}}
	s := AllocationsSheet(rows)

	if s.Name != "weekly_allocations" {
		t.Errorf("name = %q", s.Name)
	}
	if len(s.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(s.Rows))
	}
	if s.Rows[0][0] != "2025-06-02" || s.Rows[0][4] != 700.0 {
		t.Errorf("row = %v", s.Rows[0])
	}
}
