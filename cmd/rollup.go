package cmd

import (
	"fmt"

	"adpace/internal/cli"
	"adpace/internal/model"

	"github.com/spf13/cobra"
)

var rollupCmd = &cobra.Command{
	Use:   "rollup",
	Short: "Spend and impression rollups by line item, campaign, and portfolio",
	RunE:  runRollup,
}

func init() {
	rootCmd.AddCommand(rollupCmd)
}

func runRollup(cmd *cobra.Command, _ []string) error {
	res, svc, err := runReport(cmd.Context())
	if err != nil {
		return err
	}

	t := res.Tables
	if !t.HasPortfolioRow {
		fmt.Println("\n  No usage records in the selected range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPEND ROLLUP  %s", svc.Config().Timezone)))
	fmt.Println()

	campRows := make([][]string, 0, len(t.CampaignsTotal)+2)
	for _, r := range t.CampaignsTotal {
		campRows = append(campRows, []string{
			r.CampaignName,
			cli.FormatMoney(r.CampaignBudget),
			cli.FormatMoney(r.TotalSpend),
			cli.FormatImpressions(r.TotalImpressions),
			cli.FormatOptPercent(r.SpendPercentage),
		})
	}
	campRows = append(campRows, []string{"---"})
	pt := t.PortfolioTotal
	campRows = append(campRows, []string{
		"PORTFOLIO",
		cli.FormatMoney(pt.TotalBudget),
		cli.FormatMoney(pt.TotalSpend),
		cli.FormatImpressions(pt.TotalImpressions),
		cli.FormatOptPercent(pt.SpendPercentage),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Campaigns",
		Headers: []string{"Campaign", "Budget", "Spend", "Impr", "Spend %"},
		Rows:    campRows,
	}))

	liRows := make([][]string, 0, len(t.LineItemsTotal))
	for _, r := range t.LineItemsTotal {
		liRows = append(liRows, []string{
			r.CampaignName,
			r.LineItemName,
			cli.FormatMoney(r.TotalSpend),
			cli.FormatImpressions(r.TotalImpressions),
			cli.FormatOptPercent(r.SpendPercentage),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Line Items",
		Headers: []string{"Campaign", "Line Item", "Spend", "Impr", "Spend %"},
		Rows:    liRows,
	}))

	dayRows := make([][]string, 0, len(t.PortfolioDaily))
	for _, r := range t.PortfolioDaily {
		dayRows = append(dayRows, []string{
			model.DayKey(r.Date),
			fmt.Sprintf("%d", r.TotalCampaigns),
			cli.FormatImpressions(r.Impressions),
			cli.FormatMoney(r.Spend),
			cli.FormatOptRatio(r.PrevDaySpendRatio),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Portfolio by Day",
		Headers: []string{"Date", "Campaigns", "Impr", "Spend", "vs Prev Day"},
		Rows:    dayRows,
	}))

	if pt.AvgDailySpend != nil {
		fmt.Printf("  Range %s - %s: avg %s/day\n\n",
			model.DayKey(pt.DateRange.Start), model.DayKey(pt.DateRange.End),
			cli.FormatOptMoney(pt.AvgDailySpend))
	}

	return nil
}
