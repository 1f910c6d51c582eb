package cmd

import (
	"fmt"

	"adpace/internal/cli"
	"adpace/internal/model"

	"github.com/spf13/cobra"
)

var pacingCmd = &cobra.Command{
	Use:   "pacing",
	Short: "Budget pacing snapshot for the portfolio",
	RunE:  runPacing,
}

func init() {
	rootCmd.AddCommand(pacingCmd)
}

func runPacing(cmd *cobra.Command, _ []string) error {
	res, svc, err := runReport(cmd.Context())
	if err != nil {
		return err
	}

	p := res.Pacing
	if p.Timeline.TotalDays == 0 {
		fmt.Println()
		fmt.Println("  No campaigns to pace against.")
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET PACING  %s", svc.Config().Timezone)))
	fmt.Println()

	tl := p.Timeline
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Timeline",
		Headers: []string{"", "Date", "Days"},
		Rows: [][]string{
			{"Start", model.DayKey(tl.StartDate), ""},
			{"Today", model.DayKey(tl.Today), fmt.Sprintf("%d passed", tl.DaysPassed)},
			{"End", model.DayKey(tl.EndDate), fmt.Sprintf("%d left", tl.DaysLeft)},
			{"---"},
			{"Total", "", fmt.Sprintf("%d", tl.TotalDays)},
		},
	}))

	b := p.Budget
	budgetRows := [][]string{
		{"Budget", cli.FormatMoney(b.Budget)},
		{"Spent", cli.FormatMoney(b.TotalSpend)},
		{"Should Have Spent", cli.FormatMoney(b.ShouldHaveSpent)},
	}
	if b.SpendPercentage != nil {
		budgetRows = append(budgetRows, []string{"Spend %", cli.FormatOptPercent(b.SpendPercentage)})
	}
	if b.BudgetProjection != nil {
		budgetRows = append(budgetRows, []string{"Projected %", cli.FormatOptPercent(b.BudgetProjection)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Budget",
		Headers: []string{"Metric", "Value"},
		Rows:    budgetRows,
	}))

	d := p.Daily
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Daily Rates",
		Headers: []string{"Rate", "Value"},
		Rows: [][]string{
			{"Target", cli.FormatMoney(d.TargetDailyRate)},
			{"Actual", cli.FormatOptMoney(d.ActualDailyRate)},
			{"Required", cli.FormatOptMoney(d.RequiredDailyRate)},
		},
	}))

	if d.ActualDailyRate != nil && d.TargetDailyRate > 0 {
		frac := *d.ActualDailyRate / d.TargetDailyRate
		fmt.Printf("  Pace   %s  %s\n\n",
			cli.RenderMeterBar(frac, 30),
			cli.StatusStyle(string(d.Status)).Render(string(d.Status)))
	} else if d.Status != model.PacingUnknown {
		fmt.Printf("  Status %s\n\n", cli.StatusStyle(string(d.Status)).Render(string(d.Status)))
	} else {
		fmt.Println("  Status not yet determined (flight has not started).")
		fmt.Println()
	}

	return nil
}
