package cmd

import (
	"fmt"

	"adpace/internal/cli"
	"adpace/internal/model"

	"github.com/spf13/cobra"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Forward weekly budget allocations",
	RunE:  runAllocate,
}

func init() {
	rootCmd.AddCommand(allocateCmd)
}

func runAllocate(cmd *cobra.Command, _ []string) error {
	res, svc, err := runReport(cmd.Context())
	if err != nil {
		return err
	}

	if len(res.Allocations) == 0 {
		fmt.Println()
		fmt.Println("  No allocations: every campaign is either exhausted or ended.")
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WEEKLY ALLOCATIONS  %s", svc.Config().Timezone)))
	fmt.Println()

	rows := make([][]string, 0, len(res.Allocations))
	var prevWeek string
	var total float64
	for _, a := range res.Allocations {
		week := model.DayKey(a.WeekStart)
		if prevWeek != "" && week != prevWeek {
			rows = append(rows, []string{"---"})
		}
		prevWeek = week
		total += a.WeeklyBudget
		rows = append(rows, []string{
			a.CampaignName,
			week,
			model.DayKey(a.WeekEnd),
			cli.FormatMoney(a.WeeklyBudget),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Budget by Week",
		Headers: []string{"Campaign", "Week Start", "Week End", "Budget"},
		Rows:    rows,
	}))

	fmt.Printf("  Total allocated: %s over the next %d week(s)\n\n",
		cli.FormatMoney(total), svc.Config().WeeksFuture)

	return nil
}
