package cmd

import (
	"fmt"
	"os"

	"adpace/internal/publish"

	"github.com/spf13/cobra"
)

var flagExportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export rollup views and allocations as CSV files",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportDir, "out", "o", "adpace-export", "Output directory")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	res, _, err := runReport(cmd.Context())
	if err != nil {
		return err
	}

	sheets := publish.FromRollup(res.Tables)
	sheets = append(sheets, publish.AllocationsSheet(res.Allocations))

	if err := publish.WriteCSVDir(flagExportDir, sheets); err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %d sheets to %s/\n", len(sheets), flagExportDir)
	}
	return nil
}
